package model

import "fmt"

// TypeDescriptor is the single source of truth for what a question type
// looks like: which body kind it carries, whether it collects an answer,
// and the defaults it starts from. Creation and retype both consult it.
type TypeDescriptor struct {
	Type       QuestionType
	Kind       BodyKind
	Answerable bool
	Label      string
	NewBody    func() Body
}

func inputBody() Body { return &InputBody{} }

func choiceBody() Body {
	return &ChoiceBody{
		Options:   []OptionItem{NewOption("Option 1"), NewOption("Option 2")},
		OtherText: "Other:",
	}
}

func scaleBody() Body { return &ScaleBody{Min: 1, Max: 5} }

func gridBody() Body {
	return &GridBody{
		Rows:    []OptionItem{NewOption("Row 1"), NewOption("Row 2")},
		Columns: []OptionItem{NewOption("Column 1"), NewOption("Column 2"), NewOption("Column 3")},
	}
}

func fileBody() Body {
	return &FileBody{
		FileTypes:   []string{"image/*", "application/pdf"},
		MaxFileSize: 10 << 20,
	}
}

func mediaBody() Body  { return &MediaBody{} }
func staticBody() Body { return &StaticBody{} }

var descriptors = map[QuestionType]TypeDescriptor{
	ShortText:          {ShortText, KindInput, true, "Short Answer", inputBody},
	LongText:           {LongText, KindInput, true, "Paragraph", inputBody},
	MultipleChoice:     {MultipleChoice, KindChoice, true, "Multiple Choice", choiceBody},
	Checkbox:           {Checkbox, KindChoice, true, "Checkboxes", choiceBody},
	Dropdown:           {Dropdown, KindChoice, true, "Dropdown", choiceBody},
	LinearScale:        {LinearScale, KindScale, true, "Linear Scale", scaleBody},
	MultipleChoiceGrid: {MultipleChoiceGrid, KindGrid, true, "Multiple Choice Grid", gridBody},
	CheckboxGrid:       {CheckboxGrid, KindGrid, true, "Checkbox Grid", gridBody},
	Date:               {Date, KindInput, true, "Date", inputBody},
	Time:               {Time, KindInput, true, "Time", inputBody},
	FileUpload:         {FileUpload, KindFile, true, "File Upload", fileBody},
	Email:              {Email, KindInput, true, "Email", inputBody},
	Number:             {Number, KindInput, true, "Number", inputBody},
	Paragraph:          {Paragraph, KindStatic, false, "Paragraph Text", staticBody},
	TitleDescription:   {TitleDescription, KindStatic, false, "Title and Description", staticBody},
	Image:              {Image, KindMedia, false, "Image", mediaBody},
	Video:              {Video, KindMedia, false, "Video", mediaBody},
}

// Descriptor panics on an unknown type: the enumeration is closed and
// callers holding a QuestionType got it through ParseQuestionType or a
// constant.
func Descriptor(qt QuestionType) TypeDescriptor {
	d, ok := descriptors[qt]
	if !ok {
		panic(fmt.Sprintf("model: unknown question type %q", qt))
	}
	return d
}

// KnownType reports whether qt is part of the closed enumeration.
func KnownType(qt QuestionType) bool {
	_, ok := descriptors[qt]
	return ok
}

// ParseQuestionType validates a wire string against the enumeration.
func ParseQuestionType(s string) (QuestionType, error) {
	qt := QuestionType(s)
	if !KnownType(qt) {
		return "", fmt.Errorf("unknown question type %q", s)
	}
	return qt, nil
}
