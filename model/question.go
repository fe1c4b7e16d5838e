package model

import "github.com/gofrs/uuid"

type QuestionType string

const (
	ShortText          QuestionType = "short_text"
	LongText           QuestionType = "long_text"
	MultipleChoice     QuestionType = "multiple_choice"
	Checkbox           QuestionType = "checkbox"
	Dropdown           QuestionType = "dropdown"
	LinearScale        QuestionType = "linear_scale"
	MultipleChoiceGrid QuestionType = "multiple_choice_grid"
	CheckboxGrid       QuestionType = "checkbox_grid"
	Date               QuestionType = "date"
	Time               QuestionType = "time"
	FileUpload         QuestionType = "file_upload"
	Email              QuestionType = "email"
	Number             QuestionType = "number"
	Paragraph          QuestionType = "paragraph"
	TitleDescription   QuestionType = "title_description"
	Image              QuestionType = "image"
	Video              QuestionType = "video"
)

// BodyKind groups question types by payload shape. Types sharing a kind
// keep their body across a retype; switching kinds goes through the edit
// engine's stash.
type BodyKind int

const (
	KindInput BodyKind = iota
	KindChoice
	KindScale
	KindGrid
	KindFile
	KindMedia
	KindStatic
)

// Body is the type-dependent payload of a Question. Exactly one concrete
// body is active per question, selected by the type's descriptor.
type Body interface {
	Kind() BodyKind
	// Clone deep-copies the body, minting fresh ids for any owned options.
	Clone() Body
}

// Validation rules for free-input types. Nil pointer means "not set".
type Validation struct {
	Min       *float64
	Max       *float64
	MinLength *int
	MaxLength *int
	Pattern   string
}

// InputBody backs short_text, long_text, email, number, date and time.
type InputBody struct {
	Validation Validation
}

func (b *InputBody) Kind() BodyKind { return KindInput }
func (b *InputBody) Clone() Body {
	c := *b
	return &c
}

// ChoiceBody backs multiple_choice, checkbox and dropdown.
type ChoiceBody struct {
	Options        []OptionItem
	AllowOther     bool
	OtherText      string
	ShuffleOptions bool
}

func (b *ChoiceBody) Kind() BodyKind { return KindChoice }
func (b *ChoiceBody) Clone() Body {
	c := *b
	c.Options = cloneOptions(b.Options)
	return &c
}

// ScaleBody backs linear_scale. Min > Max is legal and renders as an
// empty scale.
type ScaleBody struct {
	Min      int
	Max      int
	MinLabel string
	MaxLabel string
}

func (b *ScaleBody) Kind() BodyKind { return KindScale }
func (b *ScaleBody) Clone() Body {
	c := *b
	return &c
}

// GridBody backs multiple_choice_grid and checkbox_grid.
type GridBody struct {
	Rows    []OptionItem
	Columns []OptionItem
}

func (b *GridBody) Kind() BodyKind { return KindGrid }
func (b *GridBody) Clone() Body {
	c := *b
	c.Rows = cloneOptions(b.Rows)
	c.Columns = cloneOptions(b.Columns)
	return &c
}

// FileBody backs file_upload.
type FileBody struct {
	AllowMultiple bool
	FileTypes     []string
	MaxFileSize   int64
}

func (b *FileBody) Kind() BodyKind { return KindFile }
func (b *FileBody) Clone() Body {
	c := *b
	c.FileTypes = append([]string(nil), b.FileTypes...)
	return &c
}

// MediaBody backs image and video. URL is opaque, produced by the upload
// boundary.
type MediaBody struct {
	URL         string
	Alt         string
	Title       string
	Description string
}

func (b *MediaBody) Kind() BodyKind { return KindMedia }
func (b *MediaBody) Clone() Body {
	c := *b
	return &c
}

// StaticBody backs paragraph and title_description: pure display, no
// payload beyond title and description.
type StaticBody struct{}

func (b *StaticBody) Kind() BodyKind { return KindStatic }
func (b *StaticBody) Clone() Body    { return &StaticBody{} }

// Question is one data-collection or display unit within a form.
type Question struct {
	ID          string
	Type        QuestionType
	Title       string
	Description string
	Required    bool
	Body        Body
}

// NewQuestion initializes a question of the given type from its
// descriptor's defaults.
func NewQuestion(qt QuestionType) Question {
	d := Descriptor(qt)
	q := Question{
		ID:    uuid.Must(uuid.NewV4()).String(),
		Type:  qt,
		Title: "Untitled Question",
		Body:  d.NewBody(),
	}
	if qt == TitleDescription {
		q.Title = "Untitled Title"
		q.Description = "Description (optional)"
	}
	return q
}

// Clone deep-copies the question with a fresh id and fresh ids for every
// owned option, row and column. Text values are copied verbatim.
func (q Question) Clone() Question {
	q.ID = uuid.Must(uuid.NewV4()).String()
	if q.Body != nil {
		q.Body = q.Body.Clone()
	}
	return q
}

// Choice returns the body as a ChoiceBody, or nil if another kind is
// active. Same pattern for the other accessors below.
func (q Question) Choice() *ChoiceBody {
	b, _ := q.Body.(*ChoiceBody)
	return b
}

func (q Question) Grid() *GridBody {
	b, _ := q.Body.(*GridBody)
	return b
}

func (q Question) Scale() *ScaleBody {
	b, _ := q.Body.(*ScaleBody)
	return b
}

func (q Question) Input() *InputBody {
	b, _ := q.Body.(*InputBody)
	return b
}

func (q Question) File() *FileBody {
	b, _ := q.Body.(*FileBody)
	return b
}

func (q Question) Media() *MediaBody {
	b, _ := q.Body.(*MediaBody)
	return b
}
