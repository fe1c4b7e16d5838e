package renderer

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"time"

	"formflow-server/model"
)

// OtherValue is the sentinel answer value for the "Other:" choice of
// questions that allow it. The free text travels separately.
const OtherValue = "other"

// ValidationError rejects respondent input at the point of entry. The
// question state is unchanged and the message is fit for inline display.
type ValidationError struct {
	QuestionID string
	Message    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question %s: %s", e.QuestionID, e.Message)
}

func rejected(q model.Question, format string, args ...any) error {
	return &ValidationError{QuestionID: q.ID, Message: fmt.Sprintf(format, args...)}
}

// Answer is the typed answer value of one question. Which member is
// populated follows the question type: Text for free input, Value for
// single select and scale, Values for checkbox sets, GridSingle for one
// column per row, GridSet for checked cells, Files for uploads.
type Answer struct {
	Text       string            `json:"text,omitempty"`
	Value      string            `json:"value,omitempty"`
	OtherText  string            `json:"otherText,omitempty"`
	Values     map[string]bool   `json:"values,omitempty"`
	GridSingle map[string]string `json:"gridSingle,omitempty"`
	GridSet    map[string]bool   `json:"gridSet,omitempty"`
	Files      []string          `json:"files,omitempty"`
}

// RawInput is one respondent input event, before typing. Text carries
// free text (or the "other" free text alongside Option), Option carries
// a choice or scale value, Row and Column address one grid cell, and
// the File fields describe one uploaded file.
type RawInput struct {
	Text     string `json:"text,omitempty"`
	Option   string `json:"option,omitempty"`
	Row      string `json:"row,omitempty"`
	Column   string `json:"column,omitempty"`
	FileURL  string `json:"fileUrl,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Size     int64  `json:"sizeBytes,omitempty"`
}

// GridKey is the pair key of one grid cell in a checkbox grid answer.
func GridKey(row, col string) string {
	return row + "-" + col
}

var reEmailish = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Capture folds one input event into the previous answer and returns
// the new one. A nil prev is the unanswered state. Single-value kinds
// overwrite; checkbox and checkbox-grid kinds toggle set membership.
// Display-only questions capture nothing and return nil.
func Capture(q model.Question, in RawInput, prev *Answer) (*Answer, error) {
	if !model.KnownType(q.Type) || !model.Descriptor(q.Type).Answerable {
		return nil, nil
	}

	switch q.Type {
	case model.ShortText, model.LongText:
		if err := checkTextRules(q, in.Text); err != nil {
			return nil, err
		}
		return &Answer{Text: in.Text}, nil

	case model.Email:
		if _, err := mail.ParseAddress(in.Text); err != nil || !reEmailish.MatchString(in.Text) {
			return nil, rejected(q, "not a valid email address")
		}
		return &Answer{Text: in.Text}, nil

	case model.Number:
		n, err := strconv.ParseFloat(in.Text, 64)
		if err != nil {
			return nil, rejected(q, "not a number")
		}
		if b := q.Input(); b != nil {
			if b.Validation.Min != nil && n < *b.Validation.Min {
				return nil, rejected(q, "must be at least %v", *b.Validation.Min)
			}
			if b.Validation.Max != nil && n > *b.Validation.Max {
				return nil, rejected(q, "must be at most %v", *b.Validation.Max)
			}
		}
		return &Answer{Text: in.Text}, nil

	case model.Date:
		if _, err := time.Parse("2006-01-02", in.Text); err != nil {
			return nil, rejected(q, "not an ISO date")
		}
		return &Answer{Text: in.Text}, nil

	case model.Time:
		if _, err := time.Parse("15:04", in.Text); err != nil {
			return nil, rejected(q, "not a valid time")
		}
		return &Answer{Text: in.Text}, nil

	case model.MultipleChoice, model.Dropdown:
		value, otherText, err := checkOption(q, in)
		if err != nil {
			return nil, err
		}
		return &Answer{Value: value, OtherText: otherText}, nil

	case model.Checkbox:
		value, otherText, err := checkOption(q, in)
		if err != nil {
			return nil, err
		}
		a := &Answer{Values: map[string]bool{}}
		if prev != nil {
			for v := range prev.Values {
				a.Values[v] = true
			}
			a.OtherText = prev.OtherText
		}
		if a.Values[value] {
			delete(a.Values, value)
		} else {
			a.Values[value] = true
		}
		if value == OtherValue {
			a.OtherText = otherText
		}
		return a, nil

	case model.LinearScale:
		b := q.Scale()
		n, err := strconv.Atoi(in.Option)
		if err != nil || b == nil || n < b.Min || n > b.Max {
			return nil, rejected(q, "value outside the scale")
		}
		return &Answer{Value: in.Option}, nil

	case model.MultipleChoiceGrid:
		if err := checkGridCell(q, in); err != nil {
			return nil, err
		}
		a := &Answer{GridSingle: map[string]string{}}
		if prev != nil {
			for r, c := range prev.GridSingle {
				a.GridSingle[r] = c
			}
		}
		a.GridSingle[in.Row] = in.Column
		return a, nil

	case model.CheckboxGrid:
		if err := checkGridCell(q, in); err != nil {
			return nil, err
		}
		a := &Answer{GridSet: map[string]bool{}}
		if prev != nil {
			for k := range prev.GridSet {
				a.GridSet[k] = true
			}
		}
		key := GridKey(in.Row, in.Column)
		if a.GridSet[key] {
			delete(a.GridSet, key)
		} else {
			a.GridSet[key] = true
		}
		return a, nil

	case model.FileUpload:
		b := q.File()
		if b == nil {
			return nil, nil
		}
		if b.MaxFileSize > 0 && in.Size > b.MaxFileSize {
			return nil, rejected(q, "file exceeds the %d byte limit", b.MaxFileSize)
		}
		if len(b.FileTypes) > 0 && !mimeAllowed(in.MimeType, b.FileTypes) {
			return nil, rejected(q, "file type %s is not accepted", in.MimeType)
		}
		a := &Answer{}
		if b.AllowMultiple && prev != nil {
			a.Files = append(a.Files, prev.Files...)
		}
		a.Files = append(a.Files, in.FileURL)
		return a, nil
	}

	return nil, nil
}

func checkTextRules(q model.Question, text string) error {
	b := q.Input()
	if b == nil {
		return nil
	}
	v := b.Validation
	if v.MinLength != nil && len(text) < *v.MinLength {
		return rejected(q, "must be at least %d characters", *v.MinLength)
	}
	if v.MaxLength != nil && len(text) > *v.MaxLength {
		return rejected(q, "must be at most %d characters", *v.MaxLength)
	}
	if v.Pattern != "" {
		re, err := regexp.Compile(v.Pattern)
		if err == nil && !re.MatchString(text) {
			return rejected(q, "does not match the expected format")
		}
	}
	return nil
}

func checkOption(q model.Question, in RawInput) (value, otherText string, err error) {
	b := q.Choice()
	if b == nil {
		return "", "", rejected(q, "question has no options")
	}
	if in.Option == OtherValue {
		if !b.AllowOther {
			return "", "", rejected(q, "free-form answers are not allowed")
		}
		return OtherValue, in.Text, nil
	}
	for _, o := range b.Options {
		if o.Value == in.Option {
			return in.Option, "", nil
		}
	}
	return "", "", rejected(q, "unknown option %q", in.Option)
}

func checkGridCell(q model.Question, in RawInput) error {
	b := q.Grid()
	if b == nil {
		return rejected(q, "question has no grid")
	}
	rowOK, colOK := false, false
	for _, r := range b.Rows {
		if r.Value == in.Row {
			rowOK = true
			break
		}
	}
	for _, c := range b.Columns {
		if c.Value == in.Column {
			colOK = true
			break
		}
	}
	if !rowOK || !colOK {
		return rejected(q, "unknown grid cell %q/%q", in.Row, in.Column)
	}
	return nil
}

func mimeAllowed(mimeType string, accepted []string) bool {
	for _, a := range accepted {
		if a == mimeType {
			return true
		}
		// wildcard subtype, e.g. image/*
		if n := len(a); n > 1 && a[n-1] == '*' && len(mimeType) >= n-1 && mimeType[:n-1] == a[:n-1] {
			return true
		}
	}
	return false
}
