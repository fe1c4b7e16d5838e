package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formflow-server/editor"
	"formflow-server/model"
)

func capture(t *testing.T, q model.Question, in RawInput, prev *Answer) *Answer {
	t.Helper()
	a, err := Capture(q, in, prev)
	require.NoError(t, err)
	return a
}

func TestTextAnswerOverwrites(t *testing.T) {
	q := model.NewQuestion(model.ShortText)

	a := capture(t, q, RawInput{Text: "first"}, nil)
	a = capture(t, q, RawInput{Text: "second"}, a)
	assert.Equal(t, "second", a.Text)
}

func TestTextLengthRules(t *testing.T) {
	ed := editor.New()
	q := model.NewQuestion(model.ShortText)
	minLen, maxLen := 3, 5
	q = ed.Apply(q, editor.Update{Validation: &editor.ValidationPatch{
		MinLength: &minLen,
		MaxLength: &maxLen,
	}})

	_, err := Capture(q, RawInput{Text: "ab"}, nil)
	assert.Error(t, err)
	_, err = Capture(q, RawInput{Text: "abcdef"}, nil)
	assert.Error(t, err)
	_, err = Capture(q, RawInput{Text: "abcd"}, nil)
	assert.NoError(t, err)
}

func TestEmailValidation(t *testing.T) {
	q := model.NewQuestion(model.Email)

	_, err := Capture(q, RawInput{Text: "not-an-email"}, nil)
	var rejected *ValidationError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, q.ID, rejected.QuestionID)

	a := capture(t, q, RawInput{Text: "ada@example.com"}, nil)
	assert.Equal(t, "ada@example.com", a.Text)
}

func TestNumberBounds(t *testing.T) {
	ed := editor.New()
	q := model.NewQuestion(model.Number)
	min, max := 1.0, 10.0
	q = ed.Apply(q, editor.Update{Validation: &editor.ValidationPatch{Min: &min, Max: &max}})

	_, err := Capture(q, RawInput{Text: "eleven"}, nil)
	assert.Error(t, err)
	_, err = Capture(q, RawInput{Text: "0"}, nil)
	assert.Error(t, err)
	_, err = Capture(q, RawInput{Text: "11"}, nil)
	assert.Error(t, err)

	a := capture(t, q, RawInput{Text: "7.5"}, nil)
	assert.Equal(t, "7.5", a.Text)
}

func TestDateAndTimeFormats(t *testing.T) {
	date := model.NewQuestion(model.Date)
	_, err := Capture(date, RawInput{Text: "31/12/2024"}, nil)
	assert.Error(t, err)
	a := capture(t, date, RawInput{Text: "2024-12-31"}, nil)
	assert.Equal(t, "2024-12-31", a.Text)

	clock := model.NewQuestion(model.Time)
	_, err = Capture(clock, RawInput{Text: "9 o'clock"}, nil)
	assert.Error(t, err)
	a = capture(t, clock, RawInput{Text: "09:30"}, nil)
	assert.Equal(t, "09:30", a.Text)
}

func TestSingleChoiceOverwrites(t *testing.T) {
	q := model.NewQuestion(model.MultipleChoice)

	a := capture(t, q, RawInput{Option: "option_1"}, nil)
	a = capture(t, q, RawInput{Option: "option_2"}, a)
	assert.Equal(t, "option_2", a.Value)

	_, err := Capture(q, RawInput{Option: "option_9"}, a)
	assert.Error(t, err)
}

func TestOtherSentinel(t *testing.T) {
	q := model.NewQuestion(model.MultipleChoice)

	_, err := Capture(q, RawInput{Option: OtherValue, Text: "mauve"}, nil)
	assert.Error(t, err, "other not allowed yet")

	q.Choice().AllowOther = true
	a := capture(t, q, RawInput{Option: OtherValue, Text: "mauve"}, nil)
	assert.Equal(t, OtherValue, a.Value)
	assert.Equal(t, "mauve", a.OtherText)
}

func TestCheckboxTogglesSetMembership(t *testing.T) {
	q := model.NewQuestion(model.Checkbox)
	q = editor.AddOption(q, "Red")
	q = editor.AddOption(q, "Blue")

	a := capture(t, q, RawInput{Option: "red"}, nil)
	a = capture(t, q, RawInput{Option: "blue"}, a)
	a = capture(t, q, RawInput{Option: "red"}, a)

	assert.Equal(t, map[string]bool{"blue": true}, a.Values)
}

func TestScaleAnswerRange(t *testing.T) {
	q := model.NewQuestion(model.LinearScale)

	a := capture(t, q, RawInput{Option: "3"}, nil)
	assert.Equal(t, "3", a.Value)

	_, err := Capture(q, RawInput{Option: "6"}, nil)
	assert.Error(t, err)
	_, err = Capture(q, RawInput{Option: "half"}, nil)
	assert.Error(t, err)
}

func TestGridSingleSelectPerRow(t *testing.T) {
	q := model.NewQuestion(model.MultipleChoiceGrid)

	a := capture(t, q, RawInput{Row: "row_1", Column: "column_1"}, nil)
	a = capture(t, q, RawInput{Row: "row_2", Column: "column_3"}, a)
	// re-answering a row overwrites just that row
	a = capture(t, q, RawInput{Row: "row_1", Column: "column_2"}, a)

	assert.Equal(t, map[string]string{
		"row_1": "column_2",
		"row_2": "column_3",
	}, a.GridSingle)

	_, err := Capture(q, RawInput{Row: "row_9", Column: "column_1"}, a)
	assert.Error(t, err)
}

func TestCheckboxGridToggles(t *testing.T) {
	q := model.NewQuestion(model.CheckboxGrid)

	a := capture(t, q, RawInput{Row: "row_1", Column: "column_1"}, nil)
	a = capture(t, q, RawInput{Row: "row_2", Column: "column_2"}, a)
	a = capture(t, q, RawInput{Row: "row_1", Column: "column_1"}, a)

	assert.Equal(t, map[string]bool{GridKey("row_2", "column_2"): true}, a.GridSet)
}

func TestFileAnswerRules(t *testing.T) {
	q := model.NewQuestion(model.FileUpload)

	_, err := Capture(q, RawInput{FileURL: "/uploads/a.bin", MimeType: "application/zip", Size: 10}, nil)
	assert.Error(t, err, "mime type not accepted")

	_, err = Capture(q, RawInput{FileURL: "/uploads/a.png", MimeType: "image/png", Size: 11 << 20}, nil)
	assert.Error(t, err, "too big")

	a := capture(t, q, RawInput{FileURL: "/uploads/a.png", MimeType: "image/png", Size: 1024}, nil)
	assert.Equal(t, []string{"/uploads/a.png"}, a.Files)

	// single-file question: next upload replaces
	a = capture(t, q, RawInput{FileURL: "/uploads/b.pdf", MimeType: "application/pdf", Size: 1024}, a)
	assert.Equal(t, []string{"/uploads/b.pdf"}, a.Files)

	q.File().AllowMultiple = true
	a = capture(t, q, RawInput{FileURL: "/uploads/c.png", MimeType: "image/png", Size: 1024}, a)
	assert.Equal(t, []string{"/uploads/b.pdf", "/uploads/c.png"}, a.Files)
}

func TestDisplayTypesCaptureNothing(t *testing.T) {
	for _, qt := range []model.QuestionType{
		model.TitleDescription, model.Paragraph, model.Image, model.Video,
	} {
		a, err := Capture(model.NewQuestion(qt), RawInput{Text: "ignored"}, nil)
		assert.NoError(t, err, "%s", qt)
		assert.Nil(t, a, "%s", qt)
	}
}
