package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formflow-server/model"
)

func TestPDFProjectsEveryQuestion(t *testing.T) {
	form := model.NewForm()
	form.Title = "All Types"
	form.Description = "One of each"

	all := []model.QuestionType{
		model.ShortText, model.LongText, model.MultipleChoice, model.Checkbox,
		model.Dropdown, model.LinearScale, model.MultipleChoiceGrid,
		model.CheckboxGrid, model.Date, model.Time, model.FileUpload,
		model.Email, model.Number, model.Paragraph, model.TitleDescription,
		model.Image, model.Video,
	}
	for _, qt := range all {
		form.Questions = append(form.Questions, model.NewQuestion(qt))
	}

	var buf bytes.Buffer
	require.NoError(t, PDF(form, &buf))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Greater(t, len(out), 1000)
}

func TestPDFHandlesEmptyForm(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(model.NewForm(), &buf))
	assert.NotEmpty(t, buf.Bytes())
}

func TestPDFMarksRequiredQuestions(t *testing.T) {
	form := model.NewForm()
	q := model.NewQuestion(model.ShortText)
	q.Required = true
	form.Questions = []model.Question{q}

	var buf bytes.Buffer
	require.NoError(t, PDF(form, &buf))
	assert.NotEmpty(t, buf.Bytes())
}
