package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormDefaults(t *testing.T) {
	f := NewForm()

	assert.NotEmpty(t, f.ID)
	assert.Equal(t, "Untitled Form", f.Title)
	assert.Empty(t, f.Questions)
	assert.True(t, f.Settings.AllowAnonymous)
	assert.True(t, f.Settings.ShowProgressBar)
	assert.True(t, f.Settings.AllowMultipleResponses)
	assert.False(t, f.Settings.CollectEmail)
	assert.Equal(t, "#673AB7", f.Settings.Theme.PrimaryColor)
	assert.NoError(t, f.Validate())
}

func TestTouchIsMonotonic(t *testing.T) {
	f := NewForm()
	prev := f.UpdatedAt
	for i := 0; i < 1000; i++ {
		f.Touch()
		require.True(t, f.UpdatedAt.After(prev), "iteration %d", i)
		prev = f.UpdatedAt
	}
}

func TestValidateRejectsDuplicateQuestionIds(t *testing.T) {
	f := NewForm()
	q := NewQuestion(ShortText)
	f.Questions = []Question{q, q}

	err := f.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptForm)
}

func TestValidateRejectsUnknownType(t *testing.T) {
	f := NewForm()
	q := NewQuestion(ShortText)
	q.Type = "crystal_ball"
	f.Questions = []Question{q}

	assert.ErrorIs(t, f.Validate(), ErrCorruptForm)
}

func TestValidateRejectsMismatchedBody(t *testing.T) {
	f := NewForm()
	q := NewQuestion(MultipleChoice)
	q.Type = LinearScale // body is still a ChoiceBody
	f.Questions = []Question{q}

	assert.ErrorIs(t, f.Validate(), ErrCorruptForm)
}

func TestValidateRejectsNonPositiveResponseLimit(t *testing.T) {
	f := NewForm()
	limit := 0
	f.Settings.ResponseLimit = &limit

	assert.ErrorIs(t, f.Validate(), ErrCorruptForm)
}

func TestQuestionIndex(t *testing.T) {
	f := NewForm()
	a, b := NewQuestion(ShortText), NewQuestion(Email)
	f.Questions = []Question{a, b}

	assert.Equal(t, 0, f.QuestionIndex(a.ID))
	assert.Equal(t, 1, f.QuestionIndex(b.ID))
	assert.Equal(t, -1, f.QuestionIndex("gone"))
}

func TestCreatedAtPrecedesFirstMutation(t *testing.T) {
	f := NewForm()
	time.Sleep(time.Millisecond)
	f.Touch()
	assert.True(t, f.UpdatedAt.After(f.CreatedAt))
}
