package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formflow-server/model"
)

func strPtr(s string) *string       { return &s }
func intPtr(i int) *int             { return &i }
func boolPtr(b bool) *bool          { return &b }
func floatPtr(f float64) *float64   { return &f }
func typePtr(t model.QuestionType) *model.QuestionType { return &t }

func TestAddOption(t *testing.T) {
	q := model.NewQuestion(model.MultipleChoice)

	q = AddOption(q, "Red")
	b := q.Choice()
	require.Len(t, b.Options, 3)
	assert.Equal(t, "Red", b.Options[2].Text)
	assert.Equal(t, "red", b.Options[2].Value)
}

func TestAddOptionRejectsBlankText(t *testing.T) {
	q := model.NewQuestion(model.Checkbox)
	before := q.Choice().Options

	q = AddOption(q, "   ")
	assert.Equal(t, before, q.Choice().Options)
}

func TestAddOptionAllowsDuplicateText(t *testing.T) {
	q := model.NewQuestion(model.Dropdown)
	q = AddOption(q, "Same")
	q = AddOption(q, "Same")

	b := q.Choice()
	require.Len(t, b.Options, 4)
	assert.Equal(t, b.Options[2].Text, b.Options[3].Text)
	assert.NotEqual(t, b.Options[2].ID, b.Options[3].ID)
}

func TestRemoveOption(t *testing.T) {
	q := model.NewQuestion(model.MultipleChoice)
	victim := q.Choice().Options[0].ID

	q = RemoveOption(q, victim)
	require.Len(t, q.Choice().Options, 1)

	// removing again, or removing garbage, changes nothing
	q = RemoveOption(q, victim)
	q = RemoveOption(q, "nonsense")
	assert.Len(t, q.Choice().Options, 1)
}

func TestRenameOption(t *testing.T) {
	q := model.NewQuestion(model.MultipleChoice)
	target := q.Choice().Options[1].ID

	q = RenameOption(q, target, "Bright  Green")
	renamed := q.Choice().Options[1]
	assert.Equal(t, target, renamed.ID)
	assert.Equal(t, "Bright  Green", renamed.Text)
	assert.Equal(t, "bright_green", renamed.Value)

	before := q.Choice().Options
	q = RenameOption(q, "nonsense", "whatever")
	assert.Equal(t, before, q.Choice().Options)
}

func TestOptionOpsIgnoreNonChoiceQuestions(t *testing.T) {
	q := model.NewQuestion(model.ShortText)
	assert.Equal(t, q, AddOption(q, "Red"))
	assert.Equal(t, q, RemoveOption(q, "x"))
	assert.Equal(t, q, RenameOption(q, "x", "y"))
}

func TestGridRowAndColumnOps(t *testing.T) {
	q := model.NewQuestion(model.CheckboxGrid)

	q = AddGridRow(q, "Row 3")
	q = AddGridColumn(q, "Column 4")
	g := q.Grid()
	require.Len(t, g.Rows, 3)
	require.Len(t, g.Columns, 4)

	q = RenameGridRow(q, g.Rows[0].ID, "First Row")
	assert.Equal(t, "first_row", q.Grid().Rows[0].Value)

	q = RemoveGridColumn(q, g.Columns[0].ID)
	assert.Len(t, q.Grid().Columns, 3)
	// rows untouched by column ops
	assert.Len(t, q.Grid().Rows, 3)

	q = AddGridRow(q, " ")
	assert.Len(t, q.Grid().Rows, 3)
}

func TestApplyScalarFields(t *testing.T) {
	ed := New()
	q := model.NewQuestion(model.ShortText)

	q = ed.Apply(q, Update{
		Title:    strPtr(""),
		Required: boolPtr(true),
	})
	assert.Equal(t, "", q.Title) // empty titles are legal here
	assert.True(t, q.Required)

	q = ed.Apply(q, Update{Description: strPtr("fine print")})
	assert.Equal(t, "fine print", q.Description)
	assert.True(t, q.Required, "untouched fields survive")
}

func TestApplyMergesSettingsKeyByKey(t *testing.T) {
	ed := New()
	q := model.NewQuestion(model.LinearScale)
	q = ed.Apply(q, Update{Settings: &SettingsPatch{
		LinearScaleLabels: &ScaleLabelsPatch{Min: strPtr("Bad"), Max: strPtr("Good")},
	}})

	// updating one key leaves its siblings alone
	q = ed.Apply(q, Update{Settings: &SettingsPatch{LinearScaleMin: intPtr(0)}})

	b := q.Scale()
	assert.Equal(t, 0, b.Min)
	assert.Equal(t, 5, b.Max)
	assert.Equal(t, "Bad", b.MinLabel)
	assert.Equal(t, "Good", b.MaxLabel)
}

func TestApplyMergesValidationKeyByKey(t *testing.T) {
	ed := New()
	q := model.NewQuestion(model.Number)
	q = ed.Apply(q, Update{Validation: &ValidationPatch{Min: floatPtr(1)}})
	q = ed.Apply(q, Update{Validation: &ValidationPatch{Max: floatPtr(10)}})

	v := q.Input().Validation
	require.NotNil(t, v.Min)
	require.NotNil(t, v.Max)
	assert.Equal(t, float64(1), *v.Min)
	assert.Equal(t, float64(10), *v.Max)
}

func TestScaleBoundsAreNotClamped(t *testing.T) {
	ed := New()
	q := model.NewQuestion(model.LinearScale)
	q = ed.Apply(q, Update{Settings: &SettingsPatch{
		LinearScaleMin: intPtr(5),
		LinearScaleMax: intPtr(1),
	}})

	b := q.Scale()
	assert.Equal(t, 5, b.Min)
	assert.Equal(t, 1, b.Max)
}

func TestApplyIgnoresInapplicableSettings(t *testing.T) {
	ed := New()
	q := model.NewQuestion(model.ShortText)
	q = ed.Apply(q, Update{Settings: &SettingsPatch{AllowOther: boolPtr(true)}})

	// still a plain input body, nothing materialized
	assert.NotNil(t, q.Input())
}

func TestRetypeWithinKindKeepsBody(t *testing.T) {
	ed := New()
	q := model.NewQuestion(model.MultipleChoice)
	q = AddOption(q, "Custom")
	body := q.Body

	q = ed.Retype(q, model.Checkbox)
	assert.Equal(t, model.Checkbox, q.Type)
	assert.Same(t, body, q.Body)
}

func TestRetypeMaterializesDefaults(t *testing.T) {
	ed := New()
	q := model.NewQuestion(model.ShortText)

	q = ed.Retype(q, model.MultipleChoice)
	require.NotNil(t, q.Choice())
	assert.Len(t, q.Choice().Options, 2)
}

func TestRetypeRoundTripIsLossless(t *testing.T) {
	ed := New()
	q := model.NewQuestion(model.MultipleChoice)
	q = AddOption(q, "Red")
	q = AddOption(q, "Blue")
	options := q.Choice().Options

	q = ed.Retype(q, model.ShortText)
	assert.Nil(t, q.Choice())

	q = ed.Retype(q, model.MultipleChoice)
	require.NotNil(t, q.Choice())
	assert.Equal(t, options, q.Choice().Options)
}

func TestRetypeRoundTripThroughSeveralKinds(t *testing.T) {
	ed := New()
	q := model.NewQuestion(model.CheckboxGrid)
	q = AddGridRow(q, "Extra Row")
	rows := q.Grid().Rows

	q = ed.Retype(q, model.LinearScale)
	q = ed.Retype(q, model.MultipleChoice)
	q = ed.Retype(q, model.MultipleChoiceGrid)

	require.NotNil(t, q.Grid())
	assert.Equal(t, rows, q.Grid().Rows)
}

func TestRetypeViaApply(t *testing.T) {
	ed := New()
	q := model.NewQuestion(model.ShortText)
	q = ed.Apply(q, Update{
		Type:     typePtr(model.LinearScale),
		Settings: &SettingsPatch{LinearScaleMax: intPtr(7)},
	})

	require.NotNil(t, q.Scale())
	assert.Equal(t, 1, q.Scale().Min, "defaults populated on retype")
	assert.Equal(t, 7, q.Scale().Max, "patch lands on the new body")
}

func TestRetypeUnknownTypeIsNoOp(t *testing.T) {
	ed := New()
	q := model.NewQuestion(model.ShortText)
	assert.Equal(t, q, ed.Retype(q, "antigravity"))
}

func TestForgetDropsStash(t *testing.T) {
	ed := New()
	q := model.NewQuestion(model.MultipleChoice)
	q = AddOption(q, "Kept?")
	q = ed.Retype(q, model.ShortText)

	ed.Forget(q.ID)

	q = ed.Retype(q, model.MultipleChoice)
	assert.Len(t, q.Choice().Options, 2, "stash gone, defaults again")
}
