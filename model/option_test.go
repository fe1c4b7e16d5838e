package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Red":            "red",
		"Very   Good":    "very_good",
		"Tab\tand\nline": "tab_and_line",
		"Ça va?":         "ça_va?",
		"already_slug":   "already_slug",
		"":               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestSlugifyIsIdempotent(t *testing.T) {
	for _, text := range []string{"Option 1", "  padded  ", "MiXeD Case", "a  b   c"} {
		once := Slugify(text)
		assert.Equal(t, once, Slugify(once))
	}
}

func TestNewOptionDerivesValue(t *testing.T) {
	o := NewOption("Strongly Agree")
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, "Strongly Agree", o.Text)
	assert.Equal(t, "strongly_agree", o.Value)
}

func TestRenameKeepsIdentity(t *testing.T) {
	o := NewOption("Old Label")
	renamed := o.Rename("New  Label")

	assert.Equal(t, o.ID, renamed.ID)
	assert.Equal(t, "New  Label", renamed.Text)
	assert.Equal(t, "new_label", renamed.Value)
	// the original is untouched
	assert.Equal(t, "Old Label", o.Text)
}

func TestCloneMintsFreshId(t *testing.T) {
	o := NewOption("Keep Text")
	c := o.Clone()

	assert.NotEqual(t, o.ID, c.ID)
	assert.Equal(t, o.Text, c.Text)
	assert.Equal(t, o.Value, c.Value)
}
