package model

import (
	"regexp"
	"strings"

	"github.com/gofrs/uuid"
)

var reWhitespace = regexp.MustCompile(`\s+`)

// OptionItem is one selectable choice, or one grid row/column.
// Value is always Slugify(Text) as of the last edit; ID never changes.
type OptionItem struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Value string `json:"value"`
}

func NewOption(text string) OptionItem {
	return OptionItem{
		ID:    uuid.Must(uuid.NewV4()).String(),
		Text:  text,
		Value: Slugify(text),
	}
}

// Rename returns a copy with the new text and a re-derived value.
func (o OptionItem) Rename(text string) OptionItem {
	o.Text = text
	o.Value = Slugify(text)
	return o
}

// Clone returns a copy with a freshly minted id.
func (o OptionItem) Clone() OptionItem {
	o.ID = uuid.Must(uuid.NewV4()).String()
	return o
}

// Slugify lowercases text and collapses whitespace runs to single
// underscores. Punctuation and non-ASCII pass through untouched.
func Slugify(text string) string {
	return reWhitespace.ReplaceAllLiteralString(strings.ToLower(text), "_")
}

func cloneOptions(opts []OptionItem) []OptionItem {
	if opts == nil {
		return nil
	}
	out := make([]OptionItem, len(opts))
	for i, o := range opts {
		out[i] = o.Clone()
	}
	return out
}
