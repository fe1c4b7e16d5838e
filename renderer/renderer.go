// Package renderer maps a question to a displayable structure and, in
// respondent mode, turns raw input events into typed answer values. The
// same per-type branching drives both modes so the builder preview and
// the respondent view never drift apart.
package renderer

import (
	"sort"
	"strconv"

	"formflow-server/model"
)

type Mode int

const (
	// BuilderPreview shows the question's structure with inert inputs.
	BuilderPreview Mode = iota
	// RespondentInput shows live inputs and reflects the current answer.
	RespondentInput
)

type Control string

const (
	ControlText        Control = "text"
	ControlTextarea    Control = "textarea"
	ControlEmail       Control = "email"
	ControlNumber      Control = "number"
	ControlDate        Control = "date"
	ControlTime        Control = "time"
	ControlRadio       Control = "radio"
	ControlCheckbox    Control = "checkbox"
	ControlSelect      Control = "select"
	ControlScale       Control = "scale"
	ControlGrid        Control = "grid"
	ControlFile        Control = "file"
	ControlStatic      Control = "static"
	ControlMedia       Control = "media"
	ControlUnsupported Control = "unsupported"
)

type Choice struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
	IsOther  bool   `json:"isOther,omitempty"`
}

type ScalePoint struct {
	Value    int    `json:"value"`
	Label    string `json:"label,omitempty"`
	Selected bool   `json:"selected"`
}

type GridView struct {
	Rows     []Choice          `json:"rows"`
	Columns  []Choice          `json:"columns"`
	Multi    bool              `json:"multi"`
	Selected map[string]string `json:"selected,omitempty"` // row value -> column value
	Checked  []string          `json:"checked,omitempty"`  // "row-col" pair keys
}

type MediaView struct {
	URL         string `json:"url"`
	Alt         string `json:"alt,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Video       bool   `json:"video"`
}

type FileView struct {
	AllowMultiple bool     `json:"allowMultiple"`
	FileTypes     []string `json:"fileTypes,omitempty"`
	MaxFileSize   int64    `json:"maxFileSize,omitempty"`
	URLs          []string `json:"urls,omitempty"`
}

// RenderedField is the displayable projection of one question. Only the
// members matching Control are populated.
type RenderedField struct {
	QuestionID  string             `json:"questionId"`
	Type        model.QuestionType `json:"type"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Required    bool               `json:"required"`
	Interactive bool               `json:"interactive"`
	Control     Control            `json:"control"`
	Placeholder string             `json:"placeholder,omitempty"`
	Text        string             `json:"text,omitempty"`
	OtherText   string             `json:"otherText,omitempty"`
	Choices     []Choice           `json:"choices,omitempty"`
	Scale       []ScalePoint       `json:"scale,omitempty"`
	Grid        *GridView          `json:"grid,omitempty"`
	Media       *MediaView         `json:"media,omitempty"`
	File        *FileView          `json:"file,omitempty"`
}

// Render produces the display structure for one question. A nil answer
// renders the unanswered state. An unknown question type yields a
// visible unsupported placeholder rather than failing.
func Render(q model.Question, mode Mode, answer *Answer) RenderedField {
	f := RenderedField{
		QuestionID:  q.ID,
		Type:        q.Type,
		Title:       q.Title,
		Description: q.Description,
		Required:    q.Required,
		Interactive: mode == RespondentInput,
	}
	if mode == BuilderPreview {
		// preview is inert: same structure, no answer echo
		answer = nil
	}

	switch q.Type {
	case model.ShortText:
		f.Control = ControlText
		f.Text = answerText(answer)
	case model.LongText:
		f.Control = ControlTextarea
		f.Text = answerText(answer)
	case model.Email:
		f.Control = ControlEmail
		f.Text = answerText(answer)
	case model.Number:
		f.Control = ControlNumber
		f.Text = answerText(answer)
	case model.Date:
		f.Control = ControlDate
		f.Text = answerText(answer)
	case model.Time:
		f.Control = ControlTime
		f.Text = answerText(answer)

	case model.MultipleChoice, model.Dropdown:
		if q.Type == model.Dropdown {
			f.Control = ControlSelect
		} else {
			f.Control = ControlRadio
		}
		f.Choices = renderChoices(q.Choice(), answer, false)
		if answer != nil {
			f.OtherText = answer.OtherText
		}
	case model.Checkbox:
		f.Control = ControlCheckbox
		f.Choices = renderChoices(q.Choice(), answer, true)
		if answer != nil {
			f.OtherText = answer.OtherText
		}

	case model.LinearScale:
		f.Control = ControlScale
		f.Scale = renderScale(q.Scale(), answer)

	case model.MultipleChoiceGrid, model.CheckboxGrid:
		f.Control = ControlGrid
		f.Grid = renderGrid(q.Grid(), q.Type == model.CheckboxGrid, answer)

	case model.FileUpload:
		f.Control = ControlFile
		if b := q.File(); b != nil {
			f.File = &FileView{
				AllowMultiple: b.AllowMultiple,
				FileTypes:     b.FileTypes,
				MaxFileSize:   b.MaxFileSize,
			}
			if answer != nil {
				f.File.URLs = answer.Files
			}
		}

	case model.Paragraph, model.TitleDescription:
		f.Control = ControlStatic
		f.Interactive = false

	case model.Image, model.Video:
		f.Control = ControlMedia
		f.Interactive = false
		if b := q.Media(); b != nil {
			f.Media = &MediaView{
				URL:         b.URL,
				Alt:         b.Alt,
				Title:       b.Title,
				Description: b.Description,
				Video:       q.Type == model.Video,
			}
		}

	default:
		f.Control = ControlUnsupported
		f.Interactive = false
		f.Placeholder = "Unsupported question type: " + string(q.Type)
	}

	return f
}

func answerText(a *Answer) string {
	if a == nil {
		return ""
	}
	return a.Text
}

func renderChoices(b *model.ChoiceBody, a *Answer, multi bool) []Choice {
	if b == nil {
		return nil
	}
	selected := func(value string) bool {
		if a == nil {
			return false
		}
		if multi {
			return a.Values[value]
		}
		return a.Value == value
	}

	choices := make([]Choice, 0, len(b.Options)+1)
	for _, o := range b.Options {
		choices = append(choices, Choice{
			ID:       o.ID,
			Text:     o.Text,
			Value:    o.Value,
			Selected: selected(o.Value),
		})
	}
	if b.AllowOther {
		label := b.OtherText
		if label == "" {
			label = "Other:"
		}
		choices = append(choices, Choice{
			Text:     label,
			Value:    OtherValue,
			Selected: selected(OtherValue),
			IsOther:  true,
		})
	}
	return choices
}

// renderScale expands the bounds into discrete points. An inverted
// range yields zero points.
func renderScale(b *model.ScaleBody, a *Answer) []ScalePoint {
	if b == nil || b.Max < b.Min {
		return []ScalePoint{}
	}
	points := make([]ScalePoint, 0, b.Max-b.Min+1)
	for v := b.Min; v <= b.Max; v++ {
		p := ScalePoint{Value: v}
		switch v {
		case b.Min:
			p.Label = b.MinLabel
		case b.Max:
			p.Label = b.MaxLabel
		}
		if a != nil && a.Value == strconv.Itoa(v) {
			p.Selected = true
		}
		points = append(points, p)
	}
	return points
}

func renderGrid(b *model.GridBody, multi bool, a *Answer) *GridView {
	if b == nil {
		return nil
	}
	g := &GridView{
		Rows:    make([]Choice, len(b.Rows)),
		Columns: make([]Choice, len(b.Columns)),
		Multi:   multi,
	}
	for i, r := range b.Rows {
		g.Rows[i] = Choice{ID: r.ID, Text: r.Text, Value: r.Value}
	}
	for i, c := range b.Columns {
		g.Columns[i] = Choice{ID: c.ID, Text: c.Text, Value: c.Value}
	}
	if a == nil {
		return g
	}
	if multi {
		for key := range a.GridSet {
			g.Checked = append(g.Checked, key)
		}
		sort.Strings(g.Checked)
	} else if len(a.GridSingle) > 0 {
		g.Selected = a.GridSingle
	}
	return g
}
