// Package editor applies partial updates to questions without breaking
// their structural invariants. Every operation is a total function: a
// malformed or stale id is absorbed as a no-op, never an error, since it
// only ever means a UI callback outlived the thing it pointed at.
package editor

import (
	"strings"

	"formflow-server/model"
)

// Update is a partial question update. Nil pointers leave the field
// untouched; settings and validation merge key-by-key so that setting
// one key never clobbers its siblings.
type Update struct {
	Type        *model.QuestionType `json:"type,omitempty"`
	Title       *string             `json:"title,omitempty"`
	Description *string             `json:"description,omitempty"`
	Required    *bool               `json:"required,omitempty"`
	Validation  *ValidationPatch    `json:"validation,omitempty"`
	Settings    *SettingsPatch      `json:"settings,omitempty"`
}

type ValidationPatch struct {
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	MinLength   *int     `json:"minLength,omitempty"`
	MaxLength   *int     `json:"maxLength,omitempty"`
	Pattern     *string  `json:"pattern,omitempty"`
	FileTypes   []string `json:"fileTypes,omitempty"`
	MaxFileSize *int64   `json:"maxFileSize,omitempty"`
}

type ScaleLabelsPatch struct {
	Min *string `json:"min,omitempty"`
	Max *string `json:"max,omitempty"`
}

// SettingsPatch mirrors the wire settings bag. Keys not applicable to
// the question's current type are ignored, never validated against.
type SettingsPatch struct {
	AllowMultiple     *bool             `json:"allowMultiple,omitempty"`
	AllowOther        *bool             `json:"allowOther,omitempty"`
	OtherText         *string           `json:"otherText,omitempty"`
	ShuffleOptions    *bool             `json:"shuffleOptions,omitempty"`
	LinearScaleMin    *int              `json:"linearScaleMin,omitempty"`
	LinearScaleMax    *int              `json:"linearScaleMax,omitempty"`
	LinearScaleLabels *ScaleLabelsPatch `json:"linearScaleLabels,omitempty"`
	ImageURL          *string           `json:"imageUrl,omitempty"`
	ImageAlt          *string           `json:"imageAlt,omitempty"`
	ImageTitle        *string           `json:"imageTitle,omitempty"`
	VideoURL          *string           `json:"videoUrl,omitempty"`
	VideoTitle        *string           `json:"videoTitle,omitempty"`
	VideoDescription  *string           `json:"videoDescription,omitempty"`
}

// Editor owns the retype stash: the last-seen body of each shape, per
// question, so a retype round trip A→B→A restores A's data untouched.
// The stash lives for the editing session and is never persisted.
type Editor struct {
	stash map[string]map[model.BodyKind]model.Body
}

func New() *Editor {
	return &Editor{stash: make(map[string]map[model.BodyKind]model.Body)}
}

// Apply merges a partial update into a copy of q. A type change runs
// first so body patches land on the new body.
func (e *Editor) Apply(q model.Question, u Update) model.Question {
	if u.Type != nil && model.KnownType(*u.Type) && *u.Type != q.Type {
		q = e.Retype(q, *u.Type)
	}
	if u.Title != nil {
		q.Title = *u.Title
	}
	if u.Description != nil {
		q.Description = *u.Description
	}
	if u.Required != nil {
		q.Required = *u.Required
	}
	if u.Validation != nil || u.Settings != nil {
		q.Body = patchBody(copyBody(q.Body), u)
	}
	return q
}

// Retype switches the question type. Same body kind keeps the body as
// is; crossing kinds stashes the outgoing body and revives a previously
// stashed body of the target kind, falling back to the descriptor's
// defaults. Nothing is discarded, so no retype loses data.
func (e *Editor) Retype(q model.Question, qt model.QuestionType) model.Question {
	if !model.KnownType(qt) || qt == q.Type {
		return q
	}
	from, to := model.Descriptor(q.Type), model.Descriptor(qt)
	q.Type = qt
	if from.Kind == to.Kind {
		return q
	}

	kinds := e.stash[q.ID]
	if kinds == nil {
		kinds = make(map[model.BodyKind]model.Body)
		e.stash[q.ID] = kinds
	}
	kinds[from.Kind] = q.Body

	if revived, ok := kinds[to.Kind]; ok {
		q.Body = revived
	} else {
		q.Body = to.NewBody()
	}
	return q
}

// Forget drops the retype stash for a deleted question.
func (e *Editor) Forget(questionID string) {
	delete(e.stash, questionID)
}

// AddOption appends a new option built from text. Whitespace-only text
// is rejected as a no-op; duplicate text is fine, options are identity
// distinguished.
func AddOption(q model.Question, text string) model.Question {
	b := q.Choice()
	text = strings.TrimSpace(text)
	if b == nil || text == "" {
		return q
	}
	c := *b
	c.Options = append(copySlice(b.Options), model.NewOption(text))
	q.Body = &c
	return q
}

func RemoveOption(q model.Question, optionID string) model.Question {
	b := q.Choice()
	if b == nil {
		return q
	}
	c := *b
	c.Options = removeByID(b.Options, optionID)
	q.Body = &c
	return q
}

func RenameOption(q model.Question, optionID, text string) model.Question {
	b := q.Choice()
	if b == nil {
		return q
	}
	c := *b
	c.Options = renameByID(b.Options, optionID, text)
	q.Body = &c
	return q
}

// Grid row and column operations mirror the option operations, applied
// independently per axis.

func AddGridRow(q model.Question, text string) model.Question {
	return withGrid(q, func(g *model.GridBody) {
		if text = strings.TrimSpace(text); text != "" {
			g.Rows = append(g.Rows, model.NewOption(text))
		}
	})
}

func RemoveGridRow(q model.Question, rowID string) model.Question {
	return withGrid(q, func(g *model.GridBody) {
		g.Rows = removeByID(g.Rows, rowID)
	})
}

func RenameGridRow(q model.Question, rowID, text string) model.Question {
	return withGrid(q, func(g *model.GridBody) {
		g.Rows = renameByID(g.Rows, rowID, text)
	})
}

func AddGridColumn(q model.Question, text string) model.Question {
	return withGrid(q, func(g *model.GridBody) {
		if text = strings.TrimSpace(text); text != "" {
			g.Columns = append(g.Columns, model.NewOption(text))
		}
	})
}

func RemoveGridColumn(q model.Question, colID string) model.Question {
	return withGrid(q, func(g *model.GridBody) {
		g.Columns = removeByID(g.Columns, colID)
	})
}

func RenameGridColumn(q model.Question, colID, text string) model.Question {
	return withGrid(q, func(g *model.GridBody) {
		g.Columns = renameByID(g.Columns, colID, text)
	})
}

func withGrid(q model.Question, edit func(*model.GridBody)) model.Question {
	b := q.Grid()
	if b == nil {
		return q
	}
	g := *b
	g.Rows = copySlice(b.Rows)
	g.Columns = copySlice(b.Columns)
	edit(&g)
	q.Body = &g
	return q
}

func patchBody(b model.Body, u Update) model.Body {
	v, s := u.Validation, u.Settings

	switch b := b.(type) {
	case *model.InputBody:
		if v == nil {
			break
		}
		if v.Min != nil {
			b.Validation.Min = v.Min
		}
		if v.Max != nil {
			b.Validation.Max = v.Max
		}
		if v.MinLength != nil {
			b.Validation.MinLength = v.MinLength
		}
		if v.MaxLength != nil {
			b.Validation.MaxLength = v.MaxLength
		}
		if v.Pattern != nil {
			b.Validation.Pattern = *v.Pattern
		}
	case *model.ChoiceBody:
		if s == nil {
			break
		}
		if s.AllowOther != nil {
			b.AllowOther = *s.AllowOther
		}
		if s.OtherText != nil {
			b.OtherText = *s.OtherText
		}
		if s.ShuffleOptions != nil {
			b.ShuffleOptions = *s.ShuffleOptions
		}
	case *model.ScaleBody:
		if s == nil {
			break
		}
		if s.LinearScaleMin != nil {
			b.Min = *s.LinearScaleMin
		}
		if s.LinearScaleMax != nil {
			b.Max = *s.LinearScaleMax
		}
		if l := s.LinearScaleLabels; l != nil {
			if l.Min != nil {
				b.MinLabel = *l.Min
			}
			if l.Max != nil {
				b.MaxLabel = *l.Max
			}
		}
	case *model.FileBody:
		if s != nil && s.AllowMultiple != nil {
			b.AllowMultiple = *s.AllowMultiple
		}
		if v != nil {
			if v.FileTypes != nil {
				b.FileTypes = v.FileTypes
			}
			if v.MaxFileSize != nil {
				b.MaxFileSize = *v.MaxFileSize
			}
		}
	case *model.MediaBody:
		if s == nil {
			break
		}
		if s.ImageURL != nil {
			b.URL = *s.ImageURL
		}
		if s.VideoURL != nil {
			b.URL = *s.VideoURL
		}
		if s.ImageAlt != nil {
			b.Alt = *s.ImageAlt
		}
		if s.ImageTitle != nil {
			b.Title = *s.ImageTitle
		}
		if s.VideoTitle != nil {
			b.Title = *s.VideoTitle
		}
		if s.VideoDescription != nil {
			b.Description = *s.VideoDescription
		}
	}
	return b
}

// copyBody duplicates a body preserving option identities, unlike
// Body.Clone which mints fresh ids for duplication.
func copyBody(b model.Body) model.Body {
	switch b := b.(type) {
	case *model.InputBody:
		c := *b
		return &c
	case *model.ChoiceBody:
		c := *b
		c.Options = copySlice(b.Options)
		return &c
	case *model.ScaleBody:
		c := *b
		return &c
	case *model.GridBody:
		c := *b
		c.Rows = copySlice(b.Rows)
		c.Columns = copySlice(b.Columns)
		return &c
	case *model.FileBody:
		c := *b
		c.FileTypes = append([]string(nil), b.FileTypes...)
		return &c
	case *model.MediaBody:
		c := *b
		return &c
	case *model.StaticBody:
		return &model.StaticBody{}
	}
	return b
}

func copySlice(opts []model.OptionItem) []model.OptionItem {
	if opts == nil {
		return nil
	}
	out := make([]model.OptionItem, len(opts))
	copy(out, opts)
	return out
}

func removeByID(opts []model.OptionItem, id string) []model.OptionItem {
	out := make([]model.OptionItem, 0, len(opts))
	for _, o := range opts {
		if o.ID != id {
			out = append(out, o)
		}
	}
	return out
}

func renameByID(opts []model.OptionItem, id, text string) []model.OptionItem {
	out := copySlice(opts)
	for i, o := range out {
		if o.ID == id {
			out[i] = o.Rename(text)
		}
	}
	return out
}
