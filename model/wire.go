package model

import (
	"encoding/json"
	"fmt"
)

// The wire shape of a question is flat: options, grid axes, validation
// and settings all live next to each other and only the ones applicable
// to the type are present. The typed bodies marshal into and out of that
// shape here, in one place.

type wireValidation struct {
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	MinLength   *int     `json:"minLength,omitempty"`
	MaxLength   *int     `json:"maxLength,omitempty"`
	Pattern     string   `json:"pattern,omitempty"`
	FileTypes   []string `json:"fileTypes,omitempty"`
	MaxFileSize int64    `json:"maxFileSize,omitempty"`
}

type wireScaleLabels struct {
	Min string `json:"min,omitempty"`
	Max string `json:"max,omitempty"`
}

type wireSettings struct {
	AllowMultiple     *bool            `json:"allowMultiple,omitempty"`
	AllowOther        *bool            `json:"allowOther,omitempty"`
	OtherText         string           `json:"otherText,omitempty"`
	ShuffleOptions    *bool            `json:"shuffleOptions,omitempty"`
	LinearScaleMin    *int             `json:"linearScaleMin,omitempty"`
	LinearScaleMax    *int             `json:"linearScaleMax,omitempty"`
	LinearScaleLabels *wireScaleLabels `json:"linearScaleLabels,omitempty"`
	ImageURL          string           `json:"imageUrl,omitempty"`
	ImageAlt          string           `json:"imageAlt,omitempty"`
	ImageTitle        string           `json:"imageTitle,omitempty"`
	VideoURL          string           `json:"videoUrl,omitempty"`
	VideoTitle        string           `json:"videoTitle,omitempty"`
	VideoDescription  string           `json:"videoDescription,omitempty"`
}

type wireQuestion struct {
	ID          string          `json:"id"`
	Type        QuestionType    `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Required    bool            `json:"required"`
	Options     []OptionItem    `json:"options,omitempty"`
	GridRows    []OptionItem    `json:"gridRows,omitempty"`
	GridColumns []OptionItem    `json:"gridColumns,omitempty"`
	Validation  *wireValidation `json:"validation,omitempty"`
	Settings    *wireSettings   `json:"settings,omitempty"`
}

func (q Question) MarshalJSON() ([]byte, error) {
	w := wireQuestion{
		ID:          q.ID,
		Type:        q.Type,
		Title:       q.Title,
		Description: q.Description,
		Required:    q.Required,
	}

	switch b := q.Body.(type) {
	case *InputBody:
		v := b.Validation
		if v != (Validation{}) {
			w.Validation = &wireValidation{
				Min:       v.Min,
				Max:       v.Max,
				MinLength: v.MinLength,
				MaxLength: v.MaxLength,
				Pattern:   v.Pattern,
			}
		}
	case *ChoiceBody:
		w.Options = b.Options
		w.Settings = &wireSettings{
			AllowOther:     &b.AllowOther,
			OtherText:      b.OtherText,
			ShuffleOptions: &b.ShuffleOptions,
		}
	case *ScaleBody:
		w.Settings = &wireSettings{
			LinearScaleMin: &b.Min,
			LinearScaleMax: &b.Max,
		}
		if b.MinLabel != "" || b.MaxLabel != "" {
			w.Settings.LinearScaleLabels = &wireScaleLabels{Min: b.MinLabel, Max: b.MaxLabel}
		}
	case *GridBody:
		w.GridRows = b.Rows
		w.GridColumns = b.Columns
	case *FileBody:
		w.Settings = &wireSettings{AllowMultiple: &b.AllowMultiple}
		w.Validation = &wireValidation{
			FileTypes:   b.FileTypes,
			MaxFileSize: b.MaxFileSize,
		}
	case *MediaBody:
		w.Settings = &wireSettings{}
		if q.Type == Video {
			w.Settings.VideoURL = b.URL
			w.Settings.VideoTitle = b.Title
			w.Settings.VideoDescription = b.Description
		} else {
			w.Settings.ImageURL = b.URL
			w.Settings.ImageAlt = b.Alt
			w.Settings.ImageTitle = b.Title
		}
	case *StaticBody, nil:
		// title and description only
	}

	return json.Marshal(w)
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var w wireQuestion
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if !KnownType(w.Type) {
		return fmt.Errorf("question %s: unknown type %q", w.ID, w.Type)
	}

	q.ID = w.ID
	q.Type = w.Type
	q.Title = w.Title
	q.Description = w.Description
	q.Required = w.Required

	s := w.Settings
	if s == nil {
		s = &wireSettings{}
	}
	v := w.Validation
	if v == nil {
		v = &wireValidation{}
	}

	switch Descriptor(w.Type).Kind {
	case KindInput:
		q.Body = &InputBody{Validation: Validation{
			Min:       v.Min,
			Max:       v.Max,
			MinLength: v.MinLength,
			MaxLength: v.MaxLength,
			Pattern:   v.Pattern,
		}}
	case KindChoice:
		b := &ChoiceBody{
			Options:   w.Options,
			OtherText: s.OtherText,
		}
		if s.AllowOther != nil {
			b.AllowOther = *s.AllowOther
		}
		if s.ShuffleOptions != nil {
			b.ShuffleOptions = *s.ShuffleOptions
		}
		q.Body = b
	case KindScale:
		b := &ScaleBody{Min: 1, Max: 5}
		if s.LinearScaleMin != nil {
			b.Min = *s.LinearScaleMin
		}
		if s.LinearScaleMax != nil {
			b.Max = *s.LinearScaleMax
		}
		if l := s.LinearScaleLabels; l != nil {
			b.MinLabel = l.Min
			b.MaxLabel = l.Max
		}
		q.Body = b
	case KindGrid:
		q.Body = &GridBody{Rows: w.GridRows, Columns: w.GridColumns}
	case KindFile:
		b := &FileBody{
			FileTypes:   v.FileTypes,
			MaxFileSize: v.MaxFileSize,
		}
		if s.AllowMultiple != nil {
			b.AllowMultiple = *s.AllowMultiple
		}
		q.Body = b
	case KindMedia:
		if w.Type == Video {
			q.Body = &MediaBody{URL: s.VideoURL, Title: s.VideoTitle, Description: s.VideoDescription}
		} else {
			q.Body = &MediaBody{URL: s.ImageURL, Alt: s.ImageAlt, Title: s.ImageTitle}
		}
	case KindStatic:
		q.Body = &StaticBody{}
	}

	return nil
}
