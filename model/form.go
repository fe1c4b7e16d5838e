package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
)

// ErrCorruptForm marks a loaded form that fails structural invariants.
// The builder refuses to operate on such a form; it is never repaired
// silently.
var ErrCorruptForm = errors.New("corrupt form")

type Theme struct {
	PrimaryColor    string `json:"primaryColor"`
	BackgroundColor string `json:"backgroundColor"`
	FontFamily      string `json:"fontFamily"`
}

type FormSettings struct {
	AllowAnonymous         bool  `json:"allowAnonymous"`
	CollectEmail           bool  `json:"collectEmail"`
	ShowProgressBar        bool  `json:"showProgressBar"`
	AllowMultipleResponses bool  `json:"allowMultipleResponses"`
	ResponseLimit          *int  `json:"responseLimit,omitempty"`
	Theme                  Theme `json:"theme"`
}

// Form is the aggregate: ordered questions plus form-level metadata.
// Question order is display and answer order.
type Form struct {
	ID          string       `json:"id"`
	Version     int          `json:"version,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Questions   []Question   `json:"questions"`
	Settings    FormSettings `json:"settings"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func DefaultSettings() FormSettings {
	return FormSettings{
		AllowAnonymous:         true,
		ShowProgressBar:        true,
		AllowMultipleResponses: true,
		Theme: Theme{
			PrimaryColor:    "#673AB7",
			BackgroundColor: "#ffffff",
			FontFamily:      "Inter",
		},
	}
}

// NewForm creates an empty titled form with default settings.
func NewForm() Form {
	now := time.Now()
	return Form{
		ID:        uuid.Must(uuid.NewV4()).String(),
		Title:     "Untitled Form",
		Questions: []Question{},
		Settings:  DefaultSettings(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps UpdatedAt, keeping it strictly increasing even when the
// wall clock has not advanced between two mutations.
func (f *Form) Touch() {
	now := time.Now()
	if !now.After(f.UpdatedAt) {
		now = f.UpdatedAt.Add(time.Nanosecond)
	}
	f.UpdatedAt = now
}

// QuestionIndex returns the position of the question with the given id,
// or -1.
func (f *Form) QuestionIndex(id string) int {
	for i := range f.Questions {
		if f.Questions[i].ID == id {
			return i
		}
	}
	return -1
}

// Validate checks the structural invariants a form must satisfy before
// the builder will operate on it. Violations wrap ErrCorruptForm.
func (f *Form) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("%w: missing form id", ErrCorruptForm)
	}
	seen := make(map[string]bool, len(f.Questions))
	for _, q := range f.Questions {
		if q.ID == "" {
			return fmt.Errorf("%w: question with missing id", ErrCorruptForm)
		}
		if seen[q.ID] {
			return fmt.Errorf("%w: duplicate question id %s", ErrCorruptForm, q.ID)
		}
		seen[q.ID] = true
		if !KnownType(q.Type) {
			return fmt.Errorf("%w: question %s has unknown type %q", ErrCorruptForm, q.ID, q.Type)
		}
		if q.Body == nil || q.Body.Kind() != Descriptor(q.Type).Kind {
			return fmt.Errorf("%w: question %s has a body not matching type %q", ErrCorruptForm, q.ID, q.Type)
		}
	}
	if f.Settings.ResponseLimit != nil && *f.Settings.ResponseLimit <= 0 {
		return fmt.Errorf("%w: response limit must be positive", ErrCorruptForm)
	}
	return nil
}
