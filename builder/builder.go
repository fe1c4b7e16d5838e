// Package builder is the editing session controller: it owns one Form
// value, funnels every mutation through the edit engine, tracks the
// dirty flag and schedules the debounced auto-save. All mutations are
// synchronous and atomic; only the save runs off a timer.
package builder

import (
	"context"
	"sync"
	"time"

	"formflow-server/editor"
	"formflow-server/log"
	"formflow-server/model"
)

// Store is the external persistence boundary. Save must be idempotent
// for an unchanged form; Load must round-trip a saved form structurally.
type Store interface {
	Save(ctx context.Context, form model.Form) (time.Time, error)
	Load(ctx context.Context, id string) (model.Form, error)
}

// Update is a partial form-level update; nested settings and theme
// merge key-by-key.
type Update struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Settings    *SettingsUpdate `json:"settings,omitempty"`
}

type SettingsUpdate struct {
	AllowAnonymous         *bool       `json:"allowAnonymous,omitempty"`
	CollectEmail           *bool       `json:"collectEmail,omitempty"`
	ShowProgressBar        *bool       `json:"showProgressBar,omitempty"`
	AllowMultipleResponses *bool       `json:"allowMultipleResponses,omitempty"`
	ResponseLimit          *int        `json:"responseLimit,omitempty"` // 0 clears the limit
	Theme                  *ThemePatch `json:"theme,omitempty"`
}

type ThemePatch struct {
	PrimaryColor    *string `json:"primaryColor,omitempty"`
	BackgroundColor *string `json:"backgroundColor,omitempty"`
	FontFamily      *string `json:"fontFamily,omitempty"`
}

type Builder struct {
	mu        sync.Mutex
	form      model.Form
	ed        *editor.Editor
	selected  string
	dirty     bool
	store     Store
	interval  time.Duration
	timer     *time.Timer
	lastSaved time.Time
	closed    bool
}

// New starts a session on a fresh empty form. interval <= 0 disables
// auto-save.
func New(store Store, interval time.Duration) *Builder {
	return &Builder{
		form:     model.NewForm(),
		ed:       editor.New(),
		store:    store,
		interval: interval,
	}
}

// Open loads an existing form into a session. A form failing structural
// validation is refused, never repaired.
func Open(ctx context.Context, store Store, id string, interval time.Duration) (*Builder, error) {
	form, err := store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	return &Builder{
		form:     form,
		ed:       editor.New(),
		store:    store,
		interval: interval,
	}, nil
}

// Form returns a snapshot of the current form. Question bodies are
// treated as immutable by every mutation path, so a slice copy is a
// safe snapshot.
func (b *Builder) Form() model.Form {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot()
}

func (b *Builder) snapshot() model.Form {
	f := b.form
	f.Questions = make([]model.Question, len(b.form.Questions))
	copy(f.Questions, b.form.Questions)
	return f
}

func (b *Builder) Selected() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selected
}

func (b *Builder) Dirty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dirty
}

func (b *Builder) LastSaved() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastSaved
}

// AddQuestion creates a question of the given type from its descriptor
// defaults, appends it and selects it. The new question's id is
// returned.
func (b *Builder) AddQuestion(qt model.QuestionType) string {
	if !model.KnownType(qt) {
		return ""
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	q := model.NewQuestion(qt)
	b.form.Questions = append(b.form.Questions, q)
	b.selected = q.ID
	b.touch()
	return q.ID
}

// UpdateQuestion merges a partial update into the question. A missing
// id leaves the form unchanged.
func (b *Builder) UpdateQuestion(id string, u editor.Update) {
	b.editQuestion(id, func(q model.Question) model.Question {
		return b.ed.Apply(q, u)
	})
}

func (b *Builder) AddOption(id, text string) {
	b.editQuestion(id, func(q model.Question) model.Question {
		return editor.AddOption(q, text)
	})
}

func (b *Builder) RemoveOption(id, optionID string) {
	b.editQuestion(id, func(q model.Question) model.Question {
		return editor.RemoveOption(q, optionID)
	})
}

func (b *Builder) RenameOption(id, optionID, text string) {
	b.editQuestion(id, func(q model.Question) model.Question {
		return editor.RenameOption(q, optionID, text)
	})
}

func (b *Builder) AddGridRow(id, text string) {
	b.editQuestion(id, func(q model.Question) model.Question {
		return editor.AddGridRow(q, text)
	})
}

func (b *Builder) RemoveGridRow(id, rowID string) {
	b.editQuestion(id, func(q model.Question) model.Question {
		return editor.RemoveGridRow(q, rowID)
	})
}

func (b *Builder) RenameGridRow(id, rowID, text string) {
	b.editQuestion(id, func(q model.Question) model.Question {
		return editor.RenameGridRow(q, rowID, text)
	})
}

func (b *Builder) AddGridColumn(id, text string) {
	b.editQuestion(id, func(q model.Question) model.Question {
		return editor.AddGridColumn(q, text)
	})
}

func (b *Builder) RemoveGridColumn(id, colID string) {
	b.editQuestion(id, func(q model.Question) model.Question {
		return editor.RemoveGridColumn(q, colID)
	})
}

func (b *Builder) RenameGridColumn(id, colID, text string) {
	b.editQuestion(id, func(q model.Question) model.Question {
		return editor.RenameGridColumn(q, colID, text)
	})
}

func (b *Builder) editQuestion(id string, edit func(model.Question) model.Question) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.form.QuestionIndex(id)
	if i < 0 {
		return
	}
	before := b.form.Questions[i]
	after := edit(before)

	questions := make([]model.Question, len(b.form.Questions))
	copy(questions, b.form.Questions)
	questions[i] = after
	b.form.Questions = questions
	b.touch()
}

// DeleteQuestion removes the question and clears selection if it was
// selected. Deleting an absent id is a no-op, so a double delete is
// harmless.
func (b *Builder) DeleteQuestion(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.form.QuestionIndex(id)
	if i < 0 {
		return
	}
	questions := make([]model.Question, 0, len(b.form.Questions)-1)
	questions = append(questions, b.form.Questions[:i]...)
	questions = append(questions, b.form.Questions[i+1:]...)
	b.form.Questions = questions

	if b.selected == id {
		b.selected = ""
	}
	b.ed.Forget(id)
	b.touch()
}

// DuplicateQuestion appends a deep copy at the end of the form: fresh
// id, fresh option/row/column ids, title suffixed with " (Copy)". The
// new question's id is returned, or "" if the original is gone.
func (b *Builder) DuplicateQuestion(id string) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.form.QuestionIndex(id)
	if i < 0 {
		return ""
	}
	dup := b.form.Questions[i].Clone()
	dup.Title += " (Copy)"
	questions := make([]model.Question, len(b.form.Questions), len(b.form.Questions)+1)
	copy(questions, b.form.Questions)
	b.form.Questions = append(questions, dup)
	b.touch()
	return dup.ID
}

// MoveQuestion removes the question at from and reinserts it at to.
// Out-of-range indices are a no-op.
func (b *Builder) MoveQuestion(from, to int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(b.form.Questions)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return
	}
	questions := make([]model.Question, 0, n)
	questions = append(questions, b.form.Questions[:from]...)
	questions = append(questions, b.form.Questions[from+1:]...)
	questions = append(questions[:to], append([]model.Question{b.form.Questions[from]}, questions[to:]...)...)
	b.form.Questions = questions
	b.touch()
}

// UpdateForm merges form-level title, description, settings and theme.
func (b *Builder) UpdateForm(u Update) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if u.Title != nil {
		b.form.Title = *u.Title
	}
	if u.Description != nil {
		b.form.Description = *u.Description
	}
	if s := u.Settings; s != nil {
		if s.AllowAnonymous != nil {
			b.form.Settings.AllowAnonymous = *s.AllowAnonymous
		}
		if s.CollectEmail != nil {
			b.form.Settings.CollectEmail = *s.CollectEmail
		}
		if s.ShowProgressBar != nil {
			b.form.Settings.ShowProgressBar = *s.ShowProgressBar
		}
		if s.AllowMultipleResponses != nil {
			b.form.Settings.AllowMultipleResponses = *s.AllowMultipleResponses
		}
		if s.ResponseLimit != nil {
			if *s.ResponseLimit > 0 {
				limit := *s.ResponseLimit
				b.form.Settings.ResponseLimit = &limit
			} else {
				b.form.Settings.ResponseLimit = nil
			}
		}
		if t := s.Theme; t != nil {
			if t.PrimaryColor != nil {
				b.form.Settings.Theme.PrimaryColor = *t.PrimaryColor
			}
			if t.BackgroundColor != nil {
				b.form.Settings.Theme.BackgroundColor = *t.BackgroundColor
			}
			if t.FontFamily != nil {
				b.form.Settings.Theme.FontFamily = *t.FontFamily
			}
		}
	}
	b.touch()
}

// Save persists the current form through the store. On failure the
// in-memory form stays authoritative and dirty; there is no rollback
// and no automatic retry.
func (b *Builder) Save(ctx context.Context) error {
	b.mu.Lock()
	snapshot := b.snapshot()
	b.mu.Unlock()

	ts, err := b.store.Save(ctx, snapshot)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastSaved = ts
	// edits that landed while the save was in flight stay dirty and
	// ride along in the next snapshot
	if b.form.UpdatedAt.Equal(snapshot.UpdatedAt) {
		b.dirty = false
	}
	return nil
}

// Close ends the session, canceling any pending auto-save without
// forcing one.
func (b *Builder) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

// touch marks the form dirty and restarts the inactivity window.
// Callers hold the lock.
func (b *Builder) touch() {
	b.form.Touch()
	b.dirty = true

	if b.interval <= 0 || b.closed {
		return
	}
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.interval, b.autoSave)
}

func (b *Builder) autoSave() {
	b.mu.Lock()
	if b.closed || !b.dirty {
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()

	if err := b.Save(context.Background()); err != nil {
		log.Errorf("builder.autosave: %s", err)
	}
}
