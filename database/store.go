package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"formflow-server/model"
)

// ErrNotFound is returned by Load and Delete for an unknown form id.
var ErrNotFound = errors.New("form not found")

// FormStore persists forms to sqlite. It satisfies builder.Store: Save
// is idempotent for an unchanged form and Load returns a structurally
// identical form, ids and ordering included.
type FormStore struct {
	db *sql.DB
}

func NewFormStore(db *sql.DB) *FormStore {
	return &FormStore{db: db}
}

func (s *FormStore) Save(ctx context.Context, form model.Form) (time.Time, error) {
	settings, err := json.Marshal(form.Settings)
	if err != nil {
		return time.Time{}, fmt.Errorf("save form: encode settings: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return time.Time{}, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO form (id, title, description, settings, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			version = version+1,
			title = excluded.title,
			description = excluded.description,
			settings = excluded.settings,
			updated_at = excluded.updated_at`,
		form.ID,
		form.Title,
		form.Description,
		string(settings),
		form.CreatedAt,
		form.UpdatedAt,
	)
	if err != nil {
		return time.Time{}, fmt.Errorf("save form: %w", err)
	}

	// questions are rewritten wholesale, like survey fields
	_, err = tx.ExecContext(ctx, `
		DELETE FROM question
		WHERE form_id = ?`,
		form.ID,
	)
	if err != nil {
		return time.Time{}, fmt.Errorf("save form: clear questions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO question (id, form_id, position, payload)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return time.Time{}, fmt.Errorf("save form: prepare questions: %w", err)
	}
	defer stmt.Close()

	for i, q := range form.Questions {
		payload, err := json.Marshal(q)
		if err != nil {
			return time.Time{}, fmt.Errorf("save form: encode question %s: %w", q.ID, err)
		}
		_, err = stmt.ExecContext(ctx, q.ID, form.ID, i, string(payload))
		if err != nil {
			return time.Time{}, fmt.Errorf("save form: insert question %s: %w", q.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return time.Time{}, fmt.Errorf("save form: commit: %w", err)
	}
	return time.Now(), nil
}

func (s *FormStore) Load(ctx context.Context, id string) (form model.Form, err error) {
	var settings string
	err = s.db.QueryRowContext(ctx, `
		SELECT id, version, title, description, settings, created_at, updated_at
		FROM form
		WHERE id = ?`,
		id,
	).Scan(&form.ID, &form.Version, &form.Title, &form.Description, &settings, &form.CreatedAt, &form.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return form, ErrNotFound
	}
	if err != nil {
		return form, fmt.Errorf("load form: %w", err)
	}

	if err = json.Unmarshal([]byte(settings), &form.Settings); err != nil {
		return form, fmt.Errorf("load form: decode settings: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT payload
		FROM question
		WHERE form_id = ?
		ORDER BY position`,
		id,
	)
	if err != nil {
		return form, fmt.Errorf("load form: questions: %w", err)
	}
	defer rows.Close()

	form.Questions = []model.Question{}
	for rows.Next() {
		var payload string
		if err = rows.Scan(&payload); err != nil {
			return form, fmt.Errorf("load form: scan question: %w", err)
		}
		var q model.Question
		if err = json.Unmarshal([]byte(payload), &q); err != nil {
			return form, fmt.Errorf("load form: decode question: %w", err)
		}
		form.Questions = append(form.Questions, q)
	}
	return form, rows.Err()
}

// List returns form headers, newest first, without questions.
func (s *FormStore) List(ctx context.Context) ([]model.Form, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, version, title, description, created_at, updated_at
		FROM form
		ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	defer rows.Close()

	forms := []model.Form{}
	for rows.Next() {
		var f model.Form
		err = rows.Scan(&f.ID, &f.Version, &f.Title, &f.Description, &f.CreatedAt, &f.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("list forms: scan: %w", err)
		}
		forms = append(forms, f)
	}
	return forms, rows.Err()
}

func (s *FormStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM form WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete form: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete form: verify: %w", err)
	}
	if n < 1 {
		return ErrNotFound
	}
	return nil
}
