package scenario

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/minecalc/internal/mining"
)

// SQLStore keeps saved scenarios in the scenarios table of a migrated
// SQLite database. Rows are never updated.
type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLStore ensures the run counter singleton exists and returns a store.
func NewSQLStore(ctx context.Context, db *sql.DB) (*SQLStore, error) {
	s := &SQLStore{db: db, now: time.Now}
	if err := s.ensureRunCounter(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) ensureRunCounter(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO run_counter (id, value) VALUES (1, 0)
		ON CONFLICT(id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("insert default run_counter: %w", err)
	}
	return nil
}

func (s *SQLStore) Save(ctx context.Context, name string, in mining.Inputs, rep mining.Report) (Saved, error) {
	saved := Saved{
		ID:      uuid.New(),
		SavedAt: s.now().UTC(),
		Inputs:  in,
		Outputs: OutputsFrom(rep),
	}

	inputsJSON, err := json.Marshal(saved.Inputs)
	if err != nil {
		return Saved{}, fmt.Errorf("encode scenario inputs: %w", err)
	}
	outputsJSON, err := json.Marshal(saved.Outputs)
	if err != nil {
		return Saved{}, fmt.Errorf("encode scenario outputs: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Saved{}, fmt.Errorf("begin save transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE run_counter SET value = value + 1 WHERE id = 1`); err != nil {
		_ = tx.Rollback()
		return Saved{}, fmt.Errorf("advance run_counter: %w", err)
	}
	if err := tx.QueryRowContext(ctx, `SELECT value FROM run_counter WHERE id = 1`).Scan(&saved.Seq); err != nil {
		_ = tx.Rollback()
		return Saved{}, fmt.Errorf("query run_counter: %w", err)
	}
	saved.Name = resolveName(name, saved.Seq)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO scenarios (uuid, seq, name, saved_at, inputs_json, outputs_json)
		VALUES (?, ?, ?, ?, ?, ?)
	`, saved.ID.String(), saved.Seq, saved.Name, saved.SavedAt.Format(time.RFC3339Nano), string(inputsJSON), string(outputsJSON)); err != nil {
		_ = tx.Rollback()
		return Saved{}, fmt.Errorf("insert scenario: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Saved{}, fmt.Errorf("commit save transaction: %w", err)
	}
	return saved, nil
}

func (s *SQLStore) List(ctx context.Context) ([]Saved, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT uuid, seq, name, saved_at, inputs_json, outputs_json
		FROM scenarios
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query scenarios: %w", err)
	}
	defer rows.Close()

	saved := make([]Saved, 0)
	for rows.Next() {
		var (
			item                    Saved
			id, savedAt             string
			inputsJSON, outputsJSON string
		)
		if err := rows.Scan(&id, &item.Seq, &item.Name, &savedAt, &inputsJSON, &outputsJSON); err != nil {
			return nil, fmt.Errorf("scan scenario: %w", err)
		}
		if item.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse scenario id %q: %w", id, err)
		}
		if item.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt); err != nil {
			return nil, fmt.Errorf("parse scenario saved_at %q: %w", savedAt, err)
		}
		if err := json.Unmarshal([]byte(inputsJSON), &item.Inputs); err != nil {
			return nil, fmt.Errorf("decode scenario inputs: %w", err)
		}
		if err := json.Unmarshal([]byte(outputsJSON), &item.Outputs); err != nil {
			return nil, fmt.Errorf("decode scenario outputs: %w", err)
		}
		saved = append(saved, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scenarios: %w", err)
	}

	return saved, nil
}

func (s *SQLStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM scenarios`); err != nil {
		return fmt.Errorf("clear scenarios: %w", err)
	}
	return nil
}
