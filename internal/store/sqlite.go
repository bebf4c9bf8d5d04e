// Package store provides the SQLite datastore that receives imported questions.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/KaramelBytes/qbank-cli/internal/normalize"
	"github.com/KaramelBytes/qbank-cli/internal/pipeline"
	"github.com/KaramelBytes/qbank-cli/internal/question"
)

// Run is one recorded import.
type Run struct {
	ID        string
	Source    string
	Records   int
	Inserted  int
	Skipped   int
	CreatedAt time.Time
}

// StoredQuestion is a question row as persisted.
type StoredQuestion struct {
	ID           string
	RunID        string
	CanonicalKey string
	question.Record
}

// SQLiteStore persists unique questions keyed by canonical key.
type SQLiteStore struct {
	db *sql.DB
}

var _ pipeline.RecordStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS import_runs (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		records INTEGER NOT NULL,
		inserted INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS questions (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL,
		canonical_key TEXT NOT NULL UNIQUE,
		question_text TEXT NOT NULL,
		theme TEXT,
		level TEXT,
		answer_format TEXT,
		source_row_index INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (run_id) REFERENCES import_runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_questions_run_id ON questions(run_id);
	CREATE INDEX IF NOT EXISTS idx_questions_theme ON questions(theme);
	`
	_, err := db.Exec(schema)
	return err
}

// Publish inserts records in one transaction. Records whose canonical key is
// already stored are skipped and counted. Records with an empty key are
// rejected.
func (s *SQLiteStore) Publish(ctx context.Context, runID, source string, records []question.Record) (pipeline.PublishResult, error) {
	var res pipeline.PublishResult
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return res, err
	}
	defer tx.Rollback()

	now := time.Now()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO import_runs (id, source, records, inserted, skipped, created_at)
		 VALUES (?, ?, ?, 0, 0, ?)`,
		runID, source, len(records), now,
	); err != nil {
		return res, fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO questions
		 (id, run_id, canonical_key, question_text, theme, level, answer_format, source_row_index, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return res, err
	}
	defer stmt.Close()

	for _, r := range records {
		key := normalize.Key(r.QuestionText)
		if key == "" {
			return pipeline.PublishResult{}, fmt.Errorf("row %d: empty question text", r.SourceRowIndex)
		}
		out, err := stmt.ExecContext(ctx, uuid.NewString(), runID, key, r.QuestionText, r.Theme, r.Level, r.AnswerFormat, r.SourceRowIndex, now)
		if err != nil {
			return pipeline.PublishResult{}, fmt.Errorf("insert row %d: %w", r.SourceRowIndex, err)
		}
		if n, _ := out.RowsAffected(); n > 0 {
			res.Inserted++
		} else {
			res.Skipped++
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE import_runs SET inserted = ?, skipped = ? WHERE id = ?`,
		res.Inserted, res.Skipped, runID,
	); err != nil {
		return pipeline.PublishResult{}, fmt.Errorf("update run: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return pipeline.PublishResult{}, err
	}
	return res, nil
}

// ListRuns returns recorded imports, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, records, inserted, skipped, created_at
		 FROM import_runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Source, &r.Records, &r.Inserted, &r.Skipped, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// QuestionsByRun returns questions inserted by runID in source order.
func (s *SQLiteStore) QuestionsByRun(ctx context.Context, runID string) ([]StoredQuestion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, canonical_key, question_text, theme, level, answer_format, source_row_index
		 FROM questions WHERE run_id = ? ORDER BY source_row_index`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredQuestion
	for rows.Next() {
		var q StoredQuestion
		if err := rows.Scan(&q.ID, &q.RunID, &q.CanonicalKey, &q.QuestionText, &q.Theme, &q.Level, &q.AnswerFormat, &q.SourceRowIndex); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// CountQuestions returns the total number of stored questions.
func (s *SQLiteStore) CountQuestions(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
