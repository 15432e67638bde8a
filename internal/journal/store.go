// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal keeps an opt-in history of toolkit operations in SQLite.
// Each operation is one row with its inputs, outcome and message; each file
// it wrote is recorded with its size and a BLAKE2b-256 digest so a later run
// can tell whether an output was modified.
package journal

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/blake2b"

	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// timeLayout is fixed-width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the journal SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the journal database at path, creating its parent
// directory and the schema when missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS operations (
			id TEXT PRIMARY KEY,
			op TEXT NOT NULL,
			inputs TEXT,
			ok INTEGER NOT NULL,
			message TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS outputs (
			operation_id TEXT NOT NULL REFERENCES operations(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			path TEXT NOT NULL,
			size INTEGER,
			digest TEXT,
			PRIMARY KEY (operation_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_operations_op ON operations(op)`,
		`CREATE INDEX IF NOT EXISTS idx_operations_created ON operations(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Digest returns the hex BLAKE2b-256 digest and size of the file at path.
func Digest(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", 0, err
	}
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}

// Record stores one operation and the files it produced. Outputs that can
// no longer be read are recorded without size or digest.
func (s *Store) Record(ctx context.Context, inputs []string, res types.Result) (types.JournalEntry, error) {
	entry := types.JournalEntry{
		ID:        uuid.NewString(),
		Op:        res.Op,
		Inputs:    inputs,
		OK:        res.OK,
		Message:   res.Message,
		CreatedAt: s.now().UTC(),
	}
	for _, p := range res.Outputs {
		rec := types.OutputRecord{Path: p}
		if digest, size, err := Digest(p); err == nil {
			rec.Digest, rec.Size = digest, size
		}
		entry.Outputs = append(entry.Outputs, rec)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.JournalEntry{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	inputsJSON, _ := json.Marshal(entry.Inputs)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO operations (id, op, inputs, ok, message, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Op, string(inputsJSON), entry.OK, entry.Message, entry.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return types.JournalEntry{}, fmt.Errorf("inserting operation: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO outputs (operation_id, seq, path, size, digest) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return types.JournalEntry{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, o := range entry.Outputs {
		if _, err := stmt.ExecContext(ctx, entry.ID, i, o.Path, o.Size, o.Digest); err != nil {
			return types.JournalEntry{}, fmt.Errorf("inserting output %s: %w", o.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return types.JournalEntry{}, fmt.Errorf("committing operation: %w", err)
	}
	return entry, nil
}
