// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

const defaultLimit = 50

// QueryOptions filters journal listings.
type QueryOptions struct {
	// Op restricts results to one operation name ("split", "merge", ...).
	Op string

	// FailedOnly keeps only operations that did not succeed.
	FailedOnly bool

	// Limit caps the result count. Zero uses the default of 50.
	Limit int
}

// List returns matching operations, newest first, with their outputs.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]types.JournalEntry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT id, op, inputs, ok, message, created_at FROM operations WHERE 1=1`)
	if opts.Op != "" {
		qb.WriteString(` AND op = ?`)
		args = append(args, opts.Op)
	}
	if opts.FailedOnly {
		qb.WriteString(` AND ok = 0`)
	}
	qb.WriteString(` ORDER BY created_at DESC, rowid DESC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var entries []types.JournalEntry
	for rows.Next() {
		var (
			e          types.JournalEntry
			inputsJSON sql.NullString
			message    sql.NullString
			created    string
		)
		if err := rows.Scan(&e.ID, &e.Op, &inputsJSON, &e.OK, &message, &created); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if inputsJSON.Valid {
			json.Unmarshal([]byte(inputsJSON.String), &e.Inputs)
		}
		e.Message = message.String
		if t, err := time.Parse(timeLayout, created); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		outs, err := s.outputs(ctx, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Outputs = outs
	}
	return entries, nil
}

func (s *Store) outputs(ctx context.Context, id string) ([]types.OutputRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, size, digest FROM outputs WHERE operation_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("querying outputs: %w", err)
	}
	defer rows.Close()

	var outs []types.OutputRecord
	for rows.Next() {
		var (
			o      types.OutputRecord
			size   sql.NullInt64
			digest sql.NullString
		)
		if err := rows.Scan(&o.Path, &size, &digest); err != nil {
			return nil, fmt.Errorf("scanning output: %w", err)
		}
		o.Size, o.Digest = size.Int64, digest.String
		outs = append(outs, o)
	}
	return outs, rows.Err()
}

// Verify reports, for each output of the operation id, whether the file on
// disk still matches the recorded digest.
func (s *Store) Verify(ctx context.Context, id string) (map[string]bool, error) {
	outs, err := s.outputs(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(outs) == 0 {
		var n int
		if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM operations WHERE id = ?`, id).Scan(&n); err != nil {
			return nil, fmt.Errorf("looking up operation: %w", err)
		}
		if n == 0 {
			return nil, fmt.Errorf("operation %s not found", id)
		}
	}

	result := make(map[string]bool, len(outs))
	for _, o := range outs {
		digest, _, err := Digest(o.Path)
		result[o.Path] = err == nil && o.Digest != "" && digest == o.Digest
	}
	return result, nil
}
