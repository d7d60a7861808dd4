// Package journal stores the call history in the local SQLite database.
package journal

import (
	"context"
	"database/sql"
	"time"

	"github.com/felixgeelhaar/twist-mcp/internal/application/history"
)

// SQLiteStore implements history.Store. The call_journal table is created by
// localstore.InitSchema.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Append(ctx context.Context, e history.Entry) error {
	args := e.Arguments
	if args == nil {
		args = []byte("{}")
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO call_journal (id, tool, arguments, status, error, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		e.ID, e.Tool, args, string(e.Status), e.Error, e.CreatedAt.UTC(),
	)
	return err
}

func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]history.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, tool, arguments, status, error, created_at FROM call_journal ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	entries := []history.Entry{}
	for rows.Next() {
		var (
			e      history.Entry
			status string
		)
		if err := rows.Scan(&e.ID, &e.Tool, &e.Arguments, &status, &e.Error, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Status = history.Status(status)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) PruneBefore(ctx context.Context, t time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM call_journal WHERE created_at < ?", t.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

var _ history.Store = (*SQLiteStore)(nil)
