// Package history keeps a local record of tool calls that changed Twist
// state, so a user can review what was replied to, reacted on or marked done.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
)

type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

const (
	DefaultLimit     = 20
	MaxLimit         = 500
	DefaultRetention = 30 * 24 * time.Hour
)

// Entry is one recorded call. Arguments holds the raw JSON the client sent.
type Entry struct {
	ID        string    `json:"id"`
	Tool      string    `json:"tool"`
	Arguments []byte    `json:"-"`
	Status    Status    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists entries.
type Store interface {
	Append(ctx context.Context, e Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	PruneBefore(ctx context.Context, t time.Time) (int64, error)
}

// Recorder appends call outcomes to a Store.
type Recorder struct {
	store     Store
	retention time.Duration
	now       func() time.Time
}

// NewRecorder keeps entries for retention; zero means DefaultRetention.
func NewRecorder(store Store, retention time.Duration) *Recorder {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Recorder{store: store, retention: retention, now: time.Now}
}

// RecordCall stores one call. An empty callErr records success.
func (r *Recorder) RecordCall(ctx context.Context, requestID, tool string, args []byte, callErr string) error {
	e := Entry{
		ID:        requestID,
		Tool:      tool,
		Arguments: args,
		Status:    StatusOK,
		CreatedAt: r.now().UTC(),
	}
	if callErr != "" {
		e.Status, e.Error = StatusError, callErr
	}
	if len(e.Arguments) == 0 {
		e.Arguments = []byte("{}")
	}
	return r.store.Append(ctx, e)
}

// Prune drops entries older than the retention window.
func (r *Recorder) Prune(ctx context.Context) (int64, error) {
	return r.store.PruneBefore(ctx, r.now().Add(-r.retention))
}

type ListRecentInput struct {
	// Limit defaults to DefaultLimit.
	Limit int
}

type ListRecentOutput struct {
	Entries []Entry
}

// ListRecent returns the newest entries first.
type ListRecent struct {
	store Store
}

func NewListRecent(store Store) *ListRecent {
	return &ListRecent{store: store}
}

func (uc *ListRecent) Execute(ctx context.Context, input ListRecentInput) (*ListRecentOutput, error) {
	limit := input.Limit
	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit < 0 || limit > MaxLimit:
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", twist.ErrInvalidArgument, MaxLimit)
	}
	entries, err := uc.store.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return &ListRecentOutput{Entries: entries}, nil
}
