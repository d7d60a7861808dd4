// Package cache provides a SQLite-backed Directory decorator that caches
// user and channel lookups locally to reduce API calls to Twist.
// It wraps a twist.Directory, checks the local cache first, and falls
// through to inner on a miss.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
	"github.com/felixgeelhaar/twist-mcp/internal/infrastructure/localstore"
)

var _ twist.Directory = (*CachedDirectory)(nil)

// CachedDirectory decorates a twist.Directory with local SQLite caching.
type CachedDirectory struct {
	inner twist.Directory
	db    *sql.DB
	ttl   time.Duration
	now   func() time.Time
}

// NewCachedDirectory creates a cached directory decorator.
// It initializes the cache schema on the provided database connection.
func NewCachedDirectory(inner twist.Directory, db *sql.DB, ttl time.Duration) (*CachedDirectory, error) {
	if err := localstore.InitSchema(db); err != nil {
		return nil, err
	}
	return &CachedDirectory{inner: inner, db: db, ttl: ttl, now: time.Now}, nil
}

func (r *CachedDirectory) get(key string) ([]byte, bool) {
	var data []byte
	err := r.db.QueryRow(
		"SELECT value FROM cache_entries WHERE key = ? AND expires_at > ?",
		key, r.now().UTC(),
	).Scan(&data)
	if err != nil {
		return nil, false
	}
	return data, true
}

func (r *CachedDirectory) set(key string, value []byte) {
	_, _ = r.db.Exec(
		"INSERT OR REPLACE INTO cache_entries (key, value, expires_at) VALUES (?, ?, ?)",
		key, value, r.now().UTC().Add(r.ttl),
	)
}

// Evict removes expired entries from the cache.
func (r *CachedDirectory) Evict() error {
	_, err := r.db.Exec("DELETE FROM cache_entries WHERE expires_at <= ?", r.now().UTC())
	return err
}

// userCacheEntry is the serialized form of a WorkspaceUser.
type userCacheEntry struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Email     string `json:"email"`
	UserType  string `json:"user_type"`
	Timezone  string `json:"timezone"`
	Bot       bool   `json:"bot"`
	Removed   bool   `json:"removed"`
}

type channelCacheEntry struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	WorkspaceID int64  `json:"workspace_id"`
	Archived    bool   `json:"archived"`
}

func (r *CachedDirectory) WorkspaceUser(ctx context.Context, workspaceID, userID int64) (*twist.WorkspaceUser, error) {
	key := fmt.Sprintf("user:%d:%d", workspaceID, userID)
	if data, ok := r.get(key); ok {
		var e userCacheEntry
		if json.Unmarshal(data, &e) == nil {
			u := twist.WorkspaceUser(e)
			return &u, nil
		}
	}

	u, err := r.inner.WorkspaceUser(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if data, marshalErr := json.Marshal(userCacheEntry(*u)); marshalErr == nil {
		r.set(key, data)
	}
	return u, nil
}

func (r *CachedDirectory) Channel(ctx context.Context, channelID int64) (*twist.Channel, error) {
	key := fmt.Sprintf("channel:%d", channelID)
	if data, ok := r.get(key); ok {
		var e channelCacheEntry
		if json.Unmarshal(data, &e) == nil {
			ch := twist.Channel(e)
			return &ch, nil
		}
	}

	ch, err := r.inner.Channel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if data, marshalErr := json.Marshal(channelCacheEntry(*ch)); marshalErr == nil {
		r.set(key, data)
	}
	return ch, nil
}
