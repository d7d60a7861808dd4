// Package lookup resolves user and channel ids to display names through the
// Directory port, fanning requests out concurrently.
package lookup

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
)

// maxInFlight bounds concurrent directory requests per call.
const maxInFlight = 8

// UserNames maps each distinct user id to its name in the workspace.
// Users that no longer exist are left out of the map.
func UserNames(ctx context.Context, dir twist.Directory, workspaceID int64, ids []int64) (map[int64]string, error) {
	return resolve(ctx, ids, func(ctx context.Context, id int64) (string, error) {
		u, err := dir.WorkspaceUser(ctx, workspaceID, id)
		if err != nil {
			return "", err
		}
		return u.Name, nil
	})
}

// ChannelNames maps each distinct channel id to its name.
func ChannelNames(ctx context.Context, dir twist.Directory, ids []int64) (map[int64]string, error) {
	return resolve(ctx, ids, func(ctx context.Context, id int64) (string, error) {
		ch, err := dir.Channel(ctx, id)
		if err != nil {
			return "", err
		}
		return ch.Name, nil
	})
}

func resolve(ctx context.Context, ids []int64, fetch func(context.Context, int64) (string, error)) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxInFlight)
	for _, id := range Unique(ids) {
		g.Go(func() error {
			name, err := fetch(gctx, id)
			if errors.Is(err, twist.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			mu.Lock()
			names[id] = name
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return names, nil
}

// Unique drops zero ids and duplicates, keeping first-seen order.
func Unique(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
