package inbox

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

type FetchInboxInput struct {
	WorkspaceID int64
	Since       time.Time
	Until       time.Time
	Limit       int
	OnlyUnread  bool
}

// Entry is an inbox thread flagged with its unread state.
type Entry struct {
	twist.InboxThread
	IsUnread bool
}

type FetchInboxOutput struct {
	WorkspaceID int64
	Threads     []Entry
	// UnreadCount is the server-side inbox count.
	UnreadCount   int
	UnreadThreads []twist.InboxThread
}

type FetchInbox struct {
	reader twist.Reader
}

func NewFetchInbox(reader twist.Reader) *FetchInbox {
	return &FetchInbox{reader: reader}
}

func (uc *FetchInbox) Execute(ctx context.Context, input FetchInboxInput) (*FetchInboxOutput, error) {
	if input.WorkspaceID == 0 {
		return nil, fmt.Errorf("%w: workspaceId is required", twist.ErrInvalidArgument)
	}
	limit, err := clampLimit(input.Limit)
	if err != nil {
		return nil, err
	}

	var (
		threads []twist.InboxThread
		count   int
		unread  []twist.UnreadThread
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		threads, err = uc.reader.Inbox(gctx, twist.InboxQuery{
			WorkspaceID: input.WorkspaceID,
			Since:       input.Since,
			Until:       input.Until,
			Limit:       limit,
		})
		return err
	})
	g.Go(func() error {
		var err error
		count, err = uc.reader.InboxCount(gctx, input.WorkspaceID)
		return err
	})
	g.Go(func() error {
		var err error
		unread, err = uc.reader.UnreadThreads(gctx, input.WorkspaceID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	unreadIDs := make(map[int64]struct{}, len(unread))
	for _, u := range unread {
		unreadIDs[u.ThreadID] = struct{}{}
	}

	out := &FetchInboxOutput{
		WorkspaceID:   input.WorkspaceID,
		Threads:       []Entry{},
		UnreadCount:   count,
		UnreadThreads: []twist.InboxThread{},
	}
	for _, th := range threads {
		_, isUnread := unreadIDs[th.ID]
		if isUnread {
			out.UnreadThreads = append(out.UnreadThreads, th)
		}
		if input.OnlyUnread && !isUnread {
			continue
		}
		out.Threads = append(out.Threads, Entry{InboxThread: th, IsUnread: isUnread})
	}
	return out, nil
}

func clampLimit(limit int) (int, error) {
	switch {
	case limit == 0:
		return DefaultLimit, nil
	case limit < 1 || limit > MaxLimit:
		return 0, fmt.Errorf("%w: limit must be between 1 and %d", twist.ErrInvalidArgument, MaxLimit)
	default:
		return limit, nil
	}
}
