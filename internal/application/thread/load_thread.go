package thread

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/felixgeelhaar/twist-mcp/internal/application/lookup"
	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

type LoadThreadInput struct {
	ThreadID            int64
	NewerThan           time.Time
	OlderThan           time.Time
	Limit               int
	IncludeParticipants bool
}

type LoadThreadOutput struct {
	Thread      twist.Thread
	ChannelName string
	Comments    []twist.Comment
	// Participants is empty unless requested.
	Participants []int64
	UserNames    map[int64]string
}

type LoadThread struct {
	reader twist.Reader
	dir    twist.Directory
	webURL string
}

func NewLoadThread(reader twist.Reader, dir twist.Directory, webURL string) *LoadThread {
	return &LoadThread{reader: reader, dir: dir, webURL: webURL}
}

func (uc *LoadThread) Execute(ctx context.Context, input LoadThreadInput) (*LoadThreadOutput, error) {
	if input.ThreadID == 0 {
		return nil, fmt.Errorf("%w: threadId is required", twist.ErrInvalidArgument)
	}
	limit := input.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", twist.ErrInvalidArgument, MaxLimit)
	}

	var (
		th       *twist.Thread
		comments []twist.Comment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		th, err = uc.reader.Thread(gctx, input.ThreadID)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = uc.reader.Comments(gctx, twist.CommentQuery{
			ThreadID:  input.ThreadID,
			NewerThan: input.NewerThan,
			OlderThan: input.OlderThan,
			Limit:     limit,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	userIDs := []int64{th.Creator}
	for _, c := range comments {
		userIDs = append(userIDs, c.Creator)
	}
	out := &LoadThreadOutput{Participants: []int64{}, Comments: []twist.Comment{}}
	if input.IncludeParticipants {
		out.Participants = append(out.Participants, th.Participants...)
		userIDs = append(userIDs, th.Participants...)
	}

	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		ch, err := uc.dir.Channel(gctx, th.ChannelID)
		if err != nil {
			return err
		}
		out.ChannelName = ch.Name
		return nil
	})
	g.Go(func() error {
		var err error
		out.UserNames, err = lookup.UserNames(gctx, uc.dir, th.WorkspaceID, userIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if th.URL == "" {
		th.URL = twist.ThreadURL(uc.webURL, th.WorkspaceID, th.ChannelID, th.ID)
	}
	out.Thread = *th
	for _, c := range comments {
		if c.URL == "" {
			c.URL = twist.CommentURL(uc.webURL, th.WorkspaceID, th.ChannelID, c.ThreadID, c.ID)
		}
		out.Comments = append(out.Comments, c)
	}
	return out, nil
}
