package conversation

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

type LoadConversationInput struct {
	ConversationID      int64
	NewerThan           time.Time
	OlderThan           time.Time
	Limit               int
	IncludeParticipants bool
}

type LoadConversationOutput struct {
	Conversation twist.Conversation
	URL          string
	Messages     []twist.Message
	UserNames    map[int64]string
}

type LoadConversation struct {
	reader twist.Reader
	dir    twist.Directory
	webURL string
}

func NewLoadConversation(reader twist.Reader, dir twist.Directory, webURL string) *LoadConversation {
	return &LoadConversation{reader: reader, dir: dir, webURL: webURL}
}

func (uc *LoadConversation) Execute(ctx context.Context, input LoadConversationInput) (*LoadConversationOutput, error) {
	if input.ConversationID == 0 {
		return nil, fmt.Errorf("%w: conversationId is required", twist.ErrInvalidArgument)
	}
	limit := input.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", twist.ErrInvalidArgument, MaxLimit)
	}

	var (
		conv     *twist.Conversation
		messages []twist.Message
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		conv, err = uc.reader.Conversation(gctx, input.ConversationID)
		return err
	})
	g.Go(func() error {
		var err error
		messages, err = uc.reader.Messages(gctx, twist.MessageQuery{
			ConversationID: input.ConversationID,
			NewerThan:      input.NewerThan,
			OlderThan:      input.OlderThan,
			Limit:          limit,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	userIDs := append([]int64{}, conv.UserIDs...)
	for _, m := range messages {
		userIDs = append(userIDs, m.Creator)
	}
	names, err := lookup.UserNames(ctx, uc.dir, conv.WorkspaceID, userIDs)
	if err != nil {
		return nil, err
	}

	out := &LoadConversationOutput{
		Conversation: *conv,
		URL:          twist.ConversationURL(uc.webURL, conv.WorkspaceID, conv.ID),
		Messages:     make([]twist.Message, 0, len(messages)),
		UserNames:    names,
	}
	if !input.IncludeParticipants {
		out.Conversation.UserIDs = []int64{}
	}
	for _, m := range messages {
		if m.URL == "" {
			m.URL = twist.MessageURL(uc.webURL, conv.WorkspaceID, m.ConversationID, m.ID)
		}
		out.Messages = append(out.Messages, m)
	}
	return out, nil
}
