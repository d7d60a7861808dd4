package reply

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
)

// ReplyInput posts Content as a comment on a thread or a message in a
// conversation. Recipients only apply to thread comments.
type ReplyInput struct {
	TargetType twist.TargetKind
	TargetID   int64
	Content    string
	Recipients []int64
}

type ReplyOutput struct {
	TargetType twist.TargetKind
	TargetID   int64
	ReplyID    int64
	Content    string
	Created    time.Time
	URL        string
}

type Reply struct {
	writer twist.Writer
	webURL string
	now    func() time.Time
}

func NewReply(writer twist.Writer, webURL string) *Reply {
	return &Reply{writer: writer, webURL: webURL, now: time.Now}
}

func (uc *Reply) Execute(ctx context.Context, input ReplyInput) (*ReplyOutput, error) {
	kind, err := twist.ParseTargetKind(string(input.TargetType))
	if err != nil {
		return nil, err
	}
	if input.TargetID == 0 {
		return nil, fmt.Errorf("%w: targetId is required", twist.ErrInvalidArgument)
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("%w: content must not be empty", twist.ErrInvalidArgument)
	}

	out := &ReplyOutput{TargetType: kind, TargetID: input.TargetID, Content: input.Content}

	switch kind {
	case twist.KindThread:
		c, err := uc.writer.AddComment(ctx, twist.NewComment{
			ThreadID:   input.TargetID,
			Content:    input.Content,
			Recipients: input.Recipients,
		})
		if err != nil {
			return nil, err
		}
		out.ReplyID, out.Created, out.URL = c.ID, c.Posted, c.URL
		if out.URL == "" {
			out.URL = twist.CommentURL(uc.webURL, c.WorkspaceID, c.ChannelID, c.ThreadID, c.ID)
		}
	case twist.KindConversation:
		m, err := uc.writer.AddMessage(ctx, twist.NewMessage{
			ConversationID: input.TargetID,
			Content:        input.Content,
		})
		if err != nil {
			return nil, err
		}
		out.ReplyID, out.Created, out.URL = m.ID, m.Posted, m.URL
		if out.URL == "" {
			out.URL = twist.MessageURL(uc.webURL, m.WorkspaceID, m.ConversationID, m.ID)
		}
	}

	if out.Created.IsZero() {
		out.Created = uc.now().UTC()
	}
	return out, nil
}
