package link

import (
	"fmt"

	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
)

type Type string

const (
	TypeConversation Type = "conversation"
	TypeMessage      Type = "message"
	TypeThread       Type = "thread"
	TypeComment      Type = "comment"
)

// BuildLinkInput describes the object to link to. A conversation id takes
// precedence over a thread id.
type BuildLinkInput struct {
	WorkspaceID    int64
	ConversationID int64
	MessageID      int64
	ChannelID      int64
	ThreadID       int64
	CommentID      int64
	FullURL        bool
}

type BuildLinkOutput struct {
	URL  string
	Type Type
}

// BuildLink turns ids into a Twist web link. It makes no remote calls.
type BuildLink struct {
	webURL string
}

func NewBuildLink(webURL string) *BuildLink {
	return &BuildLink{webURL: webURL}
}

func (uc *BuildLink) Execute(input BuildLinkInput) (*BuildLinkOutput, error) {
	l := twist.Link{WorkspaceID: input.WorkspaceID}
	var typ Type

	switch {
	case input.ConversationID != 0:
		l.ConversationID, l.MessageID = input.ConversationID, input.MessageID
		typ = TypeConversation
		if input.MessageID != 0 {
			typ = TypeMessage
		}
	case input.ThreadID != 0:
		l.ThreadID, l.ChannelID, l.CommentID = input.ThreadID, input.ChannelID, input.CommentID
		typ = TypeThread
		if input.CommentID != 0 {
			if input.ChannelID == 0 {
				return nil, fmt.Errorf("%w: channelId is required when building a comment link", twist.ErrInvalidArgument)
			}
			typ = TypeComment
		}
	default:
		return nil, fmt.Errorf("%w: Must provide either conversationId OR threadId to build a link", twist.ErrInvalidArgument)
	}

	var (
		u   string
		err error
	)
	if input.FullURL {
		u, err = l.URL(uc.webURL)
	} else {
		u, err = l.Path()
	}
	if err != nil {
		return nil, err
	}
	return &BuildLinkOutput{URL: u, Type: typ}, nil
}
