package reaction

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
)

type Operation string

const (
	OperationAdd    Operation = "add"
	OperationRemove Operation = "remove"
)

type ReactInput struct {
	TargetType twist.ReactionTarget
	TargetID   int64
	Emoji      string
	// Operation defaults to add.
	Operation Operation
}

type ReactOutput struct {
	TargetType twist.ReactionTarget
	TargetID   int64
	Emoji      string
	Operation  Operation
	TargetURL  string
}

type React struct {
	reader twist.Reader
	writer twist.Writer
	webURL string
}

func NewReact(reader twist.Reader, writer twist.Writer, webURL string) *React {
	return &React{reader: reader, writer: writer, webURL: webURL}
}

func (uc *React) Execute(ctx context.Context, input ReactInput) (*ReactOutput, error) {
	target, err := twist.ParseReactionTarget(string(input.TargetType))
	if err != nil {
		return nil, err
	}
	op := input.Operation
	if op == "" {
		op = OperationAdd
	}
	if op != OperationAdd && op != OperationRemove {
		return nil, fmt.Errorf("%w: operation must be add or remove", twist.ErrInvalidArgument)
	}
	if input.TargetID == 0 {
		return nil, fmt.Errorf("%w: targetId is required", twist.ErrInvalidArgument)
	}
	emoji := strings.TrimSpace(input.Emoji)
	if emoji == "" {
		return nil, fmt.Errorf("%w: emoji must not be empty", twist.ErrInvalidArgument)
	}

	// Resolve the target first so a missing object fails before mutating.
	targetURL, err := uc.targetURL(ctx, target, input.TargetID)
	if err != nil {
		return nil, err
	}

	r := twist.Reaction{Target: target, TargetID: input.TargetID, Emoji: emoji}
	if op == OperationAdd {
		err = uc.writer.AddReaction(ctx, r)
	} else {
		err = uc.writer.RemoveReaction(ctx, r)
	}
	if err != nil {
		return nil, err
	}

	return &ReactOutput{
		TargetType: target,
		TargetID:   input.TargetID,
		Emoji:      emoji,
		Operation:  op,
		TargetURL:  targetURL,
	}, nil
}

func (uc *React) targetURL(ctx context.Context, target twist.ReactionTarget, id int64) (string, error) {
	switch target {
	case twist.ReactOnThread:
		th, err := uc.reader.Thread(ctx, id)
		if err != nil {
			return "", err
		}
		if th.URL != "" {
			return th.URL, nil
		}
		return twist.ThreadURL(uc.webURL, th.WorkspaceID, th.ChannelID, th.ID), nil
	case twist.ReactOnComment:
		c, err := uc.reader.Comment(ctx, id)
		if err != nil {
			return "", err
		}
		if c.URL != "" {
			return c.URL, nil
		}
		return twist.CommentURL(uc.webURL, c.WorkspaceID, c.ChannelID, c.ThreadID, c.ID), nil
	default:
		m, err := uc.reader.Message(ctx, id)
		if err != nil {
			return "", err
		}
		if m.URL != "" {
			return m.URL, nil
		}
		return twist.MessageURL(uc.webURL, m.WorkspaceID, m.ConversationID, m.ID), nil
	}
}
