package twist

import (
	"fmt"
	"time"
)

// TargetKind selects what a mark-done or reply invocation operates on.
type TargetKind string

const (
	KindThread       TargetKind = "thread"
	KindConversation TargetKind = "conversation"
)

// ParseTargetKind validates a raw kind string.
func ParseTargetKind(s string) (TargetKind, error) {
	switch TargetKind(s) {
	case KindThread, KindConversation:
		return TargetKind(s), nil
	default:
		return "", fmt.Errorf("%w: unknown target type %q", ErrInvalidArgument, s)
	}
}

// ReactionTarget is the kind of object a reaction is attached to.
type ReactionTarget string

const (
	ReactOnThread  ReactionTarget = "thread"
	ReactOnComment ReactionTarget = "comment"
	ReactOnMessage ReactionTarget = "message"
)

func ParseReactionTarget(s string) (ReactionTarget, error) {
	switch ReactionTarget(s) {
	case ReactOnThread, ReactOnComment, ReactOnMessage:
		return ReactionTarget(s), nil
	default:
		return "", fmt.Errorf("%w: unknown reaction target %q", ErrInvalidArgument, s)
	}
}

// Scope limits a bulk thread mutation to a workspace or a channel.
// A zero field means the scope is not restricted by it.
type Scope struct {
	WorkspaceID int64
	ChannelID   int64
}

func (s Scope) IsZero() bool { return s.WorkspaceID == 0 && s.ChannelID == 0 }

// MutationOp names a single per-target side effect.
type MutationOp string

const (
	OpMarkThreadRead       MutationOp = "thread.mark_read"
	OpArchiveThread        MutationOp = "thread.archive"
	OpMarkConversationRead MutationOp = "conversation.mark_read"
	OpArchiveConversation  MutationOp = "conversation.archive"
)

// Mutation is one remote operation descriptor: an op applied to a target.
type Mutation struct {
	Op       MutationOp
	TargetID int64
}

// InboxQuery filters the inbox listing.
type InboxQuery struct {
	WorkspaceID int64
	Since       time.Time
	Until       time.Time
	Limit       int
}

// CommentQuery pages through a thread's comments.
type CommentQuery struct {
	ThreadID  int64
	NewerThan time.Time
	OlderThan time.Time
	Limit     int
}

type MessageQuery struct {
	ConversationID int64
	NewerThan      time.Time
	OlderThan      time.Time
	Limit          int
}

type SearchQuery struct {
	Query       string
	WorkspaceID int64
	ChannelIDs  []int64
	AuthorIDs   []int64
	MentionSelf bool
	DateFrom    time.Time
	DateTo      time.Time
	Limit       int
	Cursor      string
}

type NewComment struct {
	ThreadID   int64
	Content    string
	Recipients []int64
}

type NewMessage struct {
	ConversationID int64
	Content        string
}

// Reaction identifies an emoji on a thread, comment or message.
type Reaction struct {
	Target   ReactionTarget
	TargetID int64
	Emoji    string
}
