package twist

import "context"

//go:generate mockgen -destination=mock_twist/mock_twist.go -package=mock_twist . Directory,Marker

// Reader is the read side of the Twist API.
type Reader interface {
	SessionUser(ctx context.Context) (*User, error)
	Workspaces(ctx context.Context) ([]Workspace, error)
	WorkspaceUsers(ctx context.Context, workspaceID int64) ([]WorkspaceUser, error)
	Thread(ctx context.Context, id int64) (*Thread, error)
	Comments(ctx context.Context, q CommentQuery) ([]Comment, error)
	Comment(ctx context.Context, id int64) (*Comment, error)
	Conversation(ctx context.Context, id int64) (*Conversation, error)
	Messages(ctx context.Context, q MessageQuery) ([]Message, error)
	Message(ctx context.Context, id int64) (*Message, error)
	Inbox(ctx context.Context, q InboxQuery) ([]InboxThread, error)
	InboxCount(ctx context.Context, workspaceID int64) (int, error)
	UnreadThreads(ctx context.Context, workspaceID int64) ([]UnreadThread, error)
	Search(ctx context.Context, q SearchQuery) (*SearchPage, error)
}

// Directory resolves ids to the people and channels they name.
// Implementations may cache.
type Directory interface {
	WorkspaceUser(ctx context.Context, workspaceID, userID int64) (*WorkspaceUser, error)
	Channel(ctx context.Context, channelID int64) (*Channel, error)
}

// Writer creates content.
type Writer interface {
	AddComment(ctx context.Context, c NewComment) (*Comment, error)
	AddMessage(ctx context.Context, m NewMessage) (*Message, error)
	AddReaction(ctx context.Context, r Reaction) error
	RemoveReaction(ctx context.Context, r Reaction) error
}

// Marker is the narrow mutation capability used to mark threads and
// conversations done.
//
// ApplyBatch submits every mutation as one request. It either succeeds as a
// whole or returns an error; it never reports per-item status.
type Marker interface {
	MarkThreadRead(ctx context.Context, threadID int64) error
	ArchiveThread(ctx context.Context, threadID int64) error
	MarkConversationRead(ctx context.Context, conversationID int64) error
	ArchiveConversation(ctx context.Context, conversationID int64) error
	MarkAllThreadsRead(ctx context.Context, scope Scope) error
	ArchiveAllThreads(ctx context.Context, scope Scope) error
	ClearUnread(ctx context.Context, workspaceID int64) error
	ApplyBatch(ctx context.Context, mutations []Mutation) error
}
