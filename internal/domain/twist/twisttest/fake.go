// Package twisttest provides an in-memory implementation of the Twist ports
// for tests.
package twisttest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
)

// API is a fake Twist backend. Populate the maps before use; unknown ids
// return twist.ErrNotFound. Err, when set, is returned by every call.
type API struct {
	mu sync.Mutex

	Me            *twist.User
	WorkspaceList []twist.Workspace
	Users         map[int64][]twist.WorkspaceUser
	Channels      map[int64]twist.Channel
	Threads       map[int64]twist.Thread
	CommentList   []twist.Comment
	Conversations map[int64]twist.Conversation
	MessageList   []twist.Message
	InboxThreads  []twist.InboxThread
	Count         int
	Unread        []twist.UnreadThread
	SearchResults *twist.SearchPage

	Err error

	// Recorded writes and queries.
	AddedComments    []twist.NewComment
	AddedMessages    []twist.NewMessage
	AddedReactions   []twist.Reaction
	RemovedReactions []twist.Reaction
	LastInboxQuery   twist.InboxQuery
	LastSearch       twist.SearchQuery
	LastCommentQuery twist.CommentQuery
	LastMessageQuery twist.MessageQuery
}

var (
	_ twist.Reader    = (*API)(nil)
	_ twist.Writer    = (*API)(nil)
	_ twist.Directory = (*API)(nil)
)

func (f *API) SessionUser(_ context.Context) (*twist.User, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Me == nil {
		return nil, twist.ErrUnauthorized
	}
	return f.Me, nil
}

func (f *API) Workspaces(_ context.Context) ([]twist.Workspace, error) {
	return f.WorkspaceList, f.Err
}

func (f *API) WorkspaceUsers(_ context.Context, workspaceID int64) ([]twist.WorkspaceUser, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Users[workspaceID], nil
}

func (f *API) WorkspaceUser(_ context.Context, workspaceID, userID int64) (*twist.WorkspaceUser, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	for _, u := range f.Users[workspaceID] {
		if u.ID == userID {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %d: %w", userID, twist.ErrNotFound)
}

func (f *API) Channel(_ context.Context, channelID int64) (*twist.Channel, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	ch, ok := f.Channels[channelID]
	if !ok {
		return nil, fmt.Errorf("channel %d: %w", channelID, twist.ErrNotFound)
	}
	return &ch, nil
}

func (f *API) Thread(_ context.Context, id int64) (*twist.Thread, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	th, ok := f.Threads[id]
	if !ok {
		return nil, fmt.Errorf("thread %d: %w", id, twist.ErrNotFound)
	}
	return &th, nil
}

func (f *API) Comments(_ context.Context, q twist.CommentQuery) ([]twist.Comment, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	f.LastCommentQuery = q
	f.mu.Unlock()

	var out []twist.Comment
	for _, c := range f.CommentList {
		if c.ThreadID == q.ThreadID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *API) Comment(_ context.Context, id int64) (*twist.Comment, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	for _, c := range f.CommentList {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("comment %d: %w", id, twist.ErrNotFound)
}

func (f *API) Conversation(_ context.Context, id int64) (*twist.Conversation, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	c, ok := f.Conversations[id]
	if !ok {
		return nil, fmt.Errorf("conversation %d: %w", id, twist.ErrNotFound)
	}
	return &c, nil
}

func (f *API) Messages(_ context.Context, q twist.MessageQuery) ([]twist.Message, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	f.LastMessageQuery = q
	f.mu.Unlock()

	var out []twist.Message
	for _, m := range f.MessageList {
		if m.ConversationID == q.ConversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *API) Message(_ context.Context, id int64) (*twist.Message, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	for _, m := range f.MessageList {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, fmt.Errorf("message %d: %w", id, twist.ErrNotFound)
}

func (f *API) Inbox(_ context.Context, q twist.InboxQuery) ([]twist.InboxThread, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	f.LastInboxQuery = q
	f.mu.Unlock()
	return f.InboxThreads, nil
}

func (f *API) InboxCount(_ context.Context, _ int64) (int, error) {
	return f.Count, f.Err
}

func (f *API) UnreadThreads(_ context.Context, _ int64) ([]twist.UnreadThread, error) {
	return f.Unread, f.Err
}

func (f *API) Search(_ context.Context, q twist.SearchQuery) (*twist.SearchPage, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	f.LastSearch = q
	f.mu.Unlock()
	if f.SearchResults == nil {
		return &twist.SearchPage{}, nil
	}
	return f.SearchResults, nil
}

func (f *API) AddComment(_ context.Context, c twist.NewComment) (*twist.Comment, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.AddedComments = append(f.AddedComments, c)

	th := f.Threads[c.ThreadID]
	return &twist.Comment{
		ID:          int64(1000 + len(f.AddedComments)),
		Content:     c.Content,
		ThreadID:    c.ThreadID,
		ChannelID:   th.ChannelID,
		WorkspaceID: th.WorkspaceID,
		Posted:      time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}, nil
}

func (f *API) AddMessage(_ context.Context, m twist.NewMessage) (*twist.Message, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.AddedMessages = append(f.AddedMessages, m)

	conv := f.Conversations[m.ConversationID]
	return &twist.Message{
		ID:             int64(2000 + len(f.AddedMessages)),
		Content:        m.Content,
		ConversationID: m.ConversationID,
		WorkspaceID:    conv.WorkspaceID,
		Posted:         time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}, nil
}

func (f *API) AddReaction(_ context.Context, r twist.Reaction) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.AddedReactions = append(f.AddedReactions, r)
	return nil
}

func (f *API) RemoveReaction(_ context.Context, r twist.Reaction) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RemovedReactions = append(f.RemovedReactions, r)
	return nil
}
