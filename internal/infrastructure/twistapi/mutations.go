package twistapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
)

func (r *Repository) AddComment(ctx context.Context, c twist.NewComment) (*twist.Comment, error) {
	p := idParams("thread_id", c.ThreadID)
	p.Set("content", c.Content)
	if len(c.Recipients) > 0 {
		p.Set("recipients", idList(c.Recipients))
	}

	var d CommentDTO
	if err := r.client.create(ctx, "comments/add", p, &d); err != nil {
		return nil, err
	}
	out := toComment(d)
	return &out, nil
}

func (r *Repository) AddMessage(ctx context.Context, m twist.NewMessage) (*twist.Message, error) {
	p := idParams("conversation_id", m.ConversationID)
	p.Set("content", m.Content)

	var d MessageDTO
	if err := r.client.create(ctx, "conversation_messages/add", p, &d); err != nil {
		return nil, err
	}
	out := toMessage(d)
	return &out, nil
}

func (r *Repository) AddReaction(ctx context.Context, re twist.Reaction) error {
	return r.client.create(ctx, "reactions/add", reactionParams(re), nil)
}

func (r *Repository) RemoveReaction(ctx context.Context, re twist.Reaction) error {
	return r.client.post(ctx, "reactions/remove", reactionParams(re), nil)
}

func reactionParams(re twist.Reaction) url.Values {
	var key string
	switch re.Target {
	case twist.ReactOnThread:
		key = "thread_id"
	case twist.ReactOnComment:
		key = "comment_id"
	default:
		key = "message_id"
	}
	p := idParams(key, re.TargetID)
	p.Set("reaction", re.Emoji)
	return p
}

func (r *Repository) MarkThreadRead(ctx context.Context, threadID int64) error {
	req := mutationRequest(twist.Mutation{Op: twist.OpMarkThreadRead, TargetID: threadID})
	return r.client.post(ctx, req.Path, req.Params, nil)
}

func (r *Repository) ArchiveThread(ctx context.Context, threadID int64) error {
	req := mutationRequest(twist.Mutation{Op: twist.OpArchiveThread, TargetID: threadID})
	return r.client.post(ctx, req.Path, req.Params, nil)
}

func (r *Repository) MarkConversationRead(ctx context.Context, conversationID int64) error {
	req := mutationRequest(twist.Mutation{Op: twist.OpMarkConversationRead, TargetID: conversationID})
	return r.client.post(ctx, req.Path, req.Params, nil)
}

func (r *Repository) ArchiveConversation(ctx context.Context, conversationID int64) error {
	req := mutationRequest(twist.Mutation{Op: twist.OpArchiveConversation, TargetID: conversationID})
	return r.client.post(ctx, req.Path, req.Params, nil)
}

// MarkAllThreadsRead scopes by workspace when set, else by channel.
func (r *Repository) MarkAllThreadsRead(ctx context.Context, scope twist.Scope) error {
	var p url.Values
	switch {
	case scope.WorkspaceID != 0:
		p = idParams("workspace_id", scope.WorkspaceID)
	case scope.ChannelID != 0:
		p = idParams("channel_id", scope.ChannelID)
	default:
		return fmt.Errorf("%w: empty scope", twist.ErrInvalidArgument)
	}
	return r.client.post(ctx, "threads/mark_all_read", p, nil)
}

// ArchiveAllThreads archives the inbox for a workspace, or for one channel.
// A channel-only scope sends no workspace id.
func (r *Repository) ArchiveAllThreads(ctx context.Context, scope twist.Scope) error {
	p := url.Values{}
	switch {
	case scope.WorkspaceID != 0:
		p.Set("workspace_id", strconv.FormatInt(scope.WorkspaceID, 10))
	case scope.ChannelID != 0:
		p.Set("channel_ids", idList([]int64{scope.ChannelID}))
	default:
		return fmt.Errorf("%w: empty scope", twist.ErrInvalidArgument)
	}
	return r.client.post(ctx, "inbox/archive_all", p, nil)
}

func (r *Repository) ClearUnread(ctx context.Context, workspaceID int64) error {
	return r.client.post(ctx, "threads/clear_unread", idParams("workspace_id", workspaceID), nil)
}

// ApplyBatch submits all mutations in a single batch request.
func (r *Repository) ApplyBatch(ctx context.Context, mutations []twist.Mutation) error {
	reqs := make([]BatchRequest, len(mutations))
	for i, m := range mutations {
		reqs[i] = mutationRequest(m)
	}
	_, err := r.client.Batch(ctx, reqs)
	return err
}

func mutationRequest(m twist.Mutation) BatchRequest {
	req := BatchRequest{Method: http.MethodPost, Params: idParams("id", m.TargetID)}
	switch m.Op {
	case twist.OpMarkThreadRead:
		req.Path = "threads/mark_read"
		req.Params.Set("obj_index", "0")
	case twist.OpArchiveThread:
		req.Path = "inbox/archive"
	case twist.OpMarkConversationRead:
		req.Path = "conversations/mark_read"
	case twist.OpArchiveConversation:
		req.Path = "conversations/archive"
	}
	return req
}
