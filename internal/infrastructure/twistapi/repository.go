package twistapi

import (
	"context"
	"net/url"
	"strconv"

	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
)

var (
	_ twist.Reader    = (*Repository)(nil)
	_ twist.Writer    = (*Repository)(nil)
	_ twist.Directory = (*Repository)(nil)
	_ twist.Marker    = (*Repository)(nil)
)

// Repository adapts the REST client to the domain ports.
type Repository struct {
	client *Client
}

func NewRepository(client *Client) *Repository {
	return &Repository{client: client}
}

func idParams(key string, id int64) url.Values {
	p := url.Values{}
	p.Set(key, strconv.FormatInt(id, 10))
	return p
}

func (r *Repository) SessionUser(ctx context.Context) (*twist.User, error) {
	var dto UserDTO
	if err := r.client.get(ctx, "users/get_session_user", nil, &dto); err != nil {
		return nil, err
	}
	u := &twist.User{
		ID:               dto.ID,
		Name:             dto.Name,
		ShortName:        dto.ShortName,
		Email:            dto.Email,
		Timezone:         dto.Timezone,
		Lang:             dto.Lang,
		Bot:              dto.Bot,
		DefaultWorkspace: dto.DefaultWorkspace,
	}
	if dto.AwayMode != nil {
		u.AwayMode = &twist.AwayMode{Type: dto.AwayMode.Type, DateFrom: dto.AwayMode.DateFrom, DateTo: dto.AwayMode.DateTo}
	}
	return u, nil
}

func (r *Repository) Workspaces(ctx context.Context) ([]twist.Workspace, error) {
	var dtos []WorkspaceDTO
	if err := r.client.get(ctx, "workspaces/get", nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]twist.Workspace, len(dtos))
	for i, d := range dtos {
		out[i] = twist.Workspace{
			ID:                  d.ID,
			Name:                d.Name,
			Creator:             d.Creator,
			Created:             fromUnix(d.CreatedTS),
			DefaultChannel:      d.DefaultChannel,
			DefaultConversation: d.DefaultConversation,
			Plan:                d.Plan,
			AvatarID:            d.AvatarID,
		}
		if d.AvatarURLs != nil {
			out[i].AvatarURLs = &twist.AvatarURLs{S35: d.AvatarURLs.S35, S60: d.AvatarURLs.S60, S195: d.AvatarURLs.S195, S640: d.AvatarURLs.S640}
		}
	}
	return out, nil
}

func (r *Repository) WorkspaceUsers(ctx context.Context, workspaceID int64) ([]twist.WorkspaceUser, error) {
	var dtos []WorkspaceUserDTO
	if err := r.client.get(ctx, "workspace_users/get", idParams("id", workspaceID), &dtos); err != nil {
		return nil, err
	}
	out := make([]twist.WorkspaceUser, len(dtos))
	for i, d := range dtos {
		out[i] = toWorkspaceUser(d)
	}
	return out, nil
}

func (r *Repository) WorkspaceUser(ctx context.Context, workspaceID, userID int64) (*twist.WorkspaceUser, error) {
	p := idParams("id", workspaceID)
	p.Set("user_id", strconv.FormatInt(userID, 10))

	var dto WorkspaceUserDTO
	if err := r.client.get(ctx, "workspace_users/getone", p, &dto); err != nil {
		return nil, err
	}
	u := toWorkspaceUser(dto)
	return &u, nil
}

func toWorkspaceUser(d WorkspaceUserDTO) twist.WorkspaceUser {
	return twist.WorkspaceUser{
		ID:        d.ID,
		Name:      d.Name,
		ShortName: d.ShortName,
		Email:     d.Email,
		UserType:  d.UserType,
		Timezone:  d.Timezone,
		Bot:       d.Bot,
		Removed:   d.Removed,
	}
}

func (r *Repository) Channel(ctx context.Context, channelID int64) (*twist.Channel, error) {
	var dto ChannelDTO
	if err := r.client.get(ctx, "channels/getone", idParams("id", channelID), &dto); err != nil {
		return nil, err
	}
	return &twist.Channel{ID: dto.ID, Name: dto.Name, WorkspaceID: dto.WorkspaceID, Archived: dto.Archived}, nil
}

func (r *Repository) Thread(ctx context.Context, id int64) (*twist.Thread, error) {
	var d ThreadDTO
	if err := r.client.get(ctx, "threads/getone", idParams("id", id), &d); err != nil {
		return nil, err
	}
	return &twist.Thread{
		ID:           d.ID,
		Title:        d.Title,
		Content:      d.Content,
		ChannelID:    d.ChannelID,
		WorkspaceID:  d.WorkspaceID,
		Creator:      d.Creator,
		Posted:       fromUnix(d.PostedTS),
		CommentCount: d.CommentCount,
		IsArchived:   d.IsArchived,
		InInbox:      d.InInbox,
		Participants: d.Participants,
		URL:          d.URL,
	}, nil
}

func (r *Repository) Comments(ctx context.Context, q twist.CommentQuery) ([]twist.Comment, error) {
	p := idParams("thread_id", q.ThreadID)
	if !q.NewerThan.IsZero() {
		p.Set("newer_than_ts", unixParam(q.NewerThan))
	}
	if !q.OlderThan.IsZero() {
		p.Set("older_than_ts", unixParam(q.OlderThan))
	}
	if q.Limit > 0 {
		p.Set("limit", strconv.Itoa(q.Limit))
	}

	var dtos []CommentDTO
	if err := r.client.get(ctx, "comments/get", p, &dtos); err != nil {
		return nil, err
	}
	out := make([]twist.Comment, len(dtos))
	for i, d := range dtos {
		out[i] = toComment(d)
	}
	return out, nil
}

func (r *Repository) Comment(ctx context.Context, id int64) (*twist.Comment, error) {
	var d CommentDTO
	if err := r.client.get(ctx, "comments/getone", idParams("id", id), &d); err != nil {
		return nil, err
	}
	c := toComment(d)
	return &c, nil
}

func toComment(d CommentDTO) twist.Comment {
	return twist.Comment{
		ID:          d.ID,
		Content:     d.Content,
		Creator:     d.Creator,
		ThreadID:    d.ThreadID,
		ChannelID:   d.ChannelID,
		WorkspaceID: d.WorkspaceID,
		Posted:      fromUnix(d.PostedTS),
		URL:         d.URL,
	}
}

func (r *Repository) Conversation(ctx context.Context, id int64) (*twist.Conversation, error) {
	var d ConversationDTO
	if err := r.client.get(ctx, "conversations/getone", idParams("id", id), &d); err != nil {
		return nil, err
	}
	return &twist.Conversation{
		ID:           d.ID,
		WorkspaceID:  d.WorkspaceID,
		UserIDs:      d.UserIDs,
		Archived:     d.Archived,
		LastActive:   fromUnix(d.LastActiveTS),
		Title:        d.Title,
		MessageCount: d.MessageCount,
	}, nil
}

func (r *Repository) Messages(ctx context.Context, q twist.MessageQuery) ([]twist.Message, error) {
	p := idParams("conversation_id", q.ConversationID)
	if !q.NewerThan.IsZero() {
		p.Set("newer_than_ts", unixParam(q.NewerThan))
	}
	if !q.OlderThan.IsZero() {
		p.Set("older_than_ts", unixParam(q.OlderThan))
	}
	if q.Limit > 0 {
		p.Set("limit", strconv.Itoa(q.Limit))
	}

	var dtos []MessageDTO
	if err := r.client.get(ctx, "conversation_messages/get", p, &dtos); err != nil {
		return nil, err
	}
	out := make([]twist.Message, len(dtos))
	for i, d := range dtos {
		out[i] = toMessage(d)
	}
	return out, nil
}

func (r *Repository) Message(ctx context.Context, id int64) (*twist.Message, error) {
	var d MessageDTO
	if err := r.client.get(ctx, "conversation_messages/getone", idParams("id", id), &d); err != nil {
		return nil, err
	}
	m := toMessage(d)
	return &m, nil
}

func toMessage(d MessageDTO) twist.Message {
	return twist.Message{
		ID:             d.ID,
		Content:        d.Content,
		Creator:        d.Creator,
		ConversationID: d.ConversationID,
		WorkspaceID:    d.WorkspaceID,
		Posted:         fromUnix(d.PostedTS),
		URL:            d.URL,
	}
}

func (r *Repository) Inbox(ctx context.Context, q twist.InboxQuery) ([]twist.InboxThread, error) {
	p := idParams("workspace_id", q.WorkspaceID)
	if !q.Since.IsZero() {
		p.Set("newer_than_ts", unixParam(q.Since))
	}
	if !q.Until.IsZero() {
		p.Set("older_than_ts", unixParam(q.Until))
	}
	if q.Limit > 0 {
		p.Set("limit", strconv.Itoa(q.Limit))
	}

	var dtos []InboxThreadDTO
	if err := r.client.get(ctx, "inbox/get", p, &dtos); err != nil {
		return nil, err
	}
	out := make([]twist.InboxThread, len(dtos))
	for i, d := range dtos {
		out[i] = twist.InboxThread{
			ID:          d.ID,
			Title:       d.Title,
			ChannelID:   d.ChannelID,
			WorkspaceID: d.WorkspaceID,
			Creator:     d.Creator,
			Starred:     d.Starred,
			LastUpdated: fromUnix(d.LastUpdatedTS),
		}
	}
	return out, nil
}

func (r *Repository) InboxCount(ctx context.Context, workspaceID int64) (int, error) {
	var n CountDTO
	if err := r.client.get(ctx, "inbox/get_count", idParams("workspace_id", workspaceID), &n); err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *Repository) UnreadThreads(ctx context.Context, workspaceID int64) ([]twist.UnreadThread, error) {
	var dtos []UnreadThreadDTO
	if err := r.client.get(ctx, "threads/get_unread", idParams("workspace_id", workspaceID), &dtos); err != nil {
		return nil, err
	}
	out := make([]twist.UnreadThread, len(dtos))
	for i, d := range dtos {
		out[i] = twist.UnreadThread{ThreadID: d.ThreadID, ChannelID: d.ChannelID, ObjIndex: d.ObjIndex}
	}
	return out, nil
}

func (r *Repository) Search(ctx context.Context, q twist.SearchQuery) (*twist.SearchPage, error) {
	p := idParams("workspace_id", q.WorkspaceID)
	p.Set("query", q.Query)
	if len(q.ChannelIDs) > 0 {
		p.Set("channel_ids", idList(q.ChannelIDs))
	}
	if len(q.AuthorIDs) > 0 {
		p.Set("author_ids", idList(q.AuthorIDs))
	}
	if q.MentionSelf {
		p.Set("mention_self", "true")
	}
	if !q.DateFrom.IsZero() {
		p.Set("date_from", q.DateFrom.Format("2006-01-02"))
	}
	if !q.DateTo.IsZero() {
		p.Set("date_to", q.DateTo.Format("2006-01-02"))
	}
	if q.Limit > 0 {
		p.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Cursor != "" {
		p.Set("cursor_mark", q.Cursor)
	}

	var resp SearchResponse
	if err := r.client.get(ctx, "search/query", p, &resp); err != nil {
		return nil, err
	}
	page := &twist.SearchPage{
		Items:      make([]twist.SearchResult, len(resp.Items)),
		HasMore:    resp.HasMore,
		NextCursor: resp.NextCursorMark,
	}
	for i, it := range resp.Items {
		page.Items[i] = twist.SearchResult{
			ID:                 string(it.ID),
			Type:               twist.SearchResultType(it.Type),
			Snippet:            it.Snippet,
			SnippetCreatorID:   it.SnippetCreatorID,
			SnippetLastUpdated: fromUnix(it.SnippetLastUpdatedTS),
			ThreadID:           it.ThreadID,
			ConversationID:     it.ConversationID,
			ChannelID:          it.ChannelID,
		}
	}
	return page, nil
}
