package mcp

import (
	"time"

	conversationapp "github.com/felixgeelhaar/twist-mcp/internal/application/conversation"
	doneapp "github.com/felixgeelhaar/twist-mcp/internal/application/done"
	inboxapp "github.com/felixgeelhaar/twist-mcp/internal/application/inbox"
	linkapp "github.com/felixgeelhaar/twist-mcp/internal/application/link"
	reactionapp "github.com/felixgeelhaar/twist-mcp/internal/application/reaction"
	replyapp "github.com/felixgeelhaar/twist-mcp/internal/application/reply"
	searchapp "github.com/felixgeelhaar/twist-mcp/internal/application/search"
	threadapp "github.com/felixgeelhaar/twist-mcp/internal/application/thread"
	workspaceapp "github.com/felixgeelhaar/twist-mcp/internal/application/workspace"
	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
)

// Structured payload discriminators.
const (
	typeMarkDone     = "mark_done_result"
	typeInbox        = "inbox_data"
	typeThread       = "thread_data"
	typeConversation = "conversation_data"
	typeSearch       = "search_results"
	typeReply        = "reply_result"
	typeReaction     = "reaction_result"
	typeLink         = "link_data"
	typeUsers        = "get_users"
	typeWorkspaces   = "get_workspaces"
	typeUserInfo     = "user_info"
)

const previewLength = 200

// --- mark_done ---

type MarkDoneResult struct {
	Type           string           `json:"type"`
	ItemType       string           `json:"itemType"`
	Mode           string           `json:"mode"`
	Completed      []int64          `json:"completed"`
	Failed         []FailureResult  `json:"failed"`
	TotalRequested int              `json:"totalRequested"`
	SuccessCount   int              `json:"successCount"`
	FailureCount   int              `json:"failureCount"`
	Operations     OperationsResult `json:"operations"`
	Selectors      *SelectorsResult `json:"selectors,omitempty"`
}

type FailureResult struct {
	Item  int64  `json:"item"`
	Error string `json:"error"`
}

type OperationsResult struct {
	MarkRead    bool `json:"markRead"`
	Archive     bool `json:"archive"`
	ClearUnread bool `json:"clearUnread"`
}

type SelectorsResult struct {
	WorkspaceID int64 `json:"workspaceId,omitempty"`
	ChannelID   int64 `json:"channelId,omitempty"`
}

func toMarkDoneResult(out *doneapp.MarkDoneOutput) *MarkDoneResult {
	r := &MarkDoneResult{
		Type:           typeMarkDone,
		ItemType:       string(out.Type),
		Mode:           string(out.Mode),
		Completed:      append([]int64{}, out.Completed...),
		Failed:         make([]FailureResult, len(out.Failed)),
		TotalRequested: out.TotalRequested,
		SuccessCount:   out.SuccessCount,
		FailureCount:   out.FailureCount,
		Operations: OperationsResult{
			MarkRead:    out.Operations.MarkRead,
			Archive:     out.Operations.Archive,
			ClearUnread: out.Operations.ClearUnread,
		},
	}
	for i, f := range out.Failed {
		r.Failed[i] = FailureResult{Item: f.Item, Error: f.Error}
	}
	if out.Selectors != nil {
		r.Selectors = &SelectorsResult{WorkspaceID: out.Selectors.WorkspaceID, ChannelID: out.Selectors.ChannelID}
	}
	return r
}

// --- fetch_inbox ---

type InboxResult struct {
	Type          string              `json:"type"`
	WorkspaceID   int64               `json:"workspaceId"`
	Threads       []InboxThreadResult `json:"threads"`
	UnreadCount   int                 `json:"unreadCount"`
	UnreadThreads []InboxThreadResult `json:"unreadThreads"`
	TotalThreads  int                 `json:"totalThreads"`
}

type InboxThreadResult struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ChannelID   int64  `json:"channelId"`
	Creator     int64  `json:"creator"`
	IsUnread    bool   `json:"isUnread"`
	IsStarred   bool   `json:"isStarred"`
	LastUpdated string `json:"lastUpdated,omitempty"`
	ThreadURL   string `json:"threadUrl"`
}

func toInboxResult(out *inboxapp.FetchInboxOutput, webURL string) *InboxResult {
	r := &InboxResult{
		Type:          typeInbox,
		WorkspaceID:   out.WorkspaceID,
		Threads:       make([]InboxThreadResult, 0, len(out.Threads)),
		UnreadCount:   out.UnreadCount,
		UnreadThreads: make([]InboxThreadResult, 0, len(out.UnreadThreads)),
		TotalThreads:  len(out.Threads),
	}
	for _, e := range out.Threads {
		r.Threads = append(r.Threads, toInboxThreadResult(e.InboxThread, e.IsUnread, webURL))
	}
	for _, th := range out.UnreadThreads {
		r.UnreadThreads = append(r.UnreadThreads, toInboxThreadResult(th, true, webURL))
	}
	return r
}

func toInboxThreadResult(th twist.InboxThread, unread bool, webURL string) InboxThreadResult {
	return InboxThreadResult{
		ID:          th.ID,
		Title:       th.Title,
		ChannelID:   th.ChannelID,
		Creator:     th.Creator,
		IsUnread:    unread,
		IsStarred:   th.Starred,
		LastUpdated: formatTime(th.LastUpdated),
		ThreadURL:   twist.ThreadURL(webURL, th.WorkspaceID, th.ChannelID, th.ID),
	}
}

// --- load_thread ---

type ThreadDataResult struct {
	Type          string          `json:"type"`
	Thread        ThreadResult    `json:"thread"`
	Comments      []CommentResult `json:"comments"`
	TotalComments int             `json:"totalComments"`
}

type ThreadResult struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	Content          string   `json:"content"`
	ChannelID        int64    `json:"channelId"`
	ChannelName      string   `json:"channelName,omitempty"`
	WorkspaceID      int64    `json:"workspaceId"`
	Creator          int64    `json:"creator"`
	CreatorName      string   `json:"creatorName,omitempty"`
	Posted           string   `json:"posted"`
	CommentCount     int      `json:"commentCount"`
	IsArchived       bool     `json:"isArchived"`
	InInbox          bool     `json:"inInbox"`
	Participants     []int64  `json:"participants,omitempty"`
	ParticipantNames []string `json:"participantNames,omitempty"`
	ThreadURL        string   `json:"threadUrl"`
}

type CommentResult struct {
	ID          int64  `json:"id"`
	Content     string `json:"content"`
	Creator     int64  `json:"creator"`
	CreatorName string `json:"creatorName,omitempty"`
	ThreadID    int64  `json:"threadId"`
	Posted      string `json:"posted"`
	CommentURL  string `json:"commentUrl"`
}

func toThreadDataResult(out *threadapp.LoadThreadOutput) *ThreadDataResult {
	th := out.Thread
	r := &ThreadDataResult{
		Type: typeThread,
		Thread: ThreadResult{
			ID:           th.ID,
			Title:        th.Title,
			Content:      th.Content,
			ChannelID:    th.ChannelID,
			ChannelName:  out.ChannelName,
			WorkspaceID:  th.WorkspaceID,
			Creator:      th.Creator,
			CreatorName:  out.UserNames[th.Creator],
			Posted:       formatTime(th.Posted),
			CommentCount: th.CommentCount,
			IsArchived:   th.IsArchived,
			InInbox:      th.InInbox,
			ThreadURL:    th.URL,
		},
		Comments:      make([]CommentResult, 0, len(out.Comments)),
		TotalComments: len(out.Comments),
	}
	if len(out.Participants) > 0 {
		r.Thread.Participants = out.Participants
		r.Thread.ParticipantNames = namesOf(out.Participants, out.UserNames)
	}
	for _, c := range out.Comments {
		r.Comments = append(r.Comments, CommentResult{
			ID:          c.ID,
			Content:     c.Content,
			Creator:     c.Creator,
			CreatorName: out.UserNames[c.Creator],
			ThreadID:    c.ThreadID,
			Posted:      formatTime(c.Posted),
			CommentURL:  c.URL,
		})
	}
	return r
}

// --- load_conversation ---

type ConversationDataResult struct {
	Type          string             `json:"type"`
	Conversation  ConversationResult `json:"conversation"`
	Messages      []MessageResult    `json:"messages"`
	TotalMessages int                `json:"totalMessages"`
}

type ConversationResult struct {
	ID              int64   `json:"id"`
	WorkspaceID     int64   `json:"workspaceId"`
	UserIDs         []int64 `json:"userIds"`
	Archived        bool    `json:"archived"`
	LastActive      string  `json:"lastActive"`
	Title           string  `json:"title,omitempty"`
	ConversationURL string  `json:"conversationUrl"`
}

type MessageResult struct {
	ID             int64  `json:"id"`
	Content        string `json:"content"`
	CreatorID      int64  `json:"creatorId"`
	CreatorName    string `json:"creatorName,omitempty"`
	ConversationID int64  `json:"conversationId"`
	Posted         string `json:"posted"`
	MessageURL     string `json:"messageUrl"`
}

func toConversationDataResult(out *conversationapp.LoadConversationOutput) *ConversationDataResult {
	c := out.Conversation
	r := &ConversationDataResult{
		Type: typeConversation,
		Conversation: ConversationResult{
			ID:              c.ID,
			WorkspaceID:     c.WorkspaceID,
			UserIDs:         append([]int64{}, c.UserIDs...),
			Archived:        c.Archived,
			LastActive:      formatTime(c.LastActive),
			Title:           c.Title,
			ConversationURL: out.URL,
		},
		Messages:      make([]MessageResult, 0, len(out.Messages)),
		TotalMessages: len(out.Messages),
	}
	for _, m := range out.Messages {
		r.Messages = append(r.Messages, MessageResult{
			ID:             m.ID,
			Content:        m.Content,
			CreatorID:      m.Creator,
			CreatorName:    out.UserNames[m.Creator],
			ConversationID: m.ConversationID,
			Posted:         formatTime(m.Posted),
			MessageURL:     m.URL,
		})
	}
	return r
}

// --- search_content ---

type SearchResultsResult struct {
	Type         string            `json:"type"`
	Query        string            `json:"query"`
	WorkspaceID  int64             `json:"workspaceId"`
	Results      []SearchHitResult `json:"results"`
	TotalResults int               `json:"totalResults"`
	HasMore      bool              `json:"hasMore"`
	Cursor       string            `json:"cursor,omitempty"`
}

type SearchHitResult struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	Content        string `json:"content"`
	CreatorID      int64  `json:"creatorId"`
	CreatorName    string `json:"creatorName,omitempty"`
	Created        string `json:"created"`
	ThreadID       int64  `json:"threadId,omitempty"`
	ConversationID int64  `json:"conversationId,omitempty"`
	ChannelID      int64  `json:"channelId,omitempty"`
	ChannelName    string `json:"channelName,omitempty"`
	WorkspaceID    int64  `json:"workspaceId"`
	URL            string `json:"url"`
}

func toSearchResultsResult(out *searchapp.SearchContentOutput) *SearchResultsResult {
	r := &SearchResultsResult{
		Type:         typeSearch,
		Query:        out.Query,
		WorkspaceID:  out.WorkspaceID,
		Results:      make([]SearchHitResult, 0, len(out.Results)),
		TotalResults: len(out.Results),
		HasMore:      out.HasMore,
		Cursor:       out.Cursor,
	}
	for _, it := range out.Results {
		r.Results = append(r.Results, SearchHitResult{
			ID:             it.ID,
			Type:           string(it.Type),
			Content:        it.Snippet,
			CreatorID:      it.SnippetCreatorID,
			CreatorName:    it.CreatorName,
			Created:        formatTime(it.SnippetLastUpdated),
			ThreadID:       it.ThreadID,
			ConversationID: it.ConversationID,
			ChannelID:      it.ChannelID,
			ChannelName:    it.ChannelName,
			WorkspaceID:    out.WorkspaceID,
			URL:            it.URL,
		})
	}
	return r
}

// --- reply / react ---

type ReplyResult struct {
	Type       string `json:"type"`
	Success    bool   `json:"success"`
	TargetType string `json:"targetType"`
	TargetID   int64  `json:"targetId"`
	ReplyID    int64  `json:"replyId"`
	Content    string `json:"content"`
	Created    string `json:"created"`
	ReplyURL   string `json:"replyUrl"`
}

func toReplyResult(out *replyapp.ReplyOutput) *ReplyResult {
	return &ReplyResult{
		Type:       typeReply,
		Success:    true,
		TargetType: string(out.TargetType),
		TargetID:   out.TargetID,
		ReplyID:    out.ReplyID,
		Content:    out.Content,
		Created:    formatTime(out.Created),
		ReplyURL:   out.URL,
	}
}

type ReactionResult struct {
	Type       string `json:"type"`
	Success    bool   `json:"success"`
	Operation  string `json:"operation"`
	TargetType string `json:"targetType"`
	TargetID   int64  `json:"targetId"`
	Emoji      string `json:"emoji"`
	TargetURL  string `json:"targetUrl"`
}

func toReactionResult(out *reactionapp.ReactOutput) *ReactionResult {
	return &ReactionResult{
		Type:       typeReaction,
		Success:    true,
		Operation:  string(out.Operation),
		TargetType: string(out.TargetType),
		TargetID:   out.TargetID,
		Emoji:      out.Emoji,
		TargetURL:  out.TargetURL,
	}
}

// --- build_link ---

type LinkResult struct {
	Type     string     `json:"type"`
	URL      string     `json:"url"`
	LinkType string     `json:"linkType"`
	Params   LinkParams `json:"params"`
}

type LinkParams struct {
	WorkspaceID    int64 `json:"workspaceId"`
	ConversationID int64 `json:"conversationId,omitempty"`
	MessageID      int64 `json:"messageId,omitempty"`
	ChannelID      int64 `json:"channelId,omitempty"`
	ThreadID       int64 `json:"threadId,omitempty"`
	CommentID      int64 `json:"commentId,omitempty"`
}

func toLinkResult(in linkapp.BuildLinkInput, out *linkapp.BuildLinkOutput) *LinkResult {
	return &LinkResult{
		Type:     typeLink,
		URL:      out.URL,
		LinkType: string(out.Type),
		Params: LinkParams{
			WorkspaceID:    in.WorkspaceID,
			ConversationID: in.ConversationID,
			MessageID:      in.MessageID,
			ChannelID:      in.ChannelID,
			ThreadID:       in.ThreadID,
			CommentID:      in.CommentID,
		},
	}
}

// --- workspaces / users ---

type WorkspacesResult struct {
	Type       string            `json:"type"`
	Workspaces []WorkspaceResult `json:"workspaces"`
}

type WorkspaceResult struct {
	ID                       int64             `json:"id"`
	Name                     string            `json:"name"`
	Creator                  int64             `json:"creator"`
	CreatorName              string            `json:"creatorName,omitempty"`
	Created                  string            `json:"created"`
	WorkspaceURL             string            `json:"workspaceUrl"`
	DefaultChannel           int64             `json:"defaultChannel,omitempty"`
	DefaultChannelName       string            `json:"defaultChannelName,omitempty"`
	DefaultChannelURL        string            `json:"defaultChannelUrl,omitempty"`
	DefaultConversation      int64             `json:"defaultConversation,omitempty"`
	DefaultConversationTitle string            `json:"defaultConversationTitle,omitempty"`
	DefaultConversationURL   string            `json:"defaultConversationUrl,omitempty"`
	Plan                     string            `json:"plan,omitempty"`
	AvatarID                 string            `json:"avatarId,omitempty"`
	AvatarURLs               *twist.AvatarURLs `json:"avatarUrls,omitempty"`
}

func toWorkspacesResult(out *workspaceapp.GetWorkspacesOutput, webURL string) *WorkspacesResult {
	r := &WorkspacesResult{Type: typeWorkspaces, Workspaces: make([]WorkspaceResult, 0, len(out.Workspaces))}
	for _, ws := range out.Workspaces {
		w := WorkspaceResult{
			ID:                       ws.ID,
			Name:                     ws.Name,
			Creator:                  ws.Creator,
			CreatorName:              ws.CreatorName,
			Created:                  formatTime(ws.Created),
			WorkspaceURL:             twist.WorkspaceURL(webURL, ws.ID),
			DefaultChannel:           ws.DefaultChannel,
			DefaultChannelName:       ws.DefaultChannelName,
			DefaultConversation:      ws.DefaultConversation,
			DefaultConversationTitle: ws.DefaultConversationTitle,
			Plan:                     ws.Plan,
			AvatarID:                 ws.AvatarID,
			AvatarURLs:               ws.AvatarURLs,
		}
		if ws.DefaultChannel != 0 {
			w.DefaultChannelURL = twist.ChannelURL(webURL, ws.ID, ws.DefaultChannel)
		}
		if ws.DefaultConversation != 0 {
			w.DefaultConversationURL = twist.ConversationURL(webURL, ws.ID, ws.DefaultConversation)
		}
		r.Workspaces = append(r.Workspaces, w)
	}
	return r
}

type UsersResult struct {
	Type           string         `json:"type"`
	WorkspaceID    int64          `json:"workspaceId"`
	Users          []UserResult   `json:"users"`
	TotalUsers     int            `json:"totalUsers"`
	FilteredUsers  int            `json:"filteredUsers"`
	AppliedFilters AppliedFilters `json:"appliedFilters"`
}

type UserResult struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Email     string `json:"email,omitempty"`
	UserType  string `json:"userType"`
	Bot       bool   `json:"bot"`
	Removed   bool   `json:"removed"`
	Timezone  string `json:"timezone"`
}

type AppliedFilters struct {
	UserIDs    []int64 `json:"userIds,omitempty"`
	SearchText string  `json:"searchText,omitempty"`
}

func toUsersResult(in workspaceapp.GetUsersInput, out *workspaceapp.GetUsersOutput) *UsersResult {
	r := &UsersResult{
		Type:          typeUsers,
		WorkspaceID:   out.WorkspaceID,
		Users:         make([]UserResult, 0, len(out.Users)),
		TotalUsers:    out.TotalUsers,
		FilteredUsers: len(out.Users),
		AppliedFilters: AppliedFilters{
			UserIDs:    in.UserIDs,
			SearchText: in.SearchText,
		},
	}
	for _, u := range out.Users {
		r.Users = append(r.Users, UserResult{
			ID:        u.ID,
			Name:      u.Name,
			ShortName: u.ShortName,
			Email:     u.Email,
			UserType:  u.UserType,
			Bot:       u.Bot,
			Removed:   u.Removed,
			Timezone:  u.Timezone,
		})
	}
	return r
}

type UserInfoResult struct {
	Type             string          `json:"type"`
	UserID           int64           `json:"userId"`
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	Timezone         string          `json:"timezone"`
	Bot              bool            `json:"bot"`
	Lang             string          `json:"lang,omitempty"`
	DefaultWorkspace *int64          `json:"defaultWorkspace"`
	AwayMode         *AwayModeResult `json:"awayMode,omitempty"`
}

type AwayModeResult struct {
	Type     string `json:"type"`
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
}

func toUserInfoResult(u *twist.User) *UserInfoResult {
	r := &UserInfoResult{
		Type:     typeUserInfo,
		UserID:   u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Timezone: u.Timezone,
		Bot:      u.Bot,
		Lang:     u.Lang,
	}
	if u.DefaultWorkspace != 0 {
		ws := u.DefaultWorkspace
		r.DefaultWorkspace = &ws
	}
	if u.AwayMode != nil {
		r.AwayMode = &AwayModeResult{Type: u.AwayMode.Type, DateFrom: u.AwayMode.DateFrom, DateTo: u.AwayMode.DateTo}
	}
	return r
}

// --- helpers ---

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func namesOf(ids []int64, names map[int64]string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if n, ok := names[id]; ok {
			out = append(out, n)
		}
	}
	return out
}
