// Package twist holds the domain model of the Twist team-communication
// platform as seen by the MCP tools: read models for threads, comments,
// conversations, messages and the people and places around them, plus the
// ports the application layer talks to. It has no knowledge of HTTP.
package twist

import "time"

// User is the authenticated session user.
type User struct {
	ID               int64
	Name             string
	ShortName        string
	Email            string
	Timezone         string
	Lang             string
	Bot              bool
	DefaultWorkspace int64
	AwayMode         *AwayMode
}

// AwayMode describes an away/vacation period set by the user.
type AwayMode struct {
	Type     string
	DateFrom string
	DateTo   string
}

// WorkspaceUser is a member of a workspace.
type WorkspaceUser struct {
	ID        int64
	Name      string
	ShortName string
	Email     string
	UserType  string
	Timezone  string
	Bot       bool
	Removed   bool
}

type AvatarURLs struct {
	S35  string `json:"s35"`
	S60  string `json:"s60"`
	S195 string `json:"s195"`
	S640 string `json:"s640"`
}

type Workspace struct {
	ID                  int64
	Name                string
	Creator             int64
	Created             time.Time
	DefaultChannel      int64
	DefaultConversation int64
	Plan                string
	AvatarID            string
	AvatarURLs          *AvatarURLs
}

type Channel struct {
	ID          int64
	Name        string
	WorkspaceID int64
	Archived    bool
}

type Thread struct {
	ID           int64
	Title        string
	Content      string
	ChannelID    int64
	WorkspaceID  int64
	Creator      int64
	Posted       time.Time
	CommentCount int
	IsArchived   bool
	InInbox      bool
	Participants []int64
	URL          string
}

type Comment struct {
	ID          int64
	Content     string
	Creator     int64
	ThreadID    int64
	ChannelID   int64
	WorkspaceID int64
	Posted      time.Time
	URL         string
}

// Conversation is a direct-message conversation between workspace users.
type Conversation struct {
	ID           int64
	WorkspaceID  int64
	UserIDs      []int64
	Archived     bool
	LastActive   time.Time
	Title        string
	MessageCount int
}

type Message struct {
	ID             int64
	Content        string
	Creator        int64
	ConversationID int64
	WorkspaceID    int64
	Posted         time.Time
	URL            string
}

// InboxThread is a thread as listed in a user's inbox.
type InboxThread struct {
	ID          int64
	Title       string
	ChannelID   int64
	WorkspaceID int64
	Creator     int64
	Starred     bool
	LastUpdated time.Time
}

// UnreadThread marks a thread that still has unread content.
type UnreadThread struct {
	ThreadID  int64
	ChannelID int64
	ObjIndex  int
}

// SearchResultType is the kind of object a search hit points at.
type SearchResultType string

const (
	SearchResultThread  SearchResultType = "thread"
	SearchResultComment SearchResultType = "comment"
	SearchResultMessage SearchResultType = "message"
)

type SearchResult struct {
	ID                 string
	Type               SearchResultType
	Snippet            string
	SnippetCreatorID   int64
	SnippetLastUpdated time.Time
	ThreadID           int64
	ConversationID     int64
	ChannelID          int64
}

// SearchPage is one page of search hits.
type SearchPage struct {
	Items      []SearchResult
	HasMore    bool
	NextCursor string
}
