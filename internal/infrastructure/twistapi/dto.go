package twistapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

type AwayModeDTO struct {
	Type     string `json:"type"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
}

type UserDTO struct {
	ID               int64        `json:"id"`
	Name             string       `json:"name"`
	ShortName        string       `json:"short_name"`
	Email            string       `json:"email"`
	Timezone         string       `json:"timezone"`
	Lang             string       `json:"lang"`
	Bot              bool         `json:"bot"`
	DefaultWorkspace int64        `json:"default_workspace"`
	AwayMode         *AwayModeDTO `json:"away_mode"`
}

type WorkspaceUserDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Email     string `json:"email"`
	UserType  string `json:"user_type"`
	Timezone  string `json:"timezone"`
	Bot       bool   `json:"bot"`
	Removed   bool   `json:"removed"`
}

type AvatarURLsDTO struct {
	S35  string `json:"s35"`
	S60  string `json:"s60"`
	S195 string `json:"s195"`
	S640 string `json:"s640"`
}

type WorkspaceDTO struct {
	ID                  int64          `json:"id"`
	Name                string         `json:"name"`
	Creator             int64          `json:"creator"`
	CreatedTS           int64          `json:"created_ts"`
	DefaultChannel      int64          `json:"default_channel"`
	DefaultConversation int64          `json:"default_conversation"`
	Plan                string         `json:"plan"`
	AvatarID            string         `json:"avatar_id"`
	AvatarURLs          *AvatarURLsDTO `json:"avatar_urls"`
}

type ChannelDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	WorkspaceID int64  `json:"workspace_id"`
	Archived    bool   `json:"archived"`
}

type ThreadDTO struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	ChannelID    int64   `json:"channel_id"`
	WorkspaceID  int64   `json:"workspace_id"`
	Creator      int64   `json:"creator"`
	PostedTS     int64   `json:"posted_ts"`
	CommentCount int     `json:"comment_count"`
	IsArchived   bool    `json:"is_archived"`
	InInbox      bool    `json:"in_inbox"`
	Participants []int64 `json:"participants"`
	URL          string  `json:"url"`
}

type CommentDTO struct {
	ID          int64  `json:"id"`
	Content     string `json:"content"`
	Creator     int64  `json:"creator"`
	ThreadID    int64  `json:"thread_id"`
	ChannelID   int64  `json:"channel_id"`
	WorkspaceID int64  `json:"workspace_id"`
	PostedTS    int64  `json:"posted_ts"`
	URL         string `json:"url"`
}

type ConversationDTO struct {
	ID           int64   `json:"id"`
	WorkspaceID  int64   `json:"workspace_id"`
	UserIDs      []int64 `json:"user_ids"`
	Archived     bool    `json:"archived"`
	LastActiveTS int64   `json:"last_active_ts"`
	Title        string  `json:"title"`
	MessageCount int     `json:"message_count"`
}

type MessageDTO struct {
	ID             int64  `json:"id"`
	Content        string `json:"content"`
	Creator        int64  `json:"creator"`
	ConversationID int64  `json:"conversation_id"`
	WorkspaceID    int64  `json:"workspace_id"`
	PostedTS       int64  `json:"posted_ts"`
	URL            string `json:"url"`
}

type InboxThreadDTO struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	ChannelID     int64  `json:"channel_id"`
	WorkspaceID   int64  `json:"workspace_id"`
	Creator       int64  `json:"creator"`
	Starred       bool   `json:"starred"`
	LastUpdatedTS int64  `json:"last_updated_ts"`
}

type UnreadThreadDTO struct {
	ThreadID  int64 `json:"thread_id"`
	ChannelID int64 `json:"channel_id"`
	ObjIndex  int   `json:"obj_index"`
}

// CountDTO accepts either a bare number or {"count": n}.
type CountDTO int

func (c *CountDTO) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*c = CountDTO(n)
		return nil
	}
	var obj struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*c = CountDTO(obj.Count)
	return nil
}

// FlexID accepts string or numeric ids.
type FlexID string

func (f *FlexID) UnmarshalJSON(b []byte) error {
	if bytes.HasPrefix(b, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

type SearchResultDTO struct {
	ID                   FlexID `json:"id"`
	Type                 string `json:"type"`
	Snippet              string `json:"snippet"`
	SnippetCreatorID     int64  `json:"snippet_creator_id"`
	SnippetLastUpdatedTS int64  `json:"snippet_last_updated_ts"`
	ThreadID             int64  `json:"thread_id"`
	ConversationID       int64  `json:"conversation_id"`
	ChannelID            int64  `json:"channel_id"`
}

type SearchResponse struct {
	Items          []SearchResultDTO `json:"items"`
	HasMore        bool              `json:"has_more"`
	NextCursorMark string            `json:"next_cursor_mark"`
}

func fromUnix(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

func unixParam(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

func idList(ids []int64) string {
	b, _ := json.Marshal(ids)
	return string(b)
}
