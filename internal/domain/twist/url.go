package twist

import (
	"fmt"
	"strings"
)

// DefaultWebURL is the Twist web application root.
const DefaultWebURL = "https://twist.com"

// Link identifies a location in the Twist web app. WorkspaceID is always
// required; the remaining fields select the deepest object to point at.
type Link struct {
	WorkspaceID    int64
	ChannelID      int64
	ThreadID       int64
	CommentID      int64
	ConversationID int64
	MessageID      int64
}

// Path returns the link path relative to the web root.
func (l Link) Path() (string, error) {
	if l.WorkspaceID == 0 {
		return "", fmt.Errorf("%w: workspaceId is required", ErrInvalidArgument)
	}
	base := fmt.Sprintf("/a/%d", l.WorkspaceID)

	switch {
	case l.ConversationID != 0 && l.ThreadID != 0:
		return "", fmt.Errorf("%w: a link targets either a thread or a conversation", ErrInvalidArgument)
	case l.MessageID != 0 && l.ConversationID == 0:
		return "", fmt.Errorf("%w: messageId requires conversationId", ErrInvalidArgument)
	case l.CommentID != 0 && l.ThreadID == 0:
		return "", fmt.Errorf("%w: commentId requires threadId", ErrInvalidArgument)
	case l.CommentID != 0 && l.ChannelID == 0:
		return "", fmt.Errorf("%w: commentId requires channelId", ErrInvalidArgument)
	}

	switch {
	case l.MessageID != 0:
		return fmt.Sprintf("%s/msg/%d/m/%d", base, l.ConversationID, l.MessageID), nil
	case l.ConversationID != 0:
		return fmt.Sprintf("%s/msg/%d/", base, l.ConversationID), nil
	case l.CommentID != 0:
		return fmt.Sprintf("%s/ch/%d/t/%d/c/%d", base, l.ChannelID, l.ThreadID, l.CommentID), nil
	case l.ThreadID != 0 && l.ChannelID != 0:
		return fmt.Sprintf("%s/ch/%d/t/%d/", base, l.ChannelID, l.ThreadID), nil
	case l.ThreadID != 0:
		return fmt.Sprintf("%s/inbox/t/%d/", base, l.ThreadID), nil
	case l.ChannelID != 0:
		return fmt.Sprintf("%s/ch/%d/", base, l.ChannelID), nil
	default:
		return base + "/", nil
	}
}

// URL joins the link path onto webURL. An empty webURL uses DefaultWebURL.
func (l Link) URL(webURL string) (string, error) {
	p, err := l.Path()
	if err != nil {
		return "", err
	}
	if webURL == "" {
		webURL = DefaultWebURL
	}
	return strings.TrimRight(webURL, "/") + p, nil
}

// MustURL is URL for links built from ids already known to be consistent.
// It returns an empty string for an invalid link.
func (l Link) MustURL(webURL string) string {
	u, err := l.URL(webURL)
	if err != nil {
		return ""
	}
	return u
}

func ThreadURL(webURL string, workspaceID, channelID, threadID int64) string {
	return Link{WorkspaceID: workspaceID, ChannelID: channelID, ThreadID: threadID}.MustURL(webURL)
}

func CommentURL(webURL string, workspaceID, channelID, threadID, commentID int64) string {
	return Link{WorkspaceID: workspaceID, ChannelID: channelID, ThreadID: threadID, CommentID: commentID}.MustURL(webURL)
}

func ConversationURL(webURL string, workspaceID, conversationID int64) string {
	return Link{WorkspaceID: workspaceID, ConversationID: conversationID}.MustURL(webURL)
}

func MessageURL(webURL string, workspaceID, conversationID, messageID int64) string {
	return Link{WorkspaceID: workspaceID, ConversationID: conversationID, MessageID: messageID}.MustURL(webURL)
}

func ChannelURL(webURL string, workspaceID, channelID int64) string {
	return Link{WorkspaceID: workspaceID, ChannelID: channelID}.MustURL(webURL)
}

func WorkspaceURL(webURL string, workspaceID int64) string {
	return Link{WorkspaceID: workspaceID}.MustURL(webURL)
}
