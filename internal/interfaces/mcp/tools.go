package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tool names.
const (
	ToolUserInfo         = "user_info"
	ToolGetWorkspaces    = "get_workspaces"
	ToolGetUsers         = "get_users"
	ToolFetchInbox       = "fetch_inbox"
	ToolLoadThread       = "load_thread"
	ToolLoadConversation = "load_conversation"
	ToolSearchContent    = "search_content"
	ToolReply            = "reply"
	ToolReact            = "react"
	ToolMarkDone         = "mark_done"
	ToolBuildLink        = "build_link"
)

// Mutability classifies a tool for its MCP annotation hints.
type Mutability int

const (
	ReadOnly Mutability = iota
	Additive
	Mutating
)

// annotate sets readOnly/destructive hints from m and a title derived from
// the tool name.
func annotate(name string, m Mutability, idempotent bool) []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithTitleAnnotation(ToolTitle(name)),
		mcp.WithReadOnlyHintAnnotation(m == ReadOnly),
		mcp.WithDestructiveHintAnnotation(m == Mutating),
		mcp.WithIdempotentHintAnnotation(idempotent),
		mcp.WithOpenWorldHintAnnotation(true),
	}
}

// ToolTitle turns "load_thread" into "Twist: Load Thread".
func ToolTitle(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' })
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return "Twist: " + strings.Join(parts, " ")
}

func newTool(name, description string, m Mutability, idempotent bool, params ...mcp.ToolOption) mcp.Tool {
	opts := append([]mcp.ToolOption{mcp.WithDescription(description)}, params...)
	return mcp.NewTool(name, append(opts, annotate(name, m, idempotent)...)...)
}

type markdowner interface {
	Markdown() string
}

// toolHandler binds and validates the call arguments, runs fn and returns
// its result as structured content with a markdown rendering. Failures come
// back as error results so the session stays up.
func toolHandler[In any, Out markdowner](fn func(context.Context, In) (Out, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var in In
		if err := req.BindArguments(&in); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if err := validateInput(in); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out, err := fn(ctx, in)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultStructured(out, out.Markdown()), nil
	}
}

func limitParam(what string) mcp.ToolOption {
	return mcp.WithNumber("limit",
		mcp.Description(fmt.Sprintf("Maximum number of %s to return (1-100)", what)),
		mcp.Min(1), mcp.Max(100), mcp.DefaultNumber(50),
	)
}

func (s *Server) registerTools(srv *server.MCPServer) {
	if s.userInfo != nil {
		srv.AddTool(newTool(ToolUserInfo,
			"Get information about the current authenticated Twist user.",
			ReadOnly, true,
		), toolHandler(s.HandleUserInfo))
	}

	if s.getWorkspaces != nil {
		srv.AddTool(newTool(ToolGetWorkspaces,
			"List all Twist workspaces the user belongs to, with creator, default channel and default conversation.",
			ReadOnly, true,
		), toolHandler(s.HandleGetWorkspaces))
	}

	if s.getUsers != nil {
		srv.AddTool(newTool(ToolGetUsers,
			"List users in a workspace, optionally restricted to ids or filtered by name/email.",
			ReadOnly, true,
			mcp.WithNumber("workspaceId", mcp.Required(), mcp.Description("The workspace ID")),
			mcp.WithArray("userIds", mcp.WithNumberItems(), mcp.Description("Only return these user IDs")),
			mcp.WithString("searchText", mcp.Description("Case-insensitive filter on name or email")),
		), toolHandler(s.HandleGetUsers))
	}

	if s.fetchInbox != nil {
		srv.AddTool(newTool(ToolFetchInbox,
			"Fetch the inbox threads of a workspace with unread state.",
			ReadOnly, true,
			mcp.WithNumber("workspaceId", mcp.Required(), mcp.Description("The workspace ID")),
			mcp.WithString("sinceDate", mcp.Description("Only threads updated after this date (YYYY-MM-DD)")),
			mcp.WithString("untilDate", mcp.Description("Only threads updated before this date (YYYY-MM-DD)")),
			limitParam("threads"),
			mcp.WithBoolean("onlyUnread", mcp.Description("Only return unread threads"), mcp.DefaultBool(false)),
		), toolHandler(s.HandleFetchInbox))
	}

	if s.loadThread != nil {
		srv.AddTool(newTool(ToolLoadThread,
			"Load a thread with its comments.",
			ReadOnly, true,
			mcp.WithNumber("threadId", mcp.Required(), mcp.Description("The thread ID")),
			mcp.WithString("newerThanDate", mcp.Description("Only comments newer than this date (YYYY-MM-DD)")),
			mcp.WithString("olderThanDate", mcp.Description("Only comments older than this date (YYYY-MM-DD)")),
			limitParam("comments"),
			mcp.WithBoolean("includeParticipants", mcp.Description("Include participant names"), mcp.DefaultBool(true)),
		), toolHandler(s.HandleLoadThread))
	}

	if s.loadConversation != nil {
		srv.AddTool(newTool(ToolLoadConversation,
			"Load a direct-message conversation with its messages.",
			ReadOnly, true,
			mcp.WithNumber("conversationId", mcp.Required(), mcp.Description("The conversation ID")),
			mcp.WithString("newerThanDate", mcp.Description("Only messages newer than this date (YYYY-MM-DD)")),
			mcp.WithString("olderThanDate", mcp.Description("Only messages older than this date (YYYY-MM-DD)")),
			limitParam("messages"),
			mcp.WithBoolean("includeParticipants", mcp.Description("Include participant IDs"), mcp.DefaultBool(true)),
		), toolHandler(s.HandleLoadConversation))
	}

	if s.searchContent != nil {
		srv.AddTool(newTool(ToolSearchContent,
			"Search threads, comments and messages in a workspace.",
			ReadOnly, true,
			mcp.WithString("query", mcp.Required(), mcp.MinLength(1), mcp.Description("Search text")),
			mcp.WithNumber("workspaceId", mcp.Required(), mcp.Description("The workspace ID")),
			mcp.WithArray("channelIds", mcp.WithNumberItems(), mcp.Description("Restrict to these channels")),
			mcp.WithArray("authorIds", mcp.WithNumberItems(), mcp.Description("Restrict to these authors")),
			mcp.WithBoolean("mentionSelf", mcp.Description("Only content mentioning the current user")),
			mcp.WithString("dateFrom", mcp.Description("Start date (YYYY-MM-DD)")),
			mcp.WithString("dateTo", mcp.Description("End date (YYYY-MM-DD)")),
			limitParam("results"),
			mcp.WithString("cursor", mcp.Description("Cursor from a previous page")),
		), toolHandler(s.HandleSearchContent))
	}

	if s.reply != nil {
		srv.AddTool(newTool(ToolReply,
			"Post a comment on a thread or a message in a conversation.",
			Additive, false,
			mcp.WithString("targetType", mcp.Required(), mcp.Enum("thread", "conversation"), mcp.Description("What to reply to")),
			mcp.WithNumber("targetId", mcp.Required(), mcp.Description("The thread or conversation ID")),
			mcp.WithString("content", mcp.Required(), mcp.MinLength(1), mcp.Description("Reply text (markdown)")),
			mcp.WithArray("recipients", mcp.WithNumberItems(), mcp.Description("User IDs to notify (threads only)")),
		), toolHandler(s.HandleReply))
	}

	if s.react != nil {
		srv.AddTool(newTool(ToolReact,
			"Add or remove an emoji reaction on a thread, comment or message.",
			Mutating, false,
			mcp.WithString("targetType", mcp.Required(), mcp.Enum("thread", "comment", "message"), mcp.Description("What to react to")),
			mcp.WithNumber("targetId", mcp.Required(), mcp.Description("The target ID")),
			mcp.WithString("emoji", mcp.Required(), mcp.MinLength(1), mcp.Description("The emoji")),
			mcp.WithString("operation", mcp.Enum("add", "remove"), mcp.Description("add (default) or remove")),
		), toolHandler(s.HandleReact))
	}

	if s.markDone != nil {
		srv.AddTool(newTool(ToolMarkDone,
			"Mark threads or conversations as done: read and/or archived. Accepts explicit ids, or for threads a whole workspace or channel.",
			Mutating, true,
			mcp.WithString("type", mcp.Required(), mcp.Enum("thread", "conversation"), mcp.Description("Type of items")),
			mcp.WithArray("ids", mcp.WithNumberItems(), mcp.Description("Item IDs; mutually exclusive with workspaceId/channelId")),
			mcp.WithNumber("workspaceId", mcp.Description("Mark every thread in this workspace (threads only)")),
			mcp.WithNumber("channelId", mcp.Description("Mark every thread in this channel (threads only)")),
			mcp.WithBoolean("markRead", mcp.Description("Mark as read"), mcp.DefaultBool(true)),
			mcp.WithBoolean("archive", mcp.Description("Archive"), mcp.DefaultBool(true)),
			mcp.WithBoolean("clearUnread", mcp.Description("Clear all unread markers in the workspace (threads + workspaceId only)"), mcp.DefaultBool(false)),
		), toolHandler(s.HandleMarkDone))
	}

	if s.buildLink != nil {
		srv.AddTool(newTool(ToolBuildLink,
			"Build a Twist web link to a conversation, message, thread or comment.",
			ReadOnly, true,
			mcp.WithNumber("workspaceId", mcp.Required(), mcp.Description("The workspace ID")),
			mcp.WithNumber("conversationId", mcp.Description("Conversation ID")),
			mcp.WithNumber("messageId", mcp.Description("Message ID (with conversationId)")),
			mcp.WithNumber("channelId", mcp.Description("Channel ID (required for comment links)")),
			mcp.WithNumber("threadId", mcp.Description("Thread ID")),
			mcp.WithNumber("commentId", mcp.Description("Comment ID (with threadId and channelId)")),
			mcp.WithBoolean("fullUrl", mcp.Description("Return an absolute URL"), mcp.DefaultBool(true)),
		), toolHandler(s.HandleBuildLink))
	}
}
