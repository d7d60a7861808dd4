package mcp

import (
	"fmt"
	"strconv"
	"strings"

	searchapp "github.com/felixgeelhaar/twist-mcp/internal/application/search"
)

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func labelled(name string, id int64) string {
	if name == "" {
		return strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("%s (%d)", name, id)
}

func (r *MarkDoneResult) Markdown() string {
	noun := "Threads"
	if r.ItemType == "conversation" {
		noun = "Conversations"
	}
	lines := []string{fmt.Sprintf("# Mark %s Done", noun), ""}

	if r.Mode == "bulk" {
		lines = append(lines, "**Mode:** Bulk Operation")
		if r.Selectors != nil && r.Selectors.WorkspaceID != 0 {
			lines = append(lines, fmt.Sprintf("**Workspace ID:** %d", r.Selectors.WorkspaceID))
		}
		if r.Selectors != nil && r.Selectors.ChannelID != 0 {
			lines = append(lines, fmt.Sprintf("**Channel ID:** %d", r.Selectors.ChannelID))
		}
		if r.Operations.ClearUnread {
			lines = append(lines, "**Operation:** Clear all unread markers")
		} else {
			lines = append(lines,
				"**Mark Read:** "+yesNo(r.Operations.MarkRead),
				"**Archive:** "+yesNo(r.Operations.Archive),
			)
		}
		lines = append(lines, "", "✅ Bulk operation completed successfully")
	} else {
		lines = append(lines,
			"**Mode:** Individual IDs",
			fmt.Sprintf("**Total Requested:** %d", r.TotalRequested),
			fmt.Sprintf("**Successful:** %d", len(r.Completed)),
			fmt.Sprintf("**Failed:** %d", len(r.Failed)),
			"**Mark Read:** "+yesNo(r.Operations.MarkRead),
			"**Archive:** "+yesNo(r.Operations.Archive),
			"",
		)
		if len(r.Completed) > 0 {
			lines = append(lines, "## Completed", "", joinIDs(r.Completed), "")
		}
		if len(r.Failed) > 0 {
			lines = append(lines, "## Failed", "")
			for _, f := range r.Failed {
				lines = append(lines, fmt.Sprintf("- %s %d: %s", r.ItemType, f.Item, f.Error))
			}
			lines = append(lines, "")
		}
	}

	lines = append(lines, "## Next Steps", "")
	switch {
	case r.Mode == "bulk" || (len(r.Failed) == 0 && len(r.Completed) > 0):
		if r.ItemType == "thread" {
			lines = append(lines, "Use `fetch_inbox` to see remaining unread threads.")
		} else {
			lines = append(lines, "Check your conversations for remaining unread messages.")
		}
	case len(r.Failed) > 0:
		lines = append(lines, "Review failed items and retry if needed.")
	}
	return strings.Join(lines, "\n")
}

func (r *InboxResult) Markdown() string {
	lines := []string{
		fmt.Sprintf("# Inbox for Workspace %d", r.WorkspaceID),
		"",
		fmt.Sprintf("**Total Threads:** %d", r.UnreadCount),
		fmt.Sprintf("**Unread Threads:** %d", len(r.UnreadThreads)),
		"",
		fmt.Sprintf("## Threads (%d)", len(r.Threads)),
		"",
	}
	if len(r.Threads) == 0 {
		lines = append(lines, "_No threads in inbox_", "")
	} else {
		for _, th := range r.Threads {
			badges := ""
			if th.IsUnread {
				badges += " 🔵"
			}
			if th.IsStarred {
				badges += " ⭐"
			}
			lines = append(lines, fmt.Sprintf("- **%d**: %s%s (Channel %d)", th.ID, th.Title, badges, th.ChannelID))
		}
		lines = append(lines, "")
	}
	if r.UnreadCount > 0 {
		lines = append(lines,
			"## Next Steps",
			"",
			"- Use `load_thread` to read specific threads with their comments",
			"- Use `load_conversation` to read specific conversations with their messages",
			"- Use `mark_done` to mark items as read and archive them",
		)
	}
	return strings.Join(lines, "\n")
}

func (r *ThreadDataResult) Markdown() string {
	th := r.Thread
	channel := th.ChannelName
	if channel == "" {
		channel = strconv.FormatInt(th.ChannelID, 10)
	}
	lines := []string{
		"# Thread: " + th.Title,
		"",
		fmt.Sprintf("**Thread ID:** %d", th.ID),
		"**Channel:** " + channel,
		fmt.Sprintf("**Workspace ID:** %d", th.WorkspaceID),
		"**Creator:** " + labelled(th.CreatorName, th.Creator),
		"**Posted:** " + th.Posted,
		fmt.Sprintf("**Comments:** %d", th.CommentCount),
		"**Archived:** " + yesNo(th.IsArchived),
		"**In Inbox:** " + yesNo(th.InInbox),
		"**URL:** " + th.ThreadURL,
		"",
		"## Content",
		"",
		th.Content,
		"",
		fmt.Sprintf("## Comments (%d)", len(r.Comments)),
		"",
	}
	for _, c := range r.Comments {
		lines = append(lines,
			fmt.Sprintf("### Comment %d", c.ID),
			fmt.Sprintf("**Creator:** %s | **Posted:** %s", labelled(c.CreatorName, c.Creator), c.Posted),
			"",
			c.Content,
			"",
		)
	}
	if len(th.ParticipantNames) > 0 {
		lines = append(lines, "## Participants", "", strings.Join(th.ParticipantNames, ", "))
	}
	return strings.Join(lines, "\n")
}

func (r *ConversationDataResult) Markdown() string {
	c := r.Conversation
	lines := []string{fmt.Sprintf("# Conversation %d", c.ID), "", fmt.Sprintf("**Conversation ID:** %d", c.ID)}
	if c.Title != "" {
		lines = append(lines, "**Title:** "+c.Title)
	}
	lines = append(lines,
		fmt.Sprintf("**Workspace ID:** %d", c.WorkspaceID),
		"**Archived:** "+yesNo(c.Archived),
		"**Last Active:** "+c.LastActive,
		"**URL:** "+c.ConversationURL,
		"",
	)
	if len(c.UserIDs) > 0 {
		lines = append(lines, "## Participants", "", joinIDs(c.UserIDs), "")
	}
	lines = append(lines, fmt.Sprintf("## Messages (%d)", len(r.Messages)), "")
	for _, m := range r.Messages {
		lines = append(lines,
			fmt.Sprintf("### Message %d", m.ID),
			fmt.Sprintf("**Creator:** %s | **Posted:** %s", labelled(m.CreatorName, m.CreatorID), m.Posted),
			"",
			m.Content,
			"",
		)
	}
	return strings.Join(lines, "\n")
}

func (r *SearchResultsResult) Markdown() string {
	lines := []string{
		fmt.Sprintf("# Search Results for %q", r.Query),
		"",
		fmt.Sprintf("**Search Scope:** Workspace %d", r.WorkspaceID),
		fmt.Sprintf("**Results Found:** %d", len(r.Results)),
		"**More Available:** " + yesNo(r.HasMore),
		"",
	}
	if len(r.Results) == 0 {
		lines = append(lines, "_No results found_")
	} else {
		lines = append(lines, "## Results", "")
		for _, it := range r.Results {
			lines = append(lines,
				fmt.Sprintf("### %s %s", capitalize(it.Type), it.ID),
				fmt.Sprintf("**Created:** %s | **Creator:** %s", it.Created, labelled(it.CreatorName, it.CreatorID)),
			)
			if it.ThreadID != 0 {
				lines = append(lines, fmt.Sprintf("**Thread:** %d", it.ThreadID))
			}
			if it.ConversationID != 0 {
				lines = append(lines, fmt.Sprintf("**Conversation:** %d", it.ConversationID))
			}
			if it.ChannelID != 0 {
				lines = append(lines, "**Channel:** "+labelled(it.ChannelName, it.ChannelID))
			}
			lines = append(lines, "**URL:** "+it.URL, "", searchapp.Preview(it.Content, previewLength), "")
		}
	}
	if r.HasMore {
		lines = append(lines, "## Next Steps", "", "More results available. Use the cursor to fetch the next page.")
		if r.Cursor != "" {
			lines = append(lines, "", "**Cursor:** "+r.Cursor)
		}
	}
	return strings.Join(lines, "\n")
}

func (r *ReplyResult) Markdown() string {
	target := fmt.Sprintf("Thread %d", r.TargetID)
	if r.TargetType == "conversation" {
		target = fmt.Sprintf("Conversation %d", r.TargetID)
	}
	return strings.Join([]string{
		"# Reply Posted",
		"",
		"**Target:** " + target,
		fmt.Sprintf("**Reply ID:** %d", r.ReplyID),
		"**Created:** " + r.Created,
		"**URL:** " + r.ReplyURL,
		"",
		"## Content",
		"",
		r.Content,
	}, "\n")
}

func (r *ReactionResult) Markdown() string {
	verb := "Added"
	if r.Operation == "remove" {
		verb = "Removed"
	}
	return strings.Join([]string{
		"# Reaction " + verb,
		"",
		fmt.Sprintf("**Target:** %s %d", r.TargetType, r.TargetID),
		"**Emoji:** " + r.Emoji,
		"**Operation:** " + r.Operation,
		"**URL:** " + r.TargetURL,
	}, "\n")
}

func (r *LinkResult) Markdown() string {
	return strings.Join([]string{
		"# Twist Link",
		"",
		"**Type:** " + r.LinkType,
		"**URL:** " + r.URL,
	}, "\n")
}

func (r *WorkspacesResult) Markdown() string {
	if len(r.Workspaces) == 0 {
		return "# Workspaces\n\nNo workspaces found."
	}
	plural := "s"
	if len(r.Workspaces) == 1 {
		plural = ""
	}
	lines := []string{"# Workspaces", "", fmt.Sprintf("Found %d workspace%s:", len(r.Workspaces), plural), ""}
	for _, ws := range r.Workspaces {
		lines = append(lines,
			"## "+ws.Name,
			fmt.Sprintf("**ID:** %d", ws.ID),
			"**Creator:** "+labelled(ws.CreatorName, ws.Creator),
			"**Created:** "+ws.Created,
			"**URL:** "+ws.WorkspaceURL,
		)
		if ws.DefaultChannel != 0 {
			lines = append(lines, "**Default Channel:** "+labelled(ws.DefaultChannelName, ws.DefaultChannel))
		}
		if ws.DefaultConversation != 0 {
			lines = append(lines, "**Default Conversation:** "+labelled(ws.DefaultConversationTitle, ws.DefaultConversation))
		}
		if ws.Plan != "" {
			lines = append(lines, "**Plan:** "+ws.Plan)
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (r *UsersResult) Markdown() string {
	total := fmt.Sprintf("**Total Users:** %d", r.TotalUsers)
	if r.AppliedFilters.SearchText != "" {
		total += fmt.Sprintf(" (%d matching search)", r.FilteredUsers)
	}
	lines := []string{"# Workspace Users", "", fmt.Sprintf("**Workspace ID:** %d", r.WorkspaceID), total, ""}
	if len(r.Users) == 0 {
		lines = append(lines, "No users found.")
		return strings.Join(lines, "\n")
	}
	for _, u := range r.Users {
		heading := "## " + u.Name
		if u.Bot {
			heading += " 🤖"
		}
		lines = append(lines, heading, fmt.Sprintf("**ID:** %d", u.ID))
		if u.Email != "" {
			lines = append(lines, "**Email:** "+u.Email)
		}
		status := "Active"
		if u.Removed {
			status = "Removed"
		}
		lines = append(lines,
			"**User Type:** "+u.UserType,
			"**Timezone:** "+u.Timezone,
			"**Status:** "+status,
			"",
		)
	}
	return strings.Join(lines, "\n")
}

func (r *UserInfoResult) Markdown() string {
	lines := []string{
		"# User Information",
		"",
		fmt.Sprintf("**User ID:** %d", r.UserID),
		"**Name:** " + r.Name,
		"**Email:** " + r.Email,
		"**Timezone:** " + r.Timezone,
		"**Bot:** " + yesNo(r.Bot),
		"**Language:** " + r.Lang,
	}
	if r.DefaultWorkspace != nil {
		lines = append(lines, fmt.Sprintf("**Default Workspace:** %d", *r.DefaultWorkspace))
	}
	if r.AwayMode != nil {
		lines = append(lines,
			"",
			"## Away Mode",
			"**Type:** "+r.AwayMode.Type,
			"**From:** "+r.AwayMode.DateFrom,
			"**To:** "+r.AwayMode.DateTo,
		)
	}
	return strings.Join(lines, "\n")
}
