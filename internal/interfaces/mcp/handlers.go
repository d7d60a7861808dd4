package mcp

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

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

// --- Tool Input Types ---

type UserInfoToolInput struct{}

type GetWorkspacesToolInput struct{}

type GetUsersToolInput struct {
	WorkspaceID int64   `json:"workspaceId" validate:"required"`
	UserIDs     []int64 `json:"userIds,omitempty"`
	SearchText  string  `json:"searchText,omitempty"`
}

type FetchInboxToolInput struct {
	WorkspaceID int64  `json:"workspaceId" validate:"required"`
	SinceDate   string `json:"sinceDate,omitempty"`
	UntilDate   string `json:"untilDate,omitempty"`
	Limit       *int   `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
	OnlyUnread  bool   `json:"onlyUnread,omitempty"`
}

type LoadThreadToolInput struct {
	ThreadID            int64  `json:"threadId" validate:"required"`
	NewerThanDate       string `json:"newerThanDate,omitempty"`
	OlderThanDate       string `json:"olderThanDate,omitempty"`
	Limit               *int   `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
	IncludeParticipants *bool  `json:"includeParticipants,omitempty"`
}

type LoadConversationToolInput struct {
	ConversationID      int64  `json:"conversationId" validate:"required"`
	NewerThanDate       string `json:"newerThanDate,omitempty"`
	OlderThanDate       string `json:"olderThanDate,omitempty"`
	Limit               *int   `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
	IncludeParticipants *bool  `json:"includeParticipants,omitempty"`
}

type SearchContentToolInput struct {
	Query       string  `json:"query" validate:"required"`
	WorkspaceID int64   `json:"workspaceId" validate:"required"`
	ChannelIDs  []int64 `json:"channelIds,omitempty"`
	AuthorIDs   []int64 `json:"authorIds,omitempty"`
	MentionSelf bool    `json:"mentionSelf,omitempty"`
	DateFrom    string  `json:"dateFrom,omitempty"`
	DateTo      string  `json:"dateTo,omitempty"`
	Limit       *int    `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
	Cursor      string  `json:"cursor,omitempty"`
}

type ReplyToolInput struct {
	TargetType string  `json:"targetType" validate:"required,oneof=thread conversation"`
	TargetID   int64   `json:"targetId" validate:"required"`
	Content    string  `json:"content" validate:"required"`
	Recipients []int64 `json:"recipients,omitempty"`
}

type ReactToolInput struct {
	TargetType string `json:"targetType" validate:"required,oneof=thread comment message"`
	TargetID   int64  `json:"targetId" validate:"required"`
	Emoji      string `json:"emoji" validate:"required"`
	Operation  string `json:"operation,omitempty" validate:"omitempty,oneof=add remove"`
}

type MarkDoneToolInput struct {
	Type        string  `json:"type" validate:"required,oneof=thread conversation"`
	IDs         []int64 `json:"ids,omitempty"`
	WorkspaceID int64   `json:"workspaceId,omitempty"`
	ChannelID   int64   `json:"channelId,omitempty"`
	MarkRead    *bool   `json:"markRead,omitempty"`
	Archive     *bool   `json:"archive,omitempty"`
	ClearUnread *bool   `json:"clearUnread,omitempty"`
}

type BuildLinkToolInput struct {
	WorkspaceID    int64 `json:"workspaceId" validate:"required"`
	ConversationID int64 `json:"conversationId,omitempty"`
	MessageID      int64 `json:"messageId,omitempty"`
	ChannelID      int64 `json:"channelId,omitempty"`
	ThreadID       int64 `json:"threadId,omitempty"`
	CommentID      int64 `json:"commentId,omitempty"`
	FullURL        *bool `json:"fullUrl,omitempty"`
}

// --- Tool Handlers ---

func (s *Server) HandleUserInfo(ctx context.Context, _ UserInfoToolInput) (*UserInfoResult, error) {
	u, err := s.userInfo.Execute(ctx)
	if err != nil {
		return nil, err
	}
	return toUserInfoResult(u), nil
}

func (s *Server) HandleGetWorkspaces(ctx context.Context, _ GetWorkspacesToolInput) (*WorkspacesResult, error) {
	out, err := s.getWorkspaces.Execute(ctx)
	if err != nil {
		return nil, err
	}
	return toWorkspacesResult(out, s.webURL), nil
}

func (s *Server) HandleGetUsers(ctx context.Context, input GetUsersToolInput) (*UsersResult, error) {
	in := workspaceapp.GetUsersInput{
		WorkspaceID: input.WorkspaceID,
		UserIDs:     input.UserIDs,
		SearchText:  input.SearchText,
	}
	out, err := s.getUsers.Execute(ctx, in)
	if err != nil {
		return nil, err
	}
	return toUsersResult(in, out), nil
}

func (s *Server) HandleFetchInbox(ctx context.Context, input FetchInboxToolInput) (*InboxResult, error) {
	since, err := parseDate("sinceDate", input.SinceDate)
	if err != nil {
		return nil, err
	}
	until, err := parseDate("untilDate", input.UntilDate)
	if err != nil {
		return nil, err
	}
	out, err := s.fetchInbox.Execute(ctx, inboxapp.FetchInboxInput{
		WorkspaceID: input.WorkspaceID,
		Since:       since,
		Until:       until,
		Limit:       intOr(input.Limit, inboxapp.DefaultLimit),
		OnlyUnread:  input.OnlyUnread,
	})
	if err != nil {
		return nil, err
	}
	return toInboxResult(out, s.webURL), nil
}

func (s *Server) HandleLoadThread(ctx context.Context, input LoadThreadToolInput) (*ThreadDataResult, error) {
	newer, err := parseDate("newerThanDate", input.NewerThanDate)
	if err != nil {
		return nil, err
	}
	older, err := parseDate("olderThanDate", input.OlderThanDate)
	if err != nil {
		return nil, err
	}
	out, err := s.loadThread.Execute(ctx, threadapp.LoadThreadInput{
		ThreadID:            input.ThreadID,
		NewerThan:           newer,
		OlderThan:           older,
		Limit:               intOr(input.Limit, threadapp.DefaultLimit),
		IncludeParticipants: boolOr(input.IncludeParticipants, true),
	})
	if err != nil {
		return nil, err
	}
	return toThreadDataResult(out), nil
}

func (s *Server) HandleLoadConversation(ctx context.Context, input LoadConversationToolInput) (*ConversationDataResult, error) {
	newer, err := parseDate("newerThanDate", input.NewerThanDate)
	if err != nil {
		return nil, err
	}
	older, err := parseDate("olderThanDate", input.OlderThanDate)
	if err != nil {
		return nil, err
	}
	out, err := s.loadConversation.Execute(ctx, conversationapp.LoadConversationInput{
		ConversationID:      input.ConversationID,
		NewerThan:           newer,
		OlderThan:           older,
		Limit:               intOr(input.Limit, conversationapp.DefaultLimit),
		IncludeParticipants: boolOr(input.IncludeParticipants, true),
	})
	if err != nil {
		return nil, err
	}
	return toConversationDataResult(out), nil
}

func (s *Server) HandleSearchContent(ctx context.Context, input SearchContentToolInput) (*SearchResultsResult, error) {
	from, err := parseDate("dateFrom", input.DateFrom)
	if err != nil {
		return nil, err
	}
	to, err := parseDate("dateTo", input.DateTo)
	if err != nil {
		return nil, err
	}
	out, err := s.searchContent.Execute(ctx, searchapp.SearchContentInput{SearchQuery: twist.SearchQuery{
		Query:       input.Query,
		WorkspaceID: input.WorkspaceID,
		ChannelIDs:  input.ChannelIDs,
		AuthorIDs:   input.AuthorIDs,
		MentionSelf: input.MentionSelf,
		DateFrom:    from,
		DateTo:      to,
		Limit:       intOr(input.Limit, 0),
		Cursor:      input.Cursor,
	}})
	if err != nil {
		return nil, err
	}
	return toSearchResultsResult(out), nil
}

func (s *Server) HandleReply(ctx context.Context, input ReplyToolInput) (*ReplyResult, error) {
	out, err := s.reply.Execute(ctx, replyapp.ReplyInput{
		TargetType: twist.TargetKind(input.TargetType),
		TargetID:   input.TargetID,
		Content:    input.Content,
		Recipients: input.Recipients,
	})
	if err != nil {
		return nil, err
	}
	return toReplyResult(out), nil
}

func (s *Server) HandleReact(ctx context.Context, input ReactToolInput) (*ReactionResult, error) {
	out, err := s.react.Execute(ctx, reactionapp.ReactInput{
		TargetType: twist.ReactionTarget(input.TargetType),
		TargetID:   input.TargetID,
		Emoji:      input.Emoji,
		Operation:  reactionapp.Operation(input.Operation),
	})
	if err != nil {
		return nil, err
	}
	return toReactionResult(out), nil
}

func (s *Server) HandleMarkDone(ctx context.Context, input MarkDoneToolInput) (*MarkDoneResult, error) {
	out, err := s.markDone.Execute(ctx, doneapp.MarkDoneInput{
		Type:        twist.TargetKind(input.Type),
		IDs:         input.IDs,
		WorkspaceID: input.WorkspaceID,
		ChannelID:   input.ChannelID,
		MarkRead:    input.MarkRead,
		Archive:     input.Archive,
		ClearUnread: input.ClearUnread,
	})
	if err != nil {
		return nil, err
	}
	return toMarkDoneResult(out), nil
}

func (s *Server) HandleBuildLink(_ context.Context, input BuildLinkToolInput) (*LinkResult, error) {
	in := linkapp.BuildLinkInput{
		WorkspaceID:    input.WorkspaceID,
		ConversationID: input.ConversationID,
		MessageID:      input.MessageID,
		ChannelID:      input.ChannelID,
		ThreadID:       input.ThreadID,
		CommentID:      input.CommentID,
		FullURL:        boolOr(input.FullURL, true),
	}
	out, err := s.buildLink.Execute(in)
	if err != nil {
		return nil, err
	}
	return toLinkResult(in, out), nil
}

// --- Input helpers ---

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput reports the first failed constraint as ErrInvalidArgument,
// named by the JSON argument the client sent.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", twist.ErrInvalidArgument, err)
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", twist.ErrInvalidArgument, fe.Field())
	case "oneof":
		return fmt.Errorf("%w: %s must be one of: %s", twist.ErrInvalidArgument, fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min", "max":
		return fmt.Errorf("%w: %s must be between 1 and 100", twist.ErrInvalidArgument, fe.Field())
	default:
		return fmt.Errorf("%w: %s is invalid", twist.ErrInvalidArgument, fe.Field())
	}
}

// parseDate accepts YYYY-MM-DD or RFC3339; empty means unset.
func parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD or RFC3339, got %q", twist.ErrInvalidArgument, field, value)
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
