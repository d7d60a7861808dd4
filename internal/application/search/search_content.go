package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/felixgeelhaar/twist-mcp/internal/application/lookup"
	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
)

type SearchContentInput struct {
	twist.SearchQuery
}

// Result is a search hit enriched with display names and a web link.
type Result struct {
	twist.SearchResult
	CreatorName string
	ChannelName string
	URL         string
}

type SearchContentOutput struct {
	Query       string
	WorkspaceID int64
	Results     []Result
	HasMore     bool
	Cursor      string
}

type SearchContent struct {
	reader twist.Reader
	dir    twist.Directory
	webURL string
}

func NewSearchContent(reader twist.Reader, dir twist.Directory, webURL string) *SearchContent {
	return &SearchContent{reader: reader, dir: dir, webURL: webURL}
}

func (uc *SearchContent) Execute(ctx context.Context, input SearchContentInput) (*SearchContentOutput, error) {
	q := input.SearchQuery
	q.Query = strings.TrimSpace(q.Query)
	if q.Query == "" {
		return nil, fmt.Errorf("%w: query must not be empty", twist.ErrInvalidArgument)
	}
	if q.WorkspaceID == 0 {
		return nil, fmt.Errorf("%w: workspaceId is required", twist.ErrInvalidArgument)
	}
	if !q.DateFrom.IsZero() && !q.DateTo.IsZero() && q.DateTo.Before(q.DateFrom) {
		return nil, fmt.Errorf("%w: dateTo is before dateFrom", twist.ErrInvalidArgument)
	}

	page, err := uc.reader.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	out := &SearchContentOutput{
		Query:       q.Query,
		WorkspaceID: q.WorkspaceID,
		Results:     make([]Result, 0, len(page.Items)),
		HasMore:     page.HasMore,
		Cursor:      page.NextCursor,
	}
	if len(page.Items) == 0 {
		return out, nil
	}

	var userIDs, channelIDs []int64
	for _, it := range page.Items {
		userIDs = append(userIDs, it.SnippetCreatorID)
		channelIDs = append(channelIDs, it.ChannelID)
	}

	var users, channels map[int64]string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = lookup.UserNames(gctx, uc.dir, q.WorkspaceID, userIDs)
		return err
	})
	g.Go(func() error {
		var err error
		channels, err = lookup.ChannelNames(gctx, uc.dir, channelIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, it := range page.Items {
		out.Results = append(out.Results, Result{
			SearchResult: it,
			CreatorName:  users[it.SnippetCreatorID],
			ChannelName:  channels[it.ChannelID],
			URL:          uc.resultURL(q.WorkspaceID, it),
		})
	}
	return out, nil
}

func (uc *SearchContent) resultURL(workspaceID int64, r twist.SearchResult) string {
	switch r.Type {
	case twist.SearchResultThread:
		return twist.ThreadURL(uc.webURL, workspaceID, r.ChannelID, r.ThreadID)
	case twist.SearchResultComment:
		return twist.CommentURL(uc.webURL, workspaceID, r.ChannelID, r.ThreadID, idOf(r.ID))
	case twist.SearchResultMessage:
		return twist.MessageURL(uc.webURL, workspaceID, r.ConversationID, idOf(r.ID))
	default:
		return ""
	}
}

// idOf parses the numeric object id carried in a search hit id. Hits use
// plain numbers for comments and messages; anything else yields 0.
func idOf(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Preview shortens content for listings.
func Preview(content string, n int) string {
	r := []rune(content)
	if len(r) <= n {
		return content
	}
	return string(r[:n]) + "..."
}
