package mcp

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
)

func TestParseDate(t *testing.T) {
	got, err := parseDate("sinceDate", "2024-03-01")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))

	got, err = parseDate("sinceDate", "2024-03-01T10:30:00+02:00")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)))

	got, err = parseDate("sinceDate", "  ")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = parseDate("untilDate", "03/01/2024")
	require.True(t, errors.Is(err, twist.ErrInvalidArgument))
	assert.Contains(t, err.Error(), `untilDate must be YYYY-MM-DD or RFC3339, got "03/01/2024"`)
}

func TestValidateInput_NamesJSONFields(t *testing.T) {
	err := validateInput(MarkDoneToolInput{})
	require.ErrorIs(t, err, twist.ErrInvalidArgument)
	assert.Equal(t, "invalid argument: type is required", err.Error())

	limit := 0
	err = validateInput(LoadThreadToolInput{ThreadID: 1, Limit: &limit})
	require.ErrorIs(t, err, twist.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "limit must be between 1 and 100")

	assert.NoError(t, validateInput(MarkDoneToolInput{Type: "conversation", IDs: []int64{1}}))
}

func TestMarkDoneMarkdown_AllCompleted(t *testing.T) {
	r := &MarkDoneResult{
		ItemType:       "thread",
		Mode:           "individual",
		Completed:      []int64{4, 5},
		Failed:         []FailureResult{},
		TotalRequested: 2,
		Operations:     OperationsResult{MarkRead: true},
	}

	md := r.Markdown()
	assert.Contains(t, md, "**Mark Read:** Yes\n**Archive:** No")
	assert.Contains(t, md, "## Completed\n\n4, 5")
	assert.NotContains(t, md, "## Failed")
	assert.True(t, strings.HasSuffix(md, "Use `fetch_inbox` to see remaining unread threads."))
}

func TestMarkDoneMarkdown_BulkChannel(t *testing.T) {
	r := &MarkDoneResult{
		ItemType:   "thread",
		Mode:       "bulk",
		Completed:  []int64{},
		Failed:     []FailureResult{},
		Operations: OperationsResult{MarkRead: true, Archive: true},
		Selectors:  &SelectorsResult{ChannelID: 7},
	}

	md := r.Markdown()
	assert.Contains(t, md, "**Channel ID:** 7")
	assert.NotContains(t, md, "**Workspace ID:**")
	assert.Contains(t, md, "**Mark Read:** Yes\n**Archive:** Yes\n\n✅ Bulk operation completed successfully")
}

func TestWorkspacesMarkdown_Empty(t *testing.T) {
	r := &WorkspacesResult{Workspaces: []WorkspaceResult{}}
	assert.Equal(t, "# Workspaces\n\nNo workspaces found.", r.Markdown())
}

func TestSearchMarkdown(t *testing.T) {
	r := &SearchResultsResult{
		Query:       "launch",
		WorkspaceID: 42,
		Results: []SearchHitResult{
			{ID: "c-9", Type: "comment", Content: strings.Repeat("x", 250), CreatorID: 10, ThreadID: 3, ChannelID: 7, ChannelName: "general"},
			{ID: "?", Type: ""},
		},
		HasMore: true,
		Cursor:  "abc",
	}

	md := r.Markdown()
	assert.Contains(t, md, `# Search Results for "launch"`)
	assert.Contains(t, md, "### Comment c-9")
	assert.Contains(t, md, "**Channel:** general (7)")
	assert.Contains(t, md, strings.Repeat("x", 200)+"...")
	assert.NotContains(t, md, strings.Repeat("x", 201))
	assert.Contains(t, md, "**Cursor:** abc")
}

func TestCapitalizeAndLabels(t *testing.T) {
	assert.Equal(t, "", capitalize(""))
	assert.Equal(t, "Thread", capitalize("thread"))
	assert.Equal(t, "7", labelled("", 7))
	assert.Equal(t, "Ada (7)", labelled("Ada", 7))
	assert.Equal(t, "1, 2, 3", joinIDs([]int64{1, 2, 3}))
}
