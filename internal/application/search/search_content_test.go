package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist/twisttest"
)

func searchAPI() *twisttest.API {
	return &twisttest.API{
		Users:    map[int64][]twist.WorkspaceUser{3: {{ID: 10, Name: "Ada"}}},
		Channels: map[int64]twist.Channel{7: {ID: 7, Name: "eng"}},
		SearchResults: &twist.SearchPage{
			Items: []twist.SearchResult{
				{ID: "100", Type: twist.SearchResultThread, Snippet: "launch", SnippetCreatorID: 10, ThreadID: 100, ChannelID: 7},
				{ID: "501", Type: twist.SearchResultComment, Snippet: "ship it", SnippetCreatorID: 10, ThreadID: 100, ChannelID: 7},
				{ID: "9", Type: twist.SearchResultMessage, Snippet: "dm", SnippetCreatorID: 99, ConversationID: 55},
			},
			HasMore:    true,
			NextCursor: "abc",
		},
	}
}

func TestSearchContent(t *testing.T) {
	api := searchAPI()
	uc := NewSearchContent(api, api, "")

	out, err := uc.Execute(context.Background(), SearchContentInput{twist.SearchQuery{
		Query:       "  launch ",
		WorkspaceID: 3,
		ChannelIDs:  []int64{7},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if api.LastSearch.Query != "launch" || len(api.LastSearch.ChannelIDs) != 1 {
		t.Errorf("query not forwarded: %+v", api.LastSearch)
	}
	if !out.HasMore || out.Cursor != "abc" {
		t.Errorf("paging = %v %q", out.HasMore, out.Cursor)
	}
	if len(out.Results) != 3 {
		t.Fatalf("got %d results", len(out.Results))
	}

	wantURLs := []string{
		"https://twist.com/a/3/ch/7/t/100/",
		"https://twist.com/a/3/ch/7/t/100/c/501",
		"https://twist.com/a/3/msg/55/m/9",
	}
	for i, want := range wantURLs {
		if out.Results[i].URL != want {
			t.Errorf("result %d url = %q, want %q", i, out.Results[i].URL, want)
		}
	}
	if out.Results[0].CreatorName != "Ada" || out.Results[0].ChannelName != "eng" {
		t.Errorf("names not resolved: %+v", out.Results[0])
	}
	if out.Results[2].CreatorName != "" {
		t.Errorf("unknown creator should have no name, got %q", out.Results[2].CreatorName)
	}
}

func TestSearchContent_Validation(t *testing.T) {
	api := searchAPI()
	uc := NewSearchContent(api, api, "")

	for _, q := range []twist.SearchQuery{
		{Query: "   ", WorkspaceID: 3},
		{Query: "x"},
	} {
		if _, err := uc.Execute(context.Background(), SearchContentInput{q}); !errors.Is(err, twist.ErrInvalidArgument) {
			t.Errorf("%+v: got %v", q, err)
		}
	}
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("a", 250)
	got := Preview(long, 200)
	if len(got) != 203 || !strings.HasSuffix(got, "...") {
		t.Errorf("Preview length = %d", len(got))
	}
	if Preview("short", 200) != "short" {
		t.Error("short content should be unchanged")
	}
}
