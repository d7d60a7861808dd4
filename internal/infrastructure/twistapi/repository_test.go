package twistapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
	"github.com/felixgeelhaar/twist-mcp/internal/infrastructure/twistapi"
)

type recorded struct {
	method string
	path   string
	query  url.Values
	form   url.Values
}

// recorder answers every request with body and records what it saw.
type recorder struct {
	mu   sync.Mutex
	reqs []recorded
}

func (rc *recorder) server(t *testing.T, body any) *httptest.Server {
	t.Helper()
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		rc.mu.Lock()
		rc.reqs = append(rc.reqs, recorded{method: r.Method, path: r.URL.Path, query: r.URL.Query(), form: r.PostForm})
		rc.mu.Unlock()
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(s.Close)
	return s
}

func (rc *recorder) last(t *testing.T) recorded {
	t.Helper()
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if len(rc.reqs) == 0 {
		t.Fatal("no request recorded")
	}
	return rc.reqs[len(rc.reqs)-1]
}

func TestRepository_Comments(t *testing.T) {
	rc := &recorder{}
	s := rc.server(t, []twistapi.CommentDTO{{ID: 5, ThreadID: 9, Content: "hi", PostedTS: 1700000000}})
	repo := twistapi.NewRepository(twistapi.NewClient(s.URL, s.Client(), "t"))

	newer := time.Unix(1690000000, 0)
	comments, err := repo.Comments(context.Background(), twist.CommentQuery{ThreadID: 9, NewerThan: newer, Limit: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comments) != 1 || comments[0].Posted.Unix() != 1700000000 {
		t.Errorf("got %+v", comments)
	}

	req := rc.last(t)
	if req.path != "/comments/get" {
		t.Errorf("path = %s", req.path)
	}
	if req.query.Get("thread_id") != "9" || req.query.Get("newer_than_ts") != "1690000000" || req.query.Get("limit") != "20" {
		t.Errorf("query = %v", req.query)
	}
	if req.query.Has("older_than_ts") {
		t.Error("older_than_ts should be omitted when zero")
	}
}

func TestRepository_InboxCount(t *testing.T) {
	for _, body := range []any{12, map[string]int{"count": 12}} {
		rc := &recorder{}
		s := rc.server(t, body)
		repo := twistapi.NewRepository(twistapi.NewClient(s.URL, s.Client(), "t"))

		n, err := repo.InboxCount(context.Background(), 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 12 {
			t.Errorf("count = %d, want 12", n)
		}
	}
}

func TestRepository_Search(t *testing.T) {
	rc := &recorder{}
	s := rc.server(t, map[string]any{
		"items": []map[string]any{
			{"id": 501, "type": "comment", "snippet": "ship", "snippet_creator_id": 10, "thread_id": 9, "channel_id": 7},
			{"id": "m-3", "type": "message", "snippet": "dm", "conversation_id": 55},
		},
		"has_more":         true,
		"next_cursor_mark": "next",
	})
	repo := twistapi.NewRepository(twistapi.NewClient(s.URL, s.Client(), "t"))

	page, err := repo.Search(context.Background(), twist.SearchQuery{
		Query:       "ship",
		WorkspaceID: 1,
		ChannelIDs:  []int64{7, 8},
		DateFrom:    time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Cursor:      "prev",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 2 || page.Items[0].ID != "501" || page.Items[1].ID != "m-3" {
		t.Errorf("items = %+v", page.Items)
	}
	if !page.HasMore || page.NextCursor != "next" {
		t.Errorf("paging = %v %q", page.HasMore, page.NextCursor)
	}

	q := rc.last(t).query
	if q.Get("channel_ids") != "[7,8]" || q.Get("date_from") != "2024-02-01" || q.Get("cursor_mark") != "prev" {
		t.Errorf("query = %v", q)
	}
}

func TestRepository_AddComment(t *testing.T) {
	rc := &recorder{}
	s := rc.server(t, twistapi.CommentDTO{ID: 77, ThreadID: 9, ChannelID: 7, WorkspaceID: 1, Content: "ok"})
	repo := twistapi.NewRepository(twistapi.NewClient(s.URL, s.Client(), "t"))

	c, err := repo.AddComment(context.Background(), twist.NewComment{ThreadID: 9, Content: "ok", Recipients: []int64{10}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != 77 {
		t.Errorf("id = %d", c.ID)
	}
	req := rc.last(t)
	if req.method != http.MethodPost || req.path != "/comments/add" {
		t.Errorf("%s %s", req.method, req.path)
	}
	if req.form.Get("content") != "ok" || req.form.Get("recipients") != "[10]" {
		t.Errorf("form = %v", req.form)
	}
}

func TestRepository_Reactions(t *testing.T) {
	rc := &recorder{}
	s := rc.server(t, map[string]any{})
	repo := twistapi.NewRepository(twistapi.NewClient(s.URL, s.Client(), "t"))

	if err := repo.AddReaction(context.Background(), twist.Reaction{Target: twist.ReactOnComment, TargetID: 5, Emoji: "👍"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := rc.last(t)
	if req.path != "/reactions/add" || req.form.Get("comment_id") != "5" || req.form.Get("reaction") != "👍" {
		t.Errorf("got %+v", req)
	}

	if err := repo.RemoveReaction(context.Background(), twist.Reaction{Target: twist.ReactOnMessage, TargetID: 6, Emoji: "👍"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req = rc.last(t)
	if req.path != "/reactions/remove" || req.form.Get("message_id") != "6" {
		t.Errorf("got %+v", req)
	}
}

func TestRepository_MarkerEndpoints(t *testing.T) {
	rc := &recorder{}
	s := rc.server(t, map[string]any{})
	repo := twistapi.NewRepository(twistapi.NewClient(s.URL, s.Client(), "t"))
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		path string
		form map[string]string
	}{
		{"mark thread read", func() error { return repo.MarkThreadRead(ctx, 1) }, "/threads/mark_read", map[string]string{"id": "1", "obj_index": "0"}},
		{"archive thread", func() error { return repo.ArchiveThread(ctx, 2) }, "/inbox/archive", map[string]string{"id": "2"}},
		{"mark conversation read", func() error { return repo.MarkConversationRead(ctx, 3) }, "/conversations/mark_read", map[string]string{"id": "3"}},
		{"archive conversation", func() error { return repo.ArchiveConversation(ctx, 4) }, "/conversations/archive", map[string]string{"id": "4"}},
		{"mark all read workspace", func() error { return repo.MarkAllThreadsRead(ctx, twist.Scope{WorkspaceID: 5}) }, "/threads/mark_all_read", map[string]string{"workspace_id": "5"}},
		{"mark all read channel", func() error { return repo.MarkAllThreadsRead(ctx, twist.Scope{ChannelID: 6}) }, "/threads/mark_all_read", map[string]string{"channel_id": "6"}},
		{"archive all workspace", func() error { return repo.ArchiveAllThreads(ctx, twist.Scope{WorkspaceID: 5}) }, "/inbox/archive_all", map[string]string{"workspace_id": "5"}},
		{"clear unread", func() error { return repo.ClearUnread(ctx, 5) }, "/threads/clear_unread", map[string]string{"workspace_id": "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			req := rc.last(t)
			if req.method != http.MethodPost || req.path != tt.path {
				t.Errorf("got %s %s, want POST %s", req.method, req.path, tt.path)
			}
			for k, v := range tt.form {
				if req.form.Get(k) != v {
					t.Errorf("form[%s] = %q, want %q", k, req.form.Get(k), v)
				}
			}
		})
	}
}

func TestRepository_ArchiveAllChannelOnly(t *testing.T) {
	rc := &recorder{}
	s := rc.server(t, map[string]any{})
	repo := twistapi.NewRepository(twistapi.NewClient(s.URL, s.Client(), "t"))

	if err := repo.ArchiveAllThreads(context.Background(), twist.Scope{ChannelID: 6}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	form := rc.last(t).form
	if form.Get("channel_ids") != "[6]" {
		t.Errorf("channel_ids = %q", form.Get("channel_ids"))
	}
	if form.Has("workspace_id") {
		t.Error("channel-only archive must not send a workspace id")
	}
}

func TestRepository_ApplyBatch(t *testing.T) {
	var got []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		var items []struct {
			URL string `json:"url"`
		}
		_ = json.Unmarshal([]byte(r.PostForm.Get("requests")), &items)
		resp := make([]map[string]any, len(items))
		for i, it := range items {
			u, _ := url.Parse(it.URL)
			got = append(got, u.Path+"?"+u.RawQuery)
			resp[i] = map[string]any{"code": 200, "body": "null"}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	repo := twistapi.NewRepository(twistapi.NewClient(server.URL, server.Client(), "t"))
	err := repo.ApplyBatch(context.Background(), []twist.Mutation{
		{Op: twist.OpMarkThreadRead, TargetID: 1},
		{Op: twist.OpArchiveThread, TargetID: 1},
		{Op: twist.OpArchiveConversation, TargetID: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"/threads/mark_read?id=1&obj_index=0",
		"/inbox/archive?id=1",
		"/conversations/archive?id=2",
	}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("request %d = %q, want %q", i, got[i], want[i])
		}
	}
}
