package mcp_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

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
	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist/mock_twist"
	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist/twisttest"
	mcpiface "github.com/felixgeelhaar/twist-mcp/internal/interfaces/mcp"
)

func testAPI() *twisttest.API {
	return &twisttest.API{
		Me: &twist.User{ID: 10, Name: "Ada", Email: "ada@example.com", Timezone: "UTC", DefaultWorkspace: 42},
		WorkspaceList: []twist.Workspace{
			{ID: 42, Name: "Acme", Creator: 10, DefaultChannel: 7, DefaultConversation: 99},
		},
		Channels: map[int64]twist.Channel{7: {ID: 7, Name: "general", WorkspaceID: 42}},
		Threads: map[int64]twist.Thread{
			3: {ID: 3, Title: "Launch plan", Content: "Let's ship", ChannelID: 7, WorkspaceID: 42, Creator: 10},
		},
		InboxThreads: []twist.InboxThread{
			{ID: 1, Title: "Launch plan", ChannelID: 7, WorkspaceID: 42, Creator: 10},
			{ID: 2, Title: "Retro", ChannelID: 7, WorkspaceID: 42, Creator: 11, Starred: true},
		},
		Count:  2,
		Unread: []twist.UnreadThread{{ThreadID: 2, ChannelID: 7}},
	}
}

func newTestServer(api *twisttest.API, marker twist.Marker) *mcpiface.Server {
	const web = twist.DefaultWebURL
	return mcpiface.NewServer("twist-mcp", "test", mcpiface.ServerOptions{
		UserInfo:         workspaceapp.NewUserInfo(api),
		GetWorkspaces:    workspaceapp.NewGetWorkspaces(api, api),
		GetUsers:         workspaceapp.NewGetUsers(api, api),
		FetchInbox:       inboxapp.NewFetchInbox(api),
		LoadThread:       threadapp.NewLoadThread(api, api, web),
		LoadConversation: conversationapp.NewLoadConversation(api, api, web),
		SearchContent:    searchapp.NewSearchContent(api, api, web),
		Reply:            replyapp.NewReply(api, web),
		React:            reactionapp.NewReact(api, api, web),
		MarkDone:         doneapp.NewMarkDone(marker, nil),
		BuildLink:        linkapp.NewBuildLink(web),
		Logger:           log.New(io.Discard),
	})
}

func callTool(t *testing.T, srv *mcpiface.Server, name, args string) *mcp.CallToolResult {
	t.Helper()
	res, err := srv.HandleToolJSON(context.Background(), name, json.RawMessage(args))
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func TestServer_NameAndVersion(t *testing.T) {
	srv := newTestServer(testAPI(), nil)

	if srv.Name() != "twist-mcp" {
		t.Errorf("got name %q", srv.Name())
	}
	if srv.Version() != "test" {
		t.Errorf("got version %q", srv.Version())
	}
}

func TestServer_RegistersAllTools(t *testing.T) {
	srv := newTestServer(testAPI(), nil)

	assert.Equal(t, []string{
		"build_link", "fetch_inbox", "get_users", "get_workspaces", "load_conversation",
		"load_thread", "mark_done", "react", "reply", "search_content", "user_info",
	}, srv.ToolNames())
}

func TestServer_SkipsToolsWithoutUseCase(t *testing.T) {
	srv := mcpiface.NewServer("twist-mcp", "test", mcpiface.ServerOptions{
		BuildLink: linkapp.NewBuildLink(""),
		Logger:    log.New(io.Discard),
	})

	assert.Equal(t, []string{"build_link"}, srv.ToolNames())
	_, ok := srv.Tool(mcpiface.ToolMarkDone)
	assert.False(t, ok)
}

func TestServer_ToolAnnotations(t *testing.T) {
	srv := newTestServer(testAPI(), nil)

	tests := []struct {
		name        string
		readOnly    bool
		destructive bool
		idempotent  bool
	}{
		{mcpiface.ToolFetchInbox, true, false, true},
		{mcpiface.ToolReply, false, false, false},
		{mcpiface.ToolReact, false, true, false},
		{mcpiface.ToolMarkDone, false, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool, ok := srv.Tool(tt.name)
			require.True(t, ok)

			a := tool.Annotations
			assert.Equal(t, mcpiface.ToolTitle(tt.name), a.Title)
			require.NotNil(t, a.ReadOnlyHint)
			require.NotNil(t, a.DestructiveHint)
			require.NotNil(t, a.IdempotentHint)
			assert.Equal(t, tt.readOnly, *a.ReadOnlyHint)
			assert.Equal(t, tt.destructive, *a.DestructiveHint)
			assert.Equal(t, tt.idempotent, *a.IdempotentHint)
		})
	}
}

func TestToolTitle(t *testing.T) {
	assert.Equal(t, "Twist: Load Thread", mcpiface.ToolTitle("load_thread"))
	assert.Equal(t, "Twist: Mark Done", mcpiface.ToolTitle("mark_done"))
	assert.Equal(t, "Twist: React", mcpiface.ToolTitle("react"))
}

func TestServer_UnknownTool(t *testing.T) {
	srv := newTestServer(testAPI(), nil)

	_, err := srv.HandleToolJSON(context.Background(), "delete_everything", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown tool "delete_everything"`)
}

func TestServer_MarkDoneFallbackReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock_twist.NewMockMarker(ctrl)
	srv := newTestServer(testAPI(), m)

	gomock.InOrder(
		m.EXPECT().ApplyBatch(gomock.Any(), gomock.Len(6)).Return(errors.New("batch rejected")),
		m.EXPECT().MarkThreadRead(gomock.Any(), int64(1)).Return(nil),
		m.EXPECT().ArchiveThread(gomock.Any(), int64(1)).Return(nil),
		m.EXPECT().MarkThreadRead(gomock.Any(), int64(2)).Return(errors.New("Thread not found")),
		m.EXPECT().MarkThreadRead(gomock.Any(), int64(3)).Return(nil),
		m.EXPECT().ArchiveThread(gomock.Any(), int64(3)).Return(nil),
	)

	res := callTool(t, srv, mcpiface.ToolMarkDone, `{"type":"thread","ids":[1,2,3]}`)
	require.False(t, res.IsError, mcpiface.ResultText(res))

	want := strings.Join([]string{
		"# Mark Threads Done",
		"",
		"**Mode:** Individual IDs",
		"**Total Requested:** 3",
		"**Successful:** 2",
		"**Failed:** 1",
		"**Mark Read:** Yes",
		"**Archive:** Yes",
		"",
		"## Completed",
		"",
		"1, 3",
		"",
		"## Failed",
		"",
		"- thread 2: Thread not found",
		"",
		"## Next Steps",
		"",
		"Review failed items and retry if needed.",
	}, "\n")
	assert.Equal(t, want, mcpiface.ResultText(res))

	out, ok := res.StructuredContent.(*mcpiface.MarkDoneResult)
	require.True(t, ok, "structured content is %T", res.StructuredContent)
	assert.Equal(t, "mark_done_result", out.Type)
	assert.Equal(t, "individual", out.Mode)
	assert.Equal(t, []int64{1, 3}, out.Completed)
	assert.Equal(t, []mcpiface.FailureResult{{Item: 2, Error: "Thread not found"}}, out.Failed)
	assert.Equal(t, 3, out.TotalRequested)
	assert.Nil(t, out.Selectors)
}

func TestServer_MarkDoneBatchSuccessJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock_twist.NewMockMarker(ctrl)
	srv := newTestServer(testAPI(), m)

	m.EXPECT().ApplyBatch(gomock.Any(), []twist.Mutation{
		{Op: twist.OpArchiveConversation, TargetID: 8},
	}).Return(nil)

	res := callTool(t, srv, mcpiface.ToolMarkDone, `{"type":"conversation","ids":[8],"markRead":false}`)
	require.False(t, res.IsError, mcpiface.ResultText(res))
	assert.Contains(t, mcpiface.ResultText(res), "Check your conversations for remaining unread messages.")

	raw, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "mark_done_result",
		"itemType": "conversation",
		"mode": "individual",
		"completed": [8],
		"failed": [],
		"totalRequested": 1,
		"successCount": 1,
		"failureCount": 0,
		"operations": {"markRead": false, "archive": true, "clearUnread": false}
	}`, string(raw))
}

func TestServer_MarkDoneBulkClearUnread(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock_twist.NewMockMarker(ctrl)
	srv := newTestServer(testAPI(), m)

	m.EXPECT().ClearUnread(gomock.Any(), int64(11111)).Return(nil)

	res := callTool(t, srv, mcpiface.ToolMarkDone, `{"type":"thread","workspaceId":11111,"clearUnread":true}`)
	require.False(t, res.IsError, mcpiface.ResultText(res))

	text := mcpiface.ResultText(res)
	assert.Contains(t, text, "**Mode:** Bulk Operation")
	assert.Contains(t, text, "**Workspace ID:** 11111")
	assert.Contains(t, text, "**Operation:** Clear all unread markers")
	assert.Contains(t, text, "✅ Bulk operation completed successfully")
	assert.Contains(t, text, "Use `fetch_inbox` to see remaining unread threads.")
	assert.NotContains(t, text, "**Mark Read:**")

	out := res.StructuredContent.(*mcpiface.MarkDoneResult)
	assert.Equal(t, "bulk", out.Mode)
	require.NotNil(t, out.Selectors)
	assert.Equal(t, int64(11111), out.Selectors.WorkspaceID)
}

func TestServer_MarkDoneBulkFailureIsErrorResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock_twist.NewMockMarker(ctrl)
	srv := newTestServer(testAPI(), m)

	m.EXPECT().MarkAllThreadsRead(gomock.Any(), twist.Scope{ChannelID: 7}).Return(errors.New("channel gone"))

	res := callTool(t, srv, mcpiface.ToolMarkDone, `{"type":"thread","channelId":7}`)
	assert.True(t, res.IsError)
	assert.Contains(t, mcpiface.ResultText(res), "Bulk operation failed: channel gone")
}

func TestServer_InvalidArgumentsBecomeErrorResults(t *testing.T) {
	srv := newTestServer(testAPI(), nil)

	tests := []struct {
		tool string
		args string
		want string
	}{
		{mcpiface.ToolMarkDone, `{"type":"comment","ids":[1]}`, "type must be one of: thread, conversation"},
		{mcpiface.ToolMarkDone, `{"ids":[1]}`, "type is required"},
		{mcpiface.ToolMarkDone, `{"type":"thread"}`, "Must provide either ids, workspaceId, or channelId"},
		{mcpiface.ToolMarkDone, `{"type":"conversation","workspaceId":5}`, "only supported for threads"},
		{mcpiface.ToolFetchInbox, `{"workspaceId":42,"limit":500}`, "limit must be between 1 and 100"},
		{mcpiface.ToolFetchInbox, `{"workspaceId":42,"sinceDate":"yesterday"}`, "sinceDate must be YYYY-MM-DD or RFC3339"},
		{mcpiface.ToolFetchInbox, `{"workspaceId":"forty-two"}`, "invalid arguments"},
		{mcpiface.ToolReply, `{"targetType":"thread","targetId":3}`, "content is required"},
		{mcpiface.ToolReact, `{"targetType":"thread","targetId":3,"emoji":"👍","operation":"toggle"}`, "operation must be one of: add, remove"},
		{mcpiface.ToolBuildLink, `{"workspaceId":1,"threadId":3,"commentId":9}`, "channelId is required"},
	}
	for _, tt := range tests {
		t.Run(tt.tool+" "+tt.want, func(t *testing.T) {
			res := callTool(t, srv, tt.tool, tt.args)
			assert.True(t, res.IsError)
			assert.Contains(t, mcpiface.ResultText(res), tt.want)
		})
	}
}

func TestServer_FetchInbox(t *testing.T) {
	api := testAPI()
	srv := newTestServer(api, nil)

	res := callTool(t, srv, mcpiface.ToolFetchInbox, `{"workspaceId":42,"sinceDate":"2024-03-01","limit":10}`)
	require.False(t, res.IsError, mcpiface.ResultText(res))

	assert.True(t, api.LastInboxQuery.Since.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 10, api.LastInboxQuery.Limit)

	out := res.StructuredContent.(*mcpiface.InboxResult)
	require.Len(t, out.Threads, 2)
	assert.False(t, out.Threads[0].IsUnread)
	assert.True(t, out.Threads[1].IsUnread)
	assert.Equal(t, "https://twist.com/a/42/ch/7/t/1/", out.Threads[0].ThreadURL)

	text := mcpiface.ResultText(res)
	assert.Contains(t, text, "# Inbox for Workspace 42")
	assert.Contains(t, text, "- **2**: Retro 🔵 ⭐ (Channel 7)")
}

func TestServer_LoadThreadNotFound(t *testing.T) {
	srv := newTestServer(testAPI(), nil)

	res := callTool(t, srv, mcpiface.ToolLoadThread, `{"threadId":404}`)
	assert.True(t, res.IsError)
	assert.Contains(t, mcpiface.ResultText(res), "not found")
}

func TestServer_HandleBuildLink(t *testing.T) {
	srv := newTestServer(testAPI(), nil)

	out, err := srv.HandleBuildLink(context.Background(), mcpiface.BuildLinkToolInput{
		WorkspaceID: 1, ChannelID: 2, ThreadID: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://twist.com/a/1/ch/2/t/3/", out.URL)
	assert.Equal(t, "thread", out.LinkType)
	assert.Contains(t, out.Markdown(), "**URL:** https://twist.com/a/1/ch/2/t/3/")
}

func TestServer_HandleUserInfo(t *testing.T) {
	srv := newTestServer(testAPI(), nil)

	out, err := srv.HandleUserInfo(context.Background(), mcpiface.UserInfoToolInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(10), out.UserID)
	require.NotNil(t, out.DefaultWorkspace)
	assert.Equal(t, int64(42), *out.DefaultWorkspace)
	assert.Contains(t, out.Markdown(), "**Default Workspace:** 42")
}

func TestServer_HealthHandler(t *testing.T) {
	srv := newTestServer(testAPI(), nil)

	rec := httptest.NewRecorder()
	srv.HealthHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok","server":"twist-mcp","version":"test"}`, rec.Body.String())
}

type recordedCall struct {
	requestID, tool, args, callErr string
}

type fakeRecorder struct {
	calls []recordedCall
}

func (f *fakeRecorder) RecordCall(_ context.Context, requestID, tool string, args []byte, callErr string) error {
	f.calls = append(f.calls, recordedCall{requestID, tool, string(args), callErr})
	return nil
}

func TestServer_RecordsMutatingCalls(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock_twist.NewMockMarker(ctrl)
	rec := &fakeRecorder{}
	api := testAPI()
	srv := mcpiface.NewServer("twist-mcp", "test", mcpiface.ServerOptions{
		FetchInbox: inboxapp.NewFetchInbox(api),
		MarkDone:   doneapp.NewMarkDone(m, nil),
		Logger:     log.New(io.Discard),
		Recorder:   rec,
	})

	m.EXPECT().ApplyBatch(gomock.Any(), gomock.Any()).Return(nil)

	callTool(t, srv, mcpiface.ToolFetchInbox, `{"workspaceId":42}`)
	callTool(t, srv, mcpiface.ToolMarkDone, `{"type":"thread","ids":[1]}`)
	callTool(t, srv, mcpiface.ToolMarkDone, `{"type":"thread"}`)

	require.Len(t, rec.calls, 2)
	assert.Equal(t, mcpiface.ToolMarkDone, rec.calls[0].tool)
	assert.JSONEq(t, `{"type":"thread","ids":[1]}`, rec.calls[0].args)
	assert.Empty(t, rec.calls[0].callErr)
	assert.NotEmpty(t, rec.calls[0].requestID)
	assert.Contains(t, rec.calls[1].callErr, "Must provide either ids, workspaceId, or channelId")
	assert.NotEqual(t, rec.calls[0].requestID, rec.calls[1].requestID)
}
