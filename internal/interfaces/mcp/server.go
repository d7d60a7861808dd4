// Package mcp implements the MCP server interface layer.
// It translates between MCP protocol concepts (tools, structured results)
// and application use cases, following the Ports & Adapters pattern.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

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

const instructions = `Tools for the Twist team-communication platform.
Start with get_workspaces to find workspace IDs, fetch_inbox to see what needs attention,
load_thread / load_conversation to read, reply / react to respond and mark_done to clear items.`

// CallRecorder keeps a history of calls to tools that change Twist state.
type CallRecorder interface {
	RecordCall(ctx context.Context, requestID, tool string, args []byte, callErr string) error
}

// ServerOptions groups all use cases passed to NewServer. A nil use case
// leaves its tool unregistered.
type ServerOptions struct {
	UserInfo         *workspaceapp.UserInfo
	GetWorkspaces    *workspaceapp.GetWorkspaces
	GetUsers         *workspaceapp.GetUsers
	FetchInbox       *inboxapp.FetchInbox
	LoadThread       *threadapp.LoadThread
	LoadConversation *conversationapp.LoadConversation
	SearchContent    *searchapp.SearchContent
	Reply            *replyapp.Reply
	React            *reactionapp.React
	MarkDone         *doneapp.MarkDone
	BuildLink        *linkapp.BuildLink

	// WebURL is the base for links in structured results.
	WebURL string
	Logger *log.Logger
	// Recorder, when set, receives every call to a non-read-only tool.
	Recorder CallRecorder
}

// Server wraps the mcp-go server and exposes Twist as MCP tools.
type Server struct {
	inner *server.MCPServer

	userInfo         *workspaceapp.UserInfo
	getWorkspaces    *workspaceapp.GetWorkspaces
	getUsers         *workspaceapp.GetUsers
	fetchInbox       *inboxapp.FetchInbox
	loadThread       *threadapp.LoadThread
	loadConversation *conversationapp.LoadConversation
	searchContent    *searchapp.SearchContent
	reply            *replyapp.Reply
	react            *reactionapp.React
	markDone         *doneapp.MarkDone
	buildLink        *linkapp.BuildLink

	webURL   string
	logger   *log.Logger
	recorder CallRecorder
	name     string
	version string
}

// NewServer creates a new MCP server wired to application use cases.
func NewServer(name, version string, opts ServerOptions) *Server {
	s := &Server{
		name:             name,
		version:          version,
		userInfo:         opts.UserInfo,
		getWorkspaces:    opts.GetWorkspaces,
		getUsers:         opts.GetUsers,
		fetchInbox:       opts.FetchInbox,
		loadThread:       opts.LoadThread,
		loadConversation: opts.LoadConversation,
		searchContent:    opts.SearchContent,
		reply:            opts.Reply,
		react:            opts.React,
		markDone:         opts.MarkDone,
		buildLink:        opts.BuildLink,
		webURL:           opts.WebURL,
		logger:           opts.Logger,
		recorder:         opts.Recorder,
	}
	if s.webURL == "" {
		s.webURL = twist.DefaultWebURL
	}
	if s.logger == nil {
		s.logger = log.New(os.Stderr)
	}

	srv := server.NewMCPServer(name, version,
		server.WithInstructions(instructions),
		server.WithToolCapabilities(false),
		server.WithToolHandlerMiddleware(s.logCalls),
		server.WithRecovery(),
	)
	s.registerTools(srv)

	s.inner = srv
	return s
}

func (s *Server) Name() string    { return s.name }
func (s *Server) Version() string { return s.version }

// Inner returns the underlying mcp-go server for transport integration.
func (s *Server) Inner() *server.MCPServer { return s.inner }

// ToolNames lists the registered tools in name order.
func (s *Server) ToolNames() []string {
	tools := s.inner.ListTools()
	names := make([]string, 0, len(tools))
	for name := range tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tool returns the registered definition of a tool.
func (s *Server) Tool(name string) (mcp.Tool, bool) {
	st := s.inner.GetTool(name)
	if st == nil {
		return mcp.Tool{}, false
	}
	return st.Tool, true
}

// HandleToolJSON runs a tool with raw JSON arguments, exactly as an MCP
// client call would.
func (s *Server) HandleToolJSON(ctx context.Context, name string, args json.RawMessage) (*mcp.CallToolResult, error) {
	st := s.inner.GetTool(name)
	if st == nil {
		return nil, fmt.Errorf("unknown tool %q", name)
	}
	var req mcp.CallToolRequest
	req.Params.Name = name
	if len(args) > 0 {
		req.Params.Arguments = args
	}
	return s.logCalls(st.Handler)(ctx, req)
}

// logCalls logs every tool call with a request id and its duration, and
// records calls to mutating tools.
func (s *Server) logCalls(next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		requestID := uuid.NewString()
		res, err := next(ctx, req)

		var callErr string
		kv := []any{"tool", req.Params.Name, "request_id", requestID, "duration", time.Since(start)}
		switch {
		case err != nil:
			callErr = err.Error()
			s.logger.Error("tool call failed", append(kv, "err", err)...)
		case res != nil && res.IsError:
			callErr = ResultText(res)
			s.logger.Warn("tool returned error", append(kv, "err", callErr)...)
		default:
			s.logger.Debug("tool call", kv...)
		}

		if s.recorder != nil && s.mutates(req.Params.Name) {
			var args []byte
			if req.Params.Arguments != nil {
				args, _ = json.Marshal(req.Params.Arguments)
			}
			if rerr := s.recorder.RecordCall(context.WithoutCancel(ctx), requestID, req.Params.Name, args, callErr); rerr != nil {
				s.logger.Warn("recording tool call failed", "tool", req.Params.Name, "request_id", requestID, "err", rerr)
			}
		}
		return res, err
	}
}

func (s *Server) mutates(name string) bool {
	st := s.inner.GetTool(name)
	if st == nil {
		return false
	}
	ro := st.Tool.Annotations.ReadOnlyHint
	return ro == nil || !*ro
}

// ResultText joins the text content of a tool result.
func ResultText(res *mcp.CallToolResult) string {
	var out string
	for _, c := range res.Content {
		if tc, ok := mcp.AsTextContent(c); ok {
			if out != "" {
				out += "\n"
			}
			out += tc.Text
		}
	}
	return out
}

// ServeStdio starts the MCP server on stdio transport.
func (s *Server) ServeStdio(ctx context.Context) error {
	stdio := server.NewStdioServer(s.inner)
	stdio.SetErrorLogger(s.logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}))
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// HealthHandler reports liveness with the server name and version.
func (s *Server) HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "server": s.name, "version": s.version})
	})
}

// ServeHTTP starts the MCP server on the streamable HTTP transport at /mcp,
// with a /health endpoint alongside.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	mux := http.NewServeMux()

	mux.Handle("/health", s.HealthHandler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	mux.Handle("/mcp", server.NewStreamableHTTPServer(s.inner, server.WithStreamableHTTPServer(srv)))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
