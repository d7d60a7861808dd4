// Package main is the composition root for twist-mcp.
// All dependencies are wired here; no other package knows about every layer.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	conversationapp "github.com/felixgeelhaar/twist-mcp/internal/application/conversation"
	doneapp "github.com/felixgeelhaar/twist-mcp/internal/application/done"
	historyapp "github.com/felixgeelhaar/twist-mcp/internal/application/history"
	inboxapp "github.com/felixgeelhaar/twist-mcp/internal/application/inbox"
	linkapp "github.com/felixgeelhaar/twist-mcp/internal/application/link"
	reactionapp "github.com/felixgeelhaar/twist-mcp/internal/application/reaction"
	replyapp "github.com/felixgeelhaar/twist-mcp/internal/application/reply"
	searchapp "github.com/felixgeelhaar/twist-mcp/internal/application/search"
	threadapp "github.com/felixgeelhaar/twist-mcp/internal/application/thread"
	workspaceapp "github.com/felixgeelhaar/twist-mcp/internal/application/workspace"
	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
	"github.com/felixgeelhaar/twist-mcp/internal/infrastructure/cache"
	"github.com/felixgeelhaar/twist-mcp/internal/infrastructure/config"
	journalstore "github.com/felixgeelhaar/twist-mcp/internal/infrastructure/journal"
	"github.com/felixgeelhaar/twist-mcp/internal/infrastructure/localstore"
	"github.com/felixgeelhaar/twist-mcp/internal/infrastructure/resilience"
	"github.com/felixgeelhaar/twist-mcp/internal/infrastructure/twistapi"
	"github.com/felixgeelhaar/twist-mcp/internal/interfaces/cli"
	mcpiface "github.com/felixgeelhaar/twist-mcp/internal/interfaces/mcp"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	// Defaults, then config file, then .env and environment.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.Log.NewLogger(os.Stderr)

	// --- Infrastructure Layer ---

	// Circuit breaker, retry, rate limit and timeout around every request.
	policy := resilience.NewPolicy(resilience.Config{
		Timeout:          cfg.Twist.Timeout,
		MaxRetries:       cfg.Resilience.MaxAttempts,
		RetryDelay:       cfg.Resilience.InitialDelay,
		RetryMaxDelay:    cfg.Resilience.MaxDelay,
		FailureThreshold: cfg.Resilience.CircuitBreaker.FailureThreshold,
		SuccessThreshold: cfg.Resilience.CircuitBreaker.SuccessThreshold,
		HalfOpenTimeout:  cfg.Resilience.CircuitBreaker.HalfOpenTimeout,
		RateLimit:        cfg.Resilience.RequestsPerMinute,
		RateBurst:        cfg.Resilience.Burst,
		RateInterval:     time.Minute,
	}, logger.WithPrefix("resilience"))
	defer func() { _ = policy.Close() }()

	client := twistapi.NewClient(cfg.Twist.BaseURL,
		&http.Client{Timeout: cfg.Twist.Timeout},
		cfg.Twist.APIKey,
		twistapi.WithExecutor(policy),
	)
	repo := twistapi.NewRepository(client)

	// The lookup cache and the call history share one SQLite database.
	var (
		dir     twist.Directory = repo
		journal *journalstore.SQLiteStore
	)
	if cfg.Cache.Enabled || cfg.History.Enabled {
		db, err := localstore.Open(cfg.Cache.Dir, localstore.DefaultFileName)
		if err != nil {
			logger.Warn("local store unavailable; cache and history disabled", "dir", cfg.Cache.Dir, "err", err)
		} else {
			defer func() { _ = db.Close() }()
			if cfg.Cache.Enabled {
				cached, err := cache.NewCachedDirectory(repo, db, cfg.Cache.TTL)
				if err != nil {
					logger.Warn("lookup cache disabled", "err", err)
				} else {
					if err := cached.Evict(); err != nil {
						logger.Debug("cache eviction failed", "err", err)
					}
					dir = cached
				}
			}
			if cfg.History.Enabled {
				journal = journalstore.NewSQLiteStore(db)
			}
		}
	}

	// --- Application Layer (Use Cases) ---

	webURL := cfg.Twist.WebURL
	userInfo := workspaceapp.NewUserInfo(repo)
	getWorkspaces := workspaceapp.NewGetWorkspaces(repo, dir)
	getUsers := workspaceapp.NewGetUsers(repo, dir)
	fetchInbox := inboxapp.NewFetchInbox(repo)
	loadThread := threadapp.NewLoadThread(repo, dir, webURL)
	loadConversation := conversationapp.NewLoadConversation(repo, dir, webURL)
	searchContent := searchapp.NewSearchContent(repo, dir, webURL)
	reply := replyapp.NewReply(repo, webURL)
	react := reactionapp.NewReact(repo, repo, webURL)
	markDone := doneapp.NewMarkDone(repo, logger.WithPrefix("mark_done"))
	buildLink := linkapp.NewBuildLink(webURL)

	var (
		recorder    mcpiface.CallRecorder
		listHistory *historyapp.ListRecent
	)
	if journal != nil {
		r := historyapp.NewRecorder(journal, cfg.History.Retention)
		if n, err := r.Prune(context.Background()); err != nil {
			logger.Debug("history pruning failed", "err", err)
		} else if n > 0 {
			logger.Debug("pruned call history", "entries", n)
		}
		recorder = r
		listHistory = historyapp.NewListRecent(journal)
	}

	// --- Interfaces Layer ---

	mcpServer := mcpiface.NewServer(cfg.MCP.ServerName, version, mcpiface.ServerOptions{
		UserInfo:         userInfo,
		GetWorkspaces:    getWorkspaces,
		GetUsers:         getUsers,
		FetchInbox:       fetchInbox,
		LoadThread:       loadThread,
		LoadConversation: loadConversation,
		SearchContent:    searchContent,
		Reply:            reply,
		React:            react,
		MarkDone:         markDone,
		BuildLink:        buildLink,
		WebURL:           webURL,
		Logger:           logger,
		Recorder:         recorder,
	})

	deps := &cli.Dependencies{
		UserInfo:      userInfo,
		GetWorkspaces: getWorkspaces,
		GetUsers:      getUsers,
		FetchInbox:    fetchInbox,
		MarkDone:      markDone,
		BuildLink:     buildLink,
		ListHistory:   listHistory,
		MCPServer:     mcpServer,
		Transport:     cfg.MCP.Transport,
		Port:          cfg.MCP.Port,
		Authorize:     cfg.RequireAPIKey,
		Out:           os.Stdout,
	}

	return cli.NewRootCmd(deps).Execute()
}
