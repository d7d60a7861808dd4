// Package workspace holds the use cases that describe the authenticated
// user and the workspaces and members visible to them.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
)

// Summary is a workspace with its referenced ids resolved to names.
type Summary struct {
	twist.Workspace
	CreatorName              string
	DefaultChannelName       string
	DefaultConversationTitle string
}

type GetWorkspacesOutput struct {
	Workspaces []Summary
}

type GetWorkspaces struct {
	reader twist.Reader
	dir    twist.Directory
}

func NewGetWorkspaces(reader twist.Reader, dir twist.Directory) *GetWorkspaces {
	return &GetWorkspaces{reader: reader, dir: dir}
}

func (uc *GetWorkspaces) Execute(ctx context.Context) (*GetWorkspacesOutput, error) {
	workspaces, err := uc.reader.Workspaces(ctx)
	if err != nil {
		return nil, err
	}

	out := &GetWorkspacesOutput{Workspaces: make([]Summary, len(workspaces))}
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, ws := range workspaces {
		out.Workspaces[i] = Summary{Workspace: ws}
		set := func(f func(*Summary)) {
			mu.Lock()
			f(&out.Workspaces[i])
			mu.Unlock()
		}

		if ws.Creator != 0 {
			g.Go(func() error {
				u, err := uc.dir.WorkspaceUser(gctx, ws.ID, ws.Creator)
				if err != nil {
					return ignoreNotFound(err)
				}
				set(func(s *Summary) { s.CreatorName = u.Name })
				return nil
			})
		}
		if ws.DefaultChannel != 0 {
			g.Go(func() error {
				ch, err := uc.dir.Channel(gctx, ws.DefaultChannel)
				if err != nil {
					return ignoreNotFound(err)
				}
				set(func(s *Summary) { s.DefaultChannelName = ch.Name })
				return nil
			})
		}
		if ws.DefaultConversation != 0 {
			g.Go(func() error {
				conv, err := uc.reader.Conversation(gctx, ws.DefaultConversation)
				if err != nil {
					return ignoreNotFound(err)
				}
				set(func(s *Summary) { s.DefaultConversationTitle = ConversationTitle(conv) })
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ConversationTitle returns the conversation title, or a label listing its
// members when it has none.
func ConversationTitle(c *twist.Conversation) string {
	if c.Title != "" {
		return c.Title
	}
	ids := make([]string, len(c.UserIDs))
	for i, id := range c.UserIDs {
		ids[i] = fmt.Sprint(id)
	}
	return "Conversation with users: " + strings.Join(ids, ", ")
}

func ignoreNotFound(err error) error {
	if errors.Is(err, twist.ErrNotFound) {
		return nil
	}
	return err
}
