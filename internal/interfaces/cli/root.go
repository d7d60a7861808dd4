// Package cli implements the twist-mcp command line: the MCP server entry
// point plus a few direct commands for scripting against Twist.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	doneapp "github.com/felixgeelhaar/twist-mcp/internal/application/done"
	historyapp "github.com/felixgeelhaar/twist-mcp/internal/application/history"
	inboxapp "github.com/felixgeelhaar/twist-mcp/internal/application/inbox"
	linkapp "github.com/felixgeelhaar/twist-mcp/internal/application/link"
	workspaceapp "github.com/felixgeelhaar/twist-mcp/internal/application/workspace"
	mcpiface "github.com/felixgeelhaar/twist-mcp/internal/interfaces/mcp"
)

// Dependencies carries everything the commands need. It is filled in by the
// composition root.
type Dependencies struct {
	UserInfo      *workspaceapp.UserInfo
	GetWorkspaces *workspaceapp.GetWorkspaces
	GetUsers      *workspaceapp.GetUsers
	FetchInbox    *inboxapp.FetchInbox
	MarkDone      *doneapp.MarkDone
	BuildLink     *linkapp.BuildLink
	ListHistory   *historyapp.ListRecent
	MCPServer     *mcpiface.Server

	// Transport and Port are the serve defaults from configuration.
	Transport string
	Port      int

	// Authorize is called before any command that talks to Twist.
	Authorize func() error

	Out io.Writer
}

func (d *Dependencies) authorize() error {
	if d.Authorize == nil {
		return nil
	}
	return d.Authorize()
}

var flagFormat string

// NewRootCmd builds the command tree.
func NewRootCmd(deps *Dependencies) *cobra.Command {
	root := &cobra.Command{
		Use:           "twist-mcp",
		Short:         "MCP server and CLI for Twist",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "table", "Output format: table or json")

	root.AddCommand(
		newServeCmd(deps),
		newVersionCmd(deps),
		newWhoamiCmd(deps),
		newWorkspaceCmd(deps),
		newUsersCmd(deps),
		newInboxCmd(deps),
		newDoneCmd(deps),
		newLinkCmd(deps),
		newCallCmd(deps),
		newHistoryCmd(deps),
	)
	return root
}

func printJSON(deps *Dependencies, v any) error {
	enc := json.NewEncoder(deps.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
