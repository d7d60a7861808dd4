package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	mcpiface "github.com/felixgeelhaar/twist-mcp/internal/interfaces/mcp"
	"github.com/spf13/cobra"
)

func newCallCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "call <tool> [json-arguments]",
		Short: "Run one MCP tool and print its result",
		Example: `  twist-mcp call fetch_inbox '{"workspaceId":42,"onlyUnread":true}'
  twist-mcp call mark_done '{"type":"thread","ids":[101,102]}'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.MCPServer == nil {
				return fmt.Errorf("MCP server not configured")
			}
			var raw json.RawMessage
			if len(args) == 2 {
				raw = json.RawMessage(args[1])
				if !json.Valid(raw) {
					return fmt.Errorf("arguments are not valid JSON")
				}
			}
			if err := deps.authorize(); err != nil {
				return err
			}

			res, err := deps.MCPServer.HandleToolJSON(cmd.Context(), args[0], raw)
			if err != nil {
				return err
			}
			text := mcpiface.ResultText(res)
			if res.IsError {
				return errors.New(text)
			}
			if flagFormat == "json" && res.StructuredContent != nil {
				return printJSON(deps, res.StructuredContent)
			}
			_, _ = fmt.Fprintln(deps.Out, text)
			return nil
		},
	}
}
