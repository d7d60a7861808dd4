package cli

import (
	"fmt"

	linkapp "github.com/felixgeelhaar/twist-mcp/internal/application/link"
	"github.com/spf13/cobra"
)

func newLinkCmd(deps *Dependencies) *cobra.Command {
	var (
		in       linkapp.BuildLinkInput
		pathOnly bool
	)

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Print a Twist web link",
		Example: `  twist-mcp link --workspace 1 --channel 2 --thread 3
  twist-mcp link --workspace 1 --conversation 9 --message 12`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.BuildLink == nil {
				return fmt.Errorf("link building not configured")
			}
			in.FullURL = !pathOnly

			out, err := deps.BuildLink.Execute(in)
			if err != nil {
				return err
			}
			if flagFormat == "json" {
				return printJSON(deps, out)
			}
			_, _ = fmt.Fprintln(deps.Out, out.URL)
			return nil
		},
	}

	f := cmd.Flags()
	f.Int64Var(&in.WorkspaceID, "workspace", 0, "Workspace ID")
	f.Int64Var(&in.ConversationID, "conversation", 0, "Conversation ID")
	f.Int64Var(&in.MessageID, "message", 0, "Message ID (with --conversation)")
	f.Int64Var(&in.ChannelID, "channel", 0, "Channel ID")
	f.Int64Var(&in.ThreadID, "thread", 0, "Thread ID")
	f.Int64Var(&in.CommentID, "comment", 0, "Comment ID (with --thread and --channel)")
	f.BoolVar(&pathOnly, "path", false, "Print the path without the web root")
	_ = cmd.MarkFlagRequired("workspace")

	return cmd
}
