package cli

import (
	"fmt"

	doneapp "github.com/felixgeelhaar/twist-mcp/internal/application/done"
	"github.com/felixgeelhaar/twist-mcp/internal/domain/twist"
	"github.com/spf13/cobra"
)

func newDoneCmd(deps *Dependencies) *cobra.Command {
	var (
		workspaceID int64
		channelID   int64
		markRead    bool
		archive     bool
		clearUnread bool
	)

	cmd := &cobra.Command{
		Use:   "done thread|conversation [id...]",
		Short: "Mark threads or conversations as read and archived",
		Example: `  twist-mcp done thread 101 102
  twist-mcp done conversation 9 --archive=false
  twist-mcp done thread --workspace 42 --clear-unread`,
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: []string{string(twist.KindThread), string(twist.KindConversation)},
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.MarkDone == nil {
				return fmt.Errorf("mark done not configured")
			}
			ids, err := parseIDs(args[1:])
			if err != nil {
				return err
			}

			in := doneapp.MarkDoneInput{
				Type:        twist.TargetKind(args[0]),
				IDs:         ids,
				WorkspaceID: workspaceID,
				ChannelID:   channelID,
			}
			flags := cmd.Flags()
			if flags.Changed("read") {
				in.MarkRead = &markRead
			}
			if flags.Changed("archive") {
				in.Archive = &archive
			}
			if flags.Changed("clear-unread") {
				in.ClearUnread = &clearUnread
			}
			if err := deps.authorize(); err != nil {
				return err
			}

			out, err := deps.MarkDone.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			if flagFormat == "json" {
				if err := printJSON(deps, out); err != nil {
					return err
				}
			} else {
				printDone(deps, out)
			}
			if out.FailureCount > 0 {
				return fmt.Errorf("%d of %d %ss failed", out.FailureCount, out.TotalRequested, out.Type)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&workspaceID, "workspace", 0, "Apply to every thread in this workspace")
	cmd.Flags().Int64Var(&channelID, "channel", 0, "Apply to every thread in this channel")
	cmd.Flags().BoolVar(&markRead, "read", true, "Mark as read")
	cmd.Flags().BoolVar(&archive, "archive", true, "Archive")
	cmd.Flags().BoolVar(&clearUnread, "clear-unread", false, "Clear all unread markers in the workspace")

	return cmd
}

func printDone(deps *Dependencies, out *doneapp.MarkDoneOutput) {
	if out.Mode == doneapp.ModeBulk {
		_, _ = fmt.Fprintln(deps.Out, "Bulk operation completed.")
		return
	}
	_, _ = fmt.Fprintf(deps.Out, "Marked %d of %d %ss done.\n", out.SuccessCount, out.TotalRequested, out.Type)
	for _, f := range out.Failed {
		_, _ = fmt.Fprintf(deps.Out, "  %s %d: %s\n", out.Type, f.Item, f.Error)
	}
}
