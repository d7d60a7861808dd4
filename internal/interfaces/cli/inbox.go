package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	inboxapp "github.com/felixgeelhaar/twist-mcp/internal/application/inbox"
	"github.com/spf13/cobra"
)

func newInboxCmd(deps *Dependencies) *cobra.Command {
	var (
		workspaceID int64
		since       string
		until       string
		limit       int
		unread      bool
	)

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "List inbox threads of a workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.FetchInbox == nil {
				return fmt.Errorf("inbox not configured")
			}
			in := inboxapp.FetchInboxInput{WorkspaceID: workspaceID, Limit: limit, OnlyUnread: unread}
			var err error
			if in.Since, err = parseDay("since", since); err != nil {
				return err
			}
			if in.Until, err = parseDay("until", until); err != nil {
				return err
			}
			if err := deps.authorize(); err != nil {
				return err
			}

			out, err := deps.FetchInbox.Execute(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("fetch inbox failed: %w", err)
			}

			if flagFormat == "json" {
				return printJSON(deps, out)
			}
			w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tTITLE\tCHANNEL\tUNREAD\tSTARRED")
			for _, th := range out.Threads {
				_, _ = fmt.Fprintf(w, "%d\t%s\t%d\t%t\t%t\n", th.ID, th.Title, th.ChannelID, th.IsUnread, th.Starred)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(deps.Out, "\n%d threads, %d unread\n", len(out.Threads), out.UnreadCount)
			return nil
		},
	}

	cmd.Flags().Int64Var(&workspaceID, "workspace", 0, "Workspace ID")
	cmd.Flags().StringVar(&since, "since", "", "Only threads updated after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&until, "until", "", "Only threads updated before this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", inboxapp.DefaultLimit, "Max threads (1-100)")
	cmd.Flags().BoolVar(&unread, "unread", false, "Only unread threads")
	_ = cmd.MarkFlagRequired("workspace")

	return cmd
}

func parseDay(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s must be YYYY-MM-DD, got %q", flag, value)
	}
	return t, nil
}
