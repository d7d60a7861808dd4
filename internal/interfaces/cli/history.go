package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	historyapp "github.com/felixgeelhaar/twist-mcp/internal/application/history"
	"github.com/spf13/cobra"
)

func newHistoryCmd(deps *Dependencies) *cobra.Command {
	var (
		limit    int
		withArgs bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent tool calls that changed Twist state",
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.ListHistory == nil {
				return fmt.Errorf("call history is disabled")
			}

			out, err := deps.ListHistory.Execute(cmd.Context(), historyapp.ListRecentInput{Limit: limit})
			if err != nil {
				return err
			}

			if flagFormat == "json" {
				return printJSON(deps, jsonEntries(out.Entries))
			}
			if len(out.Entries) == 0 {
				_, _ = fmt.Fprintln(deps.Out, "No calls recorded.")
				return nil
			}

			w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
			header := "TIME\tTOOL\tSTATUS\tERROR"
			if withArgs {
				header += "\tARGUMENTS"
			}
			_, _ = fmt.Fprintln(w, header)
			for _, e := range out.Entries {
				line := fmt.Sprintf("%s\t%s\t%s\t%s", e.CreatedAt.Local().Format(time.DateTime), e.Tool, e.Status, e.Error)
				if withArgs {
					line += "\t" + string(e.Arguments)
				}
				_, _ = fmt.Fprintln(w, line)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", historyapp.DefaultLimit, "Max entries")
	cmd.Flags().BoolVar(&withArgs, "args", false, "Include call arguments")

	return cmd
}

type jsonEntry struct {
	historyapp.Entry
	Arguments json.RawMessage `json:"arguments"`
}

func jsonEntries(entries []historyapp.Entry) []jsonEntry {
	out := make([]jsonEntry, len(entries))
	for i, e := range entries {
		out[i] = jsonEntry{Entry: e, Arguments: e.Arguments}
	}
	return out
}
