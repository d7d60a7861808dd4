package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// These are set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

type buildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

func newVersionCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build and toolchain versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := buildInfo{Version: Version, Commit: Commit, Date: Date, Go: runtime.Version()}
			if flagFormat == "json" {
				return printJSON(deps, info)
			}
			_, err := fmt.Fprintf(deps.Out, "twist-mcp %s (commit: %s, built: %s)\n", info.Version, info.Commit, info.Date)
			return err
		},
	}
}
