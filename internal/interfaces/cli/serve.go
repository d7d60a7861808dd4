package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCmd(deps *Dependencies) *cobra.Command {
	var transport string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long:  "Start the Twist MCP server. By default serves over stdio for use with MCP clients.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.MCPServer == nil {
				return fmt.Errorf("MCP server not configured")
			}
			if err := deps.authorize(); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			var err error
			switch transport {
			case "http":
				addr := fmt.Sprintf(":%d", port)
				_, _ = fmt.Fprintf(os.Stderr, "Starting %s v%s MCP server (http on %s)...\n",
					deps.MCPServer.Name(), deps.MCPServer.Version(), addr)
				err = deps.MCPServer.ServeHTTP(ctx, addr)
			case "stdio":
				// stdout carries the protocol; status goes to stderr.
				_, _ = fmt.Fprintf(os.Stderr, "Starting %s v%s MCP server (stdio)...\n",
					deps.MCPServer.Name(), deps.MCPServer.Version())
				err = deps.MCPServer.ServeStdio(ctx)
			default:
				return fmt.Errorf("unknown transport %q (want stdio or http)", transport)
			}

			if err != nil {
				if ctx.Err() != nil {
					_, _ = fmt.Fprintln(os.Stderr, "MCP server stopped.")
					return nil
				}
				return fmt.Errorf("MCP server error: %w", err)
			}
			return nil
		},
	}

	defTransport, defPort := deps.Transport, deps.Port
	if defTransport == "" {
		defTransport = "stdio"
	}
	if defPort == 0 {
		defPort = 8080
	}
	cmd.Flags().StringVar(&transport, "transport", defTransport, "Transport: stdio or http")
	cmd.Flags().IntVar(&port, "port", defPort, "HTTP port (when transport=http)")

	return cmd
}
