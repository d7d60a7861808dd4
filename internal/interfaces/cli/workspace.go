package cli

import (
	"fmt"
	"text/tabwriter"

	workspaceapp "github.com/felixgeelhaar/twist-mcp/internal/application/workspace"
	"github.com/spf13/cobra"
)

func newWorkspaceCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Inspect Twist workspaces",
	}

	cmd.AddCommand(newWorkspaceListCmd(deps))
	return cmd
}

func newWorkspaceListCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all workspaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.GetWorkspaces == nil {
				return fmt.Errorf("workspace support not configured")
			}
			if err := deps.authorize(); err != nil {
				return err
			}

			out, err := deps.GetWorkspaces.Execute(cmd.Context())
			if err != nil {
				return fmt.Errorf("list workspaces failed: %w", err)
			}

			if flagFormat == "json" {
				return printJSON(deps, out.Workspaces)
			}
			if len(out.Workspaces) == 0 {
				_, _ = fmt.Fprintln(deps.Out, "No workspaces found.")
				return nil
			}

			w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tNAME\tCREATOR\tDEFAULT CHANNEL\tPLAN")
			for _, ws := range out.Workspaces {
				_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					ws.ID, ws.Name, orID(ws.CreatorName, ws.Creator), orID(ws.DefaultChannelName, ws.DefaultChannel), ws.Plan)
			}
			return w.Flush()
		},
	}
}

func newUsersCmd(deps *Dependencies) *cobra.Command {
	var (
		workspaceID int64
		search      string
	)

	cmd := &cobra.Command{
		Use:   "users [user-id...]",
		Short: "List members of a workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.GetUsers == nil {
				return fmt.Errorf("user listing not configured")
			}
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			if err := deps.authorize(); err != nil {
				return err
			}

			out, err := deps.GetUsers.Execute(cmd.Context(), workspaceapp.GetUsersInput{
				WorkspaceID: workspaceID,
				UserIDs:     ids,
				SearchText:  search,
			})
			if err != nil {
				return fmt.Errorf("list users failed: %w", err)
			}

			if flagFormat == "json" {
				return printJSON(deps, out.Users)
			}
			w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tNAME\tEMAIL\tTYPE")
			for _, u := range out.Users {
				_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.UserType)
			}
			return w.Flush()
		},
	}

	cmd.Flags().Int64Var(&workspaceID, "workspace", 0, "Workspace ID")
	cmd.Flags().StringVar(&search, "search", "", "Filter by name or email")
	_ = cmd.MarkFlagRequired("workspace")

	return cmd
}

func newWhoamiCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.UserInfo == nil {
				return fmt.Errorf("user info not configured")
			}
			if err := deps.authorize(); err != nil {
				return err
			}

			u, err := deps.UserInfo.Execute(cmd.Context())
			if err != nil {
				return err
			}
			if flagFormat == "json" {
				return printJSON(deps, u)
			}
			_, _ = fmt.Fprintf(deps.Out, "%s <%s> (id %d)\n", u.Name, u.Email, u.ID)
			return nil
		},
	}
}

func orID(name string, id int64) string {
	if name != "" {
		return name
	}
	if id == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", id)
}
