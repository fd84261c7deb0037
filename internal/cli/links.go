package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newLinksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links",
		Short: "Link commands (scriptable; use `open` for editing)",
	}
	cmd.AddCommand(newLinksListCmd(app))
	return cmd
}

func newLinksListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <chart-id>",
		Short: "List a chart's dependency links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			if _, ok, err := s.FindChart(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			} else if !ok {
				return writeErr(cmd, errNotFound("chart", id))
			}
			links, err := s.ListLinks(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": links})
		},
	}
}
