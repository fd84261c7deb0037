package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newChartsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Chart registry commands",
	}
	cmd.AddCommand(newChartsCreateCmd(app))
	cmd.AddCommand(newChartsListCmd(app))
	cmd.AddCommand(newChartsDeleteCmd(app))
	return cmd
}

func newChartsCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := s.CreateChart(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": c})
		},
	}
}

func newChartsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			charts, err := s.ListCharts(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": charts})
		},
	}
}

func newChartsDeleteCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <chart-id>",
		Short: "Delete a chart and all of its tasks and links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			_, ok, err := s.FindChart(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !ok {
				return writeErr(cmd, errNotFound("chart", id))
			}
			if !yes {
				return writeErr(cmd, errConfirmRequired)
			}
			if err := s.DeleteChart(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the cascading delete")
	return cmd
}
