package cli

import (
	"ganttsync/internal/config"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the workspace (config file + database)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cfg, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			// Write the config file so the defaults are visible and
			// editable; touching the registry creates the database.
			if err := config.Save(app.Dir, cfg); err != nil {
				return writeErr(cmd, err)
			}
			if _, err := s.ListCharts(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"dir": app.Dir,
				"db":  s.DBPath(),
			}})
		},
	}
}
