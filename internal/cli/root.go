package cli

import (
	"fmt"
	"os"
	"strings"

	"ganttsync/internal/config"
	"ganttsync/internal/format"
	"ganttsync/internal/store"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Workspace  string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "ganttsync",
		Short:        "Local-first Gantt schedule sync (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Create a chart and open it interactively
  ganttsync charts create "Site A"
  ganttsync open <chart-id>

  # Scriptable commands
  ganttsync charts list
  ganttsync tasks list <chart-id>
  ganttsync rollup <chart-id> <task-id>
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("GANTTSYNC_DIR", ""), "Path to workspace dir (advanced: overrides workspace resolution; for fixtures/tests)")
	cmd.PersistentFlags().StringVar(&app.Workspace, "workspace", envOr("GANTTSYNC_WORKSPACE", ""), "Workspace name (default: 'default')")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newChartsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newLinksCmd(app))
	cmd.AddCommand(newRollupCmd(app))
	cmd.AddCommand(newSeedCmd(app))
	cmd.AddCommand(newSaveCmd(app))
	cmd.AddCommand(newOpenCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// loadStore resolves the workspace dir (flag > env > default workspace)
// and returns the store plus workspace config.
func loadStore(app *App) (store.Store, config.Config, error) {
	dir := app.Dir
	if dir == "" {
		d, err := config.WorkspaceDir(app.Workspace)
		if err != nil {
			return store.Store{}, config.Config{}, err
		}
		dir = d
		app.Dir = dir
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return store.Store{}, config.Config{}, err
	}
	return store.Store{Dir: dir}, cfg, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
