package cli

import (
	"io"
	"os"
	"strings"

	"ganttsync/internal/chart"
	"ganttsync/internal/chart/memchart"
	"ganttsync/internal/reconcile"
	"ganttsync/internal/store"

	"github.com/spf13/cobra"
)

func newSaveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "save <chart-id> [file]",
		Short: "Replace a chart's schedule from a JSON file (or stdin)",
		Long: strings.TrimSpace(`
Reads a schedule document ({"tasks": [...], "links": [...]}) and makes
storage match it: tasks and links absent from the document are deleted,
everything else is upserted. Input passes through the same normalization
as an interactive load, so dates, durations and milestone shapes come out
canonical.
`),
		Args: cobra.RangeArgs(1, 2),
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

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 2 && args[1] != "-" {
				f, err := os.Open(args[1])
				if err != nil {
					return writeErr(cmd, err)
				}
				defer f.Close()
				in = f
			}
			sched, err := store.DecodeSchedule(in)
			if err != nil {
				return writeErr(cmd, err)
			}

			w := memchart.New()
			if err := w.Exec(chart.CmdParse, sched); err != nil {
				return writeErr(cmd, err)
			}
			tasks, links := w.Serialize()
			if err := reconcile.Save(cmd.Context(), s, id, tasks, links); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"saved": id,
				"tasks": len(tasks),
				"links": len(links),
			}})
		},
	}
}
