package cli

import (
	"strings"

	"ganttsync/internal/chart"
	"ganttsync/internal/chart/memchart"
	"ganttsync/internal/model"
	"ganttsync/internal/progress"

	"github.com/spf13/cobra"
)

func newRollupCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rollup <chart-id> <task-id>",
		Short: "Compute the duration-weighted progress rollup for a task",
		Long: strings.TrimSpace(`
Computes a task's rolled-up progress from its descendants: the
duration-weighted average of leaf progress, with summaries contributing
their own rollup rather than their stored value. For a leaf task the
stored progress is returned unchanged.
`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			chartID := strings.TrimSpace(args[0])
			taskID := strings.TrimSpace(args[1])
			if _, ok, err := s.FindChart(cmd.Context(), chartID); err != nil {
				return writeErr(cmd, err)
			} else if !ok {
				return writeErr(cmd, errNotFound("chart", chartID))
			}
			tasks, err := s.ListTasks(cmd.Context(), chartID)
			if err != nil {
				return writeErr(cmd, err)
			}
			links, err := s.ListLinks(cmd.Context(), chartID)
			if err != nil {
				return writeErr(cmd, err)
			}

			w := memchart.New()
			if err := w.Exec(chart.CmdParse, model.Schedule{Tasks: tasks, Links: links}); err != nil {
				return writeErr(cmd, err)
			}
			t, ok := w.GetTask(taskID)
			if !ok {
				return writeErr(cmd, errNotFound("task", taskID))
			}
			// The aggregator defines a childless task as 0% rolled up;
			// for a leaf the stored value is the answer.
			rolled := t.Progress
			if len(w.State().Children(taskID)) > 0 {
				rolled = progress.ComputeRollup(w.State(), taskID)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"task_id":  t.ID,
				"type":     t.Type,
				"progress": rolled,
			}})
		},
	}
}
