package cli

import (
	"fmt"
	"strings"

	"ganttsync/internal/seed"

	"github.com/spf13/cobra"
)

func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <chart-id>",
		Short: "Import the sample schedule into an empty chart",
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
			// Seeding only ever targets a fresh chart; existing data wins.
			taskIDs, err := s.TaskIDs(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			linkIDs, err := s.LinkIDs(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if len(taskIDs) > 0 || len(linkIDs) > 0 {
				return writeErr(cmd, fmt.Errorf("chart %s is not empty (%d tasks, %d links)", id, len(taskIDs), len(linkIDs)))
			}
			sched, err := seed.Apply(cmd.Context(), s, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"seeded": true,
				"tasks":  len(sched.Tasks),
				"links":  len(sched.Links),
			}})
		},
	}
}
