// Package reconcile moves persisted storage to match the working copy with
// minimal writes: delete what disappeared, upsert what remains. Full
// overwrites would be simpler but wasteful for large schedules and unsafe
// when two sessions edit the same workspace.
package reconcile

import (
	"context"
	"fmt"
	"sort"

	"ganttsync/internal/model"

	"golang.org/x/sync/errgroup"
)

// Storage is the slice of the persistence contract the reconciler needs.
type Storage interface {
	TaskIDs(ctx context.Context, chartID string) ([]string, error)
	LinkIDs(ctx context.Context, chartID string) ([]string, error)
	UpsertTasks(ctx context.Context, chartID string, tasks []model.Task) error
	UpsertLinks(ctx context.Context, chartID string, links []model.Link) error
	DeleteTasks(ctx context.Context, chartID string, ids []string) error
	DeleteLinks(ctx context.Context, chartID string, ids []string) error
}

// Diff returns persisted − working: the ids to delete. Sorted for stable
// output.
func Diff(persisted, working []string) []string {
	keep := make(map[string]bool, len(working))
	for _, id := range working {
		keep[id] = true
	}
	var out []string
	for _, id := range persisted {
		if !keep[id] {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Save reconciles storage with the given working snapshot. The four batched
// operations run concurrently and are reported as one logical unit: any
// failure fails the save and the caller keeps its working copy and dirty
// flag for retry.
func Save(ctx context.Context, st Storage, chartID string, tasks []model.Task, links []model.Link) error {
	persistedTaskIDs, err := st.TaskIDs(ctx, chartID)
	if err != nil {
		return fmt.Errorf("save: list persisted tasks: %w", err)
	}
	persistedLinkIDs, err := st.LinkIDs(ctx, chartID)
	if err != nil {
		return fmt.Errorf("save: list persisted links: %w", err)
	}

	taskIDs := make([]string, len(tasks))
	for i, t := range tasks {
		taskIDs[i] = t.ID
	}
	linkIDs := make([]string, len(links))
	for i, l := range links {
		linkIDs[i] = l.ID
	}

	obsoleteTasks := Diff(persistedTaskIDs, taskIDs)
	obsoleteLinks := Diff(persistedLinkIDs, linkIDs)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return st.DeleteTasks(gctx, chartID, obsoleteTasks) })
	g.Go(func() error { return st.DeleteLinks(gctx, chartID, obsoleteLinks) })
	g.Go(func() error { return st.UpsertTasks(gctx, chartID, tasks) })
	g.Go(func() error { return st.UpsertLinks(gctx, chartID, links) })
	if err := g.Wait(); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}
