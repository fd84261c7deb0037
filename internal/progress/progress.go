// Package progress derives summary-task completion from descendant leaves.
// A summary's progress is never user-edited; it is always recomputed live
// from the widget's current state, never cached.
package progress

import (
	"ganttsync/internal/chart"
	"ganttsync/internal/model"
)

// TaskSource is the read surface the aggregator needs. chart.State
// satisfies it.
type TaskSource interface {
	Task(id string) (model.Task, bool)
	Children(parentID string) []model.Task
}

// ComputeRollup returns the duration-weighted average completion of the
// descendants of id, as an integer in [0,100]. A summary with no
// measurable work underneath is 0% complete by definition.
func ComputeRollup(src TaskSource, id string) int {
	visited := map[string]bool{}
	dur, weighted := rollup(src, id, visited)
	if dur <= 0 {
		return 0
	}
	return model.ClampProgress(int(weighted/float64(dur) + 0.5))
}

// rollup accumulates (total duration, duration-weighted progress sum) over
// the subtree below id. The visited set guards against a corrupted cyclic
// parent chain; parent edges are acyclic by construction at the edit layer,
// but a cycle here must fail safe, not recurse forever.
func rollup(src TaskSource, id string, visited map[string]bool) (int, float64) {
	if visited[id] {
		return 0, 0
	}
	visited[id] = true

	totalDur := 0
	weighted := 0.0
	for _, child := range src.Children(id) {
		switch child.Type {
		case model.TaskTypeSummary:
			// Never trust a nested summary's own progress field; it
			// may be stale. Recurse and fold its leaves in directly.
			d, w := rollup(src, child.ID, visited)
			totalDur += d
			weighted += w
		case model.TaskTypeMilestone:
			// Zero duration, contributes nothing itself. Recurse
			// anyway in case it unexpectedly has children.
			d, w := rollup(src, child.ID, visited)
			totalDur += d
			weighted += w
		default:
			if child.Duration > 0 {
				totalDur += child.Duration
				weighted += float64(child.Duration) * float64(model.ClampProgress(child.Progress))
			}
		}
	}
	return totalDur, weighted
}

// NearestSummary resolves the closest ancestor summary of id. With
// treatAsSummary set, a task that is itself a summary resolves to itself.
func NearestSummary(src TaskSource, id string, treatAsSummary bool) (model.Task, bool) {
	t, ok := src.Task(id)
	if !ok {
		return model.Task{}, false
	}
	if treatAsSummary && t.Type == model.TaskTypeSummary {
		return t, true
	}
	seen := map[string]bool{id: true}
	for t.ParentID != nil {
		p, ok := src.Task(*t.ParentID)
		if !ok || seen[p.ID] {
			return model.Task{}, false
		}
		seen[p.ID] = true
		if p.Type == model.TaskTypeSummary {
			return p, true
		}
		t = p
	}
	return model.Task{}, false
}

// RecalcRollup recomputes the rollup for the summary governing id and
// writes it back through the widget, but only when the value actually
// changed. The no-change check is what keeps update-task events from
// recursing forever: the write-back fires another update, which recomputes
// to the same value and stops.
func RecalcRollup(w chart.Widget, id string, treatAsSummary bool) error {
	src := w.State()
	summary, ok := NearestSummary(src, id, treatAsSummary)
	if !ok {
		return nil
	}
	val := ComputeRollup(src, summary.ID)
	if val == summary.Progress {
		return nil
	}
	summary.Progress = val
	return w.Exec(chart.CmdUpdateTask, summary)
}

// RecalcAll walks every summary once. Used at initialization: rollups are
// not authoritative in storage and must be rebuilt from leaves on load.
func RecalcAll(w chart.Widget) error {
	for _, t := range w.State().Tasks() {
		if t.Type != model.TaskTypeSummary {
			continue
		}
		if err := RecalcRollup(w, t.ID, true); err != nil {
			return err
		}
	}
	return nil
}
