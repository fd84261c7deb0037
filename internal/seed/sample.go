package seed

import (
	"time"

	"ganttsync/internal/model"
)

func ptr(s string) *string { return &s }

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return &t
}

// SampleTasks returns the canonical sample schedule: a small residential
// build with nested phases, enough to demonstrate summaries, milestones,
// and indirect work. Ids are temporary and remapped on import.
func SampleTasks() []model.Task {
	return []model.Task{
		{ID: "tmp-1", Text: "Shell construction", Type: model.TaskTypeSummary, Open: true},
		{ID: "tmp-2", Text: "Excavation", Type: model.TaskTypeTask, ParentID: ptr("tmp-1"),
			Start: date(2026, 3, 2), End: date(2026, 3, 10), Duration: 8, Progress: 100},
		{ID: "tmp-3", Text: "Foundations", Type: model.TaskTypeTask, ParentID: ptr("tmp-1"),
			Start: date(2026, 3, 10), End: date(2026, 3, 24), Duration: 14, Progress: 60, Position: 1},
		{ID: "tmp-4", Text: "Masonry ground floor", Type: model.TaskTypeTask, ParentID: ptr("tmp-1"),
			Start: date(2026, 3, 24), End: date(2026, 4, 14), Duration: 21, Progress: 0, Position: 2},
		{ID: "tmp-5", Text: "Scaffolding", Type: model.TaskTypeIndirect, ParentID: ptr("tmp-1"),
			Start: date(2026, 3, 20), End: date(2026, 4, 20), Duration: 31, Progress: 25, Position: 3},
		{ID: "tmp-6", Text: "Topping out", Type: model.TaskTypeMilestone, ParentID: ptr("tmp-1"),
			Start: date(2026, 4, 21), Position: 4},
		{ID: "tmp-7", Text: "Fit-out", Type: model.TaskTypeSummary, Open: true, Position: 1},
		{ID: "tmp-8", Text: "Electrical rough-in", Type: model.TaskTypeTask, ParentID: ptr("tmp-7"),
			Start: date(2026, 4, 22), End: date(2026, 5, 6), Duration: 14, Progress: 0},
		{ID: "tmp-9", Text: "Plumbing rough-in", Type: model.TaskTypeTask, ParentID: ptr("tmp-7"),
			Start: date(2026, 4, 22), End: date(2026, 5, 12), Duration: 20, Progress: 0, Position: 1},
		{ID: "tmp-10", Text: "Plastering", Type: model.TaskTypeTask, ParentID: ptr("tmp-7"),
			Start: date(2026, 5, 12), End: date(2026, 5, 26), Duration: 14, Progress: 0, Position: 2},
		{ID: "tmp-11", Text: "Site setup", Type: model.TaskTypeIndirectUnplanned,
			Start: date(2026, 2, 23), End: date(2026, 3, 2), Duration: 7, Progress: 100, Position: 2},
	}
}

func SampleLinks() []model.Link {
	return []model.Link{
		{ID: "tmp-l1", Source: "tmp-2", Target: "tmp-3", Type: model.LinkFinishToStart},
		{ID: "tmp-l2", Source: "tmp-3", Target: "tmp-4", Type: model.LinkFinishToStart},
		{ID: "tmp-l3", Source: "tmp-4", Target: "tmp-6", Type: model.LinkFinishToStart},
		{ID: "tmp-l4", Source: "tmp-6", Target: "tmp-8", Type: model.LinkFinishToStart},
		{ID: "tmp-l5", Source: "tmp-8", Target: "tmp-10", Type: model.LinkFinishToStart},
		{ID: "tmp-l6", Source: "tmp-9", Target: "tmp-10", Type: model.LinkFinishToFinish},
	}
}
