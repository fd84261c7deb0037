package decorate

import (
	"ganttsync/internal/dateutil"
	"ganttsync/internal/model"
)

// palette maps task types to bar colors. Types missing from the table keep
// the widget's defaults (empty hint). Deterministic on purpose: the same
// type always yields the same hint.
type barColors struct {
	bar      string
	progress string
}

var palette = map[model.TaskType]barColors{
	model.TaskTypeSummary:           {bar: "#2f4f6f", progress: "#1d3349"},
	model.TaskTypeMilestone:         {bar: "#d33daf", progress: "#d33daf"},
	model.TaskTypeIndirect:          {bar: "#9a8b4f", progress: "#7a6d3a"},
	model.TaskTypeIndirectUnplanned: {bar: "#b5a86a", progress: "#9a8b4f"},
}

// Decorate normalizes a raw task into its canonical form:
// - date fields coerced to canonical dates
// - milestones forced to Duration 0 with no End (instants, not intervals;
//   anything else double-counts them in duration math)
// - Duration derived from Start/End when unset
// - Progress clamped to [0,100]
// - palette hints assigned by type
//
// Pure and idempotent: Decorate(Decorate(t)) == Decorate(t).
func Decorate(t model.Task) model.Task {
	t = t.Clone()

	if d, ok := dateutil.ToDate(t.Start); ok {
		t.Start = &d
	} else {
		t.Start = nil
	}
	if d, ok := dateutil.ToDate(t.End); ok {
		t.End = &d
	} else {
		t.End = nil
	}
	if d, ok := dateutil.ToDate(t.BaselineStart); ok {
		t.BaselineStart = &d
	} else {
		t.BaselineStart = nil
	}
	if d, ok := dateutil.ToDate(t.BaselineEnd); ok {
		t.BaselineEnd = &d
	} else {
		t.BaselineEnd = nil
	}

	if t.Type == model.TaskTypeMilestone {
		t.Duration = 0
		t.End = nil
	} else if t.Duration == 0 && t.Start != nil && t.End != nil {
		t.Duration = dateutil.DaysBetween(*t.Start, *t.End)
	}

	t.Progress = model.ClampProgress(t.Progress)

	if c, ok := palette[t.Type]; ok {
		t.Color = c.bar
		t.ProgressColor = c.progress
	} else {
		t.Color = ""
		t.ProgressColor = ""
	}

	return t
}

// DecorateAll decorates a slice without mutating the input.
func DecorateAll(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		out[i] = Decorate(t)
	}
	return out
}
