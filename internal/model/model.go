package model

import "time"

type TaskType string

const (
	// TaskTypeTask is ordinary scheduled work that depends on predecessors.
	TaskTypeTask TaskType = "task"
	// TaskTypeUnplanned is ordinary work tracked outside the dependency flow.
	TaskTypeUnplanned TaskType = "unplanned"
	TaskTypeSummary   TaskType = "summary"
	TaskTypeMilestone TaskType = "milestone"
	// Indirect work (site setup, scaffolding, ...) in dependent and
	// independent flavors.
	TaskTypeIndirect          TaskType = "indirect"
	TaskTypeIndirectUnplanned TaskType = "indirect_unplanned"
	TaskTypeOther             TaskType = "other"
)

func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeTask, TaskTypeUnplanned, TaskTypeSummary, TaskTypeMilestone,
		TaskTypeIndirect, TaskTypeIndirectUnplanned, TaskTypeOther:
		return true
	default:
		return false
	}
}

type LinkType string

const (
	LinkFinishToStart  LinkType = "0"
	LinkStartToStart   LinkType = "1"
	LinkFinishToFinish LinkType = "2"
	LinkStartToFinish  LinkType = "3"
)

// Task is one row of the schedule tree. ID is the sole join key to persisted
// storage and to links; it is stable for the lifetime of the chart.
type Task struct {
	ID   string   `json:"id"`
	Text string   `json:"text"`
	Type TaskType `json:"type"`

	Start *time.Time `json:"start,omitempty"`
	// End is nil for milestones: a milestone is an instant, not an interval.
	End      *time.Time `json:"end,omitempty"`
	Duration int        `json:"duration"`
	Progress int        `json:"progress"`

	ParentID *string `json:"parentId,omitempty"`
	Position int     `json:"position"`
	Open     bool    `json:"open"`
	Lazy     bool    `json:"lazy,omitempty"`

	BaselineStart *time.Time `json:"baselineStart,omitempty"`
	BaselineEnd   *time.Time `json:"baselineEnd,omitempty"`

	AssignedID *string `json:"assignedId,omitempty"`

	// Presentation hints set by the decorator. Deterministic per type,
	// carry no behavioral weight.
	Color         string `json:"color,omitempty"`
	ProgressColor string `json:"progressColor,omitempty"`
}

// Link is a precedence edge between two tasks of the same schedule.
// It never expresses ownership; that is ParentID's job.
type Link struct {
	ID     string   `json:"id"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   LinkType `json:"type"`
}

// ScaleConfig is display-timescale config carried with a schedule
// (e.g. unit "month" / format "MMM yyyy"). Opaque to the sync core.
type ScaleConfig struct {
	Unit   string `json:"unit" yaml:"unit"`
	Step   int    `json:"step" yaml:"step"`
	Format string `json:"format" yaml:"format"`
}

// Schedule is the unit of load/save: the full task+link graph for one chart.
type Schedule struct {
	Tasks  []Task        `json:"tasks"`
	Links  []Link        `json:"links"`
	Scales []ScaleConfig `json:"scales,omitempty"`
}

type Chart struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a deep copy. Callers outside the controller only ever see
// clones, never the live working copy.
func (s Schedule) Clone() Schedule {
	out := Schedule{
		Tasks:  make([]Task, len(s.Tasks)),
		Links:  make([]Link, len(s.Links)),
		Scales: append([]ScaleConfig(nil), s.Scales...),
	}
	for i, t := range s.Tasks {
		out.Tasks[i] = t.Clone()
	}
	copy(out.Links, s.Links)
	return out
}

func (t Task) Clone() Task {
	t.Start = cloneTime(t.Start)
	t.End = cloneTime(t.End)
	t.BaselineStart = cloneTime(t.BaselineStart)
	t.BaselineEnd = cloneTime(t.BaselineEnd)
	t.ParentID = cloneString(t.ParentID)
	t.AssignedID = cloneString(t.AssignedID)
	return t
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
