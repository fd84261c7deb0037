package dispatch

import (
	"testing"

	"ganttsync/internal/chart"
	"ganttsync/internal/chart/memchart"
	"ganttsync/internal/model"
	"ganttsync/internal/schedule"
)

func ptr(s string) *string { return &s }

func setup(t *testing.T) (*memchart.Chart, *schedule.Store, *Dispatcher) {
	t.Helper()
	c := memchart.New()
	err := c.Exec(chart.CmdParse, model.Schedule{Tasks: []model.Task{
		{ID: "s", Type: model.TaskTypeSummary},
		{ID: "a", Type: model.TaskTypeTask, ParentID: ptr("s"), Duration: 4, Progress: 0},
		{ID: "b", Type: model.TaskTypeTask, ParentID: ptr("s"), Duration: 4, Progress: 0},
	}})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sched := schedule.New("chart-1")
	sched.SyncFrom(c)
	d := New(c, sched)
	d.Attach()
	return c, sched, d
}

func TestAttachIsIdempotent(t *testing.T) {
	c, _, d := setup(t)
	d.Attach()
	d.Attach()
	if n := c.HandlerCount(chart.EventTaskUpdated, GroupSync); n != 1 {
		t.Fatalf("expected 1 sync handler after re-attach, got %d", n)
	}
	if n := c.HandlerCount(chart.EventTaskAdded, GroupUI); n != 1 {
		t.Fatalf("expected 1 ui handler after re-attach, got %d", n)
	}
	if n := c.HandlerCount(chart.EventTaskMoved, GroupRollup); n != 1 {
		t.Fatalf("expected 1 rollup handler after re-attach, got %d", n)
	}
}

func TestSettledUpdateSyncsDirtiesAndRollsUp(t *testing.T) {
	c, sched, _ := setup(t)
	if err := c.UpdateTask(model.Task{ID: "a", Type: model.TaskTypeTask, ParentID: ptr("s"), Duration: 4, Progress: 100}, false); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if !sched.Dirty() {
		t.Fatalf("expected dirty flag set")
	}
	s, _ := c.GetTask("s")
	if s.Progress != 50 {
		t.Fatalf("expected summary rollup 50, got %d", s.Progress)
	}
	// Working copy mirrors the widget, including the rollup write-back.
	for _, task := range sched.Snapshot().Tasks {
		if task.ID == "s" && task.Progress != 50 {
			t.Fatalf("working copy stale: summary at %d", task.Progress)
		}
	}
}

func TestInProgressEventFullySuppressed(t *testing.T) {
	c, sched, _ := setup(t)
	if err := c.UpdateTask(model.Task{ID: "a", Type: model.TaskTypeTask, ParentID: ptr("s"), Duration: 4, Progress: 100}, true); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if sched.Dirty() {
		t.Fatalf("in-progress event must not set dirty flag")
	}
	if s, _ := c.GetTask("s"); s.Progress != 0 {
		t.Fatalf("in-progress event must not trigger rollup, got %d", s.Progress)
	}

	// The settled event that follows triggers both.
	if err := c.UpdateTask(model.Task{ID: "a", Type: model.TaskTypeTask, ParentID: ptr("s"), Duration: 4, Progress: 100}, false); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if !sched.Dirty() {
		t.Fatalf("settled event must set dirty flag")
	}
	if s, _ := c.GetTask("s"); s.Progress != 50 {
		t.Fatalf("settled event must trigger rollup, got %d", s.Progress)
	}
}

func TestNewTaskOpensEditor(t *testing.T) {
	c, _, _ := setup(t)
	if err := c.AddTask(model.Task{ID: "n", Type: model.TaskTypeTask, ParentID: ptr("s"), Duration: 2}); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	id, ok := c.TakeEditorRequest()
	if !ok || id != "n" {
		t.Fatalf("expected editor request for new task, got (%q, %v)", id, ok)
	}
}

func TestDeleteRecalcsFormerParent(t *testing.T) {
	c, _, _ := setup(t)
	// Bring b to 100 so the summary sits at 50, then delete a (0%).
	_ = c.UpdateTask(model.Task{ID: "b", Type: model.TaskTypeTask, ParentID: ptr("s"), Duration: 4, Progress: 100}, false)
	if err := c.DeleteTask("a"); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	s, _ := c.GetTask("s")
	if s.Progress != 100 {
		t.Fatalf("expected summary recalculated from former parent to 100, got %d", s.Progress)
	}
}

func TestMoveRecalcsBothSummaries(t *testing.T) {
	c := memchart.New()
	err := c.Exec(chart.CmdParse, model.Schedule{Tasks: []model.Task{
		{ID: "s1", Type: model.TaskTypeSummary},
		{ID: "s2", Type: model.TaskTypeSummary},
		{ID: "a", Type: model.TaskTypeTask, ParentID: ptr("s1"), Duration: 4, Progress: 100},
		{ID: "b", Type: model.TaskTypeTask, ParentID: ptr("s2"), Duration: 4, Progress: 0},
	}})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sched := schedule.New("chart-1")
	sched.SyncFrom(c)
	New(c, sched).Attach()

	// Settle initial rollups: s1=100, s2=0.
	_ = c.UpdateTask(model.Task{ID: "a", Type: model.TaskTypeTask, ParentID: ptr("s1"), Duration: 4, Progress: 100}, false)

	if err := c.MoveTask("a", "s2"); err != nil {
		t.Fatalf("MoveTask: %v", err)
	}
	s1, _ := c.GetTask("s1")
	s2, _ := c.GetTask("s2")
	if s1.Progress != 0 {
		t.Fatalf("expected emptied summary back to 0, got %d", s1.Progress)
	}
	if s2.Progress != 50 {
		t.Fatalf("expected receiving summary at 50, got %d", s2.Progress)
	}
}

func TestDetachStopsReactions(t *testing.T) {
	c, sched, d := setup(t)
	d.Detach()
	sched.ClearDirty()
	_ = c.UpdateTask(model.Task{ID: "a", Type: model.TaskTypeTask, ParentID: ptr("s"), Duration: 4, Progress: 100}, false)
	if sched.Dirty() {
		t.Fatalf("detached dispatcher must not react")
	}
}
