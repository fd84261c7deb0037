package schedule

import (
	"testing"

	"ganttsync/internal/model"
)

type fakeWidget struct {
	tasks []model.Task
	links []model.Link
}

func (f fakeWidget) Serialize() ([]model.Task, []model.Link) {
	return append([]model.Task(nil), f.tasks...), append([]model.Link(nil), f.links...)
}

func TestSyncFromMirrorsWidget(t *testing.T) {
	s := New("chart-1")
	s.SyncFrom(fakeWidget{
		tasks: []model.Task{{ID: "a"}, {ID: "b"}},
		links: []model.Link{{ID: "l1", Source: "a", Target: "b"}},
	})
	if s.TaskCount() != 2 || s.LinkCount() != 1 {
		t.Fatalf("expected 2 tasks / 1 link, got %d / %d", s.TaskCount(), s.LinkCount())
	}
	if s.Empty() {
		t.Fatalf("expected non-empty after sync")
	}
}

func TestReplaceDoesNotDirty(t *testing.T) {
	s := New("chart-1")
	s.Replace(model.Schedule{Tasks: []model.Task{{ID: "a"}}})
	if s.Dirty() {
		t.Fatalf("loading persisted data must not set the dirty flag")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New("chart-1")
	s.Replace(model.Schedule{Tasks: []model.Task{{ID: "a", Text: "orig"}}})
	snap := s.Snapshot()
	snap.Tasks[0].Text = "mutated"
	if s.Snapshot().Tasks[0].Text != "orig" {
		t.Fatalf("Snapshot leaked live data")
	}
}

func TestRevertSavedOnlyFromSaved(t *testing.T) {
	s := New("chart-1")
	s.SetState(StateSaved)
	s.RevertSaved()
	if s.State() != StateIdle {
		t.Fatalf("expected idle after revert, got %s", s.State())
	}
	// A stale timer firing mid-save must not clobber the state.
	s.SetState(StateSaving)
	s.RevertSaved()
	if s.State() != StateSaving {
		t.Fatalf("expected saving preserved, got %s", s.State())
	}
}

func TestSetErrorKeepsDirty(t *testing.T) {
	s := New("chart-1")
	s.MarkDirty()
	s.SetError("save failed: network down")
	if !s.Dirty() {
		t.Fatalf("error must leave dirty flag set for retry")
	}
	if s.State() != StateError || s.Notice() == "" {
		t.Fatalf("expected error state with notice, got %s %q", s.State(), s.Notice())
	}
}
