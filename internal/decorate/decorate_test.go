package decorate

import (
	"reflect"
	"testing"
	"time"

	"ganttsync/internal/model"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return &t
}

func TestDecorateMilestone(t *testing.T) {
	got := Decorate(model.Task{
		ID:       "m1",
		Type:     model.TaskTypeMilestone,
		Start:    date(2026, 4, 1),
		End:      date(2026, 4, 9),
		Duration: 8,
	})
	if got.Duration != 0 {
		t.Fatalf("milestone duration: expected 0, got %d", got.Duration)
	}
	if got.End != nil {
		t.Fatalf("milestone end: expected nil, got %v", got.End)
	}
	if got.Start == nil {
		t.Fatalf("milestone start: expected kept")
	}
}

func TestDecorateDerivesDuration(t *testing.T) {
	got := Decorate(model.Task{
		ID:    "t1",
		Type:  model.TaskTypeTask,
		Start: date(2026, 4, 1),
		End:   date(2026, 4, 9),
	})
	if got.Duration != 8 {
		t.Fatalf("expected derived duration 8, got %d", got.Duration)
	}
}

func TestDecorateClampsProgress(t *testing.T) {
	if got := Decorate(model.Task{Progress: 180}); got.Progress != 100 {
		t.Fatalf("expected progress clamped to 100, got %d", got.Progress)
	}
	if got := Decorate(model.Task{Progress: -4}); got.Progress != 0 {
		t.Fatalf("expected progress clamped to 0, got %d", got.Progress)
	}
}

func TestDecoratePaletteDeterministic(t *testing.T) {
	a := Decorate(model.Task{Type: model.TaskTypeSummary})
	b := Decorate(model.Task{Type: model.TaskTypeSummary})
	if a.Color == "" || a.Color != b.Color || a.ProgressColor != b.ProgressColor {
		t.Fatalf("summary palette not deterministic: %+v vs %+v", a, b)
	}
	// Types outside the palette table inherit widget defaults.
	if got := Decorate(model.Task{Type: model.TaskTypeTask, Color: "#fff"}); got.Color != "" {
		t.Fatalf("expected default color for plain task, got %q", got.Color)
	}
}

func TestDecorateIdempotent(t *testing.T) {
	tasks := []model.Task{
		{ID: "a", Type: model.TaskTypeTask, Start: date(2026, 1, 5), End: date(2026, 1, 9), Progress: 140},
		{ID: "b", Type: model.TaskTypeMilestone, Start: date(2026, 2, 1), End: date(2026, 2, 2)},
		{ID: "c", Type: model.TaskTypeSummary},
		{ID: "d", Type: model.TaskTypeIndirect, Duration: 3},
	}
	for _, in := range tasks {
		once := Decorate(in)
		twice := Decorate(once)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("Decorate not idempotent for %s:\n once: %+v\ntwice: %+v", in.ID, once, twice)
		}
	}
}

func TestDecorateDoesNotMutateInput(t *testing.T) {
	in := model.Task{ID: "a", Type: model.TaskTypeMilestone, End: date(2026, 2, 2), Duration: 5}
	_ = Decorate(in)
	if in.End == nil || in.Duration != 5 {
		t.Fatalf("input mutated: %+v", in)
	}
}
