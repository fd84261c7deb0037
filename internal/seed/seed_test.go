package seed

import (
	"context"
	"fmt"
	"testing"

	"ganttsync/internal/model"
)

func counterID() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("uuid-%d", n)
	}
}

func TestRemapRewritesParents(t *testing.T) {
	tasks := []model.Task{
		{ID: "temp-1", Text: "parent"},
		{ID: "temp-2", Text: "child", ParentID: ptr("temp-1")},
		{ID: "temp-3", Text: "rootless"},
	}
	out, _ := Remap(tasks, nil, counterID())
	if out[0].ID != "uuid-1" || out[1].ID != "uuid-2" {
		t.Fatalf("ids not remapped: %+v", out)
	}
	if out[1].ParentID == nil || *out[1].ParentID != "uuid-1" {
		t.Fatalf("parent not remapped: %+v", out[1])
	}
	if out[2].ParentID != nil {
		t.Fatalf("rootless task must stay rootless: %+v", out[2])
	}
}

func TestRemapParentMeaningNoneStaysRootless(t *testing.T) {
	tasks := []model.Task{{ID: "temp-1", ParentID: ptr("0")}}
	out, _ := Remap(tasks, nil, counterID())
	if out[0].ParentID != nil {
		t.Fatalf("parent \"0\" must mean none, got %v", *out[0].ParentID)
	}
}

func TestRemapRewritesLinkEndpoints(t *testing.T) {
	tasks := []model.Task{{ID: "temp-1"}, {ID: "temp-2"}}
	links := []model.Link{{ID: "temp-l", Source: "temp-1", Target: "temp-2", Type: model.LinkFinishToStart}}
	_, outLinks := Remap(tasks, links, counterID())
	l := outLinks[0]
	if l.Source != "uuid-1" || l.Target != "uuid-2" {
		t.Fatalf("endpoints not remapped: %+v", l)
	}
	if l.ID == "temp-l" {
		t.Fatalf("link id not remapped: %+v", l)
	}
}

func TestRemapUnknownEndpointFallsBackToLiteral(t *testing.T) {
	links := []model.Link{{ID: "l", Source: "ghost", Target: "ghost2"}}
	_, out := Remap(nil, links, counterID())
	if out[0].Source != "ghost" || out[0].Target != "ghost2" {
		t.Fatalf("expected literal fallback, got %+v", out[0])
	}
}

func TestRemapUniqueIDs(t *testing.T) {
	out, outLinks := Remap(SampleTasks(), SampleLinks(), nil)
	seen := map[string]bool{}
	for _, x := range out {
		if seen[x.ID] {
			t.Fatalf("duplicate id %s", x.ID)
		}
		seen[x.ID] = true
	}
	for _, l := range outLinks {
		if seen[l.ID] {
			t.Fatalf("link id collides with task id: %s", l.ID)
		}
		seen[l.ID] = true
	}
}

func TestSampleDataWellFormed(t *testing.T) {
	byID := map[string]model.Task{}
	for _, task := range SampleTasks() {
		byID[task.ID] = task
	}
	for _, task := range SampleTasks() {
		if !task.Type.Valid() {
			t.Fatalf("task %s has invalid type %q", task.ID, task.Type)
		}
		if task.ParentID != nil {
			if _, ok := byID[*task.ParentID]; !ok {
				t.Fatalf("task %s references missing parent %s", task.ID, *task.ParentID)
			}
		}
		if task.Type == model.TaskTypeMilestone && task.End != nil {
			t.Fatalf("sample milestone %s has an end date", task.ID)
		}
	}
	for _, l := range SampleLinks() {
		if _, ok := byID[l.Source]; !ok {
			t.Fatalf("link %s has missing source %s", l.ID, l.Source)
		}
		if _, ok := byID[l.Target]; !ok {
			t.Fatalf("link %s has missing target %s", l.ID, l.Target)
		}
	}
}

type captureStorage struct {
	tasks []model.Task
	links []model.Link
}

func (c *captureStorage) UpsertTasks(ctx context.Context, chartID string, tasks []model.Task) error {
	c.tasks = tasks
	return nil
}

func (c *captureStorage) UpsertLinks(ctx context.Context, chartID string, links []model.Link) error {
	c.links = links
	return nil
}

func TestApplyPersistsRemappedSchedule(t *testing.T) {
	st := &captureStorage{}
	sched, err := Apply(context.Background(), st, "chart-1")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(st.tasks) != len(SampleTasks()) || len(st.links) != len(SampleLinks()) {
		t.Fatalf("expected full sample persisted, got %d/%d", len(st.tasks), len(st.links))
	}
	for _, task := range sched.Tasks {
		if len(task.ID) < 10 {
			t.Fatalf("expected uuid-sized id, got %q", task.ID)
		}
	}
}
