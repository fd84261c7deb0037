package reconcile

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"ganttsync/internal/model"
)

func TestDiff(t *testing.T) {
	cases := []struct {
		name      string
		persisted []string
		working   []string
		want      []string
	}{
		{"spec example", []string{"1", "2", "3"}, []string{"2", "3", "4"}, []string{"1"}},
		{"nothing persisted", nil, []string{"a"}, nil},
		{"everything gone", []string{"a", "b"}, nil, []string{"a", "b"}},
		{"identical", []string{"a"}, []string{"a"}, nil},
		{"sorted output", []string{"z", "a", "m"}, nil, []string{"a", "m", "z"}},
	}
	for _, tc := range cases {
		if got := Diff(tc.persisted, tc.working); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Diff [%s]: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

// memStorage is an in-memory Storage for exercising Save without sqlite.
type memStorage struct {
	mu    sync.Mutex
	tasks map[string]model.Task
	links map[string]model.Link

	failUpsertTasks bool
}

func newMemStorage() *memStorage {
	return &memStorage{tasks: map[string]model.Task{}, links: map[string]model.Link{}}
}

func (m *memStorage) TaskIDs(ctx context.Context, chartID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []string{}
	for id := range m.tasks {
		out = append(out, id)
	}
	return out, nil
}

func (m *memStorage) LinkIDs(ctx context.Context, chartID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []string{}
	for id := range m.links {
		out = append(out, id)
	}
	return out, nil
}

func (m *memStorage) UpsertTasks(ctx context.Context, chartID string, tasks []model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpsertTasks {
		return errors.New("storage unavailable")
	}
	for _, t := range tasks {
		m.tasks[t.ID] = t
	}
	return nil
}

func (m *memStorage) UpsertLinks(ctx context.Context, chartID string, links []model.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range links {
		m.links[l.ID] = l
	}
	return nil
}

func (m *memStorage) DeleteTasks(ctx context.Context, chartID string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.tasks, id)
	}
	return nil
}

func (m *memStorage) DeleteLinks(ctx context.Context, chartID string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.links, id)
	}
	return nil
}

func TestSaveDeletesObsoleteAndUpserts(t *testing.T) {
	ctx := context.Background()
	st := newMemStorage()
	st.tasks["1"] = model.Task{ID: "1"}
	st.tasks["2"] = model.Task{ID: "2"}
	st.tasks["3"] = model.Task{ID: "3"}
	st.links["l-old"] = model.Link{ID: "l-old"}

	working := []model.Task{{ID: "2"}, {ID: "3"}, {ID: "4"}}
	links := []model.Link{{ID: "l-new", Source: "2", Target: "3"}}

	if err := Save(ctx, st, "chart-1", working, links); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, ok := st.tasks["1"]; ok {
		t.Fatalf("expected obsolete task 1 deleted")
	}
	for _, id := range []string{"2", "3", "4"} {
		if _, ok := st.tasks[id]; !ok {
			t.Fatalf("expected task %s upserted", id)
		}
	}
	if _, ok := st.links["l-old"]; ok {
		t.Fatalf("expected obsolete link deleted")
	}
	if _, ok := st.links["l-new"]; !ok {
		t.Fatalf("expected new link upserted")
	}
}

func TestSaveFailureReported(t *testing.T) {
	ctx := context.Background()
	st := newMemStorage()
	st.failUpsertTasks = true
	err := Save(ctx, st, "chart-1", []model.Task{{ID: "1"}}, nil)
	if err == nil {
		t.Fatalf("expected save failure")
	}
}

func TestSaveEmptyWorkingCopyClearsStorage(t *testing.T) {
	ctx := context.Background()
	st := newMemStorage()
	st.tasks["1"] = model.Task{ID: "1"}
	if err := Save(ctx, st, "chart-1", nil, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(st.tasks) != 0 {
		t.Fatalf("expected storage emptied, got %v", st.tasks)
	}
}
