// Package seed imports the canonical sample schedule into an empty chart.
// Sample data carries temporary ids; a two-pass remap rewrites parents and
// link endpoints to fresh stable ids before anything touches storage, since
// links must not exist before their endpoints do.
package seed

import (
	"context"

	"ganttsync/internal/model"

	"github.com/google/uuid"
)

type Storage interface {
	UpsertTasks(ctx context.Context, chartID string, tasks []model.Task) error
	UpsertLinks(ctx context.Context, chartID string, links []model.Link) error
}

// Remap rewrites sample tasks/links with fresh stable ids. newID defaults
// to uuid generation; tests inject a deterministic one.
func Remap(tasks []model.Task, links []model.Link, newID func() string) ([]model.Task, []model.Link) {
	if newID == nil {
		newID = uuid.NewString
	}

	idMap := make(map[string]string, len(tasks))
	for _, t := range tasks {
		idMap[t.ID] = newID()
	}

	outTasks := make([]model.Task, len(tasks))
	for i, t := range tasks {
		t = t.Clone()
		t.ID = idMap[t.ID]
		if t.ParentID != nil {
			if mapped, ok := idMap[*t.ParentID]; ok {
				t.ParentID = &mapped
			} else {
				// A parent value meaning "none" stays rootless.
				t.ParentID = nil
			}
		}
		outTasks[i] = t
	}

	outLinks := make([]model.Link, len(links))
	for i, l := range links {
		l.ID = newID()
		// Missing endpoints keep their literal value. Should not happen
		// with well-formed sample data.
		if mapped, ok := idMap[l.Source]; ok {
			l.Source = mapped
		}
		if mapped, ok := idMap[l.Target]; ok {
			l.Target = mapped
		}
		outLinks[i] = l
	}

	return outTasks, outLinks
}

// Apply remaps the canonical sample dataset and persists it as the chart's
// initial schedule. The caller then proceeds exactly as with a normal load.
func Apply(ctx context.Context, st Storage, chartID string) (model.Schedule, error) {
	tasks, links := Remap(SampleTasks(), SampleLinks(), nil)
	if err := st.UpsertTasks(ctx, chartID, tasks); err != nil {
		return model.Schedule{}, err
	}
	if err := st.UpsertLinks(ctx, chartID, links); err != nil {
		return model.Schedule{}, err
	}
	return model.Schedule{Tasks: tasks, Links: links}, nil
}
