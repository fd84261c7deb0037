package store

import (
	"encoding/json"
	"fmt"
	"io"

	"ganttsync/internal/dateutil"
	"ganttsync/internal/model"
)

// taskRecord is the persisted wire shape: flat, date-only strings, parent
// absent rather than empty. Milestones omit end_date entirely instead of
// storing null.
type taskRecord struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	Type          string `json:"type"`
	StartDate     string `json:"start_date,omitempty"`
	EndDate       string `json:"end_date,omitempty"`
	Duration      int    `json:"duration"`
	Progress      int    `json:"progress"`
	ParentID      string `json:"parent_id,omitempty"`
	Position      int    `json:"position"`
	Open          bool   `json:"open"`
	Lazy          bool   `json:"lazy,omitempty"`
	PlannedStart  string `json:"planned_start,omitempty"`
	PlannedEnd    string `json:"planned_end,omitempty"`
	AssignedID    string `json:"assigned_id,omitempty"`
	Color         string `json:"color,omitempty"`
	ProgressColor string `json:"progress_color,omitempty"`
}

type linkRecord struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

func taskToWire(t model.Task) taskRecord {
	rec := taskRecord{
		ID:            t.ID,
		Text:          t.Text,
		Type:          string(t.Type),
		Duration:      t.Duration,
		Progress:      model.ClampProgress(t.Progress),
		Position:      t.Position,
		Open:          t.Open,
		Lazy:          t.Lazy,
		Color:         t.Color,
		ProgressColor: t.ProgressColor,
	}
	if s, ok := dateutil.ToDateString(t.Start); ok {
		rec.StartDate = s
	}
	if t.Type != model.TaskTypeMilestone {
		if s, ok := dateutil.ToDateString(t.End); ok {
			rec.EndDate = s
		}
	}
	if s, ok := dateutil.ToDateString(t.BaselineStart); ok {
		rec.PlannedStart = s
	}
	if s, ok := dateutil.ToDateString(t.BaselineEnd); ok {
		rec.PlannedEnd = s
	}
	if t.ParentID != nil && *t.ParentID != "" {
		rec.ParentID = *t.ParentID
	}
	if t.AssignedID != nil && *t.AssignedID != "" {
		rec.AssignedID = *t.AssignedID
	}
	return rec
}

func taskFromWire(rec taskRecord) model.Task {
	t := model.Task{
		ID:            rec.ID,
		Text:          rec.Text,
		Type:          model.TaskType(rec.Type),
		Duration:      rec.Duration,
		Progress:      model.ClampProgress(rec.Progress),
		Position:      rec.Position,
		Open:          rec.Open,
		Lazy:          rec.Lazy,
		Color:         rec.Color,
		ProgressColor: rec.ProgressColor,
	}
	if d, ok := dateutil.ToDate(rec.StartDate); ok {
		t.Start = &d
	}
	if d, ok := dateutil.ToDate(rec.EndDate); ok {
		t.End = &d
	}
	if d, ok := dateutil.ToDate(rec.PlannedStart); ok {
		t.BaselineStart = &d
	}
	if d, ok := dateutil.ToDate(rec.PlannedEnd); ok {
		t.BaselineEnd = &d
	}
	if rec.ParentID != "" {
		p := rec.ParentID
		t.ParentID = &p
	}
	if rec.AssignedID != "" {
		a := rec.AssignedID
		t.AssignedID = &a
	}
	return t
}

func linkToWire(l model.Link) linkRecord {
	return linkRecord{ID: l.ID, Source: l.Source, Target: l.Target, Type: string(l.Type)}
}

func linkFromWire(rec linkRecord) model.Link {
	return model.Link{ID: rec.ID, Source: rec.Source, Target: rec.Target, Type: model.LinkType(rec.Type)}
}

type scheduleDoc struct {
	Tasks []taskRecord `json:"tasks"`
	Links []linkRecord `json:"links"`
}

// DecodeSchedule reads a full schedule in the persisted wire shape
// ({"tasks": [...], "links": [...]}) for scriptable imports.
func DecodeSchedule(r io.Reader) (model.Schedule, error) {
	var doc scheduleDoc
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return model.Schedule{}, fmt.Errorf("decode schedule: %w", err)
	}
	sched := model.Schedule{
		Tasks: make([]model.Task, len(doc.Tasks)),
		Links: make([]model.Link, len(doc.Links)),
	}
	for i, rec := range doc.Tasks {
		if rec.ID == "" {
			return model.Schedule{}, fmt.Errorf("decode schedule: task %d has no id", i)
		}
		sched.Tasks[i] = taskFromWire(rec)
	}
	for i, rec := range doc.Links {
		if rec.ID == "" {
			return model.Schedule{}, fmt.Errorf("decode schedule: link %d has no id", i)
		}
		sched.Links[i] = linkFromWire(rec)
	}
	return sched, nil
}
