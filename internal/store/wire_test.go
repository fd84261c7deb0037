package store

import (
	"strings"
	"testing"

	"ganttsync/internal/model"
)

func TestDecodeSchedule(t *testing.T) {
	doc := `{
		"tasks": [
			{"id": "t1", "text": "Phase", "type": "summary", "open": true},
			{"id": "t2", "text": "Work", "type": "task", "parent_id": "t1",
			 "start_date": "2026-06-01", "end_date": "2026-06-05", "duration": 4, "progress": 150},
			{"id": "m1", "text": "Done", "type": "milestone", "start_date": "2026-06-05"}
		],
		"links": [{"id": "l1", "source": "t1", "target": "t2", "type": "0"}]
	}`

	sched, err := DecodeSchedule(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeSchedule: %v", err)
	}
	if len(sched.Tasks) != 3 || len(sched.Links) != 1 {
		t.Fatalf("unexpected counts: %d tasks, %d links", len(sched.Tasks), len(sched.Links))
	}

	work := sched.Tasks[1]
	if work.ParentID == nil || *work.ParentID != "t1" {
		t.Fatalf("parent not decoded: %+v", work.ParentID)
	}
	if work.Start == nil || work.Start.Format("2006-01-02") != "2026-06-01" {
		t.Fatalf("start not decoded: %v", work.Start)
	}
	if work.Progress != 100 {
		t.Fatalf("progress must clamp on decode, got %d", work.Progress)
	}

	mile := sched.Tasks[2]
	if mile.Type != model.TaskTypeMilestone || mile.End != nil {
		t.Fatalf("milestone must have no end: %+v", mile)
	}
}

func TestDecodeScheduleRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"empty input", ""},
		{"unknown field", `{"tasks": [{"id": "t1", "bogus": 1}], "links": []}`},
		{"missing task id", `{"tasks": [{"text": "x"}], "links": []}`},
		{"missing link id", `{"tasks": [], "links": [{"source": "a", "target": "b"}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeSchedule(strings.NewReader(tc.doc)); err == nil {
				t.Fatalf("expected decode error")
			}
		})
	}
}
