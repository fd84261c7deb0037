// Package schedule holds the working copy: the authoritative in-memory
// tasks/links for the currently open chart. The controller owns it for the
// chart's lifetime; everything else sees snapshots.
package schedule

import (
	"ganttsync/internal/model"
)

type SaveState string

const (
	StateIdle    SaveState = "idle"
	StateLoading SaveState = "loading"
	StateSaving  SaveState = "saving"
	StateSaved   SaveState = "saved"
	StateError   SaveState = "error"
)

type serializer interface {
	Serialize() ([]model.Task, []model.Link)
}

type Store struct {
	chartID string
	sched   model.Schedule
	dirty   bool
	rev     int
	state   SaveState
	notice  string
}

func New(chartID string) *Store {
	return &Store{chartID: chartID, state: StateIdle}
}

func (s *Store) ChartID() string { return s.chartID }

// Replace swaps in a freshly loaded schedule without touching the dirty
// flag (loading persisted data is not an edit).
func (s *Store) Replace(sched model.Schedule) {
	s.sched = sched.Clone()
}

// SyncFrom re-reads the full schedule from the widget. Called after every
// settled structural event: the widget is the source of truth for live
// edits, the working copy mirrors it.
func (s *Store) SyncFrom(w serializer) {
	tasks, links := w.Serialize()
	s.sched.Tasks = tasks
	s.sched.Links = links
}

// Snapshot returns a deep copy for persistence or display.
func (s *Store) Snapshot() model.Schedule {
	return s.sched.Clone()
}

func (s *Store) TaskCount() int { return len(s.sched.Tasks) }
func (s *Store) LinkCount() int { return len(s.sched.Links) }

// Empty reports whether both collections are empty, the seed trigger.
func (s *Store) Empty() bool {
	return len(s.sched.Tasks) == 0 && len(s.sched.Links) == 0
}

func (s *Store) MarkDirty() {
	s.dirty = true
	s.rev++
}

func (s *Store) ClearDirty() { s.dirty = false }
func (s *Store) Dirty() bool { return s.dirty }

// Rev is a monotonic edit revision. A save snapshots it so that edits
// landing while the save is in flight keep the dirty flag for the next one.
func (s *Store) Rev() int { return s.rev }

func (s *Store) State() SaveState { return s.state }
func (s *Store) Notice() string   { return s.notice }

func (s *Store) SetState(st SaveState) {
	s.state = st
	s.notice = ""
}

// SetError records a failed operation. The working copy and dirty flag are
// deliberately untouched so the user can retry without data loss.
func (s *Store) SetError(notice string) {
	s.state = StateError
	s.notice = notice
}

// RevertSaved drops the transient "saved" affordance back to idle. A no-op
// in any other state, so a stale timer cannot clobber a newer saving/error
// status.
func (s *Store) RevertSaved() {
	if s.state == StateSaved {
		s.state = StateIdle
	}
}
