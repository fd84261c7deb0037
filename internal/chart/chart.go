// Package chart defines the capability contract the sync core requires from
// a chart widget. Any rendering technology that implements Widget is
// substitutable; the in-process implementation lives in chart/memchart.
package chart

import (
	"errors"

	"ganttsync/internal/model"
)

// ErrNotReady is returned when a command is issued before the widget has
// been initialized with data. Callers report it as a notice, not a crash.
var ErrNotReady = errors.New("chart widget not ready")

// Structural edit events emitted by the widget.
const (
	EventTaskAdded    = "task-added"
	EventTaskUpdated  = "task-updated"
	EventTaskDeleted  = "task-deleted"
	EventTaskMoved    = "task-moved"
	EventTaskCopied   = "task-copied"
	EventTaskIndented = "task-indented"
	EventLinkAdded    = "link-added"
	EventLinkUpdated  = "link-updated"
	EventLinkDeleted  = "link-deleted"
)

// Commands accepted by Exec.
const (
	// CmdParse loads a full schedule into the widget without firing
	// structural events.
	CmdParse = "parse"
	// CmdUpdateTask applies a model.Task payload and fires task-updated.
	CmdUpdateTask = "update-task"
	// CmdOpenEditor asks the widget to open its edit panel for a task id.
	CmdOpenEditor = "open-editor"
)

// Event describes one structural edit.
//
// FormerParentID carries the parent a task had before a delete or move;
// after those events the task (or its old position) is gone, so rollup
// recalculation has no other way to find the affected summary.
type Event struct {
	Name           string
	TaskID         string
	LinkID         string
	FormerParentID string
	// InProgress marks transient notifications (e.g. a progress bar
	// mid-drag). Consumers ignore these; only the settled event counts.
	InProgress bool
}

type Handler func(Event)

// State is read access to the widget's live data.
type State interface {
	Task(id string) (model.Task, bool)
	// Children returns direct children in sibling order. An empty
	// parentID selects root tasks.
	Children(parentID string) []model.Task
	Tasks() []model.Task
	Links() []model.Link
}

// Widget is the narrow surface the core depends on.
type Widget interface {
	// On registers a handler under a named group tag. Handlers of one
	// tag detach together without disturbing other tags.
	On(event string, h Handler, tag string)
	Detach(tag string)
	Exec(cmd string, payload any) error
	GetTask(id string) (model.Task, bool)
	State() State
	// Serialize returns a snapshot copy for persistence, never live data.
	Serialize() ([]model.Task, []model.Link)
}
