// Package dispatch bridges widget edit events into the working copy, the
// dirty flag, and rollup recalculation. Listeners register under named
// groups so each concern detaches independently and re-initialization is
// safe (detach-then-attach, never append).
package dispatch

import (
	"ganttsync/internal/chart"
	"ganttsync/internal/progress"
	"ganttsync/internal/schedule"
)

const (
	GroupSync   = "gantt-data-sync"
	GroupUI     = "gantt-ui"
	GroupRollup = "gantt-rollup"
)

var structuralEvents = []string{
	chart.EventTaskAdded,
	chart.EventTaskUpdated,
	chart.EventTaskDeleted,
	chart.EventTaskMoved,
	chart.EventTaskCopied,
	chart.EventTaskIndented,
	chart.EventLinkAdded,
	chart.EventLinkUpdated,
	chart.EventLinkDeleted,
}

type Dispatcher struct {
	w     chart.Widget
	sched *schedule.Store

	// OnError receives best-effort failures from rollup write-backs and
	// editor commands. Nil means drop them; event handlers have nowhere
	// to return an error to.
	OnError func(error)
}

func New(w chart.Widget, sched *schedule.Store) *Dispatcher {
	return &Dispatcher{w: w, sched: sched}
}

// Attach registers all listener groups. Always detaches first, so calling
// it twice leaves exactly one handler per event per group.
func (d *Dispatcher) Attach() {
	d.Detach()

	for _, ev := range structuralEvents {
		d.w.On(ev, d.onStructural, GroupSync)
	}
	d.w.On(chart.EventTaskAdded, d.onTaskAddedUI, GroupUI)
	for _, ev := range []string{
		chart.EventTaskAdded,
		chart.EventTaskUpdated,
		chart.EventTaskDeleted,
		chart.EventTaskMoved,
		chart.EventTaskCopied,
		chart.EventTaskIndented,
	} {
		d.w.On(ev, d.onRollup, GroupRollup)
	}
}

func (d *Dispatcher) Detach() {
	d.w.Detach(GroupSync)
	d.w.Detach(GroupUI)
	d.w.Detach(GroupRollup)
}

// onStructural re-syncs the working copy and marks unsaved changes.
// Transient (in-progress) notifications are suppressed entirely: only the
// settled event matters.
func (d *Dispatcher) onStructural(ev chart.Event) {
	if ev.InProgress {
		return
	}
	d.sched.SyncFrom(d.w)
	d.sched.MarkDirty()
}

// onTaskAddedUI opens the edit panel for every brand-new task, independent
// of persistence concerns.
func (d *Dispatcher) onTaskAddedUI(ev chart.Event) {
	if ev.InProgress {
		return
	}
	d.report(d.w.Exec(chart.CmdOpenEditor, ev.TaskID))
}

func (d *Dispatcher) onRollup(ev chart.Event) {
	if ev.InProgress {
		return
	}
	switch ev.Name {
	case chart.EventTaskAdded, chart.EventTaskCopied, chart.EventTaskUpdated:
		d.report(progress.RecalcRollup(d.w, ev.TaskID, false))
	case chart.EventTaskDeleted:
		// The task is gone; its former parent is the only handle left.
		if ev.FormerParentID != "" {
			d.report(progress.RecalcRollup(d.w, ev.FormerParentID, true))
		}
	case chart.EventTaskMoved, chart.EventTaskIndented:
		if ev.FormerParentID != "" {
			d.report(progress.RecalcRollup(d.w, ev.FormerParentID, true))
		}
		d.report(progress.RecalcRollup(d.w, ev.TaskID, false))
	}
}

func (d *Dispatcher) report(err error) {
	if err != nil && d.OnError != nil {
		d.OnError(err)
	}
}
