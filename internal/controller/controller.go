// Package controller composes the sync engine into one lifecycle:
// load → seed-if-empty → hand data to the widget → attach listeners →
// react to edits → save on demand.
//
// All mutation happens on the owner's goroutine (the TUI update loop).
// Persistence work runs elsewhere but only ever touches snapshots; the
// Begin/Run/Finish split enforces "never suspend mid-mutation without a
// consistent snapshot first".
package controller

import (
	"context"
	"errors"
	"time"

	"ganttsync/internal/chart"
	"ganttsync/internal/dispatch"
	"ganttsync/internal/model"
	"ganttsync/internal/progress"
	"ganttsync/internal/reconcile"
	"ganttsync/internal/schedule"
	"ganttsync/internal/seed"
)

// ErrStale marks a load/save result that arrived after the consuming view
// restarted or closed. The result must be discarded, never applied.
var ErrStale = errors.New("stale result for a closed or restarted controller")

// SavedRevertDelay is how long the transient "saved" status lingers before
// reverting to idle. Purely a UI affordance.
const SavedRevertDelay = 1500 * time.Millisecond

// Storage is the full persistence contract the controller consumes.
type Storage interface {
	reconcile.Storage
	ListTasks(ctx context.Context, chartID string) ([]model.Task, error)
	ListLinks(ctx context.Context, chartID string) ([]model.Link, error)
}

type Controller struct {
	w     chart.Widget
	st    Storage
	sched *schedule.Store
	disp  *dispatch.Dispatcher

	// SeedIfEmpty enables the one-time sample import on a fresh chart.
	SeedIfEmpty bool

	gen    int
	closed bool
	loaded bool
}

func New(w chart.Widget, st Storage, chartID string) *Controller {
	c := &Controller{
		w:     w,
		st:    st,
		sched: schedule.New(chartID),
	}
	c.disp = dispatch.New(w, c.sched)
	return c
}

func (c *Controller) Sched() *schedule.Store { return c.sched }
func (c *Controller) Loaded() bool           { return c.loaded }

// OnDispatchError forwards best-effort dispatcher failures (rollup
// write-backs, editor commands) to the UI.
func (c *Controller) OnDispatchError(f func(error)) { c.disp.OnError = f }

// --- load ---

type LoadResult struct {
	gen    int
	sched  model.Schedule
	Seeded bool
}

// BeginLoad starts a load generation. Must run on the owner's goroutine.
func (c *Controller) BeginLoad() int {
	c.gen++
	c.loaded = false
	c.sched.SetState(schedule.StateLoading)
	return c.gen
}

// RunLoad fetches the persisted schedule, seeding first if the chart is
// empty. Safe to run off the owner's goroutine: it touches storage only.
func (c *Controller) RunLoad(ctx context.Context, gen int) (LoadResult, error) {
	tasks, err := c.st.ListTasks(ctx, c.sched.ChartID())
	if err != nil {
		return LoadResult{}, err
	}
	links, err := c.st.ListLinks(ctx, c.sched.ChartID())
	if err != nil {
		return LoadResult{}, err
	}
	res := LoadResult{gen: gen, sched: model.Schedule{Tasks: tasks, Links: links}}

	if len(tasks) == 0 && len(links) == 0 && c.SeedIfEmpty {
		seeded, err := seed.Apply(ctx, c.st, c.sched.ChartID())
		if err != nil {
			return LoadResult{}, err
		}
		res.sched = seeded
		res.Seeded = true
	}
	return res, nil
}

// FinishLoad applies a completed load on the owner's goroutine. A result
// from an older generation, or one arriving after Close, is discarded with
// ErrStale. Listener attach happens last, so no edit event can race the
// seed or the initial rollup pass.
func (c *Controller) FinishLoad(res LoadResult) error {
	if c.closed || res.gen != c.gen {
		return ErrStale
	}
	if err := c.w.Exec(chart.CmdParse, res.sched); err != nil {
		c.sched.SetError("chart load failed: " + err.Error())
		return err
	}
	// Rollups are never authoritative in storage; rebuild from leaves
	// before anyone can observe them.
	if err := progress.RecalcAll(c.w); err != nil {
		c.sched.SetError("rollup pass failed: " + err.Error())
		return err
	}
	c.sched.SyncFrom(c.w)
	c.disp.Attach()
	c.sched.ClearDirty()
	c.sched.SetState(schedule.StateIdle)
	c.loaded = true
	return nil
}

// FailLoad records a load failure. The schedule stays absent; the caller
// shows an empty/loading state.
func (c *Controller) FailLoad(gen int, err error) {
	if c.closed || gen != c.gen {
		return
	}
	c.sched.SetError("load failed: " + err.Error())
}

// Init is the synchronous convenience path for CLI use.
func (c *Controller) Init(ctx context.Context) error {
	gen := c.BeginLoad()
	res, err := c.RunLoad(ctx, gen)
	if err != nil {
		c.FailLoad(gen, err)
		return err
	}
	return c.FinishLoad(res)
}

// --- save ---

type SaveJob struct {
	gen   int
	rev   int
	tasks []model.Task
	links []model.Link
}

// BeginSave snapshots the working copy synchronously at call time. Edits
// made while the save is in flight are simply caught by the next one.
func (c *Controller) BeginSave() (SaveJob, error) {
	if !c.loaded {
		return SaveJob{}, chart.ErrNotReady
	}
	snap := c.sched.Snapshot()
	c.sched.SetState(schedule.StateSaving)
	return SaveJob{gen: c.gen, rev: c.sched.Rev(), tasks: snap.Tasks, links: snap.Links}, nil
}

// RunSave reconciles storage against the snapshot. Storage-only; safe off
// the owner's goroutine.
func (c *Controller) RunSave(ctx context.Context, job SaveJob) error {
	return reconcile.Save(ctx, c.st, c.sched.ChartID(), job.tasks, job.links)
}

// FinishSave applies the outcome. Success clears the dirty flag and shows
// the transient saved status; failure leaves working copy and dirty flag
// untouched for retry.
func (c *Controller) FinishSave(job SaveJob, err error) error {
	if c.closed || job.gen != c.gen {
		return ErrStale
	}
	if err != nil {
		c.sched.SetError("save failed: " + err.Error())
		return err
	}
	// Edits that landed while the save was in flight were not in the
	// snapshot; keep the dirty flag for the next save.
	if c.sched.Rev() == job.rev {
		c.sched.ClearDirty()
	}
	c.sched.SetState(schedule.StateSaved)
	return nil
}

// Save is the synchronous convenience path.
func (c *Controller) Save(ctx context.Context) error {
	job, err := c.BeginSave()
	if err != nil {
		return err
	}
	return c.FinishSave(job, c.RunSave(ctx, job))
}

// Close tears the lifecycle down. Any in-flight load or save result is
// discarded by its Finish call.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.disp.Detach()
}
