// Package memchart is the in-process chart widget: an event-emitting
// in-memory task/link engine behind the chart.Widget contract. The TUI
// drives it; the sync core only ever sees the interface.
package memchart

import (
	"fmt"
	"sort"

	"ganttsync/internal/chart"
	"ganttsync/internal/decorate"
	"ganttsync/internal/model"
)

type Chart struct {
	tasks []model.Task
	links []model.Link
	byID  map[string]int

	ready bool

	// editorTaskID records the last open-editor request so the front-end
	// can pick it up on its next frame.
	editorTaskID string

	// handlers[event][tag] keeps registration order within a tag.
	handlers map[string]map[string][]chart.Handler
	tagOrder []string
}

func New() *Chart {
	return &Chart{
		byID:     map[string]int{},
		handlers: map[string]map[string][]chart.Handler{},
	}
}

// --- subscriptions ---

func (c *Chart) On(event string, h chart.Handler, tag string) {
	m, ok := c.handlers[event]
	if !ok {
		m = map[string][]chart.Handler{}
		c.handlers[event] = m
	}
	m[tag] = append(m[tag], h)
	if !containsString(c.tagOrder, tag) {
		c.tagOrder = append(c.tagOrder, tag)
	}
}

func (c *Chart) Detach(tag string) {
	for _, m := range c.handlers {
		delete(m, tag)
	}
	c.tagOrder = removeString(c.tagOrder, tag)
}

// HandlerCount reports registered handlers for one event under one tag.
func (c *Chart) HandlerCount(event, tag string) int {
	return len(c.handlers[event][tag])
}

func (c *Chart) emit(ev chart.Event) {
	m := c.handlers[ev.Name]
	if m == nil {
		return
	}
	// Stable dispatch order: tags in attach order, handlers in
	// registration order.
	for _, tag := range c.tagOrder {
		for _, h := range m[tag] {
			h(ev)
		}
	}
}

// --- commands ---

func (c *Chart) Exec(cmd string, payload any) error {
	switch cmd {
	case chart.CmdParse:
		sched, ok := payload.(model.Schedule)
		if !ok {
			return fmt.Errorf("parse: expected model.Schedule payload, got %T", payload)
		}
		c.parse(sched)
		return nil
	case chart.CmdUpdateTask:
		if !c.ready {
			return chart.ErrNotReady
		}
		t, ok := payload.(model.Task)
		if !ok {
			return fmt.Errorf("update-task: expected model.Task payload, got %T", payload)
		}
		return c.UpdateTask(t, false)
	case chart.CmdOpenEditor:
		if !c.ready {
			return chart.ErrNotReady
		}
		id, ok := payload.(string)
		if !ok {
			return fmt.Errorf("open-editor: expected task id payload, got %T", payload)
		}
		if _, ok := c.GetTask(id); !ok {
			return fmt.Errorf("open-editor: unknown task %s", id)
		}
		c.editorTaskID = id
		return nil
	default:
		return fmt.Errorf("unknown chart command: %s", cmd)
	}
}

func (c *Chart) parse(sched model.Schedule) {
	c.tasks = make([]model.Task, 0, len(sched.Tasks))
	c.byID = map[string]int{}
	for _, t := range sched.Tasks {
		c.byID[t.ID] = len(c.tasks)
		c.tasks = append(c.tasks, decorate.Decorate(t))
	}
	c.links = append([]model.Link(nil), sched.Links...)
	c.sortSiblings()
	c.ready = true
}

// TakeEditorRequest returns and clears the pending open-editor task id.
func (c *Chart) TakeEditorRequest() (string, bool) {
	if c.editorTaskID == "" {
		return "", false
	}
	id := c.editorTaskID
	c.editorTaskID = ""
	return id, true
}

// --- reads ---

func (c *Chart) Ready() bool { return c.ready }

func (c *Chart) GetTask(id string) (model.Task, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Task{}, false
	}
	return c.tasks[i].Clone(), true
}

func (c *Chart) State() chart.State { return stateView{c} }

func (c *Chart) Serialize() ([]model.Task, []model.Link) {
	tasks := make([]model.Task, len(c.tasks))
	for i, t := range c.tasks {
		tasks[i] = t.Clone()
	}
	links := append([]model.Link(nil), c.links...)
	return tasks, links
}

type stateView struct{ c *Chart }

func (s stateView) Task(id string) (model.Task, bool) { return s.c.GetTask(id) }

func (s stateView) Children(parentID string) []model.Task {
	var out []model.Task
	for _, t := range s.c.tasks {
		if parentOf(t) == parentID {
			out = append(out, t.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func (s stateView) Tasks() []model.Task {
	tasks, _ := s.c.Serialize()
	return tasks
}

func (s stateView) Links() []model.Link {
	_, links := s.c.Serialize()
	return links
}

// --- task mutations (driven by the front-end) ---

func (c *Chart) AddTask(t model.Task) error {
	if !c.ready {
		return chart.ErrNotReady
	}
	if t.ID == "" {
		return fmt.Errorf("add task: missing id")
	}
	if _, exists := c.byID[t.ID]; exists {
		return fmt.Errorf("add task: duplicate id %s", t.ID)
	}
	if p := parentOf(t); p != "" {
		if _, ok := c.byID[p]; !ok {
			return fmt.Errorf("add task: unknown parent %s", p)
		}
	}
	t.Position = len(c.siblings(parentOf(t)))
	c.byID[t.ID] = len(c.tasks)
	c.tasks = append(c.tasks, decorate.Decorate(t))
	c.emit(chart.Event{Name: chart.EventTaskAdded, TaskID: t.ID})
	return nil
}

// UpdateTask replaces a task in place. inProgress marks a transient edit
// (e.g. a drag still in flight); the event is emitted either way and
// consumers decide whether to react.
func (c *Chart) UpdateTask(t model.Task, inProgress bool) error {
	if !c.ready {
		return chart.ErrNotReady
	}
	i, ok := c.byID[t.ID]
	if !ok {
		return fmt.Errorf("update task: unknown id %s", t.ID)
	}
	c.tasks[i] = decorate.Decorate(t)
	c.emit(chart.Event{Name: chart.EventTaskUpdated, TaskID: t.ID, InProgress: inProgress})
	return nil
}

// DeleteTask removes a task and its whole subtree, plus links touching any
// removed task.
func (c *Chart) DeleteTask(id string) error {
	if !c.ready {
		return chart.ErrNotReady
	}
	t, ok := c.GetTask(id)
	if !ok {
		return fmt.Errorf("delete task: unknown id %s", id)
	}
	doomed := map[string]bool{}
	c.collectSubtree(id, doomed)

	kept := c.tasks[:0:0]
	for _, x := range c.tasks {
		if !doomed[x.ID] {
			kept = append(kept, x)
		}
	}
	c.tasks = kept
	c.reindex()

	keptLinks := c.links[:0:0]
	for _, l := range c.links {
		if !doomed[l.Source] && !doomed[l.Target] {
			keptLinks = append(keptLinks, l)
		}
	}
	c.links = keptLinks

	c.renumber(parentOf(t))
	c.emit(chart.Event{Name: chart.EventTaskDeleted, TaskID: id, FormerParentID: parentOf(t)})
	return nil
}

// MoveTask reparents a task (newParentID "" means root) and appends it to
// the new sibling list.
func (c *Chart) MoveTask(id, newParentID string) error {
	if !c.ready {
		return chart.ErrNotReady
	}
	i, ok := c.byID[id]
	if !ok {
		return fmt.Errorf("move task: unknown id %s", id)
	}
	if newParentID != "" {
		if _, ok := c.byID[newParentID]; !ok {
			return fmt.Errorf("move task: unknown parent %s", newParentID)
		}
		if c.inSubtree(id, newParentID) {
			return fmt.Errorf("move task: %s cannot become its own descendant", id)
		}
	}
	former := parentOf(c.tasks[i])
	if newParentID == "" {
		c.tasks[i].ParentID = nil
	} else {
		p := newParentID
		c.tasks[i].ParentID = &p
	}
	c.tasks[i].Position = len(c.siblings(newParentID)) - 1
	c.renumber(former)
	c.renumber(newParentID)
	c.emit(chart.Event{Name: chart.EventTaskMoved, TaskID: id, FormerParentID: former})
	return nil
}

// IndentTask reparents a task under its previous sibling, making it that
// sibling's last child. First siblings have nowhere to go.
func (c *Chart) IndentTask(id string) error {
	if !c.ready {
		return chart.ErrNotReady
	}
	i, ok := c.byID[id]
	if !ok {
		return fmt.Errorf("indent task: unknown id %s", id)
	}
	former := parentOf(c.tasks[i])
	sibs := c.siblings(former)
	var prev string
	for j, s := range sibs {
		if s.ID == id && j > 0 {
			prev = sibs[j-1].ID
		}
	}
	if prev == "" {
		return fmt.Errorf("indent task: %s has no previous sibling", id)
	}
	p := prev
	c.tasks[i].ParentID = &p
	c.tasks[i].Position = len(c.siblings(prev)) - 1
	c.renumber(former)
	c.renumber(prev)
	c.emit(chart.Event{Name: chart.EventTaskIndented, TaskID: id, FormerParentID: former})
	return nil
}

// CopyTask duplicates a task and its subtree directly after the original.
// newID supplies fresh ids for every copied task; links are not copied.
// Returns the id of the new subtree root.
func (c *Chart) CopyTask(id string, newID func() string) (string, error) {
	if !c.ready {
		return "", chart.ErrNotReady
	}
	i, ok := c.byID[id]
	if !ok {
		return "", fmt.Errorf("copy task: unknown id %s", id)
	}
	src := c.tasks[i]

	idMap := map[string]string{}
	order := []string{}
	doomed := map[string]bool{}
	c.collectSubtree(id, doomed)
	for _, t := range c.tasks {
		if doomed[t.ID] {
			idMap[t.ID] = newID()
			order = append(order, t.ID)
		}
	}

	for _, oldID := range order {
		t := c.tasks[c.byID[oldID]].Clone()
		t.ID = idMap[oldID]
		if oldID == id {
			// Same position as the source: the stable renumber sort keeps
			// the source first, landing the copy directly after it.
			t.Position = src.Position
		} else if t.ParentID != nil {
			if mapped, ok := idMap[*t.ParentID]; ok {
				t.ParentID = &mapped
			}
		}
		c.byID[t.ID] = len(c.tasks)
		c.tasks = append(c.tasks, t)
	}
	c.renumber(parentOf(src))
	rootID := idMap[id]
	c.emit(chart.Event{Name: chart.EventTaskCopied, TaskID: rootID})
	return rootID, nil
}

// --- link mutations ---

func (c *Chart) AddLink(l model.Link) error {
	if !c.ready {
		return chart.ErrNotReady
	}
	if l.ID == "" {
		return fmt.Errorf("add link: missing id")
	}
	if _, ok := c.byID[l.Source]; !ok {
		return fmt.Errorf("add link: unknown source %s", l.Source)
	}
	if _, ok := c.byID[l.Target]; !ok {
		return fmt.Errorf("add link: unknown target %s", l.Target)
	}
	c.links = append(c.links, l)
	c.emit(chart.Event{Name: chart.EventLinkAdded, LinkID: l.ID})
	return nil
}

func (c *Chart) DeleteLink(id string) error {
	if !c.ready {
		return chart.ErrNotReady
	}
	for i, l := range c.links {
		if l.ID == id {
			c.links = append(c.links[:i], c.links[i+1:]...)
			c.emit(chart.Event{Name: chart.EventLinkDeleted, LinkID: id})
			return nil
		}
	}
	return fmt.Errorf("delete link: unknown id %s", id)
}

// --- internals ---

func (c *Chart) siblings(parentID string) []model.Task {
	var out []model.Task
	for _, t := range c.tasks {
		if parentOf(t) == parentID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func (c *Chart) renumber(parentID string) {
	pos := 0
	for _, s := range c.siblings(parentID) {
		i := c.byID[s.ID]
		c.tasks[i].Position = pos
		pos++
	}
}

func (c *Chart) sortSiblings() {
	parents := map[string]bool{"": true}
	for _, t := range c.tasks {
		parents[parentOf(t)] = true
	}
	for p := range parents {
		c.renumber(p)
	}
}

func (c *Chart) reindex() {
	c.byID = map[string]int{}
	for i, t := range c.tasks {
		c.byID[t.ID] = i
	}
}

func (c *Chart) collectSubtree(id string, out map[string]bool) {
	out[id] = true
	for _, t := range c.tasks {
		if parentOf(t) == id && !out[t.ID] {
			c.collectSubtree(t.ID, out)
		}
	}
}

func (c *Chart) inSubtree(rootID, id string) bool {
	doomed := map[string]bool{}
	c.collectSubtree(rootID, doomed)
	return doomed[id]
}

func parentOf(t model.Task) string {
	if t.ParentID == nil {
		return ""
	}
	return *t.ParentID
}

func containsString(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

func removeString(xs []string, s string) []string {
	out := xs[:0:0]
	for _, x := range xs {
		if x != s {
			out = append(out, x)
		}
	}
	return out
}
