package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ganttsync/internal/chart"
	"ganttsync/internal/chart/memchart"
	"ganttsync/internal/config"
	"ganttsync/internal/controller"
	"ganttsync/internal/model"
	"ganttsync/internal/schedule"
	"ganttsync/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type loadDoneMsg struct {
	gen int
	res controller.LoadResult
	err error
}

type saveDoneMsg struct {
	job controller.SaveJob
	err error
}

type savedRevertMsg struct{}

// noticeBuf lets the dispatcher's error callback reach the view without
// holding a stale copy of the model value.
type noticeBuf struct{ s string }

type appModel struct {
	store     store.Store
	chartID   string
	chartName string

	w     *memchart.Chart
	ctrl  *controller.Controller
	sched *schedule.Store

	width  int
	height int
	sized  bool

	vp     viewport.Model
	cursor int
	rows   []row

	editing bool
	editID  string
	input   textinput.Model

	// adjusting runs the transient progress-drag mode: +/- send
	// in-progress updates, enter settles.
	adjusting bool

	linkFrom string

	dispatchErr *noticeBuf
}

func newAppModel(s store.Store, cfg config.Config, c model.Chart) appModel {
	w := memchart.New()
	ctrl := controller.New(w, s, c.ID)
	ctrl.SeedIfEmpty = cfg.SeedIfEmpty

	buf := &noticeBuf{}
	ctrl.OnDispatchError(func(err error) { buf.s = err.Error() })

	ti := textinput.New()
	ti.Prompt = "text: "
	ti.CharLimit = 200

	return appModel{
		store:       s,
		chartID:     c.ID,
		chartName:   c.Name,
		w:           w,
		ctrl:        ctrl,
		sched:       ctrl.Sched(),
		input:       ti,
		dispatchErr: buf,
	}
}

func (m appModel) Init() tea.Cmd {
	gen := m.ctrl.BeginLoad()
	return loadCmd(m.ctrl, gen)
}

func loadCmd(c *controller.Controller, gen int) tea.Cmd {
	return func() tea.Msg {
		res, err := c.RunLoad(context.Background(), gen)
		return loadDoneMsg{gen: gen, res: res, err: err}
	}
}

func saveCmd(c *controller.Controller, job controller.SaveJob) tea.Cmd {
	return func() tea.Msg {
		return saveDoneMsg{job: job, err: c.RunSave(context.Background(), job)}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.sized {
			m.vp = viewport.New(msg.Width, max(1, msg.Height-3))
			m.sized = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = max(1, msg.Height-3)
		}
		m.syncViewport()
		return m, nil

	case loadDoneMsg:
		if msg.err != nil {
			m.ctrl.FailLoad(msg.gen, msg.err)
			return m, nil
		}
		if err := m.ctrl.FinishLoad(msg.res); err != nil {
			// Stale results are from a superseded load; drop silently.
			if errors.Is(err, controller.ErrStale) {
				return m, nil
			}
			return m, nil
		}
		m.cursor = 0
		m.refreshRows()
		return m, nil

	case saveDoneMsg:
		if err := m.ctrl.FinishSave(msg.job, msg.err); err != nil {
			return m, nil
		}
		return m, tea.Tick(controller.SavedRevertDelay, func(time.Time) tea.Msg {
			return savedRevertMsg{}
		})

	case savedRevertMsg:
		m.sched.RevertSaved()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleEditKey(msg)
	}
	if m.adjusting {
		return m.handleAdjustKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.ctrl.Close()
		return m, tea.Quit

	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil

	case "r":
		gen := m.ctrl.BeginLoad()
		return m, loadCmd(m.ctrl, gen)

	case "s", "ctrl+s":
		job, err := m.ctrl.BeginSave()
		if err != nil {
			m.dispatchErr.s = err.Error()
			return m, nil
		}
		return m, saveCmd(m.ctrl, job)
	}

	if !m.ctrl.Loaded() {
		return m, nil
	}

	switch msg.String() {
	case "a":
		parent := ""
		if r, ok := m.currentRow(); ok {
			parent = parentID(r.task)
		}
		m.addTask(parent)
	case "A":
		if r, ok := m.currentRow(); ok {
			m.addTask(r.task.ID)
		}
	case "e", "enter":
		if r, ok := m.currentRow(); ok {
			m.report(m.w.Exec(chart.CmdOpenEditor, r.task.ID))
			m.afterEdit()
		}
	case " ":
		if r, ok := m.currentRow(); ok && r.task.Type == model.TaskTypeSummary {
			t := r.task
			t.Open = !t.Open
			m.report(m.w.UpdateTask(t, false))
			m.afterEdit()
		}
	case "d":
		if r, ok := m.currentRow(); ok {
			m.report(m.w.DeleteTask(r.task.ID))
			m.afterEdit()
		}
	case "c":
		if r, ok := m.currentRow(); ok {
			_, err := m.w.CopyTask(r.task.ID, uuid.NewString)
			m.report(err)
			m.afterEdit()
		}
	case ">", "tab":
		if r, ok := m.currentRow(); ok {
			m.report(m.w.IndentTask(r.task.ID))
			m.afterEdit()
		}
	case "<", "shift+tab":
		if r, ok := m.currentRow(); ok && r.task.ParentID != nil {
			parent, _ := m.w.GetTask(*r.task.ParentID)
			m.report(m.w.MoveTask(r.task.ID, parentID(parent)))
			m.afterEdit()
		}
	case "p":
		if r, ok := m.currentRow(); ok && r.task.Type != model.TaskTypeSummary {
			m.adjusting = true
		}
	case "l":
		if r, ok := m.currentRow(); ok {
			if m.linkFrom == "" {
				m.linkFrom = r.task.ID
			} else if m.linkFrom != r.task.ID {
				m.report(m.w.AddLink(model.Link{
					ID:     uuid.NewString(),
					Source: m.linkFrom,
					Target: r.task.ID,
					Type:   model.LinkFinishToStart,
				}))
				m.linkFrom = ""
				m.afterEdit()
			}
		}
	case "esc":
		m.linkFrom = ""
		m.dispatchErr.s = ""
	}
	return m, nil
}

func (m appModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if t, ok := m.w.GetTask(m.editID); ok {
			t.Text = strings.TrimSpace(m.input.Value())
			m.report(m.w.UpdateTask(t, false))
		}
		m.editing = false
		m.input.Blur()
		m.refreshRows()
		return m, nil
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleAdjustKey drives transient progress edits. Every +/- is an
// in-progress update (no dirty flag, no rollups); enter or esc settles the
// value with one real update.
func (m appModel) handleAdjustKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r, ok := m.currentRow()
	if !ok {
		m.adjusting = false
		return m, nil
	}
	switch msg.String() {
	case "+", "=", "right":
		t := r.task
		t.Progress = model.ClampProgress(t.Progress + 5)
		m.report(m.w.UpdateTask(t, true))
		m.refreshRows()
	case "-", "left":
		t := r.task
		t.Progress = model.ClampProgress(t.Progress - 5)
		m.report(m.w.UpdateTask(t, true))
		m.refreshRows()
	case "enter", "esc", "p":
		m.adjusting = false
		m.report(m.w.UpdateTask(r.task, false))
		m.afterEdit()
	}
	return m, nil
}

func (m *appModel) addTask(parent string) {
	today := time.Now()
	t := model.Task{
		ID:       uuid.NewString(),
		Type:     model.TaskTypeTask,
		Start:    &today,
		Duration: 1,
		Open:     true,
	}
	if parent != "" {
		t.ParentID = &parent
	}
	m.report(m.w.AddTask(t))
	m.afterEdit()
}

// afterEdit refreshes the visible tree and picks up a pending open-editor
// request from the widget.
func (m *appModel) afterEdit() {
	m.refreshRows()
	if id, ok := m.w.TakeEditorRequest(); ok {
		if t, found := m.w.GetTask(id); found {
			m.editing = true
			m.editID = id
			m.input.SetValue(t.Text)
			m.input.CursorEnd()
			m.input.Focus()
			for i, r := range m.rows {
				if r.task.ID == id {
					m.cursor = i
				}
			}
			m.syncViewport()
		}
	}
}

func (m *appModel) report(err error) {
	if err != nil {
		m.dispatchErr.s = err.Error()
	}
}

func (m appModel) currentRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *appModel) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	m.syncViewport()
}

func (m *appModel) refreshRows() {
	m.rows = flattenRows(m.w.State())
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.syncViewport()
}

func (m *appModel) syncViewport() {
	if !m.sized {
		return
	}
	lines := make([]string, len(m.rows))
	for i, r := range m.rows {
		lines[i] = renderRow(r, m.width, i == m.cursor)
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if m.cursor < m.vp.YOffset {
		m.vp.SetYOffset(m.cursor)
	}
	if m.cursor >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(m.cursor - m.vp.Height + 1)
	}
}

func (m appModel) View() string {
	if !m.sized {
		return "loading…"
	}

	header := styleHeader.Render(m.chartName)
	counts := fmt.Sprintf("  %d tasks · %d links", m.sched.TaskCount(), m.sched.LinkCount())
	header += styleStatus.Render(counts)

	var footer string
	switch {
	case m.editing:
		footer = m.input.View()
	case m.adjusting:
		footer = styleHelp.Render("+/- adjust progress · enter settle")
	default:
		footer = styleHelp.Render("a/A add · e edit · d delete · c copy · >/< indent · p progress · l link · space fold · s save · q quit")
	}

	return header + "\n" + m.vp.View() + "\n" + m.statusLine() + "\n" + footer
}

func (m appModel) statusLine() string {
	var parts []string
	switch m.sched.State() {
	case schedule.StateLoading:
		parts = append(parts, "loading…")
	case schedule.StateSaving:
		parts = append(parts, "saving…")
	case schedule.StateSaved:
		parts = append(parts, styleSaved.Render("saved"))
	case schedule.StateError:
		parts = append(parts, styleError.Render(m.sched.Notice()))
	}
	if m.sched.Dirty() {
		parts = append(parts, styleDirty.Render("unsaved changes"))
	}
	if m.linkFrom != "" {
		if t, ok := m.w.GetTask(m.linkFrom); ok {
			parts = append(parts, styleStatus.Render("link from "+t.Text+"…"))
		}
	}
	if m.dispatchErr.s != "" {
		parts = append(parts, styleError.Render(m.dispatchErr.s))
	}
	if len(parts) == 0 {
		return " "
	}
	return strings.Join(parts, "  ")
}

func parentID(t model.Task) string {
	if t.ParentID == nil {
		return ""
	}
	return *t.ParentID
}
