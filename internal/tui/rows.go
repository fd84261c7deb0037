package tui

import (
	"fmt"
	"strings"

	"ganttsync/internal/chart"
	"ganttsync/internal/dateutil"
	"ganttsync/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// row is one visible line of the task tree.
type row struct {
	task  model.Task
	depth int
}

// flattenRows walks the tree in sibling order, skipping children of closed
// summaries so collapse works like any outliner.
func flattenRows(st chart.State) []row {
	var out []row
	var walk func(parentID string, depth int)
	walk = func(parentID string, depth int) {
		for _, t := range st.Children(parentID) {
			out = append(out, row{task: t, depth: depth})
			if t.Type == model.TaskTypeSummary && !t.Open {
				continue
			}
			walk(t.ID, depth+1)
		}
	}
	walk("", 0)
	return out
}

func rowGlyph(t model.Task) string {
	switch t.Type {
	case model.TaskTypeSummary:
		if t.Open {
			return "▾"
		}
		return "▸"
	case model.TaskTypeMilestone:
		return "◆"
	default:
		return "·"
	}
}

func rowDates(t model.Task) string {
	start, _ := dateutil.ToDateString(t.Start)
	if t.Type == model.TaskTypeMilestone {
		return start
	}
	end, _ := dateutil.ToDateString(t.End)
	if start == "" && end == "" {
		return ""
	}
	return start + " → " + end
}

// renderRow lays out one line: tree indent, glyph, label, then a right
// column with dates and progress.
func renderRow(r row, width int, selected bool) string {
	label := r.task.Text
	if label == "" {
		label = "(untitled)"
	}

	right := rowDates(r.task)
	if r.task.Type != model.TaskTypeMilestone {
		right = fmt.Sprintf("%s  %3d%%", right, r.task.Progress)
	}

	left := strings.Repeat("  ", r.depth) + rowGlyph(r.task) + " "
	avail := width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if avail < 4 {
		avail = 4
	}
	if runes := []rune(label); len(runes) > avail {
		label = string(runes[:avail-1]) + "…"
	}

	pad := width - lipgloss.Width(left) - lipgloss.Width(label) - lipgloss.Width(right)
	if pad < 1 {
		pad = 1
	}

	// The selection background must cover the whole line, so selected rows
	// skip the per-segment styles.
	if selected {
		return styleSelected.Render(left + label + strings.Repeat(" ", pad) + right)
	}
	return left + taskStyle(r.task.Color).Render(label) +
		strings.Repeat(" ", pad) + styleStatus.Render(right)
}
