package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/RobboC1980/AGF-sub000/pkg/engine"
	"github.com/RobboC1980/AGF-sub000/pkg/model"
)

// EntityItem wraps a BaseEntity for the bubbles list.
type EntityItem struct {
	Entity model.BaseEntity
}

// FilterValue feeds the list's built-in fuzzy filter; the engine's own
// search facet is separate and authoritative.
func (i EntityItem) FilterValue() string {
	return i.Entity.Title
}

// EntityDelegate renders one row per entity: selection mark, kind icon,
// priority marker, id, title, then metadata chips.
type EntityDelegate struct {
	Theme     Theme
	Selection *engine.Selection
}

func (d EntityDelegate) Height() int  { return 1 }
func (d EntityDelegate) Spacing() int { return 0 }

func (d EntityDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d EntityDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(EntityItem)
	if !ok {
		return
	}
	e := it.Entity
	t := d.Theme

	mark := " "
	if d.Selection != nil && d.Selection.Has(e.ID) {
		mark = t.Renderer.NewStyle().Foreground(t.Primary).Render("✓")
	}

	kindIcon, kindColor := t.GetKindIcon(e.Kind)
	prio := t.GetPriorityIcon(e.Priority)

	id := t.Renderer.NewStyle().Foreground(t.Secondary).Render(e.ID)
	title := truncateRunes(e.Title, 48, "…")

	var chips []string
	if e.AssigneeID != "" {
		chips = append(chips, "@"+e.AssigneeID)
	}
	if e.Points > 0 {
		chips = append(chips, fmt.Sprintf("%gpt", e.Points))
	}
	if e.DueDate != nil {
		chips = append(chips, "due "+e.DueDate.Format("Jan 2"))
	}
	meta := t.Renderer.NewStyle().Foreground(t.Muted).Render(strings.Join(chips, " "))

	status := t.Renderer.NewStyle().Foreground(t.GetStatusColor(e.Status)).Render(e.Status)

	line := fmt.Sprintf("%s %s %s %s  %s  %s  %s",
		mark,
		t.Renderer.NewStyle().Foreground(kindColor).Render(kindIcon),
		prio, id, title, status, meta)

	if index == m.Index() {
		line = t.Selected.Render(line)
	} else {
		line = "  " + line
	}
	fmt.Fprint(w, line)
}

// truncateRunes shortens s to max runes, appending tail when it cuts.
func truncateRunes(s string, max int, tail string) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= len([]rune(tail)) {
		return tail
	}
	return string(runes[:max-len([]rune(tail))]) + tail
}

// formatTimeRel renders a compact relative age like the header rows use.
func formatTimeRel(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}
