package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/RobboC1980/AGF-sub000/pkg/model"
)

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Status groups
	Todo       lipgloss.AdaptiveColor
	InProgress lipgloss.AdaptiveColor
	Blocked    lipgloss.AdaptiveColor
	Done       lipgloss.AdaptiveColor

	// Kinds
	Epic    lipgloss.AdaptiveColor
	Story   lipgloss.AdaptiveColor
	Task    lipgloss.AdaptiveColor
	Project lipgloss.AdaptiveColor

	// UI Elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor

	// Styles
	Base     lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive).
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}, // Gray
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"}, // Dim

		Todo:       lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}, // Green
		InProgress: lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}, // Cyan
		Blocked:    lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}, // Red
		Done:       lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}, // Gray

		Epic:    lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		Story:   lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}, // Orange
		Task:    lipgloss.AdaptiveColor{Light: "#808000", Dark: "#F1FA8C"}, // Yellow/olive
		Project: lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}, // Cyan

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Danger:    lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Selected = r.NewStyle().
		Background(t.Highlight).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		PaddingLeft(1).
		Bold(true)

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	return t
}

// statusGroup folds an opaque status string into one of the four visual
// buckets. Unknown statuses land in the todo bucket rather than erroring.
func statusGroup(status string) string {
	switch status {
	case "in_progress", "in-progress", "active", "doing":
		return "in_progress"
	case "blocked", "on_hold", "on-hold":
		return "blocked"
	case model.StatusDone, model.StatusCompleted, model.StatusClosed:
		return "done"
	default:
		return "todo"
	}
}

func (t Theme) GetStatusColor(status string) lipgloss.AdaptiveColor {
	switch statusGroup(status) {
	case "in_progress":
		return t.InProgress
	case "blocked":
		return t.Blocked
	case "done":
		return t.Done
	default:
		return t.Todo
	}
}

func (t Theme) GetKindIcon(kind model.EntityKind) (string, lipgloss.AdaptiveColor) {
	switch kind {
	case model.KindEpic:
		// 🚀 rather than 🏔️ - variation selectors render with inconsistent
		// widths across terminals.
		return "🚀", t.Epic
	case model.KindStory:
		return "📖", t.Story
	case model.KindTask:
		return "📋", t.Task
	case model.KindProject:
		return "📦", t.Project
	default:
		return "•", t.Subtext
	}
}

// GetPriorityIcon maps a priority to a colored marker. Unknown priorities
// get the neutral marker, matching the engine's rank-0 treatment.
func (t Theme) GetPriorityIcon(p model.Priority) string {
	switch p {
	case model.PriorityCritical:
		return t.Renderer.NewStyle().Foreground(t.Danger).Bold(true).Render("‼")
	case model.PriorityHigh:
		return t.Renderer.NewStyle().Foreground(t.Story).Render("↑")
	case model.PriorityMedium:
		return t.Renderer.NewStyle().Foreground(t.InProgress).Render("→")
	case model.PriorityLow:
		return t.Renderer.NewStyle().Foreground(t.Secondary).Render("↓")
	default:
		return t.Renderer.NewStyle().Foreground(t.Subtext).Render("·")
	}
}
