// Package export renders a point-in-time report of the current view for
// sharing outside the terminal: the engine's stats header followed by the
// filtered entities, grouped by status.
package export

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/RobboC1980/AGF-sub000/pkg/engine"
	"github.com/RobboC1980/AGF-sub000/pkg/model"
)

// Markdown renders the report for the given view. entities is the
// controller's filtered-and-sorted output; stats covers the full
// collection, matching what the header counters show on screen.
func Markdown(entities []model.BaseEntity, stats engine.EntityStats, generatedAt time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Work Item Report\n\n")
	fmt.Fprintf(&sb, "_Generated %s_\n\n", generatedAt.Format("2006-01-02 15:04 MST"))

	fmt.Fprintf(&sb, "**%d items** · %d overdue · %g/%g points done\n\n",
		stats.Total, stats.Overdue, stats.PointsDone, stats.PointsTotal)

	statuses := make([]string, 0, len(stats.ByStatus))
	for s := range stats.ByStatus {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)
	for _, s := range statuses {
		fmt.Fprintf(&sb, "- %s: %d\n", s, stats.ByStatus[s])
	}
	sb.WriteString("\n")

	// Group the visible entities by status, keeping the engine's order
	// inside each group.
	groups := make(map[string][]model.BaseEntity)
	var groupOrder []string
	for _, e := range entities {
		if _, seen := groups[e.Status]; !seen {
			groupOrder = append(groupOrder, e.Status)
		}
		groups[e.Status] = append(groups[e.Status], e)
	}

	for _, status := range groupOrder {
		fmt.Fprintf(&sb, "## %s (%d)\n\n", status, len(groups[status]))
		for _, e := range groups[status] {
			fmt.Fprintf(&sb, "- **%s** %s", e.ID, e.Title)
			var chips []string
			if e.Priority != "" {
				chips = append(chips, string(e.Priority))
			}
			if e.AssigneeID != "" {
				chips = append(chips, "@"+e.AssigneeID)
			}
			if e.Points > 0 {
				chips = append(chips, fmt.Sprintf("%gpt", e.Points))
			}
			if e.DueDate != nil {
				chips = append(chips, "due "+e.DueDate.Format("2006-01-02"))
			}
			if len(chips) > 0 {
				fmt.Fprintf(&sb, " _(%s)_", strings.Join(chips, ", "))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// WriteMarkdown renders the report and writes it to path.
func WriteMarkdown(path string, entities []model.BaseEntity, stats engine.EntityStats) error {
	report := Markdown(entities, stats, time.Now())
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
