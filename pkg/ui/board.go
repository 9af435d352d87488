package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/RobboC1980/AGF-sub000/pkg/model"
)

// BoardModel is the kanban layout: the controller's filtered-and-sorted
// output bucketed into four status-group columns. The board never filters
// or sorts on its own; it renders exactly what the engine hands it.
type BoardModel struct {
	columns     [4][]model.BaseEntity
	activeCols  []int  // indices of non-empty columns, for navigation
	focusedCol  int    // index into activeCols
	selectedRow [4]int // per-column cursor
	theme       Theme
}

// Column indices.
const (
	colTodo = iota
	colInProgress
	colBlocked
	colDone
)

var columnTitles = [4]string{"TODO", "IN PROGRESS", "BLOCKED", "DONE"}
var columnEmoji = [4]string{"📋", "🔄", "🚫", "✅"}

func columnIndex(status string) int {
	switch statusGroup(status) {
	case "in_progress":
		return colInProgress
	case "blocked":
		return colBlocked
	case "done":
		return colDone
	default:
		return colTodo
	}
}

// NewBoardModel creates a board over the given entities.
func NewBoardModel(entities []model.BaseEntity, theme Theme) BoardModel {
	b := BoardModel{theme: theme}
	b.SetEntities(entities)
	return b
}

// SetEntities replaces the board's data, typically after the controller
// recomputes. Column order within a bucket is the engine's sort order.
func (b *BoardModel) SetEntities(entities []model.BaseEntity) {
	var cols [4][]model.BaseEntity
	for _, e := range entities {
		idx := columnIndex(e.Status)
		cols[idx] = append(cols[idx], e)
	}
	b.columns = cols

	// Sanitize cursors against the new column sizes.
	for i := 0; i < 4; i++ {
		if b.selectedRow[i] >= len(b.columns[i]) {
			if len(b.columns[i]) > 0 {
				b.selectedRow[i] = len(b.columns[i]) - 1
			} else {
				b.selectedRow[i] = 0
			}
		}
	}
	b.updateActiveColumns()
}

// updateActiveColumns rebuilds the list of non-empty column indices.
func (b *BoardModel) updateActiveColumns() {
	b.activeCols = nil
	for i := 0; i < 4; i++ {
		if len(b.columns[i]) > 0 {
			b.activeCols = append(b.activeCols, i)
		}
	}
	if len(b.activeCols) == 0 {
		b.activeCols = []int{colTodo, colInProgress, colBlocked, colDone}
	}
	if b.focusedCol >= len(b.activeCols) {
		b.focusedCol = len(b.activeCols) - 1
	}
	if b.focusedCol < 0 {
		b.focusedCol = 0
	}
}

func (b *BoardModel) actualFocusedCol() int {
	if len(b.activeCols) == 0 {
		return 0
	}
	return b.activeCols[b.focusedCol]
}

// Navigation.

func (b *BoardModel) MoveDown() {
	col := b.actualFocusedCol()
	if count := len(b.columns[col]); count > 0 && b.selectedRow[col] < count-1 {
		b.selectedRow[col]++
	}
}

func (b *BoardModel) MoveUp() {
	col := b.actualFocusedCol()
	if b.selectedRow[col] > 0 {
		b.selectedRow[col]--
	}
}

func (b *BoardModel) MoveRight() {
	if b.focusedCol < len(b.activeCols)-1 {
		b.focusedCol++
	}
}

func (b *BoardModel) MoveLeft() {
	if b.focusedCol > 0 {
		b.focusedCol--
	}
}

// SelectedEntity returns the entity under the cursor, or nil.
func (b *BoardModel) SelectedEntity() *model.BaseEntity {
	col := b.actualFocusedCol()
	cells := b.columns[col]
	row := b.selectedRow[col]
	if len(cells) > 0 && row < len(cells) {
		return &cells[row]
	}
	return nil
}

// ColumnCount returns the number of entities in a column.
func (b *BoardModel) ColumnCount(col int) int {
	if col >= 0 && col < 4 {
		return len(b.columns[col])
	}
	return 0
}

// TotalCount returns the number of entities across all columns.
func (b *BoardModel) TotalCount() int {
	total := 0
	for i := 0; i < 4; i++ {
		total += len(b.columns[i])
	}
	return total
}

// View renders the board with adaptive column widths.
func (b BoardModel) View(width, height int) string {
	t := b.theme

	numCols := len(b.activeCols)
	if numCols == 0 {
		return t.Renderer.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(t.Secondary).
			Render("Nothing matches the current filters")
	}

	minColWidth := 26
	gaps := numCols - 1
	availableWidth := width - (gaps * 2)
	baseWidth := availableWidth / numCols
	if baseWidth < minColWidth {
		baseWidth = minColWidth
	}

	colHeight := height - 4
	if colHeight < 8 {
		colHeight = 8
	}

	columnColors := [4]lipgloss.AdaptiveColor{t.Todo, t.InProgress, t.Blocked, t.Done}

	var renderedCols []string
	for i, colIdx := range b.activeCols {
		isFocused := b.focusedCol == i
		entities := b.columns[colIdx]
		count := len(entities)

		headerText := fmt.Sprintf("%s %s (%d)", columnEmoji[colIdx], columnTitles[colIdx], count)
		headerStyle := t.Renderer.NewStyle().
			Width(baseWidth).
			Align(lipgloss.Center).
			Bold(true).
			Padding(0, 1)
		if isFocused {
			headerStyle = headerStyle.
				Background(columnColors[colIdx]).
				Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1a1a1a"})
		} else {
			headerStyle = headerStyle.
				Background(lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#2a2a2a"}).
				Foreground(columnColors[colIdx])
		}
		header := headerStyle.Render(headerText)

		// Cards are 3 content lines plus border; 5 lines is a safe average.
		cardHeight := 5
		visibleCards := (colHeight - 1) / cardHeight
		if visibleCards < 1 {
			visibleCards = 1
		}

		sel := b.selectedRow[colIdx]
		if sel >= count && count > 0 {
			sel = count - 1
		}

		start := 0
		if sel >= visibleCards {
			start = sel - visibleCards + 1
		}
		end := start + visibleCards
		if end > count {
			end = count
		}

		var cards []string
		for row := start; row < end; row++ {
			isSelected := isFocused && row == sel
			cards = append(cards, b.renderCard(entities[row], baseWidth-4, isSelected))
		}

		if count == 0 {
			emptyStyle := t.Renderer.NewStyle().
				Width(baseWidth-4).
				Height(colHeight-2).
				Align(lipgloss.Center, lipgloss.Center).
				Foreground(t.Secondary).
				Italic(true)
			cards = append(cards, emptyStyle.Render("(empty)"))
		}

		if count > visibleCards {
			scrollInfo := fmt.Sprintf("↕ %d/%d", sel+1, count)
			scrollStyle := t.Renderer.NewStyle().
				Width(baseWidth - 4).
				Align(lipgloss.Center).
				Foreground(t.Secondary).
				Italic(true)
			cards = append(cards, scrollStyle.Render(scrollInfo))
		}

		content := lipgloss.JoinVertical(lipgloss.Left, cards...)

		colStyle := t.Renderer.NewStyle().
			Width(baseWidth).
			Height(colHeight).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())
		if isFocused {
			colStyle = colStyle.BorderForeground(columnColors[colIdx])
		} else {
			colStyle = colStyle.BorderForeground(t.Secondary)
		}

		renderedCols = append(renderedCols, lipgloss.JoinVertical(lipgloss.Center, header, colStyle.Render(content)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, renderedCols...)
}

// renderCard draws one entity card: kind+priority+id, title, metadata.
func (b BoardModel) renderCard(e model.BaseEntity, width int, selected bool) string {
	t := b.theme

	cardStyle := t.Renderer.NewStyle().
		Width(width).
		Padding(0, 1).
		MarginBottom(1).
		Border(lipgloss.RoundedBorder())
	if selected {
		cardStyle = cardStyle.
			Background(t.Highlight).
			BorderForeground(t.Primary)
	} else {
		cardStyle = cardStyle.BorderForeground(t.Border)
	}

	kindIcon, kindColor := t.GetKindIcon(e.Kind)
	prio := t.GetPriorityIcon(e.Priority)

	maxIDLen := width - 8
	if maxIDLen < 6 {
		maxIDLen = 6
	}
	line1 := fmt.Sprintf("%s %s %s",
		t.Renderer.NewStyle().Foreground(kindColor).Render(kindIcon),
		prio,
		t.Renderer.NewStyle().Bold(true).Foreground(t.Secondary).Render(truncateRunes(e.ID, maxIDLen, "…")),
	)

	titleWidth := width - 2
	if titleWidth < 10 {
		titleWidth = 10
	}
	titleStyle := t.Renderer.NewStyle()
	if selected {
		titleStyle = titleStyle.Foreground(t.Primary).Bold(true)
	} else {
		titleStyle = titleStyle.Foreground(t.Base.GetForeground())
	}
	line2 := titleStyle.Render(truncateRunes(e.Title, titleWidth, "…"))

	var meta []string
	if e.AssigneeID != "" {
		meta = append(meta, t.Renderer.NewStyle().
			Foreground(t.Secondary).
			Render("@"+truncateRunes(e.AssigneeID, 8, "…")))
	}
	if e.Points > 0 {
		meta = append(meta, t.Renderer.NewStyle().
			Foreground(t.Story).
			Render(fmt.Sprintf("%gpt", e.Points)))
	}
	if e.DueDate != nil {
		dueStyle := t.Renderer.NewStyle().Foreground(t.Muted)
		if e.IsOverdue(time.Now()) {
			dueStyle = t.Renderer.NewStyle().Foreground(t.Danger).Bold(true)
		}
		meta = append(meta, dueStyle.Render("due "+e.DueDate.Format("Jan 2")))
	}
	if len(e.Tags) > 0 {
		tagText := truncateRunes(e.Tags[0], 8, "")
		if len(e.Tags) > 1 {
			tagText += fmt.Sprintf("+%d", len(e.Tags)-1)
		}
		meta = append(meta, t.Renderer.NewStyle().Foreground(t.InProgress).Render(tagText))
	}

	line3 := ""
	if len(meta) > 0 {
		line3 = strings.Join(meta, " ")
	} else {
		line3 = t.Renderer.NewStyle().
			Foreground(t.Muted).
			Italic(true).
			Render(formatTimeRel(e.Touched()))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, line1, line2, line3))
}
