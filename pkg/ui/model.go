package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/RobboC1980/AGF-sub000/pkg/engine"
	"github.com/RobboC1980/AGF-sub000/pkg/model"
)

// Model is the root Bubble Tea model. It owns an engine.Controller and
// renders whatever the controller derives; all filter, sort, stats and
// selection decisions happen in the engine, never here.
type Model struct {
	ctrl *engine.Controller

	list        list.Model
	board       BoardModel
	searchInput textinput.Model
	detailVP    viewport.Model
	renderer    *glamour.TermRenderer
	theme       Theme

	searching  bool
	showDetail bool
	ready      bool
	width      int
	height     int

	statusMsg string
}

// NewModel builds the root model over an already-normalized collection.
func NewModel(entities []model.BaseEntity, currentUser string, theme Theme) Model {
	ctrl := engine.NewController(entities)
	if currentUser != "" {
		ctrl.SetCurrentUser(currentUser)
	}

	delegate := EntityDelegate{Theme: theme, Selection: ctrl.Selection()}
	l := list.New(nil, delegate, 0, 0)
	l.Title = ""
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false) // the engine's search facet is authoritative
	l.DisableQuitKeybindings()

	ti := textinput.New()
	ti.Placeholder = "search title, description, tags…"
	ti.CharLimit = 100
	ti.Prompt = "/ "
	ti.PromptStyle = theme.Renderer.NewStyle().Foreground(theme.Primary).Bold(true)

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(72),
	)

	m := Model{
		ctrl:        ctrl,
		list:        l,
		board:       NewBoardModel(nil, theme),
		searchInput: ti,
		detailVP:    viewport.New(40, 20),
		renderer:    renderer,
		theme:       theme,
	}
	m.syncViews()
	return m
}

// syncViews pushes the controller's derived output into the list and board.
func (m *Model) syncViews() {
	visible := m.ctrl.Entities()
	items := make([]list.Item, len(visible))
	for i := range visible {
		items[i] = EntityItem{Entity: visible[i]}
	}
	m.list.SetItems(items)
	m.board.SetEntities(visible)
}

// selectedEntity is the entity under the cursor in the active layout.
func (m *Model) selectedEntity() *model.BaseEntity {
	if m.ctrl.ViewMode() == engine.ViewBoard {
		return m.board.SelectedEntity()
	}
	if it, ok := m.list.SelectedItem().(EntityItem); ok {
		e := it.Entity
		return &e
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-7)
		m.detailVP.Width = msg.Width - 6
		m.detailVP.Height = msg.Height - 9
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""

		if m.searching {
			return m.handleSearchKeys(msg)
		}
		if m.showDetail {
			return m.handleDetailKeys(msg)
		}
		return m.handleKeys(msg)
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys routes keys while the search input has focus. The
// search facet updates live on every keystroke.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.ctrl.SetSearch("")
		m.syncViews()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.ctrl.SetSearch(m.searchInput.Value())
	m.syncViews()
	return m, cmd
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.showDetail = false
		return m, nil
	}
	var cmd tea.Cmd
	m.detailVP, cmd = m.detailVP.Update(msg)
	return m, cmd
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case "1":
		m.ctrl.SetTab(engine.TabAll)
	case "2":
		m.ctrl.SetTab(engine.TabMyItems)
	case "3":
		m.ctrl.SetTab(engine.TabOverdue)
	case "4":
		m.ctrl.SetTab(engine.TabHighPriority)

	case "f":
		m.ctrl.SetStatusFilter(m.nextStatus())
	case "p":
		m.ctrl.SetPriorityFilter(nextPriority(m.ctrl.Filters().Priority))
	case "o":
		m.ctrl.SetAssigneeFilter(m.nextAssignee())

	case "s":
		m.ctrl.SetSortField(nextSortField(m.ctrl.Sort().By))
	case "S":
		if m.ctrl.Sort().Order == engine.OrderDesc {
			m.ctrl.SetSortOrder(engine.OrderAsc)
		} else {
			m.ctrl.SetSortOrder(engine.OrderDesc)
		}

	case " ", "space":
		if e := m.selectedEntity(); e != nil {
			m.ctrl.ToggleSelect(e.ID)
		}
	case "a":
		m.ctrl.SelectAll()

	case "b":
		if m.ctrl.ViewMode() == engine.ViewBoard {
			m.ctrl.SetViewMode(engine.ViewList)
		} else {
			m.ctrl.SetViewMode(engine.ViewBoard)
		}

	case "y":
		m.yankSelection()
		return m, nil

	case "enter":
		if e := m.selectedEntity(); e != nil {
			m.openDetail(e)
		}
		return m, nil

	case "esc":
		m.searchInput.SetValue("")
		m.ctrl.ResetFilters()

	case "h", "left":
		if m.ctrl.ViewMode() == engine.ViewBoard {
			m.board.MoveLeft()
			return m, nil
		}
	case "l", "right":
		if m.ctrl.ViewMode() == engine.ViewBoard {
			m.board.MoveRight()
			return m, nil
		}
	case "j", "down":
		if m.ctrl.ViewMode() == engine.ViewBoard {
			m.board.MoveDown()
			return m, nil
		}
	case "k", "up":
		if m.ctrl.ViewMode() == engine.ViewBoard {
			m.board.MoveUp()
			return m, nil
		}
	}

	m.syncViews()

	var cmd tea.Cmd
	if m.ctrl.ViewMode() == engine.ViewList {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

// nextStatus cycles the status facet through "all" plus every status seen
// in the full collection, so the menu follows the data.
func (m *Model) nextStatus() string {
	stats := m.ctrl.Stats()
	values := make([]string, 0, len(stats.ByStatus)+1)
	for s := range stats.ByStatus {
		values = append(values, s)
	}
	sort.Strings(values)
	return cycle(append([]string{engine.FacetAll}, values...), m.ctrl.Filters().Status)
}

func (m *Model) nextAssignee() string {
	values := append([]string{engine.FacetAll, engine.AssigneeUnassigned}, m.ctrl.Assignees()...)
	return cycle(values, m.ctrl.Filters().Assignee)
}

func nextPriority(current string) string {
	return cycle([]string{
		engine.FacetAll,
		string(model.PriorityLow),
		string(model.PriorityMedium),
		string(model.PriorityHigh),
		string(model.PriorityCritical),
	}, current)
}

func nextSortField(current engine.SortField) engine.SortField {
	order := []engine.SortField{
		engine.SortUpdated, engine.SortTitle, engine.SortStatus,
		engine.SortPriority, engine.SortPoints,
	}
	for i, f := range order {
		if f == current {
			return order[(i+1)%len(order)]
		}
	}
	return engine.SortUpdated
}

// cycle returns the value after current in values, wrapping around.
func cycle(values []string, current string) string {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	if len(values) == 0 {
		return current
	}
	return values[0]
}

func (m *Model) yankSelection() {
	ids := m.ctrl.Selection().IDs()
	if len(ids) == 0 {
		if e := m.selectedEntity(); e != nil {
			ids = []string{e.ID}
		}
	}
	if len(ids) == 0 {
		return
	}
	if err := clipboard.WriteAll(strings.Join(ids, "\n")); err != nil {
		m.statusMsg = "clipboard unavailable"
		return
	}
	m.statusMsg = fmt.Sprintf("yanked %d id(s)", len(ids))
}

func (m *Model) openDetail(e *model.BaseEntity) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s — %s\n\n", e.ID, e.Title)
	fmt.Fprintf(&sb, "**%s** · %s priority · %s\n\n", e.Kind, e.Priority, e.Status)
	if e.AssigneeID != "" {
		fmt.Fprintf(&sb, "**Assignee:** @%s\n\n", e.AssigneeID)
	}
	if e.ParentID != "" {
		fmt.Fprintf(&sb, "**Parent:** %s\n\n", e.ParentID)
	}
	if len(e.Tags) > 0 {
		fmt.Fprintf(&sb, "**Tags:** %s\n\n", strings.Join(e.Tags, ", "))
	}
	if e.Points > 0 {
		fmt.Fprintf(&sb, "**Points:** %g\n\n", e.Points)
	}
	if e.DueDate != nil {
		fmt.Fprintf(&sb, "**Due:** %s\n\n", e.DueDate.Format("2006-01-02"))
	}
	if e.Description != "" {
		sb.WriteString("---\n\n")
		sb.WriteString(e.Description)
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\n---\n\n*Created %s · Updated %s*\n",
		formatTimeRel(e.CreatedAt), formatTimeRel(e.UpdatedAt))

	content := sb.String()
	if m.renderer != nil {
		if md, err := m.renderer.Render(content); err == nil {
			content = md
		}
	}
	m.detailVP.SetContent(content)
	m.detailVP.GotoTop()
	m.showDetail = true
}

func (m Model) View() string {
	if !m.ready {
		return "loading…"
	}
	t := m.theme

	header := m.headerView()
	filterLine := m.filterView()

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(filterLine) - 2

	var body string
	switch {
	case m.showDetail:
		body = t.Renderer.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1).
			Render(m.detailVP.View())
	case m.ctrl.ViewMode() == engine.ViewBoard:
		body = m.board.View(m.width, bodyHeight)
	default:
		body = m.list.View()
	}

	footer := m.footerView()
	return lipgloss.JoinVertical(lipgloss.Left, header, filterLine, body, footer)
}

func (m Model) headerView() string {
	t := m.theme
	stats := m.ctrl.Stats()

	title := t.Header.Render(" AGF ")
	counters := fmt.Sprintf(" %d items · %d overdue · %g/%g pts",
		stats.Total, stats.Overdue, stats.PointsDone, stats.PointsTotal)

	return lipgloss.JoinHorizontal(lipgloss.Center,
		title,
		t.Renderer.NewStyle().Foreground(t.Subtext).Render(counters))
}

func (m Model) filterView() string {
	t := m.theme
	f := m.ctrl.Filters()
	s := m.ctrl.Sort()

	var parts []string
	parts = append(parts, fmt.Sprintf("tab:%s", f.Tab))
	if f.Status != engine.FacetAll {
		parts = append(parts, "status:"+f.Status)
	}
	if f.Priority != engine.FacetAll {
		parts = append(parts, "prio:"+f.Priority)
	}
	if f.Assignee != engine.FacetAll {
		parts = append(parts, "assignee:"+f.Assignee)
	}
	parts = append(parts, fmt.Sprintf("sort:%s/%s", s.By, s.Order))
	if n := m.ctrl.Selection().Len(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}

	line := strings.Join(parts, "  ")
	if m.searching {
		line = m.searchInput.View()
	} else if f.Search != "" {
		line = fmt.Sprintf("/%s  %s", f.Search, line)
	}
	return t.Renderer.NewStyle().Foreground(t.Secondary).Render(" " + line)
}

func (m Model) footerView() string {
	t := m.theme
	if m.statusMsg != "" {
		return t.Renderer.NewStyle().Foreground(t.Primary).Render(" " + m.statusMsg)
	}
	help := " / search · 1-4 tabs · f/p/o facets · s/S sort · space/a select · b board · y yank · esc reset · q quit"
	return t.Renderer.NewStyle().Foreground(t.Muted).Render(help)
}
