package engine

import (
	"sort"
	"time"

	"github.com/RobboC1980/AGF-sub000/pkg/model"
)

// ViewMode is the layout a page surface renders the filtered entities in.
type ViewMode string

const (
	ViewList  ViewMode = "list"
	ViewBoard ViewMode = "board"
)

// Controller composes filter, sort, stats and selection behind one
// read/write contract. Each page surface owns an independent instance;
// everything runs synchronously within one state-update cycle, so there is
// no locking. Derived state is purely a function of the current options and
// the latest entity collection.
type Controller struct {
	entities []model.BaseEntity

	filters  FilterOptions
	sortOpts SortOptions
	viewMode ViewMode
	selected *Selection

	// Derived on every state change.
	visible []model.BaseEntity

	// clock feeds the overdue predicate; overridden in tests.
	clock func() time.Time
}

// NewController builds a controller over the given collection with default
// filters, default sort and list layout.
func NewController(entities []model.BaseEntity) *Controller {
	c := &Controller{
		filters:  DefaultFilters(),
		sortOpts: DefaultSort(),
		viewMode: ViewList,
		selected: NewSelection(),
		clock:    time.Now,
	}
	c.entities = entities
	c.recompute()
	return c
}

// recompute rebuilds the derived filtered-and-sorted view. Stats and
// assignees are not cached; they are recomputed from the full collection on
// read so they can never drift from it.
func (c *Controller) recompute() {
	now := c.clock()
	c.visible = Sort(Filter(c.entities, c.filters, now), c.sortOpts)
}

// visibleIDs returns the ids of the current filtered view, in view order.
func (c *Controller) visibleIDs() []string {
	ids := make([]string, len(c.visible))
	for i := range c.visible {
		ids[i] = c.visible[i].ID
	}
	return ids
}

// SetEntities replaces the whole collection (each refresh is a full
// replacement, never a delta). Selection is pruned to ids that still exist
// in the new filtered view.
func (c *Controller) SetEntities(entities []model.BaseEntity) {
	c.entities = entities
	c.recompute()
	c.selected.Prune(c.visibleIDs())
}

// Facet setters. Each one clears the selection unconditionally so a bulk
// action can never touch entities hidden by the new filter.

func (c *Controller) SetSearch(query string) {
	c.filters.Search = query
	c.selected.Clear()
	c.recompute()
}

func (c *Controller) SetStatusFilter(status string) {
	c.filters.Status = status
	c.selected.Clear()
	c.recompute()
}

func (c *Controller) SetPriorityFilter(priority string) {
	c.filters.Priority = priority
	c.selected.Clear()
	c.recompute()
}

func (c *Controller) SetAssigneeFilter(assignee string) {
	c.filters.Assignee = assignee
	c.selected.Clear()
	c.recompute()
}

func (c *Controller) SetTab(tab Tab) {
	c.filters.Tab = tab
	c.selected.Clear()
	c.recompute()
}

// SetCurrentUser sets the user the my-items tab resolves against.
func (c *Controller) SetCurrentUser(userID string) {
	c.filters.CurrentUserID = userID
	c.selected.Clear()
	c.recompute()
}

// Sort setters. Changing sort reorders the same subset, so the selection
// survives.

func (c *Controller) SetSortField(field SortField) {
	c.sortOpts.By = field
	c.recompute()
}

func (c *Controller) SetSortOrder(order SortOrder) {
	c.sortOpts.Order = order
	c.recompute()
}

// SetViewMode switches between list and board layout.
func (c *Controller) SetViewMode(mode ViewMode) {
	c.viewMode = mode
}

// ToggleSelect toggles one id in the selection.
func (c *Controller) ToggleSelect(id string) {
	c.selected.Toggle(id)
}

// SelectAll toggle-selects exactly the currently visible entities.
func (c *Controller) SelectAll() {
	c.selected.SelectAll(c.visibleIDs())
}

// ResetFilters restores every facet to its default without touching sort or
// view mode. The selection clears because the visible set changes.
func (c *Controller) ResetFilters() {
	user := c.filters.CurrentUserID
	c.filters = DefaultFilters()
	c.filters.CurrentUserID = user
	c.selected.Clear()
	c.recompute()
}

// ResetAll additionally restores the default sort, clears the selection and
// returns to the list layout.
func (c *Controller) ResetAll() {
	c.ResetFilters()
	c.sortOpts = DefaultSort()
	c.viewMode = ViewList
	c.recompute()
}

// Entities returns the filtered-and-sorted view. Callers must not mutate
// the returned slice.
func (c *Controller) Entities() []model.BaseEntity {
	return c.visible
}

// Stats aggregates over the full collection, independent of the active
// filter, so header counters stay steady while the user filters.
func (c *Controller) Stats() EntityStats {
	return ComputeStats(c.entities, c.clock())
}

// Assignees returns the unique assignee ids seen across the full
// collection, sorted, for populating filter menus.
func (c *Controller) Assignees() []string {
	seen := make(map[string]struct{})
	for i := range c.entities {
		if id := c.entities[i].AssigneeID; id != "" {
			seen[id] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Filters returns the current facet state.
func (c *Controller) Filters() FilterOptions {
	return c.filters
}

// Sort returns the current sort state.
func (c *Controller) Sort() SortOptions {
	return c.sortOpts
}

// ViewMode returns the current layout.
func (c *Controller) ViewMode() ViewMode {
	return c.viewMode
}

// Selection exposes the selection for reads; writes go through the
// controller so the visibility invariant holds.
func (c *Controller) Selection() *Selection {
	return c.selected
}
