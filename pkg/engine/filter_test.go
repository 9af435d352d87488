package engine

import (
	"testing"
	"time"

	"github.com/RobboC1980/AGF-sub000/pkg/model"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func entity(id, title string, mut ...func(*model.BaseEntity)) model.BaseEntity {
	e := model.BaseEntity{
		ID:        id,
		Kind:      model.KindTask,
		Title:     title,
		Status:    "todo",
		Priority:  model.PriorityMedium,
		CreatedAt: testNow.Add(-72 * time.Hour),
		UpdatedAt: testNow.Add(-24 * time.Hour),
	}
	for _, m := range mut {
		m(&e)
	}
	return e
}

func due(offset time.Duration) func(*model.BaseEntity) {
	return func(e *model.BaseEntity) {
		d := testNow.Add(offset)
		e.DueDate = &d
	}
}

func ids(entities []model.BaseEntity) []string {
	out := make([]string, len(entities))
	for i := range entities {
		out[i] = entities[i].ID
	}
	return out
}

func sameIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilter_Search(t *testing.T) {
	entities := []model.BaseEntity{
		entity("s-1", "User Authentication System"),
		entity("s-2", "Dashboard"),
		entity("s-3", "Reporting", func(e *model.BaseEntity) { e.Description = "auth audit trail" }),
		entity("s-4", "Cleanup", func(e *model.BaseEntity) { e.Tags = []string{"auth", "debt"} }),
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"TitleMatch", "auth", []string{"s-1", "s-3", "s-4"}},
		{"CaseInsensitive", "AUTH", []string{"s-1", "s-3", "s-4"}},
		{"EmptyQueryPassesAll", "", []string{"s-1", "s-2", "s-3", "s-4"}},
		{"WhitespaceOnlyPassesAll", "   ", []string{"s-1", "s-2", "s-3", "s-4"}},
		{"NoMatch", "billing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultFilters()
			opts.Search = tt.query
			got := ids(Filter(entities, opts, testNow))
			if !sameIDs(got, tt.want...) {
				t.Errorf("Filter(search=%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilter_Facets(t *testing.T) {
	entities := []model.BaseEntity{
		entity("a", "one", func(e *model.BaseEntity) { e.Status = "done"; e.AssigneeID = "u-1" }),
		entity("b", "two", func(e *model.BaseEntity) { e.Priority = model.PriorityHigh }),
		entity("c", "three", func(e *model.BaseEntity) { e.Status = "done"; e.Priority = model.PriorityHigh; e.AssigneeID = "u-2" }),
	}

	tests := []struct {
		name string
		mut  func(*FilterOptions)
		want []string
	}{
		{"AllPasses", func(o *FilterOptions) {}, []string{"a", "b", "c"}},
		{"Status", func(o *FilterOptions) { o.Status = "done" }, []string{"a", "c"}},
		{"Priority", func(o *FilterOptions) { o.Priority = "high" }, []string{"b", "c"}},
		{"Assignee", func(o *FilterOptions) { o.Assignee = "u-1" }, []string{"a"}},
		{"Unassigned", func(o *FilterOptions) { o.Assignee = AssigneeUnassigned }, []string{"b"}},
		{"Conjunction", func(o *FilterOptions) { o.Status = "done"; o.Priority = "high" }, []string{"c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultFilters()
			tt.mut(&opts)
			got := ids(Filter(entities, opts, testNow))
			if !sameIDs(got, tt.want...) {
				t.Errorf("Filter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Tabs(t *testing.T) {
	entities := []model.BaseEntity{
		entity("mine", "assigned to me", func(e *model.BaseEntity) { e.AssigneeID = "u-1" }),
		entity("theirs", "assigned elsewhere", func(e *model.BaseEntity) { e.AssigneeID = "u-2" }),
		entity("late", "due yesterday", due(-24*time.Hour)),
		entity("soon", "due tomorrow", due(24*time.Hour)),
		entity("undated", "no due date"),
		entity("hot", "critical item", func(e *model.BaseEntity) { e.Priority = model.PriorityCritical }),
		entity("warm", "high item", func(e *model.BaseEntity) { e.Priority = model.PriorityHigh }),
	}

	tests := []struct {
		name string
		tab  Tab
		want []string
	}{
		{"MyItems", TabMyItems, []string{"mine"}},
		{"Overdue", TabOverdue, []string{"late"}},
		{"HighPriority", TabHighPriority, []string{"hot", "warm"}},
		{"All", TabAll, []string{"mine", "theirs", "late", "soon", "undated", "hot", "warm"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultFilters()
			opts.Tab = tt.tab
			opts.CurrentUserID = "u-1"
			got := ids(Filter(entities, opts, testNow))
			if !sameIDs(got, tt.want...) {
				t.Errorf("Filter(tab=%s) = %v, want %v", tt.tab, got, tt.want)
			}
		})
	}
}

// Subset law: the output is always a subset of the input by identity, with
// no duplicates, and idempotent under re-filtering.
func TestFilter_SubsetAndIdempotence(t *testing.T) {
	entities := []model.BaseEntity{
		entity("a", "User Authentication System", due(-24*time.Hour)),
		entity("b", "Dashboard", func(e *model.BaseEntity) { e.Priority = model.PriorityCritical }),
		entity("c", "Cleanup", func(e *model.BaseEntity) { e.AssigneeID = "u-1" }),
	}
	optsList := []FilterOptions{
		DefaultFilters(),
		{Search: "auth", Status: FacetAll, Priority: FacetAll, Assignee: FacetAll, Tab: TabAll},
		{Status: "todo", Priority: "critical", Assignee: FacetAll, Tab: TabAll},
		{Status: FacetAll, Priority: FacetAll, Assignee: AssigneeUnassigned, Tab: TabOverdue},
	}

	inputIDs := make(map[string]bool)
	for _, e := range entities {
		inputIDs[e.ID] = true
	}

	for _, opts := range optsList {
		once := Filter(entities, opts, testNow)

		seen := make(map[string]bool)
		for _, e := range once {
			if !inputIDs[e.ID] {
				t.Errorf("opts %+v: output id %s not present in input", opts, e.ID)
			}
			if seen[e.ID] {
				t.Errorf("opts %+v: duplicate id %s in output", opts, e.ID)
			}
			seen[e.ID] = true
		}

		twice := Filter(once, opts, testNow)
		if !sameIDs(ids(twice), ids(once)...) {
			t.Errorf("opts %+v: filter not idempotent: %v then %v", opts, ids(once), ids(twice))
		}
	}
}
