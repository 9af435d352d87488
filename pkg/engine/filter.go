// Package engine is the shared filtering, sorting and statistics core for
// work-item views. Every page surface (epics, stories, tasks, projects)
// feeds its normalized entities through the same pipeline instead of
// re-implementing predicate chains per page.
package engine

import (
	"strings"
	"time"

	"github.com/RobboC1980/AGF-sub000/pkg/model"
)

// FacetAll is the sentinel value meaning a facet applies no restriction.
const FacetAll = "all"

// AssigneeUnassigned selects entities with no assignee.
const AssigneeUnassigned = "unassigned"

// Tab is a named view scope layered on top of the facet filters.
type Tab string

const (
	TabAll          Tab = "all"
	TabMyItems      Tab = "my-items"
	TabOverdue      Tab = "overdue"
	TabHighPriority Tab = "high-priority"
)

// FilterOptions holds one value per facet. Facets combine with AND
// semantics; each is either FacetAll (pass) or an exact-match predicate.
type FilterOptions struct {
	Search        string
	Status        string
	Priority      string
	Assignee      string
	Tab           Tab
	CurrentUserID string
}

// DefaultFilters returns the open state: every facet passing.
func DefaultFilters() FilterOptions {
	return FilterOptions{
		Status:   FacetAll,
		Priority: FacetAll,
		Assignee: FacetAll,
		Tab:      TabAll,
	}
}

// Filter returns the subset of entities passing every facet, in input
// order. It never mutates, duplicates or invents entities; sorting is a
// separate stage. now feeds the overdue tab's strict before-now check and
// is re-evaluated fresh by the caller on each recomputation.
func Filter(entities []model.BaseEntity, opts FilterOptions, now time.Time) []model.BaseEntity {
	query := strings.ToLower(strings.TrimSpace(opts.Search))

	out := make([]model.BaseEntity, 0, len(entities))
	for i := range entities {
		e := &entities[i]
		if !matchesSearch(e, query) {
			continue
		}
		if opts.Status != "" && opts.Status != FacetAll && e.Status != opts.Status {
			continue
		}
		if opts.Priority != "" && opts.Priority != FacetAll && string(e.Priority) != opts.Priority {
			continue
		}
		if !matchesAssignee(e, opts.Assignee) {
			continue
		}
		if !matchesTab(e, opts, now) {
			continue
		}
		out = append(out, *e)
	}
	return out
}

// matchesSearch is a case-insensitive substring match over title,
// description and each tag. An empty query always passes.
func matchesSearch(e *model.BaseEntity, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(e.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(e.Description), query) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func matchesAssignee(e *model.BaseEntity, assignee string) bool {
	switch assignee {
	case "", FacetAll:
		return true
	case AssigneeUnassigned:
		return e.AssigneeID == ""
	default:
		return e.AssigneeID == assignee
	}
}

func matchesTab(e *model.BaseEntity, opts FilterOptions, now time.Time) bool {
	switch opts.Tab {
	case TabMyItems:
		return e.AssigneeID != "" && e.AssigneeID == opts.CurrentUserID
	case TabOverdue:
		return e.IsOverdue(now)
	case TabHighPriority:
		return e.Priority == model.PriorityHigh || e.Priority == model.PriorityCritical
	default: // TabAll or unset
		return true
	}
}
