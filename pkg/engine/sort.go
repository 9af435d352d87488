package engine

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/RobboC1980/AGF-sub000/pkg/model"
)

// SortField selects the comparator.
type SortField string

const (
	SortTitle    SortField = "title"
	SortStatus   SortField = "status"
	SortPriority SortField = "priority"
	SortPoints   SortField = "points"
	SortUpdated  SortField = "updated"
)

// SortOrder flips the comparison sign uniformly across all fields.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// SortOptions pairs a field with a direction.
type SortOptions struct {
	By    SortField
	Order SortOrder
}

// DefaultSort is most-recently-touched first.
func DefaultSort() SortOptions {
	return SortOptions{By: SortUpdated, Order: OrderDesc}
}

// Sort returns a new ordered slice; the input is never mutated. The sort is
// stable, so equal-key entities keep the filter stage's relative order.
func Sort(entities []model.BaseEntity, opts SortOptions) []model.BaseEntity {
	out := make([]model.BaseEntity, len(entities))
	copy(out, entities)

	var titles *collate.Collator
	if opts.By == SortTitle {
		titles = collate.New(language.Und, collate.IgnoreCase)
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := compare(&out[i], &out[j], opts.By, titles)
		if opts.Order == OrderDesc {
			c = -c
		}
		return c < 0
	})
	return out
}

// compare orders a against b ascending for the given field. Missing points
// count as 0 and unknown priorities rank as 0, so malformed values sort to
// one end instead of erroring.
func compare(a, b *model.BaseEntity, field SortField, titles *collate.Collator) int {
	switch field {
	case SortTitle:
		return titles.CompareString(a.Title, b.Title)
	case SortStatus:
		return strings.Compare(a.Status, b.Status)
	case SortPriority:
		return a.Priority.Rank() - b.Priority.Rank()
	case SortPoints:
		switch {
		case a.Points < b.Points:
			return -1
		case a.Points > b.Points:
			return 1
		}
		return 0
	default: // SortUpdated
		at, bt := a.Touched(), b.Touched()
		switch {
		case at.Before(bt):
			return -1
		case at.After(bt):
			return 1
		}
		return 0
	}
}
