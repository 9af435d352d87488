package engine

import (
	"testing"
	"time"

	"github.com/RobboC1980/AGF-sub000/pkg/model"
)

func TestSort_PriorityDesc(t *testing.T) {
	entities := []model.BaseEntity{
		entity("h", "high", func(e *model.BaseEntity) { e.Priority = model.PriorityHigh }),
		entity("c", "critical", func(e *model.BaseEntity) { e.Priority = model.PriorityCritical }),
		entity("l", "low", func(e *model.BaseEntity) { e.Priority = model.PriorityLow }),
	}

	got := ids(Sort(entities, SortOptions{By: SortPriority, Order: OrderDesc}))
	if !sameIDs(got, "c", "h", "l") {
		t.Errorf("Sort(priority desc) = %v, want [c h l]", got)
	}

	got = ids(Sort(entities, SortOptions{By: SortPriority, Order: OrderAsc}))
	if !sameIDs(got, "l", "h", "c") {
		t.Errorf("Sort(priority asc) = %v, want [l h c]", got)
	}
}

func TestSort_UnknownPriorityRanksLast(t *testing.T) {
	entities := []model.BaseEntity{
		entity("x", "mystery", func(e *model.BaseEntity) { e.Priority = "sev0" }),
		entity("l", "low", func(e *model.BaseEntity) { e.Priority = model.PriorityLow }),
	}

	got := ids(Sort(entities, SortOptions{By: SortPriority, Order: OrderDesc}))
	if !sameIDs(got, "l", "x") {
		t.Errorf("Sort(priority desc) = %v, want unknown priority ranked below low", got)
	}
}

func TestSort_Title(t *testing.T) {
	entities := []model.BaseEntity{
		entity("b", "banana"),
		entity("A", "Apple"),
		entity("c", "cherry"),
	}

	got := ids(Sort(entities, SortOptions{By: SortTitle, Order: OrderAsc}))
	if !sameIDs(got, "A", "b", "c") {
		t.Errorf("Sort(title asc) = %v, want case-insensitive [A b c]", got)
	}
}

func TestSort_Points(t *testing.T) {
	entities := []model.BaseEntity{
		entity("five", "a", func(e *model.BaseEntity) { e.Points = 5 }),
		entity("none", "b"), // missing points treated as 0
		entity("eight", "c", func(e *model.BaseEntity) { e.Points = 8 }),
	}

	got := ids(Sort(entities, SortOptions{By: SortPoints, Order: OrderDesc}))
	if !sameIDs(got, "eight", "five", "none") {
		t.Errorf("Sort(points desc) = %v, want [eight five none]", got)
	}
}

func TestSort_UpdatedFallsBackToCreated(t *testing.T) {
	entities := []model.BaseEntity{
		entity("old", "a", func(e *model.BaseEntity) {
			e.UpdatedAt = time.Time{}
			e.CreatedAt = testNow.Add(-100 * time.Hour)
		}),
		entity("fresh", "b", func(e *model.BaseEntity) { e.UpdatedAt = testNow.Add(-1 * time.Hour) }),
	}

	got := ids(Sort(entities, DefaultSort()))
	if !sameIDs(got, "fresh", "old") {
		t.Errorf("Sort(updated desc) = %v, want [fresh old]", got)
	}
}

// Equal-key entities must retain the pre-sort relative order.
func TestSort_Stability(t *testing.T) {
	entities := []model.BaseEntity{
		entity("first", "same", func(e *model.BaseEntity) { e.Points = 3 }),
		entity("second", "same", func(e *model.BaseEntity) { e.Points = 3 }),
		entity("third", "same", func(e *model.BaseEntity) { e.Points = 3 }),
	}

	for _, order := range []SortOrder{OrderAsc, OrderDesc} {
		got := ids(Sort(entities, SortOptions{By: SortPoints, Order: order}))
		if !sameIDs(got, "first", "second", "third") {
			t.Errorf("Sort(points %s) = %v, equal keys must keep input order", order, got)
		}
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	entities := []model.BaseEntity{
		entity("b", "banana"),
		entity("a", "apple"),
	}

	_ = Sort(entities, SortOptions{By: SortTitle, Order: OrderAsc})
	if !sameIDs(ids(entities), "b", "a") {
		t.Errorf("input reordered to %v; Sort must not mutate its input", ids(entities))
	}
}
