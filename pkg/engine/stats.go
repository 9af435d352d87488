package engine

import (
	"time"

	"github.com/RobboC1980/AGF-sub000/pkg/model"
)

// EntityStats are the header counters for a page surface. They are always
// computed over the FULL normalized collection, never the filtered view, so
// the numbers do not fluctuate as the user filters.
type EntityStats struct {
	Total       int            `json:"total"`
	ByStatus    map[string]int `json:"by_status"`
	Overdue     int            `json:"overdue"`
	PointsDone  float64        `json:"points_done"`
	PointsTotal float64        `json:"points_total"`
}

// ComputeStats aggregates counters in a single pass. The overdue counter
// uses the same strict before-now predicate as the overdue tab.
func ComputeStats(entities []model.BaseEntity, now time.Time) EntityStats {
	stats := EntityStats{
		Total:    len(entities),
		ByStatus: make(map[string]int),
	}
	for i := range entities {
		e := &entities[i]
		stats.ByStatus[e.Status]++
		if e.IsOverdue(now) {
			stats.Overdue++
		}
		stats.PointsTotal += e.Points
		if e.IsDone() {
			stats.PointsDone += e.Points
		}
	}
	return stats
}
