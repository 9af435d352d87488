package model

import (
	"fmt"
	"time"
)

// EntityKind identifies which kind of work item a record came from.
type EntityKind string

const (
	KindEpic    EntityKind = "epic"
	KindStory   EntityKind = "story"
	KindTask    EntityKind = "task"
	KindProject EntityKind = "project"
)

// IsValid reports whether the kind is one of the four known kinds.
func (k EntityKind) IsValid() bool {
	switch k {
	case KindEpic, KindStory, KindTask, KindProject:
		return true
	}
	return false
}

// Priority is the urgency label carried by an entity. The engine treats it
// as an opaque string except for ranking; unknown values rank as 0 rather
// than erroring so records from newer servers still render.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Rank maps a priority to its sortable weight. Higher is more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Statuses an entity can carry. The exact set varies per entity kind and
// per server version, so status is NOT validated for membership — these
// constants only name the values the engine itself branches on.
const (
	StatusDone      = "done"
	StatusCompleted = "completed"
	StatusClosed    = "closed"
)

// BaseEntity is the canonical shape every source record normalizes to.
// Epics, stories, tasks and projects all flow through the same filter,
// sort and stats code once in this form.
type BaseEntity struct {
	ID          string     `json:"id"`
	Kind        EntityKind `json:"kind"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    Priority   `json:"priority"`
	AssigneeID  string     `json:"assignee_id,omitempty"`
	ParentID    string     `json:"parent_id,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Points      float64    `json:"points,omitempty"`
}

// IsDone reports whether the entity's status counts as finished for the
// purpose of completed-points accounting.
func (e *BaseEntity) IsDone() bool {
	switch e.Status {
	case StatusDone, StatusCompleted, StatusClosed:
		return true
	}
	return false
}

// IsOverdue reports whether the entity has a due date strictly before now.
// Entities without a due date are never overdue. This is the single overdue
// predicate shared by the overdue tab and the stats counter.
func (e *BaseEntity) IsOverdue(now time.Time) bool {
	return e.DueDate != nil && e.DueDate.Before(now)
}

// Touched returns the best recency signal for the entity: UpdatedAt when
// set, otherwise CreatedAt.
func (e *BaseEntity) Touched() time.Time {
	if !e.UpdatedAt.IsZero() {
		return e.UpdatedAt
	}
	return e.CreatedAt
}

// Validate checks the structural invariants a record must satisfy before it
// enters the engine. Status and priority membership are deliberately not
// checked; unknown values degrade downstream instead of failing here.
func (e *BaseEntity) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("entity has no id")
	}
	if e.Title == "" {
		return fmt.Errorf("entity %s has no title", e.ID)
	}
	if !e.CreatedAt.IsZero() && !e.UpdatedAt.IsZero() && e.UpdatedAt.Before(e.CreatedAt) {
		return fmt.Errorf("entity %s updated_at precedes created_at", e.ID)
	}
	return nil
}
