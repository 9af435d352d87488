package model

import (
	"testing"
	"time"
)

func TestEntityKind_IsValid(t *testing.T) {
	tests := []struct {
		name string
		kind EntityKind
		want bool
	}{
		{"Epic", KindEpic, true},
		{"Story", KindStory, true},
		{"Task", KindTask, true},
		{"Project", KindProject, true},
		{"Invalid", "milestone", false},
		{"Empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.IsValid(); got != tt.want {
				t.Errorf("EntityKind.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPriority_Rank(t *testing.T) {
	tests := []struct {
		name     string
		priority Priority
		want     int
	}{
		{"Critical", PriorityCritical, 4},
		{"High", PriorityHigh, 3},
		{"Medium", PriorityMedium, 2},
		{"Low", PriorityLow, 1},
		{"Unknown", "urgent", 0},
		{"Empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.priority.Rank(); got != tt.want {
				t.Errorf("Priority.Rank() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBaseEntity_IsDone(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   bool
	}{
		{"Done", StatusDone, true},
		{"Completed", StatusCompleted, true},
		{"Closed", StatusClosed, true},
		{"InProgress", "in_progress", false},
		{"Unknown", "shipped", false},
		{"Empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := BaseEntity{ID: "E-1", Title: "x", Status: tt.status}
			if got := e.IsDone(); got != tt.want {
				t.Errorf("IsDone() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBaseEntity_IsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	tests := []struct {
		name string
		due  *time.Time
		want bool
	}{
		{"PastDue", &yesterday, true},
		{"FutureDue", &tomorrow, false},
		{"ExactlyNow", &now, false}, // strict before, not before-or-equal
		{"NoDueDate", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := BaseEntity{ID: "E-1", Title: "x", DueDate: tt.due}
			if got := e.IsOverdue(now); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBaseEntity_Touched(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := created.Add(48 * time.Hour)

	e := BaseEntity{ID: "E-1", Title: "x", CreatedAt: created, UpdatedAt: updated}
	if got := e.Touched(); !got.Equal(updated) {
		t.Errorf("Touched() = %v, want UpdatedAt %v", got, updated)
	}

	e.UpdatedAt = time.Time{}
	if got := e.Touched(); !got.Equal(created) {
		t.Errorf("Touched() = %v, want CreatedAt fallback %v", got, created)
	}
}

func TestBaseEntity_Validate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		entity  BaseEntity
		wantErr bool
	}{
		{
			name: "Valid",
			entity: BaseEntity{
				ID:        "STORY-1",
				Kind:      KindStory,
				Title:     "User Authentication System",
				Status:    "in_progress",
				Priority:  PriorityHigh,
				CreatedAt: now,
				UpdatedAt: now,
			},
			wantErr: false,
		},
		{
			name:    "Empty ID",
			entity:  BaseEntity{Title: "Valid"},
			wantErr: true,
		},
		{
			name:    "Empty Title",
			entity:  BaseEntity{ID: "STORY-1"},
			wantErr: true,
		},
		{
			name: "Unknown status passes",
			entity: BaseEntity{
				ID:     "STORY-1",
				Title:  "Valid",
				Status: "totally-made-up",
			},
			wantErr: false,
		},
		{
			name: "UpdatedAt Before CreatedAt",
			entity: BaseEntity{
				ID:        "STORY-1",
				Title:     "Valid",
				CreatedAt: now,
				UpdatedAt: now.Add(-1 * time.Hour),
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entity.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
