// Package normalize maps heterogeneous source records onto the canonical
// model.BaseEntity shape. Epics, stories, tasks and projects arrive with
// slightly different field names (title vs name, epic_id vs epicId,
// snake_case vs camelCase timestamps); this package is the single
// canonicalization boundary, so nothing downstream ever sees a raw record.
package normalize

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/RobboC1980/AGF-sub000/pkg/model"
)

// SkipReport describes one record that could not be normalized. The batch
// continues past it; a single malformed record never aborts a refresh.
type SkipReport struct {
	Index int    // position in the input batch
	ID    string // record id if one could be extracted, else ""
	Err   error
}

// Result is the outcome of normalizing a batch.
type Result struct {
	Entities []model.BaseEntity
	Skipped  []SkipReport
}

// Field aliases, checked in order. First present key wins.
var (
	titleKeys    = []string{"title", "name"}
	descKeys     = []string{"description", "desc", "summary"}
	statusKeys   = []string{"status", "state"}
	priorityKeys = []string{"priority"}
	assigneeKeys = []string{"assignee_id", "assigneeId", "assignee"}
	parentKeys   = []string{"epic_id", "epicId", "project_id", "projectId", "parent_id", "parentId"}
	tagKeys      = []string{"tags", "labels"}
	createdKeys  = []string{"created_at", "createdAt", "created"}
	updatedKeys  = []string{"updated_at", "updatedAt", "updated"}
	dueKeys      = []string{"due_date", "dueDate", "target_date", "targetDate"}
	pointsKeys   = []string{"story_points", "storyPoints", "points", "estimate"}
	kindKeys     = []string{"kind", "type", "entity_type", "entityType"}
)

// Record normalizes one raw JSON object into a BaseEntity. kind is the
// caller's default (usually known from the endpoint the record came from);
// a kind field on the record itself takes precedence. Unknown status and
// priority values are preserved verbatim — presentation layers fall back to
// a default style instead of this package rejecting the record.
func Record(raw json.RawMessage, kind model.EntityKind) (model.BaseEntity, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return model.BaseEntity{}, fmt.Errorf("decode record: %w", err)
	}

	e := model.BaseEntity{
		ID:          stringField(m, "id"),
		Kind:        kind,
		Title:       firstString(m, titleKeys),
		Description: firstString(m, descKeys),
		Status:      firstString(m, statusKeys),
		Priority:    model.Priority(firstString(m, priorityKeys)),
		AssigneeID:  firstString(m, assigneeKeys),
		ParentID:    firstString(m, parentKeys),
		Tags:        firstTags(m, tagKeys),
		CreatedAt:   firstTime(m, createdKeys),
		UpdatedAt:   firstTime(m, updatedKeys),
		Points:      firstFloat(m, pointsKeys),
	}

	if k := firstString(m, kindKeys); k != "" {
		e.Kind = model.EntityKind(k)
	}
	if due := firstTime(m, dueKeys); !due.IsZero() {
		e.DueDate = &due
	}

	if err := e.Validate(); err != nil {
		return model.BaseEntity{}, err
	}
	return e, nil
}

// Batch normalizes a slice of raw records, skipping malformed ones and
// reporting each skip instead of failing the whole refresh.
func Batch(raws []json.RawMessage, kind model.EntityKind) Result {
	res := Result{Entities: make([]model.BaseEntity, 0, len(raws))}
	for i, raw := range raws {
		e, err := Record(raw, kind)
		if err != nil {
			res.Skipped = append(res.Skipped, SkipReport{Index: i, ID: rawID(raw), Err: err})
			continue
		}
		res.Entities = append(res.Entities, e)
	}
	return res
}

// rawID makes a best-effort attempt to pull an id out of a record that
// failed normalization, purely for the skip report.
func rawID(raw json.RawMessage) string {
	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ""
	}
	return probe.ID
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func firstString(m map[string]any, keys []string) string {
	for _, k := range keys {
		if v, ok := m[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func firstFloat(m map[string]any, keys []string) float64 {
	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			return v
		case string:
			// Some sources serialize points as strings.
			var f float64
			if _, err := fmt.Sscanf(v, "%g", &f); err == nil {
				return f
			}
		}
	}
	return 0
}

func firstTags(m map[string]any, keys []string) []string {
	for _, k := range keys {
		list, ok := m[k].([]any)
		if !ok {
			continue
		}
		tags := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				tags = append(tags, s)
			}
		}
		return tags
	}
	return nil
}

// timeLayouts accepted for timestamps, most specific first.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func firstTime(m map[string]any, keys []string) time.Time {
	for _, k := range keys {
		s, ok := m[k].(string)
		if !ok || s == "" {
			continue
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}
