package engine

import "sort"

// Selection tracks the set of selected entity ids, scoped to the currently
// visible subset. The Controller clears it whenever a filter facet changes,
// so bulk actions never target items the user can no longer see.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle adds the id if absent, removes it if present.
func (s *Selection) Toggle(id string) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// SelectAll is a toggle-all over the visible ids: if everything visible is
// already selected it clears, otherwise it selects exactly the visible set
// (not additive, and never the full unfiltered collection).
func (s *Selection) SelectAll(visible []string) {
	if len(visible) > 0 && len(s.ids) == len(visible) {
		all := true
		for _, id := range visible {
			if _, ok := s.ids[id]; !ok {
				all = false
				break
			}
		}
		if all {
			s.Clear()
			return
		}
	}
	s.ids = make(map[string]struct{}, len(visible))
	for _, id := range visible {
		s.ids[id] = struct{}{}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}

// Prune drops any selected id not in keep.
func (s *Selection) Prune(keep []string) {
	allowed := make(map[string]struct{}, len(keep))
	for _, id := range keep {
		allowed[id] = struct{}{}
	}
	for id := range s.ids {
		if _, ok := allowed[id]; !ok {
			delete(s.ids, id)
		}
	}
}

// Has reports whether id is selected.
func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in sorted order for deterministic output.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
