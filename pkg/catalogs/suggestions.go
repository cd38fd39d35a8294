package catalogs

import (
	"sort"
	"sync"
)

// Suggestions is a concurrent safe store of suggested associations,
// grouped by the datasource record they were computed for. A suggestion
// run replaces a record's group wholesale; nothing is hand-edited.
type Suggestions struct {
	mu    sync.RWMutex
	byKey map[DatasourceKey][]SuggestedAssociation
}

// NewSuggestions creates a new Suggestions store.
func NewSuggestions() *Suggestions {
	return &Suggestions{
		byKey: make(map[DatasourceKey][]SuggestedAssociation),
	}
}

// Add appends a single suggestion. Used when rebuilding from disk.
func (s *Suggestions) Add(sa SuggestedAssociation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byKey[sa.Datasource] = append(s.byKey[sa.Datasource], sa)
}

// ReplaceFor replaces every suggestion for the given datasource with the
// supplied set. An empty or nil set clears the group.
func (s *Suggestions) ReplaceFor(key DatasourceKey, rows []SuggestedAssociation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(rows) == 0 {
		delete(s.byKey, key)
		return
	}
	s.byKey[key] = append([]SuggestedAssociation(nil), rows...)
}

// For returns the suggestions for a datasource, ordered by ascending
// certainty then brand tag.
func (s *Suggestions) For(key DatasourceKey) []SuggestedAssociation {
	s.mu.RLock()
	rows := append([]SuggestedAssociation(nil), s.byKey[key]...)
	s.mu.RUnlock()

	sortSuggestions(rows)
	return rows
}

// List returns every suggestion, ordered by datasource key, certainty,
// and brand tag.
func (s *Suggestions) List() []SuggestedAssociation {
	s.mu.RLock()
	var rows []SuggestedAssociation
	for _, group := range s.byKey {
		rows = append(rows, group...)
	}
	s.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Datasource != rows[j].Datasource {
			return rows[i].Datasource.String() < rows[j].Datasource.String()
		}
		if rows[i].Certainty != rows[j].Certainty {
			return rows[i].Certainty < rows[j].Certainty
		}
		return rows[i].BrandTag < rows[j].BrandTag
	})
	return rows
}

// Len returns the total number of suggestions.
func (s *Suggestions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, group := range s.byKey {
		n += len(group)
	}
	return n
}

// Clear removes all suggestions.
func (s *Suggestions) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.byKey {
		delete(s.byKey, k)
	}
}

// sortSuggestions orders rows by ascending certainty, ties by brand tag.
func sortSuggestions(rows []SuggestedAssociation) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Certainty != rows[j].Certainty {
			return rows[i].Certainty < rows[j].Certainty
		}
		return rows[i].BrandTag < rows[j].BrandTag
	})
}
