package catalogs

import (
	"fmt"
	"sort"
	"sync"
)

// Commentaries is a concurrent safe map of commentaries keyed 1:1 by
// brand tag.
type Commentaries struct {
	mu      sync.RWMutex
	records map[string]*Commentary
}

// NewCommentaries creates a new Commentaries map.
func NewCommentaries() *Commentaries {
	return &Commentaries{
		records: make(map[string]*Commentary),
	}
}

// Get returns the commentary for a brand tag and whether it exists.
func (c *Commentaries) Get(brandTag string) (*Commentary, bool) {
	c.mu.RLock()
	rec, ok := c.records[brandTag]
	c.mu.RUnlock()
	return rec, ok
}

// Set sets the commentary for a brand tag. Returns an error if rec is nil.
func (c *Commentaries) Set(brandTag string, rec *Commentary) error {
	if rec == nil {
		return fmt.Errorf("commentary cannot be nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[brandTag] = rec
	return nil
}

// Delete removes the commentary for a brand tag.
func (c *Commentaries) Delete(brandTag string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.records[brandTag]; !exists {
		return fmt.Errorf("commentary for brand %s not found", brandTag)
	}

	delete(c.records, brandTag)
	return nil
}

// Len returns the number of commentaries.
func (c *Commentaries) Len() int {
	c.mu.RLock()
	length := len(c.records)
	c.mu.RUnlock()
	return length
}

// List returns all commentaries ordered by brand tag.
func (c *Commentaries) List() []*Commentary {
	c.mu.RLock()
	records := make([]*Commentary, 0, len(c.records))
	for _, rec := range c.records {
		records = append(records, rec)
	}
	c.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool { return records[i].BrandTag < records[j].BrandTag })
	return records
}

// Clear removes all commentaries.
func (c *Commentaries) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.records {
		delete(c.records, k)
	}
}
