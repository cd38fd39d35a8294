package catalogs

import (
	"fmt"
	"sort"
	"sync"
)

// Datasources is a concurrent safe map of datasource records keyed by
// their natural (provider, source_id) key.
type Datasources struct {
	mu      sync.RWMutex
	records map[DatasourceKey]*Datasource
}

// NewDatasources creates a new Datasources map.
func NewDatasources() *Datasources {
	return &Datasources{
		records: make(map[DatasourceKey]*Datasource),
	}
}

// Get returns a datasource by key and whether it exists.
func (d *Datasources) Get(key DatasourceKey) (*Datasource, bool) {
	d.mu.RLock()
	ds, ok := d.records[key]
	d.mu.RUnlock()
	return ds, ok
}

// Set sets a datasource by key. Returns an error if ds is nil.
func (d *Datasources) Set(key DatasourceKey, ds *Datasource) error {
	if ds == nil {
		return fmt.Errorf("datasource cannot be nil")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.records[key] = ds
	return nil
}

// Delete removes a datasource by key. Returns an error if it doesn't exist.
func (d *Datasources) Delete(key DatasourceKey) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.records[key]; !exists {
		return fmt.Errorf("datasource %s not found", key)
	}

	delete(d.records, key)
	return nil
}

// Exists checks if a datasource exists without returning it.
func (d *Datasources) Exists(key DatasourceKey) bool {
	d.mu.RLock()
	_, exists := d.records[key]
	d.mu.RUnlock()
	return exists
}

// Len returns the number of datasource records.
func (d *Datasources) Len() int {
	d.mu.RLock()
	length := len(d.records)
	d.mu.RUnlock()
	return length
}

// List returns all datasource records ordered by key for determinism.
func (d *Datasources) List() []*Datasource {
	d.mu.RLock()
	records := make([]*Datasource, 0, len(d.records))
	for _, ds := range d.records {
		records = append(records, ds)
	}
	d.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		return records[i].Key().String() < records[j].Key().String()
	})
	return records
}

// ByProvider returns all records of one concrete provider type, ordered
// by source ID.
func (d *Datasources) ByProvider(p Provider) []*Datasource {
	d.mu.RLock()
	var records []*Datasource
	for _, ds := range d.records {
		if ds.Provider == p {
			records = append(records, ds)
		}
	}
	d.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool { return records[i].SourceID < records[j].SourceID })
	return records
}

// ByBrand returns all records linked to the given brand tag, ordered by key.
func (d *Datasources) ByBrand(tag string) []*Datasource {
	d.mu.RLock()
	var records []*Datasource
	for _, ds := range d.records {
		if ds.LinkedTo(tag) {
			records = append(records, ds)
		}
	}
	d.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		return records[i].Key().String() < records[j].Key().String()
	})
	return records
}

// ForEach applies a function to each datasource. If the function returns
// false, iteration stops early.
func (d *Datasources) ForEach(fn func(key DatasourceKey, ds *Datasource) bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for key, ds := range d.records {
		if !fn(key, ds) {
			break
		}
	}
}

// Clear removes all datasource records.
func (d *Datasources) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for k := range d.records {
		delete(d.records, k)
	}
}
