package catalogs

import (
	"fmt"
	"maps"
	"sort"
	"sync"
)

// Brands is a concurrent safe map of brands keyed by tag.
type Brands struct {
	mu     sync.RWMutex
	brands map[string]*Brand
}

// NewBrands creates a new Brands map.
func NewBrands() *Brands {
	return &Brands{
		brands: make(map[string]*Brand),
	}
}

// Get returns a brand by tag and whether it exists.
func (b *Brands) Get(tag string) (*Brand, bool) {
	b.mu.RLock()
	brand, ok := b.brands[tag]
	b.mu.RUnlock()
	return brand, ok
}

// Set sets a brand by tag. Returns an error if brand is nil.
func (b *Brands) Set(tag string, brand *Brand) error {
	if brand == nil {
		return fmt.Errorf("brand cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.brands[tag] = brand
	return nil
}

// Add adds a brand, returning an error if its tag is already taken.
func (b *Brands) Add(brand *Brand) error {
	if brand == nil {
		return fmt.Errorf("brand cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.brands[brand.Tag]; exists {
		return fmt.Errorf("brand with tag %s already exists", brand.Tag)
	}

	b.brands[brand.Tag] = brand
	return nil
}

// Delete removes a brand by tag. Returns an error if the brand doesn't exist.
func (b *Brands) Delete(tag string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.brands[tag]; !exists {
		return fmt.Errorf("brand with tag %s not found", tag)
	}

	delete(b.brands, tag)
	return nil
}

// Exists checks if a brand exists without returning it.
func (b *Brands) Exists(tag string) bool {
	b.mu.RLock()
	_, exists := b.brands[tag]
	b.mu.RUnlock()
	return exists
}

// Len returns the number of brands.
func (b *Brands) Len() int {
	b.mu.RLock()
	length := len(b.brands)
	b.mu.RUnlock()
	return length
}

// List returns a slice of all brands ordered by tag for determinism.
func (b *Brands) List() []*Brand {
	b.mu.RLock()
	brands := make([]*Brand, 0, len(b.brands))
	for _, brand := range b.brands {
		brands = append(brands, brand)
	}
	b.mu.RUnlock()

	sort.Slice(brands, func(i, j int) bool { return brands[i].Tag < brands[j].Tag })
	return brands
}

// Map returns a copy of the underlying map.
func (b *Brands) Map() map[string]*Brand {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := make(map[string]*Brand, len(b.brands))
	maps.Copy(result, b.brands)
	return result
}

// ForEach applies a function to each brand. The function should not
// modify the brand. If the function returns false, iteration stops early.
func (b *Brands) ForEach(fn func(tag string, brand *Brand) bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for tag, brand := range b.brands {
		if !fn(tag, brand) {
			break
		}
	}
}

// Clear removes all brands.
func (b *Brands) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for k := range b.brands {
		delete(b.brands, k)
	}
}
