package bankmap

import (
	"reflect"
	stdsync "sync"

	"github.com/agentstation/utc"

	"github.com/greenfolio/bankmap/pkg/catalogs"
)

// Hook function types for brand events
type (
	// BrandAddedHook is called when a brand is added to the catalog
	BrandAddedHook func(brand catalogs.Brand)

	// BrandUpdatedHook is called when a brand is updated in the catalog
	BrandUpdatedHook func(old, new catalogs.Brand)
)

// hooks manages event callbacks for catalog changes
type hooks struct {
	mu             stdsync.RWMutex
	onBrandAdded   []BrandAddedHook
	onBrandUpdated []BrandUpdatedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnBrandAdded registers a callback for when brands are added
func (h *hooks) OnBrandAdded(fn BrandAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onBrandAdded = append(h.onBrandAdded, fn)
}

// OnBrandUpdated registers a callback for when brands are updated
func (h *hooks) OnBrandUpdated(fn BrandUpdatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onBrandUpdated = append(h.onBrandUpdated, fn)
}

// triggerBrandChanges compares pre- and post-sync brand sets and fires
// the matching hooks. Timestamps churn on every refresh, so comparison
// ignores them and looks at the content fields only.
func (h *hooks) triggerBrandChanges(before, after *catalogs.Brands) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.onBrandAdded) == 0 && len(h.onBrandUpdated) == 0 {
		return
	}

	old := before.Map()
	for _, brand := range after.List() {
		prev, existed := old[brand.Tag]
		if !existed {
			for _, hook := range h.onBrandAdded {
				hook(brand.Clone())
			}
			continue
		}
		if !equalBrands(*prev, *brand) {
			for _, hook := range h.onBrandUpdated {
				hook(prev.Clone(), brand.Clone())
			}
		}
	}
}

// equalBrands compares two brands ignoring their timestamps.
func equalBrands(a, b catalogs.Brand) bool {
	a.CreatedAt, a.UpdatedAt = utc.Time{}, utc.Time{}
	b.CreatedAt, b.UpdatedAt = utc.Time{}, utc.Time{}
	return reflect.DeepEqual(a, b)
}
