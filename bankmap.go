// Package bankmap is the back-office engine behind the bank catalog: it
// ingests institution records from external providers, reconciles them
// into canonical brands, suggests likely associations for staff review,
// and resolves editorial ratings through brand inheritance.
package bankmap

import (
	"context"
	stdsync "sync"

	"github.com/greenfolio/bankmap/pkg/catalogs"
	"github.com/greenfolio/bankmap/pkg/errors"
	"github.com/greenfolio/bankmap/pkg/rating"
	"github.com/greenfolio/bankmap/pkg/suggest"
)

// Bankmap manages a catalog with provider synchronization and event hooks.
type Bankmap interface {
	// Catalog returns a copy of the current catalog
	Catalog() (catalogs.Catalog, error)

	// Sync ingests all configured providers, refreshes brands, and
	// rebuilds association suggestions
	Sync(ctx context.Context) (*SyncResult, error)

	// Resolver returns the rating inheritance resolver over the catalog
	Resolver() *rating.Resolver

	// Suggester returns the suggestion engine over the catalog
	Suggester() *suggest.Engine

	// Save persists the catalog to its configured path
	Save() error

	// OnBrandAdded registers a callback for when brands are added
	OnBrandAdded(BrandAddedHook)

	// OnBrandUpdated registers a callback for when brands are updated
	OnBrandUpdated(BrandUpdatedHook)
}

// Compile-time interface check to ensure proper implementation.
var _ Bankmap = (*bankmap)(nil)

// bankmap is the internal implementation of the Bankmap interface
type bankmap struct {
	mu      stdsync.RWMutex
	catalog catalogs.Catalog
	config  *config

	// Event hooks
	hooks *hooks
}

// New creates a new Bankmap instance with the given options
func New(opts ...Option) (Bankmap, error) {
	bm := &bankmap{
		config: defaultConfig(),
		hooks:  newHooks(),
	}

	if err := bm.options(opts...); err != nil {
		return nil, errors.NewConfigError("bankmap", "applying options", err)
	}

	// Use provided catalog, a file-backed one, or fall back to memory
	switch {
	case bm.config.initialCatalog != nil:
		bm.catalog = bm.config.initialCatalog
	case bm.config.catalogPath != "":
		cat, err := catalogs.New(catalogs.WithPath(bm.config.catalogPath))
		if err != nil {
			return nil, err
		}
		bm.catalog = cat
	default:
		bm.catalog = catalogs.NewEmpty()
	}

	return bm, nil
}

// options applies the given options to the config
func (b *bankmap) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(b.config); err != nil {
			return err
		}
	}
	return nil
}

// Catalog returns a copy of the current catalog
func (b *bankmap) Catalog() (catalogs.Catalog, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.catalog.Copy()
}

// Resolver returns the rating inheritance resolver over the catalog
func (b *bankmap) Resolver() *rating.Resolver {
	return rating.New(b.catalog)
}

// Suggester returns the suggestion engine over the catalog
func (b *bankmap) Suggester() *suggest.Engine {
	return suggest.New(b.catalog, suggest.WithMaxDistance(b.config.maxDistance))
}

// Save persists the catalog to its configured path
func (b *bankmap) Save() error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.catalog.Save()
}

// OnBrandAdded registers a callback for when brands are added
func (b *bankmap) OnBrandAdded(fn BrandAddedHook) {
	b.hooks.OnBrandAdded(fn)
}

// OnBrandUpdated registers a callback for when brands are updated
func (b *bankmap) OnBrandUpdated(fn BrandUpdatedHook) {
	b.hooks.OnBrandUpdated(fn)
}
