package bankmap

import (
	"github.com/greenfolio/bankmap/pkg/catalogs"
	"github.com/greenfolio/bankmap/pkg/errors"
	"github.com/greenfolio/bankmap/pkg/match"
	"github.com/greenfolio/bankmap/pkg/refresh"
)

// Option is a function that configures a Bankmap instance
type Option func(*config) error

// config holds the assembled configuration of a Bankmap instance.
type config struct {
	initialCatalog    catalogs.Catalog
	catalogPath       string
	providers         []catalogs.Provider // empty means every provider with an adapter
	maxDistance       int
	overwriteExisting bool
	refreshFields     []refresh.Field
}

func defaultConfig() *config {
	return &config{
		maxDistance: match.DefaultMaxDistance,
	}
}

// WithCatalog configures the initial catalog to use
func WithCatalog(cat catalogs.Catalog) Option {
	return func(c *config) error {
		c.initialCatalog = cat
		return nil
	}
}

// WithCatalogPath configures a file-backed catalog at the given directory
func WithCatalogPath(path string) Option {
	return func(c *config) error {
		if path == "" {
			return errors.NewConfigError("bankmap", "catalog path must not be empty", nil)
		}
		c.catalogPath = path
		return nil
	}
}

// WithProviders restricts synchronization to the given provider types
func WithProviders(providers ...catalogs.Provider) Option {
	return func(c *config) error {
		for _, p := range providers {
			if !p.IsValid() {
				return &errors.UnknownProviderError{Provider: string(p)}
			}
		}
		c.providers = providers
		return nil
	}
}

// WithMaxDistance configures the name-match threshold used for suggestions
func WithMaxDistance(d int) Option {
	return func(c *config) error {
		if d < 0 {
			return errors.NewConfigError("bankmap", "max distance must not be negative", nil)
		}
		c.maxDistance = d
		return nil
	}
}

// WithOverwriteExisting configures whether sync may replace already-set
// brand fields, rather than only filling unset ones
func WithOverwriteExisting(enabled bool) Option {
	return func(c *config) error {
		c.overwriteExisting = enabled
		return nil
	}
}

// WithRefreshFields restricts which brand fields sync refreshes
func WithRefreshFields(fields ...refresh.Field) Option {
	return func(c *config) error {
		c.refreshFields = fields
		return nil
	}
}
