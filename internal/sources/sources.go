// Package sources defines the provider adapter interface and the
// registry mapping provider types to adapter constructors. Adapters turn
// provider-native payloads into ingest rows; everything past Fetch is
// provider-agnostic.
package sources

import (
	"context"
	"fmt"
	"sort"

	"github.com/greenfolio/bankmap/pkg/catalogs"
	"github.com/greenfolio/bankmap/pkg/errors"
	"github.com/greenfolio/bankmap/pkg/ingest"

	"github.com/greenfolio/bankmap/internal/sources/banktrack"
	"github.com/greenfolio/bankmap/internal/sources/custombank"
)

// Source is one external data provider adapter.
type Source interface {
	// Provider returns the provider type this source ingests as.
	Provider() catalogs.Provider
	// Fetch retrieves all rows from the provider.
	Fetch(ctx context.Context) ([]ingest.Row, error)
}

// registry maps provider types to their source constructors.
// Each call returns a fresh source with its own HTTP client.
var registry = map[catalogs.Provider]func() Source{
	catalogs.ProviderBanktrack:  func() Source { return banktrack.New() },
	catalogs.ProviderCustombank: func() Source { return custombank.New() },
}

// Get creates a new source for the given provider type.
func Get(p catalogs.Provider) (Source, error) {
	if !p.IsValid() {
		return nil, &errors.UnknownProviderError{Provider: string(p)}
	}
	newSource, ok := registry[p]
	if !ok {
		return nil, &errors.ValidationError{
			Field:   "provider",
			Value:   p,
			Message: fmt.Sprintf("no source adapter implemented for provider: %s", p),
		}
	}
	return newSource(), nil
}

// Has checks if a provider type has a source adapter.
func Has(p catalogs.Provider) bool {
	_, ok := registry[p]
	return ok
}

// List returns all provider types with source adapters, sorted.
func List() []catalogs.Provider {
	ps := make([]catalogs.Provider, 0, len(registry))
	for p := range registry {
		ps = append(ps, p)
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i] < ps[j] })
	return ps
}
