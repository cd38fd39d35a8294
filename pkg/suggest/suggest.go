// Package suggest finds likely associations between catalog records by
// approximate name matching. Suggestion is a pure read over the catalog:
// for a given brand or datasource it returns every other record of a
// different concrete kind whose name is within the match threshold,
// closest first. Rebuild is the batch counterpart that recomputes and
// persists datasource-to-brand suggestions for staff review.
package suggest

import (
	"sort"

	"github.com/greenfolio/bankmap/pkg/catalogs"
	"github.com/greenfolio/bankmap/pkg/errors"
	"github.com/greenfolio/bankmap/pkg/logging"
	"github.com/greenfolio/bankmap/pkg/match"
)

// Kind discriminates suggestion candidates.
type Kind string

// Candidate kinds.
const (
	KindBrand      Kind = "brand"
	KindDatasource Kind = "datasource"
)

// Suggestion is one candidate association, scored by edit distance
// (lower is closer).
type Suggestion struct {
	Kind       Kind
	BrandTag   string                 // set when Kind is KindBrand
	Datasource catalogs.DatasourceKey // set when Kind is KindDatasource
	Distance   int
}

// Key returns the candidate's natural key, used for deterministic
// ordering among equal-distance candidates.
func (s Suggestion) Key() string {
	if s.Kind == KindBrand {
		return s.BrandTag
	}
	return s.Datasource.String()
}

// Engine computes suggestions over a catalog.
type Engine struct {
	catalog     catalogs.Reader
	maxDistance int
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxDistance overrides the acceptance threshold.
func WithMaxDistance(d int) Option {
	return func(e *Engine) {
		e.maxDistance = d
	}
}

// New creates a suggestion engine over the given catalog.
func New(cat catalogs.Reader, opts ...Option) *Engine {
	e := &Engine{
		catalog:     cat,
		maxDistance: match.DefaultMaxDistance,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SuggestForBrand returns candidate datasources for the given brand.
// Brands never suggest other brands, and datasources already linked to
// this brand are excluded. The result is ordered by ascending distance,
// ties by candidate key.
func (e *Engine) SuggestForBrand(tag string) ([]Suggestion, error) {
	brand, err := e.catalog.Brand(tag)
	if err != nil {
		return nil, err
	}

	var out []Suggestion
	for _, ds := range e.catalog.Datasources().List() {
		if !ds.Provider.IsValid() {
			return nil, &errors.UnknownProviderError{Provider: string(ds.Provider)}
		}
		if ds.LinkedTo(tag) {
			continue
		}
		d := match.Distance(brand.Name, ds.Name)
		if d > e.maxDistance {
			continue
		}
		out = append(out, Suggestion{Kind: KindDatasource, Datasource: ds.Key(), Distance: d})
	}

	sortSuggestions(out)
	return out, nil
}

// SuggestForDatasource returns candidate brands and datasources of other
// provider types for the given datasource. Records of the same provider
// type are excluded, as is a brand the datasource already links to. The
// result is ordered by ascending distance, ties by candidate key.
func (e *Engine) SuggestForDatasource(key catalogs.DatasourceKey) ([]Suggestion, error) {
	if !key.Provider.IsValid() {
		return nil, &errors.UnknownProviderError{Provider: string(key.Provider)}
	}
	ds, err := e.catalog.Datasource(key)
	if err != nil {
		return nil, err
	}

	var out []Suggestion
	for _, brand := range e.catalog.Brands().List() {
		if ds.LinkedTo(brand.Tag) {
			continue
		}
		d := match.Distance(ds.Name, brand.Name)
		if d > e.maxDistance {
			continue
		}
		out = append(out, Suggestion{Kind: KindBrand, BrandTag: brand.Tag, Distance: d})
	}
	for _, other := range e.catalog.Datasources().List() {
		if !other.Provider.IsValid() {
			return nil, &errors.UnknownProviderError{Provider: string(other.Provider)}
		}
		if other.Provider == key.Provider {
			continue
		}
		d := match.Distance(ds.Name, other.Name)
		if d > e.maxDistance {
			continue
		}
		out = append(out, Suggestion{Kind: KindDatasource, Datasource: other.Key(), Distance: d})
	}

	sortSuggestions(out)
	return out, nil
}

// Rebuild recomputes datasource-to-brand suggestions for every datasource
// in the catalog and persists them as SuggestedAssociations, with
// certainty set to the computed distance. Prior suggestions for each
// datasource are replaced wholesale, so stale rows never survive a
// rebuild. Already-linked datasources are cleared rather than scored.
//
// An unregistered provider type aborts the whole rebuild: it means a
// source was ingested without being registered, which staff must fix
// before suggestions can be trusted.
func (e *Engine) Rebuild() (int, error) {
	logger := logging.Default()

	total := 0
	for _, ds := range e.catalog.Datasources().List() {
		key := ds.Key()
		if ds.Linked() {
			e.catalog.Suggestions().ReplaceFor(key, nil)
			continue
		}

		candidates, err := e.SuggestForDatasource(key)
		if err != nil {
			return total, err
		}

		rows := make([]catalogs.SuggestedAssociation, 0, len(candidates))
		for _, c := range candidates {
			if c.Kind != KindBrand {
				continue
			}
			rows = append(rows, catalogs.SuggestedAssociation{
				Datasource: key,
				BrandTag:   c.BrandTag,
				Certainty:  c.Distance,
			})
		}
		e.catalog.Suggestions().ReplaceFor(key, rows)
		total += len(rows)

		if len(rows) > 0 {
			logger.Debug().
				Str("datasource", key.String()).
				Int("candidates", len(rows)).
				Msg("Suggested brand associations")
		}
	}
	return total, nil
}

func sortSuggestions(s []Suggestion) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Distance != s[j].Distance {
			return s[i].Distance < s[j].Distance
		}
		return s[i].Key() < s[j].Key()
	})
}
