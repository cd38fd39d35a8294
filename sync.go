package bankmap

import (
	"context"

	"github.com/greenfolio/bankmap/internal/sources"
	"github.com/greenfolio/bankmap/pkg/catalogs"
	"github.com/greenfolio/bankmap/pkg/ingest"
	"github.com/greenfolio/bankmap/pkg/logging"
	"github.com/greenfolio/bankmap/pkg/refresh"
	"github.com/greenfolio/bankmap/pkg/suggest"
)

// ProviderResult is the outcome of synchronizing one provider. Err is
// set when the provider could not be fetched at all; row-level failures
// live inside the report.
type ProviderResult struct {
	Report ingest.Report
	Err    error
}

// SyncResult summarizes one Sync run.
type SyncResult struct {
	Providers   map[catalogs.Provider]ProviderResult
	Suggestions int
}

// Failed reports whether any provider failed outright.
func (r *SyncResult) Failed() bool {
	for _, pr := range r.Providers {
		if pr.Err != nil {
			return true
		}
	}
	return false
}

// Sync ingests every configured provider, keeps brands linked and
// refreshed, rebuilds association suggestions, and persists the catalog
// when it is file-backed. A provider that fails to fetch is recorded and
// skipped; the remaining providers still run.
func (b *bankmap) Sync(ctx context.Context) (*SyncResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	providers := b.config.providers
	if len(providers) == 0 {
		providers = sources.List()
	}

	before, err := b.catalog.Copy()
	if err != nil {
		return nil, err
	}

	result := &SyncResult{Providers: make(map[catalogs.Provider]ProviderResult, len(providers))}
	pipeline := ingest.NewPipeline(b.catalog, ingest.WithRefreshOptions(refresh.Options{
		Fields:            b.config.refreshFields,
		OverwriteExisting: b.config.overwriteExisting,
	}))

	for _, p := range providers {
		pr := b.syncProvider(ctx, pipeline, p)
		result.Providers[p] = pr
		if pr.Err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			logging.Default().Error().
				Str("provider", p.String()).
				Err(pr.Err).
				Msg("Provider sync failed")
		}
	}

	engine := suggest.New(b.catalog, suggest.WithMaxDistance(b.config.maxDistance))
	total, err := engine.Rebuild()
	if err != nil {
		return result, err
	}
	result.Suggestions = total

	if b.config.catalogPath != "" {
		if err := b.catalog.Save(); err != nil {
			return result, err
		}
	}

	b.hooks.triggerBrandChanges(before.Brands(), b.catalog.Brands())
	return result, nil
}

// syncProvider fetches one provider and runs its rows through the
// ingestion pipeline.
func (b *bankmap) syncProvider(ctx context.Context, pipeline *ingest.Pipeline, p catalogs.Provider) ProviderResult {
	src, err := sources.Get(p)
	if err != nil {
		return ProviderResult{Err: err}
	}

	rows, err := src.Fetch(ctx)
	if err != nil {
		return ProviderResult{Err: err}
	}

	report, err := pipeline.Run(ctx, p, rows)
	return ProviderResult{Report: report, Err: err}
}
