package ingest

import (
	"context"

	"github.com/agentstation/utc"

	"github.com/greenfolio/bankmap/pkg/catalogs"
	"github.com/greenfolio/bankmap/pkg/errors"
	"github.com/greenfolio/bankmap/pkg/logging"
	"github.com/greenfolio/bankmap/pkg/refresh"
)

// Row is one input record from a provider adapter.
type Row struct {
	SourceID string
	Fields   Fields
}

// Report tallies the outcome of one pipeline run.
type Report struct {
	Created int
	Updated int
	Failed  int
	Errors  []error // one RowError per failed row, in input order
}

// Total returns the number of rows processed, including failures.
func (r Report) Total() int {
	return r.Created + r.Updated + r.Failed
}

// Pipeline runs batch ingestion for one provider at a time: upsert every
// row, keep each upserted record's brand linked and refreshed. A bad row
// is logged and counted, never fatal; only an unregistered provider or a
// cancelled context aborts the run.
type Pipeline struct {
	catalog     catalogs.Catalog
	ensureBrand bool
	refreshOpts refresh.Options
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithoutBrandCreation leaves newly ingested datasources unlinked, for
// workflows where staff confirm suggested associations by hand instead.
func WithoutBrandCreation() PipelineOption {
	return func(p *Pipeline) {
		p.ensureBrand = false
	}
}

// WithRefreshOptions overrides the options passed to the per-brand
// refresh after each upsert.
func WithRefreshOptions(opts refresh.Options) PipelineOption {
	return func(p *Pipeline) {
		p.refreshOpts = opts
	}
}

// NewPipeline creates a pipeline over the given catalog. By default every
// ingested datasource ends up linked to a brand, creating placeholder
// brands as needed.
func NewPipeline(cat catalogs.Catalog, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		catalog:     cat,
		ensureBrand: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run ingests the rows in input order and returns the outcome report.
// The error return covers run-level failures only; per-row failures are
// reported through Report.Errors.
func (p *Pipeline) Run(ctx context.Context, provider catalogs.Provider, rows []Row) (Report, error) {
	if !provider.IsValid() {
		return Report{}, &errors.UnknownProviderError{Provider: string(provider)}
	}

	logger := logging.Ctx(logging.WithProvider(ctx, provider.String()))
	var report Report

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		created, err := p.ingestRow(provider, row)
		if err != nil {
			rowErr := &errors.RowError{
				Provider: provider.String(),
				SourceID: row.SourceID,
				Row:      i,
				Err:      err,
			}
			report.Failed++
			report.Errors = append(report.Errors, rowErr)
			logger.Error().
				Str("source_id", row.SourceID).
				Int("row", i).
				Err(err).
				Msg("Row ingestion failed")
			continue
		}

		if created {
			report.Created++
		} else {
			report.Updated++
		}
	}

	logger.Info().
		Int("created", report.Created).
		Int("updated", report.Updated).
		Int("failed", report.Failed).
		Msg("Ingestion run complete")
	return report, nil
}

// ingestRow upserts one row and keeps its brand linked and refreshed.
func (p *Pipeline) ingestRow(provider catalogs.Provider, row Row) (bool, error) {
	ds, created, err := Upsert(p.catalog, provider, row.SourceID, row.Fields)
	if err != nil {
		return false, err
	}

	if p.ensureBrand {
		if _, _, err := EnsureBrand(p.catalog, ds); err != nil {
			return created, err
		}
		// re-read: EnsureBrand may have set the link
		ds, err = p.catalog.Datasource(ds.Key())
		if err != nil {
			return created, err
		}
	}

	if !ds.Linked() {
		return created, nil
	}

	brand, err := p.catalog.Brand(*ds.BrandTag)
	if err != nil {
		return created, err
	}
	linked := p.catalog.Datasources().ByBrand(brand.Tag)
	updated, changes, err := refresh.Refresh(brand, linked, p.refreshOpts)
	if err != nil {
		return created, err
	}
	if changes.Dirty() {
		updated.UpdatedAt = utc.Now()
	}
	return created, p.catalog.SetBrand(updated)
}
