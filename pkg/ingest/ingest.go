// Package ingest writes provider rows into the catalog. The unit of work
// is the upsert: one row of fields keyed by (provider, source ID) either
// creates a datasource record, minting its tag against the live tag
// universe, or merges into the existing one. Batch ingestion layers a
// pipeline on top that survives bad rows and reports counts.
package ingest

import (
	"math"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	"github.com/greenfolio/bankmap/pkg/catalogs"
	"github.com/greenfolio/bankmap/pkg/errors"
	"github.com/greenfolio/bankmap/pkg/tag"
)

// Field keys recognized by Upsert. Provider adapters map their native
// payloads onto these before handing rows to the pipeline.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldWebsite     = "website"
	FieldCountries   = "countries"
	FieldLEI         = "lei"
	FieldISIN        = "isin"
	FieldRSSD        = "rssd"
	FieldPermID      = "permid"
)

// Fields carries one row's incoming values, keyed by the Field constants.
// Values that are not meaningful are skipped during merge, so an adapter
// may pass its payload through without scrubbing absent columns.
type Fields map[string]any

// Meaningful reports whether a value carries information worth writing:
// not nil, not NaN, not the empty string. Empty slices are treated as
// absent as well.
func Meaningful(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case float64:
		return !math.IsNaN(x)
	case float32:
		return !math.IsNaN(float64(x))
	case []string:
		return len(x) > 0
	case []any:
		return len(x) > 0
	}
	return true
}

// Upsert writes one row of fields into the catalog under the datasource's
// natural key. A new record gets a provider-prefixed tag minted against
// the catalog's current tag universe; an existing record keeps its tag
// and has every meaningful field overwritten. Returns the stored record
// and whether it was created.
//
// Duplicate source IDs within one batch are safe: each call merges over
// the previous one, so the last occurrence's fields win.
func Upsert(cat catalogs.Catalog, provider catalogs.Provider, sourceID string, fields Fields) (catalogs.Datasource, bool, error) {
	if !provider.IsValid() {
		return catalogs.Datasource{}, false, &errors.UnknownProviderError{Provider: string(provider)}
	}
	if sourceID == "" {
		return catalogs.Datasource{}, false, errors.NewValidationError("source_id", sourceID, "must not be empty")
	}

	key := catalogs.DatasourceKey{Provider: provider, SourceID: sourceID}
	now := utc.Now()

	ds, err := cat.Datasource(key)
	created := false
	switch {
	case err == nil:
		// merge path
	case errors.IsNotFound(err):
		created = true
		ds = catalogs.Datasource{
			Provider:  provider,
			SourceID:  sourceID,
			CreatedAt: now,
		}
		name, _ := fields[FieldName].(string)
		ds.Tag = tag.Generate(name, tag.NewSet(cat.Tags()...), provider.TagPrefix())
	default:
		return catalogs.Datasource{}, false, err
	}

	applyFields(&ds, fields)
	ds.UpdatedAt = now

	if err := cat.SetDatasource(ds); err != nil {
		return catalogs.Datasource{}, false, err
	}
	return ds, created, nil
}

// applyFields overwrites every meaningful field onto the record. The tag
// is never part of the field set and survives every merge.
func applyFields(ds *catalogs.Datasource, fields Fields) {
	for k, v := range fields {
		if !Meaningful(v) {
			continue
		}
		switch k {
		case FieldName:
			if s, ok := v.(string); ok {
				ds.Name = s
			}
		case FieldDescription:
			if s, ok := v.(string); ok {
				ds.Description = s
			}
		case FieldWebsite:
			if s, ok := v.(string); ok {
				ds.Website = s
			}
		case FieldCountries:
			ds.Countries = asStrings(v)
		case FieldLEI:
			if s, ok := v.(string); ok {
				ds.Identifiers.LEI = s
			}
		case FieldISIN:
			if s, ok := v.(string); ok {
				ds.Identifiers.ISIN = s
			}
		case FieldRSSD:
			if s, ok := v.(string); ok {
				ds.Identifiers.RSSD = s
			}
		case FieldPermID:
			if s, ok := v.(string); ok {
				ds.Identifiers.PermID = s
			}
		}
	}
}

// asStrings accepts both typed and decoded-from-JSON country lists.
func asStrings(v any) []string {
	switch x := v.(type) {
	case []string:
		return x
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// EnsureBrand guarantees the datasource is linked to a brand, creating a
// placeholder brand when it is not. The new brand gets a UUID, a tag
// minted from the datasource's name against the live universe, and the
// default name; the refresh engine fills its fields afterwards. Returns
// the linked brand and whether it was created.
func EnsureBrand(cat catalogs.Catalog, ds catalogs.Datasource) (catalogs.Brand, bool, error) {
	if ds.Linked() {
		brand, err := cat.Brand(*ds.BrandTag)
		return brand, false, err
	}

	now := utc.Now()
	brand := catalogs.Brand{
		ID:        uuid.NewString(),
		Tag:       tag.Generate(ds.Name, tag.NewSet(cat.Tags()...), ""),
		Name:      catalogs.DefaultBrandName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := cat.SetBrand(brand); err != nil {
		return catalogs.Brand{}, false, err
	}

	ds.BrandTag = &brand.Tag
	if err := cat.SetDatasource(ds); err != nil {
		return catalogs.Brand{}, false, err
	}
	return brand, true, nil
}
