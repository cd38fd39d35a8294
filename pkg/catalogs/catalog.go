// Package catalogs provides the core record store for the bankmap back office.
// It holds canonical Brand records, per-provider Datasource records, the
// Commentary (rating) extension, and recomputable SuggestedAssociations,
// with YAML file persistence for operator-editable data.
//
// The catalog is designed to be thread-safe and is the single shared
// resource of the system: batch ingestion jobs, the suggestion engine, and
// staff tooling all read and write through it.
//
// Example usage:
//
//	// Create a file-backed catalog (auto-loads brands.yaml etc.)
//	cat, err := catalogs.NewFromPath("./data")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Access brands
//	for _, brand := range cat.Brands().List() {
//	    fmt.Printf("Brand: %s\n", brand.Tag)
//	}
package catalogs

import (
	"os"

	"github.com/greenfolio/bankmap/pkg/errors"
)

// Reader provides read access to catalog collections and records.
type Reader interface {
	Brands() *Brands
	Datasources() *Datasources
	Commentaries() *Commentaries
	Suggestions() *Suggestions

	// Brand returns a brand by tag.
	Brand(tag string) (Brand, error)
	// Datasource returns a datasource by its natural key.
	Datasource(key DatasourceKey) (Datasource, error)
	// Commentary returns the commentary for a brand tag.
	Commentary(brandTag string) (Commentary, error)
	// Tags returns every tag in use by brands and datasources.
	// Tag generation must be seeded with this universe.
	Tags() []string
}

// Writer provides validated write access to catalog records.
type Writer interface {
	SetBrand(brand Brand) error
	SetDatasource(ds Datasource) error
	SetCommentary(c Commentary) error
	DeleteBrand(tag string) error
	DeleteDatasource(key DatasourceKey) error
}

// Copier creates deep copies of a catalog.
type Copier interface {
	Copy() (Catalog, error)
}

// Persister loads and saves a catalog from its configured path.
type Persister interface {
	Load() error
	Save() error
}

// Catalog combines read, write, copy, and persistence access.
type Catalog interface {
	Reader
	Writer
	Copier
	Persister
}

// Compile-time interface checks to ensure proper implementation.
var (
	_ Catalog   = (*catalog)(nil)
	_ Reader    = (*catalog)(nil)
	_ Writer    = (*catalog)(nil)
	_ Copier    = (*catalog)(nil)
	_ Persister = (*catalog)(nil)
)

// catalog is the single concrete implementation of the Catalog interface.
// With no path configured it is a pure memory catalog; with a path it
// loads from and saves to YAML files in that directory.
type catalog struct {
	options      *catalogOptions
	brands       *Brands
	datasources  *Datasources
	commentaries *Commentaries
	suggestions  *Suggestions
}

// New creates a new catalog with the given options.
// With no options it is an empty in-memory catalog.
func New(opts ...Option) (Catalog, error) {
	cat := &catalog{
		brands:       NewBrands(),
		datasources:  NewDatasources(),
		commentaries: NewCommentaries(),
		suggestions:  NewSuggestions(),
		options:      catalogDefaults().apply(opts...),
	}

	// Auto-load if a path is configured
	if cat.options.path != "" && cat.options.autoLoad {
		if err := cat.Load(); err != nil {
			return nil, errors.WrapResource("load", "catalog", cat.options.path, err)
		}
	}

	return cat, nil
}

// NewFromPath creates a catalog backed by YAML files on disk.
//
// Example:
//
//	cat, err := catalogs.NewFromPath("./data")
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewFromPath(path string) (Catalog, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.WrapIO("stat", path, err)
	}
	return New(WithPath(path))
}

// NewEmpty creates an in-memory empty catalog. This is useful for testing
// or temporary catalogs that don't need persistence.
func NewEmpty() Catalog {
	return &catalog{
		brands:       NewBrands(),
		datasources:  NewDatasources(),
		commentaries: NewCommentaries(),
		suggestions:  NewSuggestions(),
		options:      catalogDefaults(),
	}
}

// Brands returns the brands collection.
func (cat *catalog) Brands() *Brands {
	return cat.brands
}

// Datasources returns the datasources collection.
func (cat *catalog) Datasources() *Datasources {
	return cat.datasources
}

// Commentaries returns the commentaries collection.
func (cat *catalog) Commentaries() *Commentaries {
	return cat.commentaries
}

// Suggestions returns the suggested associations collection.
func (cat *catalog) Suggestions() *Suggestions {
	return cat.suggestions
}

// Brand returns a brand by tag.
func (cat *catalog) Brand(tag string) (Brand, error) {
	brand, ok := cat.brands.Get(tag)
	if !ok {
		return Brand{}, &errors.NotFoundError{Resource: "brand", ID: tag}
	}
	return brand.Clone(), nil
}

// Datasource returns a datasource by its natural key.
func (cat *catalog) Datasource(key DatasourceKey) (Datasource, error) {
	ds, ok := cat.datasources.Get(key)
	if !ok {
		return Datasource{}, &errors.NotFoundError{Resource: "datasource", ID: key.String()}
	}
	return ds.Clone(), nil
}

// Commentary returns the commentary for a brand tag.
func (cat *catalog) Commentary(brandTag string) (Commentary, error) {
	c, ok := cat.commentaries.Get(brandTag)
	if !ok {
		return Commentary{}, &errors.NotFoundError{Resource: "commentary", ID: brandTag}
	}
	return c.Clone(), nil
}

// Tags returns every tag currently in use by brands and datasources.
func (cat *catalog) Tags() []string {
	tags := make([]string, 0, cat.brands.Len()+cat.datasources.Len())
	for _, b := range cat.brands.List() {
		tags = append(tags, b.Tag)
	}
	for _, ds := range cat.datasources.List() {
		if ds.Tag != "" {
			tags = append(tags, ds.Tag)
		}
	}
	return tags
}

// SetBrand validates and stores a brand (upsert).
func (cat *catalog) SetBrand(brand Brand) error {
	if err := brand.Validate(); err != nil {
		return err
	}
	clone := brand.Clone()
	return cat.brands.Set(clone.Tag, &clone)
}

// SetDatasource validates and stores a datasource (upsert).
func (cat *catalog) SetDatasource(ds Datasource) error {
	if err := ds.Validate(); err != nil {
		return err
	}
	clone := ds.Clone()
	return cat.datasources.Set(clone.Key(), &clone)
}

// SetCommentary validates and stores a commentary (upsert).
// Cycle safety of the inheritance pointer is the caller's concern; use
// rating.Resolver.GuardWrite before saving staff edits.
func (cat *catalog) SetCommentary(c Commentary) error {
	if err := c.Validate(); err != nil {
		return err
	}
	clone := c.Clone()
	return cat.commentaries.Set(clone.BrandTag, &clone)
}

// DeleteBrand deletes a brand by tag.
func (cat *catalog) DeleteBrand(tag string) error {
	return cat.brands.Delete(tag)
}

// DeleteDatasource deletes a datasource by key.
func (cat *catalog) DeleteDatasource(key DatasourceKey) error {
	return cat.datasources.Delete(key)
}

// Copy creates a deep copy of the catalog.
func (cat *catalog) Copy() (Catalog, error) {
	cp := &catalog{
		brands:       NewBrands(),
		datasources:  NewDatasources(),
		commentaries: NewCommentaries(),
		suggestions:  NewSuggestions(),
		options:      cat.options,
	}

	for _, b := range cat.brands.List() {
		clone := b.Clone()
		if err := cp.brands.Set(clone.Tag, &clone); err != nil {
			return nil, errors.WrapResource("copy", "brand", b.Tag, err)
		}
	}
	for _, ds := range cat.datasources.List() {
		clone := ds.Clone()
		if err := cp.datasources.Set(clone.Key(), &clone); err != nil {
			return nil, errors.WrapResource("copy", "datasource", ds.Key().String(), err)
		}
	}
	for _, c := range cat.commentaries.List() {
		clone := c.Clone()
		if err := cp.commentaries.Set(clone.BrandTag, &clone); err != nil {
			return nil, errors.WrapResource("copy", "commentary", c.BrandTag, err)
		}
	}
	for _, s := range cat.suggestions.List() {
		cp.suggestions.Add(s)
	}

	return cp, nil
}
