package catalogs

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/greenfolio/bankmap/pkg/errors"
)

// Directory and file permissions for saved catalog data.
const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

// Save writes the catalog to its configured path as YAML files, one per
// collection. Collections are written in deterministic order so diffs of
// the data directory stay reviewable.
func (cat *catalog) Save() error {
	if cat.options.path == "" {
		return &errors.ConfigError{
			Component: "catalog",
			Message:   "no path configured for saving",
		}
	}
	return cat.saveTo(cat.options.path)
}

// saveTo writes all collections to the given directory.
func (cat *catalog) saveTo(basePath string) error {
	if err := os.MkdirAll(basePath, dirPermissions); err != nil {
		return errors.WrapIO("create", basePath, err)
	}

	writeFile := func(name string, v any) error {
		data, err := yaml.Marshal(v)
		if err != nil {
			return errors.WrapParse("yaml", name, err)
		}
		path := filepath.Join(basePath, name)
		if err := os.WriteFile(path, data, filePermissions); err != nil {
			return errors.WrapIO("write", name, err)
		}
		return nil
	}

	brands := make([]Brand, 0, cat.brands.Len())
	for _, b := range cat.brands.List() {
		brands = append(brands, b.Clone())
	}
	if err := writeFile(brandsFile, brands); err != nil {
		return err
	}

	records := make([]Datasource, 0, cat.datasources.Len())
	for _, ds := range cat.datasources.List() {
		records = append(records, ds.Clone())
	}
	if err := writeFile(datasourcesFile, records); err != nil {
		return err
	}

	commentaries := make([]Commentary, 0, cat.commentaries.Len())
	for _, c := range cat.commentaries.List() {
		commentaries = append(commentaries, c.Clone())
	}
	if err := writeFile(commentariesFile, commentaries); err != nil {
		return err
	}

	return writeFile(suggestionsFile, cat.suggestions.List())
}
