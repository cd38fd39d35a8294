package catalogs

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/greenfolio/bankmap/pkg/errors"
)

// File names used by the YAML-backed catalog.
const (
	brandsFile       = "brands.yaml"
	datasourcesFile  = "datasources.yaml"
	commentariesFile = "commentaries.yaml"
	suggestionsFile  = "suggestions.yaml"
)

// Load loads the catalog from the configured path. Missing files are not
// an error: a fresh data directory starts empty.
func (cat *catalog) Load() error {
	if cat.options.path == "" {
		return nil // Memory catalog - nothing to load
	}

	if err := cat.loadBrandsYAML(); err != nil {
		return err
	}
	if err := cat.loadDatasourcesYAML(); err != nil {
		return err
	}
	if err := cat.loadCommentariesYAML(); err != nil {
		return err
	}
	return cat.loadSuggestionsYAML()
}

// readFile reads a file under the catalog path, returning (nil, false)
// when it does not exist.
func (cat *catalog) readFile(name string) ([]byte, bool, error) {
	data, err := os.ReadFile(filepath.Join(cat.options.path, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.WrapIO("read", name, err)
	}
	return data, true, nil
}

// loadBrandsYAML loads brands from brands.yaml.
func (cat *catalog) loadBrandsYAML() error {
	data, ok, err := cat.readFile(brandsFile)
	if err != nil || !ok {
		return err
	}

	var brands []Brand
	if err := yaml.Unmarshal(data, &brands); err != nil {
		return errors.WrapParse("yaml", brandsFile, err)
	}

	for _, b := range brands {
		if err := cat.SetBrand(b); err != nil {
			return errors.WrapResource("load", "brand", b.Tag, err)
		}
	}
	return nil
}

// loadDatasourcesYAML loads datasource records from datasources.yaml.
func (cat *catalog) loadDatasourcesYAML() error {
	data, ok, err := cat.readFile(datasourcesFile)
	if err != nil || !ok {
		return err
	}

	var records []Datasource
	if err := yaml.Unmarshal(data, &records); err != nil {
		return errors.WrapParse("yaml", datasourcesFile, err)
	}

	for _, ds := range records {
		if err := cat.SetDatasource(ds); err != nil {
			return errors.WrapResource("load", "datasource", ds.Key().String(), err)
		}
	}
	return nil
}

// loadCommentariesYAML loads commentaries from commentaries.yaml.
func (cat *catalog) loadCommentariesYAML() error {
	data, ok, err := cat.readFile(commentariesFile)
	if err != nil || !ok {
		return err
	}

	var records []Commentary
	if err := yaml.Unmarshal(data, &records); err != nil {
		return errors.WrapParse("yaml", commentariesFile, err)
	}

	for _, c := range records {
		if err := cat.SetCommentary(c); err != nil {
			return errors.WrapResource("load", "commentary", c.BrandTag, err)
		}
	}
	return nil
}

// loadSuggestionsYAML loads suggested associations from suggestions.yaml.
// Suggestions are recomputable, so parse failures only drop them.
func (cat *catalog) loadSuggestionsYAML() error {
	data, ok, err := cat.readFile(suggestionsFile)
	if err != nil || !ok {
		return err
	}

	var rows []SuggestedAssociation
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return errors.WrapParse("yaml", suggestionsFile, err)
	}

	for _, sa := range rows {
		cat.suggestions.Add(sa)
	}
	return nil
}
