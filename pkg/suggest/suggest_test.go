package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenfolio/bankmap/pkg/catalogs"
	"github.com/greenfolio/bankmap/pkg/errors"
)

func testCatalog(t *testing.T) catalogs.Catalog {
	t.Helper()
	cat := catalogs.NewEmpty()

	require.NoError(t, cat.SetBrand(catalogs.Brand{Tag: "greenbank", Name: "Greenbank"}))
	require.NoError(t, cat.SetBrand(catalogs.Brand{Tag: "greenbanc", Name: "Greenbanc"}))
	require.NoError(t, cat.SetBrand(catalogs.Brand{Tag: "unrelated_bank", Name: "Completely Different Name"}))

	require.NoError(t, cat.SetDatasource(catalogs.Datasource{
		Provider: catalogs.ProviderBanktrack,
		SourceID: "bt-1",
		Tag:      "banktrack_greenbank",
		Name:     "Greenbank",
	}))
	require.NoError(t, cat.SetDatasource(catalogs.Datasource{
		Provider: catalogs.ProviderBanktrack,
		SourceID: "bt-2",
		Tag:      "banktrack_greenbanc",
		Name:     "Greenbanc",
	}))
	require.NoError(t, cat.SetDatasource(catalogs.Datasource{
		Provider: catalogs.ProviderWikidata,
		SourceID: "Q1",
		Tag:      "wikidata_greenbank",
		Name:     "Greenbank",
	}))

	return cat
}

func TestSuggestForDatasource(t *testing.T) {
	cat := testCatalog(t)
	e := New(cat)

	got, err := e.SuggestForDatasource(catalogs.DatasourceKey{Provider: catalogs.ProviderBanktrack, SourceID: "bt-1"})
	require.NoError(t, err)

	// Both close brands, plus the wikidata record; never the sibling
	// banktrack record, no matter how similar its name is.
	require.Len(t, got, 3)
	assert.Equal(t, Suggestion{Kind: KindBrand, BrandTag: "greenbank", Distance: 0}, got[0])
	assert.Equal(t, KindDatasource, got[1].Kind)
	assert.Equal(t, "wikidata:Q1", got[1].Datasource.String())
	assert.Equal(t, 0, got[1].Distance)
	assert.Equal(t, Suggestion{Kind: KindBrand, BrandTag: "greenbanc", Distance: 1}, got[2])
}

func TestSuggestExcludesLinkedBrand(t *testing.T) {
	cat := testCatalog(t)
	linked := "greenbank"
	require.NoError(t, cat.SetDatasource(catalogs.Datasource{
		Provider: catalogs.ProviderBanktrack,
		SourceID: "bt-1",
		Tag:      "banktrack_greenbank",
		Name:     "Greenbank",
		BrandTag: &linked,
	}))

	got, err := New(cat).SuggestForDatasource(catalogs.DatasourceKey{Provider: catalogs.ProviderBanktrack, SourceID: "bt-1"})
	require.NoError(t, err)

	for _, s := range got {
		assert.NotEqual(t, "greenbank", s.BrandTag, "linked brand must not be re-suggested")
	}
}

func TestSuggestForBrand(t *testing.T) {
	cat := testCatalog(t)
	linked := "greenbank"
	require.NoError(t, cat.SetDatasource(catalogs.Datasource{
		Provider: catalogs.ProviderWikidata,
		SourceID: "Q1",
		Tag:      "wikidata_greenbank",
		Name:     "Greenbank",
		BrandTag: &linked,
	}))

	got, err := New(cat).SuggestForBrand("greenbank")
	require.NoError(t, err)

	// Only datasources are candidates; the already-linked wikidata record
	// is excluded even though its name matches exactly.
	require.Len(t, got, 2)
	for _, s := range got {
		assert.Equal(t, KindDatasource, s.Kind)
		assert.NotEqual(t, "wikidata:Q1", s.Datasource.String())
	}
}

func TestSuggestUnknownProvider(t *testing.T) {
	cat := testCatalog(t)

	_, err := New(cat).SuggestForDatasource(catalogs.DatasourceKey{Provider: catalogs.Provider("acme"), SourceID: "1"})
	require.Error(t, err)
	assert.True(t, errors.IsUnknownProvider(err))
}

func TestRebuildPersistsAndReplaces(t *testing.T) {
	cat := testCatalog(t)
	e := New(cat)

	total, err := e.Rebuild()
	require.NoError(t, err)
	assert.Greater(t, total, 0)

	key := catalogs.DatasourceKey{Provider: catalogs.ProviderBanktrack, SourceID: "bt-1"}
	rows := cat.Suggestions().For(key)
	require.NotEmpty(t, rows)
	assert.Equal(t, "greenbank", rows[0].BrandTag)
	assert.Equal(t, 0, rows[0].Certainty)

	// Linking the datasource and rebuilding clears its suggestions.
	linked := "greenbank"
	require.NoError(t, cat.SetDatasource(catalogs.Datasource{
		Provider: catalogs.ProviderBanktrack,
		SourceID: "bt-1",
		Tag:      "banktrack_greenbank",
		Name:     "Greenbank",
		BrandTag: &linked,
	}))
	_, err = e.Rebuild()
	require.NoError(t, err)
	assert.Empty(t, cat.Suggestions().For(key))
}

func TestWithMaxDistanceOption(t *testing.T) {
	cat := testCatalog(t)

	got, err := New(cat, WithMaxDistance(0)).SuggestForDatasource(catalogs.DatasourceKey{Provider: catalogs.ProviderBanktrack, SourceID: "bt-2"})
	require.NoError(t, err)

	// With a zero threshold only the identically named brand survives;
	// the distance-1 "Greenbank" records are cut.
	require.Len(t, got, 1)
	assert.Equal(t, Suggestion{Kind: KindBrand, BrandTag: "greenbanc", Distance: 0}, got[0])
}
