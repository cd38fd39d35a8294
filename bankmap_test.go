package bankmap

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenfolio/bankmap/pkg/catalogs"
)

func TestNewOptionValidation(t *testing.T) {
	_, err := New(WithCatalogPath(""))
	assert.Error(t, err)

	_, err = New(WithProviders(catalogs.Provider("acme")))
	assert.Error(t, err)

	_, err = New(WithMaxDistance(-1))
	assert.Error(t, err)
}

func TestCatalogReturnsCopy(t *testing.T) {
	cat := catalogs.NewEmpty()
	require.NoError(t, cat.SetBrand(catalogs.Brand{Tag: "alpha_bank", Name: "Alpha"}))

	bm, err := New(WithCatalog(cat))
	require.NoError(t, err)

	cp, err := bm.Catalog()
	require.NoError(t, err)
	require.NoError(t, cp.SetBrand(catalogs.Brand{Tag: "beta_bank", Name: "Beta"}))

	orig, err := bm.Catalog()
	require.NoError(t, err)
	assert.Equal(t, 1, orig.Brands().Len(), "mutating the returned copy must not touch the instance catalog")
}

func TestSyncFromCustombank(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/custombanks.yaml", []byte(`
- id: cb-1
  name: Village Credit Union
  countries: [NL]
`), 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cat := catalogs.NewEmpty()
	bm, err := New(WithCatalog(cat), WithProviders(catalogs.ProviderCustombank))
	require.NoError(t, err)

	var added []catalogs.Brand
	bm.OnBrandAdded(func(b catalogs.Brand) {
		added = append(added, b)
	})
	var updated [][2]catalogs.Brand
	bm.OnBrandUpdated(func(old, new catalogs.Brand) {
		updated = append(updated, [2]catalogs.Brand{old, new})
	})

	result, err := bm.Sync(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Failed())
	assert.Equal(t, 1, result.Providers[catalogs.ProviderCustombank].Report.Created)

	// The ingested record got a brand, refreshed from the source row.
	brand, err := cat.Brand("village_credit_union")
	require.NoError(t, err)
	assert.Equal(t, "Village Credit Union", brand.Name)
	assert.Equal(t, []string{"NL"}, brand.Countries)

	require.Len(t, added, 1)
	assert.Equal(t, "village_credit_union", added[0].Tag)

	// Running again is idempotent and fires no further hooks.
	_, err = bm.Sync(context.Background())
	require.NoError(t, err)
	assert.Len(t, added, 1)
	assert.Empty(t, updated)

	// A source-side change flows through as a brand update.
	require.NoError(t, os.WriteFile(dir+"/custombanks.yaml", []byte(`
- id: cb-1
  name: Village Credit Union
  countries: [NL, BE]
`), 0o644))
	_, err = bm.Sync(context.Background())
	require.NoError(t, err)
	assert.Len(t, added, 1)
	require.Len(t, updated, 1)
	assert.Equal(t, []string{"NL"}, updated[0][0].Countries)
	assert.Equal(t, []string{"BE", "NL"}, updated[0][1].Countries)
}

func TestResolverAndSuggester(t *testing.T) {
	cat := catalogs.NewEmpty()
	require.NoError(t, cat.SetBrand(catalogs.Brand{Tag: "alpha_bank", Name: "Alpha Bank"}))
	require.NoError(t, cat.SetCommentary(catalogs.Commentary{BrandTag: "alpha_bank", Rating: catalogs.RatingGood}))
	require.NoError(t, cat.SetDatasource(catalogs.Datasource{
		Provider: catalogs.ProviderGabv,
		SourceID: "g-1",
		Tag:      "gabv_alpha_bank",
		Name:     "Alpha Bank",
	}))

	bm, err := New(WithCatalog(cat))
	require.NoError(t, err)

	assert.Equal(t, catalogs.RatingGood, bm.Resolver().Resolve("alpha_bank"))

	got, err := bm.Suggester().SuggestForBrand("alpha_bank")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "gabv:g-1", got[0].Datasource.String())
}
