package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenfolio/bankmap/pkg/catalogs"
	"github.com/greenfolio/bankmap/pkg/errors"
)

func TestGet(t *testing.T) {
	src, err := Get(catalogs.ProviderBanktrack)
	require.NoError(t, err)
	assert.Equal(t, catalogs.ProviderBanktrack, src.Provider())

	_, err = Get(catalogs.Provider("acme"))
	assert.True(t, errors.IsUnknownProvider(err))

	// Registered provider type without an adapter yet.
	_, err = Get(catalogs.ProviderUsnic)
	assert.True(t, errors.IsValidationError(err))
}

func TestList(t *testing.T) {
	ps := List()
	assert.Equal(t, []catalogs.Provider{catalogs.ProviderBanktrack, catalogs.ProviderCustombank}, ps)
	for _, p := range ps {
		assert.True(t, Has(p))
	}
}
