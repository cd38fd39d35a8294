package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenfolio/bankmap/pkg/catalogs"
	"github.com/greenfolio/bankmap/pkg/errors"
)

func commentary(t *testing.T, cat catalogs.Catalog, tag string, rating catalogs.Rating, inheritFrom string) {
	t.Helper()
	c := catalogs.Commentary{BrandTag: tag, Rating: rating}
	if inheritFrom != "" {
		c.InheritBrandRating = &inheritFrom
	}
	require.NoError(t, cat.SetCommentary(c))
}

func TestResolveDirect(t *testing.T) {
	cat := catalogs.NewEmpty()
	commentary(t, cat, "alpha", catalogs.RatingBad, "")

	assert.Equal(t, catalogs.RatingBad, New(cat).Resolve("alpha"))
}

func TestResolveMissingCommentary(t *testing.T) {
	cat := catalogs.NewEmpty()

	assert.Equal(t, catalogs.RatingUnknown, New(cat).Resolve("nobody"))
}

func TestResolveInheritUnset(t *testing.T) {
	cat := catalogs.NewEmpty()
	commentary(t, cat, "alpha", catalogs.RatingInherit, "")

	assert.Equal(t, catalogs.RatingUnknown, New(cat).Resolve("alpha"))
}

func TestResolveChain(t *testing.T) {
	cat := catalogs.NewEmpty()
	// alpha -> beta -> gamma, gamma holds the real rating.
	commentary(t, cat, "alpha", catalogs.RatingInherit, "beta")
	commentary(t, cat, "beta", catalogs.RatingInherit, "gamma")
	commentary(t, cat, "gamma", catalogs.RatingGreat, "")

	r := New(cat)
	assert.Equal(t, catalogs.RatingGreat, r.Resolve("alpha"))

	got, err := r.ResolveStrict("alpha")
	require.NoError(t, err)
	assert.Equal(t, catalogs.RatingGreat, got)
}

func TestResolveCycle(t *testing.T) {
	cat := catalogs.NewEmpty()
	commentary(t, cat, "alpha", catalogs.RatingInherit, "beta")
	commentary(t, cat, "beta", catalogs.RatingInherit, "alpha")

	r := New(cat)

	// Lax resolution degrades to unknown so readers never fail.
	assert.Equal(t, catalogs.RatingUnknown, r.Resolve("alpha"))

	// Strict resolution surfaces the cycle.
	_, err := r.ResolveStrict("alpha")
	require.Error(t, err)
	assert.True(t, errors.IsCycle(err))

	var cycleErr *errors.CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"alpha", "beta", "alpha"}, cycleErr.Path)
}

func TestResolveSelfCycle(t *testing.T) {
	cat := catalogs.NewEmpty()
	commentary(t, cat, "alpha", catalogs.RatingInherit, "alpha")

	r := New(cat)
	assert.Equal(t, catalogs.RatingUnknown, r.Resolve("alpha"))

	_, err := r.ResolveStrict("alpha")
	assert.True(t, errors.IsCycle(err))
}

func TestResolveSharedAncestorIsNotACycle(t *testing.T) {
	cat := catalogs.NewEmpty()
	// Two chains converging on one ancestor resolve fine; only a revisit
	// within a single walk is a cycle.
	commentary(t, cat, "alpha", catalogs.RatingInherit, "parent")
	commentary(t, cat, "beta", catalogs.RatingInherit, "parent")
	commentary(t, cat, "parent", catalogs.RatingOK, "")

	r := New(cat)
	assert.Equal(t, catalogs.RatingOK, r.Resolve("alpha"))
	assert.Equal(t, catalogs.RatingOK, r.Resolve("beta"))
}

func TestGuardWrite(t *testing.T) {
	cat := catalogs.NewEmpty()
	commentary(t, cat, "beta", catalogs.RatingInherit, "alpha")

	r := New(cat)

	// Pointing alpha at beta would close the loop alpha -> beta -> alpha.
	target := "beta"
	bad := catalogs.Commentary{BrandTag: "alpha", Rating: catalogs.RatingInherit, InheritBrandRating: &target}
	assert.True(t, errors.IsCycle(r.GuardWrite(bad)))

	// A direct rating is always writable, whatever the pointer says.
	direct := catalogs.Commentary{BrandTag: "alpha", Rating: catalogs.RatingGood, InheritBrandRating: &target}
	assert.NoError(t, r.GuardWrite(direct))

	// Inheriting from an acyclic chain is fine.
	safe := "gamma"
	commentary(t, cat, "gamma", catalogs.RatingGreat, "")
	ok := catalogs.Commentary{BrandTag: "alpha", Rating: catalogs.RatingInherit, InheritBrandRating: &safe}
	assert.NoError(t, r.GuardWrite(ok))
}
