// Package rating resolves the effective rating of a brand by following
// the commentary inheritance chain. Reads resolve laxly: broken or cyclic
// chains degrade to unknown so display code never fails on bad data.
// Writes are guarded strictly, so a cyclic configuration can be read if
// it already exists but can never be saved.
package rating

import (
	"github.com/greenfolio/bankmap/pkg/catalogs"
	"github.com/greenfolio/bankmap/pkg/errors"
	"github.com/greenfolio/bankmap/pkg/logging"
)

// Resolver resolves effective ratings over a catalog.
type Resolver struct {
	catalog catalogs.Reader
}

// New creates a resolver over the given catalog.
func New(cat catalogs.Reader) *Resolver {
	return &Resolver{catalog: cat}
}

// Resolve returns the effective rating for a brand tag. A missing
// commentary, an unset inheritance pointer, or a cycle in the chain all
// resolve to unknown; cycles are additionally logged since they indicate
// data that predates write guarding.
func (r *Resolver) Resolve(brandTag string) catalogs.Rating {
	rating, err := r.walk(brandTag, newSeen())
	if err != nil {
		logging.Default().Warn().
			Str("brand", brandTag).
			Err(err).
			Msg("Cyclic rating inheritance, resolving to unknown")
		return catalogs.RatingUnknown
	}
	return rating
}

// ResolveStrict is Resolve, except a cycle in the inheritance chain is
// returned as a CycleError instead of degrading to unknown.
func (r *Resolver) ResolveStrict(brandTag string) (catalogs.Rating, error) {
	return r.walk(brandTag, newSeen())
}

// GuardWrite checks that saving the given commentary cannot introduce a
// rating inheritance cycle. It must be called before every commentary
// write; the commentary itself is evaluated as proposed, not as stored.
func (r *Resolver) GuardWrite(c catalogs.Commentary) error {
	if c.Rating != catalogs.RatingInherit {
		return nil
	}
	target := c.InheritsFrom()
	if target == "" {
		return nil
	}

	seen := newSeen()
	seen.add(c.BrandTag)
	_, err := r.walk(target, seen)
	return err
}

// seen is the visited set threaded through one resolution walk. The path
// slice preserves visit order for cycle error reporting.
type seen struct {
	tags map[string]struct{}
	path []string
}

func newSeen() *seen {
	return &seen{tags: make(map[string]struct{})}
}

func (s *seen) has(tag string) bool {
	_, ok := s.tags[tag]
	return ok
}

func (s *seen) add(tag string) {
	s.tags[tag] = struct{}{}
	s.path = append(s.path, tag)
}

// walk follows the inheritance chain from brandTag. The visited set
// accumulates across the whole walk, so it terminates on any finite
// graph in at most one step per commentary record.
func (r *Resolver) walk(brandTag string, visited *seen) (catalogs.Rating, error) {
	if visited.has(brandTag) {
		return catalogs.RatingUnknown, &errors.CycleError{
			Path: append(visited.path, brandTag),
		}
	}

	c, err := r.catalog.Commentary(brandTag)
	if err != nil {
		return catalogs.RatingUnknown, nil
	}

	if c.Rating != catalogs.RatingInherit {
		if c.Rating == "" {
			return catalogs.RatingUnknown, nil
		}
		return c.Rating, nil
	}

	target := c.InheritsFrom()
	if target == "" {
		return catalogs.RatingUnknown, nil
	}

	visited.add(brandTag)
	return r.walk(target, visited)
}
