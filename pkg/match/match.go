// Package match provides the approximate string matching used to flag
// likely duplicate institutions and to score datasource-vs-brand
// candidate pairs. Similarity is Levenshtein edit distance over
// case-normalized, punctuation-stripped names; a small module-wide
// threshold decides what counts as a match at all.
package match

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// DefaultMaxDistance is the module-wide acceptance threshold: candidate
// pairs farther apart than this are never returned.
const DefaultMaxDistance = 3

// Wildcard replaces stripped character spans in a match target. Keeping a
// marker on the target side distinguishes "characters removed from the
// candidate" from "characters removed from the query", so a candidate that
// lost punctuation still costs edit distance against a clean query.
const Wildcard = "*"

// Entry is one indexed name with an optional weight. Higher weights rank
// earlier among equal-distance matches.
type Entry struct {
	Key    string
	Weight int
}

// Match is a single lookup result.
type Match struct {
	Key      string
	Distance int
}

// Index is an immutable similarity index over a set of name entries.
// It may be queried repeatedly without mutation.
type Index struct {
	entries     []Entry
	maxDistance int
}

// Option configures an Index.
type Option func(*Index)

// WithMaxDistance overrides the acceptance threshold.
func WithMaxDistance(d int) Option {
	return func(idx *Index) {
		idx.maxDistance = d
	}
}

// NewIndex builds an index over the given entries.
func NewIndex(entries []Entry, opts ...Option) *Index {
	idx := &Index{
		entries:     append([]Entry(nil), entries...),
		maxDistance: DefaultMaxDistance,
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// MaxDistance returns the index's acceptance threshold.
func (idx *Index) MaxDistance() int {
	return idx.maxDistance
}

// Lookup returns every indexed entry within the acceptance threshold of
// query, ordered by ascending edit distance. Ties are broken by
// descending weight, then key, so results are deterministic.
func (idx *Index) Lookup(query string) []Match {
	q := NormalizeQuery(query)

	type scored struct {
		Match
		weight int
	}
	var hits []scored
	for _, e := range idx.entries {
		d := levenshtein.ComputeDistance(q, NormalizeTarget(e.Key))
		if d <= idx.maxDistance {
			hits = append(hits, scored{Match{Key: e.Key, Distance: d}, e.Weight})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		if hits[i].weight != hits[j].weight {
			return hits[i].weight > hits[j].weight
		}
		return hits[i].Key < hits[j].Key
	})

	matches := make([]Match, len(hits))
	for i, h := range hits {
		matches[i] = h.Match
	}
	return matches
}

// Distance scores a query string against a candidate target using the
// package normalization rules: the query has non-alphanumerics removed,
// the target has each non-alphanumeric span collapsed to the wildcard.
func Distance(query, target string) int {
	return levenshtein.ComputeDistance(NormalizeQuery(query), NormalizeTarget(target))
}

// NormalizeQuery lowercases and strips everything outside [0-9a-z].
func NormalizeQuery(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeTarget lowercases and collapses each run of characters outside
// [0-9a-z] to a single wildcard token. Leading and trailing runs are
// dropped rather than wildcarded.
func NormalizeTarget(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inGap := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if inGap && b.Len() > 0 {
				b.WriteString(Wildcard)
			}
			inGap = false
			b.WriteRune(r)
		} else {
			inGap = true
		}
	}
	return b.String()
}
