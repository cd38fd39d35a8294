// Package tag generates unique, normalized slug identifiers for
// institution records. Generation is a pure function over a caller-owned
// set of existing tags: the caller supplies the current tag universe and
// commits each returned tag back into it before generating the next one
// in a batch, so no database round trip is needed per call.
package tag

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fallback is used when a name normalizes to nothing at all.
const fallback = "unnamed"

// Set is the universe of tags already in use.
type Set map[string]struct{}

// NewSet creates a Set seeded with the given tags.
func NewSet(tags ...string) Set {
	s := make(Set, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether the tag is already in use.
func (s Set) Has(t string) bool {
	_, ok := s[t]
	return ok
}

// Add marks a tag as in use.
func (s Set) Add(t string) {
	s[t] = struct{}{}
}

// asciiFold decomposes characters and strips combining marks, so that
// "Crédit Mutuel" folds to "Credit Mutuel".
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Generate returns a unique tag for baseName against the supplied set of
// existing tags. The name is transliterated to ASCII, lowercased,
// whitespace-collapsed to underscores, and stripped to [a-z0-9_]; prepend
// is applied before uniqueness checking, so source-record tags carry their
// provider prefix (e.g. "banktrack_"). On collision a zero-padded two
// digit counter is appended and incremented until an unused tag is found.
//
// Generate is deterministic and never mutates existing; committing the
// returned tag to the set is the caller's responsibility.
func Generate(baseName string, existing Set, prepend string) string {
	base := Normalize(baseName)
	if base == "" {
		base = fallback
	}

	candidate := prepend + base
	if !existing.Has(candidate) {
		return candidate
	}

	for n := 1; ; n++ {
		suffixed := fmt.Sprintf("%s_%02d", candidate, n)
		if !existing.Has(suffixed) {
			return suffixed
		}
	}
}

// Normalize reduces a display name to slug form without uniqueness
// handling: ASCII transliteration, lowercase, internal whitespace to a
// single underscore, everything outside [a-z0-9_] removed.
func Normalize(name string) string {
	folded, _, err := transform.String(asciiFold, name)
	if err != nil {
		folded = name
	}

	lowered := strings.ToLower(strings.TrimSpace(folded))
	joined := strings.Join(strings.Fields(lowered), "_")

	var b strings.Builder
	b.Grow(len(joined))
	for _, r := range joined {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
