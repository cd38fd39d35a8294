package catalogs

import (
	"regexp"
	"slices"
	"sort"

	"github.com/agentstation/utc"

	"github.com/greenfolio/bankmap/pkg/errors"
)

// DefaultBrandName is the placeholder name assigned to brands created
// before any source supplied a real one. The refresh engine treats a
// brand still carrying this value as unnamed and overwrites it freely.
const DefaultBrandName = "-unnamed-"

// MaxSubsidiaries bounds the ranked subsidiary-of relationships a brand
// may carry.
const MaxSubsidiaries = 4

// tagPattern is the restricted slug pattern every tag must match.
var tagPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// ValidTag reports whether s is a legal tag slug.
func ValidTag(s string) bool {
	return s != "" && tagPattern.MatchString(s)
}

// Brand is the canonical, user-facing institution record.
type Brand struct {
	ID          string   `json:"id" yaml:"id"`                    // Stable identifier (UUID), assigned at creation
	Tag         string   `json:"tag" yaml:"tag"`                  // Globally unique slug
	Name        string   `json:"name" yaml:"name"`                // Display name
	Description string   `json:"description" yaml:"description"`  // Editorial description
	Website     string   `json:"website" yaml:"website"`          // Primary website URL
	Countries   []string `json:"countries" yaml:"countries"`      // ISO country codes; superset-only once populated

	// Per-field locks vetoing automatic refresh from sources.
	NameLocked        bool `json:"name_locked" yaml:"name_locked"`
	DescriptionLocked bool `json:"description_locked" yaml:"description_locked"`
	WebsiteLocked     bool `json:"website_locked" yaml:"website_locked"`
	CountriesLocked   bool `json:"countries_locked" yaml:"countries_locked"`

	Subsidiaries []Subsidiary `json:"subsidiaries,omitempty" yaml:"subsidiaries,omitempty"` // Ranked subsidiary-of relationships, at most MaxSubsidiaries
	Identifiers  Identifiers  `json:"identifiers,omitempty" yaml:"identifiers,omitempty"`   // Institutional identifiers used as weak matching keys

	CreatedAt utc.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt utc.Time `json:"updated_at" yaml:"updated_at"`
}

// Subsidiary is a ranked subsidiary-of relationship carrying an
// ownership percentage.
type Subsidiary struct {
	BrandTag string  `json:"brand_tag" yaml:"brand_tag"` // Tag of the parent brand
	Percent  float64 `json:"percent" yaml:"percent"`     // Ownership percentage, 0-100
}

// Identifiers holds institutional identifier fields shared by brands and
// datasources. All fields are optional.
type Identifiers struct {
	LEI    string `json:"lei,omitempty" yaml:"lei,omitempty"`       // Legal Entity Identifier
	ISIN   string `json:"isin,omitempty" yaml:"isin,omitempty"`     // International Securities Identification Number
	RSSD   string `json:"rssd,omitempty" yaml:"rssd,omitempty"`     // Federal Reserve RSSD ID
	PermID string `json:"permid,omitempty" yaml:"permid,omitempty"` // Refinitiv Permanent Identifier
}

// Empty reports whether no identifier is set.
func (i Identifiers) Empty() bool {
	return i == Identifiers{}
}

// Validate checks brand invariants: the tag slug pattern, the subsidiary
// bound, and ownership percentage ranges.
func (b *Brand) Validate() error {
	if !ValidTag(b.Tag) {
		return errors.NewValidationError("tag", b.Tag, "must match ^[a-z0-9_-]+$ and be non-empty")
	}
	if len(b.Subsidiaries) > MaxSubsidiaries {
		return errors.NewValidationError("subsidiaries", len(b.Subsidiaries), "at most 4 subsidiary relationships")
	}
	for _, s := range b.Subsidiaries {
		if !ValidTag(s.BrandTag) {
			return errors.NewValidationError("subsidiaries", s.BrandTag, "subsidiary brand tag must be a valid slug")
		}
		if s.Percent < 0 || s.Percent > 100 {
			return errors.NewValidationError("subsidiaries", s.Percent, "ownership percent must be within 0-100")
		}
	}
	return nil
}

// Unnamed reports whether the brand still carries a default or blank name.
func (b *Brand) Unnamed() bool {
	return b.Name == "" || b.Name == DefaultBrandName
}

// HasCountry reports whether the brand lists the given country code.
func (b *Brand) HasCountry(code string) bool {
	return slices.Contains(b.Countries, code)
}

// AddCountries unions the given country codes into the brand's country
// list, keeping it sorted. Ingestion never removes a country, only adds.
// Returns true if the list changed.
func (b *Brand) AddCountries(codes ...string) bool {
	changed := false
	for _, code := range codes {
		if code == "" || b.HasCountry(code) {
			continue
		}
		b.Countries = append(b.Countries, code)
		changed = true
	}
	if changed {
		sort.Strings(b.Countries)
	}
	return changed
}

// Clone returns a deep copy of the brand.
func (b Brand) Clone() Brand {
	clone := b
	clone.Countries = slices.Clone(b.Countries)
	clone.Subsidiaries = slices.Clone(b.Subsidiaries)
	return clone
}
