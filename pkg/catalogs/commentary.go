package catalogs

import (
	"maps"
	"slices"

	"github.com/agentstation/utc"

	"github.com/greenfolio/bankmap/pkg/errors"
)

// Rating is the editorial environmental rating of a brand.
type Rating string

// Rating values, best to worst, plus the two indirect states.
const (
	RatingGreat   Rating = "great"
	RatingGood    Rating = "good"
	RatingOK      Rating = "ok"
	RatingBad     Rating = "bad"
	RatingWorst   Rating = "worst"
	RatingUnknown Rating = "unknown"
	RatingInherit Rating = "inherit" // defer to another brand's commentary
)

// Ratings returns all valid rating values.
func Ratings() []Rating {
	return []Rating{
		RatingGreat,
		RatingGood,
		RatingOK,
		RatingBad,
		RatingWorst,
		RatingUnknown,
		RatingInherit,
	}
}

// String returns the string representation of the rating.
func (r Rating) String() string {
	return string(r)
}

// IsValid returns true if the rating is one of the defined values.
func (r Rating) IsValid() bool {
	return slices.Contains(Ratings(), r)
}

// Commentary is the one-to-one extension of a Brand holding the editorial
// rating and display text. Only the raw rating and the inheritance pointer
// are stored; the resolved value is computed on demand by pkg/rating.
type Commentary struct {
	BrandTag           string         `json:"brand_tag" yaml:"brand_tag"`                                         // 1:1 key to the brand
	Rating             Rating         `json:"rating" yaml:"rating"`                                               // Raw rating enum, never the resolved value
	InheritBrandRating *string        `json:"inherit_brand_rating,omitempty" yaml:"inherit_brand_rating,omitempty"` // Tag of the brand to inherit from when Rating == inherit
	Summary            string         `json:"summary" yaml:"summary"`
	Details            string         `json:"details" yaml:"details"`
	FeatureOverrides   map[string]any `json:"feature_overrides,omitempty" yaml:"feature_overrides,omitempty"`
	LastReviewed       *utc.Time      `json:"last_reviewed,omitempty" yaml:"last_reviewed,omitempty"`
	UpdatedAt          utc.Time       `json:"updated_at" yaml:"updated_at"`
}

// InheritsFrom returns the inheritance target tag, or "" when unset.
func (c *Commentary) InheritsFrom() string {
	if c.InheritBrandRating == nil {
		return ""
	}
	return *c.InheritBrandRating
}

// UpdateRating sets a new rating and inheritance pointer and stamps
// LastReviewed as part of the same write. This is the only supported way
// to change a rating; there is no implicit on-save hook.
func (c *Commentary) UpdateRating(rating Rating, inheritFrom *string) error {
	if !rating.IsValid() {
		return errors.NewValidationError("rating", rating, "not a valid rating value")
	}
	if inheritFrom != nil && *inheritFrom != "" && !ValidTag(*inheritFrom) {
		return errors.NewValidationError("inherit_brand_rating", *inheritFrom, "must be a valid slug")
	}
	c.Rating = rating
	c.InheritBrandRating = inheritFrom
	now := utc.Now()
	c.LastReviewed = &now
	c.UpdatedAt = now
	return nil
}

// Validate checks commentary invariants.
func (c *Commentary) Validate() error {
	if !ValidTag(c.BrandTag) {
		return errors.NewValidationError("brand_tag", c.BrandTag, "must be a valid slug")
	}
	if c.Rating != "" && !c.Rating.IsValid() {
		return errors.NewValidationError("rating", c.Rating, "not a valid rating value")
	}
	if c.InheritBrandRating != nil && *c.InheritBrandRating != "" && !ValidTag(*c.InheritBrandRating) {
		return errors.NewValidationError("inherit_brand_rating", *c.InheritBrandRating, "must be a valid slug")
	}
	return nil
}

// Clone returns a deep copy of the commentary.
func (c Commentary) Clone() Commentary {
	clone := c
	if c.InheritBrandRating != nil {
		tag := *c.InheritBrandRating
		clone.InheritBrandRating = &tag
	}
	if c.LastReviewed != nil {
		ts := *c.LastReviewed
		clone.LastReviewed = &ts
	}
	if c.FeatureOverrides != nil {
		clone.FeatureOverrides = maps.Clone(c.FeatureOverrides)
	}
	return clone
}
