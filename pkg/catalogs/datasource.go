package catalogs

import (
	"fmt"
	"slices"

	"github.com/agentstation/utc"

	"github.com/greenfolio/bankmap/pkg/errors"
)

// Provider identifies the external data provider a datasource record came
// from. It is an explicit discriminant set at creation time: there is no
// runtime subclass resolution, and an unregistered value is a
// configuration error.
type Provider string

// Registered provider types, one concrete type per external provider.
const (
	ProviderBanktrack    Provider = "banktrack"
	ProviderBimpact      Provider = "bimpact"
	ProviderBocc         Provider = "bocc"
	ProviderFairfinance  Provider = "fairfinance"
	ProviderGabv         Provider = "gabv"
	ProviderMarketforces Provider = "marketforces"
	ProviderSwitchit     Provider = "switchit"
	ProviderUsnic        Provider = "usnic"
	ProviderWikidata     Provider = "wikidata"
	ProviderCustombank   Provider = "custombank"
)

// Providers returns all registered provider types.
func Providers() []Provider {
	return []Provider{
		ProviderBanktrack,
		ProviderBimpact,
		ProviderBocc,
		ProviderFairfinance,
		ProviderGabv,
		ProviderMarketforces,
		ProviderSwitchit,
		ProviderUsnic,
		ProviderWikidata,
		ProviderCustombank,
	}
}

// String returns the string representation of the provider type.
func (p Provider) String() string {
	return string(p)
}

// IsValid returns true if the provider is one of the registered types.
func (p Provider) IsValid() bool {
	return slices.Contains(Providers(), p)
}

// TagPrefix returns the fixed string prepended to tags generated for this
// provider's records, e.g. "banktrack_".
func (p Provider) TagPrefix() string {
	return string(p) + "_"
}

// DatasourceKey is the natural key of a datasource record:
// provider-native source ID, unique within its provider type.
type DatasourceKey struct {
	Provider Provider `json:"provider" yaml:"provider"`
	SourceID string   `json:"source_id" yaml:"source_id"`
}

// String returns the key in provider:source_id form.
func (k DatasourceKey) String() string {
	return fmt.Sprintf("%s:%s", k.Provider, k.SourceID)
}

// Datasource is one record per institution per external provider.
// Re-ingesting the same source ID updates the record in place.
type Datasource struct {
	Provider    Provider    `json:"provider" yaml:"provider"`       // Concrete provider type discriminant
	SourceID    string      `json:"source_id" yaml:"source_id"`     // Provider-native key
	Tag         string      `json:"tag" yaml:"tag"`                 // Prefixed slug, assigned at creation
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Website     string      `json:"website" yaml:"website"`
	Countries   []string    `json:"countries" yaml:"countries"`
	Identifiers Identifiers `json:"identifiers,omitempty" yaml:"identifiers,omitempty"`
	BrandTag    *string     `json:"brand_tag,omitempty" yaml:"brand_tag,omitempty"` // Back-reference to the linked brand, if any

	CreatedAt utc.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt utc.Time `json:"updated_at" yaml:"updated_at"`
}

// Key returns the datasource's natural key.
func (d *Datasource) Key() DatasourceKey {
	return DatasourceKey{Provider: d.Provider, SourceID: d.SourceID}
}

// Linked reports whether the datasource points at a brand.
func (d *Datasource) Linked() bool {
	return d.BrandTag != nil && *d.BrandTag != ""
}

// LinkedTo reports whether the datasource points at the given brand tag.
func (d *Datasource) LinkedTo(tag string) bool {
	return d.Linked() && *d.BrandTag == tag
}

// Validate checks datasource invariants.
func (d *Datasource) Validate() error {
	if !d.Provider.IsValid() {
		return &errors.UnknownProviderError{Provider: string(d.Provider)}
	}
	if d.SourceID == "" {
		return errors.NewValidationError("source_id", d.SourceID, "must not be empty")
	}
	if d.Tag != "" && !ValidTag(d.Tag) {
		return errors.NewValidationError("tag", d.Tag, "must match ^[a-z0-9_-]+$")
	}
	if d.BrandTag != nil && *d.BrandTag != "" && !ValidTag(*d.BrandTag) {
		return errors.NewValidationError("brand_tag", *d.BrandTag, "must be a valid slug")
	}
	return nil
}

// Clone returns a deep copy of the datasource.
func (d Datasource) Clone() Datasource {
	clone := d
	clone.Countries = slices.Clone(d.Countries)
	if d.BrandTag != nil {
		tag := *d.BrandTag
		clone.BrandTag = &tag
	}
	return clone
}
