// Package refresh pulls brand attributes up to date from the brand's
// linked datasource records. Text fields are filled from the highest
// authority source that has a value; countries accumulate from every
// linked source and are never removed. Locked fields are never touched.
//
// Refresh itself is pure: it returns the updated brand and a per-field
// change report, and the caller saves the brand exactly once.
package refresh

import (
	"strings"

	"github.com/greenfolio/bankmap/pkg/catalogs"
	"github.com/greenfolio/bankmap/pkg/errors"
	"github.com/greenfolio/bankmap/pkg/logging"
)

// Field names a refreshable brand attribute.
type Field string

// Refreshable fields.
const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldWebsite     Field = "website"
	FieldCountries   Field = "countries"
)

// AllFields returns every refreshable field.
func AllFields() []Field {
	return []Field{FieldName, FieldDescription, FieldWebsite, FieldCountries}
}

// Change records a field's value before and after a refresh. Old and New
// are equal when the refresh left the field alone; the pair is still
// reported so batch logs show what was considered.
type Change struct {
	Old string
	New string
}

// Changed reports whether the refresh altered the field.
func (c Change) Changed() bool {
	return c.Old != c.New
}

// Changes maps each requested field to its change report. Locked fields
// are absent: they are never considered at all.
type Changes map[Field]Change

// Dirty reports whether any field actually changed. Callers stamp the
// brand's UpdatedAt only when this holds, so no-op refreshes do not
// churn timestamps.
func (c Changes) Dirty() bool {
	for _, ch := range c {
		if ch.Changed() {
			return true
		}
	}
	return false
}

// Options controls a refresh call.
type Options struct {
	// Fields to refresh; empty means all.
	Fields []Field
	// OverwriteExisting replaces already-set text values. A value still
	// equal to its system default counts as unset and is always
	// overwritten regardless of this flag.
	OverwriteExisting bool
}

// Refresh fills brand fields from the given linked datasource records and
// returns the updated brand with a per-field report. Text fields take the
// value of the highest authority source that has one; countries are the
// union of the brand's current list and every source's list. The input
// brand is not mutated.
func Refresh(brand catalogs.Brand, sources []*catalogs.Datasource, opts Options) (catalogs.Brand, Changes, error) {
	fields := opts.Fields
	if len(fields) == 0 {
		fields = AllFields()
	}

	updated := brand.Clone()
	ordered := byAuthority(sources)
	changes := make(Changes, len(fields))

	for _, f := range fields {
		switch f {
		case FieldName:
			if brand.NameLocked {
				continue
			}
			old := updated.Name
			unset := old == "" || old == catalogs.DefaultBrandName
			updated.Name = refreshText(old, unset || opts.OverwriteExisting, ordered, func(ds *catalogs.Datasource) string {
				return ds.Name
			})
			changes[f] = Change{Old: old, New: updated.Name}

		case FieldDescription:
			if brand.DescriptionLocked {
				continue
			}
			old := updated.Description
			updated.Description = refreshText(old, old == "" || opts.OverwriteExisting, ordered, func(ds *catalogs.Datasource) string {
				return ds.Description
			})
			changes[f] = Change{Old: old, New: updated.Description}

		case FieldWebsite:
			if brand.WebsiteLocked {
				continue
			}
			old := updated.Website
			updated.Website = refreshText(old, old == "" || opts.OverwriteExisting, ordered, func(ds *catalogs.Datasource) string {
				return ds.Website
			})
			changes[f] = Change{Old: old, New: updated.Website}

		case FieldCountries:
			if brand.CountriesLocked {
				continue
			}
			old := strings.Join(updated.Countries, ",")
			for _, ds := range sources {
				updated.AddCountries(ds.Countries...)
			}
			changes[f] = Change{Old: old, New: strings.Join(updated.Countries, ",")}

		default:
			return brand, nil, errors.NewValidationError("field", string(f), "not a refreshable field")
		}
	}

	for f, c := range changes {
		if c.Changed() {
			logging.Default().Debug().
				Str("brand", brand.Tag).
				Str("field", string(f)).
				Str("old", c.Old).
				Str("new", c.New).
				Msg("Refreshed brand field")
		}
	}

	return updated, changes, nil
}

// refreshText returns the replacement value for a text field, or old when
// nothing outranks it. A field being overwritable is necessary but not
// sufficient: some ordered source must actually carry a value.
func refreshText(old string, overwrite bool, ordered []*catalogs.Datasource, value func(*catalogs.Datasource) string) string {
	if !overwrite {
		return old
	}
	for _, ds := range ordered {
		if v := value(ds); v != "" {
			return v
		}
	}
	return old
}
