package refresh

import (
	"sort"

	"github.com/greenfolio/bankmap/pkg/catalogs"
)

// Authority defines the priority of one provider type when its records
// compete to fill a brand field. Higher priority wins.
type Authority struct {
	Provider catalogs.Provider
	Priority int
}

// defaultPriority applies to every provider without an explicit entry.
const defaultPriority = 10

// defaultAuthorities returns the standard provider ranking. Banktrack is
// the curated, institution-focused source and outranks everything;
// Bimpact certification data outranks the remaining scrapes and feeds,
// which are all equally trusted.
func defaultAuthorities() []Authority {
	return []Authority{
		{Provider: catalogs.ProviderBanktrack, Priority: 100},
		{Provider: catalogs.ProviderBimpact, Priority: 50},
	}
}

// rank returns the authority priority for a provider.
func rank(p catalogs.Provider) int {
	for _, a := range defaultAuthorities() {
		if a.Provider == p {
			return a.Priority
		}
	}
	return defaultPriority
}

// byAuthority returns the sources ordered by descending authority.
// The sort is stable so equally ranked sources keep their input order.
func byAuthority(sources []*catalogs.Datasource) []*catalogs.Datasource {
	ordered := make([]*catalogs.Datasource, len(sources))
	copy(ordered, sources)
	sort.SliceStable(ordered, func(i, j int) bool {
		return rank(ordered[i].Provider) > rank(ordered[j].Provider)
	})
	return ordered
}
