package catalogs

// SuggestedAssociation is an ephemeral, recomputable link between a
// datasource record and a candidate brand. Certainty is the edit distance
// that produced the suggestion: lower is more certain. Suggestions are
// fully regenerated by each suggestion run and never hand-edited.
type SuggestedAssociation struct {
	Datasource DatasourceKey `json:"datasource" yaml:"datasource"`
	BrandTag   string        `json:"brand_tag" yaml:"brand_tag"`
	Certainty  int           `json:"certainty" yaml:"certainty"`
}
