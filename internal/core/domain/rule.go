package domain

// FilterRule is one local predicate: a JSONPath evaluated against an
// asset's raw payload, and an optional case-insensitive pattern that some
// matched value must satisfy. A rule with no pattern matches on presence
// of the path alone.
type FilterRule struct {
	Path        string `json:"path"`
	Regex       string `json:"regex,omitempty"`
	Description string `json:"description,omitempty"`
}

// Label returns the name used for this rule in match accounting:
// the description when set, otherwise the path (with the pattern appended
// when one is present).
func (r FilterRule) Label() string {
	if r.Description != "" {
		return r.Description
	}
	if r.Regex != "" {
		return r.Path + ":" + r.Regex
	}
	return r.Path
}
