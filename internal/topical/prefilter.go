// Package topical implements the rule-based geography pre-filter applied to
// search results before any stance classification.
package topical

import "strings"

// Default vocabularies. Claim locations identify a regionally scoped claim;
// conflict locations are places whose presence in evidence (but not in the
// claim) marks the evidence as provably off-topic.
var (
	defaultClaimLocations = []string{
		"台北", "臺北", "台中", "臺中", "台南", "臺南", "高雄", "台灣", "臺灣", "新北",
	}
	defaultConflictLocations = []string{
		"San Diego", "Beijing", "北京", "Shanghai", "上海",
		"Hong Kong", "香港", "Tokyo", "東京", "Seoul", "首爾",
		"Singapore", "新加坡", "London", "New York", "Paris",
	}
)

// PreFilter drops evidence whose geography provably conflicts with a
// regionally scoped claim. It is pure and stateless, and deliberately
// lenient: the rule only fires on an explicit conflict, never on the absence
// of a match, so relevant evidence is never dropped by accident. Evidence it
// keeps may still be classified irrelevant later; that is acceptable.
type PreFilter struct {
	claimLocations    []string
	conflictLocations []string
}

// NewPreFilter creates a pre-filter with the default location vocabularies
func NewPreFilter() *PreFilter {
	return &PreFilter{
		claimLocations:    defaultClaimLocations,
		conflictLocations: defaultConflictLocations,
	}
}

// Keep reports whether the evidence should be retained for analysis
func (f *PreFilter) Keep(claim, evidenceTitle, evidenceBody string) bool {
	hasClaimLocation := false
	for _, loc := range f.claimLocations {
		if strings.Contains(claim, loc) {
			hasClaimLocation = true
			break
		}
	}

	if !hasClaimLocation {
		return true
	}

	evidenceText := evidenceTitle + " " + evidenceBody

	// Drop only when a known-conflicting place appears in the evidence and
	// nowhere in the claim itself
	for _, loc := range f.conflictLocations {
		if strings.Contains(evidenceText, loc) && !strings.Contains(claim, loc) {
			return false
		}
	}

	return true
}
