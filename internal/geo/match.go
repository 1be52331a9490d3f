package geo

import "strings"

// CoverageRecord is one sellable destination from the coverage API.
type CoverageRecord struct {
	Country string `json:"country"`
	ISO2    string `json:"iso2"`
	Region  string `json:"region"` // upstream convention: "Yes" / "No"
}

// IsRegion reports whether the record is a multi-country region bundle.
func (r CoverageRecord) IsRegion() bool {
	return strings.EqualFold(strings.TrimSpace(r.Region), "yes")
}

// The catalog lists Europe under varying spellings; a caller saying any of
// these means any of them.
var europeAliases = map[string]bool{
	"europe": true,
	"eu":     true,
	"eu+":    true,
}

// maxSuggestions caps the candidate list returned on a failed match.
const maxSuggestions = 10

// MatchDestination selects the coverage record best matching a free-text
// phrase. Strategies run in order of decreasing precision: exact name match,
// Europe synonym expansion, substring containment, ISO2 code equality. When
// none succeeds the boolean is false and suggestions holds up to ten country
// names to hand back to the caller.
func MatchDestination(phrase string, records []CoverageRecord) (CoverageRecord, []string, bool) {
	want := normalizePhrase(phrase)

	for _, rec := range records {
		if normalizePhrase(rec.Country) == want {
			return rec, nil, true
		}
	}

	if europeAliases[want] {
		for _, rec := range records {
			if europeAliases[normalizePhrase(rec.Country)] {
				return rec, nil, true
			}
		}
	}

	if want != "" {
		for _, rec := range records {
			if strings.Contains(normalizePhrase(rec.Country), want) {
				return rec, nil, true
			}
		}
	}

	for _, rec := range records {
		if strings.EqualFold(strings.TrimSpace(rec.ISO2), strings.TrimSpace(phrase)) {
			return rec, nil, true
		}
	}

	suggestions := make([]string, 0, maxSuggestions)
	for _, rec := range records {
		if len(suggestions) == maxSuggestions {
			break
		}
		if rec.Country != "" {
			suggestions = append(suggestions, rec.Country)
		}
	}

	return CoverageRecord{}, suggestions, false
}

// normalizePhrase trims, lowercases, and collapses internal whitespace.
func normalizePhrase(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}
