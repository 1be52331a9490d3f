package geo

import (
	"regexp"
	"strings"
)

// Plan names end in a geography code, optionally versioned: "esim_1GB_7D_ES",
// "esim_10GB_30D_EUR_V2". Region codes are checked before country codes
// because region SKUs are the rarer, more specific case.
var (
	regionSuffix  = regexp.MustCompile(`([A-Z]{3,5})(?:_V\d+)?$`)
	countrySuffix = regexp.MustCompile(`([A-Z]{2})(?:_V\d+)?$`)
)

// ResolveLabel returns a display label for a plan, or "" when the encoded
// geography is not recognized. Resolution order: trailing region code,
// trailing country code, then any isolated ISO2 token in the description.
func ResolveLabel(planName, description string) string {
	if m := regionSuffix.FindStringSubmatch(planName); m != nil {
		if label, ok := Regions[m[1]]; ok {
			return label
		}
	}

	if m := countrySuffix.FindStringSubmatch(planName); m != nil {
		if name, ok := Countries[m[1]]; ok {
			return name
		}
	}

	// Weakest heuristic: an isolated two-letter uppercase token in the
	// description, bounded by non-uppercase characters or string edges.
	for _, token := range strings.FieldsFunc(description, notUpper) {
		if len(token) == 2 {
			if name, ok := Countries[token]; ok {
				return name
			}
		}
	}

	return ""
}

func notUpper(r rune) bool {
	return r < 'A' || r > 'Z'
}
