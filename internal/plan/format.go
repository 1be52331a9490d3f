package plan

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultSummaryLen is how many plans the speech summary includes when
	// the caller does not say.
	DefaultSummaryLen = 10
	// MaxSummaryLen caps caller-supplied summary lengths.
	MaxSummaryLen = 50
)

// Format renders one plan as a speech-ready fragment.
func Format(p Plan) string {
	if p.IsUnlimited {
		return fmt.Sprintf("Unlimited data / %d days — $%.2f", p.Days, p.Price)
	}
	gb := strconv.FormatFloat(p.GB, 'f', -1, 64)
	return fmt.Sprintf("%s GB / %d days — $%.2f", gb, p.Days, p.Price)
}

// Summary joins the first k plan fragments for a voice agent to read out.
func Summary(plans []Plan, k int) string {
	k = ClampLimit(k)
	if k > len(plans) {
		k = len(plans)
	}

	parts := make([]string, 0, k)
	for _, p := range plans[:k] {
		parts = append(parts, Format(p))
	}
	return strings.Join(parts, "; ")
}

// ClampLimit normalizes a caller-supplied summary length to [1, MaxSummaryLen],
// substituting the default for zero or negative values.
func ClampLimit(k int) int {
	if k <= 0 {
		return DefaultSummaryLen
	}
	if k > MaxSummaryLen {
		return MaxSummaryLen
	}
	return k
}
