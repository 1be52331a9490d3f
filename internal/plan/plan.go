// Package plan maps raw catalog packages into a canonical shape and orders
// them for presentation. The upstream encodes "unlimited" data in several
// inconsistent conventions; detection and ordering live here so the rest of
// the service only ever sees normalized plans.
package plan

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// flex accepts a JSON string or number; the catalog is not consistent about
// which one it sends for volume, validity, and price.
type flex string

func (f *flex) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flex(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flex(n.String())
		return nil
	}
	*f = ""
	return nil
}

func (f flex) String() string {
	return strings.TrimSpace(string(f))
}

// Raw is one package record as the catalog API returns it.
type Raw struct {
	Name        flex `json:"name"`
	SKU         flex `json:"sku"`
	Description flex `json:"description"`
	Data        flex `json:"data"`
	Validity    flex `json:"validity"`
	Price       flex `json:"price"`
}

// Plan is the normalized form. Unlimited plans carry GB 0 and sort last.
type Plan struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	GB          float64 `json:"gb"`
	IsUnlimited bool    `json:"isUnlimited"`
	Days        int     `json:"days"`
	Price       float64 `json:"price"`
	Text        string  `json:"text"`

	sortKey float64
}

// Normalize maps every raw record to exactly one plan and orders the result:
// ascending data volume with unlimited treated as positive infinity, ties by
// validity length, then by price.
func Normalize(raws []Raw) []Plan {
	plans := make([]Plan, 0, len(raws))
	for _, raw := range raws {
		plans = append(plans, fromRaw(raw))
	}

	sort.SliceStable(plans, func(i, j int) bool {
		a, b := plans[i], plans[j]
		if a.sortKey != b.sortKey {
			return a.sortKey < b.sortKey
		}
		if a.Days != b.Days {
			return a.Days < b.Days
		}
		return a.Price < b.Price
	})

	return plans
}

func fromRaw(raw Raw) Plan {
	p := Plan{
		Name:        raw.Name.String(),
		Description: raw.Description.String(),
		Days:        parseInt(raw.Validity.String()),
		Price:       parseFloat(raw.Price.String()),
	}
	if p.Name == "" {
		p.Name = raw.SKU.String()
	}

	p.IsUnlimited = isUnlimited(raw)
	if p.IsUnlimited {
		p.sortKey = posInf
	} else {
		p.GB = parseFloat(raw.Data.String())
		p.sortKey = p.GB
	}

	p.Text = Format(p)
	return p
}

var posInf = math.Inf(1)

// isUnlimited applies the provider's conventions: "unlimited" in the
// description, "unl" in the SKU, a literal "unlimited"/"unl" volume, or a
// zero volume (their way of saying "no cap").
func isUnlimited(raw Raw) bool {
	if strings.Contains(strings.ToLower(raw.Description.String()), "unlimited") {
		return true
	}
	if strings.Contains(strings.ToLower(raw.SKU.String()), "unl") {
		return true
	}

	data := strings.ToLower(raw.Data.String())
	if data == "unlimited" || data == "unl" {
		return true
	}
	if v, err := strconv.ParseFloat(data, 64); err == nil && v == 0 && data != "" {
		return true
	}

	return false
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(v)
}
