package models

import (
	"encoding/json"

	"github.com/globalvoice/esim-balance/internal/plan"
)

// ==================== Inbound DTOs ====================

// PlansQuery is the plans-by-destination input, accepted from body or query.
// Limit is a json.Number so callers sending "3" as a string still work.
type PlansQuery struct {
	Destination string      `json:"destination"`
	Limit       json.Number `json:"limit"`
}

// LimitValue returns the numeric limit, 0 when absent or unparseable.
func (q PlansQuery) LimitValue() int {
	v, err := q.Limit.Int64()
	if err != nil {
		return 0
	}
	return int(v)
}

// ==================== Response DTOs ====================

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Ok      bool   `json:"ok"`
	Ver     string `json:"ver"`
	Service string `json:"service"`
}

// CleanBalanceResponse is the normalized usage shape for /balance-clean.
// Quantities are converted from bytes to GB and rounded to two decimals.
type CleanBalanceResponse struct {
	PlanName    string  `json:"planName"`
	Description string  `json:"description"`
	Country     string  `json:"country"`
	BundleState string  `json:"bundleState"`
	ValidFrom   string  `json:"validFrom"`
	ValidUntil  string  `json:"validUntil"`
	InitialGB   float64 `json:"initialGB"`
	RemainingGB float64 `json:"remainingGB"`
}

// PlansResponse is returned by /plans-by-destination.
type PlansResponse struct {
	Label      string      `json:"label"`
	ISO2       string      `json:"iso2"`
	IsRegion   bool        `json:"isRegion"`
	TotalPlans int         `json:"totalPlans"`
	Plans      []plan.Plan `json:"plans"`
	TopText    string      `json:"topText"`
	Top3Text   string      `json:"top3Text"`
}

// ==================== Upstream usage payload ====================

// UsageEnvelope is the usage API response for one identifier. Only the first
// bundle and its first assignment are authoritative; quantity fields are
// pointers because older bundles omit them and only carry allowances.
type UsageEnvelope struct {
	Bundles []UsageBundle `json:"bundles"`
}

type UsageBundle struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Assignments []UsageAssignment `json:"assignments"`
}

type UsageAssignment struct {
	BundleState       string           `json:"bundleState"`
	StartTime         string           `json:"startTime"`
	EndTime           string           `json:"endTime"`
	InitialQuantity   *float64         `json:"initialQuantity"`
	RemainingQuantity *float64         `json:"remainingQuantity"`
	Allowances        []UsageAllowance `json:"allowances"`
}

type UsageAllowance struct {
	InitialAmount   *float64 `json:"initialAmount"`
	RemainingAmount *float64 `json:"remainingAmount"`
}
