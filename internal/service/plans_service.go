package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/globalvoice/esim-balance/internal/apierror"
	"github.com/globalvoice/esim-balance/internal/client"
	"github.com/globalvoice/esim-balance/internal/config"
	"github.com/globalvoice/esim-balance/internal/geo"
	"github.com/globalvoice/esim-balance/internal/models"
	"github.com/globalvoice/esim-balance/internal/plan"
)

// DefaultDestination applies when a caller asks for plans without naming a
// destination at all.
const DefaultDestination = "Europe"

// PlansService answers plans-by-destination queries: coverage lookup, then
// destination matching, then the plan list for the matched ISO2 code. The
// two outbound calls are sequential because the second needs the first's
// ISO2 result.
type PlansService struct {
	cfg           *config.Config
	catalogClient *client.CatalogClient
}

// NewPlansService creates a new plans service.
func NewPlansService(cfg *config.Config, catalogClient *client.CatalogClient) *PlansService {
	return &PlansService{
		cfg:           cfg,
		catalogClient: catalogClient,
	}
}

// PlansByDestination resolves a free-text destination phrase and returns the
// normalized, ordered plan list with speech-ready summaries.
func (s *PlansService) PlansByDestination(ctx context.Context, destination string, limit int) (*models.PlansResponse, error) {
	if !s.cfg.HasCatalogCredentials() {
		return nil, apierror.E(apierror.ConfigError)
	}

	if strings.TrimSpace(destination) == "" {
		destination = DefaultDestination
	}
	limit = plan.ClampLimit(limit)

	covBody, covStatus, err := s.catalogClient.Coverage(ctx)
	if err != nil {
		return nil, apierror.Wrap(apierror.ProxyError, err)
	}
	if covStatus < 200 || covStatus >= 300 {
		// An error body is never coverage data, even when it parses.
		log.Printf("[PlansService] Coverage lookup returned status %d", covStatus)
		return nil, apierror.E(apierror.BadCoveragePayload)
	}

	records, err := decodeCoverage(covBody)
	if err != nil {
		return nil, err
	}

	rec, suggestions, ok := geo.MatchDestination(destination, records)
	if !ok {
		log.Printf("[PlansService] No coverage match for destination=%q (%d records)", destination, len(records))
		return nil, apierror.E(apierror.NotFound).WithSuggestions(suggestions)
	}

	pkgBody, pkgStatus, err := s.catalogClient.Packages(ctx, rec.ISO2)
	if err != nil {
		return nil, apierror.Wrap(apierror.ProxyError, err)
	}
	if pkgStatus < 200 || pkgStatus >= 300 {
		log.Printf("[PlansService] Packages lookup for %s returned status %d", rec.ISO2, pkgStatus)
		return nil, apierror.E(apierror.BadPlansPayload)
	}

	raws, err := decodePackages(pkgBody)
	if err != nil {
		return nil, err
	}

	plans := plan.Normalize(raws)
	log.Printf("[PlansService] destination=%q matched %s (%s), %d plans", destination, rec.Country, rec.ISO2, len(plans))

	shown := plans
	if limit < len(shown) {
		shown = shown[:limit]
	}

	return &models.PlansResponse{
		Label:      rec.Country,
		ISO2:       rec.ISO2,
		IsRegion:   rec.IsRegion(),
		TotalPlans: len(plans),
		Plans:      shown,
		TopText:    plan.Summary(plans, limit),
		Top3Text:   plan.Summary(plans, 3),
	}, nil
}

// decodeCoverage accepts the bare list or the {"data":[...]} wrapper the
// legacy endpoint uses.
func decodeCoverage(body []byte) ([]geo.CoverageRecord, error) {
	var records []geo.CoverageRecord
	if err := json.Unmarshal(body, &records); err == nil {
		return records, nil
	}

	var wrapper struct {
		Data []geo.CoverageRecord `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.Data != nil {
		return wrapper.Data, nil
	}

	return nil, apierror.E(apierror.BadCoveragePayload)
}

func decodePackages(body []byte) ([]plan.Raw, error) {
	var raws []plan.Raw
	if err := json.Unmarshal(body, &raws); err == nil {
		return raws, nil
	}

	var wrapper struct {
		Data []plan.Raw `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.Data != nil {
		return wrapper.Data, nil
	}

	return nil, apierror.E(apierror.BadPlansPayload)
}
