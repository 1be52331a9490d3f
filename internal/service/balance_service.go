package service

import (
	"context"
	"encoding/json"
	"log"
	"math"

	"github.com/globalvoice/esim-balance/internal/apierror"
	"github.com/globalvoice/esim-balance/internal/client"
	"github.com/globalvoice/esim-balance/internal/config"
	"github.com/globalvoice/esim-balance/internal/geo"
	"github.com/globalvoice/esim-balance/internal/models"
)

// BalanceService fronts the bundle-usage API: raw pass-through for /balance
// and the normalized shape for /balance-clean.
type BalanceService struct {
	cfg         *config.Config
	usageClient *client.UsageClient
}

// NewBalanceService creates a new balance service.
func NewBalanceService(cfg *config.Config, usageClient *client.UsageClient) *BalanceService {
	return &BalanceService{
		cfg:         cfg,
		usageClient: usageClient,
	}
}

// RawUsage fetches the upstream usage answer without interpreting it.
func (s *BalanceService) RawUsage(ctx context.Context, iccid string) (*client.UsageResult, error) {
	if !s.cfg.HasUsageCredentials() {
		return nil, apierror.E(apierror.ConfigError)
	}

	res, err := s.usageClient.BundleUsage(ctx, iccid)
	if err != nil {
		return nil, apierror.Wrap(apierror.ProxyError, err)
	}

	return res, nil
}

// Normalize reshapes a successful usage payload into the clean balance form.
// Only the first bundle and its first assignment are authoritative; when the
// assignment has no direct quantity fields, the first allowance sub-record is
// used instead.
func (s *BalanceService) Normalize(body []byte) (*models.CleanBalanceResponse, error) {
	var env models.UsageEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, apierror.Wrap(apierror.ProxyError, err)
	}

	resp := &models.CleanBalanceResponse{}
	if len(env.Bundles) == 0 {
		log.Printf("[BalanceService] Usage payload carried no bundles")
		return resp, nil
	}

	bundle := env.Bundles[0]
	resp.PlanName = bundle.Name
	resp.Description = bundle.Description
	resp.Country = geo.ResolveLabel(bundle.Name, bundle.Description)

	if len(bundle.Assignments) == 0 {
		return resp, nil
	}

	a := bundle.Assignments[0]
	resp.BundleState = a.BundleState
	resp.ValidFrom = a.StartTime
	resp.ValidUntil = a.EndTime

	initial, remaining := a.InitialQuantity, a.RemainingQuantity
	if (initial == nil || remaining == nil) && len(a.Allowances) > 0 {
		if initial == nil {
			initial = a.Allowances[0].InitialAmount
		}
		if remaining == nil {
			remaining = a.Allowances[0].RemainingAmount
		}
	}

	if initial != nil {
		resp.InitialGB = bytesToGB(*initial)
	}
	if remaining != nil {
		resp.RemainingGB = bytesToGB(*remaining)
	}

	return resp, nil
}

// bytesToGB converts a byte count to GB, rounded to two decimals.
func bytesToGB(b float64) float64 {
	return math.Round(b/1e9*100) / 100
}
