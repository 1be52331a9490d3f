package client

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/globalvoice/esim-balance/internal/metrics"
)

// UsageClient calls the bundle-usage API for a single identifier. It does not
// interpret the payload: status and body are surfaced verbatim so the raw
// balance route can pass them straight through.
type UsageClient struct {
	baseURL    string
	apiKey     string
	version    string
	httpClient *http.Client
}

// NewUsageClient creates a new usage client.
func NewUsageClient(baseURL, apiKey, version string) *UsageClient {
	return &UsageClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		version: version,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// UsageResult is the undecoded upstream answer.
type UsageResult struct {
	Status int
	Body   []byte
}

// BundleUsage fetches the bundle list for an identifier.
func (c *UsageClient) BundleUsage(ctx context.Context, iccid string) (*UsageResult, error) {
	url := fmt.Sprintf("%s/v%s/esims/%s/bundles", c.baseURL, c.version, iccid)

	httpReq, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("usage", "transport_error").Inc()
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[UsageClient] Usage API returned status %d for iccid=%s", resp.StatusCode, iccid)
		metrics.UpstreamRequestsTotal.WithLabelValues("usage", "upstream_error").Inc()
	} else {
		metrics.UpstreamRequestsTotal.WithLabelValues("usage", "success").Inc()
	}

	return &UsageResult{Status: resp.StatusCode, Body: body}, nil
}
