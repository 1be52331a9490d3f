package client

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/globalvoice/esim-balance/internal/metrics"
)

// CatalogClient calls the coverage and packages APIs. Both take form-encoded
// credentials and both keep a legacy ".php" endpoint alive; the legacy URL is
// tried once when the primary call fails. No other retry exists.
type CatalogClient struct {
	coverageURL string
	packagesURL string
	email       string
	password    string
	httpClient  *http.Client
}

// NewCatalogClient creates a new catalog client.
func NewCatalogClient(coverageURL, packagesURL, email, password string) *CatalogClient {
	return &CatalogClient{
		coverageURL: coverageURL,
		packagesURL: packagesURL,
		email:       email,
		password:    password,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Coverage fetches the list of sellable destinations. The returned status
// belongs to the attempt whose body is returned.
func (c *CatalogClient) Coverage(ctx context.Context) ([]byte, int, error) {
	form := url.Values{}
	form.Set("email", c.email)
	form.Set("password", c.password)

	return c.postFormWithFallback(ctx, c.coverageURL, form)
}

// Packages fetches the raw plan list for one ISO2 destination code.
func (c *CatalogClient) Packages(ctx context.Context, iso2 string) ([]byte, int, error) {
	form := url.Values{}
	form.Set("email", c.email)
	form.Set("password", c.password)
	form.Set("country", iso2)

	return c.postFormWithFallback(ctx, c.packagesURL, form)
}

// postFormWithFallback posts the form to the primary URL, then to its ".php"
// variant when the primary attempt signals non-success. The body and status
// of the last reachable attempt are returned undecoded; only when every
// attempt fails at the transport level does the call error.
func (c *CatalogClient) postFormWithFallback(ctx context.Context, primary string, form url.Values) ([]byte, int, error) {
	attempts := []string{primary, fallbackURL(primary)}

	var lastBody []byte
	var lastStatus int
	var lastErr error
	haveBody := false

	for _, target := range attempts {
		body, status, err := c.postForm(ctx, target, form)
		if err != nil {
			log.Printf("[CatalogClient] POST %s failed: %v", target, err)
			metrics.UpstreamRequestsTotal.WithLabelValues("catalog", "transport_error").Inc()
			lastErr = err
			continue
		}

		if status >= 200 && status < 300 {
			metrics.UpstreamRequestsTotal.WithLabelValues("catalog", "success").Inc()
			return body, status, nil
		}
		metrics.UpstreamRequestsTotal.WithLabelValues("catalog", "upstream_error").Inc()

		log.Printf("[CatalogClient] POST %s returned status %d", target, status)
		lastBody = body
		lastStatus = status
		haveBody = true
	}

	if haveBody {
		return lastBody, lastStatus, nil
	}
	return nil, 0, fmt.Errorf("catalog request failed on primary and fallback: %w", lastErr)
}

func (c *CatalogClient) postForm(ctx context.Context, target string, form url.Values) ([]byte, int, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "POST", target, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, 0, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

// fallbackURL appends the legacy ".php" suffix to the endpoint path.
func fallbackURL(primary string) string {
	return primary + ".php"
}
