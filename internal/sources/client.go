package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/windoze95/recipefinder-api/internal/config"
	"github.com/windoze95/recipefinder-api/internal/metrics"
	"golang.org/x/time/rate"
)

// maxBodyBytes caps how much of a provider response is read.
const maxBodyBytes = 4 << 20

// StatusError is returned when a provider answers with a non-200 status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Code)
}

// jsonClient performs throttled GET requests against one provider and
// records a metric for every call.
type jsonClient struct {
	source     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func newJSONClient(source string, ep config.SourceEndpoint) *jsonClient {
	limit := rate.Inf
	if ep.RequestsPerSecond > 0 {
		limit = rate.Limit(ep.RequestsPerSecond)
	}
	burst := ep.Burst
	if burst <= 0 {
		burst = 1
	}
	timeout := ep.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &jsonClient{
		source:     source,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, burst),
	}
}

// getBody fetches rawURL and returns the body of a 200 response. When decode
// is non-nil it runs on the body before the call is recorded as successful.
func (c *jsonClient) getBody(ctx context.Context, operation, rawURL string, decode func([]byte) error) ([]byte, error) {
	start := time.Now()

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.ObserveSourceRequest(c.source, operation, metrics.OutcomeTransport, time.Since(start))
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", c.source, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveSourceRequest(c.source, operation, metrics.OutcomeTransport, time.Since(start))
		return nil, fmt.Errorf("%s request failed: %w", c.source, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.ObserveSourceRequest(c.source, operation, metrics.OutcomeTransport, time.Since(start))
		return nil, fmt.Errorf("failed to read %s response: %w", c.source, err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.ObserveSourceRequest(c.source, operation, metrics.OutcomeHTTPError, time.Since(start))
		return nil, &StatusError{Code: resp.StatusCode}
	}

	if decode != nil {
		if err := decode(body); err != nil {
			metrics.ObserveSourceRequest(c.source, operation, metrics.OutcomeDecode, time.Since(start))
			return nil, fmt.Errorf("failed to parse %s response: %w", c.source, err)
		}
	}

	metrics.ObserveSourceRequest(c.source, operation, metrics.OutcomeOK, time.Since(start))
	return body, nil
}

// getJSON fetches rawURL and decodes a 200 response into v.
func (c *jsonClient) getJSON(ctx context.Context, operation, rawURL string, v interface{}) error {
	_, err := c.getBody(ctx, operation, rawURL, func(body []byte) error {
		return json.Unmarshal(body, v)
	})
	return err
}
