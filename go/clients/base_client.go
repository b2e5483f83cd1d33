package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mcdev12/kickoff/go/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Waiter paces outbound calls to a provider
type Waiter interface {
	Wait(ctx context.Context)
}

type BaseClient struct {
	provider string
	baseURL  string
	client   *http.Client
	headers  map[string]string
	limiter  Waiter
}

func NewBaseClient(provider, baseURL string) *BaseClient {
	return &BaseClient{
		provider: provider,
		baseURL:  baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		headers: make(map[string]string),
	}
}

func (c *BaseClient) SetHeader(key, value string) {
	c.headers[key] = value
}

func (c *BaseClient) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// SetRateLimiter makes every request wait on the limiter before it is sent
func (c *BaseClient) SetRateLimiter(limiter Waiter) {
	c.limiter = limiter
}

func (c *BaseClient) MakeRequest(ctx context.Context, method, endpoint string, query url.Values, body io.Reader) ([]byte, error) {
	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	if c.limiter != nil {
		c.limiter.Wait(ctx)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(c.provider, endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(c.provider, endpoint, "error").Inc()
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestsTotal.WithLabelValues(c.provider, endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status code: %d, response: %s", resp.StatusCode, string(responseBody))
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	log.Debug().
		Str("provider", c.provider).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Int("size", len(responseBody)).
		Msg("provider request completed")

	return responseBody, nil
}

func (c *BaseClient) Get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	return c.MakeRequest(ctx, http.MethodGet, endpoint, query, nil)
}
