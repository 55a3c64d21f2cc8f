// Package graphql provides the HTTP transport to the label service's GraphQL endpoint.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
	"github.com/teabag-labs/teabag-snap/internal/core/ports/driven"
	"github.com/teabag-labs/teabag-snap/internal/logger"
)

// DefaultTimeout bounds one round trip when no client is supplied.
const DefaultTimeout = 30 * time.Second

// Ensure Transport implements the interface.
var _ driven.GraphQLTransport = (*Transport)(nil)

var log = logger.New("[graphql]")

// Transport POSTs GraphQL operations as JSON.
type Transport struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Transport.
type Option func(*Transport)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) {
		t.httpClient = c
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(t *Transport) {
		if d > 0 {
			t.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithRateLimit caps outbound requests to rps per second. Zero or negative
// leaves requests unthrottled.
func WithRateLimit(rps float64) Option {
	return func(t *Transport) {
		if rps > 0 {
			t.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewTransport creates a transport posting to endpoint, e.g.
// https://api.example.com/graphql.
func NewTransport(endpoint string, opts ...Option) *Transport {
	t := &Transport{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Endpoint returns the URL operations are posted to.
func (t *Transport) Endpoint() string {
	return t.endpoint
}

// Post sends op and decodes the response envelope.
func (t *Transport) Post(ctx context.Context, op domain.Operation, token string) (*domain.Envelope, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, domain.NewTransportError(fmt.Errorf("rate limit: %w", err))
	}

	body, err := json.Marshal(op)
	if err != nil {
		return nil, domain.NewTransportError(fmt.Errorf("encode operation: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewTransportError(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		log.Error("fetch error for %s: %v", op.OperationName, err)
		return nil, domain.NewTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error("fetch error for %s: status %d", op.OperationName, resp.StatusCode)
		return nil, domain.NewHTTPStatusError(resp.StatusCode, resp.Status)
	}

	var env domain.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		log.Error("fetch error for %s: %v", op.OperationName, err)
		return nil, domain.NewTransportError(fmt.Errorf("decode response: %w", err))
	}

	return &env, nil
}
