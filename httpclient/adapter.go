package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/synapseiq/site/logger"
	"github.com/synapseiq/site/resilience"
)

// Adapter sends requests to one base URL, with optional retry and circuit
// breaking around each call.
type Adapter struct {
	httpClient *http.Client
	config     Config
	cb         *resilience.CircuitBreaker
	log        *logger.Logger
}

// New validates cfg and builds an adapter. Breaker transitions and retries
// are logged unless cfg already carries its own callbacks.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Adapter{
		httpClient: &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
			Timeout:   cfg.Timeout,
		},
		log: logger.Get(cfg.Name),
	}
	if cfg.Retry != nil && cfg.Retry.OnRetry == nil {
		retry := *cfg.Retry
		retry.OnRetry = func(attempt int, err error, wait time.Duration) {
			a.log.Warn("retrying request", logger.MergeWithError(logger.Fields(
				"attempt", attempt, "backoff_ms", wait.Milliseconds()), err))
		}
		cfg.Retry = &retry
	}
	if cfg.CircuitBreaker != nil {
		cb := *cfg.CircuitBreaker
		if cb.OnStateChange == nil {
			cb.OnStateChange = func(name string, from, to resilience.State) {
				a.log.Warn("circuit breaker state changed", logger.Fields("breaker", name, "from", from.String(), "to", to.String()))
			}
		}
		a.cb = resilience.NewCircuitBreaker(cb)
	}
	a.config = cfg
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Option customises an Adapter after construction.
type Option func(*Adapter)

// WithHTTPClient replaces the underlying *http.Client. The configured
// timeout is kept unless the supplied client sets its own.
func WithHTTPClient(c *http.Client) Option {
	return func(a *Adapter) {
		if c.Timeout == 0 {
			c.Timeout = a.config.Timeout
		}
		a.httpClient = c
	}
}

// Do executes an HTTP request and returns the complete response. Non-2xx
// responses are returned together with a classified *Error.
func (a *Adapter) Do(ctx context.Context, req Request) (*Response, error) {
	if a.config.Retry != nil {
		return resilience.Retry(ctx, *a.config.Retry, func() (*Response, error) {
			return a.doOnce(ctx, req)
		})
	}
	return a.doOnce(ctx, req)
}

// doOnce executes a single HTTP request through the circuit breaker.
func (a *Adapter) doOnce(ctx context.Context, req Request) (*Response, error) {
	if a.cb == nil {
		return a.execute(ctx, req)
	}
	var resp *Response
	err := a.cb.Execute(func() error {
		var execErr error
		resp, execErr = a.execute(ctx, req)
		return execErr
	})
	return resp, err
}

func (a *Adapter) execute(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := a.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil || isTimeout(err) {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
	}
	if classErr := ClassifyStatusCode(resp.StatusCode, body); classErr != nil {
		return result, classErr
	}
	return result, nil
}

// buildRequest constructs an *http.Request from the adapter config and request.
func (a *Adapter) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	target := ResolveURL(a.config.BaseURL, req.Path)

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("create request: %v", err))
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	for k, v := range a.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	auth := a.config.Auth
	if req.Auth != nil {
		auth = req.Auth
	}
	auth.apply(httpReq)

	return httpReq, nil
}

// ResolveURL joins base and path with exactly one slash. Paths that are
// already absolute http(s) URLs, or an empty base, leave path unchanged.
func ResolveURL(base, path string) string {
	if base == "" || hasHTTPScheme(path) {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func hasHTTPScheme(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }
	t, ok := err.(timeout)
	return ok && t.Timeout()
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}

// Name returns the adapter name.
func (a *Adapter) Name() string {
	return a.config.Name
}

// BaseURL returns the configured base URL.
func (a *Adapter) BaseURL() string {
	return a.config.BaseURL
}

// IsAvailable reports false while the circuit breaker is open.
func (a *Adapter) IsAvailable(_ context.Context) bool {
	if a.cb != nil {
		return a.cb.State() != resilience.StateOpen
	}
	return true
}

// Close releases idle connections.
func (a *Adapter) Close(_ context.Context) error {
	a.httpClient.CloseIdleConnections()
	return nil
}
