// Package graphql pkg/graphql/client.go provides the HTTP transport for
// the fixed set of GraphQL documents unradar issues against a server.
package graphql

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultRateLimit = 10 // requests per second
	defaultRateBurst = 20
	maxRedirects     = 3
	graphqlPath      = "/graphql"
	maxErrorBody     = 512
)

type request struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// Client executes GraphQL documents against one server. It is safe for
// concurrent use. Certificate failures are retried once with
// verification relaxed, and an HTTP->HTTPS redirect permanently
// upgrades the endpoint; both adjustments are remembered for
// subsequent requests.
type Client struct {
	mu         sync.RWMutex
	endpoint   string // full URL of the graphql route
	origin     string // scheme://host, sent as the Origin header
	apiKey     string
	verify     bool
	insecure   bool // verification relaxed after a failed handshake
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	bufferPool *sync.Pool
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit overrides the outbound request rate limit.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewClient creates a transport for the server at endpoint (scheme and
// host, with or without the graphql path). When verifySSL is false the
// transport never verifies certificates.
func NewClient(endpoint, apiKey string, verifySSL bool, opts ...ClientOption) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", errInvalidEndpoint, endpoint, err)
	}

	if base.Scheme != "http" && base.Scheme != "https" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", errInvalidEndpoint, endpoint)
	}

	if base.Path == "" {
		base.Path = graphqlPath
	}

	c := &Client{
		endpoint: base.String(),
		origin:   base.Scheme + "://" + base.Host,
		apiKey:   apiKey,
		verify:   verifySSL,
		timeout:  defaultTimeout,
		limiter:  rate.NewLimiter(rate.Limit(defaultRateLimit), defaultRateBurst),
		bufferPool: &sync.Pool{
			New: func() interface{} {
				return new(bytes.Buffer)
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.httpClient = c.newHTTPClient(!verifySSL)

	return c, nil
}

// Execute implements Executor.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("graphql rate limiter: %w", err)
	}

	body, err := c.encodeRequest(query, variables)
	if err != nil {
		return nil, err
	}

	endpoint, origin := c.target()
	tlsRetried := false

	for redirects := 0; ; {
		resp, err := c.post(ctx, endpoint, origin, body)
		if err != nil {
			if IsTLSUntrusted(err) && !tlsRetried && !c.isInsecure() {
				tlsRetried = true

				c.relaxVerification()
				log.Printf("GraphQL endpoint %s failed certificate verification, retrying with verification disabled", endpoint)

				continue
			}

			return nil, fmt.Errorf("graphql request to %s: %w", endpoint, err)
		}

		location := redirectLocation(resp)
		if location == "" {
			return c.decodeResponse(resp)
		}

		drainBody(resp)

		redirects++
		if redirects > maxRedirects {
			return nil, errRedirectLoop
		}

		endpoint, origin, err = c.followRedirect(endpoint, location)
		if err != nil {
			return nil, err
		}
	}
}

// UpdateAPIKey swaps the credential used for subsequent requests. Used
// by the re-authentication flow.
func (c *Client) UpdateAPIKey(apiKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.apiKey = apiKey
}

// Endpoint returns the current GraphQL URL, reflecting any remembered
// HTTPS upgrade.
func (c *Client) Endpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.endpoint
}

// Insecure reports whether certificate verification has been relaxed,
// either by configuration or by the automatic retry.
func (c *Client) Insecure() bool {
	return c.isInsecure()
}

func (c *Client) encodeRequest(query string, variables map[string]interface{}) ([]byte, error) {
	buf := c.bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer c.bufferPool.Put(buf)

	enc := json.NewEncoder(buf)
	if err := enc.Encode(request{Query: query, Variables: variables}); err != nil {
		return nil, fmt.Errorf("graphql encode request: %w", err)
	}

	return append([]byte(nil), buf.Bytes()...), nil
}

func (c *Client) post(ctx context.Context, endpoint, origin string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.mu.RLock()
	apiKey := c.apiKey
	client := c.httpClient
	c.mu.RUnlock()

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("Origin", origin)

	return client.Do(req)
}

func (c *Client) decodeResponse(resp *http.Response) (json.RawMessage, error) {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("Error closing GraphQL response body: %v", err)
		}
	}()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUnauthorized, resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: %d (%s)", errHTTPStatus, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []ErrorEntry    `json:"errors"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("graphql decode response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		for _, entry := range envelope.Errors {
			if entry.Extensions.Code == unauthenticatedCode {
				return nil, fmt.Errorf("%w: %s", ErrUnauthorized, entry.Message)
			}
		}

		return nil, &ResponseError{Errors: envelope.Errors}
	}

	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil, errEmptyResponse
	}

	return envelope.Data, nil
}

// followRedirect resolves location against the current endpoint. An
// upgrade from HTTP to HTTPS is remembered for all future requests.
func (c *Client) followRedirect(current, location string) (endpoint, origin string, err error) {
	base, err := url.Parse(current)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", errInvalidEndpoint, current)
	}

	next := base
	if location != "" {
		ref, parseErr := url.Parse(location)
		if parseErr != nil {
			return "", "", fmt.Errorf("%w: redirect to %q", errInvalidEndpoint, location)
		}

		next = base.ResolveReference(ref)
	}

	endpoint = next.String()
	origin = next.Scheme + "://" + next.Host

	if base.Scheme == "http" && next.Scheme == "https" {
		c.mu.Lock()
		c.endpoint = endpoint
		c.origin = origin
		c.mu.Unlock()

		log.Printf("GraphQL endpoint upgraded to HTTPS: %s", endpoint)
	}

	return endpoint, origin, nil
}

func (c *Client) target() (endpoint, origin string) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.endpoint, c.origin
}

func (c *Client) isInsecure() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.insecure || !c.verify
}

func (c *Client) relaxVerification() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.insecure = true
	c.httpClient = c.newHTTPClient(true)
}

func (c *Client) newHTTPClient(insecure bool) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // explicit fallback path
	}

	return &http.Client{
		Timeout:   c.timeout,
		Transport: transport,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			// Redirects are handled in Execute so POST bodies are
			// replayed and HTTPS upgrades can be remembered.
			return http.ErrUseLastResponse
		},
	}
}

func redirectLocation(resp *http.Response) string {
	switch resp.StatusCode {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return resp.Header.Get("Location")
	default:
		return ""
	}
}

func drainBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))

	if err := resp.Body.Close(); err != nil {
		log.Printf("Error closing redirect response body: %v", err)
	}
}
