// Package binance is a read-only client for the Binance REST API covering
// the account, trade, earn, auto-invest and market-data endpoints the
// tracker needs.
package binance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the production REST endpoint.
const DefaultBaseURL = "https://api.binance.com"

const (
	apiKeyHeader = "X-MBX-APIKEY"
	recvWindowMs = 5000
)

// ErrMissingCredentials is returned by signed endpoints when no API key or secret is configured.
var ErrMissingCredentials = errors.New("binance API key and secret must be set")

// APIError is a non-2xx response. Code and Msg are filled from Binance's
// {"code":..., "msg":...} error body when present.
type APIError struct {
	StatusCode int
	Code       int
	Msg        string
	Path       string
}

func (e *APIError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("binance API error %d at %s: code %d: %s", e.StatusCode, e.Path, e.Code, e.Msg)
	}
	return fmt.Sprintf("binance API error %d at %s", e.StatusCode, e.Path)
}

// Client is an HTTP client for the Binance REST API with retry on 429.
type Client struct {
	baseURL    string
	signer     *signer
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration
	now        func() time.Time
}

// NewClient creates a new Binance API client. apiKey and apiSecret may be
// empty when only public market data is used. A negative maxRetries means
// a single attempt.
func NewClient(baseURL, apiKey, apiSecret string, maxRetries int, baseDelay time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		baseURL:    baseURL,
		signer:     newSigner(apiKey, apiSecret),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		now:        time.Now,
	}
}

// publicGet performs an unsigned GET.
func (c *Client) publicGet(ctx context.Context, path string, params url.Values, dest any) error {
	return c.getJSON(ctx, path, func() (string, http.Header) {
		return params.Encode(), nil
	}, dest)
}

// signedGet performs a GET on a SIGNED endpoint. The timestamp and signature
// are recomputed for every attempt so retries are not rejected as stale.
func (c *Client) signedGet(ctx context.Context, path string, params url.Values, dest any) error {
	if !c.signer.ready() {
		return ErrMissingCredentials
	}
	return c.getJSON(ctx, path, func() (string, http.Header) {
		q := url.Values{}
		for k, v := range params {
			q[k] = v
		}
		q.Set("timestamp", strconv.FormatInt(c.now().UnixMilli(), 10))
		q.Set("recvWindow", strconv.Itoa(recvWindowMs))
		query := q.Encode()
		query += "&signature=" + c.signer.sign(query)

		h := http.Header{}
		h.Set(apiKeyHeader, c.signer.apiKey)
		return query, h
	}, dest)
}

func (c *Client) getJSON(ctx context.Context, path string, build func() (string, http.Header), dest any) error {
	body, err := c.get(ctx, path, build)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("parsing JSON from %s: %w", path, err)
	}
	return nil
}

// get performs a GET request with retry on 429.
func (c *Client) get(ctx context.Context, path string, build func() (string, http.Header)) ([]byte, error) {
	var lastErr error
	for attempt := range c.maxRetries + 1 {
		query, header := build()
		target := c.baseURL + path
		if query != "" {
			target += "?" + query
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		for k, v := range header {
			req.Header[k] = v
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("executing request: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading response: %w", err)
		}

		if resp.StatusCode == http.StatusOK {
			return body, nil
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("HTTP 429 at %s (attempt %d/%d)", path, attempt+1, c.maxRetries+1)
			if attempt < c.maxRetries {
				delay := c.baseDelay * time.Duration(1<<uint(attempt))
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(delay):
				}
				continue
			}
			return nil, lastErr
		}

		return nil, newAPIError(resp.StatusCode, path, body)
	}

	return nil, lastErr
}

func newAPIError(status int, path string, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Path: path}
	var payload struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Code = payload.Code
		apiErr.Msg = payload.Msg
	} else {
		apiErr.Msg = string(body)
	}
	return apiErr
}
