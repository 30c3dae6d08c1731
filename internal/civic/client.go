// Package civic talks to the Google Civic Information API. Only the
// representatives-by-address lookup is consumed, and of each response only the
// officials and offices lists.
package civic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the production civic information endpoint.
const DefaultBaseURL = "https://www.googleapis.com/civicinfo/v2"

const defaultTimeout = 15 * time.Second

// Client queries the civic information API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (tests, proxies).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if strings.TrimSpace(baseURL) != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient creates a civic API client using the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LookupByAddress fetches the officials and offices for a postal address.
// Failures come back as a *LookupError wrapping ErrInvalidAddress or
// ErrServiceUnavailable.
func (c *Client) LookupByAddress(ctx context.Context, address string) (*Response, error) {
	endpoint := strings.TrimRight(c.baseURL, "/") + "/representatives"
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &LookupError{Message: err.Error(), Err: ErrServiceUnavailable}
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &LookupError{Message: err.Error(), Err: ErrServiceUnavailable}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, lookupError(resp.StatusCode, resp.Body)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &LookupError{
			StatusCode: resp.StatusCode,
			Message:    "malformed response: " + err.Error(),
			Err:        ErrServiceUnavailable,
		}
	}
	return &out, nil
}

// lookupError classifies a non-200 response. The upstream reports a rejected
// address as a 4xx whose message mentions the address; everything else is
// treated as transient.
func lookupError(status int, body io.Reader) *LookupError {
	msg := upstreamMessage(body)

	kind := ErrServiceUnavailable
	if status >= 400 && status < 500 && strings.Contains(strings.ToLower(msg), "address") {
		kind = ErrInvalidAddress
	}
	return &LookupError{StatusCode: status, Message: msg, Err: kind}
}

func upstreamMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4<<10))
	if err != nil {
		return ""
	}
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return strings.TrimSpace(string(raw))
}
