// Package news fetches top articles for a topic from newsapi.org. The API key
// comes from configuration at process start; it is never embedded in source.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the production newsapi.org endpoint.
const DefaultBaseURL = "https://newsapi.org/v2"

const defaultTimeout = 10 * time.Second

// DefaultLimit is how many articles a search returns when the caller does not
// say otherwise.
const DefaultLimit = 5

// Article is one article from a search. Only the fields the save-article flow
// persists are kept.
type Article struct {
	Source      Source `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// Source identifies the publisher of an article.
type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client queries newsapi.org.
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

// NewClient creates a news API client using the given API key.
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

// TopArticles returns up to limit articles matching the topic. A non-positive
// limit falls back to DefaultLimit.
func (c *Client) TopArticles(ctx context.Context, topic string, limit int) ([]Article, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	endpoint := strings.TrimRight(c.baseURL, "/") + "/everything"
	params := url.Values{}
	params.Set("q", topic)
	params.Set("pageSize", strconv.Itoa(limit))
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news search failed: unexpected status code %d", resp.StatusCode)
	}

	var payload struct {
		Status   string    `json:"status"`
		Articles []Article `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode news response: %w", err)
	}
	return payload.Articles, nil
}
