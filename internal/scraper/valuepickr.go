// Package scraper talks to the external ValuePickr scraping service. The
// service crawls forum threads and returns an opaque research object; this
// package never inspects the payload beyond passing it through.
package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Service is what the intel handlers depend on. Both calls return nil
// without error when the scrape yields nothing.
type Service interface {
	// Research searches the forum by stock symbol.
	Research(ctx context.Context, symbol string) (json.RawMessage, error)
	// ResearchFromURL scrapes one specific thread URL.
	ResearchFromURL(ctx context.Context, url string) (json.RawMessage, error)
}

// Client calls the scraping service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Research(ctx context.Context, symbol string) (json.RawMessage, error) {
	return c.get(ctx, "/research", url.Values{"symbol": {symbol}})
}

func (c *Client) ResearchFromURL(ctx context.Context, topicURL string) (json.RawMessage, error) {
	return c.get(ctx, "/research", url.Values{"url": {topicURL}})
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build scraper request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call scraper: %w", err)
	}
	defer resp.Body.Close()

	// the service answers 404 / 204 when it found nothing
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scraper returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read scraper response: %w", err)
	}
	if len(body) == 0 || string(body) == "null" {
		return nil, nil
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("scraper returned invalid JSON")
	}
	return json.RawMessage(body), nil
}
