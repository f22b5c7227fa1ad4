// Package opendata fetches business-licence records from the City of Calgary
// open-data API (a Socrata-style paginated JSON endpoint).
package opendata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrUnavailable signals that the open-data endpoint could not be reached or
// answered with an error status. Safe to retry later.
var ErrUnavailable = errors.New("open data source unavailable")

// Config holds open-data client configuration.
type Config struct {
	BaseURL  string
	AppToken string
	PageSize int
	// DaysBack restricts results to licences first issued within the window.
	DaysBack int
	Timeout  time.Duration
}

// Client pages through the open-data endpoint one request at a time.
type Client struct {
	httpClient *http.Client
	baseURL    string
	appToken   string
	pageSize   int
	daysBack   int
}

// NewClient creates an open-data client.
func NewClient(cfg Config) *Client {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 500
	}
	if cfg.DaysBack <= 0 {
		cfg.DaysBack = 30
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		appToken:   cfg.AppToken,
		pageSize:   cfg.PageSize,
		daysBack:   cfg.DaysBack,
	}
}

// PageSize returns the configured page size.
func (c *Client) PageSize() int {
	return c.pageSize
}

// FetchPage fetches one page of raw licence records at the given offset.
// A page shorter than PageSize means the source is exhausted.
func (c *Client) FetchPage(ctx context.Context, offset int) ([]RawLicense, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -c.daysBack).Format("2006-01-02")
	q := u.Query()
	q.Set("$limit", fmt.Sprintf("%d", c.pageSize))
	q.Set("$offset", fmt.Sprintf("%d", offset))
	q.Set("$order", "first_iss_dt DESC")
	q.Set("$where", fmt.Sprintf("first_iss_dt >= '%s'", cutoff))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.appToken != "" {
		req.Header.Set("X-App-Token", c.appToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, body)
	}

	var records []RawLicense
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return records, nil
}
