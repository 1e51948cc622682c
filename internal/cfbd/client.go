package cfbd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zhales05/college-football-rankings/internal/store"
)

// Client fetches raw JSON from the CollegeFootballData API, writing every
// response through to the store so later runs can work offline.
type Client struct {
	HTTP         *http.Client
	Store        *store.JSONStore
	BaseURL      string
	UserAgent    string
	APIKey       string // sent as a Bearer token; the API rejects anonymous calls
	Sleep        time.Duration
	UseCache     bool
	DisableWrite bool
}

func NewClient(st *store.JSONStore, apiKey string) *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: 20 * time.Second},
		Store:     st,
		BaseURL:   "https://api.collegefootballdata.com",
		UserAgent: "cfb-rankings-raw/1.0",
		APIKey:    apiKey,
		Sleep:     250 * time.Millisecond,
		UseCache:  true,
	}
}

// FetchRaw downloads urlPath (like "/games?year=2024&seasonType=regular")
// and writes it to relPath. Returns raw bytes (from cache or network).
func (c *Client) FetchRaw(ctx context.Context, urlPath string, relPath string, force bool) ([]byte, error) {
	if !force && c.UseCache && c.Store.Exists(relPath) {
		return c.Store.ReadRaw(relPath)
	}

	if c.Sleep > 0 {
		time.Sleep(c.Sleep)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+urlPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s failed: %d body=%s", urlPath, resp.StatusCode, string(body))
	}

	if !c.DisableWrite {
		if err := c.Store.WriteRaw(relPath, body); err != nil {
			return nil, err
		}
	}
	return body, nil
}
