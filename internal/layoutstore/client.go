// Package layoutstore talks to a remote layout store over HTTP.
//
// The store exposes a base URL whose GET returns the list of saved layout
// names, GET base/name returns one layout document, and POST base/name
// overwrites it. Store failures are never fatal to the caller: they surface
// as *domain.FetchError values the session turns into user notices.
package layoutstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"toposcope/internal/domain"
)

// Client fetches and saves named layouts against one store base URL.
type Client struct {
	base string
	hc   *http.Client
}

// NewClient builds a client for the given base URL. A trailing slash on the
// base is tolerated.
func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// List returns the names of all saved layouts, sorted by the store. A store
// that has no layout collection yet may answer 404; that means no layouts
// are saved, not that the store is broken.
func (c *Client) List(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: c.base, Err: err}
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: c.base, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return []string{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &domain.FetchError{URL: c.base, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	var names []string
	if err := json.NewDecoder(resp.Body).Decode(&names); err != nil {
		return nil, &domain.FetchError{URL: c.base, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Get fetches one saved layout by name.
func (c *Client) Get(ctx context.Context, name string) (*domain.Layout, error) {
	var l domain.Layout
	if err := c.getJSON(ctx, c.layoutURL(name), &l); err != nil {
		return nil, err
	}
	if l.Nodes == nil {
		l.Nodes = make(map[string]domain.LayoutNode)
	}
	return &l, nil
}

// Put saves a layout under name, overwriting any existing layout with that
// name.
func (c *Client) Put(ctx context.Context, name string, l *domain.Layout) error {
	u := c.layoutURL(name)
	body, err := json.Marshal(l)
	if err != nil {
		return &domain.FetchError{URL: u, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return &domain.FetchError{URL: u, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		return &domain.FetchError{URL: u, Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.FetchError{URL: u, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	return nil
}

func (c *Client) layoutURL(name string) string {
	return c.base + "/" + url.PathEscape(name)
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &domain.FetchError{URL: u, Err: err}
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return &domain.FetchError{URL: u, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &domain.FetchError{URL: u, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.FetchError{URL: u, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
