// Package tracker talks to the Wise Old Man and TempleOSRS public APIs.
package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrPlayerNotFound = errors.New("tracker: player not found")

// StatusError is a non-2xx response from a tracker.
type StatusError struct {
	Service string
	Status  int
	Body    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d: %s", e.Service, e.Status, e.Body)
}

type httpClient struct {
	service   string
	baseURL   string
	userAgent string
	http      *http.Client
}

func newHTTPClient(service, baseURL, userAgent string, timeout time.Duration) *httpClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &httpClient{
		service:   service,
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
	}
}

// raw performs the request and returns the body of a 2xx response.
func (c *httpClient) raw(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", c.service, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("%s read body: %w", c.service, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", c.service, ErrPlayerNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Service: c.service, Status: resp.StatusCode, Body: truncate(string(body), 512)}
	}
	return body, nil
}

func (c *httpClient) json(ctx context.Context, method, path string, query url.Values, out any) error {
	body, err := c.raw(ctx, method, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s decode: %w", c.service, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
