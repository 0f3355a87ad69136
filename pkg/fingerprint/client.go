package fingerprint

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client probes a Moodle installation over HTTP. Every request carries the
// configured user agent and is bounded by the caller's context on top of
// the client timeout.
type Client struct {
	cli       *http.Client
	base      *url.URL
	userAgent string
}

// NewClient validates the target URL and builds a probing client. A target
// without scheme or host is unusable and fails the scan up front.
func NewClient(target string, timeout time.Duration, userAgent string) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(target, "/"))
	if err != nil {
		return nil, fmt.Errorf("unusable target %q: %w", target, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unusable target %q: scheme must be http or https", target)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("unusable target %q: no host", target)
	}

	return &Client{
		cli:       &http.Client{Timeout: timeout},
		base:      u,
		userAgent: userAgent,
	}, nil
}

// Target returns the normalized target URL.
func (c *Client) Target() string {
	return c.base.String()
}

// CheckTarget verifies the target answers at all. It does not insist on a
// Moodle landing page, hardened sites hide it, but an unreachable host is a
// fatal scan error.
func (c *Client) CheckTarget(ctx context.Context) error {
	res, err := c.get(ctx, "/")
	if err != nil {
		return fmt.Errorf("target %s is unreachable: %w", c.base, err)
	}
	defer res.Body.Close()

	io.Copy(io.Discard, io.LimitReader(res.Body, 1<<20))

	return nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	return c.cli.Do(req)
}

// fetch reads a page body, capped to keep a hostile server from feeding us
// gigabytes of nothing.
func (c *Client) fetch(ctx context.Context, path string) (int, string, error) {
	res, err := c.get(ctx, path)
	if err != nil {
		return 0, "", err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return res.StatusCode, "", err
	}

	return res.StatusCode, string(body), nil
}
