package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// Options tunes one run's shared Client.
type Options struct {
	Timeout        time.Duration // per-request; 0 means 20s
	RequestsPerSec float64       // per-host politeness limit; 0 means 2
	Burst          int           // limiter burst; 0 means 4
}

// Client is the run-wide HTTP client: one pooled transport plus a
// per-host rate limiter shared by every harvest task.
type Client struct {
	hc      *http.Client
	limiter *hostLimiter
}

func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.RequestsPerSec <= 0 {
		opts.RequestsPerSec = 2
	}
	if opts.Burst <= 0 {
		opts.Burst = 4
	}
	return &Client{
		hc: &http.Client{
			Timeout: opts.Timeout,
			// own transport so Close tears down this run's pool only
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		},
		limiter: newHostLimiter(opts.RequestsPerSec, opts.Burst),
	}
}

// Get fetches url and returns the body of a 2xx response. Non-2xx
// statuses come back as *StatusError; transport failures keep their
// net/url error chain so Retryable can classify them.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	return c.Do(ctx, http.MethodGet, url)
}

// Do performs one request with the run's transport and limiter.
func (c *Client) Do(ctx context.Context, method, url string) ([]byte, error) {
	if err := c.limiter.waitURL(ctx, url); err != nil {
		return nil, fmt.Errorf("limiter wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/html;q=0.9, */*;q=0.8")

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		// drain so the connection goes back to the pool
		io.Copy(io.Discard, io.LimitReader(res.Body, 4<<10))
		return nil, &StatusError{URL: url, Status: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}

// Close releases the run's idle connections.
func (c *Client) Close() {
	c.hc.CloseIdleConnections()
}
