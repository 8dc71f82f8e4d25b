// Package webclient abstracts the outbound HTTP transport behind a small
// interface with pluggable backends. The nethttp backend performs plain
// protocol-level fetches; the chromedp backend drives a headless browser and
// captures the rendered document instead.
package webclient

import "context"

// WebClient executes outbound requests. Implementations must be safe for
// concurrent use.
type WebClient interface {
	// Do executes the request and returns the captured response.
	Do(ctx context.Context, req *Request) (*Response, error)

	// Get is a convenience wrapper for a plain GET of the given URL.
	Get(ctx context.Context, url string) (*Response, error)

	// Close releases any resources held by the backend.
	Close() error
}
