package webclient

import (
	"errors"
	"time"
)

type Backend string

const (
	BackendNetHTTP  Backend = "nethttp"
	BackendChromedp Backend = "chromedp"
)

// ErrTooManyRedirects is returned when a redirect chain exceeds the
// configured hop bound.
var ErrTooManyRedirects = errors.New("too many redirects")

// Config carries the transport options shared by all backends.
type Config struct {
	// Backend names the registered backend to construct. Empty selects
	// nethttp.
	Backend Backend

	// MaxRedirects bounds the number of redirect hops that will be
	// followed. 0 refuses any redirect.
	MaxRedirects int

	// Timeout is the whole-transfer deadline. 0 disables the deadline
	// entirely and the call may block for as long as the server stalls.
	Timeout time.Duration

	// UserAgent is sent when the request carries no User-Agent header.
	UserAgent string

	// EnableHTTP2 opts in to HTTP/2. When false the transport is pinned
	// to HTTP/1.1.
	EnableHTTP2 bool

	// Headless controls browser visibility for the chromedp backend.
	Headless bool

	// IdleAfter is how long the network must be quiet before the
	// chromedp backend considers the page settled.
	IdleAfter time.Duration
}

// DefaultConfig returns the transport options matching the tool's documented
// defaults: ten redirect hops, no timeout, HTTP/1.1.
func DefaultConfig() Config {
	return Config{
		Backend:      BackendNetHTTP,
		MaxRedirects: 10,
		Timeout:      0,
		EnableHTTP2:  false,
		Headless:     true,
		IdleAfter:    2 * time.Second,
	}
}
