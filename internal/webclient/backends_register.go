package webclient

import (
	"github.com/antonvyukov/snag/internal/logging"
)

// RegisterDefaultBackends registers the default nethttp and chromedp backends.
// Call this early in main() to make backends available to New.
func RegisterDefaultBackends() {
	RegisterBackend(string(BackendNetHTTP), func(cfg Config, logger logging.Logger) (WebClient, error) {
		return NewNetHTTPClient(cfg, logger, nil)
	})

	RegisterBackend(string(BackendChromedp), func(cfg Config, logger logging.Logger) (WebClient, error) {
		return NewChromeDPClient(cfg, logger)
	})
}
