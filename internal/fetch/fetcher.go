// Package fetch implements the transfer operation: one outbound GET, body
// captured whole, then emitted byte-for-byte to the caller's writer.
package fetch

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/antonvyukov/snag/internal/logging"
	"github.com/antonvyukov/snag/internal/webclient"
)

// Fetcher performs single fetch-and-emit transfers over a WebClient.
type Fetcher struct {
	wc     webclient.WebClient
	logger logging.Logger
}

// New creates a Fetcher with the given webclient and logger.
func New(wc webclient.WebClient, logger logging.Logger) (*Fetcher, error) {
	if wc == nil {
		return nil, fmt.Errorf("fetcher: webclient is nil")
	}
	if logger == nil {
		logger = logging.NewStderrLogger("fetcher", logging.LevelInfo)
	}
	return &Fetcher{wc: wc, logger: logger}, nil
}

// Fetch GETs the target URL and returns the captured response. The response
// status is not checked: a non-2xx answer is still a captured transfer and
// the caller decides what to do with its body.
func (f *Fetcher) Fetch(ctx context.Context, target string) (*webclient.Response, error) {
	transferID := uuid.NewString()
	log := f.logger.With(logging.Field{Key: "transfer_id", Value: transferID})

	log.Debug("starting transfer", logging.Field{Key: "url", Value: target})

	resp, err := f.wc.Get(ctx, target)
	if err != nil {
		log.Error("transfer failed",
			logging.Field{Key: "url", Value: target},
			logging.Field{Key: "error", Value: err.Error()})
		return nil, fmt.Errorf("error GETting %s: %w", target, err)
	}

	log.Debug("transfer complete",
		logging.Field{Key: "url", Value: target},
		logging.Field{Key: "status", Value: resp.StatusCode},
		logging.Field{Key: "bytes", Value: len(resp.Body)})

	return resp, nil
}

// Emit writes the captured body to w with no transformation.
func (f *Fetcher) Emit(w io.Writer, resp *webclient.Response) error {
	if resp == nil {
		return fmt.Errorf("fetcher: nil response")
	}
	if _, err := w.Write(resp.Body); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	return nil
}

// Run executes the whole operation: fetch the target and emit the body to w.
func (f *Fetcher) Run(ctx context.Context, target string, w io.Writer) error {
	resp, err := f.Fetch(ctx, target)
	if err != nil {
		return err
	}
	return f.Emit(w, resp)
}
