package webclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/antonvyukov/snag/internal/logging"
	"golang.org/x/net/http2"
)

// net/http backed implementation of webclient.
type NetHTTPClient struct {
	client *http.Client
	cfg    Config
	logger logging.Logger
}

var _ WebClient = (*NetHTTPClient)(nil)

// NewNetHTTPClient builds the plain-protocol backend. If httpClient is nil a
// client is constructed from cfg; either way the redirect hop bound from cfg
// is installed on the client.
func NewNetHTTPClient(cfg Config, logger logging.Logger, httpClient *http.Client) (*NetHTTPClient, error) {
	componentLogger := logger.With(logging.Field{Key: "backend", Value: "nethttp"})

	if httpClient == nil {
		transport := &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			// Pinned to HTTP/1.1 unless HTTP/2 is explicitly enabled.
			ForceAttemptHTTP2: false,
		}
		if cfg.EnableHTTP2 {
			if err := http2.ConfigureTransport(transport); err != nil {
				return nil, fmt.Errorf("configure http2: %w", err)
			}
		}
		// Timeout of zero means no deadline at all: a stalled server
		// blocks the transfer indefinitely.
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		}
	} else {
		// Copy the caller's client so installing the redirect policy
		// does not leak into a client shared elsewhere.
		clone := *httpClient
		httpClient = &clone
	}
	httpClient.CheckRedirect = redirectPolicy(cfg.MaxRedirects)

	componentLogger.Info("created nethttp webclient",
		logging.Field{Key: "timeout", Value: httpClient.Timeout.String()},
		logging.Field{Key: "max_redirects", Value: cfg.MaxRedirects},
		logging.Field{Key: "http2", Value: cfg.EnableHTTP2})

	return &NetHTTPClient{
		client: httpClient,
		cfg:    cfg,
		logger: componentLogger,
	}, nil
}

// redirectPolicy bounds the number of hops a redirect chain may take. maxHops
// of zero refuses any redirect.
func redirectPolicy(maxHops int) func(req *http.Request, via []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if len(via) > maxHops {
			return fmt.Errorf("%w: stopped after %d hops", ErrTooManyRedirects, maxHops)
		}
		return nil
	}
}

// Do implements the generic request execution using net/http. Non-2xx
// statuses are not errors: the response is captured and returned as-is.
func (nhc *NetHTTPClient) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}

	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	nhc.logger.Debug("sending http request",
		logging.Field{Key: "method", Value: method},
		logging.Field{Key: "url", Value: req.URL})

	var bodyReader io.Reader
	if len(req.Body) > 0 {
		bodyReader = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if req.Headers != nil {
		for k, vs := range req.Headers {
			for _, v := range vs {
				httpReq.Header.Add(k, v)
			}
		}
	}
	if httpReq.Header.Get("User-Agent") == "" && nhc.cfg.UserAgent != "" {
		httpReq.Header.Set("User-Agent", nhc.cfg.UserAgent)
	}

	resp, err := nhc.client.Do(httpReq)
	if err != nil {
		nhc.logger.Warn("http request failed",
			logging.Field{Key: "method", Value: method},
			logging.Field{Key: "url", Value: req.URL},
			logging.Field{Key: "error", Value: err.Error()})
		return nil, fmt.Errorf("http do: %w", err)
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		nhc.logger.Warn("failed to read response body",
			logging.Field{Key: "method", Value: method},
			logging.Field{Key: "url", Value: req.URL},
			logging.Field{Key: "error", Value: err.Error()})
		return nil, fmt.Errorf("read body: %w", err)
	}

	nhc.logger.Debug("received http response",
		logging.Field{Key: "status", Value: resp.StatusCode},
		logging.Field{Key: "proto", Value: resp.Proto},
		logging.Field{Key: "bytes", Value: len(body)})

	return &Response{
		Request:    req,
		Body:       body,
		Headers:    resp.Header,
		StatusCode: resp.StatusCode,
		Proto:      resp.Proto,
		FetchedAt:  time.Now(),
	}, nil
}

// Get is a convenience method for simple GET requests
func (nhc *NetHTTPClient) Get(ctx context.Context, url string) (*Response, error) {
	req := &Request{
		Method: http.MethodGet,
		URL:    url,
	}
	return nhc.Do(ctx, req)
}

func (nhc *NetHTTPClient) Close() error {
	nhc.logger.Info("closing nethttp webclient")
	nhc.client.CloseIdleConnections()
	return nil
}

// HTTPClient returns the underlying *http.Client
func (nhc *NetHTTPClient) HTTPClient() *http.Client {
	return nhc.client
}
