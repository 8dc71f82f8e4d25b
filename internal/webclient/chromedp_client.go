package webclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/antonvyukov/snag/internal/logging"
)

// ChromeDPClient renders pages in a headless browser and captures the
// serialized DOM instead of the raw transfer bytes. Useful when the target
// only makes sense after script execution.
type ChromeDPClient struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	idleAfter   time.Duration
	logger      logging.Logger
}

var _ WebClient = (*ChromeDPClient)(nil)

// NewChromeDPClient creates the browser-backed webclient. The browser process
// is started lazily on the first request and torn down on Close.
func NewChromeDPClient(cfg Config, logger logging.Logger) (*ChromeDPClient, error) {
	componentLogger := logger.With(logging.Field{Key: "backend", Value: "chromedp"})

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if !cfg.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	idleAfter := cfg.IdleAfter
	if idleAfter <= 0 {
		idleAfter = 2 * time.Second
	}

	componentLogger.Info("created chromedp webclient",
		logging.Field{Key: "idle_after", Value: idleAfter.String()},
		logging.Field{Key: "headless", Value: cfg.Headless})

	return &ChromeDPClient{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		idleAfter:   idleAfter,
		logger:      componentLogger,
	}, nil
}

// waitNetworkIdle signals once no network request has been in flight for
// idleAfter. The timer is armed immediately so pages that load nothing after
// the document still settle.
func waitNetworkIdle(ctx context.Context, idleAfter time.Duration) <-chan struct{} {
	idleChan := make(chan struct{})
	var activeReqs int32
	var timer *time.Timer
	var timerMutex sync.Mutex
	var once sync.Once

	startTimer := func() {
		timerMutex.Lock()
		defer timerMutex.Unlock()

		if timer != nil {
			timer.Stop()
		}

		timer = time.AfterFunc(idleAfter, func() {
			if atomic.LoadInt32(&activeReqs) == 0 {
				once.Do(func() { close(idleChan) })
			}
		})
	}

	chromedp.ListenTarget(ctx, func(ev any) {
		switch ev.(type) {
		case *network.EventRequestWillBeSent:
			atomic.AddInt32(&activeReqs, 1)
		case *network.EventLoadingFinished, *network.EventLoadingFailed:
			if atomic.AddInt32(&activeReqs, -1) <= 0 {
				startTimer()
			}
		}
	})

	startTimer()
	return idleChan
}

// Do navigates to the request URL, waits for the network to go idle and
// returns the rendered document. Only GET navigation is supported; request
// bodies and other methods are rejected.
func (cdc *ChromeDPClient) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if req.Method != "" && !strings.EqualFold(req.Method, http.MethodGet) {
		return nil, fmt.Errorf("chromedp backend supports GET only, got %s", req.Method)
	}

	tabCtx, cancel := chromedp.NewContext(cdc.allocCtx)
	defer cancel()

	// Propagate caller cancellation into the tab context.
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	// Capture the status of the main document response.
	var docStatus atomic.Int64
	var docProto atomic.Value
	chromedp.ListenTarget(tabCtx, func(ev any) {
		if resp, ok := ev.(*network.EventResponseReceived); ok {
			if resp.Type == network.ResourceTypeDocument && docStatus.Load() == 0 {
				docStatus.Store(resp.Response.Status)
				docProto.Store(resp.Response.Protocol)
			}
		}
	})

	waitIdleChan := waitNetworkIdle(tabCtx, cdc.idleAfter)

	cdc.logger.Debug("navigating", logging.Field{Key: "url", Value: req.URL})

	if err := chromedp.Run(tabCtx,
		network.Enable(),
		chromedp.Navigate(req.URL),
	); err != nil {
		return nil, fmt.Errorf("navigate %s: %w", req.URL, err)
	}

	select {
	case <-waitIdleChan:
	case <-tabCtx.Done():
		return nil, fmt.Errorf("waiting for network idle: %w", tabCtx.Err())
	}

	var html string
	if err := chromedp.Run(tabCtx, chromedp.OuterHTML("html", &html)); err != nil {
		return nil, fmt.Errorf("capture document: %w", err)
	}

	proto, _ := docProto.Load().(string)
	return &Response{
		Request:    req,
		Body:       []byte(html),
		Headers:    http.Header{},
		StatusCode: int(docStatus.Load()),
		Proto:      proto,
		FetchedAt:  time.Now(),
	}, nil
}

// Get is a convenience method for simple GET requests
func (cdc *ChromeDPClient) Get(ctx context.Context, url string) (*Response, error) {
	return cdc.Do(ctx, &Request{Method: http.MethodGet, URL: url})
}

func (cdc *ChromeDPClient) Close() error {
	cdc.logger.Info("closing chromedp webclient")
	cdc.allocCancel()
	return nil
}
