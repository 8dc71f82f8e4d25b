package webclient

import (
	"net/http"
	"time"
)

type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte
	// Options contains backend-specific options like "render": "true" for chromedp
	Options map[string]string
}

type Response struct {
	Request    *Request
	Headers    http.Header
	Body       []byte
	StatusCode int
	// Proto is the negotiated protocol version ("HTTP/1.1", "HTTP/2.0").
	// Empty when the backend cannot observe it.
	Proto     string
	FetchedAt time.Time
}
