package demoorigin_test

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/antonvyukov/snag/internal/demoorigin"
	"github.com/antonvyukov/snag/internal/logging"
)

func newOrigin(t *testing.T) *httptest.Server {
	t.Helper()
	s := demoorigin.NewServer(demoorigin.DefaultConfig(), logging.NewTestLogger(false))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestServer_Stylesheet(t *testing.T) {
	t.Parallel()
	ts := newOrigin(t)

	resp, err := http.Get(ts.URL + "/styles/site.css")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/css; charset=utf-8" {
		t.Errorf("unexpected content type %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if len(body) == 0 {
		t.Error("expected non-empty stylesheet")
	}
}

func TestServer_ChainRedirectsToStylesheet(t *testing.T) {
	t.Parallel()
	ts := newOrigin(t)

	// Default http.Client follows up to 10 redirects; /chain/3 is 4 hops total.
	resp, err := http.Get(ts.URL + "/chain/3")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("expected chain to land on stylesheet, got %d", resp.StatusCode)
	}
	if resp.Request.URL.Path != "/chain/0" {
		t.Errorf("expected final URL /chain/0, got %s", resp.Request.URL.Path)
	}
	body, _ := io.ReadAll(resp.Body)
	if ct := resp.Header.Get("Content-Type"); ct != "text/css; charset=utf-8" {
		t.Errorf("expected stylesheet content type, got %q", ct)
	}
	if len(body) == 0 {
		t.Error("expected stylesheet body at end of chain")
	}
}

func TestServer_ChainSingleHopTarget(t *testing.T) {
	t.Parallel()
	ts := newOrigin(t)

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Get(ts.URL + "/chain/5")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Errorf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/chain/4" {
		t.Errorf("expected next hop /chain/4, got %q", loc)
	}
}

func TestServer_ChainRejectsBadHopCount(t *testing.T) {
	t.Parallel()
	ts := newOrigin(t)

	resp, err := http.Get(ts.URL + "/chain/banana")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestServer_GzipServesEncodedStylesheet(t *testing.T) {
	t.Parallel()
	ts := newOrigin(t)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/gzip", nil)
	req.Header.Set("Accept-Encoding", "gzip") // disable transparent decoding
	resp, err := http.DefaultTransport.RoundTrip(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if enc := resp.Header.Get("Content-Encoding"); enc != "gzip" {
		t.Fatalf("expected gzip encoding, got %q", enc)
	}

	gz, err := gzip.NewReader(resp.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	decoded, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) == 0 {
		t.Error("expected decoded stylesheet content")
	}
}
