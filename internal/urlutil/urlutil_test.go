package urlutil_test

import (
	"errors"
	"testing"

	"github.com/antonvyukov/snag/internal/urlutil"
)

func TestCanonicalize_LowercasesAndStripsDefaults(t *testing.T) {
	t.Parallel()

	got, err := urlutil.Canonicalize("HTTPS://Example.COM:443/a?x=1#frag", urlutil.Options{})
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	want := "https://example.com/a?x=1"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCanonicalize_DefaultScheme(t *testing.T) {
	t.Parallel()

	got, err := urlutil.Canonicalize("example.com/style.css", urlutil.Options{DefaultScheme: "https"})
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	if got != "https://example.com/style.css" {
		t.Errorf("unexpected canonical url %q", got)
	}
}

func TestCanonicalize_KeepsNonDefaultPort(t *testing.T) {
	t.Parallel()

	got, err := urlutil.Canonicalize("http://example.com:8080/x", urlutil.Options{})
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	if got != "http://example.com:8080/x" {
		t.Errorf("unexpected canonical url %q", got)
	}
}

func TestCanonicalize_IDNHostToPunycode(t *testing.T) {
	t.Parallel()

	got, err := urlutil.Canonicalize("https://bücher.example/css", urlutil.Options{})
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	if got != "https://xn--bcher-kva.example/css" {
		t.Errorf("unexpected canonical url %q", got)
	}
}

func TestCanonicalize_EmptyAndHostless(t *testing.T) {
	t.Parallel()

	if _, err := urlutil.Canonicalize("   ", urlutil.Options{}); !errors.Is(err, urlutil.ErrEmptyURL) {
		t.Errorf("expected ErrEmptyURL, got %v", err)
	}
	if _, err := urlutil.Canonicalize("/relative/only", urlutil.Options{}); !errors.Is(err, urlutil.ErrMissingHost) {
		t.Errorf("expected ErrMissingHost, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	cases := []struct {
		base, ref, want string
	}{
		{"https://example.com/app/index.html", "users.css", "https://example.com/app/users.css"},
		{"https://example.com/app/", "../login", "https://example.com/login"},
		{"https://example.com/app/", "/static/site.css", "https://example.com/static/site.css"},
		{"https://example.com/app/", "https://foo.com/x", "https://foo.com/x"},
	}
	for _, c := range cases {
		got, err := urlutil.Resolve(c.base, c.ref)
		if err != nil {
			t.Fatalf("Resolve(%q, %q): %v", c.base, c.ref, err)
		}
		if got != c.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", c.base, c.ref, got, c.want)
		}
	}
}

func TestSameHost(t *testing.T) {
	t.Parallel()

	same, err := urlutil.SameHost("https://Example.com/a", "http://example.com:8080/b")
	if err != nil {
		t.Fatalf("SameHost: %v", err)
	}
	if !same {
		t.Error("expected hosts to match")
	}

	same, err = urlutil.SameHost("https://example.com", "https://example.org")
	if err != nil {
		t.Fatalf("SameHost: %v", err)
	}
	if same {
		t.Error("expected hosts to differ")
	}
}
