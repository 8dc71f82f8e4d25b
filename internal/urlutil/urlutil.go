// Package urlutil holds the URL canonicalization helpers shared by the fetch
// and extract modules.
package urlutil

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

var (
	ErrEmptyURL    = errors.New("empty url")
	ErrMissingHost = errors.New("missing host")
)

// Options controls optional canonicalization policies.
type Options struct {
	// DefaultScheme is assumed for schemeless input; if empty a scheme is
	// required.
	DefaultScheme string
}

// Canonicalize returns a deterministic canonical URL string or an error.
// Scheme and host are lowercased, IDN hosts are converted to punycode,
// default ports are dropped, userinfo and fragments are stripped.
func Canonicalize(raw string, opts Options) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &url.Error{Op: "parse", URL: raw, Err: ErrEmptyURL}
	}

	if opts.DefaultScheme != "" && !strings.Contains(raw, "://") {
		raw = opts.DefaultScheme + "://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	if u.Host == "" {
		return "", &url.Error{Op: "parse", URL: raw, Err: ErrMissingHost}
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Fragment = ""
	u.User = nil

	// Lowercase host and convert IDN -> punycode
	host := strings.ToLower(u.Hostname())
	if puny, err := idna.Lookup.ToASCII(host); err == nil {
		host = puny
	}

	// Preserve non-default port only
	port := u.Port()
	if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") || port == "" {
		u.Host = host
	} else {
		u.Host = net.JoinHostPort(host, port)
	}

	return u.String(), nil
}

// Resolve resolves ref against base and returns a full absolute URL string.
// Absolute refs are returned canonicalized; fragments-only refs resolve to
// the base itself.
func Resolve(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("couldn't parse base url %s: %w", base, err)
	}

	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", fmt.Errorf("couldn't parse ref url %s: %w", ref, err)
	}

	resolved := b.ResolveReference(r)
	resolved.Fragment = ""
	if resolved.Host == "" {
		return "", &url.Error{Op: "resolve", URL: ref, Err: ErrMissingHost}
	}
	return resolved.String(), nil
}

// SameHost reports whether two URL strings point at the same hostname.
func SameHost(a, b string) (bool, error) {
	ua, err := url.Parse(a)
	if err != nil {
		return false, fmt.Errorf("couldn't parse url %s: %w", a, err)
	}
	ub, err := url.Parse(b)
	if err != nil {
		return false, fmt.Errorf("couldn't parse url %s: %w", b, err)
	}
	return strings.EqualFold(ua.Hostname(), ub.Hostname()), nil
}
