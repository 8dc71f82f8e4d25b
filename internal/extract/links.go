// Package extract lists the URLs a fetched document refers to.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/antonvyukov/snag/internal/logging"
	"github.com/antonvyukov/snag/internal/urlutil"
)

// Extractor pulls outbound references (href/src attributes) out of an HTML
// document.
type Extractor struct {
	logger logging.Logger
}

// New creates an Extractor.
func New(logger logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.NewStderrLogger("extract", logging.LevelInfo)
	}
	return &Extractor{logger: logger}
}

// Links returns the absolute URLs referenced by body, resolved against
// baseURL, in document order with duplicates removed. Only http and https
// targets are reported. With sameHostOnly set, references to other hosts are
// dropped.
func (e *Extractor) Links(baseURL string, body []byte, sameHostOnly bool) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	var refs []string
	doc.Find("a[href], link[href], area[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			refs = append(refs, href)
		}
	})
	doc.Find("script[src], img[src], iframe[src]").Each(func(_ int, sel *goquery.Selection) {
		if src, ok := sel.Attr("src"); ok {
			refs = append(refs, src)
		}
	})

	seen := make(map[string]struct{}, len(refs))
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" || strings.HasPrefix(ref, "#") {
			continue
		}

		resolved, err := urlutil.Resolve(baseURL, ref)
		if err != nil {
			e.logger.Debug("skipping unresolvable reference",
				logging.Field{Key: "ref", Value: ref},
				logging.Field{Key: "error", Value: err.Error()})
			continue
		}
		if !strings.HasPrefix(resolved, "http://") && !strings.HasPrefix(resolved, "https://") {
			continue
		}

		if sameHostOnly {
			same, err := urlutil.SameHost(baseURL, resolved)
			if err != nil || !same {
				continue
			}
		}

		if _, dup := seen[resolved]; dup {
			continue
		}
		seen[resolved] = struct{}{}
		out = append(out, resolved)
	}

	return out, nil
}
