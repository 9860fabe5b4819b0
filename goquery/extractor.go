// Package goquery provides a CSS-selector based implementation of
// linkcheck.Extractor for pulling resource references out of HTML pages.
package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/linkcheck"
)

// Compile-time interface verification.
var _ linkcheck.Extractor = (*Extractor)(nil)

// Extractor extracts link, image, script, and stylesheet references from
// HTML content.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns every reference in document order. References are
// returned as written in the document; resolution against the page URL is
// the caller's job.
//
// The underlying parser repairs malformed markup rather than failing, so
// broken HTML yields a partial result. An error is only possible when the
// input cannot be tokenized at all.
func (e *Extractor) Extract(body []byte) ([]linkcheck.Reference, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, linkcheck.Errorf(linkcheck.EINVALID, "failed to parse HTML: %v", err)
	}

	var refs []linkcheck.Reference

	add := func(raw string, kind linkcheck.ResourceKind) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return
		}
		refs = append(refs, linkcheck.Reference{URL: raw, Kind: kind})
	}

	// A single combined selector keeps matches in document order.
	doc.Find("a[href], img[src], script[src], link[href]").Each(func(_ int, sel *goquery.Selection) {
		switch goquery.NodeName(sel) {
		case "a":
			if href, ok := sel.Attr("href"); ok {
				add(href, linkcheck.KindPage)
			}
		case "img":
			if src, ok := sel.Attr("src"); ok {
				add(src, linkcheck.KindImage)
			}
		case "script":
			if src, ok := sel.Attr("src"); ok {
				add(src, linkcheck.KindScript)
			}
		case "link":
			if !isStylesheet(sel) {
				return
			}
			if href, ok := sel.Attr("href"); ok {
				add(href, linkcheck.KindStylesheet)
			}
		}
	})

	return refs, nil
}

// isStylesheet reports whether a link element declares rel=stylesheet.
// The rel attribute is a space-separated token list and case-insensitive.
func isStylesheet(sel *goquery.Selection) bool {
	rel, ok := sel.Attr("rel")
	if !ok {
		return false
	}
	for _, token := range strings.Fields(rel) {
		if strings.EqualFold(token, "stylesheet") {
			return true
		}
	}
	return false
}
