package linkcheck

// Reference is a resource reference discovered in a page, as written in
// the document: possibly relative, possibly pointing at another scheme.
// The scheduler resolves references to canonical URLs and silently skips
// the ones that cannot be resolved.
type Reference struct {
	// URL is the raw attribute value (href or src).
	URL string

	// Kind is derived from the element: a=page, img=image,
	// script=script, link[rel=stylesheet]=stylesheet.
	Kind ResourceKind
}

// Extractor extracts resource references from HTML page content, in
// document order. Implementations must tolerate malformed markup: a
// parse problem yields a partial or empty result, never a failed crawl.
type Extractor interface {
	Extract(body []byte) ([]Reference, error)
}
