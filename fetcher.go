package linkcheck

import (
	"context"
	"strings"
)

// FetchResult is the completed outcome of a single HTTP request. Any
// status the server returned, including 4xx and 5xx, is a completion;
// only transport failures (timeout, refused connection, TLS failure,
// redirect loop) surface as errors.
type FetchResult struct {
	StatusCode  int
	ContentType string

	// Body is the response body. Populated by Fetch, empty for Check.
	Body []byte
}

// IsHTML reports whether the response declared an HTML content type.
func (r *FetchResult) IsHTML() bool {
	mt := r.ContentType
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	mt = strings.ToLower(strings.TrimSpace(mt))
	return mt == "text/html" || mt == "application/xhtml+xml"
}

// Fetcher performs single-attempt HTTP requests with a bounded timeout.
// Transport failures are returned as errors carrying one of the
// transport error codes (ETIMEOUT, ECONNREFUSED, ETLS, EREDIRECT,
// EINTERNAL). Retry policy belongs to the caller.
type Fetcher interface {
	// Fetch issues a GET and returns the status and body. Used for
	// pages, whose content must be inspected for references.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Check issues a HEAD and returns the status without a body. Used
	// for assets and external pages. Implementations fall back to GET
	// when the server rejects HEAD.
	Check(ctx context.Context, url string) (*FetchResult, error)
}
