// Package http provides the net/http implementation of linkcheck.Fetcher
// and a sitemap-based seed source.
package http

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/fwojciec/linkcheck"
)

// Defaults for fetcher construction.
const (
	// DefaultTimeout bounds a single request, including redirects.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxRedirects caps redirect chains before the fetch fails
	// with EREDIRECT.
	DefaultMaxRedirects = 10

	// DefaultUserAgent identifies the crawler to target servers.
	DefaultUserAgent = "linkcheck/1.0"

	// maxBodyBytes caps how much of a response body is read. Pages
	// larger than this are extracted from a truncated body.
	maxBodyBytes = 5 << 20
)

// errTooManyRedirects marks a redirect chain that exceeded the cap.
var errTooManyRedirects = errors.New("too many redirects")

// Compile-time interface verification.
var _ linkcheck.Fetcher = (*Fetcher)(nil)

// Fetcher validates URLs over plain HTTP. Requests are single-attempt:
// retry policy, if any, belongs to the scheduler.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	maxRedirects int
	userAgent    string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxRedirects sets the redirect cap.
// Defaults to DefaultMaxRedirects if not specified.
func WithMaxRedirects(n int) Option {
	return func(f *Fetcher) {
		f.maxRedirects = n
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultTimeout,
		maxRedirects: DefaultMaxRedirects,
		userAgent:    DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= f.maxRedirects {
				return errTooManyRedirects
			}
			return nil
		},
	}

	return f
}

// Fetch issues a GET and returns the status, content type, and body.
// Every HTTP status is a completion; only transport failures return an
// error, classified into linkcheck transport codes.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*linkcheck.FetchResult, error) {
	resp, err := f.do(ctx, http.MethodGet, url)
	if err != nil {
		return nil, classify(err, url)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classify(err, url)
	}

	return &linkcheck.FetchResult{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// Check issues a HEAD and returns the status without reading a body.
// Servers that reject HEAD (405, 501) are retried once with GET, with
// the body discarded.
func (f *Fetcher) Check(ctx context.Context, url string) (*linkcheck.FetchResult, error) {
	resp, err := f.do(ctx, http.MethodHead, url)
	if err != nil {
		return nil, classify(err, url)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	resp.Body.Close()

	if resp.StatusCode == http.StatusMethodNotAllowed || resp.StatusCode == http.StatusNotImplemented {
		result, err := f.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		result.Body = nil
		return result, nil
	}

	return &linkcheck.FetchResult{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

func (f *Fetcher) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, linkcheck.Errorf(linkcheck.EINVALID, "invalid request URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	return f.client.Do(req)
}

// classify maps a transport failure onto the linkcheck error taxonomy.
func classify(err error, url string) error {
	var appErr *linkcheck.Error
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, errTooManyRedirects):
		return linkcheck.Errorf(linkcheck.EREDIRECT, "fetch of %q followed too many redirects", url)
	case isTimeout(err):
		return linkcheck.Errorf(linkcheck.ETIMEOUT, "fetch of %q timed out", url)
	case errors.Is(err, syscall.ECONNREFUSED):
		return linkcheck.Errorf(linkcheck.ECONNREFUSED, "connection to %q refused", url)
	case isTLS(err):
		return linkcheck.Errorf(linkcheck.ETLS, "TLS failure fetching %q: %v", url, err)
	default:
		return linkcheck.Errorf(linkcheck.EINTERNAL, "fetch of %q failed: %v", url, err)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isTLS(err error) bool {
	var (
		recordErr   tls.RecordHeaderError
		certErr     *tls.CertificateVerificationError
		unknownAuth x509.UnknownAuthorityError
		hostnameErr x509.HostnameError
		certInvalid x509.CertificateInvalidError
	)
	return errors.As(err, &recordErr) ||
		errors.As(err, &certErr) ||
		errors.As(err, &unknownAuth) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &certInvalid)
}
