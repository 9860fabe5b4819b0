package linkcheck

import (
	"net/url"
	"strings"
)

// Canonical URL semantics: two URLs identify the same resource iff their
// canonical forms are byte-equal. The canonical form is the resolved
// absolute URL with a lowercased scheme and host, the fragment stripped,
// and the query preserved. Only http and https are in scope; references
// with other schemes (mailto:, javascript:, tel:) fail with EINVALID and
// are skipped by the scheduler rather than counted as broken.

// Normalize returns the canonical form of an absolute URL.
// It fails with EINVALID if the URL cannot be parsed, has no host, or
// uses a scheme other than http or https.
//
// Normalize is idempotent: normalizing an already-canonical URL returns
// it unchanged.
func Normalize(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", Errorf(EINVALID, "malformed URL %q: %v", rawURL, err)
	}
	return canonicalize(u)
}

// Resolve resolves a reference against a base URL and returns the
// canonical absolute form. The reference may be relative,
// protocol-relative, or absolute. Fails with EINVALID on unparsable
// input or an unsupported scheme.
func Resolve(base string, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", Errorf(EINVALID, "malformed base URL %q: %v", base, err)
	}
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", Errorf(EINVALID, "malformed reference %q: %v", ref, err)
	}
	return canonicalize(b.ResolveReference(r))
}

// SameHost reports whether two URLs share a host. Unparsable input
// compares as false.
func SameHost(a, b string) bool {
	ua, err := url.Parse(a)
	if err != nil {
		return false
	}
	ub, err := url.Parse(b)
	if err != nil {
		return false
	}
	return strings.EqualFold(ua.Host, ub.Host)
}

// Host returns the host component of a URL, or an empty string if the
// URL cannot be parsed.
func Host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

func canonicalize(u *url.URL) (string, error) {
	scheme := strings.ToLower(u.Scheme)
	switch scheme {
	case "http", "https":
	default:
		return "", Errorf(EINVALID, "unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "URL %q has no host", u.String())
	}
	u.Scheme = scheme
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	return u.String(), nil
}
