package linkcheck

import "context"

// SeedSource discovers additional seed URLs for a crawl, for example from
// a site's sitemaps. Discovered seeds enter the frontier at depth zero.
type SeedSource interface {
	Discover(ctx context.Context, seedURL string) ([]string, error)
}
