package mock

import (
	"context"

	"github.com/fwojciec/linkcheck"
)

var _ linkcheck.SeedSource = (*SeedSource)(nil)

// SeedSource is a mock implementation of linkcheck.SeedSource.
type SeedSource struct {
	DiscoverFn func(ctx context.Context, seedURL string) ([]string, error)
}

func (s *SeedSource) Discover(ctx context.Context, seedURL string) ([]string, error) {
	return s.DiscoverFn(ctx, seedURL)
}
