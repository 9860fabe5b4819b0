package mock

import (
	"context"

	"github.com/fwojciec/linkcheck"
)

var _ linkcheck.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of linkcheck.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*linkcheck.FetchResult, error)
	CheckFn func(ctx context.Context, url string) (*linkcheck.FetchResult, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*linkcheck.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Check(ctx context.Context, url string) (*linkcheck.FetchResult, error) {
	return f.CheckFn(ctx, url)
}
