// Package slog provides logging decorators for linkcheck services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/linkcheck"
)

// Ensure LoggingFetcher implements linkcheck.Fetcher.
var _ linkcheck.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   linkcheck.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next linkcheck.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the request.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (result *linkcheck.FetchResult, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("fetch",
			"url", url,
			"status", statusCode(result),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Check delegates to the wrapped fetcher and logs the request.
func (f *LoggingFetcher) Check(ctx context.Context, url string) (result *linkcheck.FetchResult, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("check",
			"url", url,
			"status", statusCode(result),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Check(ctx, url)
}

func statusCode(result *linkcheck.FetchResult) int {
	if result == nil {
		return 0
	}
	return result.StatusCode
}
