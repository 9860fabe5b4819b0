package linkcheck

import "context"

// TaskFrontier holds discovered-but-not-yet-fetched tasks, shallowest
// depth first.
type TaskFrontier interface {
	// Push adds a task to the frontier.
	Push(task Task)

	// Pop returns the next task by depth order.
	// Returns false if the frontier is empty.
	Pop() (Task, bool)

	// Len returns the number of queued tasks.
	Len() int
}

// VisitedSet tracks canonical URLs that have been claimed for fetching.
// It grows monotonically over a single crawl run.
type VisitedSet interface {
	// Visit atomically records the URL and reports whether it was newly
	// added. This test-and-insert is the single synchronization point
	// that guarantees each URL is fetched at most once: of two workers
	// discovering the same URL concurrently, exactly one sees true.
	Visit(url string) bool

	// Len returns the number of visited URLs.
	Len() int
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
