// Package crawl implements the crawl scheduler. It drives a depth-ordered
// frontier through a bounded worker pool, guarantees every discovered URL
// is validated exactly once, and aggregates per-resource outcomes into a
// final report.
package crawl

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/linkcheck"
	"github.com/fwojciec/linkcheck/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the worker pool size when none is configured.
const DefaultConcurrency = 8

// Sizing for the skip-warning Bloom filter. A false positive only
// suppresses a duplicate log line.
const (
	warnedExpectedRefs      = 10000
	warnedFalsePositiveRate = 0.01
)

// State describes a crawl run's lifecycle.
type State int32

// Crawl states. A run moves from Idle to Running and ends in exactly one
// of the terminal states.
const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCancelled
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Crawler orchestrates a crawl run. Configure the fields, then call Run.
// A Crawler value drives one run at a time; create separate instances for
// independent concurrent crawls.
type Crawler struct {
	Fetcher   linkcheck.Fetcher
	Extractor linkcheck.Extractor

	// RateLimiter, when set, throttles requests per domain.
	RateLimiter linkcheck.DomainLimiter

	// Seeds, when set, contributes additional depth-0 page URLs
	// (e.g. from sitemaps) before crawling starts.
	Seeds linkcheck.SeedSource

	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger

	// MaxDepth bounds enqueueing: a page at MaxDepth is still fetched
	// and validated, but its references are not enqueued. Zero checks
	// the seed only.
	MaxDepth int

	// Concurrency is the worker pool size. Zero means
	// DefaultConcurrency; negative is invalid.
	Concurrency int

	// RetryDelays enables fetch retries with the given backoff delays.
	// Nil or empty means single-attempt fetches. Retries happen inside
	// a task, so each task still yields exactly one outcome.
	RetryDelays []time.Duration

	// OnEvent, when set, receives progress events synchronously on the
	// scheduler goroutine. See also Subscribe for a buffered stream.
	OnEvent linkcheck.EventFunc

	state atomic.Int32

	subsMu sync.Mutex
	subs   []chan linkcheck.Event
}

// State returns the current lifecycle state of the crawler.
func (c *Crawler) State() State {
	return State(c.state.Load())
}

// taskResult is what a worker hands back to the coordinator.
type taskResult struct {
	task    linkcheck.Task
	outcome linkcheck.Outcome

	// refs holds references discovered on a same-host page below the
	// depth bound; the coordinator resolves and enqueues them.
	refs []linkcheck.Reference

	// skipped marks a task that was never fetched because cancellation
	// arrived first. No outcome is recorded for it.
	skipped bool
}

// run holds the per-run state, owned by the coordinator goroutine.
type run struct {
	c        *Crawler
	logger   *slog.Logger
	seedHost string
	frontier *Frontier
	visited  *VisitedSet
	agg      *Aggregator
	warned   *bloom.Filter
	fetched  int
}

// Run executes a crawl from seedURL and returns the finalized report.
//
// An invalid seed or configuration fails synchronously with EINVALID
// before any network call. Per-resource fetch failures never fail the
// run; they are recorded as broken outcomes. On context cancellation the
// run stops dispatching, lets in-flight fetches finish, and returns the
// partial report with the crawler in StateCancelled.
func (c *Crawler) Run(ctx context.Context, seedURL string) (*linkcheck.Report, error) {
	if c.Concurrency < 0 {
		c.state.Store(int32(StateFailed))
		return nil, linkcheck.Errorf(linkcheck.EINVALID, "concurrency must be positive, got %d", c.Concurrency)
	}
	if c.MaxDepth < 0 {
		c.state.Store(int32(StateFailed))
		return nil, linkcheck.Errorf(linkcheck.EINVALID, "max depth must be non-negative, got %d", c.MaxDepth)
	}

	seed, err := linkcheck.Normalize(seedURL)
	if err != nil {
		c.state.Store(int32(StateFailed))
		return nil, err
	}

	concurrency := c.Concurrency
	if concurrency == 0 {
		concurrency = DefaultConcurrency
	}
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c.state.Store(int32(StateRunning))
	startedAt := time.Now().UTC()

	r := &run{
		c:        c,
		logger:   logger,
		seedHost: linkcheck.Host(seed),
		frontier: NewFrontier(),
		visited:  NewVisitedSet(),
		agg:      NewAggregator(),
		warned:   bloom.NewFilter(warnedExpectedRefs, warnedFalsePositiveRate),
	}

	r.visited.Visit(seed)
	r.enqueue(linkcheck.Task{URL: seed, Depth: 0, Kind: linkcheck.KindPage})
	r.seedFromSource(ctx, seed)

	workCh := make(chan linkcheck.Task, concurrency)
	resultCh := make(chan taskResult)

	var g errgroup.Group
	for i := 0; i < concurrency; i++ {
		g.Go(func() error {
			for task := range workCh {
				resultCh <- r.process(ctx, task)
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(resultCh)
	}()

	// Coordinator loop. Termination requires quiescence, not just an
	// empty frontier: a worker may still be extracting references that
	// will refill it.
	pending := 0
	cancelled := false
	var next *linkcheck.Task
	if task, ok := r.frontier.Pop(); ok {
		next = &task
	}

	for next != nil || pending > 0 {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		if next != nil {
			select {
			case <-ctx.Done():
				cancelled = true
			case workCh <- *next:
				pending++
				next = nil
			case res := <-resultCh:
				pending--
				r.handleResult(&res)
			}
		} else {
			select {
			case <-ctx.Done():
				cancelled = true
			case res := <-resultCh:
				pending--
				r.handleResult(&res)
			}
		}
		if cancelled {
			break
		}
		if next == nil {
			if task, ok := r.frontier.Pop(); ok {
				next = &task
			}
		}
	}

	// Stop the workers. Fetches already in flight finish and their
	// outcomes are still recorded; nothing new is dispatched.
	close(workCh)
	for res := range resultCh {
		r.handleResult(&res)
	}

	report := r.agg.Finalize()
	report.SeedURL = seed
	report.MaxDepth = c.MaxDepth
	report.StartedAt = startedAt
	report.FinishedAt = time.Now().UTC()
	report.Fingerprint = Fingerprint(report)

	final := linkcheck.Event{Fetched: r.fetched, Queued: r.frontier.Len()}
	if cancelled {
		c.state.Store(int32(StateCancelled))
		final.Type = linkcheck.EventCancelled
	} else {
		c.state.Store(int32(StateCompleted))
		final.Type = linkcheck.EventCompleted
	}
	c.publish(final)
	c.closeSubscribers()

	logger.Info("crawl finished",
		"state", c.State().String(),
		"checked", report.Total(),
		"broken", report.BrokenCount,
		"duration", report.FinishedAt.Sub(report.StartedAt),
	)

	return report, nil
}

// seedFromSource adds extra depth-0 seeds from the configured SeedSource.
// Discovery problems are logged, never fatal; the seed page alone is
// enough to crawl.
func (r *run) seedFromSource(ctx context.Context, seed string) {
	if r.c.Seeds == nil {
		return
	}
	urls, err := r.c.Seeds.Discover(ctx, seed)
	if err != nil {
		r.logger.Warn("seed discovery failed", "seed", seed, "err", err)
		return
	}
	for _, raw := range urls {
		u, err := linkcheck.Normalize(raw)
		if err != nil {
			r.warnSkip(raw, err)
			continue
		}
		if !r.visited.Visit(u) {
			continue
		}
		r.enqueue(linkcheck.Task{URL: u, Depth: 0, Kind: linkcheck.KindPage})
	}
}

// process fetches and validates a single task. Runs on a worker
// goroutine.
func (r *run) process(ctx context.Context, task linkcheck.Task) taskResult {
	res := taskResult{task: task}

	// Cooperative cancellation check before starting any work.
	if ctx.Err() != nil {
		res.skipped = true
		return res
	}
	if r.c.RateLimiter != nil {
		if err := r.c.RateLimiter.Wait(ctx, linkcheck.Host(task.URL)); err != nil {
			res.skipped = true
			return res
		}
	}

	// A fetch that has started runs to completion or its own timeout,
	// even if the crawl is cancelled meanwhile.
	fctx := context.WithoutCancel(ctx)

	// Only same-host pages are expanded. External pages and all assets
	// are validated with a body-less check.
	expandable := task.Kind == linkcheck.KindPage && linkcheck.Host(task.URL) == r.seedHost
	fetch := r.c.Fetcher.Check
	if expandable {
		fetch = r.c.Fetcher.Fetch
	}

	result, err := r.fetch(fctx, task.URL, fetch)

	outcome := linkcheck.Outcome{URL: task.URL, Kind: task.Kind, ParentURL: task.ParentURL}
	if err != nil {
		outcome.ErrorCode = linkcheck.ErrorCode(err)
		outcome.ErrorMessage = linkcheck.ErrorMessage(err)
		res.outcome = outcome
		return res
	}
	outcome.StatusCode = result.StatusCode
	res.outcome = outcome

	// The depth bound applies to enqueueing, not fetching: a page at
	// MaxDepth is validated above but not expanded.
	if expandable && task.Depth < r.c.MaxDepth && outcome.OK() && result.IsHTML() {
		refs, err := r.c.Extractor.Extract(result.Body)
		if err != nil {
			// A parse problem is a warning; the page keeps its
			// fetch status and any partial references still count.
			r.logger.Warn("partial extraction", "url", task.URL, "err", err)
		}
		res.refs = refs
	}

	return res
}

// fetch applies the retry policy, if any, around a single fetch function.
func (r *run) fetch(ctx context.Context, url string, fn FetchFunc) (*linkcheck.FetchResult, error) {
	if len(r.c.RetryDelays) == 0 {
		return fn(ctx, url)
	}
	return FetchWithRetryDelays(ctx, url, fn, r.logger, r.c.RetryDelays)
}

// handleResult records an outcome and enqueues newly discovered
// references. Runs on the coordinator goroutine.
func (r *run) handleResult(res *taskResult) {
	if res.skipped {
		return
	}

	r.agg.Record(res.outcome)
	r.fetched++
	outcome := res.outcome
	r.c.publish(linkcheck.Event{
		Type:    linkcheck.EventFetched,
		Outcome: &outcome,
		Fetched: r.fetched,
		Queued:  r.frontier.Len(),
	})

	for _, ref := range res.refs {
		resolved, err := linkcheck.Resolve(res.task.URL, ref.URL)
		if err != nil {
			// mailto:, javascript:, and malformed references are
			// skipped silently, not counted as broken.
			r.warnSkip(ref.URL, err)
			continue
		}
		if !r.visited.Visit(resolved) {
			continue
		}
		r.enqueue(linkcheck.Task{
			URL:       resolved,
			Depth:     res.task.Depth + 1,
			Kind:      ref.Kind,
			ParentURL: res.task.URL,
		})
	}
}

func (r *run) enqueue(task linkcheck.Task) {
	r.frontier.Push(task)
	r.c.publish(linkcheck.Event{
		Type:    linkcheck.EventDiscovered,
		Task:    task,
		Fetched: r.fetched,
		Queued:  r.frontier.Len(),
	})
}

// warnSkip logs a reference that could not be resolved. The Bloom filter
// suppresses repeated warnings for the same reference across pages.
func (r *run) warnSkip(ref string, err error) {
	if r.warned.TestAndAdd(ref) {
		return
	}
	r.logger.Debug("skipping reference", "ref", ref, "reason", linkcheck.ErrorMessage(err))
}
