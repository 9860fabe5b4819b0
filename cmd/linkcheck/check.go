package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fwojciec/linkcheck"
	"github.com/fwojciec/linkcheck/crawl"
	"github.com/fwojciec/linkcheck/goquery"
	lchttp "github.com/fwojciec/linkcheck/http"
	lcslog "github.com/fwojciec/linkcheck/slog"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	if c.Concurrency <= 0 {
		fmt.Fprintf(deps.Stderr, "error: concurrency must be positive\n")
		return linkcheck.Errorf(linkcheck.EINVALID, "concurrency must be positive, got %d", c.Concurrency)
	}
	if c.Depth < 0 {
		fmt.Fprintf(deps.Stderr, "error: depth must be non-negative\n")
		return linkcheck.Errorf(linkcheck.EINVALID, "depth must be non-negative, got %d", c.Depth)
	}

	logger := slog.New(slog.DiscardHandler)
	if c.Verbose {
		logger = slog.New(slog.NewTextHandler(deps.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	var fetcher linkcheck.Fetcher = lchttp.NewFetcher(
		lchttp.WithTimeout(time.Duration(c.Timeout) * time.Second),
	)
	if c.Verbose {
		fetcher = lcslog.NewLoggingFetcher(fetcher, logger)
	}

	crawler := &crawl.Crawler{
		Fetcher:     fetcher,
		Extractor:   goquery.NewExtractor(),
		Logger:      logger,
		MaxDepth:    c.Depth,
		Concurrency: c.Concurrency,
		RetryDelays: retryDelays(c.Retries),
	}
	if c.Rate > 0 {
		crawler.RateLimiter = crawl.NewDomainLimiter(c.Rate)
	}
	if c.Sitemap {
		crawler.Seeds = lchttp.NewSitemapSource(nil)
	}
	if !c.Quiet {
		crawler.OnEvent = progressPrinter(deps)
	}

	report, err := crawler.Run(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linkcheck.ErrorMessage(err))
		return err
	}
	if crawler.State() == crawl.StateCancelled {
		fmt.Fprintln(deps.Stderr, "crawl interrupted; the report is partial")
	}

	if err := c.writeReport(deps, report); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linkcheck.ErrorMessage(err))
		return err
	}

	if c.Save {
		if err := deps.Reports.SaveReport(deps.Ctx, report); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", linkcheck.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved report %s\n", report.ID)
	}

	if report.BrokenCount > 0 {
		return linkcheck.Errorf(linkcheck.EINTERNAL, "%d broken links found", report.BrokenCount)
	}
	return nil
}

// writeReport renders the report to the requested destination. An HTML
// report with no explicit output path gets a timestamped filename, the
// other formats default to stdout.
func (c *CheckCmd) writeReport(deps *Dependencies, report *linkcheck.Report) error {
	output := c.Output
	if output == "" && c.Format == "html" {
		output = HTMLFilename(report.SeedURL, report.FinishedAt)
	}

	if output == "" {
		return RenderReport(deps.Stdout, report, c.Format)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := RenderReport(f, report, c.Format); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Report written to %s\n", output)
	return nil
}

// progressPrinter reports per-URL results on stderr as they arrive, so
// progress stays visible even when the report itself goes to stdout.
func progressPrinter(deps *Dependencies) linkcheck.EventFunc {
	return func(event linkcheck.Event) {
		switch event.Type {
		case linkcheck.EventFetched:
			o := event.Outcome
			if o.OK() {
				fmt.Fprintf(deps.Stderr, "  ok      %s\n", o.URL)
			} else if o.ErrorCode != "" {
				fmt.Fprintf(deps.Stderr, "  broken  %s (%s)\n", o.URL, o.ErrorCode)
			} else {
				fmt.Fprintf(deps.Stderr, "  broken  %s (%d)\n", o.URL, o.StatusCode)
			}
		case linkcheck.EventCompleted:
			fmt.Fprintf(deps.Stderr, "Checked %d resources\n", event.Fetched)
		}
	}
}

// retryDelays builds an exponential backoff schedule, one delay per retry.
func retryDelays(retries int) []time.Duration {
	if retries <= 0 {
		return nil
	}
	delays := make([]time.Duration, retries)
	d := time.Second
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}
