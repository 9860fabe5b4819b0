package linkcheck

import (
	"context"
	"time"
)

// Report is the final, immutable result of one crawl run. The entry order
// is completion order, which is nondeterministic across runs when
// concurrency is greater than one. WorkingCount+BrokenCount always equals
// len(Entries), which equals the number of URLs visited.
type Report struct {
	ID           string    `json:"id,omitempty"`
	SeedURL      string    `json:"seedUrl"`
	MaxDepth     int       `json:"maxDepth"`
	WorkingCount int       `json:"workingCount"`
	BrokenCount  int       `json:"brokenCount"`
	Entries      []Outcome `json:"entries"`
	StartedAt    time.Time `json:"startedAt"`
	FinishedAt   time.Time `json:"finishedAt"`

	// Fingerprint is an order-independent hash of the entries, used to
	// detect whether anything changed between runs against the same site.
	Fingerprint string `json:"fingerprint,omitempty"`
}

// Total returns the number of checked resources.
func (r *Report) Total() int {
	return len(r.Entries)
}

// Validate returns an error if the report contains invalid fields.
func (r *Report) Validate() error {
	if r.SeedURL == "" {
		return Errorf(EINVALID, "report seed URL required")
	}
	if r.WorkingCount+r.BrokenCount != len(r.Entries) {
		return Errorf(EINVALID, "report counts do not match entries")
	}
	return nil
}

// ReportFilter represents a filter for FindReports.
type ReportFilter struct {
	ID      *string `json:"id"`
	SeedURL *string `json:"seedUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ReportService persists finalized crawl reports. Only finished reports
// are stored; crawl state (frontier, visited set) never is.
type ReportService interface {
	// SaveReport stores a finalized report and assigns its ID.
	SaveReport(ctx context.Context, report *Report) error

	// FindReportByID retrieves a report with all its entries.
	// Returns ENOTFOUND if the report does not exist.
	FindReportByID(ctx context.Context, id string) (*Report, error)

	// FindReports retrieves report summaries matching the filter, most
	// recent first. Entries are not loaded; use FindReportByID for the
	// full report.
	FindReports(ctx context.Context, filter ReportFilter) ([]*Report, error)

	// DeleteReport permanently removes a report and its entries.
	// Returns ENOTFOUND if the report does not exist.
	DeleteReport(ctx context.Context, id string) error
}
