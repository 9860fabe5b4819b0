package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/linkcheck"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ linkcheck.ReportService = (*ReportService)(nil)

// ReportService implements linkcheck.ReportService using SQLite.
type ReportService struct {
	db *DB
}

// NewReportService creates a new ReportService.
func NewReportService(db *DB) *ReportService {
	return &ReportService{db: db}
}

// SaveReport stores a finalized report and assigns its ID. The report and
// its entries are written in a single transaction.
func (s *ReportService) SaveReport(ctx context.Context, report *linkcheck.Report) error {
	if err := report.Validate(); err != nil {
		return err
	}

	report.ID = uuid.New().String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reports (id, seed_url, max_depth, working_count, broken_count, fingerprint, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, report.ID, report.SeedURL, report.MaxDepth, report.WorkingCount, report.BrokenCount,
		report.Fingerprint, report.StartedAt.Format(time.RFC3339), report.FinishedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for i, entry := range report.Entries {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO report_entries (report_id, position, url, kind, status_code, error_code, error_message, parent_url)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, report.ID, i, entry.URL, string(entry.Kind), entry.StatusCode,
			entry.ErrorCode, entry.ErrorMessage, entry.ParentURL)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindReportByID retrieves a report with all its entries.
func (s *ReportService) FindReportByID(ctx context.Context, id string) (*linkcheck.Report, error) {
	var report linkcheck.Report
	var startedAt, finishedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, seed_url, max_depth, working_count, broken_count, fingerprint, started_at, finished_at
		FROM reports
		WHERE id = ?
	`, id).Scan(&report.ID, &report.SeedURL, &report.MaxDepth, &report.WorkingCount,
		&report.BrokenCount, &report.Fingerprint, &startedAt, &finishedAt)

	if err == sql.ErrNoRows {
		return nil, linkcheck.Errorf(linkcheck.ENOTFOUND, "report not found")
	}
	if err != nil {
		return nil, err
	}

	if report.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if report.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
		return nil, err
	}

	if report.Entries, err = s.findEntries(ctx, id); err != nil {
		return nil, err
	}

	return &report, nil
}

// findEntries loads a report's entries in stored order.
func (s *ReportService) findEntries(ctx context.Context, reportID string) ([]linkcheck.Outcome, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url, kind, status_code, error_code, error_message, parent_url
		FROM report_entries
		WHERE report_id = ?
		ORDER BY position
	`, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []linkcheck.Outcome
	for rows.Next() {
		var entry linkcheck.Outcome
		var kind string

		if err := rows.Scan(&entry.URL, &kind, &entry.StatusCode,
			&entry.ErrorCode, &entry.ErrorMessage, &entry.ParentURL); err != nil {
			return nil, err
		}
		entry.Kind = linkcheck.ResourceKind(kind)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// FindReports retrieves report summaries matching the filter, most recent
// first. Entries are not loaded.
func (s *ReportService) FindReports(ctx context.Context, filter linkcheck.ReportFilter) ([]*linkcheck.Report, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, seed_url, max_depth, working_count, broken_count, fingerprint, started_at, finished_at FROM reports WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SeedURL != nil {
		query.WriteString(" AND seed_url = ?")
		args = append(args, *filter.SeedURL)
	}

	query.WriteString(" ORDER BY started_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*linkcheck.Report
	for rows.Next() {
		var report linkcheck.Report
		var startedAt, finishedAt string

		if err := rows.Scan(&report.ID, &report.SeedURL, &report.MaxDepth, &report.WorkingCount,
			&report.BrokenCount, &report.Fingerprint, &startedAt, &finishedAt); err != nil {
			return nil, err
		}
		if report.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if report.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}
		reports = append(reports, &report)
	}

	return reports, rows.Err()
}

// DeleteReport permanently removes a report and its entries.
func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return linkcheck.Errorf(linkcheck.ENOTFOUND, "report not found")
	}

	return nil
}
