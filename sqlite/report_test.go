package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/linkcheck"
	"github.com/fwojciec/linkcheck/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func testReport(seedURL string, startedAt time.Time) *linkcheck.Report {
	return &linkcheck.Report{
		SeedURL:      seedURL,
		MaxDepth:     2,
		WorkingCount: 2,
		BrokenCount:  1,
		Fingerprint:  "69b7a1c9e8d2f301",
		StartedAt:    startedAt,
		FinishedAt:   startedAt.Add(3 * time.Second),
		Entries: []linkcheck.Outcome{
			{URL: seedURL, Kind: linkcheck.KindPage, StatusCode: 200},
			{URL: seedURL + "style.css", Kind: linkcheck.KindStylesheet, StatusCode: 200, ParentURL: seedURL},
			{URL: seedURL + "gone", Kind: linkcheck.KindPage, StatusCode: 404, ParentURL: seedURL},
		},
	}
}

func TestReportService_SaveReport(t *testing.T) {
	t.Parallel()

	t.Run("saves report with generated ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewReportService(db)
		ctx := context.Background()

		report := testReport("https://example.com/", time.Now().UTC().Truncate(time.Second))
		err := svc.SaveReport(ctx, report)
		require.NoError(t, err)
		assert.NotEmpty(t, report.ID)
	})

	t.Run("returns error for invalid report", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewReportService(db)
		ctx := context.Background()

		report := &linkcheck.Report{} // missing seed URL
		err := svc.SaveReport(ctx, report)
		require.Error(t, err)
		assert.Equal(t, linkcheck.EINVALID, linkcheck.ErrorCode(err))
	})

	t.Run("rejects mismatched counts", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewReportService(db)
		ctx := context.Background()

		report := testReport("https://example.com/", time.Now().UTC())
		report.WorkingCount = 10

		err := svc.SaveReport(ctx, report)
		require.Error(t, err)
		assert.Equal(t, linkcheck.EINVALID, linkcheck.ErrorCode(err))
	})
}

func TestReportService_FindReportByID(t *testing.T) {
	t.Parallel()

	t.Run("returns report with entries in stored order", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewReportService(db)
		ctx := context.Background()

		report := testReport("https://example.com/", time.Now().UTC().Truncate(time.Second))
		require.NoError(t, svc.SaveReport(ctx, report))

		found, err := svc.FindReportByID(ctx, report.ID)
		require.NoError(t, err)

		assert.Equal(t, report.ID, found.ID)
		assert.Equal(t, report.SeedURL, found.SeedURL)
		assert.Equal(t, report.MaxDepth, found.MaxDepth)
		assert.Equal(t, report.Fingerprint, found.Fingerprint)
		assert.Equal(t, report.WorkingCount, found.WorkingCount)
		assert.Equal(t, report.BrokenCount, found.BrokenCount)
		assert.Equal(t, report.Entries, found.Entries)
		assert.True(t, found.StartedAt.Equal(report.StartedAt))
	})

	t.Run("returns ENOTFOUND for missing report", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewReportService(db)

		_, err := svc.FindReportByID(context.Background(), "no-such-id")
		require.Error(t, err)
		assert.Equal(t, linkcheck.ENOTFOUND, linkcheck.ErrorCode(err))
	})
}

func TestReportService_FindReports(t *testing.T) {
	t.Parallel()

	t.Run("returns summaries most recent first", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewReportService(db)
		ctx := context.Background()

		base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		older := testReport("https://example.com/", base)
		newer := testReport("https://example.com/", base.Add(time.Hour))
		require.NoError(t, svc.SaveReport(ctx, older))
		require.NoError(t, svc.SaveReport(ctx, newer))

		reports, err := svc.FindReports(ctx, linkcheck.ReportFilter{})
		require.NoError(t, err)
		require.Len(t, reports, 2)

		assert.Equal(t, newer.ID, reports[0].ID)
		assert.Equal(t, older.ID, reports[1].ID)
		assert.Empty(t, reports[0].Entries, "summaries should not load entries")
	})

	t.Run("filters by seed URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewReportService(db)
		ctx := context.Background()

		now := time.Now().UTC()
		require.NoError(t, svc.SaveReport(ctx, testReport("https://a.example.com/", now)))
		require.NoError(t, svc.SaveReport(ctx, testReport("https://b.example.com/", now)))

		seed := "https://a.example.com/"
		reports, err := svc.FindReports(ctx, linkcheck.ReportFilter{SeedURL: &seed})
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, seed, reports[0].SeedURL)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewReportService(db)
		ctx := context.Background()

		base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		for i := 0; i < 3; i++ {
			require.NoError(t, svc.SaveReport(ctx, testReport("https://example.com/", base.Add(time.Duration(i)*time.Hour))))
		}

		reports, err := svc.FindReports(ctx, linkcheck.ReportFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.True(t, reports[0].StartedAt.Equal(base.Add(time.Hour)))
	})
}

func TestReportService_DeleteReport(t *testing.T) {
	t.Parallel()

	t.Run("removes report and entries", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewReportService(db)
		ctx := context.Background()

		report := testReport("https://example.com/", time.Now().UTC())
		require.NoError(t, svc.SaveReport(ctx, report))

		require.NoError(t, svc.DeleteReport(ctx, report.ID))

		_, err := svc.FindReportByID(ctx, report.ID)
		assert.Equal(t, linkcheck.ENOTFOUND, linkcheck.ErrorCode(err))

		var entryCount int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM report_entries WHERE report_id = ?", report.ID).Scan(&entryCount))
		assert.Equal(t, 0, entryCount, "entries should cascade")
	})

	t.Run("returns ENOTFOUND for missing report", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewReportService(db)

		err := svc.DeleteReport(context.Background(), "no-such-id")
		assert.Equal(t, linkcheck.ENOTFOUND, linkcheck.ErrorCode(err))
	})
}
