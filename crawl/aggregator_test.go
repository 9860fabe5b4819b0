package crawl_test

import (
	"testing"

	"github.com/fwojciec/linkcheck"
	"github.com/fwojciec/linkcheck/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregator_Record(t *testing.T) {
	t.Parallel()

	t.Run("classifies by status and error", func(t *testing.T) {
		t.Parallel()

		a := crawl.NewAggregator()
		a.Record(linkcheck.Outcome{URL: "https://example.com/ok", StatusCode: 200})
		a.Record(linkcheck.Outcome{URL: "https://example.com/redirected", StatusCode: 399})
		a.Record(linkcheck.Outcome{URL: "https://example.com/missing", StatusCode: 404})
		a.Record(linkcheck.Outcome{URL: "https://example.com/down", ErrorCode: linkcheck.ECONNREFUSED})

		report := a.Finalize()
		assert.Equal(t, 2, report.WorkingCount)
		assert.Equal(t, 2, report.BrokenCount)
		assert.Len(t, report.Entries, 4)
	})

	t.Run("status 400 is broken", func(t *testing.T) {
		t.Parallel()

		a := crawl.NewAggregator()
		a.Record(linkcheck.Outcome{URL: "https://example.com/", StatusCode: 400})

		report := a.Finalize()
		assert.Equal(t, 0, report.WorkingCount)
		assert.Equal(t, 1, report.BrokenCount)
	})

	t.Run("keeps arrival order", func(t *testing.T) {
		t.Parallel()

		a := crawl.NewAggregator()
		a.Record(linkcheck.Outcome{URL: "https://example.com/first", StatusCode: 200})
		a.Record(linkcheck.Outcome{URL: "https://example.com/second", StatusCode: 200})

		report := a.Finalize()
		require.Len(t, report.Entries, 2)
		assert.Equal(t, "https://example.com/first", report.Entries[0].URL)
		assert.Equal(t, "https://example.com/second", report.Entries[1].URL)
	})
}

func TestAggregator_Finalize(t *testing.T) {
	t.Parallel()

	t.Run("records after finalize are dropped", func(t *testing.T) {
		t.Parallel()

		a := crawl.NewAggregator()
		a.Record(linkcheck.Outcome{URL: "https://example.com/", StatusCode: 200})
		report := a.Finalize()

		a.Record(linkcheck.Outcome{URL: "https://example.com/late", StatusCode: 404})

		assert.Len(t, report.Entries, 1)
		assert.Equal(t, 1, a.Finalize().WorkingCount)
		assert.Equal(t, 0, a.Finalize().BrokenCount)
	})

	t.Run("report is a snapshot", func(t *testing.T) {
		t.Parallel()

		a := crawl.NewAggregator()
		a.Record(linkcheck.Outcome{URL: "https://example.com/", StatusCode: 200})

		report := a.Finalize()
		report.Entries[0].URL = "mutated"

		assert.Equal(t, "mutated", report.Entries[0].URL)
		assert.Equal(t, "https://example.com/", a.Finalize().Entries[0].URL)
	})

	t.Run("empty aggregator yields empty report", func(t *testing.T) {
		t.Parallel()

		report := crawl.NewAggregator().Finalize()
		assert.Equal(t, 0, report.WorkingCount)
		assert.Equal(t, 0, report.BrokenCount)
		assert.Empty(t, report.Entries)
	})
}
