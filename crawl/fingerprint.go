package crawl

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/linkcheck"
)

// Fingerprint computes a stable hash over a report's entries. Entries are
// hashed in URL order, so two runs against the same site produce the same
// fingerprint whenever every resource resolved to the same status,
// regardless of completion order. The history layer uses it to tell
// whether anything changed between runs.
func Fingerprint(report *linkcheck.Report) string {
	entries := make([]linkcheck.Outcome, len(report.Entries))
	copy(entries, report.Entries)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].URL < entries[j].URL
	})

	h := xxhash.New()
	for _, e := range entries {
		_, _ = h.WriteString(e.URL)
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(string(e.Kind))
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(strconv.Itoa(e.StatusCode))
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(e.ErrorCode)
		_, _ = h.WriteString("\x00")
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
