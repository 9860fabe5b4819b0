package main

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/fwojciec/linkcheck"
	"github.com/gocarina/gocsv"
	"github.com/rodaine/table"
)

// RenderReport writes the report to w in the requested format.
func RenderReport(w io.Writer, report *linkcheck.Report, format string) error {
	switch format {
	case "json":
		return renderJSON(w, report)
	case "csv":
		return renderCSV(w, report)
	case "html":
		return renderHTML(w, report)
	default:
		return renderTable(w, report)
	}
}

func renderTable(w io.Writer, report *linkcheck.Report) error {
	fmt.Fprintf(w, "Seed: %s\n", report.SeedURL)
	fmt.Fprintf(w, "Checked %d resources: %d working, %d broken\n\n",
		report.Total(), report.WorkingCount, report.BrokenCount)

	tbl := table.New("Status", "Code", "URL", "Kind", "Found On").WithWriter(w)
	for _, e := range report.Entries {
		status := "ok"
		code := fmt.Sprintf("%d", e.StatusCode)
		if !e.OK() {
			status = "broken"
			if e.ErrorCode != "" {
				code = e.ErrorCode
			}
		}
		tbl.AddRow(status, code, e.URL, string(e.Kind), e.ParentURL)
	}
	tbl.Print()
	return nil
}

func renderJSON(w io.Writer, report *linkcheck.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// csvEntry is the CSV row shape for a report entry.
type csvEntry struct {
	URL        string `csv:"url"`
	Kind       string `csv:"kind"`
	Status     string `csv:"status"`
	StatusCode int    `csv:"status_code"`
	Error      string `csv:"error"`
	ParentURL  string `csv:"parent_url"`
}

func renderCSV(w io.Writer, report *linkcheck.Report) error {
	rows := make([]csvEntry, 0, len(report.Entries))
	for _, e := range report.Entries {
		status := "ok"
		if !e.OK() {
			status = "broken"
		}
		rows = append(rows, csvEntry{
			URL:        e.URL,
			Kind:       string(e.Kind),
			Status:     status,
			StatusCode: e.StatusCode,
			Error:      e.ErrorCode,
			ParentURL:  e.ParentURL,
		})
	}
	return gocsv.Marshal(&rows, w)
}

var htmlReport = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Link report for {{.SeedURL}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
.ok { color: #2e7d32; }
.broken { color: #c62828; }
td, th { padding: 0.3em 0.8em; text-align: left; }
</style>
</head>
<body>
<h1>Link report for {{.SeedURL}}</h1>
<p>Checked {{.Total}} resources: <span class="ok">{{.WorkingCount}} working</span>, <span class="broken">{{.BrokenCount}} broken</span>.</p>
<p>Finished {{.FinishedAt.Format "2006-01-02 15:04:05 MST"}}</p>
<table>
<tr><th>Status</th><th>Code</th><th>URL</th><th>Kind</th><th>Found on</th></tr>
{{range .Entries}}<tr>
{{if .OK}}<td class="ok">OK</td>{{else}}<td class="broken">BROKEN</td>{{end}}
<td>{{if .ErrorCode}}{{.ErrorCode}}{{else}}{{.StatusCode}}{{end}}</td>
<td><a href="{{.URL}}">{{.URL}}</a></td>
<td>{{.Kind}}</td>
<td>{{.ParentURL}}</td>
</tr>
{{end}}</table>
</body>
</html>
`))

func renderHTML(w io.Writer, report *linkcheck.Report) error {
	return htmlReport.Execute(w, report)
}

// HTMLFilename builds the default filename for an HTML report, derived
// from the seed's domain and the completion time.
func HTMLFilename(seedURL string, finished time.Time) string {
	domain := linkcheck.Host(seedURL)
	if domain == "" {
		domain = "report"
	}
	domain = strings.ReplaceAll(domain, ".", "_")
	return fmt.Sprintf("broken_link_report_%s_%s.html", domain, finished.Format("20060102_150405"))
}
