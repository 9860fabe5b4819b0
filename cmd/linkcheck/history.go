package main

import (
	"fmt"

	"github.com/fwojciec/linkcheck"
	"github.com/rodaine/table"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := linkcheck.ReportFilter{Limit: c.Limit}
	if c.SeedURL != "" {
		filter.SeedURL = &c.SeedURL
	}

	reports, err := deps.Reports.FindReports(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linkcheck.ErrorMessage(err))
		return err
	}

	if len(reports) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved reports. Use 'linkcheck check --save' to create one.")
		return nil
	}

	tbl := table.New("ID", "Seed", "Checked", "Broken", "Fingerprint", "Finished").WithWriter(deps.Stdout)
	for _, r := range reports {
		tbl.AddRow(r.ID, r.SeedURL, r.WorkingCount+r.BrokenCount, r.BrokenCount,
			r.Fingerprint, r.FinishedAt.Format("2006-01-02 15:04"))
	}
	tbl.Print()
	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	report, err := deps.Reports.FindReportByID(deps.Ctx, c.ID)
	if err != nil {
		if linkcheck.ErrorCode(err) == linkcheck.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: report %q not found. Use 'linkcheck history' to list reports.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", linkcheck.ErrorMessage(err))
		}
		return err
	}

	return RenderReport(deps.Stdout, report, c.Format)
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Reports.DeleteReport(deps.Ctx, c.ID); err != nil {
		if linkcheck.ErrorCode(err) == linkcheck.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: report %q not found. Use 'linkcheck history' to list reports.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", linkcheck.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted report %s\n", c.ID)
	return nil
}
