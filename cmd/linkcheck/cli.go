package main

import (
	"context"
	"io"

	"github.com/fwojciec/linkcheck"
	"github.com/fwojciec/linkcheck/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	DB      *sqlite.DB
	Reports linkcheck.ReportService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Check   CheckCmd   `cmd:"" help:"Crawl a site and report broken links"`
	History HistoryCmd `cmd:"" help:"List saved reports"`
	Show    ShowCmd    `cmd:"" help:"Show a saved report"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a saved report"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	URL         string  `arg:"" help:"Seed page URL"`
	Depth       int     `short:"d" default:"1" help:"How many hops from the seed to expand"`
	Concurrency int     `short:"c" default:"8" help:"Concurrent fetch limit"`
	Timeout     int     `short:"t" default:"10" help:"Per-request timeout in seconds"`
	Rate        float64 `short:"r" help:"Max requests per second per domain (0 = unlimited)"`
	Retries     int     `help:"Retry transport failures this many times"`
	Sitemap     bool    `short:"s" help:"Seed additional pages from the site's sitemap"`
	Format      string  `short:"f" default:"table" enum:"table,json,csv,html" help:"Report format"`
	Output      string  `short:"o" help:"Write the report to a file instead of stdout"`
	Save        bool    `help:"Save the report to the local database"`
	Quiet       bool    `short:"q" help:"Suppress per-URL progress output"`
	Verbose     bool    `short:"v" help:"Log individual requests to stderr"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	SeedURL string `help:"Only reports for this seed URL"`
	Limit   int    `default:"20" help:"Max reports to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Report ID"`
	Format string `short:"f" default:"table" enum:"table,json,csv,html" help:"Report format"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Report ID"`
}
