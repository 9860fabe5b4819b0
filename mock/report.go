package mock

import (
	"context"

	"github.com/fwojciec/linkcheck"
)

var _ linkcheck.ReportService = (*ReportService)(nil)

// ReportService is a mock implementation of linkcheck.ReportService.
type ReportService struct {
	SaveReportFn     func(ctx context.Context, report *linkcheck.Report) error
	FindReportByIDFn func(ctx context.Context, id string) (*linkcheck.Report, error)
	FindReportsFn    func(ctx context.Context, filter linkcheck.ReportFilter) ([]*linkcheck.Report, error)
	DeleteReportFn   func(ctx context.Context, id string) error
}

func (s *ReportService) SaveReport(ctx context.Context, report *linkcheck.Report) error {
	return s.SaveReportFn(ctx, report)
}

func (s *ReportService) FindReportByID(ctx context.Context, id string) (*linkcheck.Report, error) {
	return s.FindReportByIDFn(ctx, id)
}

func (s *ReportService) FindReports(ctx context.Context, filter linkcheck.ReportFilter) ([]*linkcheck.Report, error) {
	return s.FindReportsFn(ctx, filter)
}

func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	return s.DeleteReportFn(ctx, id)
}
