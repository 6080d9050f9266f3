package report

import (
	"context"
	"time"

	"github.com/ims/backend/internal/domain/report"
	"github.com/ims/backend/internal/domain/shared"
)

const (
	defaultTrendDays       = 30
	defaultTopProductDays  = 30
	defaultTopProductLimit = 10
	maxTopProductLimit     = 50
	maxRangeDays           = 366
)

// ReportService serves the dashboard chart and report queries
type ReportService struct {
	reportRepo report.Repository
}

// NewReportService creates a new report service
func NewReportService(reportRepo report.Repository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// StockAnalytics returns the overall inventory summary
func (s *ReportService) StockAnalytics(ctx context.Context) (*report.StockAnalytics, error) {
	return s.reportRepo.StockAnalytics(ctx)
}

// MovementTrend returns daily movement volume for the requested range.
// A zero from/to defaults to the last 30 days.
func (s *ReportService) MovementTrend(ctx context.Context, from, to time.Time) ([]report.MovementTrendPoint, error) {
	from, to, err := normalizeRange(from, to, defaultTrendDays)
	if err != nil {
		return nil, err
	}
	return s.reportRepo.MovementTrend(ctx, from, to)
}

// CategoryDistribution returns stock quantity grouped by category
func (s *ReportService) CategoryDistribution(ctx context.Context) ([]report.CategoryDistribution, error) {
	return s.reportRepo.CategoryDistribution(ctx)
}

// WarehouseDistribution returns stock quantity grouped by warehouse
func (s *ReportService) WarehouseDistribution(ctx context.Context) ([]report.WarehouseDistribution, error) {
	return s.reportRepo.WarehouseDistribution(ctx)
}

// TopProducts returns the most moved products over the requested range
func (s *ReportService) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]report.TopProduct, error) {
	from, to, err := normalizeRange(from, to, defaultTopProductDays)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultTopProductLimit
	}
	if limit > maxTopProductLimit {
		limit = maxTopProductLimit
	}
	return s.reportRepo.TopProducts(ctx, from, to, limit)
}

// StockAlerts returns products out of stock or below their minimum level
func (s *ReportService) StockAlerts(ctx context.Context) ([]report.StockAlert, error) {
	return s.reportRepo.StockAlerts(ctx)
}

// OrderSummary returns purchase order counts and value by status
func (s *ReportService) OrderSummary(ctx context.Context) (*report.OrderSummary, error) {
	return s.reportRepo.OrderSummary(ctx)
}

// normalizeRange fills in default bounds and truncates to whole days
func normalizeRange(from, to time.Time, defaultDays int) (time.Time, time.Time, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -defaultDays)
	}

	from = from.Truncate(24 * time.Hour)
	to = to.Truncate(24 * time.Hour)

	if from.After(to) {
		return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_RANGE", "Range start must not be after its end")
	}
	if to.Sub(from) > time.Duration(maxRangeDays)*24*time.Hour {
		return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_RANGE", "Range cannot exceed one year")
	}

	return from, to, nil
}
