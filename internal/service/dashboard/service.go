// Package dashboard computes the cross-collection metrics shown on the
// landing screen. Like the report federation, a failed sub-query degrades to
// a zero metric instead of failing the whole panel.
package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ecocarvao/backend/internal/repository/mongodb"
)

// Metrics is the aggregate snapshot for the current month.
type Metrics struct {
	TotalCustomers   int64   `json:"totalCustomers"`
	TotalProducts    int64   `json:"totalProducts"`
	SalesThisMonth   int     `json:"salesThisMonth"`
	RevenueThisMonth float64 `json:"revenueThisMonth"`
	LowStockProducts int64   `json:"lowStockProducts"`
	UpcomingDues     int     `json:"upcomingDues"`
}

// Service aggregates dashboard metrics from the store.
type Service struct {
	store  mongodb.Store
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new dashboard service instance.
func NewService(store mongodb.Store, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{store: store, loc: loc, logger: logger, now: time.Now}
}

// Metrics gathers the snapshot. Each metric is independent; a failing
// sub-query is logged and reported as zero.
func (s *Service) Metrics(ctx context.Context) Metrics {
	var m Metrics

	if n, err := s.store.CountCustomers(ctx); err != nil {
		s.logger.Warn("failed to count customers", zap.Error(err))
	} else {
		m.TotalCustomers = n
	}

	if n, err := s.store.CountProducts(ctx); err != nil {
		s.logger.Warn("failed to count products", zap.Error(err))
	} else {
		m.TotalProducts = n
	}

	if n, err := s.store.CountLowStockProducts(ctx); err != nil {
		s.logger.Warn("failed to count low stock products", zap.Error(err))
	} else {
		m.LowStockProducts = n
	}

	now := s.now().In(s.loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)

	sales, err := s.store.FindSales(ctx, mongodb.Query{Start: &monthStart, End: &now})
	if err != nil {
		s.logger.Warn("failed to load sales for current month", zap.Error(err))
	} else {
		m.SalesThisMonth = len(sales)
		for _, sale := range sales {
			m.RevenueThisMonth += sale.Total
		}
	}

	weekAhead := now.AddDate(0, 0, 7)
	dues, err := s.store.FindTransactions(ctx, mongodb.Query{
		Status: "pendente",
		Start:  &now,
		End:    &weekAhead,
	})
	if err != nil {
		s.logger.Warn("failed to load upcoming dues", zap.Error(err))
	} else {
		m.UpcomingDues = len(dues)
	}

	return m
}
