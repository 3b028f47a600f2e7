package report

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ecocarvao/backend/internal/domain/models"
	"github.com/ecocarvao/backend/internal/repository/mongodb"
)

// Service federates the five business collections into one unified,
// filterable record stream.
type Service struct {
	store   mongodb.Store
	loc     *time.Location
	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires a new report service instance. loc is the business
// timezone used to resolve date-range boundaries; timeout bounds each
// per-collection query.
func NewService(store mongodb.Store, loc *time.Location, timeout time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Service{
		store:   store,
		loc:     loc,
		timeout: timeout,
		logger:  logger,
		now:     time.Now,
	}
}

// source binds a kind to its fetch-and-map routine. The routine owns the
// native query for its collection plus any predicates the store cannot apply.
type source struct {
	kind  models.Kind
	fetch func(ctx context.Context, f models.ReportFilters) ([]models.UnifiedRecord, error)
}

func (s *Service) sources() []source {
	return []source{
		{kind: models.KindSale, fetch: s.fetchSales},
		{kind: models.KindProduct, fetch: s.fetchProducts},
		{kind: models.KindCustomer, fetch: s.fetchCustomers},
		{kind: models.KindEmployee, fetch: s.fetchEmployees},
		{kind: models.KindTransaction, fetch: s.fetchTransactions},
	}
}

// FetchAll runs every applicable source query concurrently and returns the
// merged result sorted by timestamp, newest first. A failed or timed-out
// source contributes zero records; it never aborts the others, so an empty
// result is always a valid outcome.
func (s *Service) FetchAll(ctx context.Context, f models.ReportFilters) []models.UnifiedRecord {
	type outcome struct {
		kind    models.Kind
		records []models.UnifiedRecord
		err     error
	}

	var active []source
	for _, src := range s.sources() {
		if f.Kind != "" && f.Kind != src.kind {
			continue
		}
		active = append(active, src)
	}

	results := make(chan outcome, len(active))
	for _, src := range active {
		go func(src source) {
			qctx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			records, err := src.fetch(qctx, f)
			results <- outcome{kind: src.kind, records: records, err: err}
		}(src)
	}

	var merged []models.UnifiedRecord
	for range active {
		res := <-results
		if res.err != nil {
			s.logger.Warn("source query failed",
				zap.String("kind", string(res.kind)),
				zap.Error(res.err))
			continue
		}
		merged = append(merged, res.records...)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})

	return merged
}

// nativeQuery translates the filter set into store-level constraints.
// pushStatus is false for collections whose status is not a stored field.
func (s *Service) nativeQuery(f models.ReportFilters, pushStatus bool) mongodb.Query {
	q := mongodb.Query{Empresa: f.BusinessUnit}
	if pushStatus {
		q.Status = f.Status
	}
	if start, ok := f.StartBound(s.loc); ok {
		q.Start = &start
	}
	if end, ok := f.EndBound(s.loc); ok {
		q.End = &end
	}
	return q
}
