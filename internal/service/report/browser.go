package report

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ecocarvao/backend/internal/domain/models"
)

// DefaultDebounce is how long the browser waits after a filter change before
// issuing a new federated query, so rapid edits coalesce into one fetch.
const DefaultDebounce = 300 * time.Millisecond

// Browser is the stateful interactive view over the federated search:
// current filters, the merged result and the page position. Filter changes
// schedule a debounced refresh; every issued fetch carries a generation
// token, and a result arriving for a superseded generation is discarded so a
// slow early query can never overwrite a faster later one.
type Browser struct {
	svc      *Service
	debounce time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	filters models.ReportFilters
	records []models.UnifiedRecord
	pager   Pager
	timer   *time.Timer
	gen     uint64
}

// PageSnapshot is the immutable view handed to consumers.
type PageSnapshot struct {
	Records      []models.UnifiedRecord `json:"records"`
	Page         int                    `json:"page"`
	TotalPages   int                    `json:"totalPages"`
	TotalRecords int                    `json:"totalRecords"`
	Filters      models.ReportFilters   `json:"-"`
}

// NewBrowser builds a browser over svc. A non-positive debounce falls back
// to DefaultDebounce.
func NewBrowser(svc *Service, debounce time.Duration, logger *zap.Logger) *Browser {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Browser{
		svc:      svc,
		debounce: debounce,
		logger:   logger,
		pager:    NewPager(0),
	}
}

// SetFilters replaces the active filter set, resets the view to page 1 and
// schedules a debounced refresh. A pending refresh is cancelled and replaced.
func (b *Browser) SetFilters(f models.ReportFilters) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.filters = f
	b.pager.Reset()

	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.debounce, func() {
		b.Refresh(context.Background())
	})
}

// Refresh runs the federated query for the current filters synchronously.
// The result is applied only if no newer query was issued in the meantime.
func (b *Browser) Refresh(ctx context.Context) {
	b.mu.Lock()
	b.gen++
	gen := b.gen
	filters := b.filters
	b.mu.Unlock()

	records := b.svc.FetchAll(ctx, filters)

	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.gen {
		b.logger.Debug("discarding stale query result",
			zap.Uint64("generation", gen),
			zap.Uint64("latest", b.gen))
		return
	}

	current := b.pager.Current()
	b.pager = NewPager(len(records))
	b.pager.Goto(current)
	b.records = records
}

// GoToPage moves the view to the given page; out-of-range requests keep the
// current page.
func (b *Browser) GoToPage(page int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pager.Goto(page)
}

// Snapshot returns the current page window and position.
func (b *Browser) Snapshot() PageSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return PageSnapshot{
		Records:      b.pager.Window(b.records),
		Page:         b.pager.Current(),
		TotalPages:   b.pager.TotalPages(),
		TotalRecords: len(b.records),
		Filters:      b.filters,
	}
}

// Close cancels any pending debounced refresh.
func (b *Browser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
