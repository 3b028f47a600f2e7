package report

import "github.com/ecocarvao/backend/internal/domain/models"

// PageSize is the fixed number of records shown per page.
const PageSize = 20

// Pager slices a merged result into fixed-size windows. It only tracks
// positions; the record slice itself stays with the caller.
type Pager struct {
	total   int
	current int
}

// NewPager builds a pager over a result of the given size, positioned on
// page 1.
func NewPager(total int) Pager {
	if total < 0 {
		total = 0
	}
	return Pager{total: total, current: 1}
}

// TotalPages returns ceil(total/PageSize).
func (p Pager) TotalPages() int {
	return (p.total + PageSize - 1) / PageSize
}

// Current returns the current page number.
func (p Pager) Current() int {
	return p.current
}

// Total returns the number of records the pager was built over.
func (p Pager) Total() int {
	return p.total
}

// Goto moves to the given page. A page outside [1, TotalPages] is a no-op:
// the current page is retained.
func (p *Pager) Goto(page int) {
	if page < 1 || page > p.TotalPages() {
		return
	}
	p.current = page
}

// Reset returns to page 1.
func (p *Pager) Reset() {
	p.current = 1
}

// Window returns the slice of records belonging to the current page.
func (p Pager) Window(records []models.UnifiedRecord) []models.UnifiedRecord {
	start := PageSize * (p.current - 1)
	if start >= len(records) {
		return nil
	}
	end := start + PageSize
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}
