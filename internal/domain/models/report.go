package models

import (
	"time"
)

// Kind discriminates which source collection a UnifiedRecord came from.
type Kind string

const (
	KindSale        Kind = "sale"
	KindProduct     Kind = "product"
	KindCustomer    Kind = "customer"
	KindEmployee    Kind = "employee"
	KindTransaction Kind = "transaction"
)

// Kinds lists every source kind in fetch order.
var Kinds = []Kind{KindSale, KindProduct, KindCustomer, KindEmployee, KindTransaction}

// Valid reports whether k names a known source kind.
func (k Kind) Valid() bool {
	switch k {
	case KindSale, KindProduct, KindCustomer, KindEmployee, KindTransaction:
		return true
	}
	return false
}

// Label returns the singular display name for a record row.
func (k Kind) Label() string {
	switch k {
	case KindSale:
		return "Venda"
	case KindProduct:
		return "Produto"
	case KindCustomer:
		return "Cliente"
	case KindEmployee:
		return "Funcionário"
	case KindTransaction:
		return "Movimentação"
	}
	return string(k)
}

// OptionLabel returns the display name used in the filter summary.
func (k Kind) OptionLabel() string {
	switch k {
	case KindSale:
		return "Vendas"
	case KindProduct:
		return "Produtos"
	case KindCustomer:
		return "Clientes"
	case KindEmployee:
		return "Funcionários"
	case KindTransaction:
		return "Financeiro"
	}
	return string(k)
}

// UnifiedRecord is the transient projection every source record is mapped
// into before merging. It is rebuilt on every query and never persisted.
type UnifiedRecord struct {
	ID           string       `json:"id"`
	Kind         Kind         `json:"kind"`
	Title        string       `json:"title"`
	Subtitle     string       `json:"subtitle"`
	Amount       float64      `json:"amount"`
	Status       string       `json:"status,omitempty"`
	BusinessUnit BusinessUnit `json:"businessUnit,omitempty"`
	Timestamp    time.Time    `json:"timestamp"`
	DetailLink   string       `json:"detailLink"`
}

// Key returns a list key that is unique across kinds. Source ids are only
// unique within their own collection.
func (r UnifiedRecord) Key() string {
	return string(r.Kind) + ":" + r.ID
}

const filterDateLayout = "2006-01-02"

// ReportFilters is the filter set driving the federated search. The business
// unit is carried here explicitly instead of being read from any shared
// selection state.
type ReportFilters struct {
	Search       string
	Kind         Kind
	BusinessUnit BusinessUnit
	StartDate    string // 2006-01-02, empty = unbounded
	EndDate      string // 2006-01-02, empty = unbounded
	Status       string
}

// IsZero reports whether no filter field is set.
func (f ReportFilters) IsZero() bool {
	return f == ReportFilters{}
}

// StartBound resolves StartDate to the start of that day in loc. The second
// return value is false when StartDate is empty or malformed.
func (f ReportFilters) StartBound(loc *time.Location) (time.Time, bool) {
	if f.StartDate == "" {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation(filterDateLayout, f.StartDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

// EndBound resolves EndDate to the last instant of that day in loc.
func (f ReportFilters) EndBound(loc *time.Location) (time.Time, bool) {
	if f.EndDate == "" {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation(filterDateLayout, f.EndDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	return day.Add(24*time.Hour - time.Millisecond), true
}
