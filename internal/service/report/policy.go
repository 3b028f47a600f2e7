package report

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ecocarvao/backend/internal/domain/models"
	"github.com/ecocarvao/backend/internal/repository/mongodb"
)

// Per-kind fetch routines. Each one pushes what its collection can filter
// natively and applies the rest here, then maps the raw documents into
// UnifiedRecords. Missing source fields fall back to the defaults the entity
// pages write ("N/A", "Sem nome", zero, now, galpao).

func (s *Service) fetchSales(ctx context.Context, f models.ReportFilters) ([]models.UnifiedRecord, error) {
	sales, err := s.store.FindSales(ctx, s.nativeQuery(f, true))
	if err != nil {
		return nil, err
	}

	records := make([]models.UnifiedRecord, 0, len(sales))
	for _, sale := range sales {
		rec := s.mapSale(sale)
		if !matchesSearch(rec, f.Search) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *Service) fetchProducts(ctx context.Context, f models.ReportFilters) ([]models.UnifiedRecord, error) {
	// Product status lives on the page as ativo/inativo but in the store as a
	// boolean, so the status filter cannot be pushed down.
	products, err := s.store.FindProducts(ctx, s.nativeQuery(f, false))
	if err != nil {
		return nil, err
	}

	records := make([]models.UnifiedRecord, 0, len(products))
	for _, product := range products {
		rec := s.mapProduct(product)
		if f.Status != "" && rec.Status != f.Status {
			continue
		}
		if !matchesSearch(rec, f.Search) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *Service) fetchCustomers(ctx context.Context, f models.ReportFilters) ([]models.UnifiedRecord, error) {
	customers, err := s.store.FindCustomers(ctx, s.nativeQuery(f, true))
	if err != nil {
		return nil, err
	}

	records := make([]models.UnifiedRecord, 0, len(customers))
	for _, customer := range customers {
		rec := s.mapCustomer(customer)
		if !matchesSearch(rec, f.Search) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *Service) fetchEmployees(ctx context.Context, f models.ReportFilters) ([]models.UnifiedRecord, error) {
	// Admission dates are stored as strings, so the range check stays here.
	employees, err := s.store.FindEmployees(ctx, mongodb.Query{Empresa: f.BusinessUnit})
	if err != nil {
		return nil, err
	}

	startBound, hasStart := f.StartBound(s.loc)
	endBound, hasEnd := f.EndBound(s.loc)

	records := make([]models.UnifiedRecord, 0, len(employees))
	for _, employee := range employees {
		rec := s.mapEmployee(employee)
		if hasStart && rec.Timestamp.Before(startBound) {
			continue
		}
		if hasEnd && rec.Timestamp.After(endBound) {
			continue
		}
		if f.Status != "" && rec.Status != f.Status {
			continue
		}
		if !matchesSearch(rec, f.Search) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *Service) fetchTransactions(ctx context.Context, f models.ReportFilters) ([]models.UnifiedRecord, error) {
	transactions, err := s.store.FindTransactions(ctx, s.nativeQuery(f, true))
	if err != nil {
		return nil, err
	}

	records := make([]models.UnifiedRecord, 0, len(transactions))
	for _, transaction := range transactions {
		rec := s.mapTransaction(transaction)
		if !matchesSearch(rec, f.Search) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *Service) mapSale(sale models.Sale) models.UnifiedRecord {
	id := sale.ID.Hex()
	reference := sale.NumeroVenda
	if reference == "" {
		reference = shortID(id)
	}
	customer := sale.NomeCliente
	if customer == "" {
		customer = "N/A"
	}
	search := sale.NumeroVenda
	if search == "" {
		search = id
	}

	return models.UnifiedRecord{
		ID:           id,
		Kind:         models.KindSale,
		Title:        "Venda " + reference,
		Subtitle:     "Cliente: " + customer,
		Amount:       sale.Total,
		Status:       defaultString(sale.Status, "pendente"),
		BusinessUnit: defaultUnit(sale.Empresa),
		Timestamp:    s.defaultTime(sale.DataVenda),
		DetailLink:   "/vendas?search=" + url.QueryEscape(search),
	}
}

func (s *Service) mapProduct(product models.Product) models.UnifiedRecord {
	status := "inativo"
	if product.Ativo {
		status = "ativo"
	}

	return models.UnifiedRecord{
		ID:    product.ID.Hex(),
		Kind:  models.KindProduct,
		Title: defaultString(product.Nome, "Produto sem nome"),
		Subtitle: fmt.Sprintf("Estoque: %d | Categoria: %s",
			product.Estoque, defaultString(product.Categoria, "N/A")),
		Amount:       product.PrecoVenda,
		Status:       status,
		BusinessUnit: defaultUnit(product.Empresa),
		Timestamp:    s.defaultTime(product.CreatedAt),
		DetailLink:   "/produtos?search=" + url.QueryEscape(product.Nome),
	}
}

func (s *Service) mapCustomer(customer models.Customer) models.UnifiedRecord {
	documentLabel := "CPF"
	if customer.Tipo == "juridica" {
		documentLabel = "CNPJ"
	}

	return models.UnifiedRecord{
		ID:           customer.ID.Hex(),
		Kind:         models.KindCustomer,
		Title:        defaultString(customer.Nome, "Cliente sem nome"),
		Subtitle:     documentLabel + ": " + defaultString(customer.Documento, "N/A"),
		Amount:       customer.TotalComprado,
		Status:       defaultString(customer.Status, "ativo"),
		BusinessUnit: defaultUnit(customer.Empresa),
		Timestamp:    s.defaultTime(customer.CreatedAt),
		DetailLink:   "/clientes?search=" + url.QueryEscape(customer.Nome),
	}
}

func (s *Service) mapEmployee(employee models.Employee) models.UnifiedRecord {
	admission := s.now()
	if employee.DataAdmissao != "" {
		if parsed, err := time.ParseInLocation("2006-01-02", employee.DataAdmissao, s.loc); err == nil {
			admission = parsed
		}
	}

	return models.UnifiedRecord{
		ID:           employee.ID.Hex(),
		Kind:         models.KindEmployee,
		Title:        defaultString(employee.Nome, "Funcionário sem nome"),
		Subtitle:     "Admissão: " + admission.Format("02/01/2006"),
		Amount:       employee.Salario,
		Status:       defaultString(employee.Status, "ativo"),
		BusinessUnit: defaultUnit(employee.Empresa),
		Timestamp:    admission,
		DetailLink:   "/pessoal?search=" + url.QueryEscape(employee.Nome),
	}
}

func (s *Service) mapTransaction(transaction models.Transaction) models.UnifiedRecord {
	direction := "Despesa"
	if transaction.Tipo == "entrada" {
		direction = "Receita"
	}

	return models.UnifiedRecord{
		ID:           transaction.ID.Hex(),
		Kind:         models.KindTransaction,
		Title:        direction + ": " + defaultString(transaction.Categoria, "N/A"),
		Subtitle:     defaultString(transaction.Descricao, "Sem descrição"),
		Amount:       transaction.Valor,
		Status:       defaultString(transaction.Status, "pendente"),
		BusinessUnit: defaultUnit(transaction.Empresa),
		Timestamp:    s.defaultTime(transaction.DataVencimento),
		DetailLink:   "/financeiro",
	}
}

// matchesSearch applies the free-text filter: a lower-cased substring match
// against title OR subtitle.
func matchesSearch(rec models.UnifiedRecord, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(rec.Title), term) ||
		strings.Contains(strings.ToLower(rec.Subtitle), term)
}

func (s *Service) defaultTime(t time.Time) time.Time {
	if t.IsZero() {
		return s.now()
	}
	return t
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func defaultUnit(unit models.BusinessUnit) models.BusinessUnit {
	if unit == "" {
		return models.UnitGalpao
	}
	return unit
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
