package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/ecocarvao/backend/internal/domain/models"
	"github.com/ecocarvao/backend/internal/format"
)

// ErrNoRecords is returned when the filtered result set is empty; no
// document is produced in that case.
var ErrNoRecords = errors.New("no records match the active filters")

// Document is a rendered report ready for download.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Exporter renders the full (unpaginated) filtered result set into a
// landscape A4 report.
type Exporter struct {
	svc    *Service
	logger *zap.Logger
	now    func() time.Time
}

// NewExporter wires a new exporter over the given report service.
func NewExporter(svc *Service, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{svc: svc, logger: logger, now: time.Now}
}

// Export re-runs the federated query for the given filters, ignoring any
// pagination, and renders the complete matching set. It does not touch the
// interactive view's state.
func (e *Exporter) Export(ctx context.Context, f models.ReportFilters) (*Document, error) {
	records := e.svc.FetchAll(ctx, f)
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	content, err := e.render(f, records)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	return &Document{
		Filename:    fmt.Sprintf("relatorio-eco-carvao-%s.pdf", e.now().Format("2006-01-02")),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

const (
	tableTop    = 14.0
	rowHeight   = 10.0
	pageBreakAt = 185.0
)

var columnWidths = []float64{22, 22, 85, 28, 22, 28}

func (e *Exporter) render(f models.ReportFilters, records []models.UnifiedRecord) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetMargins(14, 15, 14)
	pdf.SetAutoPageBreak(false, 15)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Página %d de {nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	e.renderHeader(pdf, tr, f, len(records))
	e.renderTable(pdf, tr, records)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Exporter) renderHeader(pdf *gofpdf.Fpdf, tr func(string) string, f models.ReportFilters, total int) {
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(34, 139, 34)
	pdf.CellFormat(0, 10, tr("Eco-Carvão"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, tr("Relatório de Registros"), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 5, tr("Gerado em: "+e.now().Format(format.DateTimeLayout)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Total de registros: %d", total), "", 1, "L", false, 0, "")

	if !f.IsZero() {
		pdf.CellFormat(0, 5, "Filtros aplicados:", "", 1, "L", false, 0, "")
		for _, line := range filterSummary(f) {
			pdf.CellFormat(0, 4, tr("• "+line), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(3)
}

// filterSummary lists one line per active filter, skipping empty ones.
func filterSummary(f models.ReportFilters) []string {
	var lines []string
	if f.Kind != "" {
		lines = append(lines, "Tipo: "+f.Kind.OptionLabel())
	}
	if f.BusinessUnit != "" {
		lines = append(lines, "Empresa: "+f.BusinessUnit.Label())
	}
	if f.StartDate != "" {
		lines = append(lines, "Data início: "+displayDate(f.StartDate))
	}
	if f.EndDate != "" {
		lines = append(lines, "Data fim: "+displayDate(f.EndDate))
	}
	if f.Status != "" {
		lines = append(lines, "Status: "+f.Status)
	}
	if f.Search != "" {
		lines = append(lines, "Busca: "+f.Search)
	}
	return lines
}

func displayDate(value string) string {
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return value
	}
	return day.Format(format.DateLayout)
}

func (e *Exporter) renderTable(pdf *gofpdf.Fpdf, tr func(string) string, records []models.UnifiedRecord) {
	drawTableHeader(pdf, tr)

	for _, rec := range records {
		if pdf.GetY()+rowHeight > pageBreakAt {
			pdf.AddPage()
			pdf.SetY(tableTop)
			drawTableHeader(pdf, tr)
		}
		drawRow(pdf, tr, rec)
	}
	total := sumAmounts(records)

	if pdf.GetY()+rowHeight > pageBreakAt {
		pdf.AddPage()
		pdf.SetY(tableTop)
	}
	drawTotalRow(pdf, tr, total)
}

func drawTableHeader(pdf *gofpdf.Fpdf, tr func(string) string) {
	headers := []string{"Data", "Tipo", "Descrição", "Empresa", "Status", "Valor"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFillColor(34, 139, 34)
	for i, header := range headers {
		last := 0
		if i == len(headers)-1 {
			last = 1
		}
		pdf.CellFormat(columnWidths[i], 8, tr(header), "1", last, "C", true, 0, "")
	}
}

func drawRow(pdf *gofpdf.Fpdf, tr func(string) string, rec models.UnifiedRecord) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)

	pdf.CellFormat(columnWidths[0], rowHeight, rec.Timestamp.Format(format.DateLayout), "1", 0, "C", false, 0, "")
	pdf.CellFormat(columnWidths[1], rowHeight, tr(strings.ToUpper(rec.Kind.Label())), "1", 0, "C", false, 0, "")

	// Title and subtitle stacked inside one bordered cell.
	x, y := pdf.GetXY()
	pdf.CellFormat(columnWidths[2], rowHeight, "", "1", 0, "", false, 0, "")
	pdf.SetXY(x+1, y+1)
	pdf.CellFormat(columnWidths[2]-2, 4, tr(clip(rec.Title, 64)), "", 2, "L", false, 0, "")
	pdf.CellFormat(columnWidths[2]-2, 4, tr(clip(rec.Subtitle, 64)), "", 0, "L", false, 0, "")
	pdf.SetXY(x+columnWidths[2], y)

	pdf.CellFormat(columnWidths[3], rowHeight, tr(rec.BusinessUnit.Label()), "1", 0, "C", false, 0, "")

	status := "-"
	if rec.Status != "" {
		status = strings.ToUpper(rec.Status)
	}
	pdf.CellFormat(columnWidths[4], rowHeight, tr(clip(status, 14)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(columnWidths[5], rowHeight, tr(format.BRL(rec.Amount)), "1", 1, "R", false, 0, "")
}

func drawTotalRow(pdf *gofpdf.Fpdf, tr func(string) string, total float64) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(240, 240, 240)

	leading := columnWidths[0] + columnWidths[1] + columnWidths[2] + columnWidths[3]
	pdf.CellFormat(leading, 8, "", "1", 0, "R", true, 0, "")
	pdf.CellFormat(columnWidths[4], 8, "TOTAL:", "1", 0, "R", true, 0, "")
	pdf.CellFormat(columnWidths[5], 8, tr(format.BRL(total)), "1", 1, "R", true, 0, "")
}

// sumAmounts computes the report grand total over the full result set,
// regardless of which page is on screen. Records without a meaningful amount
// carry zero and contribute nothing.
func sumAmounts(records []models.UnifiedRecord) float64 {
	var total float64
	for _, rec := range records {
		total += rec.Amount
	}
	return total
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
