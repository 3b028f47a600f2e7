package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ecocarvao/backend/internal/domain/models"
	"github.com/ecocarvao/backend/internal/service/report"
)

// ReportHandler serves the federated search and the report download.
type ReportHandler struct {
	svc      *report.Service
	exporter *report.Exporter
	logger   *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc *report.Service, exporter *report.Exporter, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, exporter: exporter, logger: logger}
}

// Search runs the federated query and returns one page of the merged result.
func (h *ReportHandler) Search(c *gin.Context) {
	filters, err := filtersFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page := 1
	if raw := c.Query("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}

	records := h.svc.FetchAll(c.Request.Context(), filters)

	pager := report.NewPager(len(records))
	pager.Goto(page)

	window := pager.Window(records)
	if window == nil {
		window = []models.UnifiedRecord{}
	}

	c.JSON(http.StatusOK, gin.H{
		"records":      window,
		"totalRecords": len(records),
		"page":         pager.Current(),
		"totalPages":   pager.TotalPages(),
		"pageSize":     report.PageSize,
	})
}

// Export streams the rendered report for the full filtered result set. An
// empty result set is an expected condition, answered with a notice rather
// than an error.
func (h *ReportHandler) Export(c *gin.Context) {
	filters, err := filtersFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := h.exporter.Export(c.Request.Context(), filters)
	if errors.Is(err, report.ErrNoRecords) {
		c.JSON(http.StatusNotFound, gin.H{"notice": "Nenhum registro encontrado para gerar o PDF"})
		return
	}
	if err != nil {
		h.logger.Error("report export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao gerar o relatório"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}

func filtersFromQuery(c *gin.Context) (models.ReportFilters, error) {
	filters := models.ReportFilters{
		Search:       c.Query("busca"),
		Kind:         models.Kind(c.Query("tipo")),
		BusinessUnit: models.BusinessUnit(c.Query("empresa")),
		StartDate:    c.Query("dataInicio"),
		EndDate:      c.Query("dataFim"),
		Status:       c.Query("status"),
	}

	if filters.Kind != "" && !filters.Kind.Valid() {
		return models.ReportFilters{}, fmt.Errorf("unknown tipo %q", filters.Kind)
	}
	if filters.BusinessUnit != "" && !filters.BusinessUnit.Valid() {
		return models.ReportFilters{}, fmt.Errorf("unknown empresa %q", filters.BusinessUnit)
	}

	return filters, nil
}
