package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/ecocarvao/backend/internal/domain/models"
	"github.com/ecocarvao/backend/internal/repository/mongodb"
	"github.com/ecocarvao/backend/internal/service/report"
)

// stubStore serves canned sales; the other collections are empty.
type stubStore struct {
	sales []models.Sale
}

var _ mongodb.Store = (*stubStore)(nil)

func (s *stubStore) FindSales(ctx context.Context, q mongodb.Query) ([]models.Sale, error) {
	return s.sales, nil
}

func (s *stubStore) FindProducts(ctx context.Context, q mongodb.Query) ([]models.Product, error) {
	return nil, nil
}

func (s *stubStore) FindCustomers(ctx context.Context, q mongodb.Query) ([]models.Customer, error) {
	return nil, nil
}

func (s *stubStore) FindEmployees(ctx context.Context, q mongodb.Query) ([]models.Employee, error) {
	return nil, nil
}

func (s *stubStore) FindTransactions(ctx context.Context, q mongodb.Query) ([]models.Transaction, error) {
	return nil, nil
}

func (s *stubStore) CountCustomers(ctx context.Context) (int64, error)        { return 0, nil }
func (s *stubStore) CountProducts(ctx context.Context) (int64, error)         { return 0, nil }
func (s *stubStore) CountLowStockProducts(ctx context.Context) (int64, error) { return 0, nil }

func stubSales(n int) []models.Sale {
	sales := make([]models.Sale, n)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range sales {
		sales[i] = models.Sale{
			ID:          primitive.NewObjectID(),
			NumeroVenda: fmt.Sprintf("V-%03d", i),
			Total:       10,
			DataVenda:   base.Add(time.Duration(i) * time.Hour),
		}
	}
	return sales
}

func newTestRouter(store mongodb.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := report.NewService(store, time.UTC, time.Second, zap.NewNop())
	exporter := report.NewExporter(svc, zap.NewNop())
	handler := NewReportHandler(svc, exporter, zap.NewNop())

	r := gin.New()
	r.GET("/api/relatorios", handler.Search)
	r.GET("/api/relatorios/pdf", handler.Export)
	return r
}

type searchResponse struct {
	Records      []models.UnifiedRecord `json:"records"`
	TotalRecords int                    `json:"totalRecords"`
	Page         int                    `json:"page"`
	TotalPages   int                    `json:"totalPages"`
	PageSize     int                    `json:"pageSize"`
}

func TestSearchReturnsPagedResult(t *testing.T) {
	router := newTestRouter(&stubStore{sales: stubSales(45)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/relatorios?page=2", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 45, resp.TotalRecords)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, report.PageSize, resp.PageSize)
	assert.Len(t, resp.Records, 20)
}

func TestSearchOutOfRangePageFallsBackToFirst(t *testing.T) {
	router := newTestRouter(&stubStore{sales: stubSales(5)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/relatorios?page=99", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Page)
	assert.Len(t, resp.Records, 5)
}

func TestSearchRejectsUnknownKind(t *testing.T) {
	router := newTestRouter(&stubStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/relatorios?tipo=invoice", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchEmptyResultIsOK(t *testing.T) {
	router := newTestRouter(&stubStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/relatorios", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.TotalRecords)
	assert.NotNil(t, resp.Records)
}

func TestExportDownloadsPDF(t *testing.T) {
	router := newTestRouter(&stubStore{sales: stubSales(3)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/relatorios/pdf", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "relatorio-eco-carvao-")
	assert.True(t, len(w.Body.Bytes()) > 4 && string(w.Body.Bytes()[:4]) == "%PDF")
}

func TestExportWithNoRecordsReturnsNotice(t *testing.T) {
	router := newTestRouter(&stubStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/relatorios/pdf", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["notice"], "Nenhum registro")
	assert.Empty(t, resp["error"], "an empty export is a notice, not an error")
}
