package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/ecocarvao/backend/internal/domain/models"
)

func TestExportRefusedWhenNoRecordsMatch(t *testing.T) {
	exporter := NewExporter(newTestService(newMockStore()), zap.NewNop())

	doc, err := exporter.Export(context.Background(), models.ReportFilters{})

	assert.ErrorIs(t, err, ErrNoRecords)
	assert.Nil(t, doc, "no file may be produced for an empty result set")
}

func TestExportRendersPDFDocument(t *testing.T) {
	store := newMockStore()
	store.sales = makeSales(45) // forces multiple document pages
	store.transactions = []models.Transaction{
		{ID: primitive.NewObjectID(), Tipo: "entrada", Categoria: "Vendas", Valor: 150.5, DataVencimento: day("2024-03-10")},
	}

	exporter := NewExporter(newTestService(store), zap.NewNop())
	exporter.now = func() time.Time { return day("2024-05-20") }

	doc, err := exporter.Export(context.Background(), models.ReportFilters{
		BusinessUnit: models.UnitGalpao,
		Status:       "pendente",
		Search:       "venda",
	})

	require.NoError(t, err)
	assert.Equal(t, "relatorio-eco-carvao-2024-05-20.pdf", doc.Filename)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF")), "output must be a PDF document")
}

func TestSumAmountsTreatsAbsentAmountsAsZero(t *testing.T) {
	records := []models.UnifiedRecord{
		{Amount: 100.50},
		{Amount: 0}, // record with no meaningful amount
		{Amount: 49.50},
	}

	assert.InDelta(t, 150.0, sumAmounts(records), 0.001)
	assert.Zero(t, sumAmounts(nil))
}

func TestFilterSummaryListsOnlyActiveFilters(t *testing.T) {
	lines := filterSummary(models.ReportFilters{
		Kind:      models.KindTransaction,
		StartDate: "2024-03-01",
		Search:    "carvão",
	})

	assert.Equal(t, []string{
		"Tipo: Financeiro",
		"Data início: 01/03/2024",
		"Busca: carvão",
	}, lines)

	assert.Empty(t, filterSummary(models.ReportFilters{}))
}
