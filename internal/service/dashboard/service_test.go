package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/ecocarvao/backend/internal/domain/models"
	"github.com/ecocarvao/backend/internal/repository/mongodb"
)

type mockStore struct {
	customers int64
	products  int64
	lowStock  int64

	sales        []models.Sale
	transactions []models.Transaction

	countErr error

	salesQuery        mongodb.Query
	transactionsQuery mongodb.Query
}

var _ mongodb.Store = (*mockStore)(nil)

func (m *mockStore) FindSales(ctx context.Context, q mongodb.Query) ([]models.Sale, error) {
	m.salesQuery = q
	return m.sales, nil
}

func (m *mockStore) FindProducts(ctx context.Context, q mongodb.Query) ([]models.Product, error) {
	return nil, nil
}

func (m *mockStore) FindCustomers(ctx context.Context, q mongodb.Query) ([]models.Customer, error) {
	return nil, nil
}

func (m *mockStore) FindEmployees(ctx context.Context, q mongodb.Query) ([]models.Employee, error) {
	return nil, nil
}

func (m *mockStore) FindTransactions(ctx context.Context, q mongodb.Query) ([]models.Transaction, error) {
	m.transactionsQuery = q
	return m.transactions, nil
}

func (m *mockStore) CountCustomers(ctx context.Context) (int64, error) {
	return m.customers, m.countErr
}

func (m *mockStore) CountProducts(ctx context.Context) (int64, error) {
	return m.products, nil
}

func (m *mockStore) CountLowStockProducts(ctx context.Context) (int64, error) {
	return m.lowStock, nil
}

func TestMetricsAggregation(t *testing.T) {
	store := &mockStore{
		customers: 12,
		products:  34,
		lowStock:  3,
		sales: []models.Sale{
			{ID: primitive.NewObjectID(), Total: 100},
			{ID: primitive.NewObjectID(), Total: 250.5},
		},
		transactions: []models.Transaction{
			{ID: primitive.NewObjectID(), Status: "pendente"},
		},
	}

	svc := NewService(store, time.UTC, zap.NewNop())
	now := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	m := svc.Metrics(context.Background())

	assert.Equal(t, int64(12), m.TotalCustomers)
	assert.Equal(t, int64(34), m.TotalProducts)
	assert.Equal(t, int64(3), m.LowStockProducts)
	assert.Equal(t, 2, m.SalesThisMonth)
	assert.InDelta(t, 350.5, m.RevenueThisMonth, 0.001)
	assert.Equal(t, 1, m.UpcomingDues)

	require.NotNil(t, store.salesQuery.Start)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *store.salesQuery.Start)

	assert.Equal(t, "pendente", store.transactionsQuery.Status)
	require.NotNil(t, store.transactionsQuery.End)
	assert.Equal(t, now.AddDate(0, 0, 7), *store.transactionsQuery.End)
}

func TestMetricsDegradesOnPartialFailure(t *testing.T) {
	store := &mockStore{
		products: 7,
		countErr: assert.AnError, // customer count fails
	}

	svc := NewService(store, time.UTC, zap.NewNop())
	m := svc.Metrics(context.Background())

	assert.Zero(t, m.TotalCustomers)
	assert.Equal(t, int64(7), m.TotalProducts)
}
