package report

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/ecocarvao/backend/internal/domain/models"
)

func makeSales(n int) []models.Sale {
	sales := make([]models.Sale, n)
	base := day("2024-01-01")
	for i := range sales {
		sales[i] = models.Sale{
			ID:        primitive.NewObjectID(),
			DataVenda: base.Add(time.Duration(i) * time.Hour),
		}
	}
	return sales
}

func TestBrowserFilterChangeResetsPage(t *testing.T) {
	store := newMockStore()
	store.sales = makeSales(50)

	browser := NewBrowser(newTestService(store), time.Hour, zap.NewNop())
	defer browser.Close()

	browser.Refresh(context.Background())
	browser.GoToPage(2)
	require.Equal(t, 2, browser.Snapshot().Page)

	browser.SetFilters(models.ReportFilters{Search: "carvão"})
	assert.Equal(t, 1, browser.Snapshot().Page)
}

func TestBrowserOutOfRangePageRetainsCurrent(t *testing.T) {
	store := newMockStore()
	store.sales = makeSales(50)

	browser := NewBrowser(newTestService(store), time.Hour, zap.NewNop())
	defer browser.Close()

	browser.Refresh(context.Background())
	browser.GoToPage(3)
	require.Equal(t, 3, browser.Snapshot().Page)

	browser.GoToPage(0)
	assert.Equal(t, 3, browser.Snapshot().Page)

	browser.GoToPage(4)
	assert.Equal(t, 3, browser.Snapshot().Page)
}

func TestBrowserDiscardsStaleResults(t *testing.T) {
	first := makeSales(1)
	second := makeSales(1)

	store := newMockStore()
	store.salesByCall = [][]models.Sale{first, second}
	store.blockFirstSales = make(chan struct{})
	store.salesStarted = make(chan struct{})

	browser := NewBrowser(newTestService(store), time.Hour, zap.NewNop())
	defer browser.Close()

	browser.SetFilters(models.ReportFilters{Kind: models.KindSale})

	started := store.salesStarted
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		browser.Refresh(context.Background()) // slow query, generation 1
	}()

	<-started
	browser.Refresh(context.Background()) // fast query, generation 2

	close(store.blockFirstSales)
	wg.Wait()

	snapshot := browser.Snapshot()
	require.Len(t, snapshot.Records, 1)
	assert.Equal(t, second[0].ID.Hex(), snapshot.Records[0].ID,
		"the late result from the superseded query must be discarded")
}

func TestBrowserDebounceCoalescesRapidFilterChanges(t *testing.T) {
	store := newMockStore()
	store.sales = makeSales(3)

	browser := NewBrowser(newTestService(store), 30*time.Millisecond, zap.NewNop())
	defer browser.Close()

	browser.SetFilters(models.ReportFilters{Search: "c"})
	browser.SetFilters(models.ReportFilters{Search: "ca"})
	browser.SetFilters(models.ReportFilters{Search: "car"})

	assert.Eventually(t, func() bool {
		return store.callCount("sales") == 1
	}, time.Second, 10*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, store.callCount("sales"), "rapid changes must coalesce into one query")
}

func TestBrowserRetainsPageAcrossRefreshWhenStillValid(t *testing.T) {
	store := newMockStore()
	store.sales = makeSales(50)

	browser := NewBrowser(newTestService(store), time.Hour, zap.NewNop())
	defer browser.Close()

	browser.Refresh(context.Background())
	browser.GoToPage(3)
	browser.Refresh(context.Background())

	assert.Equal(t, 3, browser.Snapshot().Page)
}
