package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindValidation(t *testing.T) {
	for _, kind := range Kinds {
		assert.True(t, kind.Valid(), string(kind))
	}
	assert.False(t, Kind("").Valid())
	assert.False(t, Kind("invoice").Valid())
}

func TestUnifiedRecordKeyIsKindQualified(t *testing.T) {
	sale := UnifiedRecord{ID: "abc123", Kind: KindSale}
	transaction := UnifiedRecord{ID: "abc123", Kind: KindTransaction}

	assert.Equal(t, "sale:abc123", sale.Key())
	assert.NotEqual(t, sale.Key(), transaction.Key())
}

func TestReportFiltersDayBounds(t *testing.T) {
	f := ReportFilters{StartDate: "2024-03-05", EndDate: "2024-03-07"}

	start, ok := f.StartBound(time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), start)

	end, ok := f.EndBound(time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 7, 23, 59, 59, 999_000_000, time.UTC), end)
}

func TestReportFiltersBoundsAbsentOrMalformed(t *testing.T) {
	_, ok := ReportFilters{}.StartBound(time.UTC)
	assert.False(t, ok)

	_, ok = ReportFilters{EndDate: "07/03/2024"}.EndBound(time.UTC)
	assert.False(t, ok)
}

func TestReportFiltersIsZero(t *testing.T) {
	assert.True(t, ReportFilters{}.IsZero())
	assert.False(t, ReportFilters{Status: "pago"}.IsZero())
}
