package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bekzodm/tuxumpos/internal/domain/models"
)

func TestStockPercentage(t *testing.T) {
	tests := []struct {
		name  string
		state models.LedgerState
		want  float64
	}{
		{name: "empty cycle", state: models.LedgerState{}, want: 0},
		{name: "untouched stock", state: models.LedgerState{TotalEggs: 200}, want: 100},
		{name: "half sold", state: models.LedgerState{TotalEggs: 200, SoldEggs: 100}, want: 50},
		{name: "depleted", state: models.LedgerState{TotalEggs: 200, SoldEggs: 200}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.state.StockPercentage(), 1e-9)
		})
	}
}

func TestIsLowStock(t *testing.T) {
	tests := []struct {
		name  string
		state models.LedgerState
		want  bool
	}{
		{name: "empty cycle", state: models.LedgerState{}, want: false},
		{name: "exactly 20 percent", state: models.LedgerState{TotalEggs: 100, SoldEggs: 80}, want: false},
		{name: "just below threshold", state: models.LedgerState{TotalEggs: 100, SoldEggs: 81}, want: true},
		{name: "one egg left", state: models.LedgerState{TotalEggs: 100, SoldEggs: 99}, want: true},
		{name: "depleted", state: models.LedgerState{TotalEggs: 100, SoldEggs: 100}, want: false},
		{name: "full stock", state: models.LedgerState{TotalEggs: 100}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.IsLowStock())
		})
	}
}

func TestIsOutOfStock(t *testing.T) {
	assert.True(t, models.LedgerState{}.IsOutOfStock())
	assert.True(t, models.LedgerState{TotalEggs: 5, SoldEggs: 5}.IsOutOfStock())
	assert.False(t, models.LedgerState{TotalEggs: 5, SoldEggs: 4}.IsOutOfStock())
}

func TestNetCash(t *testing.T) {
	state := models.LedgerState{Cash: 500, TotalDebt: 120}
	assert.Equal(t, 380.0, state.NetCash())
}

func TestResetNoticeActive(t *testing.T) {
	now := time.Now()

	var state models.LedgerState
	assert.False(t, state.ResetNoticeActive(now), "zero timestamp means no notice")

	state.ResetNoticeAt = now
	assert.True(t, state.ResetNoticeActive(now.Add(models.ResetNoticeWindow-time.Second)))
	assert.False(t, state.ResetNoticeActive(now.Add(models.ResetNoticeWindow)))
	assert.False(t, state.ResetNoticeActive(now.Add(time.Minute)))
}

func TestChartSeries(t *testing.T) {
	// History is most-recent-first; the chart wants chronological order.
	state := models.LedgerState{
		SalesHistory: []models.SaleRecord{
			{ID: "s7", Amount: 7},
			{ID: "s6", Amount: 6},
			{ID: "s5", Amount: 5},
			{ID: "s4", Amount: 4},
			{ID: "s3", Amount: 3},
			{ID: "s2", Amount: 2},
			{ID: "s1", Amount: 1},
		},
	}

	series := state.ChartSeries()
	assert.Len(t, series, models.ChartSeriesSize)
	assert.Equal(t, []string{"s3", "s4", "s5", "s6", "s7"}, ids(series))
}

func TestChartSeries_ShortHistory(t *testing.T) {
	state := models.LedgerState{
		SalesHistory: []models.SaleRecord{
			{ID: "s2", Amount: 2},
			{ID: "s1", Amount: 1},
		},
	}

	assert.Equal(t, []string{"s1", "s2"}, ids(state.ChartSeries()))
	assert.Empty(t, models.LedgerState{}.ChartSeries())
}

func TestClone_IsIndependent(t *testing.T) {
	state := models.LedgerState{
		Debts:        []models.DebtRecord{{ID: "d1", Amount: 10}},
		SalesHistory: []models.SaleRecord{{ID: "s1", Amount: 10}},
	}

	clone := state.Clone()
	clone.Debts[0].Amount = 99
	clone.SalesHistory[0].Amount = 99

	assert.Equal(t, 10.0, state.Debts[0].Amount)
	assert.Equal(t, 10.0, state.SalesHistory[0].Amount)
}

func ids(records []models.SaleRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
