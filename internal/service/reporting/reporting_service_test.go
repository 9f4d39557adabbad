package reporting_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bekzodm/tuxumpos/internal/domain/models"
	"github.com/bekzodm/tuxumpos/internal/service/reporting"
)

type stubLedger struct {
	state models.LedgerState
}

func (s *stubLedger) Snapshot() models.LedgerState {
	return s.state.Clone()
}

type stubStore struct {
	saved []models.DailySummary
	err   error
}

func (s *stubStore) SaveDailySummary(ctx context.Context, summary models.DailySummary) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, summary)
	return nil
}

func TestGenerateDailySummary(t *testing.T) {
	ledger := &stubLedger{state: models.LedgerState{
		Cash:         800,
		TotalDebt:    150,
		TotalEggs:    200,
		SoldEggs:     120,
		TodayIncome:  200,
		TodayOutcome: 120,
		Debts:        []models.DebtRecord{{ID: "d1", Amount: 150}},
		SalesHistory: []models.SaleRecord{{ID: "s1", Eggs: 120, Amount: 600}},
	}}
	store := &stubStore{}
	svc := reporting.NewService(ledger, store, nil)

	summary, err := svc.GenerateDailySummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 200, summary.EggsAdded)
	assert.Equal(t, 120, summary.EggsSold)
	assert.Equal(t, 80, summary.RemainingEggs)
	assert.Equal(t, 1, summary.SalesRetained)
	assert.Equal(t, 1, summary.OpenDebts)
	assert.Equal(t, 800.0, summary.CashOnHand)
	assert.Equal(t, 150.0, summary.TotalDebt)
	assert.Equal(t, 650.0, summary.NetCash)
	assert.False(t, summary.CreatedAt.IsZero())

	require.Len(t, store.saved, 1)
	assert.Equal(t, summary, store.saved[0])
}

func TestGenerateDailySummary_StoreFailure(t *testing.T) {
	svc := reporting.NewService(&stubLedger{}, &stubStore{err: errors.New("mongo down")}, nil)

	_, err := svc.GenerateDailySummary(context.Background())
	require.Error(t, err)
}

func TestFormatSummary(t *testing.T) {
	svc := reporting.NewService(&stubLedger{}, &stubStore{}, nil)

	summary := models.DailySummary{
		EggsAdded:     200,
		EggsSold:      120,
		RemainingEggs: 80,
		OpenDebts:     2,
		CashOnHand:    800,
		TotalDebt:     150,
		NetCash:       650,
	}

	text := svc.FormatSummary(summary)
	assert.Contains(t, text, "sold 120")
	assert.Contains(t, text, "remaining 80")
	assert.Contains(t, text, "2 customers")
}
