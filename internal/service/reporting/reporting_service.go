package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bekzodm/tuxumpos/internal/domain/models"
)

const dateLayout = "2006-01-02"

// LedgerReader provides read access to the current ledger state.
type LedgerReader interface {
	Snapshot() models.LedgerState
}

// SummaryStore persists daily rollups.
type SummaryStore interface {
	SaveDailySummary(ctx context.Context, summary models.DailySummary) error
}

// Service builds and persists end-of-day summaries of the ledger.
type Service struct {
	ledger LedgerReader
	store  SummaryStore
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new reporting service instance.
func NewService(ledger LedgerReader, store SummaryStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		ledger: ledger,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// GenerateDailySummary rolls the current ledger state into a DailySummary,
// persists it and returns it for delivery.
func (s *Service) GenerateDailySummary(ctx context.Context) (models.DailySummary, error) {
	state := s.ledger.Snapshot()
	now := s.now().UTC()

	summary := models.DailySummary{
		Date:          now.Truncate(24 * time.Hour),
		EggsAdded:     state.TodayIncome,
		EggsSold:      state.TodayOutcome,
		RemainingEggs: state.RemainingEggs(),
		SalesRetained: len(state.SalesHistory),
		OpenDebts:     len(state.Debts),
		CashOnHand:    state.Cash,
		TotalDebt:     state.TotalDebt,
		NetCash:       state.NetCash(),
		CreatedAt:     now,
	}

	if err := s.store.SaveDailySummary(ctx, summary); err != nil {
		return models.DailySummary{}, fmt.Errorf("persist daily summary: %w", err)
	}

	s.logger.Info("daily summary stored",
		zap.Int("eggs_sold", summary.EggsSold),
		zap.Float64("cash_on_hand", summary.CashOnHand))

	return summary, nil
}

// FormatSummary renders a summary as a short human-readable message.
func (s *Service) FormatSummary(summary models.DailySummary) string {
	return fmt.Sprintf(
		"Daily summary (%s): stocked %d, sold %d, remaining %d eggs. Cash %.0f, debt %.0f across %d customers, net %.0f.",
		summary.Date.Format(dateLayout),
		summary.EggsAdded,
		summary.EggsSold,
		summary.RemainingEggs,
		summary.CashOnHand,
		summary.TotalDebt,
		summary.OpenDebts,
		summary.NetCash,
	)
}
