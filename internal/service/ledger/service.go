package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bekzodm/tuxumpos/internal/domain/models"
	"github.com/bekzodm/tuxumpos/internal/service/notify"
)

// ErrInvalidInput indicates a sale request with a non-positive quantity or
// price, or a negative payment.
var ErrInvalidInput = errors.New("invalid sale input")

// ErrInsufficientStock indicates a sale request for more eggs than remain.
var ErrInsufficientStock = errors.New("insufficient stock")

const (
	dateLayout = "02/01/2006"
	timeLayout = "15:04"

	salesMirrorRange = "Sales!A:E"
	debtsMirrorRange = "Debts!A:D"
)

// SnapshotStore persists the full ledger state between sessions.
type SnapshotStore interface {
	LoadState(ctx context.Context) (*models.LedgerState, error)
	SaveState(ctx context.Context, state models.LedgerState) error
}

// RowAppender mirrors records into the owner's bookkeeping spreadsheet.
type RowAppender interface {
	WriteRow(ctx context.Context, sheetRange string, values []interface{}) error
}

// API is the ledger surface driven by the HTTP layer.
type API interface {
	RecordSale(ctx context.Context, eggs int, unitPrice, given float64) (models.SaleOutcome, error)
	AddInventory(ctx context.Context, amount int)
	RemoveDebt(ctx context.Context, id string)
	Snapshot() models.LedgerState
}

// Service is the ledger state machine. It owns all mutable business state,
// guards it behind a single mutex, and writes the full snapshot back to the
// store after every mutation.
type Service struct {
	mu       sync.Mutex
	state    models.LedgerState
	store    SnapshotStore
	mirror   RowAppender
	notifier notify.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewService loads the last persisted snapshot (falling back to an empty
// ledger when none exists or it cannot be read) and returns a ready service.
// mirror and notifier may be nil; both are best-effort side channels.
func NewService(ctx context.Context, store SnapshotStore, mirror RowAppender, notifier notify.Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	svc := &Service{
		store:    store,
		mirror:   mirror,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}

	saved, err := store.LoadState(ctx)
	switch {
	case err != nil:
		logger.Warn("saved snapshot unreadable, starting from empty ledger", zap.Error(err))
	case saved != nil:
		svc.state = saved.Clone()
		logger.Info("ledger snapshot restored",
			zap.Int("remaining_eggs", svc.state.RemainingEggs()),
			zap.Int("open_debts", len(svc.state.Debts)))
	default:
		logger.Info("no saved snapshot, starting from empty ledger")
	}

	return svc
}

// RecordSale computes and applies a sale. The stock check and the mutation
// run under the same lock, so no sale can be admitted against a stock level
// another sale has already consumed.
func (s *Service) RecordSale(ctx context.Context, eggs int, unitPrice, given float64) (models.SaleOutcome, error) {
	if eggs <= 0 || unitPrice <= 0 || given < 0 {
		return models.SaleOutcome{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if eggs > s.state.RemainingEggs() {
		return models.SaleOutcome{}, ErrInsufficientStock
	}

	now := s.now()
	wasLowStock := s.state.IsLowStock()
	total := float64(eggs) * unitPrice
	outcome := models.SaleOutcome{Total: total}

	if total > given {
		debt := total - given
		outcome.Kind = models.OutcomeDebtIncurred
		outcome.Amount = debt
		outcome.CashAdded = given

		s.state.TotalDebt += debt
		s.state.Debts = append(s.state.Debts, models.DebtRecord{
			ID:           uuid.NewString(),
			CustomerName: fmt.Sprintf("Customer %d", len(s.state.Debts)+1),
			Amount:       debt,
			Date:         now.Format(dateLayout),
		})
	} else {
		overpay := given - total
		outcome.CashAdded = total
		if overpay > 0 {
			// Surplus reduces the aggregate only; itemized debts stay as
			// created and are settled one by one.
			outcome.Kind = models.OutcomeDebtReduced
			outcome.Amount = overpay
			s.state.TotalDebt = math.Max(0, s.state.TotalDebt-overpay)
		} else {
			outcome.Kind = models.OutcomeExact
		}
	}

	// The full amount handed over is banked, even when part of it was change
	// against outstanding debt. Kept as-is for snapshot compatibility.
	s.state.Cash += given
	s.state.SoldEggs += eggs
	s.state.TodayOutcome += eggs

	sale := models.SaleRecord{
		ID:     uuid.NewString(),
		Eggs:   eggs,
		Amount: total,
		Date:   now.Format(dateLayout),
		Time:   now.Format(timeLayout),
	}
	s.state.SalesHistory = append([]models.SaleRecord{sale}, s.state.SalesHistory...)
	if len(s.state.SalesHistory) > models.SalesHistoryCap {
		s.state.SalesHistory = s.state.SalesHistory[:models.SalesHistoryCap]
	}

	s.mirrorRow(ctx, salesMirrorRange, []interface{}{sale.Date, sale.Time, sale.Eggs, sale.Amount, given})

	if s.state.TotalEggs > 0 && s.state.RemainingEggs() == 0 {
		s.autoReset(ctx, now)
	} else if !wasLowStock && s.state.IsLowStock() {
		s.alert(ctx, fmt.Sprintf("Low stock: %d eggs left (%.0f%%).", s.state.RemainingEggs(), s.state.StockPercentage()))
	}

	s.persist(ctx)
	return outcome, nil
}

// AddInventory adds eggs to the current cycle. Non-positive amounts are
// silently ignored.
func (s *Service) AddInventory(ctx context.Context, amount int) {
	if amount <= 0 {
		s.logger.Debug("ignoring non-positive inventory amount", zap.Int("amount", amount))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.TotalEggs += amount
	s.state.TodayIncome += amount
	s.logger.Info("inventory added", zap.Int("amount", amount), zap.Int("remaining_eggs", s.state.RemainingEggs()))

	s.persist(ctx)
}

// RemoveDebt settles the debt record with the given id, subtracting its
// amount from the aggregate. Unknown ids are a no-op.
func (s *Service) RemoveDebt(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, debt := range s.state.Debts {
		if debt.ID != id {
			continue
		}

		s.state.Debts = append(s.state.Debts[:i], s.state.Debts[i+1:]...)
		// Clamp because overpayments may already have drained the aggregate
		// below the itemized sum.
		s.state.TotalDebt = math.Max(0, s.state.TotalDebt-debt.Amount)

		s.logger.Info("debt settled", zap.String("customer", debt.CustomerName), zap.Float64("amount", debt.Amount))
		s.mirrorRow(ctx, debtsMirrorRange, []interface{}{debt.Date, debt.CustomerName, debt.Amount, "settled"})

		s.persist(ctx)
		return
	}
}

// Snapshot returns a copy of the current state for read-only consumers.
func (s *Service) Snapshot() models.LedgerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// autoReset clears the inventory cycle once stock hits zero. Cash and
// outstanding debts survive the reset; only stock counters and the sales log
// are cleared.
func (s *Service) autoReset(ctx context.Context, now time.Time) {
	s.state.TotalEggs = 0
	s.state.SoldEggs = 0
	s.state.TodayIncome = 0
	s.state.TodayOutcome = 0
	s.state.SalesHistory = nil
	s.state.ResetNoticeAt = now

	s.logger.Info("stock depleted, inventory cycle reset")
	s.alert(ctx, "Eggs sold out. Inventory cycle reset, add new stock.")
}

func (s *Service) persist(ctx context.Context) {
	if err := s.store.SaveState(ctx, s.state.Clone()); err != nil {
		s.logger.Error("snapshot save failed", zap.Error(err))
	}
}

func (s *Service) mirrorRow(ctx context.Context, sheetRange string, values []interface{}) {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.WriteRow(ctx, sheetRange, values); err != nil {
		s.logger.Warn("sheet mirror append failed", zap.String("range", sheetRange), zap.Error(err))
	}
}

func (s *Service) alert(ctx context.Context, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, message); err != nil {
		s.logger.Warn("alert delivery failed", zap.Error(err))
	}
}
