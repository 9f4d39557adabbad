package models

import "time"

// ResetNoticeWindow is how long the depletion notice stays visible after an
// inventory auto-reset.
const ResetNoticeWindow = 10 * time.Second

// SalesHistoryCap bounds the retained sales log; older entries are evicted.
const SalesHistoryCap = 10

// ChartSeriesSize is how many recent sales feed the dashboard chart.
const ChartSeriesSize = 5

// DebtRecord captures an outstanding amount owed from an underpaid sale.
// Records are immutable after creation and removed only by explicit settlement.
type DebtRecord struct {
	ID           string  `bson:"id" json:"id"`
	CustomerName string  `bson:"customer_name" json:"customer_name"`
	Amount       float64 `bson:"amount" json:"amount"`
	Date         string  `bson:"date" json:"date"`
}

// SaleRecord captures a completed sale transaction.
type SaleRecord struct {
	ID     string  `bson:"id" json:"id"`
	Eggs   int     `bson:"eggs" json:"eggs"`
	Amount float64 `bson:"amount" json:"amount"`
	Date   string  `bson:"date" json:"date"`
	Time   string  `bson:"time" json:"time"`
}

// LedgerState is the full business state of the stall: cash, outstanding
// debt, the current inventory cycle and the recent sales log. It is owned by
// a single ledger service instance and persisted as one snapshot document.
type LedgerState struct {
	Cash          float64      `bson:"cash" json:"cash"`
	TotalDebt     float64      `bson:"total_debt" json:"total_debt"`
	TotalEggs     int          `bson:"total_eggs" json:"total_eggs"`
	SoldEggs      int          `bson:"sold_eggs" json:"sold_eggs"`
	TodayIncome   int          `bson:"today_income" json:"today_income"`
	TodayOutcome  int          `bson:"today_outcome" json:"today_outcome"`
	Debts         []DebtRecord `bson:"debts" json:"debts"`
	SalesHistory  []SaleRecord `bson:"sales_history" json:"sales_history"`
	ResetNoticeAt time.Time    `bson:"reset_notice_at,omitempty" json:"reset_notice_at,omitempty"`
}

// RemainingEggs is the unsold stock of the current cycle.
func (s LedgerState) RemainingEggs() int {
	return s.TotalEggs - s.SoldEggs
}

// StockPercentage reports remaining stock as a percentage of everything
// stocked this cycle, or 0 when nothing has been stocked.
func (s LedgerState) StockPercentage() float64 {
	if s.TotalEggs == 0 {
		return 0
	}
	return float64(s.RemainingEggs()) / float64(s.TotalEggs) * 100
}

// IsLowStock reports whether stock has dropped below the warning threshold
// without being fully depleted.
func (s LedgerState) IsLowStock() bool {
	pct := s.StockPercentage()
	return pct > 0 && pct < 20
}

// IsOutOfStock reports whether no sellable eggs remain.
func (s LedgerState) IsOutOfStock() bool {
	return s.RemainingEggs() == 0
}

// NetCash is cash on hand minus outstanding debt.
func (s LedgerState) NetCash() float64 {
	return s.Cash - s.TotalDebt
}

// ResetNoticeActive reports whether the depletion notice should still be
// shown at the given instant.
func (s LedgerState) ResetNoticeActive(now time.Time) bool {
	return !s.ResetNoticeAt.IsZero() && now.Before(s.ResetNoticeAt.Add(ResetNoticeWindow))
}

// ChartSeries returns the most recent sales in chronological order, capped at
// ChartSeriesSize entries. SalesHistory is stored most-recent-first, so the
// slice is reversed for plotting.
func (s LedgerState) ChartSeries() []SaleRecord {
	n := len(s.SalesHistory)
	if n > ChartSeriesSize {
		n = ChartSeriesSize
	}
	series := make([]SaleRecord, n)
	for i := 0; i < n; i++ {
		series[i] = s.SalesHistory[n-1-i]
	}
	return series
}

// Clone returns a deep copy safe to hand outside the owning service.
func (s LedgerState) Clone() LedgerState {
	out := s
	out.Debts = append([]DebtRecord(nil), s.Debts...)
	out.SalesHistory = append([]SaleRecord(nil), s.SalesHistory...)
	return out
}
