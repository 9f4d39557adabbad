package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bekzodm/tuxumpos/internal/domain/models"
	"github.com/bekzodm/tuxumpos/internal/service/ledger"
)

// LedgerHandler adapts ledger operations to HTTP.
type LedgerHandler struct {
	svc    ledger.API
	logger *zap.Logger
	now    func() time.Time
}

// NewLedgerHandler constructs the HTTP handler adapter.
func NewLedgerHandler(svc ledger.API, logger *zap.Logger) *LedgerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerHandler{svc: svc, logger: logger, now: time.Now}
}

type saleRequest struct {
	Eggs      int     `json:"eggs"`
	UnitPrice float64 `json:"unit_price"`
	Given     float64 `json:"given"`
}

type inventoryRequest struct {
	Amount int `json:"amount"`
}

// dashboardResponse carries every quantity the UI displays.
type dashboardResponse struct {
	Cash            float64             `json:"cash"`
	TotalDebt       float64             `json:"total_debt"`
	NetCash         float64             `json:"net_cash"`
	ShowCashStatus  bool                `json:"show_cash_status"`
	TotalEggs       int                 `json:"total_eggs"`
	SoldEggs        int                 `json:"sold_eggs"`
	RemainingEggs   int                 `json:"remaining_eggs"`
	TodayIncome     int                 `json:"today_income"`
	TodayOutcome    int                 `json:"today_outcome"`
	StockPercentage float64             `json:"stock_percentage"`
	LowStock        bool                `json:"low_stock"`
	OutOfStock      bool                `json:"out_of_stock"`
	ResetNotice     bool                `json:"reset_notice"`
	Debts           []models.DebtRecord `json:"debts"`
	Sales           []models.SaleRecord `json:"sales"`
	Chart           []models.SaleRecord `json:"chart"`
}

// RecordSale processes a sale request.
func (h *LedgerHandler) RecordSale(c *gin.Context) {
	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid sale payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	outcome, err := h.svc.RecordSale(c.Request.Context(), req.Eggs, req.UnitPrice, req.Given)
	switch {
	case errors.Is(err, ledger.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "egg count and unit price must be positive"})
		return
	case errors.Is(err, ledger.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": "not enough eggs in stock"})
		return
	case err != nil:
		h.logger.Error("failed recording sale", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record sale"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"outcome":   outcome,
		"dashboard": h.buildDashboard(),
	})
}

// AddInventory adds eggs to the current cycle. Non-positive amounts are
// accepted and ignored, mirroring the ledger semantics.
func (h *LedgerHandler) AddInventory(c *gin.Context) {
	var req inventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid inventory payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.svc.AddInventory(c.Request.Context(), req.Amount)
	c.JSON(http.StatusOK, gin.H{"dashboard": h.buildDashboard()})
}

// RemoveDebt settles a debt record by id. Idempotent.
func (h *LedgerHandler) RemoveDebt(c *gin.Context) {
	h.svc.RemoveDebt(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

// Dashboard returns every derived quantity the UI displays.
func (h *LedgerHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.buildDashboard())
}

func (h *LedgerHandler) buildDashboard() dashboardResponse {
	state := h.svc.Snapshot()

	debts := state.Debts
	if debts == nil {
		debts = []models.DebtRecord{}
	}
	sales := state.SalesHistory
	if sales == nil {
		sales = []models.SaleRecord{}
	}

	return dashboardResponse{
		Cash:            state.Cash,
		TotalDebt:       state.TotalDebt,
		NetCash:         state.NetCash(),
		ShowCashStatus:  state.Cash > 0 || state.TotalDebt > 0,
		TotalEggs:       state.TotalEggs,
		SoldEggs:        state.SoldEggs,
		RemainingEggs:   state.RemainingEggs(),
		TodayIncome:     state.TodayIncome,
		TodayOutcome:    state.TodayOutcome,
		StockPercentage: state.StockPercentage(),
		LowStock:        state.IsLowStock(),
		OutOfStock:      state.IsOutOfStock(),
		ResetNotice:     state.ResetNoticeActive(h.now()),
		Debts:           debts,
		Sales:           sales,
		Chart:           state.ChartSeries(),
	}
}
