package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/hangar-scheduler/internal/middleware"
	"github.com/BruksfildServices01/hangar-scheduler/internal/timezone"
	"github.com/BruksfildServices01/hangar-scheduler/internal/usecase/appointment"
	ucFinance "github.com/BruksfildServices01/hangar-scheduler/internal/usecase/finance"
)

// ======================================================
// HANDLER
// ======================================================

type FinanceHandler struct {
	summary   *ucFinance.GetFinancialSummary
	entries   *ucFinance.Entries
	dashboard *appointment.GetDashboard
	clock     timezone.Clock
}

func NewFinanceHandler(
	summary *ucFinance.GetFinancialSummary,
	entries *ucFinance.Entries,
	dashboard *appointment.GetDashboard,
	clock timezone.Clock,
) *FinanceHandler {
	return &FinanceHandler{
		summary:   summary,
		entries:   entries,
		dashboard: dashboard,
		clock:     clock,
	}
}

type CreateExpenseRequest struct {
	Description   string  `json:"description" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	Category      string  `json:"category"`
	Date          string  `json:"date" binding:"required"`
	Type          string  `json:"type"` // RECEITA | DESPESA
	PaymentMethod string  `json:"payment_method"`
}

// ======================================================
// DASHBOARD
// ======================================================

func (h *FinanceHandler) Dashboard(c *gin.Context) {
	d, err := h.dashboard.Execute(c.Request.Context(), middleware.HangarID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// ======================================================
// SUMMARY
// ======================================================

func (h *FinanceHandler) Summary(c *gin.Context) {
	s, err := h.summary.Execute(c.Request.Context(), ucFinance.SummaryInput{
		HangarID: middleware.HangarID(c),
		From:     c.Query("from"),
		To:       c.Query("to"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// ======================================================
// EXPENSES
// ======================================================

func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	now := h.clock.Now()
	from := c.DefaultQuery("from", time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).Format(timezone.DateLayout))
	to := c.DefaultQuery("to", now.Format(timezone.DateLayout))

	entries, err := h.entries.List(c.Request.Context(), middleware.HangarID(c), from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, entries)
}

func (h *FinanceHandler) CreateExpense(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	entry, err := h.entries.Create(c.Request.Context(), ucFinance.EntryInput{
		HangarID:      middleware.HangarID(c),
		UserID:        middleware.UserID(c),
		Description:   req.Description,
		Amount:        req.Amount,
		Category:      req.Category,
		Date:          req.Date,
		Type:          req.Type,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.entries.Delete(c.Request.Context(), middleware.HangarID(c), middleware.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
