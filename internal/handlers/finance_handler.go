package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
	"github.com/Wesley-SdS/modern-ecommerce/internal/service"
)

func (h *Handler) listEntries(c *gin.Context, typ models.AccountEntryType) {
	list, err := h.finance.ListEntries(c.Request.Context(), service.EntryQuery{
		Type:   typ,
		Status: models.AccountEntryStatus(c.Query("status")),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 0),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, list)
}

func (h *Handler) createEntry(c *gin.Context, typ models.AccountEntryType) {
	var req service.CreateEntryInput
	req.Type = typ
	if !h.bind(c, &req) {
		return
	}
	req.Type = typ
	e, err := h.finance.CreateEntry(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusCreated, e)
}

// GET /api/v1/admin/finance/entries?type=&status=
func (h *Handler) ListEntries(c *gin.Context) {
	h.listEntries(c, models.AccountEntryType(c.Query("type")))
}

func (h *Handler) ListPayables(c *gin.Context) { h.listEntries(c, models.Payable) }

func (h *Handler) ListReceivables(c *gin.Context) { h.listEntries(c, models.Receivable) }

func (h *Handler) CreatePayable(c *gin.Context) { h.createEntry(c, models.Payable) }

func (h *Handler) CreateReceivable(c *gin.Context) { h.createEntry(c, models.Receivable) }

// POST /api/v1/admin/finance/:id/mark-paid
func (h *Handler) MarkEntryPaid(c *gin.Context) {
	e, err := h.finance.MarkAsPaid(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, e)
}

func (h *Handler) DeleteEntry(c *gin.Context) {
	if err := h.finance.DeleteEntry(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Entry deleted successfully"})
}

// GET /api/v1/admin/finance/cash-flow?start=&end=
func (h *Handler) CashFlow(c *gin.Context) {
	cf, err := h.finance.GetCashFlow(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, cf)
}

func (h *Handler) FinanceCategories(c *gin.Context) {
	success(c, http.StatusOK, models.FinancialCategories)
}
