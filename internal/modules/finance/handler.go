// Package finance exposes the financing calculator over HTTP.
package finance

import (
	"net/http"

	"dealercrm/internal/pkg/finance"
	"dealercrm/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type QuoteRequest struct {
	Price       float64 `json:"price" binding:"required"`
	DownPayment float64 `json:"down_payment"`
	AnnualRate  float64 `json:"annual_rate"`
	TermMonths  int     `json:"term_months" binding:"required"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/finance/quote", h.Quote)
}

func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Price and term are required")
		return
	}

	quote := finance.Amortize(req.Price, req.DownPayment, req.AnnualRate, req.TermMonths)
	response.Success(c, http.StatusOK, gin.H{"quote": quote})
}
