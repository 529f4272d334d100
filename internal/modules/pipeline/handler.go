package pipeline

import (
	"net/http"

	"dealercrm/internal/domain"
	"dealercrm/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/pipeline", h.Board)
	rg.POST("/pipeline/drop", h.Drop)
}

func (h *Handler) Board(c *gin.Context) {
	board, err := h.service.BuildBoard(c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build pipeline")
		return
	}
	response.Success(c, http.StatusOK, board)
}

// DropRequest mirrors the browser drop event: the target stage plus both
// dataTransfer payloads.
type DropRequest struct {
	Stage string `json:"stage" binding:"required"`
	Text  string `json:"text"`
	JSON  string `json:"json"`
}

func (h *Handler) Drop(c *gin.Context) {
	var req DropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	leadID, ok := ParseDragPayload(req.Text, req.JSON)
	if !ok {
		// Malformed drag data aborts the transition with no toast.
		response.Success(c, http.StatusOK, gin.H{"moved": false})
		return
	}

	l, moved, err := h.service.Transition(leadID, domain.LeadStatus(req.Stage))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to move lead")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"moved": moved, "lead": l})
}
