package communication

import (
	"errors"
	"net/http"

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
	rg.GET("/communications", h.List)
	rg.POST("/communications", h.Log)
}

func (h *Handler) List(c *gin.Context) {
	comms, err := h.service.List(c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load communications")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"communications": comms})
}

func (h *Handler) Log(c *gin.Context) {
	var req LogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please enter notes")
		return
	}

	comm, err := h.service.Log(&req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please enter notes")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to log communication")
		return
	}

	response.Toast(c, http.StatusCreated, "Communication logged successfully", gin.H{"communication": comm})
}
