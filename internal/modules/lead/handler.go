package lead

import (
	"errors"
	"net/http"
	"strconv"

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
	rg.GET("/leads", h.List)
	rg.POST("/leads", h.Create)
	rg.GET("/leads/:id", h.Detail)
	rg.PUT("/leads/:id", h.Update)
	rg.DELETE("/leads/:id", h.Delete)
	rg.POST("/leads/:id/reassign", h.Reassign)
	rg.PUT("/leads/:id/documents/:key", h.SetDocument)
}

func leadID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid lead ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) List(c *gin.Context) {
	leads, err := h.service.List(c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load leads")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"leads": leads})
}

func (h *Handler) Create(c *gin.Context) {
	var req SaveLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all required fields")
		return
	}

	l, err := h.service.Create(&req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all required fields")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save lead")
		return
	}

	response.Toast(c, http.StatusCreated, "Lead saved successfully", gin.H{"lead": l})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}

	var req SaveLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all required fields")
		return
	}

	l, err := h.service.Update(id, &req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all required fields")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save lead")
		return
	}
	if l == nil {
		// Missing id is a non-error: nothing changed, no toast.
		response.Success(c, http.StatusOK, nil)
		return
	}

	response.Toast(c, http.StatusOK, "Lead saved successfully", gin.H{"lead": l})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(id, c.Query("confirm") == "true")
	if err != nil {
		if errors.Is(err, ErrNotConfirmed) {
			response.Error(c, http.StatusBadRequest, "NOT_CONFIRMED", "Deletion requires confirmation")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete lead")
		return
	}
	if !deleted {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Lead not found")
		return
	}

	response.Toast(c, http.StatusOK, "Lead deleted successfully", nil)
}

func (h *Handler) Reassign(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}

	var req ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Select a user to reassign to")
		return
	}

	l, err := h.service.Reassign(id, req.ToUserID, c.GetInt64("user_id"), req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, ErrLeadNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Lead not found")
		case errors.Is(err, ErrAlreadyAssigned):
			response.Error(c, http.StatusConflict, "ALREADY_ASSIGNED", "Lead is already assigned to this member")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to reassign lead")
		}
		return
	}

	response.Toast(c, http.StatusOK, "Lead reassigned", gin.H{"lead": l})
}

func (h *Handler) SetDocument(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}

	var req DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	l, err := h.service.SetDocument(id, c.Param("key"), req.Uploaded, c.GetInt64("user_id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrLeadNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Lead not found")
		case errors.Is(err, ErrUnknownDocument):
			response.Error(c, http.StatusBadRequest, "UNKNOWN_DOCUMENT", "Unknown document key")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update document")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"lead": l})
}

func (h *Handler) Detail(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}

	d, err := h.service.Detail(id)
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Lead not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load lead")
		return
	}

	response.Success(c, http.StatusOK, d)
}
