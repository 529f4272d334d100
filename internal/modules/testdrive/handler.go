package testdrive

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
	rg.GET("/test-drives", h.List)
	rg.POST("/test-drives", h.Create)
	rg.PUT("/test-drives/:id", h.Update)
	rg.DELETE("/test-drives/:id", h.Delete)
}

func driveID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid test drive ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) List(c *gin.Context) {
	drives, err := h.service.List()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load test drives")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"test_drives": drives})
}

func (h *Handler) Create(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all required fields")
		return
	}

	td, err := h.service.Create(&req, c.GetInt64("user_id"))
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all required fields")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save test drive")
		return
	}

	response.Toast(c, http.StatusCreated, "Test drive saved successfully", gin.H{"test_drive": td})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := driveID(c)
	if !ok {
		return
	}

	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all required fields")
		return
	}

	td, err := h.service.Update(id, &req, c.GetInt64("user_id"))
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all required fields")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save test drive")
		return
	}
	if td == nil {
		response.Success(c, http.StatusOK, nil)
		return
	}

	response.Toast(c, http.StatusOK, "Test drive saved successfully", gin.H{"test_drive": td})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := driveID(c)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(id, c.Query("confirm") == "true")
	if err != nil {
		if errors.Is(err, ErrNotConfirmed) {
			response.Error(c, http.StatusBadRequest, "NOT_CONFIRMED", "Deletion requires confirmation")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete test drive")
		return
	}
	if !deleted {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Test drive not found")
		return
	}

	response.Toast(c, http.StatusOK, "Test drive deleted successfully", nil)
}
