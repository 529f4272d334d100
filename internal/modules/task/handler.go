package task

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
	rg.GET("/tasks", h.List)
	rg.POST("/tasks", h.Create)
	rg.PUT("/tasks/:id", h.Update)
	rg.POST("/tasks/:id/toggle", h.Toggle)
	rg.DELETE("/tasks/:id", h.Delete)
}

func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid task ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) List(c *gin.Context) {
	tasks, err := h.service.List(c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load tasks")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tasks": tasks})
}

func (h *Handler) Create(c *gin.Context) {
	var req SaveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all required fields")
		return
	}

	t, err := h.service.Create(&req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all required fields")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save task")
		return
	}

	response.Toast(c, http.StatusCreated, "Task saved successfully", gin.H{"task": t})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req SaveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all required fields")
		return
	}

	t, err := h.service.Update(id, &req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all required fields")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save task")
		return
	}
	if t == nil {
		response.Success(c, http.StatusOK, nil)
		return
	}

	response.Toast(c, http.StatusOK, "Task saved successfully", gin.H{"task": t})
}

func (h *Handler) Toggle(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	t, err := h.service.ToggleStatus(id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update task")
		return
	}
	if t == nil {
		response.Success(c, http.StatusOK, nil)
		return
	}

	response.Toast(c, http.StatusOK, "Task updated", gin.H{"task": t})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(id, c.Query("confirm") == "true")
	if err != nil {
		if errors.Is(err, ErrNotConfirmed) {
			response.Error(c, http.StatusBadRequest, "NOT_CONFIRMED", "Deletion requires confirmation")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete task")
		return
	}
	if !deleted {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Task not found")
		return
	}

	response.Toast(c, http.StatusOK, "Task deleted successfully", nil)
}
