package user

import (
	"errors"
	"net/http"
	"strconv"

	"dealercrm/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the user admin surface. The group is expected to be
// wrapped in AdminOnly; reps reach users only through /users/sales-reps.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.List)
	rg.POST("/users", h.Create)
	rg.PUT("/users/:id", h.Update)
	rg.DELETE("/users/:id", h.Delete)
}

// RegisterSharedRoutes mounts the endpoints every authenticated role needs.
func (h *Handler) RegisterSharedRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/sales-reps", h.SalesReps)
}

// bindError answers a failed ShouldBindJSON, attaching per-field tags when
// the failure came from validation rather than malformed JSON.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all required fields", fields)
		return
	}
	response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all required fields")
}

func userID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) List(c *gin.Context) {
	users, err := h.service.List()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load users")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

func (h *Handler) SalesReps(c *gin.Context) {
	reps, err := h.service.SalesReps()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load users")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": reps})
}

func (h *Handler) Create(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	u, err := h.service.Create(&req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all required fields")
		case errors.Is(err, ErrDuplicateEmail):
			response.Error(c, http.StatusConflict, "DUPLICATE_EMAIL", "A user with this email already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save user")
		}
		return
	}

	response.Toast(c, http.StatusCreated, "User saved successfully", gin.H{"user": u})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	u, err := h.service.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all required fields")
		case errors.Is(err, ErrDuplicateEmail):
			response.Error(c, http.StatusConflict, "DUPLICATE_EMAIL", "A user with this email already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save user")
		}
		return
	}
	if u == nil {
		response.Success(c, http.StatusOK, nil)
		return
	}

	response.Toast(c, http.StatusOK, "User saved successfully", gin.H{"user": u})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(id, c.Query("confirm") == "true")
	if err != nil {
		if errors.Is(err, ErrNotConfirmed) {
			response.Error(c, http.StatusBadRequest, "NOT_CONFIRMED", "Deletion requires confirmation")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete user")
		return
	}
	if !deleted {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}

	response.Toast(c, http.StatusOK, "User deleted successfully", nil)
}
