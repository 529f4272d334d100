package target

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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
	rg.GET("/targets", h.List)
	rg.POST("/targets", h.Save)
	rg.GET("/targets/progress", h.Progress)
	rg.GET("/targets/team", h.Team)
}

func (h *Handler) List(c *gin.Context) {
	targets, err := h.service.List()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load targets")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"targets": targets})
}

func (h *Handler) Save(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all required fields")
		return
	}

	t, err := h.service.Save(&req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all required fields")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save target")
		return
	}

	response.Toast(c, http.StatusOK, "Target saved successfully", gin.H{"target": t})
}

// Progress answers ?rep=<id>&period_type=monthly|quarterly for the period
// containing today. Defaults to the authenticated user and monthly.
func (h *Handler) Progress(c *gin.Context) {
	repID := c.GetInt64("user_id")
	if raw := c.Query("rep"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid sales rep ID")
			return
		}
		repID = id
	}

	pt := domain.PeriodMonthly
	if raw := c.Query("period_type"); raw != "" {
		pt = domain.PeriodType(raw)
		if pt != domain.PeriodMonthly && pt != domain.PeriodQuarterly {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown period type")
			return
		}
	}

	progress, err := h.service.ProgressFor(repID, pt, time.Now())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute target progress")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"progress": progress})
}

// Team answers ?period_type=monthly|quarterly with every rep's
// target-vs-actual row for the current period.
func (h *Handler) Team(c *gin.Context) {
	pt := domain.PeriodMonthly
	if raw := c.Query("period_type"); raw != "" {
		pt = domain.PeriodType(raw)
		if pt != domain.PeriodMonthly && pt != domain.PeriodQuarterly {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown period type")
			return
		}
	}

	rows, err := h.service.TeamProgress(pt, time.Now())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute team targets")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"team": rows})
}
