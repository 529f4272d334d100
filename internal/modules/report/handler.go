package report

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
	rg.GET("/dashboard", h.Dashboard)
	rg.GET("/reports/funnel", h.Funnel)
	rg.GET("/reports/sources", h.Sources)
	rg.GET("/reports/activity", h.Activity)
	rg.GET("/reports/team", h.Team)
}

// Dashboard serves the management dashboard to Admin/Sales Manager callers
// and the scoped rep dashboard to everyone else.
func (h *Handler) Dashboard(c *gin.Context) {
	role := domain.UserRole(c.GetString("role"))
	if role.IsManagement() {
		d, err := h.service.AdminDashboard()
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build dashboard")
			return
		}
		response.Success(c, http.StatusOK, d)
		return
	}

	d, err := h.service.RepDashboard(c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build dashboard")
		return
	}
	response.Success(c, http.StatusOK, d)
}

func (h *Handler) Funnel(c *gin.Context) {
	stages, err := h.service.FunnelReport()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build funnel")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stages": stages})
}

func (h *Handler) Sources(c *gin.Context) {
	rows, err := h.service.SourceReport()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build source report")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sources": rows})
}

func (h *Handler) Activity(c *gin.Context) {
	rows, err := h.service.ActivityReport()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build activity report")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"activity": rows})
}

func (h *Handler) Team(c *gin.Context) {
	rows, err := h.service.TeamReport()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build team report")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"team": rows})
}
