package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/precivox/engine-go/internal/domain"
	"github.com/precivox/engine-go/internal/service"
)

type AlertHandler struct {
	service *service.AlertService
}

func NewAlertHandler(service *service.AlertService) *AlertHandler {
	return &AlertHandler{service: service}
}

func (h *AlertHandler) parseFilter(c *gin.Context) domain.AlertFilter {
	filter := domain.AlertFilter{
		OrganizationID: strings.TrimSpace(c.Query("organization_id")),
		LocationID:     strings.TrimSpace(c.Query("location_id")),
		Page:           1,
		PageSize:       50,
	}

	if t := strings.TrimSpace(c.Query("type")); t != "" {
		filter.Type = domain.AlertType(strings.ToUpper(t))
	}
	if s := strings.TrimSpace(c.Query("severity")); s != "" {
		filter.Severity = domain.AlertSeverity(strings.ToUpper(s))
	}
	if unread, err := strconv.ParseBool(c.DefaultQuery("unread_only", "false")); err == nil {
		filter.UnreadOnly = unread
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("page_size", "50")); err == nil && size > 0 {
		filter.PageSize = size
	}

	return filter
}

// GetAlerts handles GET /api/v1/alerts
func (h *AlertHandler) GetAlerts(c *gin.Context) {
	filter := h.parseFilter(c)
	if filter.OrganizationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "organization_id is required"})
		return
	}

	alerts, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list alerts"})
		return
	}

	if alerts == nil {
		alerts = []domain.Alert{}
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts":    alerts,
		"total":     total,
		"page":      filter.Page,
		"page_size": filter.PageSize,
	})
}

// MarkRead handles POST /api/v1/alerts/:id/read
func (h *AlertHandler) MarkRead(c *gin.Context) {
	organizationID := strings.TrimSpace(c.Query("organization_id"))
	if organizationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "organization_id is required"})
		return
	}

	err := h.service.MarkRead(c.Request.Context(), organizationID, c.Param("id"))
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found or already read"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark alert read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetSummary handles GET /api/v1/alerts/summary
func (h *AlertHandler) GetSummary(c *gin.Context) {
	organizationID := strings.TrimSpace(c.Query("organization_id"))
	if organizationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "organization_id is required"})
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), organizationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load alert summary"})
		return
	}

	if summary == nil {
		summary = []domain.AlertSummary{}
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
