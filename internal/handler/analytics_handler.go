package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pathlight/pathlight-backend/internal/middleware"
	"github.com/pathlight/pathlight-backend/internal/response"
	"github.com/pathlight/pathlight-backend/internal/service"
)

type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Dashboard godoc
// GET /api/v1/learner/analytics/dashboard
// Cross-roadmap performance dashboard for the authenticated learner.
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	claims := middleware.GetClaims(c)

	dash, err := h.analyticsService.Dashboard(c.Request.Context(), claims.LearnerID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"dashboard": dash})
}

// RoadmapBreakdown godoc
// GET /api/v1/learner/roadmaps/:roadmap_id/analytics
// Quiz performance aggregated over a single roadmap.
func (h *AnalyticsHandler) RoadmapBreakdown(c *gin.Context) {
	claims := middleware.GetClaims(c)

	roadmapID, err := uuid.Parse(c.Param("roadmap_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	dash, err := h.analyticsService.RoadmapBreakdown(c.Request.Context(), claims.LearnerID, roadmapID)
	if err != nil {
		failDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"analytics": dash})
}
