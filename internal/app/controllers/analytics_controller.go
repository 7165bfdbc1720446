package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursewindow/internal/app/models/dto"
	"github.com/yigit/coursewindow/internal/app/services"
	"github.com/yigit/coursewindow/internal/middleware"
	"github.com/yigit/coursewindow/internal/monitor"
)

// LiveSource provides the latest live monitor snapshot
type LiveSource interface {
	Snapshot() monitor.Snapshot
}

// AnalyticsController handles view statistics and the live dashboard
type AnalyticsController struct {
	analyticsService services.AnalyticsService
	live             LiveSource
}

// NewAnalyticsController creates a new AnalyticsController. live may be nil
// when the monitor is disabled.
func NewAnalyticsController(analyticsService services.AnalyticsService, live LiveSource) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
		live:             live,
	}
}

// GetCourseStats returns the per-batch views of a course
// @Summary Course view statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseStatsResponse} "Statistics retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/courses/{id}/stats [get]
func (c *AnalyticsController) GetCourseStats(ctx *gin.Context) {
	stats, err := c.analyticsService.CourseStats(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}

// GetSummary returns totals across all courses
// @Summary Analytics summary
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AnalyticsSummaryResponse} "Summary retrieved successfully"
// @Router /admin/analytics/summary [get]
func (c *AnalyticsController) GetSummary(ctx *gin.Context) {
	summary, err := c.analyticsService.Summary(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary))
}

// GetLive returns the courses open in the operator timezone
// @Summary Live courses
// @Description Latest evaluation of the live monitor
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.LiveSnapshotResponse} "Snapshot retrieved successfully"
// @Router /admin/live [get]
func (c *AnalyticsController) GetLive(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.LiveSnapshot()))
}

// LiveSnapshot converts the latest monitor evaluation. It is empty when the
// monitor is disabled.
func (c *AnalyticsController) LiveSnapshot() dto.LiveSnapshotResponse {
	resp := dto.LiveSnapshotResponse{Courses: []dto.LiveCourse{}}
	if c.live == nil {
		return resp
	}

	snap := c.live.Snapshot()
	resp.EvaluatedAt = snap.EvaluatedAt
	resp.Timezone = snap.Timezone
	for _, lc := range snap.Courses {
		resp.Courses = append(resp.Courses, dto.LiveCourse{
			CourseID: lc.CourseID,
			Title:    lc.Title,
			Batches:  lc.Batches,
		})
	}
	return resp
}
