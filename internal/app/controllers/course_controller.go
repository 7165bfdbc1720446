package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursewindow/internal/app/models/dto"
	"github.com/yigit/coursewindow/internal/app/services"
	"github.com/yigit/coursewindow/internal/middleware"
	"github.com/yigit/coursewindow/internal/pkg/calendar"
	"github.com/yigit/coursewindow/internal/pkg/helpers"
)

// CourseController handles the public course endpoints
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// ListCourses lists active courses with their accessibility on the viewer's clock
// @Summary List courses
// @Description Lists active courses. Each batch is evaluated on the viewer's wall clock.
// @Tags courses
// @Produce json
// @Param language query string false "Filter by language code or tag" example(hindi)
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Param tz query string false "Viewer IANA timezone" example(Asia/Kolkata)
// @Param X-Timezone header string false "Viewer IANA timezone"
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse} "Courses retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid timezone or filter, or an at parameter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	c.list(ctx, false)
}

func (c *CourseController) list(ctx *gin.Context, includeInactive bool) {
	page, size := helpers.ParsePaginationParams(ctx)

	resp, pagination, err := c.courseService.ListCourses(ctx.Request.Context(), services.ListCoursesInput{
		Language:        ctx.Query("language"),
		IncludeInactive: includeInactive,
		Page:            page,
		Size:            size,
		Now:             middleware.ViewerNow(ctx),
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(resp, pagination))
}

// GetCourse returns a course page with the selected batch
// @Summary Get course by ID
// @Description Returns a course with per-batch accessibility. The video id is only present while the selected batch is open.
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Param batch query string false "Batch to show instead of the automatic selection"
// @Param tz query string false "Viewer IANA timezone"
// @Success 200 {object} dto.APIResponse{data=dto.CourseDetailResponse} "Course retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid timezone"
// @Failure 404 {object} dto.ErrorResponse "Course or batch not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	detail, err := c.courseService.GetCourse(ctx.Request.Context(), services.GetCourseInput{
		ID:        ctx.Param("id"),
		BatchName: ctx.Query("batch"),
		Now:       middleware.ViewerNow(ctx),
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(detail))
}

// GetAvailability returns only the accessibility state of a course
// @Summary Get course availability
// @Description Returns the accessibility of every batch of a course at the viewer's wall clock
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Param batch query string false "Batch to select"
// @Param tz query string false "Viewer IANA timezone"
// @Success 200 {object} dto.APIResponse{data=dto.AvailabilityResponse} "Availability retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid timezone"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/availability [get]
func (c *CourseController) GetAvailability(ctx *gin.Context) {
	availability, err := c.courseService.GetAvailability(ctx.Request.Context(), services.GetCourseInput{
		ID:        ctx.Param("id"),
		BatchName: ctx.Query("batch"),
		Now:       middleware.ViewerNow(ctx),
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(availability))
}

// RecordView counts a view of an open batch
// @Summary Record a view
// @Description Counts one view of a batch. Refused while the batch is closed on the viewer's clock.
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body dto.RecordViewRequest true "Batch being watched"
// @Param tz query string false "Viewer IANA timezone"
// @Success 200 {object} dto.APIResponse{data=dto.RecordViewResponse} "View recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 403 {object} dto.ErrorResponse "Batch is not accessible now"
// @Failure 404 {object} dto.ErrorResponse "Course or batch not found"
// @Router /courses/{id}/views [post]
func (c *CourseController) RecordView(ctx *gin.Context) {
	var req dto.RecordViewRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.courseService.RecordView(ctx.Request.Context(), ctx.Param("id"), req.BatchName, middleware.ViewerNow(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetCalendar returns the batches of a course as an iCalendar feed
// @Summary Course calendar feed
// @Description Weekly recurring events, one per batch, in floating local time
// @Tags courses
// @Produce text/calendar
// @Param id path string true "Course ID"
// @Success 200 {string} string "iCalendar document"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/calendar.ics [get]
func (c *CourseController) GetCalendar(ctx *gin.Context) {
	course, err := c.courseService.GetCourseModel(ctx.Request.Context(), ctx.Param("id"), false)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	body := calendar.Build(course, time.Now())
	filename := strings.ReplaceAll(course.ID, "\"", "") + ".ics"
	ctx.Header("Content-Disposition", "inline; filename=\""+filename+"\"")
	ctx.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}
