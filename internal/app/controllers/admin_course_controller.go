package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursewindow/internal/app/models"
	"github.com/yigit/coursewindow/internal/app/models/dto"
	"github.com/yigit/coursewindow/internal/app/services"
	"github.com/yigit/coursewindow/internal/middleware"
)

// AdminCourseController handles course management
type AdminCourseController struct {
	*CourseController
}

// NewAdminCourseController creates a new AdminCourseController
func NewAdminCourseController(courseService services.CourseService) *AdminCourseController {
	return &AdminCourseController{CourseController: NewCourseController(courseService)}
}

// ListCourses lists every course including inactive ones
// @Summary List all courses
// @Description Lists active and inactive courses with view counters
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param language query string false "Filter by language"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Param tz query string false "Timezone used for accessibility flags"
// @Param at query string false "Evaluate at this RFC 3339 instant instead of now"
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse} "Courses retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /admin/courses [get]
func (c *AdminCourseController) ListCourses(ctx *gin.Context) {
	c.list(ctx, true)
}

// CreateCourse creates a course
// @Summary Create a course
// @Description Creates a course with one or more weekly batches. videoId accepts a YouTube URL or id.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CourseRequest true "Course"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /admin/courses [post]
func (c *AdminCourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course))
}

// GetCourse returns the stored course including its video id
// @Summary Get a stored course
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/courses/{id} [get]
func (c *AdminCourseController) GetCourse(ctx *gin.Context) {
	course, err := c.courseService.GetCourseModel(ctx.Request.Context(), ctx.Param("id"), true)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// PreviewCourse shows the course page a viewer would get at another instant
// @Summary Preview a course page
// @Description Evaluates a course, active or not, at the given instant and timezone. The video id is only present while the selected batch would be open.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param batch query string false "Batch to show instead of the automatic selection"
// @Param tz query string false "Viewer IANA timezone"
// @Param at query string false "Evaluate at this RFC 3339 instant instead of now"
// @Success 200 {object} dto.APIResponse{data=dto.CourseDetailResponse} "Preview retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid timezone or instant"
// @Failure 404 {object} dto.ErrorResponse "Course or batch not found"
// @Router /admin/courses/{id}/preview [get]
func (c *AdminCourseController) PreviewCourse(ctx *gin.Context) {
	detail, err := c.courseService.GetCourse(ctx.Request.Context(), services.GetCourseInput{
		ID:              ctx.Param("id"),
		BatchName:       ctx.Query("batch"),
		IncludeInactive: true,
		Now:             middleware.ViewerNow(ctx),
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(detail))
}

// UpdateCourse replaces a course
// @Summary Update a course
// @Description Replaces the course fields and batches. View counters are kept for batches whose name is unchanged.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param request body dto.CourseRequest true "Course"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/courses/{id} [put]
func (c *AdminCourseController) UpdateCourse(ctx *gin.Context) {
	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.UpdateCourse(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// DeleteCourse deletes a course
// @Summary Delete a course
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 204 "Course deleted"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/courses/{id} [delete]
func (c *AdminCourseController) DeleteCourse(ctx *gin.Context) {
	if err := c.courseService.DeleteCourse(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// SetCourseStatus publishes or hides a course
// @Summary Change course status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Status changed"
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/courses/{id}/status [patch]
func (c *AdminCourseController) SetCourseStatus(ctx *gin.Context) {
	var req dto.UpdateStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.courseService.SetCourseStatus(ctx.Request.Context(), ctx.Param("id"), models.CourseStatus(req.Status)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Course status set to " + req.Status}))
}
