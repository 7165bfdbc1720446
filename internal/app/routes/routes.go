package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursewindow/internal/app/controllers"
	"github.com/yigit/coursewindow/internal/app/models"
	"github.com/yigit/coursewindow/internal/app/models/dto"
	"github.com/yigit/coursewindow/internal/middleware"
)

// Handlers groups the controllers and middleware the router needs
type Handlers struct {
	Course         *controllers.CourseController
	AdminCourse    *controllers.AdminCourseController
	Auth           *controllers.AuthController
	Analytics      *controllers.AnalyticsController
	AuthMiddleware *middleware.AuthMiddleware
	ViewerClock    gin.HandlerFunc // current instant only
	PreviewClock   gin.HandlerFunc // honours ?at= for administrators
	LiveStream     gin.HandlerFunc // nil when the live monitor is disabled
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, h Handlers) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok", "time": time.Now().UTC()}))
	})
	v1.GET("/languages", controllers.ListLanguages)

	// --- Public course routes, evaluated on the viewer's clock ---
	courses := v1.Group("/courses")
	courses.Use(h.ViewerClock)
	{
		courses.GET("", h.Course.ListCourses)
		courses.GET("/:id", h.Course.GetCourse)
		courses.GET("/:id/availability", h.Course.GetAvailability)
		courses.POST("/:id/views", h.Course.RecordView)
		courses.GET("/:id/calendar.ics", h.Course.GetCalendar)
	}

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
	}

	// --- Admin routes ---
	admin := v1.Group("/admin")
	admin.Use(h.AuthMiddleware.JWTAuth(), h.AuthMiddleware.RoleRequired(string(models.RoleAdmin)))
	{
		adminCourses := admin.Group("/courses")
		{
			adminCourses.GET("", h.PreviewClock, h.AdminCourse.ListCourses)
			adminCourses.POST("", h.AdminCourse.CreateCourse)
			adminCourses.GET("/:id", h.AdminCourse.GetCourse)
			adminCourses.GET("/:id/preview", h.PreviewClock, h.AdminCourse.PreviewCourse)
			adminCourses.PUT("/:id", h.AdminCourse.UpdateCourse)
			adminCourses.DELETE("/:id", h.AdminCourse.DeleteCourse)
			adminCourses.PATCH("/:id/status", h.AdminCourse.SetCourseStatus)
			adminCourses.GET("/:id/stats", h.Analytics.GetCourseStats)
		}

		admin.GET("/analytics/summary", h.Analytics.GetSummary)
		admin.GET("/live", h.Analytics.GetLive)
		if h.LiveStream != nil {
			admin.GET("/live/ws", h.LiveStream)
		}
	}
}
