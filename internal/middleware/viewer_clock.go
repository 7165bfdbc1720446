package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursewindow/internal/app/models/dto"
	"github.com/yigit/coursewindow/internal/pkg/helpers"
)

const (
	// TimezoneHeader carries the viewer's IANA timezone
	TimezoneHeader = "X-Timezone"

	contextViewerNow = "viewerNow"
)

// ViewerClock resolves the viewer's wall clock from the tz query parameter or
// the X-Timezone header, falling back to defaultLoc. The instant is always the
// current time; an "at" query parameter is rejected.
func ViewerClock(defaultLoc *time.Location, now func() time.Time) gin.HandlerFunc {
	return viewerClock(defaultLoc, now, false)
}

// PreviewClock is ViewerClock for administrators: an RFC 3339 "at" query
// parameter replaces the current instant.
func PreviewClock(defaultLoc *time.Location, now func() time.Time) gin.HandlerFunc {
	return viewerClock(defaultLoc, now, true)
}

func viewerClock(defaultLoc *time.Location, now func() time.Time, allowPreview bool) gin.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(c *gin.Context) {
		tz := c.Query("tz")
		if tz == "" {
			tz = c.GetHeader(TimezoneHeader)
		}

		loc, err := helpers.LoadLocation(tz, defaultLoc)
		if err != nil {
			detail := dto.NewErrorDetail(dto.ErrorCodeInvalidTimezone, "Unknown timezone").
				WithField("tz").WithDetails(err.Error())
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
			return
		}

		instant := now()
		if at, ok := c.GetQuery("at"); ok {
			if !allowPreview {
				detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Evaluation time cannot be overridden").
					WithField("at").WithDetails("courses are always evaluated at the current time")
				c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
				return
			}
			instant, err = time.Parse(time.RFC3339, strings.TrimSpace(at))
			if err != nil {
				detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid evaluation time").
					WithField("at").WithDetails("at must be an RFC 3339 timestamp")
				c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
				return
			}
		}

		c.Set(contextViewerNow, instant.In(loc))
		c.Next()
	}
}

// ViewerNow returns the instant resolved by ViewerClock in the viewer's location
func ViewerNow(c *gin.Context) time.Time {
	if v, ok := c.Get(contextViewerNow); ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Now()
}
