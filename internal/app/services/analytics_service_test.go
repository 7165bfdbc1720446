package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursewindow/internal/app/models"
	"github.com/yigit/coursewindow/internal/app/repositories"
	"github.com/yigit/coursewindow/internal/pkg/apperrors"
)

func TestAnalytics(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryCourseRepository(time.Now)
	courses := NewCourseService(repo, zerolog.Nop())
	analytics := NewAnalyticsService(repo)

	empty, err := analytics.Summary(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalCourses)
	assert.Nil(t, empty.MostViewed)
	assert.Empty(t, empty.PerCourse)

	first, err := courses.CreateCourse(ctx, newCourseRequest())
	require.NoError(t, err)

	req := newCourseRequest()
	req.Title = "Pranayama"
	second, err := courses.CreateCourse(ctx, req)
	require.NoError(t, err)
	require.NoError(t, courses.SetCourseStatus(ctx, second.ID, models.CourseStatusInactive))

	// Monday 07:00 and Tuesday 18:00
	for i := 0; i < 2; i++ {
		_, err = courses.RecordView(ctx, first.ID, "Morning", at(6, 7, 0))
		require.NoError(t, err)
	}
	_, err = courses.RecordView(ctx, first.ID, "Batch 2", at(7, 18, 0))
	require.NoError(t, err)

	stats, err := analytics.CourseStats(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalViews)
	require.Len(t, stats.Batches, 2)
	assert.Equal(t, int64(2), stats.Batches[0].Views)
	assert.Equal(t, "Batch 2", stats.Batches[1].BatchName)

	summary, err := analytics.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalCourses)
	assert.Equal(t, int64(1), summary.ActiveCourses)
	assert.Equal(t, int64(3), summary.TotalViews)
	require.NotNil(t, summary.MostViewed)
	assert.Equal(t, first.ID, summary.MostViewed.CourseID)
	assert.Len(t, summary.PerCourse, 2)

	_, err = analytics.CourseStats(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}
