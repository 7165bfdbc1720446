package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/coursewindow/internal/app/models"
	"github.com/yigit/coursewindow/internal/app/models/dto"
	"github.com/yigit/coursewindow/internal/app/repositories"
)

// AnalyticsService aggregates per-batch view counters
type AnalyticsService interface {
	CourseStats(ctx context.Context, courseID string) (*dto.CourseStatsResponse, error)
	Summary(ctx context.Context) (*dto.AnalyticsSummaryResponse, error)
}

type analyticsServiceImpl struct {
	courseRepo repositories.CourseRepository
	now        func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(courseRepo repositories.CourseRepository) AnalyticsService {
	return &analyticsServiceImpl{courseRepo: courseRepo, now: time.Now}
}

func courseStats(c *models.Course) dto.CourseStatsResponse {
	stats := dto.CourseStatsResponse{
		CourseID: c.ID,
		Title:    c.Title,
		Batches:  make([]dto.BatchViewStat, 0, len(c.Batches)),
	}
	for _, b := range c.Batches {
		v := c.ViewStats[b.BatchName]
		stats.Batches = append(stats.Batches, dto.BatchViewStat{BatchName: b.BatchName, Views: v})
		stats.TotalViews += v
	}
	return stats
}

// CourseStats returns the views of each batch of a course
func (s *analyticsServiceImpl) CourseStats(ctx context.Context, courseID string) (*dto.CourseStatsResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error getting course %s: %w", courseID, err)
	}
	stats := courseStats(course)
	return &stats, nil
}

// Summary aggregates views across every course, inactive ones included
func (s *analyticsServiceImpl) Summary(ctx context.Context) (*dto.AnalyticsSummaryResponse, error) {
	courses, total, err := s.courseRepo.List(ctx, repositories.CourseFilter{})
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	summary := &dto.AnalyticsSummaryResponse{
		TotalCourses: total,
		PerCourse:    make([]dto.CourseStatsResponse, 0, len(courses)),
		GeneratedAt:  s.now(),
	}

	mostViewed := -1
	for _, c := range courses {
		if c.IsActive() {
			summary.ActiveCourses++
		}
		stats := courseStats(c)
		summary.TotalViews += stats.TotalViews
		summary.PerCourse = append(summary.PerCourse, stats)

		if stats.TotalViews > 0 && (mostViewed < 0 || stats.TotalViews > summary.PerCourse[mostViewed].TotalViews) {
			mostViewed = len(summary.PerCourse) - 1
		}
	}
	if mostViewed >= 0 {
		top := summary.PerCourse[mostViewed]
		summary.MostViewed = &top
	}

	return summary, nil
}
