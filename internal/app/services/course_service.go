package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/coursewindow/internal/app/models"
	"github.com/yigit/coursewindow/internal/app/models/dto"
	"github.com/yigit/coursewindow/internal/app/repositories"
	"github.com/yigit/coursewindow/internal/app/schedule"
	"github.com/yigit/coursewindow/internal/pkg/apperrors"
	"github.com/yigit/coursewindow/internal/pkg/helpers"
	"github.com/yigit/coursewindow/internal/pkg/languages"
	"github.com/yigit/coursewindow/internal/pkg/youtube"
)

// ListCoursesInput carries listing parameters. Now is the viewer's clock.
type ListCoursesInput struct {
	Language        string
	IncludeInactive bool
	Page            int
	Size            int
	Now             time.Time
}

// GetCourseInput identifies a course page. An empty BatchName selects a
// batch automatically.
type GetCourseInput struct {
	ID              string
	BatchName       string
	IncludeInactive bool
	Now             time.Time
}

// CourseService defines the interface for course operations
type CourseService interface {
	ListCourses(ctx context.Context, in ListCoursesInput) (*dto.CourseListResponse, dto.PaginationInfo, error)
	GetCourse(ctx context.Context, in GetCourseInput) (*dto.CourseDetailResponse, error)
	GetAvailability(ctx context.Context, in GetCourseInput) (*dto.AvailabilityResponse, error)
	GetCourseModel(ctx context.Context, id string, includeInactive bool) (*models.Course, error)
	CreateCourse(ctx context.Context, req *dto.CourseRequest) (*models.Course, error)
	UpdateCourse(ctx context.Context, id string, req *dto.CourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, id string) error
	SetCourseStatus(ctx context.Context, id string, status models.CourseStatus) error
	RecordView(ctx context.Context, courseID, batchName string, now time.Time) (*dto.RecordViewResponse, error)
}

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	courseRepo repositories.CourseRepository
	logger     zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo repositories.CourseRepository, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
		logger:     logger.With().Str("service", "course").Logger(),
	}
}

// ListCourses returns a page of courses evaluated at in.Now
func (s *courseServiceImpl) ListCourses(ctx context.Context, in ListCoursesInput) (*dto.CourseListResponse, dto.PaginationInfo, error) {
	filter := repositories.CourseFilter{}
	if !in.IncludeInactive {
		filter.Status = models.CourseStatusActive
	}
	if strings.TrimSpace(in.Language) != "" {
		lang, ok := languages.Lookup(in.Language)
		if !ok {
			return nil, dto.PaginationInfo{}, apperrors.NewValidationError("language", fmt.Sprintf("unknown language %q", in.Language))
		}
		filter.Language = lang.Code
	}

	page, size := helpers.NormalizePage(in.Page, in.Size)
	filter.Offset, filter.Limit = helpers.CalculateOffsetLimit(page, size)

	courses, total, err := s.courseRepo.List(ctx, filter)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error listing courses: %w", err)
	}

	resp := &dto.CourseListResponse{
		Courses:     make([]dto.CourseSummaryResponse, 0, len(courses)),
		EvaluatedAt: in.Now,
		Timezone:    in.Now.Location().String(),
	}
	for _, c := range courses {
		resp.Courses = append(resp.Courses, dto.NewCourseSummaryResponse(c, in.Now))
	}

	return resp, helpers.NewPaginationInfo(total, page, size), nil
}

// GetCourseModel returns the stored course. Inactive courses are hidden
// unless includeInactive is set.
func (s *courseServiceImpl) GetCourseModel(ctx context.Context, id string, includeInactive bool) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting course %s: %w", id, err)
	}
	if !includeInactive && !course.IsActive() {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

// selectBatch resolves the batch a page shows: the requested one when named,
// otherwise the first open batch or the first batch.
func selectBatch(course *models.Course, batchName string, now time.Time) (schedule.Selection, bool, error) {
	if strings.TrimSpace(batchName) == "" {
		sel, ok := schedule.SelectBatch(course.Batches, now)
		return sel, ok, nil
	}

	idx := findBatchIndex(course.Batches, batchName)
	if idx < 0 {
		return schedule.Selection{}, false, apperrors.ErrBatchNotFound
	}
	b := course.Batches[idx]
	return schedule.Selection{Index: idx, Batch: b, Accessible: schedule.BatchAccessible(b, now)}, true, nil
}

func findBatchIndex(batches []models.Batch, name string) int {
	name = strings.TrimSpace(name)
	for i, b := range batches {
		if strings.EqualFold(b.BatchName, name) {
			return i
		}
	}
	return -1
}

// GetCourse returns a course page. The video id is only included while the
// selected batch is open.
func (s *courseServiceImpl) GetCourse(ctx context.Context, in GetCourseInput) (*dto.CourseDetailResponse, error) {
	course, err := s.GetCourseModel(ctx, in.ID, in.IncludeInactive)
	if err != nil {
		return nil, err
	}

	sel, ok, err := selectBatch(course, in.BatchName, in.Now)
	if err != nil {
		return nil, err
	}

	resp := &dto.CourseDetailResponse{
		CourseSummaryResponse: dto.NewCourseSummaryResponse(course, in.Now),
		Content:               course.Content,
		Locked:                true,
		EvaluatedAt:           in.Now,
		Timezone:              in.Now.Location().String(),
	}
	if ok {
		resp.SelectedBatch = sel.Batch.BatchName
		resp.Locked = !sel.Accessible
		if sel.Accessible {
			resp.VideoID = course.VideoID
		} else {
			resp.NextSchedule = schedule.ScheduleLabel(sel.Batch)
		}
	}

	return resp, nil
}

// GetAvailability returns only the accessibility state of a course
func (s *courseServiceImpl) GetAvailability(ctx context.Context, in GetCourseInput) (*dto.AvailabilityResponse, error) {
	course, err := s.GetCourseModel(ctx, in.ID, in.IncludeInactive)
	if err != nil {
		return nil, err
	}

	sel, ok, err := selectBatch(course, in.BatchName, in.Now)
	if err != nil {
		return nil, err
	}

	resp := &dto.AvailabilityResponse{
		CourseID:    course.ID,
		Accessible:  schedule.IsAccessible(course.Batches, in.Now),
		TimeSlots:   dto.NewBatchResponses(schedule.Evaluate(course.Batches, in.Now), nil),
		EvaluatedAt: in.Now,
		Timezone:    in.Now.Location().String(),
	}
	if ok {
		resp.SelectedBatch = sel.Batch.BatchName
	}
	return resp, nil
}

// CreateCourse validates and stores a new course
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CourseRequest) (*models.Course, error) {
	course, err := buildCourse(req)
	if err != nil {
		return nil, err
	}
	if course.Status == "" {
		course.Status = models.CourseStatusActive
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	s.logger.Info().Str("courseID", course.ID).Str("title", course.Title).Int("batches", len(course.Batches)).Msg("Course created")
	return s.courseRepo.GetByID(ctx, course.ID)
}

// UpdateCourse replaces a course's fields and batches
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id string, req *dto.CourseRequest) (*models.Course, error) {
	course, err := buildCourse(req)
	if err != nil {
		return nil, err
	}
	course.ID = id

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("error updating course %s: %w", id, err)
	}

	s.logger.Info().Str("courseID", id).Msg("Course updated")
	return s.courseRepo.GetByID(ctx, id)
}

// DeleteCourse removes a course with its counters
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id string) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting course %s: %w", id, err)
	}
	s.logger.Info().Str("courseID", id).Msg("Course deleted")
	return nil
}

// SetCourseStatus publishes or hides a course
func (s *courseServiceImpl) SetCourseStatus(ctx context.Context, id string, status models.CourseStatus) error {
	if !status.IsValid() {
		return apperrors.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}
	if err := s.courseRepo.SetStatus(ctx, id, status); err != nil {
		return fmt.Errorf("error setting status of course %s: %w", id, err)
	}
	s.logger.Info().Str("courseID", id).Str("status", string(status)).Msg("Course status changed")
	return nil
}

// RecordView counts a view of a batch. Views of a closed batch are refused.
func (s *courseServiceImpl) RecordView(ctx context.Context, courseID, batchName string, now time.Time) (*dto.RecordViewResponse, error) {
	course, err := s.GetCourseModel(ctx, courseID, false)
	if err != nil {
		return nil, err
	}

	idx := findBatchIndex(course.Batches, batchName)
	if idx < 0 {
		return nil, apperrors.ErrBatchNotFound
	}
	b := course.Batches[idx]

	if !schedule.BatchAccessible(b, now) {
		return nil, apperrors.ErrCourseNotAccessible
	}

	views, err := s.courseRepo.IncrementView(ctx, course.ID, b.BatchName)
	if err != nil {
		return nil, fmt.Errorf("error recording view: %w", err)
	}

	return &dto.RecordViewResponse{
		CourseID:  course.ID,
		BatchName: b.BatchName,
		Views:     views,
	}, nil
}

// buildCourse validates a request and converts it into a normalised course
func buildCourse(req *dto.CourseRequest) (*models.Course, error) {
	if req == nil {
		return nil, apperrors.NewValidationError("body", "request body is required")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title", "title cannot be empty")
	}
	if req.Duration <= 0 {
		return nil, apperrors.NewValidationError("duration", "duration must be a positive number of minutes")
	}

	langs, unknown := languages.Normalize(req.Languages)
	if len(unknown) > 0 {
		return nil, apperrors.NewValidationError("languages", fmt.Sprintf("unknown languages: %s", strings.Join(unknown, ", ")))
	}
	if len(langs) == 0 {
		return nil, apperrors.NewValidationError("languages", "at least one language is required")
	}

	videoID, err := youtube.ExtractVideoID(req.VideoID)
	if err != nil {
		return nil, apperrors.NewValidationError("videoId", err.Error())
	}

	batches, err := normalizeBatches(dto.ToBatchModels(req.TimeSlots))
	if err != nil {
		return nil, err
	}

	status := models.CourseStatus(req.Status)
	if status != "" && !status.IsValid() {
		return nil, apperrors.NewValidationError("status", fmt.Sprintf("unknown status %q", req.Status))
	}

	return &models.Course{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Content:     req.Content,
		VideoID:     videoID,
		Duration:    req.Duration,
		Languages:   langs,
		Batches:     batches,
		Status:      status,
	}, nil
}

// normalizeBatches enforces the write-time batch invariants: at least one
// batch, canonical HH:MM times, non-empty canonical day sets and unique names.
func normalizeBatches(batches []models.Batch) ([]models.Batch, error) {
	if len(batches) == 0 {
		return nil, apperrors.NewValidationError("timeSlots", "at least one batch is required")
	}

	seen := make(map[string]bool, len(batches))
	out := make([]models.Batch, 0, len(batches))
	for i, b := range batches {
		field := fmt.Sprintf("timeSlots[%d]", i)

		name := strings.TrimSpace(b.BatchName)
		if name == "" {
			name = fmt.Sprintf("Batch %d", i+1)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrDuplicateBatchName, name)
		}
		seen[key] = true

		tod, err := schedule.ParseTimeOfDay(b.Time)
		if err != nil {
			return nil, apperrors.NewValidationError(field+".time", err.Error())
		}

		days, invalid := schedule.NormalizeDays(b.Days)
		if len(invalid) > 0 {
			return nil, apperrors.NewValidationError(field+".days", fmt.Sprintf("unknown weekdays: %s", strings.Join(invalid, ", ")))
		}
		if len(days) == 0 {
			return nil, apperrors.NewValidationError(field+".days", "at least one weekday is required")
		}

		out = append(out, models.Batch{BatchName: name, Time: tod.String(), Days: days})
	}
	return out, nil
}
