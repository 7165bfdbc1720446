package repositories

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/coursewindow/internal/app/models"
	"github.com/yigit/coursewindow/internal/pkg/apperrors"
)

// MemoryCourseRepository keeps courses in process memory. It is safe for
// concurrent use and hands out copies, never its own records.
type MemoryCourseRepository struct {
	mu      sync.RWMutex
	order   []string
	courses map[string]*models.Course
	views   map[string]map[string]int64
	now     func() time.Time
}

// NewMemoryCourseRepository creates an empty in-memory repository
func NewMemoryCourseRepository(now func() time.Time) *MemoryCourseRepository {
	if now == nil {
		now = time.Now
	}
	return &MemoryCourseRepository{
		courses: make(map[string]*models.Course),
		views:   make(map[string]map[string]int64),
		now:     now,
	}
}

func matchesFilter(c *models.Course, filter CourseFilter) bool {
	if filter.Status != "" && c.Status != filter.Status {
		return false
	}
	if filter.Language == "" {
		return true
	}
	for _, l := range c.Languages {
		if strings.EqualFold(l, filter.Language) {
			return true
		}
	}
	return false
}

// List returns courses in creation order
func (r *MemoryCourseRepository) List(_ context.Context, filter CourseFilter) ([]*models.Course, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*models.Course, 0, len(r.order))
	for _, id := range r.order {
		if c := r.courses[id]; matchesFilter(c, filter) {
			matched = append(matched, c)
		}
	}

	total := int64(len(matched))
	start := int(filter.Offset)
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if filter.Limit > 0 && start+filter.Limit < end {
		end = start + filter.Limit
	}

	out := make([]*models.Course, 0, end-start)
	for _, c := range matched[start:end] {
		out = append(out, r.snapshot(c))
	}
	return out, total, nil
}

// snapshot copies a stored course and attaches its counters. Caller holds the lock.
func (r *MemoryCourseRepository) snapshot(c *models.Course) *models.Course {
	out := c.Clone()
	out.ViewStats = make(map[string]int64, len(c.Batches))
	for _, b := range c.Batches {
		out.ViewStats[b.BatchName] = r.views[c.ID][b.BatchName]
	}
	return out
}

// GetByID retrieves a course by ID
func (r *MemoryCourseRepository) GetByID(_ context.Context, id string) (*models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return r.snapshot(c), nil
}

// Create stores a new course, assigning its ID and timestamps
func (r *MemoryCourseRepository) Create(_ context.Context, course *models.Course) error {
	if err := checkBatchNames(course.Batches); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	if _, exists := r.courses[course.ID]; exists {
		return apperrors.NewConflictError("course with this id already exists")
	}
	if course.Status == "" {
		course.Status = models.CourseStatusActive
	}
	now := r.now()
	course.CreatedAt = now
	course.UpdatedAt = now

	stored := course.Clone()
	stored.ViewStats = nil
	r.courses[course.ID] = stored
	r.order = append(r.order, course.ID)
	r.views[course.ID] = make(map[string]int64, len(course.Batches))
	return nil
}

// Update replaces a course. Counters survive for batches whose name is kept.
func (r *MemoryCourseRepository) Update(_ context.Context, course *models.Course) error {
	if err := checkBatchNames(course.Batches); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.courses[course.ID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	if course.Status == "" {
		course.Status = existing.Status
	}
	course.CreatedAt = existing.CreatedAt
	course.UpdatedAt = r.now()

	kept := make(map[string]int64, len(course.Batches))
	for _, b := range course.Batches {
		if v, ok := r.views[course.ID][b.BatchName]; ok {
			kept[b.BatchName] = v
		}
	}

	stored := course.Clone()
	stored.ViewStats = nil
	r.courses[course.ID] = stored
	r.views[course.ID] = kept
	return nil
}

// Delete removes a course and its counters
func (r *MemoryCourseRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(r.courses, id)
	delete(r.views, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// SetStatus changes the publication state of a course
func (r *MemoryCourseRepository) SetStatus(_ context.Context, id string, status models.CourseStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.courses[id]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	c.Status = status
	c.UpdatedAt = r.now()
	return nil
}

// IncrementView adds one view to a batch and returns the new count
func (r *MemoryCourseRepository) IncrementView(_ context.Context, courseID, batchName string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.courses[courseID]
	if !ok {
		return 0, apperrors.ErrCourseNotFound
	}
	if c.FindBatch(batchName) == nil {
		return 0, apperrors.ErrBatchNotFound
	}
	r.views[courseID][batchName]++
	return r.views[courseID][batchName], nil
}

// ViewStats returns the counters of every batch of a course
func (r *MemoryCourseRepository) ViewStats(_ context.Context, courseID string) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.courses[courseID]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return r.snapshot(c).ViewStats, nil
}

// Count returns the number of stored courses
func (r *MemoryCourseRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.courses)), nil
}

// checkBatchNames mirrors the unique (course_id, lower(batch_name)) index.
func checkBatchNames(batches []models.Batch) error {
	seen := make(map[string]bool, len(batches))
	for _, b := range batches {
		key := strings.ToLower(strings.TrimSpace(b.BatchName))
		if seen[key] {
			return apperrors.ErrDuplicateBatchName
		}
		seen[key] = true
	}
	return nil
}
