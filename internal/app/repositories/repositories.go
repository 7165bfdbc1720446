package repositories

import (
	"context"
	"time"

	"github.com/yigit/coursewindow/internal/app/models"
	"github.com/yigit/coursewindow/internal/db"
)

// CourseFilter narrows a course listing. A zero Limit means no limit.
type CourseFilter struct {
	Language string
	Status   models.CourseStatus
	Offset   uint64
	Limit    int
}

// CourseRepository persists courses with their batches and view counters.
type CourseRepository interface {
	List(ctx context.Context, filter CourseFilter) ([]*models.Course, int64, error)
	GetByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status models.CourseStatus) error
	IncrementView(ctx context.Context, courseID, batchName string) (int64, error)
	ViewStats(ctx context.Context, courseID string) (map[string]int64, error)
	Count(ctx context.Context) (int64, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	CourseRepository CourseRepository
}

// NewRepositories initializes PostgreSQL backed repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		CourseRepository: NewCourseRepository(database),
	}
}

// NewMemoryRepositories initializes process-local repositories
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		CourseRepository: NewMemoryCourseRepository(time.Now),
	}
}
