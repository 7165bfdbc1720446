package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/coursewindow/internal/app/models"
	"github.com/yigit/coursewindow/internal/db"
	"github.com/yigit/coursewindow/internal/pkg/apperrors"
	"github.com/yigit/coursewindow/internal/pkg/dberrors"
	"github.com/yigit/coursewindow/internal/pkg/logger"
)

// batchNameConstraint is the unique index on (course_id, lower(batch_name)).
const batchNameConstraint = "uq_course_batches_name"

var courseColumns = []string{
	"id", "title", "description", "content", "video_id", "duration",
	"languages", "status", "created_at", "updated_at",
}

// PostgresCourseRepository handles course database operations
type PostgresCourseRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new PostgreSQL course repository
func NewCourseRepository(database *db.PostgresDB) *PostgresCourseRepository {
	return &PostgresCourseRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func applyCourseFilter(q squirrel.SelectBuilder, filter CourseFilter) squirrel.SelectBuilder {
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": string(filter.Status)})
	}
	if filter.Language != "" {
		q = q.Where(squirrel.Expr("? = ANY(languages)", strings.ToLower(filter.Language)))
	}
	return q
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	c := &models.Course{}
	var status string
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Content, &c.VideoID, &c.Duration,
		&c.Languages, &status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Status = models.CourseStatus(status)
	return c, nil
}

// List retrieves a page of courses with their batches
func (r *PostgresCourseRepository) List(ctx context.Context, filter CourseFilter) ([]*models.Course, int64, error) {
	countSQL, countArgs, err := applyCourseFilter(r.sb.Select("COUNT(*)").From("courses"), filter).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count courses SQL")
		return nil, 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var total int64
	if err := r.db.Pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count courses query")
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	q := applyCourseFilter(r.sb.Select(courseColumns...).From("courses"), filter).
		OrderBy("created_at ASC", "id ASC").
		Offset(filter.Offset)
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, 0, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, 0, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	byID := map[string]*models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning course row")
			return nil, 0, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, c)
		byID[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating course rows")
		return nil, 0, fmt.Errorf("error iterating course rows: %w", err)
	}

	if len(byID) > 0 {
		if err := r.loadBatches(ctx, r.db.Pool, byID); err != nil {
			return nil, 0, err
		}
	}

	return courses, total, nil
}

// querier is satisfied by both the pool and a transaction
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *PostgresCourseRepository) loadBatches(ctx context.Context, q querier, byID map[string]*models.Course) error {
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	sql, args, err := r.sb.Select("course_id", "batch_name", "time", "days", "view_count").
		From("course_batches").
		Where(squirrel.Eq{"course_id": ids}).
		OrderBy("course_id", "position ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building load batches SQL")
		return fmt.Errorf("failed to build load batches query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing load batches query")
		return fmt.Errorf("error querying batches: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var courseID string
		var b models.Batch
		var views int64
		if err := rows.Scan(&courseID, &b.BatchName, &b.Time, &b.Days, &views); err != nil {
			logger.Error().Err(err).Msg("Error scanning batch row")
			return fmt.Errorf("error scanning batch row: %w", err)
		}
		c := byID[courseID]
		if c == nil {
			continue
		}
		c.Batches = append(c.Batches, b)
		if c.ViewStats == nil {
			c.ViewStats = map[string]int64{}
		}
		c.ViewStats[b.BatchName] = views
	}
	return rows.Err()
}

// GetByID retrieves a course by ID
func (r *PostgresCourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.ErrCourseNotFound
	}

	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by ID SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	c, err := scanCourse(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Str("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}

	if err := r.loadBatches(ctx, r.db.Pool, map[string]*models.Course{c.ID: c}); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *PostgresCourseRepository) insertBatches(ctx context.Context, tx pgx.Tx, courseID string, batches []models.Batch, views map[string]int64) error {
	if len(batches) == 0 {
		return nil
	}

	ins := r.sb.Insert("course_batches").
		Columns("course_id", "position", "batch_name", "time", "days", "view_count")
	for i, b := range batches {
		ins = ins.Values(courseID, i, b.BatchName, b.Time, b.Days, views[b.BatchName])
	}

	sql, args, err := ins.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert batches SQL")
		return fmt.Errorf("failed to build insert batches query: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, batchNameConstraint) {
			return apperrors.ErrDuplicateBatchName
		}
		logger.Error().Err(err).Str("courseID", courseID).Msg("Error executing insert batches query")
		return fmt.Errorf("error inserting batches: %w", err)
	}
	return nil
}

// Create creates a new course with its batches in one transaction
func (r *PostgresCourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	if course.Status == "" {
		course.Status = models.CourseStatusActive
	}
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now

	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Insert("courses").
			Columns(courseColumns...).
			Values(course.ID, course.Title, course.Description, course.Content, course.VideoID,
				course.Duration, course.Languages, string(course.Status), course.CreatedAt, course.UpdatedAt).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building create course SQL")
			return fmt.Errorf("failed to build create course query: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.NewConflictError("course with this id already exists")
			}
			logger.Error().Err(err).Msg("Error executing create course query")
			return fmt.Errorf("error creating course: %w", err)
		}

		return r.insertBatches(ctx, tx, course.ID, course.Batches, nil)
	})
}

// Update replaces a course and its batches. Counters survive for batches whose name is kept.
func (r *PostgresCourseRepository) Update(ctx context.Context, course *models.Course) error {
	if _, err := uuid.Parse(course.ID); err != nil {
		return apperrors.ErrCourseNotFound
	}
	course.UpdatedAt = time.Now().UTC()

	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		set := map[string]interface{}{
			"title":       course.Title,
			"description": course.Description,
			"content":     course.Content,
			"video_id":    course.VideoID,
			"duration":    course.Duration,
			"languages":   course.Languages,
			"updated_at":  course.UpdatedAt,
		}
		if course.Status != "" {
			set["status"] = string(course.Status)
		}

		sql, args, err := r.sb.Update("courses").
			SetMap(set).
			Where(squirrel.Eq{"id": course.ID}).
			Suffix("RETURNING status, created_at").
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building update course SQL")
			return fmt.Errorf("failed to build update course query: %w", err)
		}

		var status string
		if err := tx.QueryRow(ctx, sql, args...).Scan(&status, &course.CreatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrCourseNotFound
			}
			logger.Error().Err(err).Str("courseID", course.ID).Msg("Error executing update course query")
			return fmt.Errorf("error updating course: %w", err)
		}
		course.Status = models.CourseStatus(status)

		delSQL, delArgs, err := r.sb.Delete("course_batches").
			Where(squirrel.Eq{"course_id": course.ID}).
			Suffix("RETURNING batch_name, view_count").
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building delete batches SQL")
			return fmt.Errorf("failed to build delete batches query: %w", err)
		}

		rows, err := tx.Query(ctx, delSQL, delArgs...)
		if err != nil {
			logger.Error().Err(err).Str("courseID", course.ID).Msg("Error executing delete batches query")
			return fmt.Errorf("error deleting batches: %w", err)
		}
		views := map[string]int64{}
		for rows.Next() {
			var name string
			var count int64
			if err := rows.Scan(&name, &count); err != nil {
				rows.Close()
				return fmt.Errorf("error scanning deleted batch: %w", err)
			}
			views[name] = count
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating deleted batches: %w", err)
		}

		return r.insertBatches(ctx, tx, course.ID, course.Batches, views)
	})
}

// Delete deletes a course; batches cascade
func (r *PostgresCourseRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.ErrCourseNotFound
	}

	sql, args, err := r.sb.Delete("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete course SQL")
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// SetStatus changes the publication state of a course
func (r *PostgresCourseRepository) SetStatus(ctx context.Context, id string, status models.CourseStatus) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.ErrCourseNotFound
	}

	sql, args, err := r.sb.Update("courses").
		Set("status", string(status)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building set status SQL")
		return fmt.Errorf("failed to build set status query: %w", err)
	}

	cmdTag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("courseID", id).Msg("Error executing set status query")
		return fmt.Errorf("error setting course status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// IncrementView adds one view to a batch and returns the new count
func (r *PostgresCourseRepository) IncrementView(ctx context.Context, courseID, batchName string) (int64, error) {
	if _, err := uuid.Parse(courseID); err != nil {
		return 0, apperrors.ErrCourseNotFound
	}

	sql, args, err := r.sb.Update("course_batches").
		Set("view_count", squirrel.Expr("view_count + 1")).
		Where(squirrel.Eq{"course_id": courseID, "batch_name": batchName}).
		Suffix("RETURNING view_count").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building increment view SQL")
		return 0, fmt.Errorf("failed to build increment view query: %w", err)
	}

	var views int64
	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&views); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, courseID); getErr != nil {
				return 0, getErr
			}
			return 0, apperrors.ErrBatchNotFound
		}
		logger.Error().Err(err).Str("courseID", courseID).Str("batch", batchName).Msg("Error executing increment view query")
		return 0, fmt.Errorf("error recording view: %w", err)
	}
	return views, nil
}

// ViewStats returns the counters of every batch of a course
func (r *PostgresCourseRepository) ViewStats(ctx context.Context, courseID string) (map[string]int64, error) {
	c, err := r.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if c.ViewStats == nil {
		return map[string]int64{}, nil
	}
	return c.ViewStats, nil
}

// Count returns the number of stored courses
func (r *PostgresCourseRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM courses").Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting courses")
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return total, nil
}
