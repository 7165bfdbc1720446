// Package monitor periodically evaluates every active course in the operator
// timezone and logs when courses open and close. Its snapshot is an operator
// view; request handlers always evaluate on their own.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
	"github.com/yigit/coursewindow/internal/app/models"
	"github.com/yigit/coursewindow/internal/app/repositories"
	"github.com/yigit/coursewindow/internal/app/schedule"
)

// LiveCourse is a course with at least one open batch
type LiveCourse struct {
	CourseID string
	Title    string
	Batches  []string
}

// Transition types
const (
	TransitionLive    = "course_live"
	TransitionOffline = "course_offline"
)

// Transition reports a course opening or closing between two evaluations
type Transition struct {
	Type     string    `json:"type"`
	CourseID string    `json:"courseId"`
	Title    string    `json:"title"`
	Batches  []string  `json:"batches,omitempty"`
	At       time.Time `json:"at"`
}

// Snapshot is the result of the latest evaluation
type Snapshot struct {
	EvaluatedAt time.Time
	Timezone    string
	Courses     []LiveCourse
}

// Monitor runs the evaluation job
type Monitor struct {
	repo      repositories.CourseRepository
	loc       *time.Location
	interval  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
	scheduler *gocron.Scheduler

	mu       sync.RWMutex
	snapshot Snapshot
	live     map[string]LiveCourse

	listenersMu sync.RWMutex
	listeners   []func(Transition)
}

// New creates a monitor evaluating courses every interval in loc
func New(repo repositories.CourseRepository, loc *time.Location, interval time.Duration, logger zerolog.Logger) *Monitor {
	if loc == nil {
		loc = time.UTC
	}
	return &Monitor{
		repo:     repo,
		loc:      loc,
		interval: interval,
		logger:   logger.With().Str("component", "monitor").Logger(),
		now:      time.Now,
		snapshot: Snapshot{Timezone: loc.String(), Courses: []LiveCourse{}},
		live:     make(map[string]LiveCourse),
	}
}

// OnTransition registers fn to be called for every course that opens or
// closes. fn runs on the evaluation goroutine and must not block.
func (m *Monitor) OnTransition(fn func(Transition)) {
	m.listenersMu.Lock()
	defer m.listenersMu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Monitor) notify(t Transition) {
	m.listenersMu.RLock()
	defer m.listenersMu.RUnlock()
	for _, fn := range m.listeners {
		fn(t)
	}
}

// Start schedules the job. The first evaluation runs immediately.
func (m *Monitor) Start() error {
	s := gocron.NewScheduler(m.loc)
	s.SingletonModeAll()

	if _, err := s.Every(m.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), m.interval)
		defer cancel()
		if err := m.Tick(ctx); err != nil {
			m.logger.Error().Err(err).Msg("Live evaluation failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule live monitor: %w", err)
	}

	s.StartAsync()
	m.scheduler = s
	m.logger.Info().Dur("interval", m.interval).Str("timezone", m.loc.String()).Msg("Live monitor started")
	return nil
}

// Stop stops the job and waits for a running evaluation to finish
func (m *Monitor) Stop() {
	if m.scheduler != nil {
		m.scheduler.Stop()
		m.logger.Info().Msg("Live monitor stopped")
	}
}

// Tick evaluates every active course once and publishes a new snapshot
func (m *Monitor) Tick(ctx context.Context) error {
	courses, _, err := m.repo.List(ctx, repositories.CourseFilter{Status: models.CourseStatusActive})
	if err != nil {
		return fmt.Errorf("error listing courses: %w", err)
	}

	now := m.now().In(m.loc)
	current := make(map[string]LiveCourse, len(courses))
	snap := Snapshot{
		EvaluatedAt: now,
		Timezone:    m.loc.String(),
		Courses:     make([]LiveCourse, 0, len(courses)),
	}

	for _, c := range courses {
		open := schedule.AccessibleBatches(c.Batches, now)
		if len(open) == 0 {
			continue
		}
		lc := LiveCourse{CourseID: c.ID, Title: c.Title, Batches: make([]string, 0, len(open))}
		for _, b := range open {
			lc.Batches = append(lc.Batches, b.BatchName)
		}
		current[c.ID] = lc
		snap.Courses = append(snap.Courses, lc)
	}

	m.mu.Lock()
	previous := m.live
	m.live = current
	m.snapshot = snap
	m.mu.Unlock()

	for id, lc := range current {
		if _, ok := previous[id]; !ok {
			m.logger.Info().Str("courseID", id).Str("title", lc.Title).Strs("batches", lc.Batches).Msg("Course went live")
			m.notify(Transition{Type: TransitionLive, CourseID: id, Title: lc.Title, Batches: append([]string(nil), lc.Batches...), At: now})
		}
	}
	for id, lc := range previous {
		if _, ok := current[id]; !ok {
			m.logger.Info().Str("courseID", id).Str("title", lc.Title).Msg("Course went offline")
			m.notify(Transition{Type: TransitionOffline, CourseID: id, Title: lc.Title, At: now})
		}
	}
	m.logger.Debug().Int("live", len(current)).Time("at", now).Msg("Live evaluation done")

	return nil
}

// Snapshot returns a copy of the latest evaluation
func (m *Monitor) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := m.snapshot
	out.Courses = make([]LiveCourse, len(m.snapshot.Courses))
	for i, c := range m.snapshot.Courses {
		c.Batches = append([]string(nil), c.Batches...)
		out.Courses[i] = c
	}
	return out
}
