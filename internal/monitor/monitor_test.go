package monitor

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursewindow/internal/app/models"
	"github.com/yigit/coursewindow/internal/app/repositories"
)

func seedRepo(t *testing.T) (*repositories.MemoryCourseRepository, *models.Course) {
	t.Helper()
	repo := repositories.NewMemoryCourseRepository(time.Now)
	course := &models.Course{
		Title:    "Morning Energizing Flow",
		VideoID:  "dQw4w9WgXcQ",
		Duration: 60,
		Batches: []models.Batch{
			{BatchName: "Batch 1", Time: "07:00", Days: []string{"Monday"}},
			{BatchName: "Batch 2", Time: "07:30", Days: []string{"Monday"}},
		},
	}
	require.NoError(t, repo.Create(context.Background(), course))

	hidden := &models.Course{
		Title:    "Hidden",
		Duration: 60,
		Status:   models.CourseStatusInactive,
		Batches:  []models.Batch{{BatchName: "Batch 1", Time: "07:00", Days: []string{"Monday"}}},
	}
	require.NoError(t, repo.Create(context.Background(), hidden))
	return repo, course
}

func TestTickTransitions(t *testing.T) {
	repo, course := seedRepo(t)
	var logs bytes.Buffer
	m := New(repo, time.UTC, time.Minute, zerolog.New(&logs))

	clock := time.Date(2025, 1, 6, 6, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	require.NoError(t, m.Tick(context.Background()))
	assert.Empty(t, m.Snapshot().Courses)

	clock = time.Date(2025, 1, 6, 7, 45, 0, 0, time.UTC)
	require.NoError(t, m.Tick(context.Background()))
	snap := m.Snapshot()
	require.Len(t, snap.Courses, 1)
	assert.Equal(t, course.ID, snap.Courses[0].CourseID)
	assert.Equal(t, []string{"Batch 1", "Batch 2"}, snap.Courses[0].Batches)
	assert.Equal(t, "UTC", snap.Timezone)
	assert.Equal(t, clock, snap.EvaluatedAt)
	assert.Contains(t, logs.String(), "Course went live")

	// 08:45 closes the 07:00 batch; the 07:30 batch closed at 08:31
	clock = time.Date(2025, 1, 6, 8, 45, 0, 0, time.UTC)
	require.NoError(t, m.Tick(context.Background()))
	assert.Empty(t, m.Snapshot().Courses)
	assert.Contains(t, logs.String(), "Course went offline")
}

func TestTickUsesMonitorTimezone(t *testing.T) {
	repo, _ := seedRepo(t)
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	m := New(repo, kolkata, time.Minute, zerolog.Nop())
	// 01:30 UTC is 07:00 Monday in Kolkata
	m.now = func() time.Time { return time.Date(2025, 1, 6, 1, 30, 0, 0, time.UTC) }

	require.NoError(t, m.Tick(context.Background()))
	snap := m.Snapshot()
	require.Len(t, snap.Courses, 1)
	assert.Equal(t, "Asia/Kolkata", snap.Timezone)
}

func TestSnapshotIsCopy(t *testing.T) {
	repo, _ := seedRepo(t)
	m := New(repo, time.UTC, time.Minute, zerolog.Nop())
	m.now = func() time.Time { return time.Date(2025, 1, 6, 7, 0, 0, 0, time.UTC) }
	require.NoError(t, m.Tick(context.Background()))

	snap := m.Snapshot()
	snap.Courses[0].Batches[0] = "changed"
	assert.Equal(t, "Batch 1", m.Snapshot().Courses[0].Batches[0])
}

func TestStartStop(t *testing.T) {
	repo, _ := seedRepo(t)
	m := New(repo, time.UTC, time.Hour, zerolog.Nop())
	m.now = func() time.Time { return time.Date(2025, 1, 6, 7, 0, 0, 0, time.UTC) }

	require.NoError(t, m.Start())
	defer m.Stop()

	assert.Eventually(t, func() bool {
		return len(m.Snapshot().Courses) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestOnTransition(t *testing.T) {
	repo, course := seedRepo(t)
	m := New(repo, time.UTC, time.Minute, zerolog.Nop())

	var got []Transition
	m.OnTransition(func(tr Transition) { got = append(got, tr) })

	clock := time.Date(2025, 1, 6, 7, 10, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }
	require.NoError(t, m.Tick(context.Background()))
	// No repeat while the course stays live
	require.NoError(t, m.Tick(context.Background()))

	clock = time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)
	require.NoError(t, m.Tick(context.Background()))

	require.Len(t, got, 2)
	assert.Equal(t, TransitionLive, got[0].Type)
	assert.Equal(t, course.ID, got[0].CourseID)
	assert.Equal(t, []string{"Batch 1", "Batch 2"}, got[0].Batches)
	assert.Equal(t, TransitionOffline, got[1].Type)
	assert.Equal(t, clock, got[1].At)
}
