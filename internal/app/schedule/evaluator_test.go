package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursewindow/internal/app/models"
)

// 2025-01-06 is a Monday.
func monday(hour, minute int) time.Time {
	return time.Date(2025, time.January, 6, hour, minute, 0, 0, time.UTC)
}

func batch(name, at string, days ...string) models.Batch {
	return models.Batch{BatchName: name, Time: at, Days: days}
}

func TestBatchAccessibleToleranceBand(t *testing.T) {
	seven := batch("Morning", "07:00", "Monday", "Wednesday", "Friday")
	half := batch("Evening", "19:30", "Monday")

	tests := []struct {
		name string
		b    models.Batch
		now  time.Time
		want bool
	}{
		{"start of scheduled hour", seven, monday(7, 0), true},
		{"end of scheduled hour", seven, monday(7, 59), true},
		{"half hour before", seven, monday(6, 30), true},
		{"just before half hour", seven, monday(6, 29), false},
		{"hour after with minute zero is closed", seven, monday(8, 0), false},
		{"two hours before", seven, monday(5, 0), false},
		{"two hours after", seven, monday(9, 0), false},
		{"half past batch open until half past next hour", half, monday(20, 30), true},
		{"half past batch closed after", half, monday(20, 31), false},
		{"half past batch open half hour before hour", half, monday(18, 30), true},
		{"half past batch closed before", half, monday(18, 29), false},
		{"half past batch whole hour", half, monday(19, 5), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BatchAccessible(tt.b, tt.now))
		})
	}
}

func TestBatchAccessibleWrongDay(t *testing.T) {
	b := batch("Batch 2", "18:00", "Tuesday", "Thursday")
	for h := 0; h < 24; h++ {
		for _, m := range []int{0, 15, 30, 45, 59} {
			require.False(t, BatchAccessible(b, monday(h, m)), "%02d:%02d", h, m)
		}
	}
}

func TestBatchAccessibleEmptyDays(t *testing.T) {
	b := batch("Batch 1", "07:00")
	for d := 0; d < 7; d++ {
		now := monday(7, 15).AddDate(0, 0, d)
		assert.False(t, BatchAccessible(b, now))
	}
}

func TestBatchAccessibleMalformedTime(t *testing.T) {
	for _, at := range []string{"", "7", "seven", "07:0", "24:00", "07:60", "-1:30", "07:00:00", "7 :00"} {
		t.Run(at, func(t *testing.T) {
			assert.False(t, BatchAccessible(batch("x", at, "Monday"), monday(7, 0)))
		})
	}
}

func TestBatchAccessibleDayNamesIgnoreCase(t *testing.T) {
	assert.True(t, BatchAccessible(batch("x", "07:00", " monday "), monday(7, 10)))
}

func TestNoCrossMidnight(t *testing.T) {
	late := batch("Late", "23:45", "Monday")
	// 00:15 Tuesday is not reachable from a Monday-only batch.
	assert.False(t, BatchAccessible(late, monday(0, 15).AddDate(0, 0, 1)))
	assert.True(t, BatchAccessible(late, monday(23, 59)))

	early := batch("Early", "00:00", "Tuesday")
	// 23:30 Monday is the wrong day and hour -1 never matches.
	assert.False(t, BatchAccessible(early, monday(23, 30)))
	early.Days = []string{"Monday", "Tuesday"}
	assert.False(t, BatchAccessible(early, monday(23, 30)))
}

func TestSingleDigitHour(t *testing.T) {
	assert.True(t, BatchAccessible(batch("x", "7:00", "Monday"), monday(7, 30)))
}

func TestAccessibleBatchesAndIsAccessible(t *testing.T) {
	open := batch("Batch 1", "07:00", "Monday")
	closed := batch("Batch 2", "18:00", "Monday")
	now := monday(7, 20)

	got := AccessibleBatches([]models.Batch{closed, open}, now)
	require.Len(t, got, 1)
	assert.Equal(t, "Batch 1", got[0].BatchName)
	assert.True(t, IsAccessible([]models.Batch{closed, open}, now))
	assert.False(t, IsAccessible([]models.Batch{closed}, now))
}

func TestEmptyBatchList(t *testing.T) {
	now := monday(7, 0)
	assert.False(t, IsAccessible(nil, now))
	got := AccessibleBatches(nil, now)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, Evaluate(nil, now))

	_, ok := SelectBatch(nil, now)
	assert.False(t, ok)
}

func TestEvaluatePreservesOrder(t *testing.T) {
	batches := []models.Batch{
		batch("A", "18:00", "Monday"),
		batch("B", "07:00", "Monday"),
		batch("C", "07:30", "Monday"),
	}
	statuses := Evaluate(batches, monday(7, 45))
	require.Len(t, statuses, 3)
	assert.Equal(t, []bool{false, true, true}, []bool{statuses[0].Accessible, statuses[1].Accessible, statuses[2].Accessible})
	assert.Equal(t, "A", statuses[0].BatchName)
}

func TestSelectBatch(t *testing.T) {
	batches := []models.Batch{
		batch("Morning", "07:00", "Monday"),
		batch("Evening", "18:00", "Monday"),
		batch("Late", "18:30", "Monday"),
	}

	sel, ok := SelectBatch(batches, monday(18, 40))
	require.True(t, ok)
	assert.True(t, sel.Accessible)
	assert.Equal(t, 1, sel.Index)
	assert.Equal(t, "Evening", sel.Batch.BatchName)

	sel, ok = SelectBatch(batches, monday(12, 0))
	require.True(t, ok)
	assert.False(t, sel.Accessible)
	assert.Equal(t, 0, sel.Index)
	assert.Equal(t, "Morning", sel.Batch.BatchName)
}

func TestEvaluationUsesCallerLocation(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)
	b := batch("Morning", "07:00", "Monday")

	// 01:40 UTC on Monday is 07:10 in IST.
	utc := monday(1, 40)
	assert.False(t, BatchAccessible(b, utc))
	assert.True(t, BatchAccessible(b, utc.In(kolkata)))
}

func TestScheduleLabel(t *testing.T) {
	assert.Equal(t, "07:00 on Monday, Wednesday, Friday", ScheduleLabel(batch("x", "07:00", "Monday", "Wednesday", "Friday")))
	assert.Equal(t, "07:00", ScheduleLabel(batch("x", "07:00")))
}
