package calendar

import (
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursewindow/internal/app/models"
)

func TestBuild(t *testing.T) {
	course := &models.Course{
		ID:          "c1",
		Title:       "Morning Energizing Flow",
		Description: "Gentle flowing movements",
		Duration:    45,
		Batches: []models.Batch{
			{BatchName: "Batch 1", Time: "07:00", Days: []string{"Wednesday", "Monday"}},
			{BatchName: "Batch 2", Time: "19:30", Days: []string{"saturday"}},
			{BatchName: "Broken", Time: "7pm", Days: []string{"Monday"}},
			{BatchName: "No days", Time: "08:00"},
		},
	}
	// Tuesday
	from := time.Date(2025, 1, 7, 10, 0, 0, 0, time.UTC)

	out := Build(course, from)

	cal, err := ics.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, "c1-0@coursewindow", first.Id())
	assert.Equal(t, "Morning Energizing Flow (Batch 1)", first.GetProperty(ics.ComponentPropertySummary).Value)
	assert.Equal(t, "20250108T070000", first.GetProperty(ics.ComponentPropertyDtStart).Value)
	assert.Equal(t, "20250108T074500", first.GetProperty(ics.ComponentPropertyDtEnd).Value)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=WE,MO", first.GetProperty(ics.ComponentPropertyRrule).Value)

	second := events[1]
	assert.Equal(t, "20250111T193000", second.GetProperty(ics.ComponentPropertyDtStart).Value)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=SA", second.GetProperty(ics.ComponentPropertyRrule).Value)

	assert.Contains(t, out, "X-WR-CALNAME:Morning Energizing Flow")
}

func TestBuildEmptyCourse(t *testing.T) {
	out := Build(&models.Course{ID: "c2", Title: "Empty"}, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC))

	cal, err := ics.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	assert.Empty(t, cal.Events())
}
