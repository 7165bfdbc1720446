// Package calendar renders a course's batches as an iCalendar feed with one
// weekly recurring event per batch. Events use floating local time so each
// subscriber sees the batch at the same wall clock hour the API evaluates.
package calendar

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/yigit/coursewindow/internal/app/models"
	"github.com/yigit/coursewindow/internal/app/schedule"
)

const (
	productID      = "-//coursewindow//course batches//EN"
	floatingLayout = "20060102T150405"
)

var byDay = map[time.Weekday]string{
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
	time.Sunday:    "SU",
}

// Build returns the serialized calendar for course. Recurrences start on the
// first matching day on or after from. Batches with a malformed time or no
// valid day are left out.
func Build(course *models.Course, from time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(course.Title)

	duration := time.Duration(course.Duration) * time.Minute
	if duration <= 0 {
		duration = time.Hour
	}

	for i, b := range course.Batches {
		tod, err := schedule.ParseTimeOfDay(b.Time)
		if err != nil {
			continue
		}
		days := weekdays(b.Days)
		if len(days) == 0 {
			continue
		}

		start := firstOccurrence(from, tod, days)

		event := cal.AddEvent(fmt.Sprintf("%s-%d@coursewindow", course.ID, i))
		event.SetDtStampTime(from.UTC())
		event.SetSummary(fmt.Sprintf("%s (%s)", course.Title, b.BatchName))
		if course.Description != "" {
			event.SetDescription(course.Description)
		}
		event.SetProperty(ics.ComponentPropertyDtStart, start.Format(floatingLayout))
		event.SetProperty(ics.ComponentPropertyDtEnd, start.Add(duration).Format(floatingLayout))
		event.AddProperty(ics.ComponentPropertyRrule, rrule(days))
	}

	return cal.Serialize()
}

func weekdays(names []string) []time.Weekday {
	var out []time.Weekday
	seen := make(map[time.Weekday]bool, len(names))
	for _, n := range names {
		d, ok := schedule.ParseWeekday(n)
		if !ok || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

func rrule(days []time.Weekday) string {
	codes := make([]string, 0, len(days))
	for _, d := range days {
		codes = append(codes, byDay[d])
	}
	return "FREQ=WEEKLY;BYDAY=" + strings.Join(codes, ",")
}

// firstOccurrence returns the wall clock start of the first listed weekday on
// or after the date of from.
func firstOccurrence(from time.Time, tod schedule.TimeOfDay, days []time.Weekday) time.Time {
	base := time.Date(from.Year(), from.Month(), from.Day(), tod.Hour, tod.Minute, 0, 0, time.UTC)
	for offset := 0; offset < 7; offset++ {
		candidate := base.AddDate(0, 0, offset)
		for _, d := range days {
			if candidate.Weekday() == d {
				return candidate
			}
		}
	}
	return base
}
