// Package schedule decides whether a course batch can be watched at a given
// instant. The instant is read on the caller's wall clock: weekday, hour and
// minute come from now.Location() and no timezone conversion happens here.
//
// A batch is open on its listed weekdays during the whole scheduled clock
// hour, during the preceding half hour when the scheduled minute is at most
// 30, and during the first half of the following hour when the scheduled
// minute is at least 30. The rule is asymmetric on purpose: a 07:00 batch is
// open from 06:30 to 07:59 and closed at 08:00. Windows never cross midnight.
//
// Stored day names are canonical ("Monday") because the course service
// normalises them on write. Evaluation is more lenient than that stored form:
// it also matches other casings and surrounding spaces, as found in
// hand-written course files read by the check command.
package schedule

import (
	"strings"
	"time"

	"github.com/yigit/coursewindow/internal/app/models"
)

// halfHour is the tolerance boundary in minutes.
const halfHour = 30

// BatchStatus pairs a batch with its accessibility at evaluation time.
type BatchStatus struct {
	models.Batch
	Accessible bool `json:"isAccessible"`
}

// Selection is the batch a course page should show first.
type Selection struct {
	Index      int
	Batch      models.Batch
	Accessible bool
}

// BatchAccessible reports whether b is open at now. Malformed times and
// empty day lists are never open.
func BatchAccessible(b models.Batch, now time.Time) bool {
	if !hasDay(b.Days, now.Weekday()) {
		return false
	}

	scheduled, err := ParseTimeOfDay(b.Time)
	if err != nil {
		return false
	}

	return withinWindow(now.Hour(), now.Minute(), scheduled)
}

func withinWindow(hour, minute int, scheduled TimeOfDay) bool {
	switch hour {
	case scheduled.Hour:
		return true
	case scheduled.Hour - 1:
		return minute >= halfHour && scheduled.Minute <= halfHour
	case scheduled.Hour + 1:
		return minute <= halfHour && scheduled.Minute >= halfHour
	}
	return false
}

// IsAccessible reports whether any of the batches is open at now.
func IsAccessible(batches []models.Batch, now time.Time) bool {
	for _, b := range batches {
		if BatchAccessible(b, now) {
			return true
		}
	}
	return false
}

// AccessibleBatches returns the batches open at now, in list order.
func AccessibleBatches(batches []models.Batch, now time.Time) []models.Batch {
	open := make([]models.Batch, 0, len(batches))
	for _, b := range batches {
		if BatchAccessible(b, now) {
			open = append(open, b)
		}
	}
	return open
}

// Evaluate returns the accessibility of every batch, in list order.
func Evaluate(batches []models.Batch, now time.Time) []BatchStatus {
	statuses := make([]BatchStatus, len(batches))
	for i, b := range batches {
		statuses[i] = BatchStatus{Batch: b, Accessible: BatchAccessible(b, now)}
	}
	return statuses
}

// SelectBatch picks the first open batch, falling back to the first batch
// when none is open. It returns false only when batches is empty.
func SelectBatch(batches []models.Batch, now time.Time) (Selection, bool) {
	if len(batches) == 0 {
		return Selection{}, false
	}
	for i, b := range batches {
		if BatchAccessible(b, now) {
			return Selection{Index: i, Batch: b, Accessible: true}, true
		}
	}
	return Selection{Index: 0, Batch: batches[0]}, true
}

// ScheduleLabel renders the literal stored schedule of b, e.g.
// "07:00 on Monday, Wednesday, Friday".
func ScheduleLabel(b models.Batch) string {
	if len(b.Days) == 0 {
		return b.Time
	}
	return b.Time + " on " + strings.Join(b.Days, ", ")
}
