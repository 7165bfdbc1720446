package dto

import (
	"time"

	"github.com/yigit/coursewindow/internal/app/models"
	"github.com/yigit/coursewindow/internal/app/schedule"
)

// BatchRequest describes one weekly batch in a create or update request
type BatchRequest struct {
	BatchName string   `json:"batchName" binding:"max=100" example:"Morning Batch"`
	Time      string   `json:"time" binding:"required,hhmm" example:"07:00"`
	Days      []string `json:"days" binding:"required,min=1,max=7,dive,weekday" example:"Monday,Wednesday,Friday"`
}

// CourseRequest represents course creation and update data
type CourseRequest struct {
	Title       string         `json:"title" binding:"required,max=200" example:"Morning Energizing Flow"`
	Description string         `json:"description" binding:"max=2000"`
	Content     string         `json:"content" binding:"max=20000"`
	VideoID     string         `json:"videoId" binding:"required" example:"https://www.youtube.com/watch?v=dQw4w9WgXcQ"`
	Duration    int            `json:"duration" binding:"required,min=1,max=1440" example:"60"`
	Languages   []string       `json:"languages" binding:"required,min=1,dive,required"`
	TimeSlots   []BatchRequest `json:"timeSlots" binding:"required,min=1,dive"`
	Status      string         `json:"status" binding:"omitempty,oneof=active inactive" example:"active"`
}

// UpdateStatusRequest toggles a course between active and inactive
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive" example:"inactive"`
}

// RecordViewRequest identifies the batch a viewer is watching
type RecordViewRequest struct {
	BatchName string `json:"batchName" binding:"required" example:"Morning Batch"`
}

// CourseListFilter carries list query parameters
type CourseListFilter struct {
	Language        string
	IncludeInactive bool
	Page            int
	Size            int
}

// BatchResponse is a batch with its accessibility at evaluation time
type BatchResponse struct {
	BatchName    string   `json:"batchName"`
	Time         string   `json:"time"`
	Days         []string `json:"days"`
	IsAccessible bool     `json:"isAccessible"`
	Schedule     string   `json:"schedule" example:"07:00 on Monday, Wednesday, Friday"`
	Views        *int64   `json:"views,omitempty"`
}

// CourseSummaryResponse is a course card in the course listing
type CourseSummaryResponse struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Duration          int             `json:"duration"`
	Languages         []string        `json:"languages"`
	Status            string          `json:"status"`
	Accessible        bool            `json:"accessible"`
	AccessibleBatches []string        `json:"accessibleBatches"`
	TimeSlots         []BatchResponse `json:"timeSlots"`
}

// CourseListResponse is a page of course cards evaluated at one instant
type CourseListResponse struct {
	Courses     []CourseSummaryResponse `json:"courses"`
	EvaluatedAt time.Time               `json:"evaluatedAt"`
	Timezone    string                  `json:"timezone" example:"Asia/Kolkata"`
}

// CourseDetailResponse is a course page. VideoID is only set while the
// selected batch is accessible.
type CourseDetailResponse struct {
	CourseSummaryResponse
	Content       string    `json:"content"`
	VideoID       string    `json:"videoId,omitempty"`
	SelectedBatch string    `json:"selectedBatch"`
	Locked        bool      `json:"locked"`
	NextSchedule  string    `json:"nextSchedule,omitempty"`
	EvaluatedAt   time.Time `json:"evaluatedAt"`
	Timezone      string    `json:"timezone"`
}

// AvailabilityResponse reports only the accessibility state of a course
type AvailabilityResponse struct {
	CourseID      string          `json:"courseId"`
	Accessible    bool            `json:"accessible"`
	SelectedBatch string          `json:"selectedBatch"`
	TimeSlots     []BatchResponse `json:"timeSlots"`
	EvaluatedAt   time.Time       `json:"evaluatedAt"`
	Timezone      string          `json:"timezone"`
}

// RecordViewResponse returns the updated counter for a batch
type RecordViewResponse struct {
	CourseID  string `json:"courseId"`
	BatchName string `json:"batchName"`
	Views     int64  `json:"views"`
}

// ToBatchModels converts request batches into model batches without normalisation
func ToBatchModels(reqs []BatchRequest) []models.Batch {
	batches := make([]models.Batch, len(reqs))
	for i, r := range reqs {
		batches[i] = models.Batch{
			BatchName: r.BatchName,
			Time:      r.Time,
			Days:      append([]string(nil), r.Days...),
		}
	}
	return batches
}

// NewBatchResponses builds batch responses from evaluated statuses
func NewBatchResponses(statuses []schedule.BatchStatus, views map[string]int64) []BatchResponse {
	out := make([]BatchResponse, len(statuses))
	for i, st := range statuses {
		out[i] = BatchResponse{
			BatchName:    st.BatchName,
			Time:         st.Time,
			Days:         st.Days,
			IsAccessible: st.Accessible,
			Schedule:     schedule.ScheduleLabel(st.Batch),
		}
		if views != nil {
			v := views[st.BatchName]
			out[i].Views = &v
		}
	}
	return out
}

// NewCourseSummaryResponse evaluates a course at now and builds its card
func NewCourseSummaryResponse(course *models.Course, now time.Time) CourseSummaryResponse {
	statuses := schedule.Evaluate(course.Batches, now)

	open := make([]string, 0, len(statuses))
	for _, st := range statuses {
		if st.Accessible {
			open = append(open, st.BatchName)
		}
	}

	return CourseSummaryResponse{
		ID:                course.ID,
		Title:             course.Title,
		Description:       course.Description,
		Duration:          course.Duration,
		Languages:         course.Languages,
		Status:            string(course.Status),
		Accessible:        len(open) > 0,
		AccessibleBatches: open,
		TimeSlots:         NewBatchResponses(statuses, course.ViewStats),
	}
}
