package dto

import "time"

// BatchViewStat is the view count of a single batch
type BatchViewStat struct {
	BatchName string `json:"batchName"`
	Views     int64  `json:"views"`
}

// CourseStatsResponse aggregates the views of one course
type CourseStatsResponse struct {
	CourseID   string          `json:"courseId"`
	Title      string          `json:"title"`
	TotalViews int64           `json:"totalViews"`
	Batches    []BatchViewStat `json:"batches"`
}

// AnalyticsSummaryResponse aggregates views across all courses
type AnalyticsSummaryResponse struct {
	TotalCourses  int64                 `json:"totalCourses"`
	ActiveCourses int64                 `json:"activeCourses"`
	TotalViews    int64                 `json:"totalViews"`
	MostViewed    *CourseStatsResponse  `json:"mostViewed,omitempty"`
	PerCourse     []CourseStatsResponse `json:"perCourse"`
	GeneratedAt   time.Time             `json:"generatedAt"`
}

// LiveCourse is one entry of the live monitor snapshot
type LiveCourse struct {
	CourseID string   `json:"courseId"`
	Title    string   `json:"title"`
	Batches  []string `json:"batches"`
}

// LiveSnapshotResponse is the latest live monitor evaluation
type LiveSnapshotResponse struct {
	EvaluatedAt time.Time    `json:"evaluatedAt"`
	Timezone    string       `json:"timezone"`
	Courses     []LiveCourse `json:"courses"`
}

// LanguageResponse is one entry of the language catalogue
type LanguageResponse struct {
	Code       string `json:"code" example:"hindi"`
	Tag        string `json:"tag" example:"hi"`
	Name       string `json:"name" example:"Hindi"`
	NativeName string `json:"nativeName" example:"हिन्दी"`
}
