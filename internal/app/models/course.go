package models

import "time"

// CourseStatus is the publication state of a course.
type CourseStatus string

const (
	CourseStatusActive   CourseStatus = "active"
	CourseStatusInactive CourseStatus = "inactive"
)

// IsValid reports whether s is a known status.
func (s CourseStatus) IsValid() bool {
	return s == CourseStatusActive || s == CourseStatusInactive
}

// Batch is a named weekly access window of a course.
// Time is a 24-hour "HH:MM" wall clock value read in each viewer's own timezone.
type Batch struct {
	BatchName string   `json:"batchName" yaml:"batchName" db:"batch_name"`
	Time      string   `json:"time" yaml:"time" db:"time"`
	Days      []string `json:"days" yaml:"days" db:"days"`
}

// Course represents a video course with its scheduled batches.
type Course struct {
	ID          string       `json:"id" db:"id"`
	Title       string       `json:"title" db:"title"`
	Description string       `json:"description" db:"description"`
	Content     string       `json:"content" db:"content"`
	VideoID     string       `json:"videoId" db:"video_id"`
	Duration    int          `json:"duration" db:"duration"` // minutes
	Languages   []string     `json:"languages" db:"languages"`
	Batches     []Batch      `json:"timeSlots" db:"-"`
	Status      CourseStatus `json:"status" db:"status"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time    `json:"updatedAt" db:"updated_at"`

	// ViewStats maps batch name to view count, populated when needed
	ViewStats map[string]int64 `json:"viewStats,omitempty" db:"-"`
}

// IsActive reports whether the course is visible to viewers.
func (c *Course) IsActive() bool {
	return c.Status == "" || c.Status == CourseStatusActive
}

// FindBatch returns the batch with the given name, or nil.
func (c *Course) FindBatch(name string) *Batch {
	for i := range c.Batches {
		if c.Batches[i].BatchName == name {
			return &c.Batches[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the course.
func (c *Course) Clone() *Course {
	if c == nil {
		return nil
	}
	out := *c
	out.Languages = append([]string(nil), c.Languages...)
	out.Batches = make([]Batch, len(c.Batches))
	for i, b := range c.Batches {
		out.Batches[i] = Batch{
			BatchName: b.BatchName,
			Time:      b.Time,
			Days:      append([]string(nil), b.Days...),
		}
	}
	if c.ViewStats != nil {
		out.ViewStats = make(map[string]int64, len(c.ViewStats))
		for k, v := range c.ViewStats {
			out.ViewStats[k] = v
		}
	}
	return &out
}
