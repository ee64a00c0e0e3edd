package models

import "time"

// Cohort is a scheduled offering of a course with its own start/end dates.
type Cohort struct {
	ID        int        `json:"id"`
	CourseID  int        `json:"course_id"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// CohortDates is the date-range lookup used to generate installment schedules.
type CohortDates struct {
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}
