package services

import (
	"academy-dashboard/db"
	"academy-dashboard/errors"
	"academy-dashboard/models"
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// ListCourses returns all courses, active ones first
func ListCourses(ctx context.Context) ([]models.Course, error) {
	rows, err := db.DB.QueryContext(ctx, `
		SELECT id, name, description, course_type, category, payment_category,
		       fee, registration_fee, duration, is_active, created_at, updated_at
		FROM courses
		ORDER BY is_active DESC, name ASC`)
	if err != nil {
		return nil, errors.E(errors.Internal, "error retrieving courses", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CourseType, &c.Category,
			&c.PaymentCategory, &c.Fee, &c.RegistrationFee, &c.Duration, &c.IsActive,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, errors.E(errors.Internal, "error scanning course", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// GetCourseByID returns a single course
func GetCourseByID(ctx context.Context, id int) (*models.Course, error) {
	var c models.Course
	err := db.DB.QueryRowContext(ctx, `
		SELECT id, name, description, course_type, category, payment_category,
		       fee, registration_fee, duration, is_active, created_at, updated_at
		FROM courses WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.CourseType, &c.Category,
			&c.PaymentCategory, &c.Fee, &c.RegistrationFee, &c.Duration, &c.IsActive,
			&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError(fmt.Sprintf("course not found with id: %d", id))
		}
		return nil, errors.E(errors.Internal, "error retrieving course", err)
	}
	return &c, nil
}

// CreateCourse validates and inserts a new course
func CreateCourse(ctx context.Context, c *models.Course) error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.NewInvalidParamsError("course name is required")
	}
	if c.Fee < 0 || c.RegistrationFee < 0 {
		return errors.NewInvalidParamsError("fees cannot be negative")
	}

	err := db.DB.QueryRowContext(ctx, `
		INSERT INTO courses (name, description, course_type, category, payment_category,
			fee, registration_fee, duration, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1)
		RETURNING id, created_at, updated_at`,
		c.Name, c.Description, c.CourseType, c.Category, c.PaymentCategory,
		c.Fee, c.RegistrationFee, c.Duration).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return errors.E(errors.Internal, "error creating course", err)
	}
	c.IsActive = 1
	return nil
}

// UpdateCourse updates an existing course's editable fields
func UpdateCourse(ctx context.Context, c *models.Course) error {
	if c.ID <= 0 {
		return errors.NewInvalidParamsError("valid course id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.NewInvalidParamsError("course name is required")
	}
	if c.Fee < 0 || c.RegistrationFee < 0 {
		return errors.NewInvalidParamsError("fees cannot be negative")
	}

	res, err := db.DB.ExecContext(ctx, `
		UPDATE courses
		SET name = $1, description = $2, course_type = $3, category = $4,
		    payment_category = $5, fee = $6, registration_fee = $7, duration = $8,
		    is_active = $9, updated_at = CURRENT_TIMESTAMP
		WHERE id = $10`,
		c.Name, c.Description, c.CourseType, c.Category, c.PaymentCategory,
		c.Fee, c.RegistrationFee, c.Duration, c.IsActive, c.ID)
	if err != nil {
		return errors.E(errors.Internal, "error updating course", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("course not found with id: %d", c.ID))
	}
	return nil
}

// ListCohorts returns the cohorts of a course, newest start date first
func ListCohorts(ctx context.Context, courseID int) ([]models.Cohort, error) {
	rows, err := db.DB.QueryContext(ctx, `
		SELECT id, course_id, name, start_date, end_date, created_at
		FROM cohorts WHERE course_id = $1
		ORDER BY start_date DESC`, courseID)
	if err != nil {
		return nil, errors.E(errors.Internal, "error retrieving cohorts", err)
	}
	defer rows.Close()

	var cohorts []models.Cohort
	for rows.Next() {
		var c models.Cohort
		var endDate sql.NullTime
		if err := rows.Scan(&c.ID, &c.CourseID, &c.Name, &c.StartDate, &endDate, &c.CreatedAt); err != nil {
			return nil, errors.E(errors.Internal, "error scanning cohort", err)
		}
		if endDate.Valid {
			c.EndDate = &endDate.Time
		}
		cohorts = append(cohorts, c)
	}
	return cohorts, rows.Err()
}
