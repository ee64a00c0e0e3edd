package services

import (
	"academy-dashboard/db"
	"academy-dashboard/errors"
	"academy-dashboard/logger"
	"academy-dashboard/models"
	"academy-dashboard/utils"
	"context"
	"strings"
)

// ImportResult summarizes a bulk instructor upload
type ImportResult struct {
	Total    int      `json:"total"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ValidateInstructor runs the onboarding field validations
func ValidateInstructor(i *models.Instructor) error {
	if err := utils.ValidateName(i.Name); err != nil {
		return errors.NewInvalidParamsError(err.Error())
	}
	if err := utils.ValidateEmail(i.Email); err != nil {
		return errors.NewInvalidParamsError(err.Error())
	}
	if err := utils.ValidatePhone(i.Phone); err != nil {
		return errors.NewInvalidParamsError(err.Error())
	}
	if i.Specialization != "" {
		if err := utils.ValidateSpecialization(i.Specialization); err != nil {
			return errors.NewInvalidParamsError(err.Error())
		}
	}
	if i.IFSC != "" {
		if err := utils.ValidateIFSC(i.IFSC); err != nil {
			return errors.NewInvalidParamsError(err.Error())
		}
	}
	if i.UpiID != "" {
		if err := utils.ValidateUPI(i.UpiID); err != nil {
			return errors.NewInvalidParamsError(err.Error())
		}
	}
	return nil
}

// CreateInstructor validates and inserts a single instructor
func CreateInstructor(ctx context.Context, i *models.Instructor) error {
	if err := ValidateInstructor(i); err != nil {
		return err
	}

	var exists bool
	err := db.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM instructors WHERE LOWER(email) = LOWER($1))",
		i.Email).Scan(&exists)
	if err != nil {
		return errors.E(errors.Internal, "error checking instructor email", err)
	}
	if exists {
		return errors.NewConflictError("instructor with this email already exists")
	}

	if i.Status == "" {
		i.Status = "ONBOARDING"
	}
	i.IFSC = strings.ToUpper(i.IFSC)

	err = db.DB.QueryRowContext(ctx, `
		INSERT INTO instructors (name, email, phone, specialization, bank_account, ifsc, upi_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		i.Name, i.Email, i.Phone, i.Specialization, i.BankAccount, i.IFSC, i.UpiID, i.Status).
		Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return errors.E(errors.Internal, "error creating instructor", err)
	}
	return nil
}

// ListInstructors returns all instructors, newest first
func ListInstructors(ctx context.Context) ([]models.Instructor, error) {
	rows, err := db.DB.QueryContext(ctx, `
		SELECT id, name, email, phone, specialization, bank_account, ifsc, upi_id,
		       status, created_at, updated_at
		FROM instructors
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.E(errors.Internal, "error retrieving instructors", err)
	}
	defer rows.Close()

	var instructors []models.Instructor
	for rows.Next() {
		var i models.Instructor
		if err := rows.Scan(&i.ID, &i.Name, &i.Email, &i.Phone, &i.Specialization,
			&i.BankAccount, &i.IFSC, &i.UpiID, &i.Status, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, errors.E(errors.Internal, "error scanning instructor", err)
		}
		instructors = append(instructors, i)
	}
	return instructors, rows.Err()
}

// ImportInstructors inserts a parsed batch, skipping rows that fail
// validation or collide on email. Failures are reported, not fatal.
func ImportInstructors(ctx context.Context, instructors []models.Instructor) ImportResult {
	result := ImportResult{Total: len(instructors)}

	for idx := range instructors {
		inst := &instructors[idx]
		if err := CreateInstructor(ctx, inst); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, inst.Email+": "+err.Error())
			logger.Warn("Skipping instructor row %d (%s): %v", idx+1, inst.Email, err)
			continue
		}
		result.Imported++
	}
	return result
}
