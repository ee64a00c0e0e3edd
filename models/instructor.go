package models

import "time"

// Instructor represents an onboarded (or onboarding) instructor, including
// the payout details collected by the onboarding form.
type Instructor struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Specialization string    `json:"specialization"`
	BankAccount    string    `json:"bank_account"`
	IFSC           string    `json:"ifsc"`
	UpiID          string    `json:"upi_id"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// InstructorResponse is the structured response for API responses
type InstructorResponse struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// ToResponse converts Instructor to InstructorResponse with formatted timestamps.
// Payout details are deliberately omitted from list responses.
func (i *Instructor) ToResponse() InstructorResponse {
	return InstructorResponse{
		ID:             i.ID,
		Name:           i.Name,
		Email:          i.Email,
		Phone:          i.Phone,
		Specialization: i.Specialization,
		Status:         i.Status,
		CreatedAt:      i.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      i.UpdatedAt.Format(time.RFC3339),
	}
}
