package models

import "time"

// Course represents an academic course offered by the academy
type Course struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	CourseType      string    `json:"course_type"`
	Category        string    `json:"category"`
	PaymentCategory string    `json:"payment_category"`
	Fee             float64   `json:"fee"`
	RegistrationFee float64   `json:"registration_fee"`
	Duration        string    `json:"duration"`
	IsActive        int       `json:"is_active"` // 0 = inactive, 1 = active
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CoursePaymentDetails is the fee lookup used by the payment dialog when a
// payment record carries stale or zeroed fee fields.
type CoursePaymentDetails struct {
	CourseType      string  `json:"course_type"`
	CourseCategory  string  `json:"course_category"`
	PaymentCategory string  `json:"payment_category"`
	Price           float64 `json:"price"`
	RegistrationFee float64 `json:"registration_fee"`
}

// CourseResponse is the structured response for API responses
type CourseResponse struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	CourseType      string  `json:"course_type"`
	Category        string  `json:"category"`
	PaymentCategory string  `json:"payment_category"`
	Fee             float64 `json:"fee"`
	RegistrationFee float64 `json:"registration_fee"`
	Duration        string  `json:"duration"`
	IsActive        int     `json:"is_active"` // 0 = inactive, 1 = active
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// ToResponse converts Course to CourseResponse with formatted timestamps
func (c *Course) ToResponse() CourseResponse {
	return CourseResponse{
		ID:              c.ID,
		Name:            c.Name,
		Description:     c.Description,
		CourseType:      c.CourseType,
		Category:        c.Category,
		PaymentCategory: c.PaymentCategory,
		Fee:             c.Fee,
		RegistrationFee: c.RegistrationFee,
		Duration:        c.Duration,
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       c.UpdatedAt.Format(time.RFC3339),
	}
}
