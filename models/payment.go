package models

import "time"

// Payment represents the payment record of a student for one course enrolment.
// All monetary mutations flow through the manual recording workflow or the
// gateway verification flow; the row is the single source of truth for how
// much has been received and which plan the payer is on.
type Payment struct {
	ID        int    `json:"id"`
	StudentID int    `json:"student_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CourseID  int    `json:"course_id"`
	CohortID  *int   `json:"cohort_id,omitempty"`

	CourseFee              float64 `json:"course_fee"`
	CourseRegistrationFee  float64 `json:"course_registration_fee"`
	StudentRegistrationFee float64 `json:"student_registration_fee"`
	CourseRegFeePaid       bool    `json:"course_reg_fee_paid"`
	StudentRegFeePaid      bool    `json:"student_reg_fee_paid"`

	ReceivedAmount    float64 `json:"received_amount"`
	OutstandingAmount float64 `json:"outstanding_amount"`

	PaymentOption string  `json:"payment_option"`
	PlanType      string  `json:"plan_type"`
	MonthlyFee    float64 `json:"monthly_fee"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
	LockInMonths  int     `json:"lock_in_months"`

	InstallmentsConfig  *OneTimeInstallmentsConfig `json:"installments_config,omitempty"`
	MonthlySubscription *MonthlySubscriptionState  `json:"monthly_subscription,omitempty"`

	ReminderEnabled  bool       `json:"reminder_enabled"`
	NextReminderDate *time.Time `json:"next_reminder_date,omitempty"`
	StopReminders    bool       `json:"stop_reminders"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaymentTransaction is one recorded payment against a Payment row.
type PaymentTransaction struct {
	ID                int       `json:"id"`
	PaymentID         int       `json:"payment_id"`
	TransactionID     string    `json:"transaction_id"`
	Amount            float64   `json:"amount"`
	PaymentMode       string    `json:"payment_mode"`
	PaymentDate       time.Time `json:"payment_date"`
	PlanType          string    `json:"plan_type"`
	PaymentOption     string    `json:"payment_option"`
	InstallmentNumber *int      `json:"installment_number,omitempty"`
	InvoiceNumber     string    `json:"invoice_number"`
	CreatedAt         time.Time `json:"created_at"`
}

// RazorpayOrder is returned to the client when a gateway order is created.
type RazorpayOrder struct {
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt"`
}

// PaymentResponse is the structured response for API responses
type PaymentResponse struct {
	ID                int     `json:"id"`
	StudentID         int     `json:"student_id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	CourseID          int     `json:"course_id"`
	CourseFee         float64 `json:"course_fee"`
	ReceivedAmount    float64 `json:"received_amount"`
	OutstandingAmount float64 `json:"outstanding_amount"`
	PaymentOption     string  `json:"payment_option"`
	PlanType          string  `json:"plan_type"`
	Status            string  `json:"status"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

// ToResponse converts Payment to PaymentResponse with formatted timestamps
func (p *Payment) ToResponse() PaymentResponse {
	return PaymentResponse{
		ID:                p.ID,
		StudentID:         p.StudentID,
		Name:              p.Name,
		Email:             p.Email,
		CourseID:          p.CourseID,
		CourseFee:         p.CourseFee,
		ReceivedAmount:    p.ReceivedAmount,
		OutstandingAmount: p.OutstandingAmount,
		PaymentOption:     p.PaymentOption,
		PlanType:          p.PlanType,
		Status:            p.Status,
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         p.UpdatedAt.Format(time.RFC3339),
	}
}
