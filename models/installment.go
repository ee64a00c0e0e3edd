package models

import "time"

// Installment stages
const (
	StageFirst  = "first"
	StageMiddle = "middle"
	StageLast   = "last"
)

// Installment statuses
const (
	InstallmentUnpaid = "UNPAID"
	InstallmentPaid   = "PAID"
)

// Installment is one dated slice of a one-time-with-installments plan.
type Installment struct {
	InstallmentNumber  int        `json:"installment_number"`
	Stage              string     `json:"stage"`
	Amount             float64    `json:"amount"`
	DueDate            time.Time  `json:"due_date"`
	ReminderDate       time.Time  `json:"reminder_date"`
	ReminderDaysBefore int        `json:"reminder_days_before"`
	Status             string     `json:"status"`
	PaidAmount         float64    `json:"paid_amount,omitempty"`
	PaidDate           *time.Time `json:"paid_date,omitempty"`
	TransactionID      string     `json:"transaction_id,omitempty"`
	InvoiceOnPayment   bool       `json:"invoice_on_payment"`
	FinalInvoice       bool       `json:"final_invoice"`
	StopReminderToggle bool       `json:"stop_reminder_toggle"`
	StopAccessToggle   bool       `json:"stop_access_toggle"`
}

// CourseDuration captures the span the installments were generated over.
type CourseDuration struct {
	DurationInDays int `json:"duration_in_days"`
}

// OneTimeInstallmentsConfig is the full installment schedule for a payment.
// Invariant: the installment amounts sum exactly to TotalAmount, exactly one
// installment has stage "first" and one "last", and numbering is 1..N.
type OneTimeInstallmentsConfig struct {
	TotalAmount    float64        `json:"total_amount"`
	CourseDuration CourseDuration `json:"course_duration"`
	Installments   []Installment  `json:"installments"`
}
