package models

import "time"

// Monthly record statuses
const (
	MonthlyRecordPending = "PENDING"
	MonthlyRecordPaid    = "PAID"
)

// MonthlyRecord is one billing month of a monthly subscription plan.
// Month is formatted YYYY-MM.
type MonthlyRecord struct {
	Month  string     `json:"month"`
	Status string     `json:"status"`
	PaidOn *time.Time `json:"paid_on,omitempty"`
}

// MonthlySubscriptionState tracks recurring-billing state for Ongoing
// Training enrolments. CurrentMonth always reflects the latest uncommitted
// record; IsFirstPayment goes false once any record is marked PAID.
type MonthlySubscriptionState struct {
	IsFirstPayment       bool            `json:"is_first_payment"`
	MonthlyRecords       []MonthlyRecord `json:"monthly_records"`
	OriginalMonthlyFee   float64         `json:"original_monthly_fee"`
	DiscountedMonthlyFee float64         `json:"discounted_monthly_fee"`
	CurrentMonth         string          `json:"current_month"`
}
