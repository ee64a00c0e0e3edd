package services

import (
	"academy-dashboard/models"
	"academy-dashboard/utils"
	"math"
	"time"
)

const monthLayout = "2006-01"

// InitializeMonthlySubscription sets up recurring-billing state for an
// Ongoing Training enrolment, opening the current month as the first
// uncommitted record.
func InitializeMonthlySubscription(originalFee, discountedFee float64, lockInMonths int) *models.MonthlySubscriptionState {
	currentMonth := nowFunc().Format(monthLayout)
	state := &models.MonthlySubscriptionState{
		IsFirstPayment:       true,
		OriginalMonthlyFee:   originalFee,
		DiscountedMonthlyFee: discountedFee,
		CurrentMonth:         currentMonth,
		MonthlyRecords: []models.MonthlyRecord{
			{Month: currentMonth, Status: models.MonthlyRecordPending},
		},
	}
	_ = lockInMonths // commitment totals are computed on demand, not stored
	return state
}

// PaymentTotals is the amount breakdown for one monthly payment.
type PaymentTotals struct {
	TotalAmount            float64 `json:"total_amount"`
	MonthlyFee             float64 `json:"monthly_fee"`
	CourseRegistrationFee  float64 `json:"course_registration_fee"`
	StudentRegistrationFee float64 `json:"student_registration_fee"`
	IsDiscountApplied      bool    `json:"is_discount_applied"`
}

// CalculateTotalPaymentAmount computes what a monthly payer owes right now.
// The first payment adds any registration fee not already marked paid on the
// payment record; every later payment is the monthly fee alone. First-ness
// is judged from the stored receivedAmount, not local state, so the result
// survives dialog re-opens.
func CalculateTotalPaymentAmount(payment *models.Payment, state *models.MonthlySubscriptionState, isDiscounted bool, courseRegFee, studentRegFee float64) PaymentTotals {
	monthlyFee := state.OriginalMonthlyFee
	if isDiscounted && state.DiscountedMonthlyFee > 0 {
		monthlyFee = state.DiscountedMonthlyFee
	}

	totals := PaymentTotals{
		TotalAmount:       monthlyFee,
		MonthlyFee:        monthlyFee,
		IsDiscountApplied: isDiscounted && state.DiscountedMonthlyFee > 0,
	}

	if payment.ReceivedAmount != 0 {
		return totals
	}

	if !payment.CourseRegFeePaid {
		totals.CourseRegistrationFee = courseRegFee
		totals.TotalAmount += courseRegFee
	}
	if !payment.StudentRegFeePaid {
		totals.StudentRegistrationFee = studentRegFee
		totals.TotalAmount += studentRegFee
	}
	return totals
}

// ApplyDiscount computes the discounted monthly fee, never below zero,
// rounded up to the next whole amount.
func ApplyDiscount(base float64, discountType string, value float64) float64 {
	discounted := base
	switch discountType {
	case utils.DiscountPercentage:
		discounted = base - base*value/100
	case utils.DiscountFlat:
		discounted = base - value
	}
	if discounted < 0 {
		discounted = 0
	}
	return math.Ceil(discounted)
}

// CommitmentTotals returns the total payable over the lock-in period and the
// savings versus the undiscounted fee.
func CommitmentTotals(base, discounted float64, lockInMonths int) (totalPayable, totalSavings float64) {
	totalPayable = math.Ceil(discounted * float64(lockInMonths))
	totalSavings = base*float64(lockInMonths) - totalPayable
	if totalSavings < 0 {
		totalSavings = 0
	}
	return totalPayable, totalSavings
}

// CommitMonthlyPayment marks the current month PAID and opens the next month
// as the new uncommitted record.
func CommitMonthlyPayment(state *models.MonthlySubscriptionState, paidOn time.Time) {
	committed := false
	for i := range state.MonthlyRecords {
		rec := &state.MonthlyRecords[i]
		if rec.Month == state.CurrentMonth && rec.Status != models.MonthlyRecordPaid {
			rec.Status = models.MonthlyRecordPaid
			pd := paidOn
			rec.PaidOn = &pd
			committed = true
			break
		}
	}
	if !committed {
		// current month record missing or already paid; append it as paid
		pd := paidOn
		state.MonthlyRecords = append(state.MonthlyRecords, models.MonthlyRecord{
			Month:  state.CurrentMonth,
			Status: models.MonthlyRecordPaid,
			PaidOn: &pd,
		})
	}

	next := nextMonth(state.CurrentMonth)
	state.MonthlyRecords = append(state.MonthlyRecords, models.MonthlyRecord{
		Month:  next,
		Status: models.MonthlyRecordPending,
	})
	state.CurrentMonth = next
	state.IsFirstPayment = false
}

func nextMonth(month string) string {
	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return nowFunc().Format(monthLayout)
	}
	return t.AddDate(0, 1, 0).Format(monthLayout)
}
