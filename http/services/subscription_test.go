package services

import (
	"academy-dashboard/models"
	"academy-dashboard/utils"
	"testing"
	"time"
)

func TestApplyDiscount(t *testing.T) {
	tests := []struct {
		name         string
		base         float64
		discountType string
		value        float64
		want         float64
	}{
		{"ten percent", 1000, utils.DiscountPercentage, 10, 900},
		{"flat hundred", 1000, utils.DiscountFlat, 100, 900},
		{"percentage rounds up", 999, utils.DiscountPercentage, 10, 900},
		{"full percentage floors at zero", 1000, utils.DiscountPercentage, 100, 0},
		{"flat exceeding base floors at zero", 1000, utils.DiscountFlat, 1500, 0},
		{"unknown type leaves base", 1000, "bogus", 50, 1000},
		{"no discount", 1000, "", 0, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyDiscount(tt.base, tt.discountType, tt.value); got != tt.want {
				t.Errorf("ApplyDiscount(%.2f, %q, %.2f) = %.2f, want %.2f",
					tt.base, tt.discountType, tt.value, got, tt.want)
			}
		})
	}
}

func TestCommitmentTotals(t *testing.T) {
	totalPayable, totalSavings := CommitmentTotals(1000, 900, 6)
	if totalPayable != 5400 {
		t.Errorf("totalPayable = %.2f, want 5400", totalPayable)
	}
	if totalSavings != 600 {
		t.Errorf("totalSavings = %.2f, want 600", totalSavings)
	}

	// no discount means no savings
	totalPayable, totalSavings = CommitmentTotals(1000, 1000, 12)
	if totalPayable != 12000 || totalSavings != 0 {
		t.Errorf("undiscounted = (%.2f, %.2f), want (12000, 0)", totalPayable, totalSavings)
	}
}

func TestInitializeMonthlySubscription(t *testing.T) {
	restore := fixedNow(day(2025, time.March, 15))
	defer restore()

	state := InitializeMonthlySubscription(1000, 900, 6)

	if !state.IsFirstPayment {
		t.Error("new subscription should be flagged as first payment")
	}
	if state.CurrentMonth != "2025-03" {
		t.Errorf("current month = %q, want 2025-03", state.CurrentMonth)
	}
	if len(state.MonthlyRecords) != 1 {
		t.Fatalf("records = %d, want 1", len(state.MonthlyRecords))
	}
	rec := state.MonthlyRecords[0]
	if rec.Month != "2025-03" || rec.Status != models.MonthlyRecordPending {
		t.Errorf("opening record = %+v, want 2025-03 PENDING", rec)
	}
}

func TestCalculateTotalPaymentAmount(t *testing.T) {
	state := &models.MonthlySubscriptionState{
		OriginalMonthlyFee:   1000,
		DiscountedMonthlyFee: 900,
	}

	tests := []struct {
		name         string
		payment      models.Payment
		isDiscounted bool
		want         PaymentTotals
	}{
		{
			name:         "first payment adds unpaid registration fees",
			payment:      models.Payment{ReceivedAmount: 0},
			isDiscounted: true,
			want: PaymentTotals{
				TotalAmount:            2400,
				MonthlyFee:             900,
				CourseRegistrationFee:  1000,
				StudentRegistrationFee: 500,
				IsDiscountApplied:      true,
			},
		},
		{
			name:         "first payment skips fees already marked paid",
			payment:      models.Payment{ReceivedAmount: 0, CourseRegFeePaid: true},
			isDiscounted: true,
			want: PaymentTotals{
				TotalAmount:            1400,
				MonthlyFee:             900,
				StudentRegistrationFee: 500,
				IsDiscountApplied:      true,
			},
		},
		{
			name:         "later payment is monthly fee alone",
			payment:      models.Payment{ReceivedAmount: 2400},
			isDiscounted: true,
			want:         PaymentTotals{TotalAmount: 900, MonthlyFee: 900, IsDiscountApplied: true},
		},
		{
			name:    "undiscounted uses original fee",
			payment: models.Payment{ReceivedAmount: 1000},
			want:    PaymentTotals{TotalAmount: 1000, MonthlyFee: 1000},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotalPaymentAmount(&tt.payment, state, tt.isDiscounted, 1000, 500)
			if got != tt.want {
				t.Errorf("totals = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCommitMonthlyPayment(t *testing.T) {
	restore := fixedNow(day(2025, time.March, 15))
	defer restore()

	state := InitializeMonthlySubscription(1000, 900, 6)
	paidOn := day(2025, time.March, 20)

	CommitMonthlyPayment(state, paidOn)

	if state.IsFirstPayment {
		t.Error("first payment flag should clear after commit")
	}
	if state.CurrentMonth != "2025-04" {
		t.Errorf("current month = %q, want 2025-04", state.CurrentMonth)
	}
	if len(state.MonthlyRecords) != 2 {
		t.Fatalf("records = %d, want 2", len(state.MonthlyRecords))
	}

	march := state.MonthlyRecords[0]
	if march.Status != models.MonthlyRecordPaid || march.PaidOn == nil || !march.PaidOn.Equal(paidOn) {
		t.Errorf("march record = %+v, want PAID on %v", march, paidOn)
	}
	april := state.MonthlyRecords[1]
	if april.Month != "2025-04" || april.Status != models.MonthlyRecordPending {
		t.Errorf("april record = %+v, want 2025-04 PENDING", april)
	}
}

func TestCommitMonthlyPaymentYearRollover(t *testing.T) {
	restore := fixedNow(day(2025, time.December, 10))
	defer restore()

	state := InitializeMonthlySubscription(1000, 1000, 0)
	CommitMonthlyPayment(state, day(2025, time.December, 10))

	if state.CurrentMonth != "2026-01" {
		t.Errorf("current month after December = %q, want 2026-01", state.CurrentMonth)
	}
}
