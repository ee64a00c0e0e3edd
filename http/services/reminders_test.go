package services

import (
	"testing"
	"time"
)

func TestDeriveReminderState(t *testing.T) {
	restore := fixedNow(time.Date(2025, time.March, 15, 14, 30, 0, 0, time.UTC))
	defer restore()

	tomorrowAtTen := time.Date(2025, time.March, 16, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name             string
		plan             PlanType
		postPaymentTotal float64
		totalFees        float64
		operatorStop     bool
		want             ReminderState
	}{
		{
			name:             "fully paid one-time turns reminders off",
			plan:             PlanOneTime,
			postPaymentTotal: 5000,
			totalFees:        5000,
			want:             ReminderState{},
		},
		{
			name:             "partial one-time schedules tomorrow",
			plan:             PlanOneTime,
			postPaymentTotal: 3000,
			totalFees:        5000,
			want: ReminderState{
				ReminderEnabled:  true,
				NextReminderDate: &tomorrowAtTen,
				IsPartialPayment: true,
			},
		},
		{
			name:             "partial custom schedules tomorrow",
			plan:             PlanCustom,
			postPaymentTotal: 100,
			totalFees:        5000,
			want: ReminderState{
				ReminderEnabled:  true,
				NextReminderDate: &tomorrowAtTen,
				IsPartialPayment: true,
			},
		},
		{
			name:             "operator stop suppresses the partial reminder",
			plan:             PlanOneTime,
			postPaymentTotal: 3000,
			totalFees:        5000,
			operatorStop:     true,
			want:             ReminderState{StopReminders: true, IsPartialPayment: true},
		},
		{
			name:             "installment plans ride their own schedule",
			plan:             PlanOneTimeWithInstallments,
			postPaymentTotal: 3000,
			totalFees:        5000,
			want:             ReminderState{ReminderEnabled: true},
		},
		{
			name:             "fully paid emi turns reminders off",
			plan:             PlanEMI,
			postPaymentTotal: 5000,
			totalFees:        5000,
			want:             ReminderState{},
		},
		{
			name:             "monthly stays enabled even when totals line up",
			plan:             PlanMonthlySubscription,
			postPaymentTotal: 5000,
			totalFees:        5000,
			want:             ReminderState{ReminderEnabled: true},
		},
		{
			name:             "monthly with operator stop",
			plan:             PlanMonthlySubscriptionDiscounted,
			postPaymentTotal: 900,
			totalFees:        0,
			operatorStop:     true,
			want:             ReminderState{StopReminders: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveReminderState(tt.plan, tt.postPaymentTotal, tt.totalFees, tt.operatorStop)

			if got.ReminderEnabled != tt.want.ReminderEnabled ||
				got.StopReminders != tt.want.StopReminders ||
				got.IsPartialPayment != tt.want.IsPartialPayment {
				t.Errorf("state = %+v, want %+v", got, tt.want)
			}

			switch {
			case tt.want.NextReminderDate == nil && got.NextReminderDate != nil:
				t.Errorf("unexpected next reminder %v", got.NextReminderDate)
			case tt.want.NextReminderDate != nil && (got.NextReminderDate == nil || !got.NextReminderDate.Equal(*tt.want.NextReminderDate)):
				t.Errorf("next reminder = %v, want %v", got.NextReminderDate, tt.want.NextReminderDate)
			}
		})
	}
}
