package services

import (
	"academy-dashboard/utils"
	"time"
)

// ReminderState is the derived reminder/invoice flag set submitted with a
// payment.
type ReminderState struct {
	ReminderEnabled  bool       `json:"reminder_enabled"`
	NextReminderDate *time.Time `json:"next_reminder_date,omitempty"`
	StopReminders    bool       `json:"stop_reminders"`
	IsPartialPayment bool       `json:"is_partial_payment"`
}

// DeriveReminderState computes reminder flags from plan state at submit time.
//
//   - A one-time payment that still leaves a balance enables daily reminders
//     starting tomorrow at 10:00, unless the operator set stop-reminders.
//   - A fully paid record on any non-monthly plan forces reminders off and
//     clears the next reminder date.
//   - Installment, EMI and monthly plans default reminders on; their own
//     per-installment/per-month schedule drives the dates.
func DeriveReminderState(plan PlanType, postPaymentTotal, totalFees float64, operatorStop bool) ReminderState {
	fullyPaid := totalFees > 0 && postPaymentTotal >= totalFees

	if fullyPaid && !plan.IsMonthly() {
		return ReminderState{StopReminders: operatorStop}
	}

	state := ReminderState{StopReminders: operatorStop}

	switch plan {
	case PlanOneTime, PlanCustom:
		state.IsPartialPayment = postPaymentTotal < totalFees
		if state.IsPartialPayment && !operatorStop {
			state.ReminderEnabled = true
			next := nextReminderAt(nowFunc())
			state.NextReminderDate = &next
		}
	case PlanOneTimeWithInstallments, PlanEMI, PlanMonthlySubscription, PlanMonthlySubscriptionDiscounted:
		state.ReminderEnabled = !operatorStop
	case PlanUnknown:
	}

	return state
}

// nextReminderAt returns tomorrow at the reminder hour
func nextReminderAt(now time.Time) time.Time {
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), utils.ReminderHour, 0, 0, 0, now.Location())
}
