package services

import (
	"academy-dashboard/models"
	"fmt"
)

// AmountValidation is the outcome of validating an entered payment amount.
type AmountValidation struct {
	OK            bool    `json:"ok"`
	ClampedAmount float64 `json:"clamped_amount,omitempty"`
	Terminal      bool    `json:"terminal,omitempty"`
	Error         string  `json:"error,omitempty"`
}

// ValidatePaymentAmount gates the entered amount against the remaining
// balance for the selected plan. Monthly plans are recurring and carry no
// lifetime cap, so they skip the upper-bound check entirely. For every other
// plan the amount is clamped to totalFees minus what was already received;
// a non-positive remainder is a terminal condition.
func ValidatePaymentAmount(entered float64, payment *models.Payment, plan PlanType, fees EffectiveFees, includeStudentReg, includeCourseReg bool) AmountValidation {
	if entered <= 0 {
		return AmountValidation{Error: "amount must be greater than 0"}
	}

	if plan.IsMonthly() {
		return AmountValidation{OK: true, ClampedAmount: entered}
	}

	totalFees := TotalFees(fees, payment, includeStudentReg, includeCourseReg)
	if totalFees <= 0 {
		return AmountValidation{
			Terminal: true,
			Error:    "Fee Configuration Required: no course fee is configured for this payment",
		}
	}

	maxAllowed := totalFees - payment.ReceivedAmount
	if maxAllowed <= 0 {
		return AmountValidation{
			Terminal: true,
			Error:    "payment already completed; no balance remaining",
		}
	}

	if entered > maxAllowed {
		return AmountValidation{
			ClampedAmount: maxAllowed,
			Error:         fmt.Sprintf("amount exceeds the remaining balance of %.2f", maxAllowed),
		}
	}

	return AmountValidation{OK: true, ClampedAmount: entered}
}
