package services

import (
	"academy-dashboard/errors"
	"academy-dashboard/utils"
	"fmt"
	"time"
)

// nowFunc is swapped out in tests
var nowFunc = time.Now

// PlanType is the payment plan variant a payer is on. Selection is always
// through SelectPlan so that string comparisons on the raw payment option
// never leak outside this file.
type PlanType int

const (
	PlanUnknown PlanType = iota
	PlanOneTime
	PlanOneTimeWithInstallments
	PlanEMI
	PlanMonthlySubscription
	PlanMonthlySubscriptionDiscounted
	PlanCustom
)

// String returns the wire/database representation of the plan type
func (p PlanType) String() string {
	switch p {
	case PlanOneTime:
		return "ONE_TIME"
	case PlanOneTimeWithInstallments:
		return "ONE_TIME_WITH_INSTALLMENTS"
	case PlanEMI:
		return "EMI"
	case PlanMonthlySubscription:
		return "MONTHLY_SUBSCRIPTION"
	case PlanMonthlySubscriptionDiscounted:
		return "MONTHLY_SUBSCRIPTION_DISCOUNTED"
	case PlanCustom:
		return "CUSTOM"
	default:
		return "UNKNOWN"
	}
}

// ParsePlanType parses a stored plan type string
func ParsePlanType(s string) PlanType {
	switch s {
	case "ONE_TIME":
		return PlanOneTime
	case "ONE_TIME_WITH_INSTALLMENTS":
		return PlanOneTimeWithInstallments
	case "EMI":
		return PlanEMI
	case "MONTHLY_SUBSCRIPTION":
		return PlanMonthlySubscription
	case "MONTHLY_SUBSCRIPTION_DISCOUNTED":
		return PlanMonthlySubscriptionDiscounted
	case "CUSTOM":
		return PlanCustom
	default:
		return PlanUnknown
	}
}

// IsMonthly reports whether the plan is a recurring monthly variant
func (p PlanType) IsMonthly() bool {
	return p == PlanMonthlySubscription || p == PlanMonthlySubscriptionDiscounted
}

// UsesInstallmentSchedule reports whether the plan carries a per-installment schedule
func (p PlanType) UsesInstallmentSchedule() bool {
	return p == PlanOneTimeWithInstallments || p == PlanEMI
}

// AvailableOptions returns the payment options offered for a course category.
// Ongoing Training courses bill monthly; everything else pays against a
// lifetime total.
func AvailableOptions(courseCategory string, installmentsEnabled bool) []string {
	if courseCategory == utils.CategoryOngoingTraining {
		return []string{utils.OptionMonthly, utils.OptionMonthlyWithDiscounts}
	}
	options := []string{utils.OptionOneTime}
	if installmentsEnabled {
		options = append(options, utils.OptionOneTimeWithInstallments)
	}
	return append(options, utils.OptionEMI)
}

// SelectPlan maps (courseCategory, paymentOption) to a plan type. Options
// that are not offered for the category are rejected.
func SelectPlan(courseCategory, paymentOption string) (PlanType, error) {
	if courseCategory == utils.CategoryOngoingTraining {
		switch paymentOption {
		case utils.OptionMonthly:
			return PlanMonthlySubscription, nil
		case utils.OptionMonthlyWithDiscounts:
			return PlanMonthlySubscriptionDiscounted, nil
		default:
			return PlanUnknown, errors.NewInvalidParamsError(
				fmt.Sprintf("payment option %q is not available for Ongoing Training courses", paymentOption))
		}
	}

	switch paymentOption {
	case utils.OptionOneTime:
		return PlanOneTime, nil
	case utils.OptionOneTimeWithInstallments:
		return PlanOneTimeWithInstallments, nil
	case utils.OptionEMI:
		return PlanEMI, nil
	case utils.OptionCustom:
		return PlanCustom, nil
	case utils.OptionMonthly, utils.OptionMonthlyWithDiscounts:
		return PlanUnknown, errors.NewInvalidParamsError(
			fmt.Sprintf("payment option %q is only available for Ongoing Training courses", paymentOption))
	default:
		return PlanUnknown, errors.NewInvalidParamsError(fmt.Sprintf("unknown payment option %q", paymentOption))
	}
}

// Subtype returns the locked subtype for the plan, if any. One-Time always
// pays in full; the subtype cannot be chosen.
func (p PlanType) Subtype() (string, bool) {
	if p == PlanOneTime {
		return utils.SubtypeFullPayment, true
	}
	return "", false
}

// ValidateEMISubtype checks the display-grouping subtype required for EMI
// payments. The subtype never influences computed amounts.
func ValidateEMISubtype(subtype string) error {
	switch subtype {
	case utils.SubtypeFirstEMI, utils.SubtypeMiddleEMI, utils.SubtypeLastEMI:
		return nil
	default:
		return errors.NewInvalidParamsError("EMI payments require a subtype of First, Middle or Last EMI")
	}
}

// PlanFields holds every plan-specific field the recording form can submit.
type PlanFields struct {
	MonthlyFee    float64
	DiscountType  string
	DiscountValue float64
	LockInMonths  int
	EMISubtype    string
}

// SanitizePlanFields zeroes every field that does not belong to the selected
// plan. Fields from a plan the operator navigated away from must never leak
// into the submitted payload.
func SanitizePlanFields(plan PlanType, f PlanFields) PlanFields {
	switch plan {
	case PlanMonthlySubscription:
		return PlanFields{MonthlyFee: f.MonthlyFee}
	case PlanMonthlySubscriptionDiscounted:
		return PlanFields{
			MonthlyFee:    f.MonthlyFee,
			DiscountType:  f.DiscountType,
			DiscountValue: f.DiscountValue,
			LockInMonths:  f.LockInMonths,
		}
	case PlanEMI:
		return PlanFields{EMISubtype: f.EMISubtype}
	case PlanOneTime, PlanOneTimeWithInstallments, PlanCustom, PlanUnknown:
		return PlanFields{}
	}
	return PlanFields{}
}
