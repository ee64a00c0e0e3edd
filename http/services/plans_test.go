package services

import (
	"academy-dashboard/utils"
	"reflect"
	"testing"
)

func TestSelectPlan(t *testing.T) {
	tests := []struct {
		name     string
		category string
		option   string
		want     PlanType
		wantErr  bool
	}{
		{"one time", "Bootcamp", utils.OptionOneTime, PlanOneTime, false},
		{"one time with installments", "Bootcamp", utils.OptionOneTimeWithInstallments, PlanOneTimeWithInstallments, false},
		{"emi", "Bootcamp", utils.OptionEMI, PlanEMI, false},
		{"custom", "Bootcamp", utils.OptionCustom, PlanCustom, false},
		{"monthly on ongoing training", utils.CategoryOngoingTraining, utils.OptionMonthly, PlanMonthlySubscription, false},
		{"discounted monthly on ongoing training", utils.CategoryOngoingTraining, utils.OptionMonthlyWithDiscounts, PlanMonthlySubscriptionDiscounted, false},
		{"monthly outside ongoing training rejected", "Bootcamp", utils.OptionMonthly, PlanUnknown, true},
		{"one time on ongoing training rejected", utils.CategoryOngoingTraining, utils.OptionOneTime, PlanUnknown, true},
		{"unknown option rejected", "Bootcamp", "Barter", PlanUnknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectPlan(tt.category, tt.option)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("plan = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAvailableOptions(t *testing.T) {
	got := AvailableOptions(utils.CategoryOngoingTraining, true)
	want := []string{utils.OptionMonthly, utils.OptionMonthlyWithDiscounts}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ongoing training options = %v, want %v", got, want)
	}

	got = AvailableOptions("Bootcamp", true)
	want = []string{utils.OptionOneTime, utils.OptionOneTimeWithInstallments, utils.OptionEMI}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("options = %v, want %v", got, want)
	}

	// the installments option disappears when the setting is off
	got = AvailableOptions("Bootcamp", false)
	want = []string{utils.OptionOneTime, utils.OptionEMI}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("options with installments disabled = %v, want %v", got, want)
	}
}

func TestPlanTypeStringRoundTrip(t *testing.T) {
	plans := []PlanType{
		PlanOneTime, PlanOneTimeWithInstallments, PlanEMI,
		PlanMonthlySubscription, PlanMonthlySubscriptionDiscounted, PlanCustom,
	}
	for _, p := range plans {
		if got := ParsePlanType(p.String()); got != p {
			t.Errorf("ParsePlanType(%q) = %v, want %v", p.String(), got, p)
		}
	}
	if got := ParsePlanType("SOMETHING_ELSE"); got != PlanUnknown {
		t.Errorf("ParsePlanType on garbage = %v, want PlanUnknown", got)
	}
}

func TestSubtype(t *testing.T) {
	if sub, locked := PlanOneTime.Subtype(); !locked || sub != utils.SubtypeFullPayment {
		t.Errorf("one-time subtype = (%q, %v), want locked Full Payment", sub, locked)
	}
	if _, locked := PlanEMI.Subtype(); locked {
		t.Error("EMI subtype should not be locked")
	}
}

func TestValidateEMISubtype(t *testing.T) {
	for _, valid := range []string{utils.SubtypeFirstEMI, utils.SubtypeMiddleEMI, utils.SubtypeLastEMI} {
		if err := ValidateEMISubtype(valid); err != nil {
			t.Errorf("ValidateEMISubtype(%q) = %v, want nil", valid, err)
		}
	}
	for _, invalid := range []string{"", utils.SubtypeFullPayment, "Fourth EMI"} {
		if err := ValidateEMISubtype(invalid); err == nil {
			t.Errorf("ValidateEMISubtype(%q) = nil, want error", invalid)
		}
	}
}

func TestSanitizePlanFields(t *testing.T) {
	// fields populated as if the operator toured every plan before submitting
	dirty := PlanFields{
		MonthlyFee:    1000,
		DiscountType:  utils.DiscountPercentage,
		DiscountValue: 10,
		LockInMonths:  6,
		EMISubtype:    utils.SubtypeFirstEMI,
	}

	tests := []struct {
		name string
		plan PlanType
		want PlanFields
	}{
		{"one time drops everything", PlanOneTime, PlanFields{}},
		{"installments drop everything", PlanOneTimeWithInstallments, PlanFields{}},
		{"custom drops everything", PlanCustom, PlanFields{}},
		{"emi keeps only the subtype", PlanEMI, PlanFields{EMISubtype: utils.SubtypeFirstEMI}},
		{"monthly keeps only the fee", PlanMonthlySubscription, PlanFields{MonthlyFee: 1000}},
		{
			"discounted monthly keeps discount fields",
			PlanMonthlySubscriptionDiscounted,
			PlanFields{MonthlyFee: 1000, DiscountType: utils.DiscountPercentage, DiscountValue: 10, LockInMonths: 6},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizePlanFields(tt.plan, dirty); got != tt.want {
				t.Errorf("sanitized = %+v, want %+v", got, tt.want)
			}
		})
	}
}
