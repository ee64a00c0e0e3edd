package services

import (
	"academy-dashboard/models"
	"strings"
	"testing"
)

func TestValidatePaymentAmount(t *testing.T) {
	fees := EffectiveFees{CourseFee: 5000}

	tests := []struct {
		name     string
		entered  float64
		payment  models.Payment
		plan     PlanType
		fees     EffectiveFees
		wantOK   bool
		wantTerm bool
		wantClmp float64
		wantErr  string
	}{
		{
			name:    "zero amount rejected",
			entered: 0,
			plan:    PlanOneTime,
			fees:    fees,
			wantErr: "greater than 0",
		},
		{
			name:    "negative amount rejected",
			entered: -50,
			plan:    PlanOneTime,
			fees:    fees,
			wantErr: "greater than 0",
		},
		{
			name:     "monthly plans skip the cap",
			entered:  99999,
			plan:     PlanMonthlySubscription,
			fees:     EffectiveFees{},
			wantOK:   true,
			wantClmp: 99999,
		},
		{
			name:     "missing fee configuration is terminal",
			entered:  100,
			plan:     PlanOneTime,
			fees:     EffectiveFees{},
			wantTerm: true,
			wantErr:  "Fee Configuration Required",
		},
		{
			name:     "fully received balance is terminal",
			entered:  100,
			payment:  models.Payment{ReceivedAmount: 5000},
			plan:     PlanOneTime,
			fees:     fees,
			wantTerm: true,
			wantErr:  "no balance remaining",
		},
		{
			name:     "overpayment clamps to remaining balance",
			entered:  3000,
			payment:  models.Payment{ReceivedAmount: 3000},
			plan:     PlanOneTime,
			fees:     fees,
			wantClmp: 2000,
			wantErr:  "remaining balance of 2000.00",
		},
		{
			name:     "exact remaining balance accepted",
			entered:  2000,
			payment:  models.Payment{ReceivedAmount: 3000},
			plan:     PlanOneTime,
			fees:     fees,
			wantOK:   true,
			wantClmp: 2000,
		},
		{
			name:     "partial amount accepted",
			entered:  1500,
			payment:  models.Payment{ReceivedAmount: 0},
			plan:     PlanCustom,
			fees:     fees,
			wantOK:   true,
			wantClmp: 1500,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePaymentAmount(tt.entered, &tt.payment, tt.plan, tt.fees, false, false)

			if got.OK != tt.wantOK {
				t.Errorf("OK = %v, want %v", got.OK, tt.wantOK)
			}
			if got.Terminal != tt.wantTerm {
				t.Errorf("Terminal = %v, want %v", got.Terminal, tt.wantTerm)
			}
			if got.ClampedAmount != tt.wantClmp {
				t.Errorf("ClampedAmount = %.2f, want %.2f", got.ClampedAmount, tt.wantClmp)
			}
			if tt.wantErr == "" && got.Error != "" {
				t.Errorf("unexpected error %q", got.Error)
			}
			if tt.wantErr != "" && !strings.Contains(got.Error, tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", got.Error, tt.wantErr)
			}
		})
	}
}

func TestValidatePaymentAmountIncludesSelectedRegFees(t *testing.T) {
	payment := models.Payment{ReceivedAmount: 5000}
	fees := EffectiveFees{CourseFee: 5000, CourseRegistrationFee: 1000, StudentRegistrationFee: 500}

	// with both reg fees selected the cap rises to 6500, leaving 1500 open
	got := ValidatePaymentAmount(1500, &payment, PlanOneTime, fees, true, true)
	if !got.OK || got.ClampedAmount != 1500 {
		t.Errorf("validation = %+v, want OK at 1500", got)
	}

	// without them the record is already settled
	got = ValidatePaymentAmount(1500, &payment, PlanOneTime, fees, false, false)
	if !got.Terminal {
		t.Errorf("validation = %+v, want terminal", got)
	}
}
