package services

import (
	"academy-dashboard/models"
	"testing"
)

func TestResolveEffectiveFees(t *testing.T) {
	tests := []struct {
		name    string
		payment models.Payment
		course  *models.CoursePaymentDetails
		want    EffectiveFees
	}{
		{
			name:    "stored fees trusted when present",
			payment: models.Payment{CourseFee: 5000, CourseRegistrationFee: 800, StudentRegistrationFee: 300},
			course:  &models.CoursePaymentDetails{Price: 9999, RegistrationFee: 1},
			want:    EffectiveFees{CourseFee: 5000, CourseRegistrationFee: 800, StudentRegistrationFee: 300},
		},
		{
			name:    "stale record falls back to the course lookup",
			payment: models.Payment{CourseFee: 0, StudentRegistrationFee: 300},
			course:  &models.CoursePaymentDetails{Price: 7000, RegistrationFee: 1200},
			want:    EffectiveFees{CourseFee: 7000, CourseRegistrationFee: 1200, StudentRegistrationFee: 300},
		},
		{
			name:    "lookup with missing reg fees uses defaults",
			payment: models.Payment{CourseFee: 0},
			course:  &models.CoursePaymentDetails{Price: 7000},
			want:    EffectiveFees{CourseFee: 7000, CourseRegistrationFee: 1000, StudentRegistrationFee: 500},
		},
		{
			name:    "no source at all leaves everything zero",
			payment: models.Payment{},
			course:  nil,
			want:    EffectiveFees{},
		},
		{
			name:    "lookup without a price does not override",
			payment: models.Payment{CourseFee: 0, CourseRegistrationFee: 800},
			course:  &models.CoursePaymentDetails{Price: 0, RegistrationFee: 1200},
			want:    EffectiveFees{CourseRegistrationFee: 800},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveEffectiveFees(&tt.payment, tt.course)
			if got != tt.want {
				t.Errorf("fees = %+v, want %+v", got, tt.want)
			}

			// pure function: resolving again yields the same fees
			if again := ResolveEffectiveFees(&tt.payment, tt.course); again != got {
				t.Errorf("second resolution differs: %+v vs %+v", again, got)
			}
		})
	}
}

func TestTotalFees(t *testing.T) {
	fees := EffectiveFees{CourseFee: 5000, CourseRegistrationFee: 1000, StudentRegistrationFee: 500}

	tests := []struct {
		name              string
		payment           models.Payment
		includeStudentReg bool
		includeCourseReg  bool
		want              float64
	}{
		{"course fee only", models.Payment{}, false, false, 5000},
		{"both reg fees", models.Payment{}, true, true, 6500},
		{"student reg only", models.Payment{}, true, false, 5500},
		{"paid reg fees are skipped", models.Payment{CourseRegFeePaid: true, StudentRegFeePaid: true}, true, true, 5000},
		{"paid course reg only skips course", models.Payment{CourseRegFeePaid: true}, true, true, 5500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalFees(fees, &tt.payment, tt.includeStudentReg, tt.includeCourseReg); got != tt.want {
				t.Errorf("TotalFees = %.2f, want %.2f", got, tt.want)
			}
		})
	}
}
