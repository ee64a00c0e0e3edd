package services

import (
	"academy-dashboard/models"
	"academy-dashboard/utils"
)

// EffectiveFees is the resolved fee set for one payment record.
type EffectiveFees struct {
	CourseFee              float64 `json:"course_fee"`
	CourseRegistrationFee  float64 `json:"course_registration_fee"`
	StudentRegistrationFee float64 `json:"student_registration_fee"`
}

// ResolveEffectiveFees determines the fees to charge against. A payment
// record with a zero/missing course fee is considered stale; when a live
// course lookup returned a price, the lookup wins and missing registration
// fees fall back to the defaults. Otherwise the stored values are trusted.
// If both sources are absent everything stays 0 and the amount validator
// blocks submission with a fee-configuration error.
//
// Pure function: same inputs always yield the same fees.
func ResolveEffectiveFees(payment *models.Payment, course *models.CoursePaymentDetails) EffectiveFees {
	if payment.CourseFee <= 0 && course != nil && course.Price > 0 {
		fees := EffectiveFees{
			CourseFee:              course.Price,
			CourseRegistrationFee:  course.RegistrationFee,
			StudentRegistrationFee: payment.StudentRegistrationFee,
		}
		if fees.CourseRegistrationFee <= 0 {
			fees.CourseRegistrationFee = utils.DefaultCourseRegistrationFee
		}
		if fees.StudentRegistrationFee <= 0 {
			fees.StudentRegistrationFee = utils.DefaultStudentRegistrationFee
		}
		return fees
	}

	return EffectiveFees{
		CourseFee:              payment.CourseFee,
		CourseRegistrationFee:  payment.CourseRegistrationFee,
		StudentRegistrationFee: payment.StudentRegistrationFee,
	}
}

// TotalFees sums the course fee with the registration fees the operator
// selected, skipping any registration fee already marked paid on the record.
func TotalFees(fees EffectiveFees, payment *models.Payment, includeStudentReg, includeCourseReg bool) float64 {
	total := fees.CourseFee
	if includeStudentReg && !payment.StudentRegFeePaid {
		total += fees.StudentRegistrationFee
	}
	if includeCourseReg && !payment.CourseRegFeePaid {
		total += fees.CourseRegistrationFee
	}
	return total
}
