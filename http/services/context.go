package services

import (
	"academy-dashboard/models"
	"context"
)

// PaymentContext is everything the recording dialog needs on open: the
// payment record, the live course lookup, cohort dates, the resolved fees
// and the payment options offered for the course category.
type PaymentContext struct {
	Payment          models.Payment               `json:"payment"`
	CourseDetails    *models.CoursePaymentDetails `json:"course_details,omitempty"`
	CohortDates      *models.CohortDates          `json:"cohort_dates,omitempty"`
	EffectiveFees    EffectiveFees                `json:"effective_fees"`
	AvailableOptions []string                     `json:"available_options"`
}

// GetPaymentContext loads the payment and joins the concurrent course and
// cohort lookups into one dialog-opening payload.
func (s *PaymentService) GetPaymentContext(ctx context.Context, paymentID int) (*PaymentContext, error) {
	payment, err := s.LoadPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	_, installmentsEnabled, err := s.loadSettings(ctx)
	if err != nil {
		installmentsEnabled = true
	}

	course, cohortDates := s.fetchContextLookups(ctx, payment)

	courseCategory := ""
	if course != nil {
		courseCategory = course.CourseCategory
	}

	return &PaymentContext{
		Payment:          *payment,
		CourseDetails:    course,
		CohortDates:      cohortDates,
		EffectiveFees:    ResolveEffectiveFees(payment, course),
		AvailableOptions: AvailableOptions(courseCategory, installmentsEnabled),
	}, nil
}
