package utils

// Payment record statuses
const (
	StatusPending = "PENDING"
	StatusPartial = "PARTIAL"
	StatusPaid    = "PAID"
)

// Payment options as selected in the recording dialog
const (
	OptionOneTime                 = "One Time"
	OptionOneTimeWithInstallments = "One Time With Installments"
	OptionEMI                     = "EMI"
	OptionMonthly                 = "Monthly"
	OptionMonthlyWithDiscounts    = "Monthly With Discounts"
	OptionCustom                  = "Custom"
)

// Course categories with special plan handling
const (
	CategoryOngoingTraining = "Ongoing Training"
)

// One-Time locks its subtype; EMI requires one of the EMI subtypes
// (display grouping only, never used to compute amounts).
const (
	SubtypeFullPayment = "Full Payment"
	SubtypeFirstEMI    = "First EMI"
	SubtypeMiddleEMI   = "Middle EMI"
	SubtypeLastEMI     = "Last EMI"
)

// Discount types for monthly plans
const (
	DiscountPercentage = "percentage"
	DiscountFlat       = "flat"
)

// Fee defaults applied when a course lookup has no registration fees configured
const (
	DefaultCourseRegistrationFee  = 1000.0
	DefaultStudentRegistrationFee = 500.0
)

// Installment schedule defaults
const (
	DefaultInstallmentCount   = 3
	DefaultReminderDaysBefore = 3
)

// Daily reminders fire at this hour local time
const ReminderHour = 10
