package utils

import (
	"fmt"
	"regexp"

	"github.com/nyaruka/phonenumbers"
)

// Validation regex patterns
var (
	EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	IFSCRegex  = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	UPIRegex   = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,256}@[a-zA-Z]{2,64}$`)
	digitsOnly = regexp.MustCompile(`\D`)
)

// ValidationRules contains validation configuration
type ValidationRules struct {
	MaxNameLength           int
	MaxSpecializationLength int
}

// DefaultValidationRules provides default validation constraints
var DefaultValidationRules = ValidationRules{
	MaxNameLength:           100,
	MaxSpecializationLength: 200,
}

// ValidateEmail checks if email format is valid
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !EmailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePhone parses the phone number with the phonenumbers library.
// If the library fails (parse error or panic on malformed input), fall back
// to a digit-length heuristic rather than blocking the user entirely.
func ValidatePhone(phone string) (err error) {
	if phone == "" {
		return fmt.Errorf("phone is required")
	}

	defer func() {
		if r := recover(); r != nil {
			err = validatePhoneFallback(phone)
		}
	}()

	num, parseErr := phonenumbers.Parse(phone, "IN")
	if parseErr != nil {
		return validatePhoneFallback(phone)
	}
	if !phonenumbers.IsValidNumber(num) {
		return fmt.Errorf("invalid phone number")
	}
	return nil
}

// validatePhoneFallback accepts anything with 10 to 15 digits
func validatePhoneFallback(phone string) error {
	digits := digitsOnly.ReplaceAllString(phone, "")
	if len(digits) < 10 || len(digits) > 15 {
		return fmt.Errorf("invalid phone format (expected 10-15 digits)")
	}
	return nil
}

// ValidateIFSC checks the bank branch code format (e.g., HDFC0001234)
func ValidateIFSC(ifsc string) error {
	if ifsc == "" {
		return fmt.Errorf("IFSC code is required")
	}
	if !IFSCRegex.MatchString(ifsc) {
		return fmt.Errorf("invalid IFSC code format")
	}
	return nil
}

// ValidateUPI checks the UPI virtual payment address format (e.g., name@bank)
func ValidateUPI(upiID string) error {
	if upiID == "" {
		return nil // optional field
	}
	if !UPIRegex.MatchString(upiID) {
		return fmt.Errorf("invalid UPI ID format")
	}
	return nil
}

// ValidateName checks if name meets requirements
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > DefaultValidationRules.MaxNameLength {
		return fmt.Errorf("name must be less than %d characters", DefaultValidationRules.MaxNameLength)
	}
	return nil
}

// ValidateSpecialization checks if specialization meets requirements
func ValidateSpecialization(specialization string) error {
	if specialization != "" && len(specialization) > DefaultValidationRules.MaxSpecializationLength {
		return fmt.Errorf("specialization must be less than %d characters", DefaultValidationRules.MaxSpecializationLength)
	}
	return nil
}
