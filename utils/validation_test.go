package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last@example.com", "user+tag@sub.domain.org"}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q) = %v, want nil", email, err)
		}
	}

	invalid := []string{"", "plain", "missing@tld", "@nodomain.com", "spaces in@mail.com"}
	for _, email := range invalid {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("ValidateEmail(%q) = nil, want error", email)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"9876543210", "+919876543210", "+1 650 253 0000"}
	for _, phone := range valid {
		if err := ValidatePhone(phone); err != nil {
			t.Errorf("ValidatePhone(%q) = %v, want nil", phone, err)
		}
	}

	if err := ValidatePhone(""); err == nil {
		t.Error("empty phone should be rejected")
	}
}

func TestValidatePhoneFallback(t *testing.T) {
	// unparseable input falls through to the digit-length check
	if err := ValidatePhone("phone: 98765-43210"); err != nil {
		t.Errorf("fallback should accept 10 digits: %v", err)
	}
	if err := ValidatePhone("abc"); err == nil {
		t.Error("input with no digits should be rejected")
	}
}

func TestValidateIFSC(t *testing.T) {
	valid := []string{"HDFC0001234", "SBIN0ABC123"}
	for _, ifsc := range valid {
		if err := ValidateIFSC(ifsc); err != nil {
			t.Errorf("ValidateIFSC(%q) = %v, want nil", ifsc, err)
		}
	}

	invalid := []string{"", "hdfc0001234", "HDFC1001234", "HDFC000123", "HDFC00012345"}
	for _, ifsc := range invalid {
		if err := ValidateIFSC(ifsc); err == nil {
			t.Errorf("ValidateIFSC(%q) = nil, want error", ifsc)
		}
	}
}

func TestValidateUPI(t *testing.T) {
	if err := ValidateUPI(""); err != nil {
		t.Errorf("empty UPI is optional, got %v", err)
	}
	if err := ValidateUPI("someone@upi"); err != nil {
		t.Errorf("ValidateUPI(someone@upi) = %v, want nil", err)
	}
	for _, upi := range []string{"no-at-sign", "someone@", "@bank", "someone@bank2"} {
		if err := ValidateUPI(upi); err == nil {
			t.Errorf("ValidateUPI(%q) = nil, want error", upi)
		}
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("Asha Rao"); err != nil {
		t.Errorf("ValidateName = %v, want nil", err)
	}
	if err := ValidateName(""); err == nil {
		t.Error("empty name should be rejected")
	}

	long := make([]byte, DefaultValidationRules.MaxNameLength+1)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidateName(string(long)); err == nil {
		t.Error("overlong name should be rejected")
	}
}
