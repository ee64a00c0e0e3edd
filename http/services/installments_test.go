package services

import (
	"academy-dashboard/models"
	"math"
	"testing"
	"time"
)

func fixedNow(t time.Time) func() {
	prev := nowFunc
	nowFunc = func() time.Time { return t }
	return func() { nowFunc = prev }
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateInstallments(t *testing.T) {
	restore := fixedNow(day(2025, time.January, 1))
	defer restore()

	start := day(2025, time.January, 1)
	end := day(2025, time.April, 1) // 90 days

	cfg, err := GenerateInstallments(start, end, 10000, 3)
	if err != nil {
		t.Fatalf("GenerateInstallments: %v", err)
	}

	if got := len(cfg.Installments); got != 3 {
		t.Fatalf("installments = %d, want 3", got)
	}
	if cfg.CourseDuration.DurationInDays != 90 {
		t.Errorf("duration = %d days, want 90", cfg.CourseDuration.DurationInDays)
	}

	// floor(10000/3) = 3333 with the remainder folded into the last
	wantAmounts := []float64{3333, 3333, 3334}
	var sum float64
	for i, inst := range cfg.Installments {
		if inst.Amount != wantAmounts[i] {
			t.Errorf("installment %d amount = %.2f, want %.2f", i+1, inst.Amount, wantAmounts[i])
		}
		if inst.InstallmentNumber != i+1 {
			t.Errorf("installment %d numbered %d", i+1, inst.InstallmentNumber)
		}
		if inst.Status != models.InstallmentUnpaid {
			t.Errorf("installment %d status = %q, want UNPAID", i+1, inst.Status)
		}
		sum += inst.Amount
	}
	if sum != 10000 {
		t.Errorf("amounts sum to %.2f, want 10000", sum)
	}

	// equal windows, last due pinned to the end date
	if got := cfg.Installments[0].DueDate; !got.Equal(day(2025, time.January, 31)) {
		t.Errorf("first due date = %v, want 2025-01-31", got)
	}
	if got := cfg.Installments[2].DueDate; !got.Equal(end) {
		t.Errorf("last due date = %v, want end date %v", got, end)
	}

	// stage and invoice flags
	first, mid, last := cfg.Installments[0], cfg.Installments[1], cfg.Installments[2]
	if first.Stage != models.StageFirst || first.InvoiceOnPayment || first.FinalInvoice {
		t.Errorf("first stage flags wrong: %+v", first)
	}
	if mid.Stage != models.StageMiddle || !mid.InvoiceOnPayment || mid.FinalInvoice {
		t.Errorf("middle stage flags wrong: %+v", mid)
	}
	if last.Stage != models.StageLast || !last.InvoiceOnPayment || !last.FinalInvoice {
		t.Errorf("last stage flags wrong: %+v", last)
	}

	// reminders lead the due date by the default offset
	wantReminder := day(2025, time.January, 28)
	if got := first.ReminderDate; !got.Equal(wantReminder) {
		t.Errorf("first reminder = %v, want %v", got, wantReminder)
	}
}

func TestGenerateInstallmentsReminderNeverInPast(t *testing.T) {
	restore := fixedNow(day(2025, time.January, 30))
	defer restore()

	cfg, err := GenerateInstallments(day(2025, time.January, 1), day(2025, time.March, 2), 6000, 2)
	if err != nil {
		t.Fatalf("GenerateInstallments: %v", err)
	}

	// first due date is Jan 31, so the raw reminder Jan 28 is already past
	if got := cfg.Installments[0].ReminderDate; !got.Equal(day(2025, time.January, 30)) {
		t.Errorf("reminder = %v, want clamped to today", got)
	}
}

func TestGenerateInstallmentsRejectsBadInput(t *testing.T) {
	start, end := day(2025, time.January, 1), day(2025, time.April, 1)

	tests := []struct {
		name   string
		start  time.Time
		end    time.Time
		amount float64
		count  int
	}{
		{"count below two", start, end, 10000, 1},
		{"zero count", start, end, 10000, 0},
		{"end before start", end, start, 10000, 3},
		{"end equals start", start, start, 10000, 3},
		{"zero amount", start, end, 0, 3},
		{"negative amount", start, end, -100, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := GenerateInstallments(tt.start, tt.end, tt.amount, tt.count); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestValidateInstallmentConfig(t *testing.T) {
	restore := fixedNow(day(2025, time.January, 1))
	defer restore()

	valid := func() *models.OneTimeInstallmentsConfig {
		cfg, err := GenerateInstallments(day(2025, time.January, 1), day(2025, time.April, 1), 10000, 3)
		if err != nil {
			t.Fatalf("GenerateInstallments: %v", err)
		}
		return cfg
	}

	if err := ValidateInstallmentConfig(valid()); err != nil {
		t.Errorf("generated schedule should validate: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*models.OneTimeInstallmentsConfig)
	}{
		{"nil config", nil},
		{"single installment", func(c *models.OneTimeInstallmentsConfig) {
			c.Installments = c.Installments[:1]
		}},
		{"sum mismatch", func(c *models.OneTimeInstallmentsConfig) {
			c.Installments[1].Amount += 50
		}},
		{"non-contiguous numbering", func(c *models.OneTimeInstallmentsConfig) {
			c.Installments[1].InstallmentNumber = 5
		}},
		{"dates not increasing", func(c *models.OneTimeInstallmentsConfig) {
			c.Installments[1].DueDate = c.Installments[0].DueDate
		}},
		{"two last stages", func(c *models.OneTimeInstallmentsConfig) {
			c.Installments[1].Stage = models.StageLast
		}},
		{"unknown stage", func(c *models.OneTimeInstallmentsConfig) {
			c.Installments[1].Stage = "WHENEVER"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg *models.OneTimeInstallmentsConfig
			if tt.mutate != nil {
				cfg = valid()
				tt.mutate(cfg)
			}
			if err := ValidateInstallmentConfig(cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestMarkInstallmentsPaid(t *testing.T) {
	restore := fixedNow(day(2025, time.January, 1))
	defer restore()

	paidOn := day(2025, time.February, 1)

	tests := []struct {
		name         string
		received     float64
		wantStatuses []string
		wantLeftover float64
	}{
		{"nothing", 0, []string{"UNPAID", "UNPAID", "UNPAID"}, 0},
		{"first only", 3333, []string{"PAID", "UNPAID", "UNPAID"}, 0},
		{"first two", 6666, []string{"PAID", "PAID", "UNPAID"}, 0},
		{"all", 10000, []string{"PAID", "PAID", "PAID"}, 0},
		{"partial second", 4000, []string{"PAID", "UNPAID", "UNPAID"}, 667},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := GenerateInstallments(day(2025, time.January, 1), day(2025, time.April, 1), 10000, 3)
			if err != nil {
				t.Fatalf("GenerateInstallments: %v", err)
			}

			leftover := MarkInstallmentsPaid(cfg, tt.received, paidOn, "txn-1")
			if math.Abs(leftover-tt.wantLeftover) > amountTolerance {
				t.Errorf("leftover = %.2f, want %.2f", leftover, tt.wantLeftover)
			}
			for i, want := range tt.wantStatuses {
				inst := cfg.Installments[i]
				if inst.Status != want {
					t.Errorf("installment %d status = %q, want %q", i+1, inst.Status, want)
				}
				if want == "PAID" {
					if inst.PaidDate == nil || !inst.PaidDate.Equal(paidOn) {
						t.Errorf("installment %d paid date = %v, want %v", i+1, inst.PaidDate, paidOn)
					}
					if inst.TransactionID != "txn-1" {
						t.Errorf("installment %d txn = %q", i+1, inst.TransactionID)
					}
				} else if inst.PaidDate != nil || inst.PaidAmount != 0 {
					t.Errorf("unpaid installment %d carries payment data: %+v", i+1, inst)
				}
			}
		})
	}
}

func TestMarkInstallmentsPaidIsDeterministic(t *testing.T) {
	restore := fixedNow(day(2025, time.January, 1))
	defer restore()

	cfg, err := GenerateInstallments(day(2025, time.January, 1), day(2025, time.April, 1), 10000, 3)
	if err != nil {
		t.Fatalf("GenerateInstallments: %v", err)
	}

	// a re-run with a lower total unmarks what the first run marked
	MarkInstallmentsPaid(cfg, 6666, day(2025, time.February, 1), "txn-1")
	MarkInstallmentsPaid(cfg, 3333, day(2025, time.February, 1), "txn-2")

	if cfg.Installments[0].Status != models.InstallmentPaid {
		t.Error("first installment should remain paid")
	}
	if cfg.Installments[1].Status != models.InstallmentUnpaid {
		t.Error("second installment should have been unmarked")
	}
	if got := CalculateRemainingBalance(cfg); got != 6667 {
		t.Errorf("remaining balance = %.2f, want 6667", got)
	}
}

func TestAllocateInstallmentPayment(t *testing.T) {
	restore := fixedNow(day(2025, time.January, 1))
	defer restore()

	cfg, err := GenerateInstallments(day(2025, time.January, 1), day(2025, time.April, 1), 10000, 3)
	if err != nil {
		t.Fatalf("GenerateInstallments: %v", err)
	}

	tests := []struct {
		name         string
		received     float64
		wantLastPaid int
		wantErr      bool
	}{
		{"zero", 0, 0, false},
		{"one boundary", 3333, 1, false},
		{"two boundaries", 6666, 2, false},
		{"full", 10000, 3, false},
		{"between boundaries", 4000, 0, true},
		{"over schedule total", 20000, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lastPaid, err := AllocateInstallmentPayment(cfg, tt.received)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if lastPaid != tt.wantLastPaid {
				t.Errorf("lastPaid = %d, want %d", lastPaid, tt.wantLastPaid)
			}
		})
	}
}
