package services

import (
	"academy-dashboard/errors"
	"academy-dashboard/models"
	"academy-dashboard/utils"
	"fmt"
	"math"
	"time"
)

// Rounding tolerance for installment sums
const amountTolerance = 0.01

// GenerateInstallments splits the span [startDate, endDate] into count
// equal-length windows. Each installment falls due at its window's end.
// Amounts are floor(total/count) with the rounding remainder folded into the
// last installment, so the amounts sum to totalAmount exactly.
func GenerateInstallments(startDate, endDate time.Time, totalAmount float64, count int) (*models.OneTimeInstallmentsConfig, error) {
	if count < 2 {
		return nil, errors.NewInvalidParamsError("installment count must be at least 2")
	}
	if !endDate.After(startDate) {
		return nil, errors.NewInvalidParamsError("end date must be after start date")
	}
	if totalAmount <= 0 {
		return nil, errors.NewInvalidParamsError("total amount must be greater than 0")
	}

	span := endDate.Sub(startDate)
	window := span / time.Duration(count)
	durationInDays := int(math.Round(span.Hours() / 24))

	base := math.Floor(totalAmount / float64(count))
	today := truncateToDay(nowFunc())

	installments := make([]models.Installment, count)
	for i := 0; i < count; i++ {
		number := i + 1
		amount := base
		if number == count {
			amount = totalAmount - base*float64(count-1)
		}

		dueDate := startDate.Add(window * time.Duration(number))
		if number == count {
			dueDate = endDate
		}

		reminderDate := dueDate.AddDate(0, 0, -utils.DefaultReminderDaysBefore)
		if reminderDate.Before(today) {
			reminderDate = today
		}

		inst := models.Installment{
			InstallmentNumber:  number,
			Amount:             amount,
			DueDate:            dueDate,
			ReminderDate:       reminderDate,
			ReminderDaysBefore: utils.DefaultReminderDaysBefore,
			Status:             models.InstallmentUnpaid,
		}

		switch {
		case number == 1:
			// no invoice, no toggles on the opening installment
			inst.Stage = models.StageFirst
		case number == count:
			inst.Stage = models.StageLast
			inst.InvoiceOnPayment = true
			inst.FinalInvoice = true
		default:
			inst.Stage = models.StageMiddle
			inst.InvoiceOnPayment = true
		}

		installments[i] = inst
	}

	return &models.OneTimeInstallmentsConfig{
		TotalAmount:    totalAmount,
		CourseDuration: models.CourseDuration{DurationInDays: durationInDays},
		Installments:   installments,
	}, nil
}

// ValidateInstallmentConfig checks the schedule invariants: at least two
// installments, amounts summing to the total within rounding tolerance,
// strictly increasing due dates, contiguous 1..N numbering and exactly one
// first/one last stage.
func ValidateInstallmentConfig(cfg *models.OneTimeInstallmentsConfig) error {
	if cfg == nil || len(cfg.Installments) < 2 {
		return errors.NewInvalidParamsError("installment schedule must contain at least 2 installments")
	}

	var sum float64
	firstCount, lastCount := 0, 0
	for i, inst := range cfg.Installments {
		sum += inst.Amount

		if inst.InstallmentNumber != i+1 {
			return errors.NewInvalidParamsError("installment numbers must be contiguous starting at 1")
		}
		if i > 0 && !inst.DueDate.After(cfg.Installments[i-1].DueDate) {
			return errors.NewInvalidParamsError("installment due dates must be strictly increasing")
		}

		switch inst.Stage {
		case models.StageFirst:
			firstCount++
		case models.StageLast:
			lastCount++
		case models.StageMiddle:
		default:
			return errors.NewInvalidParamsError(fmt.Sprintf("unknown installment stage %q", inst.Stage))
		}
	}

	if math.Abs(sum-cfg.TotalAmount) > amountTolerance {
		return errors.NewInvalidParamsError(
			fmt.Sprintf("installment amounts sum to %.2f, expected %.2f", sum, cfg.TotalAmount))
	}
	if firstCount != 1 || lastCount != 1 {
		return errors.NewInvalidParamsError("installment schedule must have exactly one first and one last stage")
	}
	return nil
}

// MarkInstallmentsPaid walks the schedule front to back marking every
// installment the received total fully covers as PAID and the rest UNPAID.
// Allocation is greedy; no partial-installment payment is representable.
// Returns the unallocated remainder.
func MarkInstallmentsPaid(cfg *models.OneTimeInstallmentsConfig, receivedAmount float64, paidDate time.Time, transactionID string) float64 {
	remaining := receivedAmount
	for i := range cfg.Installments {
		inst := &cfg.Installments[i]
		if remaining >= inst.Amount-amountTolerance {
			remaining -= inst.Amount
			if inst.Status != models.InstallmentPaid {
				inst.Status = models.InstallmentPaid
				inst.PaidAmount = inst.Amount
				pd := paidDate
				inst.PaidDate = &pd
				inst.TransactionID = transactionID
			}
		} else {
			inst.Status = models.InstallmentUnpaid
			inst.PaidAmount = 0
			inst.PaidDate = nil
			inst.TransactionID = ""
		}
	}
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// AllocateInstallmentPayment checks a received total against the schedule
// before committing it. A total that does not land exactly on an installment
// boundary is rejected rather than silently absorbed.
func AllocateInstallmentPayment(cfg *models.OneTimeInstallmentsConfig, receivedTotal float64) (lastPaidNumber int, err error) {
	remaining := receivedTotal
	for _, inst := range cfg.Installments {
		if remaining >= inst.Amount-amountTolerance {
			remaining -= inst.Amount
			lastPaidNumber = inst.InstallmentNumber
		} else {
			break
		}
	}
	if remaining > amountTolerance {
		next := lastPaidNumber + 1
		if next <= len(cfg.Installments) {
			return 0, errors.NewInvalidParamsError(fmt.Sprintf(
				"amount must match installment boundaries; installment %d is %.2f",
				next, cfg.Installments[next-1].Amount))
		}
		return 0, errors.NewInvalidParamsError("amount exceeds the installment schedule total")
	}
	return lastPaidNumber, nil
}

// CalculateRemainingBalance returns the unpaid remainder of the schedule.
func CalculateRemainingBalance(cfg *models.OneTimeInstallmentsConfig) float64 {
	var paid float64
	for _, inst := range cfg.Installments {
		if inst.Status == models.InstallmentPaid {
			paid += inst.Amount
		}
	}
	return cfg.TotalAmount - paid
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
