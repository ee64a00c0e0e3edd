package services

import (
	"academy-dashboard/db"
	"academy-dashboard/errors"
	"academy-dashboard/logger"
	"academy-dashboard/models"
	"academy-dashboard/utils"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	svc "academy-dashboard/services"
)

// PaymentService handles payment recording and lookups
type PaymentService struct {
	Cache *svc.AcademyCache
}

// NewPaymentService creates a new PaymentService instance
func NewPaymentService(cache *svc.AcademyCache) *PaymentService {
	return &PaymentService{Cache: cache}
}

// inflight guards against duplicate concurrent submissions per payment id
var inflight sync.Map

// ManualPaymentRequest is the payload of a manual payment recording
type ManualPaymentRequest struct {
	PaymentID            int     `json:"payment_id"`
	Amount               float64 `json:"amount"`
	PaymentMode          string  `json:"payment_mode"`
	PaymentDate          string  `json:"payment_date,omitempty"`
	PaymentOption        string  `json:"payment_option"`
	EMISubtype           string  `json:"emi_subtype,omitempty"`
	MonthlyFee           float64 `json:"monthly_fee,omitempty"`
	DiscountType         string  `json:"discount_type,omitempty"`
	DiscountValue        float64 `json:"discount_value,omitempty"`
	LockInMonths         int     `json:"lock_in_months,omitempty"`
	InstallmentCount     int     `json:"installment_count,omitempty"`
	IncludeStudentRegFee bool    `json:"include_student_reg_fee"`
	IncludeCourseRegFee  bool    `json:"include_course_reg_fee"`
	StopReminders        bool    `json:"stop_reminders"`
}

// InvoiceInfo carries the generated invoice number back to the client
type InvoiceInfo struct {
	InvoiceNumber string `json:"invoice_number"`
}

// ManualPaymentResult is the response of a successful recording
type ManualPaymentResult struct {
	Invoice           InvoiceInfo   `json:"invoice"`
	TransactionID     string        `json:"transaction_id"`
	PlanType          string        `json:"plan_type"`
	InstallmentNumber *int          `json:"installment_number,omitempty"`
	ReceivedTotal     float64       `json:"received_total"`
	OutstandingAmount float64       `json:"outstanding_amount"`
	Status            string        `json:"status"`
	Reminder          ReminderState `json:"reminder"`
}

// RecordManualPayment runs the full manual recording workflow: resolve fees,
// select the plan, validate the amount, apply plan-specific state, derive
// reminder flags, persist everything in one transaction and emit the
// invoice, events and receipt email.
func (s *PaymentService) RecordManualPayment(ctx context.Context, req ManualPaymentRequest) (*ManualPaymentResult, error) {
	if req.PaymentID <= 0 {
		return nil, errors.NewInvalidParamsError("payment_id is required")
	}

	// Reject re-entrant submissions for the same payment
	if _, loaded := inflight.LoadOrStore(req.PaymentID, struct{}{}); loaded {
		return nil, errors.NewConflictError("a submission for this payment is already in progress")
	}
	defer inflight.Delete(req.PaymentID)

	manualEnabled, installmentsEnabled, err := s.loadSettings(ctx)
	if err != nil {
		return nil, errors.E(errors.Internal, "error loading settings", err)
	}
	if !manualEnabled {
		return nil, errors.NewForbiddenError("manual payment recording is restricted for this academy")
	}

	payment, err := s.LoadPayment(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}

	// Independent lookups are issued in parallel and joined
	course, cohortDates := s.fetchContextLookups(ctx, payment)

	courseCategory := ""
	if course != nil {
		courseCategory = course.CourseCategory
	}

	plan, err := SelectPlan(courseCategory, req.PaymentOption)
	if err != nil {
		return nil, err
	}
	if plan == PlanOneTimeWithInstallments && !installmentsEnabled {
		return nil, errors.NewInvalidParamsError("installment payments are disabled in academy settings")
	}
	if plan == PlanEMI {
		if err := ValidateEMISubtype(req.EMISubtype); err != nil {
			return nil, err
		}
	}

	fields := SanitizePlanFields(plan, PlanFields{
		MonthlyFee:    req.MonthlyFee,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		LockInMonths:  req.LockInMonths,
		EMISubtype:    req.EMISubtype,
	})

	fees := ResolveEffectiveFees(payment, course)

	validation := ValidatePaymentAmount(req.Amount, payment, plan, fees, req.IncludeStudentRegFee, req.IncludeCourseRegFee)
	if !validation.OK {
		return nil, errors.NewInvalidParamsError(validation.Error)
	}
	amount := validation.ClampedAmount

	paymentDate, err := parsePaymentDate(req.PaymentDate)
	if err != nil {
		return nil, err
	}

	transactionID := uuid.NewString()
	invoiceNumber := fmt.Sprintf("INV-%s-%s", paymentDate.Format("20060102"), strings.ToUpper(transactionID[:8]))

	newReceived := payment.ReceivedAmount + amount
	totalFees := TotalFees(fees, payment, req.IncludeStudentRegFee, req.IncludeCourseRegFee)

	var installmentNumber *int

	switch {
	case plan.UsesInstallmentSchedule():
		cfg := payment.InstallmentsConfig
		if cfg == nil {
			cfg, err = s.regenerateInstallments(cohortDates, fees.CourseFee, req.InstallmentCount)
			if err != nil {
				return nil, err
			}
		}
		if err := ValidateInstallmentConfig(cfg); err != nil {
			return nil, err
		}

		lastPaid, err := AllocateInstallmentPayment(cfg, newReceived)
		if err != nil {
			return nil, err
		}
		MarkInstallmentsPaid(cfg, newReceived, paymentDate, transactionID)
		payment.InstallmentsConfig = cfg
		installmentNumber = &lastPaid

	case plan.IsMonthly():
		state := payment.MonthlySubscription
		if state == nil {
			monthlyFee := fields.MonthlyFee
			if monthlyFee <= 0 && course != nil {
				monthlyFee = course.Price
			}
			if monthlyFee <= 0 {
				return nil, errors.NewInvalidParamsError("monthly fee is required for monthly plans")
			}
			var discounted float64
			if plan == PlanMonthlySubscriptionDiscounted {
				discounted = ApplyDiscount(monthlyFee, fields.DiscountType, fields.DiscountValue)
			}
			state = InitializeMonthlySubscription(monthlyFee, discounted, fields.LockInMonths)
		}

		totals := CalculateTotalPaymentAmount(payment, state, plan == PlanMonthlySubscriptionDiscounted,
			fees.CourseRegistrationFee, fees.StudentRegistrationFee)
		if amount < totals.TotalAmount-amountTolerance {
			logger.Warn("Monthly payment %d recorded below the computed total: got %.2f, expected %.2f",
				payment.ID, amount, totals.TotalAmount)
		}

		CommitMonthlyPayment(state, paymentDate)
		payment.MonthlySubscription = state

		// First monthly payment settles the registration fees it carried
		if payment.ReceivedAmount == 0 {
			if totals.CourseRegistrationFee > 0 {
				payment.CourseRegFeePaid = true
			}
			if totals.StudentRegistrationFee > 0 {
				payment.StudentRegFeePaid = true
			}
		}

	default:
		// One-time and custom plans carry no schedule state
	}

	if !plan.IsMonthly() {
		if req.IncludeStudentRegFee {
			payment.StudentRegFeePaid = true
		}
		if req.IncludeCourseRegFee {
			payment.CourseRegFeePaid = true
		}
	}

	reminder := DeriveReminderState(plan, newReceived, totalFees, req.StopReminders)

	outstanding := totalFees - newReceived
	if outstanding < 0 || plan.IsMonthly() {
		outstanding = 0
	}

	status := utils.StatusPartial
	if !plan.IsMonthly() && totalFees > 0 && newReceived >= totalFees {
		status = utils.StatusPaid
	}

	payment.ReceivedAmount = newReceived
	payment.OutstandingAmount = outstanding
	payment.PlanType = plan.String()
	payment.PaymentOption = req.PaymentOption
	payment.MonthlyFee = fields.MonthlyFee
	payment.DiscountType = fields.DiscountType
	payment.DiscountValue = fields.DiscountValue
	payment.LockInMonths = fields.LockInMonths
	payment.ReminderEnabled = reminder.ReminderEnabled
	payment.NextReminderDate = reminder.NextReminderDate
	payment.StopReminders = reminder.StopReminders
	payment.Status = status

	txn := &models.PaymentTransaction{
		PaymentID:         payment.ID,
		TransactionID:     transactionID,
		Amount:            amount,
		PaymentMode:       req.PaymentMode,
		PaymentDate:       paymentDate,
		PlanType:          plan.String(),
		PaymentOption:     req.PaymentOption,
		InstallmentNumber: installmentNumber,
		InvoiceNumber:     invoiceNumber,
	}

	if err := s.persistRecording(ctx, payment, txn); err != nil {
		return nil, err
	}

	// Invoice PDF is best-effort; the recording already committed
	invoicePath, pdfErr := GenerateInvoicePDF(invoiceNumber, payment, txn)
	if pdfErr != nil {
		logger.Error("Error generating invoice PDF for %s: %v", invoiceNumber, pdfErr)
		invoicePath = ""
	}

	s.publishRecordingEvents(payment, txn)
	s.queueReceiptEmail(payment, txn, invoicePath)

	return &ManualPaymentResult{
		Invoice:           InvoiceInfo{InvoiceNumber: invoiceNumber},
		TransactionID:     transactionID,
		PlanType:          plan.String(),
		InstallmentNumber: installmentNumber,
		ReceivedTotal:     newReceived,
		OutstandingAmount: outstanding,
		Status:            status,
		Reminder:          reminder,
	}, nil
}

// fetchContextLookups issues the course-details and cohort-dates lookups
// concurrently and joins them. Failures degrade to nil; downstream logic
// falls back to the stored payment fields.
func (s *PaymentService) fetchContextLookups(ctx context.Context, payment *models.Payment) (*models.CoursePaymentDetails, *models.CohortDates) {
	var (
		wg          sync.WaitGroup
		course      *models.CoursePaymentDetails
		cohortDates *models.CohortDates
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		c, err := s.FetchCoursePaymentDetails(ctx, payment.CourseID)
		if err != nil {
			logger.Warn("Course details lookup failed for course %d: %v", payment.CourseID, err)
			return
		}
		course = c
	}()

	if payment.CohortID != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := s.FetchCohortDates(ctx, *payment.CohortID)
			if err != nil {
				logger.Warn("Cohort dates lookup failed for cohort %d: %v", *payment.CohortID, err)
				return
			}
			cohortDates = d
		}()
	}

	wg.Wait()
	return course, cohortDates
}

func (s *PaymentService) regenerateInstallments(cohortDates *models.CohortDates, courseFee float64, count int) (*models.OneTimeInstallmentsConfig, error) {
	if cohortDates == nil || cohortDates.EndDate == nil {
		return nil, errors.NewInvalidParamsError(
			"installments configuration is missing and no cohort dates are available to regenerate it")
	}
	if count == 0 {
		count = utils.DefaultInstallmentCount
	}
	return GenerateInstallments(cohortDates.StartDate, *cohortDates.EndDate, courseFee, count)
}

// FetchCoursePaymentDetails returns the live fee lookup for a course,
// consulting the injected cache first.
func (s *PaymentService) FetchCoursePaymentDetails(ctx context.Context, courseID int) (*models.CoursePaymentDetails, error) {
	cacheKey := fmt.Sprintf("course-payment-details:%d", courseID)

	var cached models.CoursePaymentDetails
	if s.Cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	var details models.CoursePaymentDetails
	err := db.DB.QueryRowContext(ctx,
		"SELECT course_type, category, payment_category, fee, registration_fee FROM courses WHERE id = $1",
		courseID,
	).Scan(&details.CourseType, &details.CourseCategory, &details.PaymentCategory, &details.Price, &details.RegistrationFee)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("course not found")
		}
		return nil, errors.E(errors.Internal, "error fetching course details", err)
	}

	s.Cache.Set(ctx, cacheKey, details)
	return &details, nil
}

// FetchCohortDates returns the start/end dates of a cohort
func (s *PaymentService) FetchCohortDates(ctx context.Context, cohortID int) (*models.CohortDates, error) {
	var dates models.CohortDates
	var endDate sql.NullTime
	err := db.DB.QueryRowContext(ctx,
		"SELECT start_date, end_date FROM cohorts WHERE id = $1", cohortID,
	).Scan(&dates.StartDate, &endDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("cohort not found")
		}
		return nil, errors.E(errors.Internal, "error fetching cohort dates", err)
	}
	if endDate.Valid {
		dates.EndDate = &endDate.Time
	}
	return &dates, nil
}

// LoadPayment fetches a full payment row including plan state
func (s *PaymentService) LoadPayment(ctx context.Context, paymentID int) (*models.Payment, error) {
	query := `SELECT id, student_id, name, email, course_id, cohort_id,
		course_fee, course_registration_fee, student_registration_fee,
		course_reg_fee_paid, student_reg_fee_paid,
		received_amount, outstanding_amount,
		payment_option, plan_type, monthly_fee, discount_type, discount_value, lock_in_months,
		installments_config, monthly_subscription,
		reminder_enabled, next_reminder_date, stop_reminders,
		status, created_at, updated_at
	FROM payments WHERE id = $1`

	var (
		p                models.Payment
		cohortID         sql.NullInt64
		paymentOption    sql.NullString
		planType         sql.NullString
		discountType     sql.NullString
		installmentsJSON []byte
		monthlyJSON      []byte
		nextReminder     sql.NullTime
	)

	err := db.DB.QueryRowContext(ctx, query, paymentID).Scan(
		&p.ID, &p.StudentID, &p.Name, &p.Email, &p.CourseID, &cohortID,
		&p.CourseFee, &p.CourseRegistrationFee, &p.StudentRegistrationFee,
		&p.CourseRegFeePaid, &p.StudentRegFeePaid,
		&p.ReceivedAmount, &p.OutstandingAmount,
		&paymentOption, &planType, &p.MonthlyFee, &discountType, &p.DiscountValue, &p.LockInMonths,
		&installmentsJSON, &monthlyJSON,
		&p.ReminderEnabled, &nextReminder, &p.StopReminders,
		&p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("payment not found")
		}
		return nil, errors.E(errors.Internal, "error loading payment", err)
	}

	if cohortID.Valid {
		id := int(cohortID.Int64)
		p.CohortID = &id
	}
	p.PaymentOption = paymentOption.String
	p.PlanType = planType.String
	p.DiscountType = discountType.String
	if nextReminder.Valid {
		p.NextReminderDate = &nextReminder.Time
	}

	if len(installmentsJSON) > 0 {
		var cfg models.OneTimeInstallmentsConfig
		if err := json.Unmarshal(installmentsJSON, &cfg); err != nil {
			logger.Warn("Payment %d has a corrupt installments config: %v", p.ID, err)
		} else {
			p.InstallmentsConfig = &cfg
		}
	}
	if len(monthlyJSON) > 0 {
		var state models.MonthlySubscriptionState
		if err := json.Unmarshal(monthlyJSON, &state); err != nil {
			logger.Warn("Payment %d has a corrupt monthly subscription state: %v", p.ID, err)
		} else {
			p.MonthlySubscription = &state
		}
	}

	return &p, nil
}

// persistRecording writes the updated payment row and the transaction in one
// database transaction
func (s *PaymentService) persistRecording(ctx context.Context, payment *models.Payment, txn *models.PaymentTransaction) error {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return errors.E(errors.Internal, "error starting transaction", err)
	}
	defer tx.Rollback()

	installmentsJSON, err := marshalNullable(payment.InstallmentsConfig)
	if err != nil {
		return errors.E(errors.Internal, "error encoding installments config", err)
	}
	monthlyJSON, err := marshalNullable(payment.MonthlySubscription)
	if err != nil {
		return errors.E(errors.Internal, "error encoding monthly subscription", err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE payments SET
			received_amount = $1, outstanding_amount = $2,
			payment_option = $3, plan_type = $4,
			monthly_fee = $5, discount_type = $6, discount_value = $7, lock_in_months = $8,
			course_reg_fee_paid = $9, student_reg_fee_paid = $10,
			installments_config = $11, monthly_subscription = $12,
			reminder_enabled = $13, next_reminder_date = $14, stop_reminders = $15,
			status = $16, updated_at = CURRENT_TIMESTAMP
		WHERE id = $17`,
		payment.ReceivedAmount, payment.OutstandingAmount,
		payment.PaymentOption, payment.PlanType,
		payment.MonthlyFee, payment.DiscountType, payment.DiscountValue, payment.LockInMonths,
		payment.CourseRegFeePaid, payment.StudentRegFeePaid,
		installmentsJSON, monthlyJSON,
		payment.ReminderEnabled, payment.NextReminderDate, payment.StopReminders,
		payment.Status, payment.ID)
	if err != nil {
		return errors.E(errors.Internal, "error updating payment", err)
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO payment_transactions
			(payment_id, transaction_id, amount, payment_mode, payment_date,
			 plan_type, payment_option, installment_number, invoice_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		txn.PaymentID, txn.TransactionID, txn.Amount, txn.PaymentMode, txn.PaymentDate,
		txn.PlanType, txn.PaymentOption, txn.InstallmentNumber, txn.InvoiceNumber)
	if err != nil {
		return errors.E(errors.Internal, "error recording transaction", err)
	}

	if err := tx.Commit(); err != nil {
		return errors.E(errors.Internal, "error committing transaction", err)
	}
	return nil
}

// publishRecordingEvents publishes payment and invoice events (best-effort)
func (s *PaymentService) publishRecordingEvents(payment *models.Payment, txn *models.PaymentTransaction) {
	go func() {
		evt := map[string]interface{}{
			"event":          "payment.recorded",
			"payment_id":     payment.ID,
			"student_id":     payment.StudentID,
			"amount":         txn.Amount,
			"plan_type":      txn.PlanType,
			"payment_option": txn.PaymentOption,
			"received_total": payment.ReceivedAmount,
			"status":         payment.Status,
			"ts":             time.Now().UTC().Format(time.RFC3339),
		}
		if err := svc.Publish("payments", fmt.Sprintf("payment-%d", payment.ID), evt); err != nil {
			logger.Warn("Failed to publish payment.recorded event: %v", err)
		}

		inv := map[string]interface{}{
			"event":          "invoice.generated",
			"payment_id":     payment.ID,
			"invoice_number": txn.InvoiceNumber,
			"amount":         txn.Amount,
			"ts":             time.Now().UTC().Format(time.RFC3339),
		}
		if err := svc.Publish("invoices", txn.InvoiceNumber, inv); err != nil {
			logger.Warn("Failed to publish invoice.generated event: %v", err)
		}
	}()
}

// queueReceiptEmail queues the receipt email with the course name resolved
func (s *PaymentService) queueReceiptEmail(payment *models.Payment, txn *models.PaymentTransaction, invoicePath string) {
	go func() {
		var courseName string
		if err := db.DB.QueryRow("SELECT name FROM courses WHERE id = $1", payment.CourseID).Scan(&courseName); err != nil {
			courseName = "your course"
		}
		if err := svc.SendReceiptEmail(payment.Name, payment.Email, courseName, txn.Amount, txn.InvoiceNumber, invoicePath); err != nil {
			logger.Warn("Failed to queue receipt email for payment %d: %v", payment.ID, err)
		}
	}()
}

// ListPayments returns payment rows for the report table, optionally
// filtered by creation time
func (s *PaymentService) ListPayments(ctx context.Context, filters *utils.TimeFilterParams) ([]models.Payment, error) {
	query := `SELECT id, student_id, name, email, course_id,
		course_fee, received_amount, outstanding_amount,
		payment_option, plan_type, status, created_at, updated_at
	FROM payments WHERE 1=1`
	args := []interface{}{}

	if filters != nil && filters.CreatedAfter != nil {
		args = append(args, *filters.CreatedAfter)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filters != nil && filters.CreatedBefore != nil {
		args = append(args, *filters.CreatedBefore)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.E(errors.Internal, "error fetching payments", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		var paymentOption, planType sql.NullString
		if err := rows.Scan(&p.ID, &p.StudentID, &p.Name, &p.Email, &p.CourseID,
			&p.CourseFee, &p.ReceivedAmount, &p.OutstandingAmount,
			&paymentOption, &planType, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, errors.E(errors.Internal, "error scanning payment row", err)
		}
		p.PaymentOption = paymentOption.String
		p.PlanType = planType.String
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.E(errors.Internal, "error reading payment rows", err)
	}
	return payments, nil
}

func (s *PaymentService) loadSettings(ctx context.Context) (manualEnabled, installmentsEnabled bool, err error) {
	err = db.DB.QueryRowContext(ctx,
		"SELECT manual_payments_enabled, installments_enabled FROM settings ORDER BY id LIMIT 1",
	).Scan(&manualEnabled, &installmentsEnabled)
	if err == sql.ErrNoRows {
		// no settings row means no restrictions
		return true, true, nil
	}
	return manualEnabled, installmentsEnabled, err
}

func parsePaymentDate(raw string) (time.Time, error) {
	if raw == "" {
		return nowFunc(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, errors.NewInvalidParamsError("invalid payment_date format; use RFC3339 or YYYY-MM-DD")
}

func marshalNullable(v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case *models.OneTimeInstallmentsConfig:
		if val == nil {
			return nil, nil
		}
	case *models.MonthlySubscriptionState:
		if val == nil {
			return nil, nil
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
