package db

import (
	"academy-dashboard/config"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"
)

var DB *sql.DB

func InitDB() error {
	var err error
	connStr := config.GetDBConnString()

	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}

	// Test the connection
	err = DB.Ping()
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	// Create tables
	if err := createTables(); err != nil {
		return fmt.Errorf("error creating tables: %w", err)
	}

	return nil
}

func createTables() error {
	instructorTable := `
	CREATE TABLE IF NOT EXISTS instructors (
		id SERIAL PRIMARY KEY,
		name TEXT,
		email TEXT,
		phone TEXT,
		specialization TEXT,
		bank_account TEXT,
		ifsc TEXT,
		upi_id TEXT,
		status TEXT DEFAULT 'ONBOARDING',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	courseTable := `
	CREATE TABLE IF NOT EXISTS courses (
		id SERIAL PRIMARY KEY,
		name TEXT,
		description TEXT,
		course_type TEXT,
		category TEXT,
		payment_category TEXT,
		fee REAL DEFAULT 0,
		registration_fee REAL DEFAULT 0,
		duration TEXT,
		is_active INTEGER DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	cohortTable := `
	CREATE TABLE IF NOT EXISTS cohorts (
		id SERIAL PRIMARY KEY,
		course_id INTEGER,
		name TEXT,
		start_date TIMESTAMP,
		end_date TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

		CONSTRAINT fk_cohort_course
			FOREIGN KEY (course_id)
			REFERENCES courses(id)
			ON DELETE CASCADE
	);`

	paymentTable := `
	CREATE TABLE IF NOT EXISTS payments (
		id SERIAL PRIMARY KEY,
		student_id INTEGER,
		name TEXT,
		email TEXT,
		course_id INTEGER,
		cohort_id INTEGER,
		course_fee REAL DEFAULT 0,
		course_registration_fee REAL DEFAULT 0,
		student_registration_fee REAL DEFAULT 0,
		course_reg_fee_paid BOOLEAN DEFAULT FALSE,
		student_reg_fee_paid BOOLEAN DEFAULT FALSE,
		received_amount REAL DEFAULT 0,
		outstanding_amount REAL DEFAULT 0,
		payment_option TEXT,
		plan_type TEXT,
		monthly_fee REAL DEFAULT 0,
		discount_type TEXT,
		discount_value REAL DEFAULT 0,
		lock_in_months INTEGER DEFAULT 0,
		installments_config JSONB,
		monthly_subscription JSONB,
		reminder_enabled BOOLEAN DEFAULT FALSE,
		next_reminder_date TIMESTAMP,
		stop_reminders BOOLEAN DEFAULT FALSE,
		status TEXT DEFAULT 'PENDING',
		order_id TEXT,
		gateway_payment_id TEXT,
		razorpay_sign TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

		CONSTRAINT fk_payment_course
			FOREIGN KEY (course_id)
			REFERENCES courses(id)
			ON DELETE SET NULL
	);`

	transactionTable := `
	CREATE TABLE IF NOT EXISTS payment_transactions (
		id SERIAL PRIMARY KEY,
		payment_id INTEGER,
		transaction_id TEXT,
		amount REAL,
		payment_mode TEXT,
		payment_date TIMESTAMP,
		plan_type TEXT,
		payment_option TEXT,
		installment_number INTEGER,
		invoice_number TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

		CONSTRAINT fk_transaction_payment
			FOREIGN KEY (payment_id)
			REFERENCES payments(id)
			ON DELETE CASCADE
	);`

	settingsTable := `
	CREATE TABLE IF NOT EXISTS settings (
		id SERIAL PRIMARY KEY,
		manual_payments_enabled BOOLEAN DEFAULT TRUE,
		installments_enabled BOOLEAN DEFAULT TRUE,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	dlqTable := `
	CREATE TABLE IF NOT EXISTS dlq_messages (
		id SERIAL PRIMARY KEY,
		topic TEXT,
		key TEXT,
		value TEXT,
		error_message TEXT,
		status TEXT DEFAULT 'FAILED',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	tables := []struct {
		name string
		ddl  string
	}{
		{"instructors", instructorTable},
		{"courses", courseTable},
		{"cohorts", cohortTable},
		{"payments", paymentTable},
		{"payment_transactions", transactionTable},
		{"settings", settingsTable},
		{"dlq_messages", dlqTable},
	}

	for _, t := range tables {
		if _, err := DB.Exec(t.ddl); err != nil {
			return fmt.Errorf("error creating %s table: %w", t.name, err)
		}
	}

	// Seed the singleton settings row if missing
	if _, err := DB.Exec(`INSERT INTO settings (manual_payments_enabled, installments_enabled) SELECT TRUE, TRUE WHERE NOT EXISTS (SELECT 1 FROM settings)`); err != nil {
		log.Println("Warning: Error seeding settings row:", err)
	}

	return nil
}
