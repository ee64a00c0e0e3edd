package services

import (
	"fmt"
	"time"

	"academy-dashboard/logger"
)

// SendEmail publishes an email event to Kafka for async processing.
// The consumer handles the actual SMTP delivery.
func SendEmail(to, subject, body string, attachment ...string) error {
	logger.Info("Queueing email. Recipient: %s, Subject: %s", to, subject)

	emailPayload := map[string]interface{}{
		"event":     "email.send",
		"recipient": to,
		"subject":   subject,
		"body":      body,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if len(attachment) > 0 {
		emailPayload["attachment"] = attachment[0]
	}

	if err := Publish("emails", fmt.Sprintf("email-%s", to), emailPayload); err != nil {
		logger.Error("Failed to queue email event: %v", err)
		return fmt.Errorf("failed to queue email: %w", err)
	}

	return nil
}

// SendReceiptEmail queues the payment receipt email, attaching the generated
// invoice PDF when available.
func SendReceiptEmail(studentName, studentEmail, courseName string, amount float64, invoiceNumber, invoicePath string) error {
	emailBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #1565C0; color: white; padding: 20px; text-align: center; border-radius: 5px; }
        .content { background-color: #f9f9f9; padding: 20px; margin-top: 20px; border-radius: 5px; }
        .payment-info { background-color: #e3f2fd; padding: 15px; margin: 15px 0; border-left: 4px solid #1565C0; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h2>Payment Received</h2></div>
        <div class="content">
            <p>Dear <strong>%s</strong>,</p>
            <p>We have recorded your payment. Thank you!</p>
            <div class="payment-info">
                <p><strong>Course:</strong> %s</p>
                <p><strong>Amount:</strong> %.2f</p>
                <p><strong>Invoice Number:</strong> %s</p>
            </div>
            <p>The invoice is attached for your records.</p>
            <p>Best regards,<br/>Academy Accounts Team</p>
        </div>
    </div>
</body>
</html>
	`, studentName, courseName, amount, invoiceNumber)

	subject := fmt.Sprintf("Payment receipt %s", invoiceNumber)

	if invoicePath != "" {
		return SendEmail(studentEmail, subject, emailBody, invoicePath)
	}
	return SendEmail(studentEmail, subject, emailBody)
}

// SendPaymentReminderEmail queues a reminder for an outstanding balance
func SendPaymentReminderEmail(studentName, studentEmail, courseName string, outstanding float64) error {
	emailBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #EF6C00; color: white; padding: 20px; text-align: center; border-radius: 5px; }
        .content { background-color: #f9f9f9; padding: 20px; margin-top: 20px; border-radius: 5px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h2>Payment Reminder</h2></div>
        <div class="content">
            <p>Dear <strong>%s</strong>,</p>
            <p>This is a reminder that an amount of <strong>%.2f</strong> is outstanding for <strong>%s</strong>.</p>
            <p>Please complete your payment at the earliest.</p>
            <p>Best regards,<br/>Academy Accounts Team</p>
        </div>
    </div>
</body>
</html>
	`, studentName, outstanding, courseName)

	subject := fmt.Sprintf("Payment reminder - %s", courseName)
	return SendEmail(studentEmail, subject, emailBody)
}
