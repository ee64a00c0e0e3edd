package services

import (
	"fmt"
	"strconv"

	"academy-dashboard/config"
	"academy-dashboard/logger"

	"gopkg.in/gomail.v2"
)

// SendEmailDirect sends email directly via SMTP.
// Called by the Kafka consumer after receiving an email.send event.
func SendEmailDirect(to, subject, body string, attachment ...string) error {
	logger.Info("Sending email via SMTP - Recipient: %s", to)

	m := gomail.NewMessage()

	from := config.AppConfig.EmailFrom
	if from == "" {
		from = config.AppConfig.SMTPUser
	}
	if from == "" {
		return fmt.Errorf("email sender not configured (set EMAIL_FROM or SMTP_USER)")
	}

	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if len(attachment) > 0 {
		m.Attach(attachment[0])
	}

	port := 587
	if p := config.AppConfig.SMTPPort; p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	if config.AppConfig.SMTPUser == "" || config.AppConfig.SMTPPass == "" {
		return fmt.Errorf("smtp credentials not configured (set SMTP_USER and SMTP_PASS)")
	}

	d := gomail.NewDialer(config.AppConfig.SMTPHost, port, config.AppConfig.SMTPUser, config.AppConfig.SMTPPass)

	if err := d.DialAndSend(m); err != nil {
		logger.Error("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Info("Email sent to: %s", to)
	return nil
}

// ProcessEmailEvent is the Kafka consumer callback for email.send events
func ProcessEmailEvent(event map[string]interface{}) error {
	recipient, _ := event["recipient"].(string)
	subject, _ := event["subject"].(string)
	body, _ := event["body"].(string)

	if recipient == "" {
		return fmt.Errorf("email event missing recipient")
	}

	if attachment, ok := event["attachment"].(string); ok && attachment != "" {
		return SendEmailDirect(recipient, subject, body, attachment)
	}
	return SendEmailDirect(recipient, subject, body)
}
