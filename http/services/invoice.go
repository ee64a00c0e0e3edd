package services

import (
	"academy-dashboard/config"
	"academy-dashboard/models"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// GenerateInvoicePDF renders the invoice for a recorded payment and writes
// it under the configured invoice directory, returning the file path.
func GenerateInvoicePDF(invoiceNumber string, payment *models.Payment, txn *models.PaymentTransaction) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Payment Invoice")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(40, 10, fmt.Sprintf("Invoice Number: %s", invoiceNumber))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Date: %s", txn.PaymentDate.Format("02 Jan 2006")))
	pdf.Ln(12)

	pdf.Cell(40, 10, fmt.Sprintf("Billed to: %s", payment.Name))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Email: %s", payment.Email))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Payment Details")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(40, 10, fmt.Sprintf("Plan: %s (%s)", txn.PlanType, txn.PaymentOption))
	pdf.Ln(8)
	if txn.InstallmentNumber != nil {
		pdf.Cell(40, 10, fmt.Sprintf("Installment: %d", *txn.InstallmentNumber))
		pdf.Ln(8)
	}
	pdf.Cell(40, 10, fmt.Sprintf("Amount Received: %.2f", txn.Amount))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Total Received: %.2f", payment.ReceivedAmount))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Outstanding: %.2f", payment.OutstandingAmount))
	pdf.Ln(12)

	pdf.Cell(40, 10, "Thank you for your payment.")
	pdf.Ln(8)
	pdf.Cell(40, 10, "Academy Accounts Team")

	dir := config.AppConfig.InvoiceDir
	if dir == "" {
		dir = "invoices"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating invoice directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.pdf", invoiceNumber))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("error generating invoice PDF: %w", err)
	}

	return path, nil
}
