package services

import (
	"academy-dashboard/models"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// BuildPaymentsReport renders the payments table view into an Excel workbook
func BuildPaymentsReport(payments []models.Payment) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Payments"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headers := []string{
		"ID", "Student", "Email", "Course ID", "Plan Type", "Payment Option",
		"Course Fee", "Received", "Outstanding", "Status", "Created At",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, p := range payments {
		values := []interface{}{
			p.ID, p.Name, p.Email, p.CourseID, p.PlanType, p.PaymentOption,
			p.CourseFee, p.ReceivedAmount, p.OutstandingAmount, p.Status,
			p.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	return f, nil
}

// ParseInstructorSheet reads an Excel file of instructors to onboard, with
// flexible column detection on the header row
func ParseInstructorSheet(filePath string) ([]models.Instructor, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheetList[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data in sheet")
	}

	colIndices := detectInstructorColumns(rows[0])

	var instructors []models.Instructor
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 {
			continue
		}

		name := extractField(row, colIndices["name"])
		email := extractField(row, colIndices["email"])
		phone := extractField(row, colIndices["phone"])
		specialization := extractField(row, colIndices["specialization"])
		ifsc := extractField(row, colIndices["ifsc"])
		upiID := extractField(row, colIndices["upi_id"])

		// Required fields
		if name == "" || email == "" || phone == "" {
			continue
		}

		instructors = append(instructors, models.Instructor{
			Name:           name,
			Email:          email,
			Phone:          phone,
			Specialization: specialization,
			IFSC:           strings.ToUpper(ifsc),
			UpiID:          upiID,
		})
	}
	return instructors, nil
}

// detectInstructorColumns finds column indices by matching header names
func detectInstructorColumns(headers []string) map[string]int {
	indices := map[string]int{
		"name":           -1,
		"email":          -1,
		"phone":          -1,
		"specialization": -1,
		"ifsc":           -1,
		"upi_id":         -1,
	}

	for i, header := range headers {
		lower := strings.ToLower(strings.TrimSpace(header))

		switch {
		case lower == "name" || lower == "instructor name" || lower == "full name":
			indices["name"] = i
		case lower == "email" || lower == "e-mail" || lower == "email address":
			indices["email"] = i
		case lower == "phone" || lower == "mobile" || lower == "phone number" || lower == "contact number":
			indices["phone"] = i
		case lower == "specialization" || lower == "subject" || lower == "expertise":
			indices["specialization"] = i
		case lower == "ifsc" || lower == "ifsc code":
			indices["ifsc"] = i
		case lower == "upi" || lower == "upi id" || lower == "upi_id":
			indices["upi_id"] = i
		}
	}

	return indices
}

// extractField safely extracts a field from a row
func extractField(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}
