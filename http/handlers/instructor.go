package handlers

import (
	"academy-dashboard/http/response"
	services "academy-dashboard/http/services"
	"academy-dashboard/models"
	infra "academy-dashboard/services"
	"academy-dashboard/utils"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CreateInstructor onboards a single instructor
func CreateInstructor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var instructor models.Instructor
	if err := utils.DecodeJSONRequest(r, &instructor); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if err := services.CreateInstructor(r.Context(), &instructor); err != nil {
		response.WriteError(w, err)
		return
	}

	response.SuccessResponse(w, http.StatusCreated, "Instructor created successfully", instructor.ToResponse())
}

// GetInstructors lists all instructors
func GetInstructors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	instructors, err := services.ListInstructors(r.Context())
	if err != nil {
		response.WriteError(w, err)
		return
	}

	responses := make([]models.InstructorResponse, len(instructors))
	for i := range instructors {
		responses[i] = instructors[i].ToResponse()
	}

	response.SuccessResponse(w, http.StatusOK, fmt.Sprintf("Retrieved %d instructors", len(responses)), responses)
}

// UploadInstructors imports instructors from an uploaded Excel sheet
func UploadInstructors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Error parsing multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "No file uploaded; expected form field 'file'")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		response.ErrorResponse(w, http.StatusBadRequest, "Only Excel files (.xlsx, .xls) are supported")
		return
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("instructors_%d%s", time.Now().UnixNano(), ext))
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		response.ErrorResponse(w, http.StatusInternalServerError, "Error saving uploaded file")
		return
	}
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmpFile, file); err != nil {
		tmpFile.Close()
		response.ErrorResponse(w, http.StatusInternalServerError, "Error saving uploaded file")
		return
	}
	tmpFile.Close()

	instructors, err := infra.ParseInstructorSheet(tmpPath)
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Error reading Excel file: "+err.Error())
		return
	}
	if len(instructors) == 0 {
		response.ErrorResponse(w, http.StatusBadRequest, "No valid instructor rows found in file")
		return
	}

	result := services.ImportInstructors(r.Context(), instructors)
	response.SuccessResponse(w, http.StatusOK,
		fmt.Sprintf("Imported %d of %d instructors", result.Imported, result.Total), result)
}
