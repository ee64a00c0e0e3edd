package handlers

import (
	"academy-dashboard/http/response"
	services "academy-dashboard/http/services"
	"academy-dashboard/models"
	"academy-dashboard/utils"
	"fmt"
	"net/http"
	"strconv"
)

// GetCourses returns all courses
func GetCourses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	courses, err := services.ListCourses(r.Context())
	if err != nil {
		response.WriteError(w, err)
		return
	}

	responses := make([]models.CourseResponse, len(courses))
	for i := range courses {
		responses[i] = courses[i].ToResponse()
	}

	response.SuccessResponse(w, http.StatusOK, fmt.Sprintf("Retrieved %d courses", len(responses)), responses)
}

// GetCourseByID returns a single course: ?id=
func GetCourseByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		response.ErrorResponse(w, http.StatusBadRequest, "Valid course id is required")
		return
	}

	course, err := services.GetCourseByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.SuccessResponse(w, http.StatusOK, "Course retrieved", course.ToResponse())
}

// CreateCourse creates a new course
func CreateCourse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var course models.Course
	if err := utils.DecodeJSONRequest(r, &course); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if err := services.CreateCourse(r.Context(), &course); err != nil {
		response.WriteError(w, err)
		return
	}

	response.SuccessResponse(w, http.StatusCreated, "Course created successfully", course.ToResponse())
}

// UpdateCourse updates an existing course
func UpdateCourse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var course models.Course
	if err := utils.DecodeJSONRequest(r, &course); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if err := services.UpdateCourse(r.Context(), &course); err != nil {
		response.WriteError(w, err)
		return
	}

	response.SuccessResponse(w, http.StatusOK, "Course updated successfully", course.ToResponse())
}

// GetCoursePaymentDetails returns the fee lookup for a course: ?course_id=
func GetCoursePaymentDetails(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	courseID, err := strconv.Atoi(r.URL.Query().Get("course_id"))
	if err != nil || courseID <= 0 {
		response.ErrorResponse(w, http.StatusBadRequest, "Valid course_id is required")
		return
	}

	details, err := paymentService.FetchCoursePaymentDetails(r.Context(), courseID)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.SuccessResponse(w, http.StatusOK, "Course payment details retrieved", details)
}

// GetCohortDates returns the start/end dates of a cohort: ?cohort_id=
func GetCohortDates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	cohortID, err := strconv.Atoi(r.URL.Query().Get("cohort_id"))
	if err != nil || cohortID <= 0 {
		response.ErrorResponse(w, http.StatusBadRequest, "Valid cohort_id is required")
		return
	}

	dates, err := paymentService.FetchCohortDates(r.Context(), cohortID)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.SuccessResponse(w, http.StatusOK, "Cohort dates retrieved", dates)
}

// GetCohorts lists a course's cohorts: ?course_id=
func GetCohorts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	courseID, err := strconv.Atoi(r.URL.Query().Get("course_id"))
	if err != nil || courseID <= 0 {
		response.ErrorResponse(w, http.StatusBadRequest, "Valid course_id is required")
		return
	}

	cohorts, err := services.ListCohorts(r.Context(), courseID)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.SuccessResponse(w, http.StatusOK, fmt.Sprintf("Retrieved %d cohorts", len(cohorts)), cohorts)
}
