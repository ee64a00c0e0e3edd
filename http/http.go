package http

import (
	"academy-dashboard/http/handlers"
	"academy-dashboard/http/middleware"
	infra "academy-dashboard/services"
	"net/http"
)

// SetupRoutes configures all HTTP routes and middleware
func SetupRoutes(cache *infra.AcademyCache) {
	handlers.Init(cache)

	// Course Management APIs
	http.HandleFunc("/courses", middleware.EnableCORS(handlers.GetCourses))
	http.HandleFunc("/course", middleware.EnableCORS(handlers.GetCourseByID))
	http.HandleFunc("/create-course", middleware.EnableCORS(handlers.CreateCourse))
	http.HandleFunc("/update-course", middleware.EnableCORS(handlers.UpdateCourse))
	http.HandleFunc("/course-payment-details", middleware.EnableCORS(handlers.GetCoursePaymentDetails))
	http.HandleFunc("/cohorts", middleware.EnableCORS(handlers.GetCohorts))
	http.HandleFunc("/cohort-dates", middleware.EnableCORS(handlers.GetCohortDates))

	// Payment recording APIs
	http.HandleFunc("/payment-context", middleware.EnableCORS(handlers.GetPaymentContext))
	http.HandleFunc("/payments/manual", middleware.EnableCORS(handlers.RecordManualPayment))
	http.HandleFunc("/payments", middleware.EnableCORS(handlers.GetPayments))
	http.HandleFunc("/payments/export", middleware.EnableCORS(handlers.ExportPayments))

	// Gateway APIs
	http.HandleFunc("/initiate-payment", middleware.EnableCORS(handlers.InitiatePayment))
	http.HandleFunc("/verify-payment", middleware.EnableCORS(handlers.VerifyPayment))
	http.HandleFunc("/webhook/razorpay", infra.RazorpayWebhookHandler)

	// Instructor onboarding APIs
	http.HandleFunc("/instructors", middleware.EnableCORS(handlers.GetInstructors))
	http.HandleFunc("/create-instructor", middleware.EnableCORS(handlers.CreateInstructor))
	http.HandleFunc("/upload-instructors", middleware.EnableCORS(handlers.UploadInstructors))
}
