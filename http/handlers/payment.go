package handlers

import (
	"academy-dashboard/http/response"
	services "academy-dashboard/http/services"
	infra "academy-dashboard/services"
	"academy-dashboard/utils"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// RecordManualPayment records an operator-entered payment against a payment
// record and returns the generated invoice number
func RecordManualPayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req services.ManualPaymentRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	result, err := paymentService.RecordManualPayment(r.Context(), req)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.SuccessResponse(w, http.StatusOK, "Payment recorded successfully", result)
}

// GetPaymentContext returns the payment plus the joined course/cohort
// lookups the recording dialog needs on open
func GetPaymentContext(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	paymentID, err := strconv.Atoi(r.URL.Query().Get("payment_id"))
	if err != nil || paymentID <= 0 {
		response.ErrorResponse(w, http.StatusBadRequest, "Valid payment_id is required")
		return
	}

	ctx, err := paymentService.GetPaymentContext(r.Context(), paymentID)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.SuccessResponse(w, http.StatusOK, "Payment context retrieved", ctx)
}

// GetPayments returns the payments report rows, optionally filtered by
// creation time
func GetPayments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	filters, err := utils.ParseTimeFilters(r)
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	payments, err := paymentService.ListPayments(r.Context(), filters)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	responses := make([]interface{}, len(payments))
	for i := range payments {
		responses[i] = payments[i].ToResponse()
	}

	response.SuccessResponse(w, http.StatusOK, fmt.Sprintf("Retrieved %d payments", len(payments)), responses)
}

// ExportPayments streams the payments report as an Excel workbook
func ExportPayments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	filters, err := utils.ParseTimeFilters(r)
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	payments, err := paymentService.ListPayments(r.Context(), filters)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	f, err := infra.BuildPaymentsReport(payments)
	if err != nil {
		response.ErrorResponse(w, http.StatusInternalServerError, "Error building report")
		return
	}

	filename := fmt.Sprintf("payments_%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(w); err != nil {
		// headers already sent, nothing more to do than log via response helper
		return
	}
}

// InitiatePayment creates a Razorpay order for a payment record
func InitiatePayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req services.InitiateGatewayRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid request")
		return
	}

	order, err := paymentService.CreateGatewayOrder(r.Context(), req)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.SuccessResponse(w, http.StatusOK, "Order created", order)
}

// VerifyPayment marks a gateway payment as captured
func VerifyPayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req services.VerifyGatewayRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid request")
		return
	}

	paymentID, err := paymentService.VerifyGatewayPayment(r.Context(), req)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.SuccessResponse(w, http.StatusOK, "Payment verified successfully", map[string]interface{}{
		"payment_id": paymentID,
		"order_id":   req.OrderID,
		"status":     utils.StatusPaid,
	})
}
