package services

import (
	"academy-dashboard/config"
	"academy-dashboard/db"
	"academy-dashboard/logger"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RazorpayWebhookPayload represents the structure of Razorpay webhook payload
type RazorpayWebhookPayload struct {
	ID        string                 `json:"id"`
	Event     string                 `json:"event"`
	CreatedAt int64                  `json:"created_at"`
	Contains  []string               `json:"contains"`
	Payload   map[string]interface{} `json:"payload"`
}

// VerifyWebhookSignature verifies the signature of the incoming webhook
func VerifyWebhookSignature(payload []byte, signature string) bool {
	webhookSecret := config.AppConfig.RazorpayWebhookSecret
	if webhookSecret == "" {
		return false
	}

	h := hmac.New(sha256.New, []byte(webhookSecret))
	h.Write(payload)
	expectedSignature := hex.EncodeToString(h.Sum(nil))

	// Constant-time comparison
	return hmac.Equal([]byte(expectedSignature), []byte(signature))
}

// RazorpayWebhookHandler handles incoming Razorpay webhooks. On a captured
// payment it marks the matching gateway order PAID.
func RazorpayWebhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(w).Encode(map[string]string{"error": "Method not allowed"})
		return
	}

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to read request body"})
		return
	}
	defer r.Body.Close()

	signature := r.Header.Get("X-Razorpay-Signature")
	if !VerifyWebhookSignature(bodyBytes, signature) {
		logger.Warn("Rejected webhook with invalid signature")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid signature"})
		return
	}

	var payload RazorpayWebhookPayload
	if err := json.Unmarshal(bodyBytes, &payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid payload format"})
		return
	}

	logger.Info("Webhook received: %s", payload.Event)

	switch payload.Event {
	case "payment.captured":
		if err := handlePaymentCaptured(payload); err != nil {
			logger.Error("Error handling payment.captured webhook: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Processing failed"})
			return
		}
	case "payment.failed":
		logger.Warn("Gateway reported a failed payment: %s", payload.ID)
	default:
		logger.Debug("Ignoring webhook event %s", payload.Event)
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func handlePaymentCaptured(payload RazorpayWebhookPayload) error {
	entity, ok := payload.Payload["payment"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("webhook payload missing payment entity")
	}
	inner, ok := entity["entity"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("webhook payload missing payment entity body")
	}

	orderID, _ := inner["order_id"].(string)
	gatewayPaymentID, _ := inner["id"].(string)
	if orderID == "" {
		return fmt.Errorf("webhook payment entity missing order_id")
	}

	result, err := db.DB.Exec(
		"UPDATE payments SET status = 'PAID', gateway_payment_id = $1, updated_at = CURRENT_TIMESTAMP WHERE order_id = $2",
		gatewayPaymentID, orderID)
	if err != nil {
		return fmt.Errorf("error updating payment from webhook: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("no payment found for order_id %s", orderID)
	}

	// Best-effort event publish
	go func() {
		evt := map[string]interface{}{
			"event":              "payment.captured",
			"order_id":           orderID,
			"gateway_payment_id": gatewayPaymentID,
			"ts":                 time.Now().UTC().Format(time.RFC3339),
		}
		if err := Publish("payments", fmt.Sprintf("order-%s", orderID), evt); err != nil {
			logger.Warn("Failed to publish payment.captured event: %v", err)
		}
	}()

	return nil
}
