package services

import (
	"academy-dashboard/config"
	"academy-dashboard/db"
	"academy-dashboard/errors"
	"academy-dashboard/logger"
	"academy-dashboard/models"
	"academy-dashboard/utils"
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/razorpay/razorpay-go"

	svc "academy-dashboard/services"
)

// InitiateGatewayRequest asks for a Razorpay order against a payment record
type InitiateGatewayRequest struct {
	PaymentID int     `json:"payment_id"`
	Amount    float64 `json:"amount"`
}

// VerifyGatewayRequest carries the gateway callback fields
type VerifyGatewayRequest struct {
	OrderID      string `json:"order_id"`
	PaymentID    string `json:"payment_id"`
	RazorpaySign string `json:"razorpay_signature"`
}

// CreateGatewayOrder validates the request and creates a Razorpay order for
// the outstanding balance
func (s *PaymentService) CreateGatewayOrder(ctx context.Context, req InitiateGatewayRequest) (*models.RazorpayOrder, error) {
	if req.Amount <= 0 {
		return nil, errors.NewInvalidParamsError("invalid amount: must be greater than 0")
	}

	payment, err := s.LoadPayment(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}

	keyID := config.AppConfig.RazorpayKeyID
	keySecret := config.AppConfig.RazorpayKeySecret
	if keyID == "" || keySecret == "" {
		return nil, errors.NewInternalServerError("razorpay credentials not configured")
	}

	client := razorpay.NewClient(keyID, keySecret)

	receipt := fmt.Sprintf("rcpt_%d_%d", payment.StudentID, payment.ID)
	data := map[string]interface{}{
		"amount":   int(req.Amount * 100), // Convert to paise
		"currency": "INR",
		"receipt":  receipt,
	}

	resp, err := client.Order.Create(data, nil)
	if err != nil {
		return nil, errors.E(errors.Internal, "error creating razorpay order", err)
	}

	orderID, ok := resp["id"].(string)
	if !ok {
		return nil, errors.NewInternalServerError("razorpay order response missing id")
	}

	_, err = db.DB.ExecContext(ctx,
		"UPDATE payments SET order_id = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		orderID, payment.ID)
	if err != nil {
		return nil, errors.E(errors.Internal, "error saving gateway order", err)
	}

	go func() {
		evt := map[string]interface{}{
			"event":      "payment.initiated",
			"payment_id": payment.ID,
			"student_id": payment.StudentID,
			"order_id":   orderID,
			"amount":     req.Amount,
			"currency":   "INR",
			"status":     utils.StatusPending,
			"ts":         time.Now().UTC().Format(time.RFC3339),
		}
		if err := svc.Publish("payments", fmt.Sprintf("payment-%d", payment.ID), evt); err != nil {
			logger.Warn("Failed to publish payment.initiated event: %v", err)
		}
	}()

	return &models.RazorpayOrder{
		OrderID:  orderID,
		Amount:   req.Amount,
		Currency: "INR",
		Receipt:  receipt,
	}, nil
}

// VerifyGatewayPayment marks the payment backing an order as PAID after the
// gateway confirms capture
func (s *PaymentService) VerifyGatewayPayment(ctx context.Context, req VerifyGatewayRequest) (int, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.E(errors.Internal, "error starting transaction", err)
	}
	defer tx.Rollback()

	var paymentID int
	err = tx.QueryRowContext(ctx, "SELECT id FROM payments WHERE order_id = $1", req.OrderID).Scan(&paymentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, errors.NewNotFoundError(fmt.Sprintf("payment not found for order_id: %s", req.OrderID))
		}
		return 0, errors.E(errors.Internal, "error retrieving payment", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE payments SET status = $1, gateway_payment_id = $2, razorpay_sign = $3, updated_at = CURRENT_TIMESTAMP WHERE order_id = $4",
		utils.StatusPaid, req.PaymentID, req.RazorpaySign, req.OrderID)
	if err != nil {
		return 0, errors.E(errors.Internal, "error updating payment", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.E(errors.Internal, "error committing transaction", err)
	}

	go func() {
		evt := map[string]interface{}{
			"event":      "payment.verified",
			"payment_id": paymentID,
			"order_id":   req.OrderID,
			"gateway_id": req.PaymentID,
			"status":     utils.StatusPaid,
			"ts":         time.Now().UTC().Format(time.RFC3339),
		}
		if err := svc.Publish("payments", fmt.Sprintf("payment-%d", paymentID), evt); err != nil {
			logger.Warn("Failed to publish payment.verified event: %v", err)
		}
	}()

	return paymentID, nil
}
