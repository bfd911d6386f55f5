package walletapi

import "encoding/json"

// CreateOrderRequest carries the amount in major currency units as a JSON number.
type CreateOrderRequest struct {
	Amount json.Number `json:"amount"`
}

// VerifyPaymentRequest forwards the gateway's signed handoff unmodified.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}
