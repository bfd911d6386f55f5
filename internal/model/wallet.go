package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

type TransactionReason string

const (
	ReasonPayment         TransactionReason = "payment"
	ReasonRefund          TransactionReason = "refund"
	ReasonReferralBonus   TransactionReason = "referral_bonus"
	ReasonCouponDiscount  TransactionReason = "coupon_discount"
	ReasonWalletTopUp     TransactionReason = "wallet_topup"
	ReasonAdminAdjustment TransactionReason = "admin_adjustment"
)

func (r TransactionReason) Valid() bool {
	switch r {
	case ReasonPayment, ReasonRefund, ReasonReferralBonus, ReasonCouponDiscount,
		ReasonWalletTopUp, ReasonAdminAdjustment:
		return true
	}

	return false
}

// WalletBalance is always a server value in major units.
type WalletBalance struct {
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

type WalletTransaction struct {
	ID                  string            `json:"id"`
	Type                TransactionType   `json:"type"`
	Reason              TransactionReason `json:"reason"`
	Amount              decimal.Decimal   `json:"amount"`
	BalanceAfter        decimal.Decimal   `json:"balanceAfter"`
	Description         string            `json:"description,omitempty"`
	RelatedAssignmentID string            `json:"relatedAssignmentId,omitempty"`
	PaymentRef          string            `json:"paymentRef,omitempty"`
	Date                time.Time         `json:"date"`
}

type WalletSnapshot struct {
	WalletBalance
	Transactions []WalletTransaction `json:"transactions"`
	FetchedAt    time.Time           `json:"fetchedAt"`
	// Stale marks a snapshot restored from cache and not yet confirmed by the server.
	Stale bool `json:"-"`
}

// PaymentOrder lives only for the duration of one top-up attempt.
type PaymentOrder struct {
	OrderID    string
	Amount     int64
	Currency   string
	CreatedFor decimal.Decimal
}

// GatewayResponse is the signed handoff token returned by checkout.
type GatewayResponse struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
}
