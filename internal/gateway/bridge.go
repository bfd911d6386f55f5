package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/Bluepen/wallet-topup/internal/model"
)

var ErrPaymentCancelled = errors.New("PAYMENT_CANCELLED")

// PaymentFailedError is the gateway's own account of a failed payment.
type PaymentFailedError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Step        string `json:"step"`
	Reason      string `json:"reason"`
}

func (e *PaymentFailedError) Error() string {
	switch {
	case e.Description != "":
		return e.Description
	case e.Reason != "":
		return e.Reason
	default:
		return "payment failed"
	}
}

type Loader interface {
	EnsureLoaded(ctx context.Context) bool
}

// Bridge opens the hosted checkout for one order and resolves exactly once.
type Bridge interface {
	Open(ctx context.Context, order model.PaymentOrder, prefill Prefill) (model.GatewayResponse, error)
}

type Prefill struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

type Theme struct {
	Color string `json:"color,omitempty"`
}

// Options is the configuration object handed to the checkout widget.
type Options struct {
	Key         string  `json:"key"`
	Amount      int64   `json:"amount"`
	Currency    string  `json:"currency"`
	OrderID     string  `json:"order_id"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Prefill     Prefill `json:"prefill"`
	Theme       Theme   `json:"theme"`
}

func NewOptions(publicKey, name, description, themeColor string, order model.PaymentOrder, prefill Prefill) (Options, error) {
	if publicKey == "" {
		return Options{}, errors.New("gateway public key is not configured")
	}
	if order.OrderID == "" || order.Amount <= 0 {
		return Options{}, fmt.Errorf("order %q is not payable", order.OrderID)
	}

	return Options{
		Key:         publicKey,
		Amount:      order.Amount,
		Currency:    order.Currency,
		OrderID:     order.OrderID,
		Name:        name,
		Description: description,
		Prefill:     prefill,
		Theme:       Theme{Color: themeColor},
	}, nil
}
