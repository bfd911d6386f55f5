package walletapi

import (
	"time"

	"github.com/shopspring/decimal"
)

type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

type OrderData struct {
	OrderID  string `json:"orderId" validate:"required"`
	Amount   int64  `json:"amount" validate:"gt=0"`
	Currency string `json:"currency" validate:"required,iso4217"`
}

type VerifyData struct {
	Balance decimal.NullDecimal `json:"balance"`
}

type WalletData struct {
	Balance      decimal.NullDecimal `json:"balance"`
	Currency     string              `json:"currency"`
	Transactions []Transaction       `json:"transactions"`
}

type Transaction struct {
	ID                  string          `json:"id"`
	Type                string          `json:"type"`
	Reason              string          `json:"reason"`
	Amount              decimal.Decimal `json:"amount"`
	BalanceAfter        decimal.Decimal `json:"balanceAfter"`
	Description         string          `json:"description,omitempty"`
	RelatedAssignmentID string          `json:"relatedAssignmentId,omitempty"`
	PaymentRef          string          `json:"paymentRef,omitempty"`
	Date                time.Time       `json:"date"`
}

type (
	OrderResponse  = Envelope[OrderData]
	VerifyResponse = Envelope[VerifyData]
	WalletResponse = Envelope[WalletData]
)
