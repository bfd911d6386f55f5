package service

import (
	"github.com/Bluepen/wallet-topup/internal/model"
	"github.com/shopspring/decimal"
)

type Outcome int

const (
	OutcomeSucceeded Outcome = iota + 1
	OutcomeCancelled
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type Settlement struct {
	AttemptID string
	Outcome   Outcome
	OrderID   string
	PaymentID string
	Balance   decimal.Decimal
	Message   string
}

// FlowSnapshot is what a UI renders. Error is empty when there is nothing to show.
type FlowSnapshot struct {
	State        FlowState
	IsProcessing bool
	Error        string
}

type StoreState struct {
	Snapshot  model.WalletSnapshot
	Loaded    bool
	IsLoading bool
	Error     string
}
