package service

import (
	"github.com/Bluepen/wallet-topup/internal/model"
	"github.com/shopspring/decimal"
)

type AddFundsCommand struct {
	Amount       decimal.Decimal
	PrefillEmail string
	PrefillName  string
}

// TransactionFilter narrows the history. Zero values match everything.
type TransactionFilter struct {
	Type   model.TransactionType
	Reason model.TransactionReason
	Limit  int
}
