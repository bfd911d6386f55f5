package gateway_test

import (
	"github.com/Bluepen/wallet-topup/internal/model"
	"github.com/shopspring/decimal"
)

func orderFixture() model.PaymentOrder {
	return model.PaymentOrder{
		OrderID:    "order_Nx1",
		Amount:     50000,
		Currency:   "INR",
		CreatedFor: decimal.NewFromInt(500),
	}
}
