package service_test

import (
	"github.com/Bluepen/wallet-topup/internal/metrics"
	"github.com/Bluepen/wallet-topup/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func newMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.NewRegistry())
}

func decimalEq(v string) interface{} {
	want := decimal.RequireFromString(v)
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(want)
	})
}

var testOrder = model.PaymentOrder{
	OrderID:    "order_Nx1",
	Amount:     50000,
	Currency:   "INR",
	CreatedFor: decimal.NewFromInt(500),
}

var testResponse = model.GatewayResponse{
	OrderID:   "order_Nx1",
	PaymentID: "pay_Q9",
	Signature: "4f1c",
}
