package mocks

import (
	"context"

	"github.com/Bluepen/wallet-topup/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type OrderService struct {
	mock.Mock
}

func (o *OrderService) CreateOrder(ctx context.Context, amount decimal.Decimal) (model.PaymentOrder, error) {
	args := o.Called(ctx, amount)
	return args.Get(0).(model.PaymentOrder), args.Error(1)
}

type VerificationService struct {
	mock.Mock
}

func (v *VerificationService) Verify(ctx context.Context, response model.GatewayResponse) (decimal.Decimal, error) {
	args := v.Called(ctx, response)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
