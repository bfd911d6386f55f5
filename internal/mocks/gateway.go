package mocks

import (
	"context"

	"github.com/Bluepen/wallet-topup/internal/gateway"
	"github.com/Bluepen/wallet-topup/internal/model"
	"github.com/stretchr/testify/mock"
)

type Loader struct {
	mock.Mock
}

func (l *Loader) EnsureLoaded(ctx context.Context) bool {
	args := l.Called(ctx)
	return args.Bool(0)
}

type Bridge struct {
	mock.Mock
}

func (b *Bridge) Open(ctx context.Context, order model.PaymentOrder, prefill gateway.Prefill) (model.GatewayResponse, error) {
	args := b.Called(ctx, order, prefill)
	return args.Get(0).(model.GatewayResponse), args.Error(1)
}
