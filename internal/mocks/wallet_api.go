package mocks

import (
	"context"

	"github.com/Bluepen/wallet-topup/pkg/walletapi"
	"github.com/stretchr/testify/mock"
)

type WalletAPI struct {
	mock.Mock
}

func (w *WalletAPI) CreateOrder(ctx context.Context, request walletapi.CreateOrderRequest) (walletapi.OrderResponse, error) {
	args := w.Called(ctx, request)
	return args.Get(0).(walletapi.OrderResponse), args.Error(1)
}

func (w *WalletAPI) VerifyPayment(ctx context.Context, request walletapi.VerifyPaymentRequest) (walletapi.VerifyResponse, error) {
	args := w.Called(ctx, request)
	return args.Get(0).(walletapi.VerifyResponse), args.Error(1)
}

func (w *WalletAPI) GetWallet(ctx context.Context) (walletapi.WalletResponse, error) {
	args := w.Called(ctx)
	return args.Get(0).(walletapi.WalletResponse), args.Error(1)
}
