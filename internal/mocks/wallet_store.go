package mocks

import (
	"context"

	"github.com/Bluepen/wallet-topup/internal/model"
	"github.com/Bluepen/wallet-topup/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type WalletStore struct {
	mock.Mock
}

func (w *WalletStore) Fetch(ctx context.Context) error {
	args := w.Called(ctx)
	return args.Error(0)
}

func (w *WalletStore) Refresh(ctx context.Context) <-chan error {
	args := w.Called(ctx)
	return args.Get(0).(<-chan error)
}

func (w *WalletStore) ApplyConfirmedBalance(balance decimal.Decimal) {
	w.Called(balance)
}

func (w *WalletStore) Warm(ctx context.Context) bool {
	args := w.Called(ctx)
	return args.Bool(0)
}

func (w *WalletStore) State() service.StoreState {
	args := w.Called()
	return args.Get(0).(service.StoreState)
}

func (w *WalletStore) Transactions(filter service.TransactionFilter) []model.WalletTransaction {
	args := w.Called(filter)
	return args.Get(0).([]model.WalletTransaction)
}

// Done returns an already-finished refresh result.
func Done(err error) <-chan error {
	ch := make(chan error, 1)
	ch <- err
	close(ch)
	return ch
}
