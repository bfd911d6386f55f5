package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Bluepen/wallet-topup/internal/constants"
	"github.com/Bluepen/wallet-topup/internal/metrics"
	"github.com/Bluepen/wallet-topup/internal/mocks"
	"github.com/Bluepen/wallet-topup/internal/model"
	"github.com/Bluepen/wallet-topup/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJob_StopWaitsForVerification(t *testing.T) {
	loader := &mocks.Loader{}
	orders := &mocks.OrderService{}
	bridge := &mocks.Bridge{}
	verifier := &mocks.VerificationService{}
	store := &mocks.WalletStore{}

	order := model.PaymentOrder{OrderID: "order_Nx1", Amount: 50000, Currency: "INR", CreatedFor: decimal.NewFromInt(500)}
	response := model.GatewayResponse{OrderID: "order_Nx1", PaymentID: "pay_Q9", Signature: "4f1c"}

	entered := make(chan struct{})
	release := make(chan struct{})
	store.On("Warm", mock.Anything).Return(false)
	store.On("Fetch", mock.Anything).Return(errors.New("offline"))
	loader.On("EnsureLoaded", mock.Anything).Return(true)
	orders.On("CreateOrder", mock.Anything, mock.Anything).Return(order, nil)
	bridge.On("Open", mock.Anything, order, mock.Anything).Return(response, nil)
	verifier.On("Verify", mock.Anything, response).Run(func(args mock.Arguments) {
		close(entered)
		<-release
		assert.NoError(t, args.Get(0).(context.Context).Err())
	}).Return(decimal.Decimal{}, service.NewServiceError(constants.ErrCodeVerification, errors.New("timeout")))

	topUp := service.NewTopUpService(loader, orders, bridge, verifier, store,
		metrics.NewMetrics(prometheus.NewRegistry()), zap.NewNop())
	var out bytes.Buffer
	runner := NewRunner(topUp, store, &out, zap.NewNop())

	codes := make(chan int, 1)
	running := startJob(func(ctx context.Context) int {
		return runner.Run(ctx, Command{Name: cmdTopUp, AddFunds: service.AddFundsCommand{Amount: decimal.NewFromInt(500)}})
	}, func(code int) {
		codes <- code
	})

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("verification never started")
	}

	stopped := make(chan error, 1)
	go func() { stopped <- running.Stop(context.Background()) }()

	select {
	case <-stopped:
		t.Fatal("stop returned while verification was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)

	require.NoError(t, <-stopped)
	assert.Equal(t, 4, <-codes)
	assert.Contains(t, out.String(), constants.ErrMsgVerification)
}

func TestJob_StopIsBounded(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	running := startJob(func(context.Context) int {
		<-release
		return 0
	}, func(int) {})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := running.Stop(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestJob_FinishReceivesExitCode(t *testing.T) {
	codes := make(chan int, 1)
	running := startJob(func(context.Context) int { return 3 }, func(code int) { codes <- code })

	require.NoError(t, running.Stop(context.Background()))
	assert.Equal(t, 3, <-codes)
}
