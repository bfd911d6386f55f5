package service_test

import (
	"context"
	"testing"

	"github.com/Bluepen/wallet-topup/internal/constants"
	"github.com/Bluepen/wallet-topup/internal/mocks"
	"github.com/Bluepen/wallet-topup/internal/service"
	"github.com/Bluepen/wallet-topup/pkg/walletapi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestVerifier_Verify(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	request := walletapi.VerifyPaymentRequest{
		RazorpayOrderID:   "order_Nx1",
		RazorpayPaymentID: "pay_Q9",
		RazorpaySignature: "4f1c",
	}

	verified := func(balance decimal.NullDecimal) walletapi.VerifyResponse {
		return walletapi.VerifyResponse{Success: true, Data: walletapi.VerifyData{Balance: balance}}
	}

	t.Run("returns server balance", func(t *testing.T) {
		api := &mocks.WalletAPI{}
		svc := service.NewVerificationService(api, logger)

		api.On("VerifyPayment", mock.Anything, request).
			Return(verified(decimal.NewNullDecimal(decimal.NewFromInt(1500))), nil)

		balance, err := svc.Verify(ctx, testResponse)

		require.NoError(t, err)
		assert.Equal(t, "1500", balance.String())
		api.AssertExpectations(t)
	})

	t.Run("rejected signature", func(t *testing.T) {
		api := &mocks.WalletAPI{}
		svc := service.NewVerificationService(api, logger)

		apiErr := &walletapi.APIError{StatusCode: 400, Message: "invalid signature", Err: walletapi.ErrValidationFailed}
		api.On("VerifyPayment", mock.Anything, request).Return(walletapi.VerifyResponse{}, apiErr)

		_, err := svc.Verify(ctx, testResponse)

		assert.Equal(t, constants.ErrCodeVerification, service.ErrorCode(err))
		assert.ErrorIs(t, err, walletapi.ErrValidationFailed)
		api.AssertNumberOfCalls(t, "VerifyPayment", 1)
	})

	t.Run("missing balance", func(t *testing.T) {
		api := &mocks.WalletAPI{}
		svc := service.NewVerificationService(api, logger)

		api.On("VerifyPayment", mock.Anything, request).Return(verified(decimal.NullDecimal{}), nil)

		_, err := svc.Verify(ctx, testResponse)

		assert.ErrorIs(t, err, service.ErrInvalidBalance)
		assert.Equal(t, constants.ErrCodeVerification, service.ErrorCode(err))
	})

	t.Run("negative balance", func(t *testing.T) {
		api := &mocks.WalletAPI{}
		svc := service.NewVerificationService(api, logger)

		api.On("VerifyPayment", mock.Anything, request).
			Return(verified(decimal.NewNullDecimal(decimal.NewFromInt(-5))), nil)

		_, err := svc.Verify(ctx, testResponse)

		assert.ErrorIs(t, err, service.ErrInvalidBalance)
	})
}
