package service

import (
	"context"

	"github.com/Bluepen/wallet-topup/internal/constants"
	"github.com/Bluepen/wallet-topup/internal/model"
	"github.com/Bluepen/wallet-topup/pkg/walletapi"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type VerificationService interface {
	Verify(ctx context.Context, response model.GatewayResponse) (decimal.Decimal, error)
}

type Verifier struct {
	api    walletapi.WalletAPI
	logger *zap.Logger
}

func NewVerificationService(api walletapi.WalletAPI, logger *zap.Logger) VerificationService {
	return &Verifier{api: api, logger: logger}
}

// Verify forwards the gateway response unmodified and returns the balance the
// wallet service reports after crediting it.
func (v *Verifier) Verify(ctx context.Context, response model.GatewayResponse) (decimal.Decimal, error) {
	resp, err := v.api.VerifyPayment(ctx, walletapi.VerifyPaymentRequest{
		RazorpayOrderID:   response.OrderID,
		RazorpayPaymentID: response.PaymentID,
		RazorpaySignature: response.Signature,
	})
	if err != nil {
		v.logger.Error("Payment verification failed",
			zap.String("orderID", response.OrderID),
			zap.String("paymentID", response.PaymentID),
			zap.Error(err),
		)
		return decimal.Decimal{}, NewServiceError(constants.ErrCodeVerification, err)
	}

	balance := resp.Data.Balance
	if !balance.Valid || balance.Decimal.IsNegative() {
		v.logger.Error("Verification returned an invalid balance",
			zap.String("orderID", response.OrderID),
			zap.String("paymentID", response.PaymentID),
			zap.Bool("present", balance.Valid),
		)
		return decimal.Decimal{}, NewServiceError(constants.ErrCodeVerification, ErrInvalidBalance)
	}

	v.logger.Info("Payment verified",
		zap.String("orderID", response.OrderID),
		zap.String("paymentID", response.PaymentID),
		zap.String("balance", balance.Decimal.String()),
	)

	return balance.Decimal, nil
}
