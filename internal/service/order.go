package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Bluepen/wallet-topup/internal/constants"
	"github.com/Bluepen/wallet-topup/internal/model"
	"github.com/Bluepen/wallet-topup/internal/validator"
	"github.com/Bluepen/wallet-topup/pkg/walletapi"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderService interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal) (model.PaymentOrder, error)
}

type Orders struct {
	api       walletapi.WalletAPI
	validator validator.IXValidator
	logger    *zap.Logger
}

func NewOrderService(api walletapi.WalletAPI, v validator.IXValidator, logger *zap.Logger) OrderService {
	return &Orders{api: api, validator: v, logger: logger}
}

// CreateOrder asks the wallet service to mint a gateway order for amount in
// major units. It is never retried.
func (o *Orders) CreateOrder(ctx context.Context, amount decimal.Decimal) (model.PaymentOrder, error) {
	resp, err := o.api.CreateOrder(ctx, walletapi.CreateOrderRequest{Amount: json.Number(amount.String())})
	if err != nil {
		o.logger.Error("Failed to create payment order",
			zap.String("amount", amount.String()),
			zap.Error(err),
		)
		return model.PaymentOrder{}, NewServiceError(constants.ErrCodeOrderCreation, remoteCause(err, constants.ErrMsgOrderCreation))
	}

	data := resp.Data
	if errs := o.validator.Validate(data); len(errs) > 0 {
		o.logger.Error("Wallet service returned an invalid order",
			zap.String("orderID", data.OrderID),
			zap.String("fields", validator.Message(errs, "%s (%s)")),
		)
		return model.PaymentOrder{}, NewServiceError(constants.ErrCodeOrderCreation, ErrInvalidOrder)
	}

	expected, err := model.MinorUnits(amount, data.Currency)
	if err != nil || expected != data.Amount {
		o.logger.Error("Order amount mismatch",
			zap.String("orderID", data.OrderID),
			zap.String("requested", amount.String()),
			zap.Int64("orderAmount", data.Amount),
			zap.String("currency", data.Currency),
		)
		return model.PaymentOrder{}, NewServiceError(constants.ErrCodeOrderCreation, ErrOrderAmountMismatch)
	}

	o.logger.Info("Payment order created",
		zap.String("orderID", data.OrderID),
		zap.Int64("amount", data.Amount),
		zap.String("currency", data.Currency),
	)

	return model.PaymentOrder{
		OrderID:    data.OrderID,
		Amount:     data.Amount,
		Currency:   data.Currency,
		CreatedFor: amount,
	}, nil
}

// remoteCause keeps a server-provided message verbatim and prefixes anything else.
func remoteCause(err error, fallback string) error {
	var apiErr *walletapi.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr
	}

	return fmt.Errorf("%s: %w", fallback, err)
}
