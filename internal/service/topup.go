package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Bluepen/wallet-topup/internal/constants"
	"github.com/Bluepen/wallet-topup/internal/gateway"
	"github.com/Bluepen/wallet-topup/internal/metrics"
	"github.com/Bluepen/wallet-topup/internal/model"
	"github.com/Bluepen/wallet-topup/pkg/walletapi"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var minTopUpAmount = decimal.NewFromInt(1)

type TopUpService interface {
	OpenAddFundsFlow(ctx context.Context, cmd AddFundsCommand) (Settlement, error)
	State() FlowSnapshot
	Subscribe(observer func(FlowState))
}

// TopUp runs one add-funds attempt at a time:
// load gateway, create order, checkout, verify, adopt the verified balance.
type TopUp struct {
	loader   gateway.Loader
	orders   OrderService
	bridge   gateway.Bridge
	verifier VerificationService
	store    WalletStore
	metrics  *metrics.Metrics
	logger   *zap.Logger

	mu         sync.Mutex
	state      FlowState
	processing bool
	errMsg     string
	observers  []func(FlowState)
}

func NewTopUpService(loader gateway.Loader, orders OrderService, bridge gateway.Bridge,
	verifier VerificationService, store WalletStore, m *metrics.Metrics, logger *zap.Logger) TopUpService {
	return &TopUp{
		loader:   loader,
		orders:   orders,
		bridge:   bridge,
		verifier: verifier,
		store:    store,
		metrics:  m,
		logger:   logger,
		state:    Idle{},
	}
}

func (t *TopUp) State() FlowSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return FlowSnapshot{State: t.state, IsProcessing: t.processing, Error: t.errMsg}
}

// Subscribe registers an observer called after every state change, outside the lock.
// Observer panics are recovered and logged.
func (t *TopUp) Subscribe(observer func(FlowState)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.observers = append(t.observers, observer)
}

// OpenAddFundsFlow runs a full attempt. Invalid amounts and concurrent calls are
// rejected without touching state. A cancelled checkout settles with a nil error.
func (t *TopUp) OpenAddFundsFlow(ctx context.Context, cmd AddFundsCommand) (settlement Settlement, err error) {
	if cmd.Amount.LessThan(minTopUpAmount) {
		return Settlement{}, NewServiceError(constants.ErrCodeInvalidAmount, ErrInvalidAmount)
	}

	if !t.begin() {
		return Settlement{}, NewServiceError(constants.ErrCodeFlowInProgress, ErrFlowInProgress)
	}

	attemptID := uuid.NewString()
	logger := t.logger.With(zap.String("attemptID", attemptID))

	t.metrics.TopUpsInFlight.Inc()
	defer t.metrics.TopUpsInFlight.Dec()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Top-up attempt panicked", zap.Any("panic", r), zap.Stack("stack"))
			settlement, err = t.fail(attemptID, "", NewServiceError(constants.ErrCodeInternalError, fmt.Errorf("panic: %v", r)))
		}
	}()

	logger.Info("Top-up started", zap.String("amount", cmd.Amount.String()))

	return t.run(ctx, attemptID, cmd, logger)
}

func (t *TopUp) run(ctx context.Context, attemptID string, cmd AddFundsCommand, logger *zap.Logger) (Settlement, error) {
	t.transition(LoadingGateway{})
	start := time.Now()
	loaded := t.loader.EnsureLoaded(ctx)
	t.observeStage("load_gateway", start, loaded)
	if !loaded {
		return t.fail(attemptID, "", NewServiceError(constants.ErrCodeGatewayUnavailable, ErrGatewayUnavailable))
	}

	// Past this point money may move, so remote calls ignore caller cancellation.
	remote := walletapi.WithRequestID(context.WithoutCancel(ctx), attemptID)

	t.transition(CreatingOrder{Amount: cmd.Amount})
	start = time.Now()
	order, err := t.orders.CreateOrder(remote, cmd.Amount)
	t.observeStage("create_order", start, err == nil)
	if err != nil {
		return t.fail(attemptID, "", ensureCode(err, constants.ErrCodeOrderCreation))
	}

	logger = logger.With(zap.String("orderID", order.OrderID))

	t.transition(AwaitingGatewayResult{Order: order})
	start = time.Now()
	response, err := t.bridge.Open(ctx, order, gateway.Prefill{Email: cmd.PrefillEmail, Name: cmd.PrefillName})
	t.observeStage("checkout", start, err == nil)
	if err != nil {
		if errors.Is(err, gateway.ErrPaymentCancelled) {
			logger.Info("Checkout dismissed")
			return t.cancel(attemptID, order)
		}

		logger.Warn("Checkout failed", zap.Error(err))
		return t.fail(attemptID, order.OrderID, NewServiceError(constants.ErrCodePaymentFailed, err))
	}

	t.transition(Verifying{Order: order, Response: response})
	start = time.Now()
	balance, err := t.verifier.Verify(remote, response)
	t.observeStage("verify", start, err == nil)
	if err != nil {
		logger.Error("Payment captured by gateway but not confirmed",
			zap.String("paymentID", response.PaymentID),
			zap.Error(err),
		)
		return t.fail(attemptID, order.OrderID, ensureCode(err, constants.ErrCodeVerification))
	}

	t.store.ApplyConfirmedBalance(balance)
	t.store.Refresh(remote)

	logger.Info("Top-up succeeded",
		zap.String("paymentID", response.PaymentID),
		zap.String("balance", balance.String()),
	)

	settlement := Settlement{
		AttemptID: attemptID,
		Outcome:   OutcomeSucceeded,
		OrderID:   order.OrderID,
		PaymentID: response.PaymentID,
		Balance:   balance,
	}
	t.settle(settlement, "")

	return settlement, nil
}

func (t *TopUp) begin() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.processing {
		return false
	}

	t.processing = true
	t.errMsg = ""

	return true
}

func (t *TopUp) cancel(attemptID string, order model.PaymentOrder) (Settlement, error) {
	settlement := Settlement{
		AttemptID: attemptID,
		Outcome:   OutcomeCancelled,
		OrderID:   order.OrderID,
		Message:   constants.ErrMsgPaymentCancelled,
	}
	t.settle(settlement, "")

	return settlement, nil
}

func (t *TopUp) fail(attemptID, orderID string, err error) (Settlement, error) {
	message := userMessage(err)
	settlement := Settlement{
		AttemptID: attemptID,
		Outcome:   OutcomeFailed,
		OrderID:   orderID,
		Message:   message,
	}
	t.settle(settlement, message)

	return settlement, err
}

func (t *TopUp) settle(settlement Settlement, errMsg string) {
	t.mu.Lock()
	t.state = Settled{Outcome: settlement.Outcome, Balance: settlement.Balance, Message: settlement.Message}
	t.processing = false
	t.errMsg = errMsg
	state, observers := t.state, slices.Clone(t.observers)
	t.mu.Unlock()

	t.metrics.RecordTopUpOutcome(settlement.Outcome.String())
	t.notify(observers, state)
}

func (t *TopUp) transition(state FlowState) {
	t.mu.Lock()
	t.state = state
	observers := slices.Clone(t.observers)
	t.mu.Unlock()

	t.notify(observers, state)
}

func (t *TopUp) observeStage(stage string, start time.Time, ok bool) {
	status := "ok"
	if !ok {
		status = "failed"
	}
	t.metrics.RecordStage(stage, status, time.Since(start))
}

// notify runs each observer in isolation. A panicking observer is logged and
// never reaches the attempt.
func (t *TopUp) notify(observers []func(FlowState), state FlowState) {
	for _, observer := range observers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.logger.Error("Flow observer panicked",
						zap.String("phase", string(state.Phase())),
						zap.Any("panic", r),
					)
				}
			}()
			observer(state)
		}()
	}
}

// userMessage is the text shown for a failed attempt. Verification failures
// never suggest the money is gone.
func userMessage(err error) string {
	switch ErrorCode(err) {
	case constants.ErrCodeVerification:
		return constants.ErrMsgVerification
	case constants.ErrCodeGatewayUnavailable:
		return constants.ErrMsgGatewayUnavailable
	case constants.ErrCodeInternalError:
		return constants.ErrMsgInternalError
	}

	if msg := err.Error(); msg != "" {
		return msg
	}

	return constants.GetErrorMessage(ErrorCode(err))
}
