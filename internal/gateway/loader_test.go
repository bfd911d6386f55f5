package gateway_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/Bluepen/wallet-topup/internal/gateway"
	"github.com/Bluepen/wallet-topup/internal/metrics"
	"github.com/Bluepen/wallet-topup/pkg/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const scriptURL = "https://checkout.gateway.test/v1/checkout.js"

func newLoader(client *mocks.HTTPClient) (*gateway.ScriptLoader, *metrics.Metrics) {
	m := metrics.NewMetrics(prometheus.NewRegistry())
	cfg := gateway.Config{ScriptURL: scriptURL, LoadTimeout: 5 * time.Second}

	return gateway.NewScriptLoader(cfg, client, m, zap.NewNop()), m
}

func scriptResponse() *http.Response {
	return mocks.JSONResponse(http.StatusOK, "window.Razorpay = function () {};")
}

func TestScriptLoader_EnsureLoaded(t *testing.T) {
	t.Run("loads once", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		loader, m := newLoader(mockClient)

		mockClient.On("Get", mock.Anything, scriptURL, mock.Anything).Return(scriptResponse(), nil).Once()

		assert.True(t, loader.EnsureLoaded(context.Background()))
		assert.True(t, loader.EnsureLoaded(context.Background()))

		script, ok := loader.Script()
		require.True(t, ok)
		assert.Contains(t, string(script), "Razorpay")
		mockClient.AssertNumberOfCalls(t, "Get", 1)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewayScriptLoads.WithLabelValues("fetched")))
	})

	t.Run("concurrent callers share one fetch", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		loader, _ := newLoader(mockClient)

		release := make(chan time.Time)
		mockClient.On("Get", mock.Anything, scriptURL, mock.Anything).
			WaitUntil(release).Return(scriptResponse(), nil).Once()

		const callers = 8
		results := make([]bool, callers)
		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = loader.EnsureLoaded(context.Background())
			}(i)
		}

		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		for i := range results {
			assert.True(t, results[i])
		}
		mockClient.AssertNumberOfCalls(t, "Get", 1)
	})

	t.Run("failure is not cached", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		loader, m := newLoader(mockClient)

		mockClient.On("Get", mock.Anything, scriptURL, mock.Anything).
			Return(mocks.JSONResponse(http.StatusServiceUnavailable, ""), nil).Once()
		mockClient.On("Get", mock.Anything, scriptURL, mock.Anything).
			Return(scriptResponse(), nil).Once()

		assert.False(t, loader.EnsureLoaded(context.Background()))
		_, ok := loader.Script()
		assert.False(t, ok)

		assert.True(t, loader.EnsureLoaded(context.Background()))
		mockClient.AssertNumberOfCalls(t, "Get", 2)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewayScriptLoads.WithLabelValues("failed")))
	})

	t.Run("network error", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		loader, _ := newLoader(mockClient)

		mockClient.On("Get", mock.Anything, scriptURL, mock.Anything).
			Return((*http.Response)(nil), errors.New("dial tcp: no route to host"))

		assert.False(t, loader.EnsureLoaded(context.Background()))
	})

	t.Run("empty script", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		loader, _ := newLoader(mockClient)

		mockClient.On("Get", mock.Anything, scriptURL, mock.Anything).
			Return(mocks.JSONResponse(http.StatusOK, ""), nil)

		assert.False(t, loader.EnsureLoaded(context.Background()))
	})

	t.Run("cancelled caller does not fail the fetch", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		loader, _ := newLoader(mockClient)

		release := make(chan time.Time)
		mockClient.On("Get", mock.Anything, scriptURL, mock.Anything).
			WaitUntil(release).Return(scriptResponse(), nil).Once()

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan bool)
		go func() { done <- loader.EnsureLoaded(ctx) }()

		time.Sleep(20 * time.Millisecond)
		cancel()
		assert.False(t, <-done)

		close(release)
		assert.True(t, loader.EnsureLoaded(context.Background()))
		mockClient.AssertNumberOfCalls(t, "Get", 1)
	})
}

func TestNewOptions(t *testing.T) {
	order := orderFixture()

	t.Run("builds widget options", func(t *testing.T) {
		opts, err := gateway.NewOptions("rzp_test_key", "Bluepen", "Add funds", "#3399cc", order,
			gateway.Prefill{Email: "a@b.test", Name: "Asha"})

		require.NoError(t, err)
		assert.Equal(t, "rzp_test_key", opts.Key)
		assert.Equal(t, int64(50000), opts.Amount)
		assert.Equal(t, "INR", opts.Currency)
		assert.Equal(t, "order_Nx1", opts.OrderID)
		assert.Equal(t, "a@b.test", opts.Prefill.Email)
		assert.Equal(t, "#3399cc", opts.Theme.Color)
	})

	t.Run("requires a public key", func(t *testing.T) {
		_, err := gateway.NewOptions("", "", "", "", order, gateway.Prefill{})

		assert.Error(t, err)
	})
}

func TestPaymentFailedError(t *testing.T) {
	err := &gateway.PaymentFailedError{Code: "BAD_REQUEST_ERROR", Description: "Payment declined by bank"}
	assert.Equal(t, "Payment declined by bank", err.Error())

	err = &gateway.PaymentFailedError{Reason: "payment_failed"}
	assert.Equal(t, "payment_failed", err.Error())
}
