package walletapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Bluepen/wallet-topup/pkg/httpclient"
)

const (
	OrdersEndpoint = "/api/wallet/orders"
	VerifyEndpoint = "/api/wallet/verify"
	WalletEndpoint = "/api/wallet"
)

const RequestIDHeader = "X-Request-ID"

type WalletAPI interface {
	CreateOrder(ctx context.Context, request CreateOrderRequest) (OrderResponse, error)
	VerifyPayment(ctx context.Context, request VerifyPaymentRequest) (VerifyResponse, error)
	GetWallet(ctx context.Context) (WalletResponse, error)
}

// Observer is told about every finished request. status is the HTTP code or "error".
type Observer func(endpoint, status string, duration time.Duration)

type Option func(*walletAPI)

func WithObserver(observer Observer) Option {
	return func(w *walletAPI) {
		w.observer = observer
	}
}

type requestIDKey struct{}

// WithRequestID tags outgoing requests made with ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type walletAPI struct {
	client   httpclient.HTTPClient
	config   Config
	observer Observer
}

func NewWalletAPI(cfg Config, client httpclient.HTTPClient, opts ...Option) WalletAPI {
	w := &walletAPI{config: cfg, client: client}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

func (w *walletAPI) CreateOrder(ctx context.Context, request CreateOrderRequest) (OrderResponse, error) {
	var response OrderResponse
	if err := w.post(ctx, OrdersEndpoint, request, &response); err != nil {
		return OrderResponse{}, err
	}

	return response, nil
}

func (w *walletAPI) VerifyPayment(ctx context.Context, request VerifyPaymentRequest) (VerifyResponse, error) {
	var response VerifyResponse
	if err := w.post(ctx, VerifyEndpoint, request, &response); err != nil {
		return VerifyResponse{}, err
	}

	return response, nil
}

// GetWallet is the only idempotent call, so it alone is retried on timeouts and 5xx.
func (w *walletAPI) GetWallet(ctx context.Context) (WalletResponse, error) {
	var lastErr error
	for attempt := 0; attempt <= w.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return WalletResponse{}, lastErr
			case <-time.After(time.Duration(attempt) * w.config.RetryBackoff):
			}
		}

		start := time.Now()
		resp, err := w.client.Get(ctx, w.config.BaseURL+WalletEndpoint, w.headers(ctx, false))

		var response WalletResponse
		lastErr = w.handle(WalletEndpoint, start, resp, err, &response)
		if lastErr == nil {
			return response, nil
		}

		if !isRetryable(lastErr) {
			break
		}
	}

	return WalletResponse{}, lastErr
}

func (w *walletAPI) post(ctx context.Context, endpoint string, request, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(request); err != nil {
		return fmt.Errorf("encoding error: %w", err)
	}

	start := time.Now()
	resp, err := w.client.Post(ctx, w.config.BaseURL+endpoint, &buf, w.headers(ctx, true))

	return w.handle(endpoint, start, resp, err, out)
}

func (w *walletAPI) handle(endpoint string, start time.Time, resp *http.Response, err error, out any) error {
	if err != nil {
		w.observe(endpoint, "error", start)
		return mapTransportError(err)
	}

	defer resp.Body.Close()

	w.observe(endpoint, strconv.Itoa(resp.StatusCode), start)

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding error: %w", err)
		}

		return nil
	}

	return newAPIError(resp)
}

func (w *walletAPI) headers(ctx context.Context, withBody bool) map[string]string {
	headers := map[string]string{
		"Accept": "application/json",
	}
	if withBody {
		headers["Content-Type"] = "application/json"
	}
	if w.config.SessionToken != "" && w.config.SessionCookie == "" {
		headers["Authorization"] = "Bearer " + w.config.SessionToken
	}
	if id := requestID(ctx); id != "" {
		headers[RequestIDHeader] = id
	}

	return headers
}

func (w *walletAPI) observe(endpoint, status string, start time.Time) {
	if w.observer != nil {
		w.observer(endpoint, status, time.Since(start))
	}
}
