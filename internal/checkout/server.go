package checkout

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/Bluepen/wallet-topup/internal/gateway"
	"github.com/Bluepen/wallet-topup/internal/metrics"
	"github.com/Bluepen/wallet-topup/internal/model"
	"github.com/Bluepen/wallet-topup/internal/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const serviceName = "walletctl-checkout"

var _ gateway.Bridge = (*Server)(nil)

// ScriptSource provides the checkout script bytes once loaded.
type ScriptSource interface {
	Script() ([]byte, bool)
}

// Opener shows a checkout URL to the customer, usually by launching a browser.
type Opener interface {
	Open(url string) error
}

type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error {
	return f(url)
}

// Server hosts checkout pages on a loopback address and turns the widget's
// callbacks into Bridge results.
type Server struct {
	app       *fiber.App
	config    Config
	scripts   ScriptSource
	opener    Opener
	validator validator.IXValidator
	metrics   *metrics.Metrics
	logger    *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*session
	baseURL  string
}

func NewServer(cfg Config, scripts ScriptSource, opener Opener, gatherer prometheus.Gatherer,
	v validator.IXValidator, m *metrics.Metrics, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(),
	})

	s := &Server{
		app:       app,
		config:    cfg,
		scripts:   scripts,
		opener:    opener,
		validator: v,
		metrics:   m,
		logger:    logger,
		sessions:  make(map[string]*session),
		baseURL:   "http://" + cfg.ListenAddr,
	}

	app.Use(metrics.HealthCheckMiddleware(serviceName))
	app.Use(metrics.HTTPMetricsMiddleware(m, logger))
	SetupRoutes(app, s, gatherer)

	return s
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) URL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.baseURL
}

func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("checkout listener: %w", err)
	}

	s.mu.Lock()
	s.baseURL = "http://" + ln.Addr().String()
	s.mu.Unlock()

	go func() {
		if err := s.app.Listener(ln); err != nil {
			s.logger.Error("Checkout server stopped", zap.Error(err))
		}
	}()

	s.logger.Info("Checkout server listening", zap.String("url", s.URL()))

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// Open presents the checkout for order and blocks until the customer pays,
// dismisses, the gateway reports a failure, or ctx ends. The session token
// travels in the URL fragment, so only whoever holds the opened URL can report
// a result.
func (s *Server) Open(ctx context.Context, order model.PaymentOrder, prefill gateway.Prefill) (model.GatewayResponse, error) {
	options, err := gateway.NewOptions(s.config.PublicKey, s.config.MerchantName, s.config.Description,
		s.config.ThemeColor, order, prefill)
	if err != nil {
		return model.GatewayResponse{}, err
	}

	sess := s.register(options)
	defer s.unregister(sess.id)

	url := s.URL() + sessionPath(sess.id) + "#" + sess.token
	s.logger.Info("Checkout opened",
		zap.String("orderID", order.OrderID),
		zap.String("sessionID", sess.id),
	)

	if err := s.opener.Open(url); err != nil {
		return model.GatewayResponse{}, fmt.Errorf("open checkout: %w", err)
	}

	select {
	case res := <-sess.result:
		return res.response, res.err
	case <-ctx.Done():
		if !sess.settle(result{err: gateway.ErrPaymentCancelled}) {
			// A callback got there first; its result is already buffered.
			res := <-sess.result
			return res.response, res.err
		}
		return model.GatewayResponse{}, fmt.Errorf("%w: %w", gateway.ErrPaymentCancelled, ctx.Err())
	}
}

func (s *Server) register(options gateway.Options) *session {
	sess := newSession(uuid.NewString(), uuid.NewString(), options)

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.metrics.CheckoutSessionsOpen.Inc()

	return sess
}

func (s *Server) unregister(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	s.metrics.CheckoutSessionsOpen.Dec()
}

func (s *Server) lookup(id string) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	return sess, ok
}

func sessionPath(id string) string {
	return "/checkout/" + id
}
