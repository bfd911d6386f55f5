package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Bluepen/wallet-topup/internal/cache"
	"github.com/Bluepen/wallet-topup/internal/checkout"
	"github.com/Bluepen/wallet-topup/internal/config"
	"github.com/Bluepen/wallet-topup/internal/constants"
	"github.com/Bluepen/wallet-topup/internal/gateway"
	"github.com/Bluepen/wallet-topup/internal/metrics"
	"github.com/Bluepen/wallet-topup/internal/service"
	"github.com/Bluepen/wallet-topup/internal/validator"
	"github.com/Bluepen/wallet-topup/pkg/httpclient"
	"github.com/Bluepen/wallet-topup/pkg/walletapi"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
)

// stopTimeout bounds how long an interrupted top-up may keep its last request running.
const stopTimeout = time.Minute

func main() {
	cmd, err := parseCommand(os.Args[1:], validator.NewXValidator(nil), os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(constants.GetExitCode(constants.ErrCodeInvalidArguments))
	}

	app := fx.New(
		fx.Supply(cmd),
		fx.StopTimeout(stopTimeout),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		fx.Provide(
			config.Load,
			NewLogger,
			metrics.NewRegistry,
			NewMetrics,
			validator.NewXValidator,
			NewHTTPClient,
			NewWalletAPI,
			NewScriptLoader,
			NewCheckoutServer,
			NewSnapshotCache,

			service.NewOrderService,
			service.NewVerificationService,
			service.NewWalletStore,
			service.NewTopUpService,
			NewCommandRunner,
		),
		fx.Invoke(runCommand),
	)

	if err := app.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, config.ErrConfiguration) {
			os.Exit(constants.GetExitCode(constants.ErrCodeConfiguration))
		}
		os.Exit(constants.GetExitCode(constants.ErrCodeInternalError))
	}

	app.Run()
}

func runCommand(cmd Command, runner *Runner, server *checkout.Server, snapshots cache.SnapshotCache,
	logger *zap.Logger, shutdowner fx.Shutdowner, lc fx.Lifecycle,
) {
	var running *job
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cmd.Name == cmdTopUp {
				if err := server.Start(); err != nil {
					logger.Error("Failed to start checkout server", zap.Error(err))
					return err
				}
			}

			running = startJob(func(ctx context.Context) int {
				return runner.Run(ctx, cmd)
			}, func(code int) {
				if err := shutdowner.Shutdown(fx.ExitCode(code)); err != nil {
					logger.Error("Shutdown failed", zap.Error(err))
				}
			})

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if running != nil {
				if err := running.Stop(ctx); err != nil {
					logger.Error("Stopped before the command finished", zap.Error(err))
				}
			}

			if cmd.Name == cmdTopUp {
				if err := server.Shutdown(ctx); err != nil {
					logger.Warn("Checkout server shutdown failed", zap.Error(err))
				}
			}

			return snapshots.Close()
		},
	})
}

func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Log.Development {
		zcfg = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zcfg.Level = level
	zcfg.OutputPaths = []string{"stderr"}

	return zcfg.Build()
}

func NewMetrics(reg *prometheus.Registry) *metrics.Metrics {
	m := metrics.NewMetrics(reg)
	m.SetServiceInfo(version, commit)

	return m
}

// NewHTTPClient is the client for the wallet service. It carries the session
// cookie when one is configured.
func NewHTTPClient(cfg *config.Config) (httpclient.HTTPClient, error) {
	jar, err := httpclient.NewSessionJar(cfg.API.BaseURL, cfg.API.SessionCookie, cfg.API.SessionToken)
	if err != nil {
		return nil, err
	}

	return httpclient.NewHTTPClient(cfg.API.Timeout,
		httpclient.WithCookieJar(jar),
		httpclient.WithDefaultHeaders(map[string]string{"User-Agent": userAgent()}),
	), nil
}

func userAgent() string {
	return "walletctl/" + version
}

func NewWalletAPI(cfg *config.Config, client httpclient.HTTPClient, m *metrics.Metrics) walletapi.WalletAPI {
	return walletapi.NewWalletAPI(cfg.API, client, walletapi.WithObserver(m.RecordAPIRequest))
}

// NewScriptLoader uses its own client: the gateway host must never see the session cookie.
func NewScriptLoader(cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) (*gateway.ScriptLoader, gateway.Loader) {
	client := httpclient.NewHTTPClient(cfg.Gateway.LoadTimeout,
		httpclient.WithDefaultHeaders(map[string]string{"User-Agent": userAgent()}))
	loader := gateway.NewScriptLoader(cfg.Gateway, client, m, logger)

	return loader, loader
}

func NewCheckoutServer(cfg *config.Config, scripts *gateway.ScriptLoader, reg *prometheus.Registry,
	v validator.IXValidator, m *metrics.Metrics, logger *zap.Logger,
) (*checkout.Server, gateway.Bridge) {
	opener := checkout.OpenerFunc(func(url string) error {
		_, err := fmt.Fprintf(os.Stdout, "Complete the payment in your browser: %s\n", url)
		return err
	})
	server := checkout.NewServer(cfg.Checkout, scripts, opener, reg, v, m, logger)

	return server, server
}

func NewSnapshotCache(cfg *config.Config) cache.SnapshotCache {
	return cache.New(cfg.Cache)
}

func NewCommandRunner(topUp service.TopUpService, store service.WalletStore, logger *zap.Logger) *Runner {
	return NewRunner(topUp, store, os.Stdout, logger)
}
