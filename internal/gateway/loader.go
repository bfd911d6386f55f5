package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/Bluepen/wallet-topup/internal/metrics"
	"github.com/Bluepen/wallet-topup/pkg/httpclient"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	scriptKey      = "checkout.js"
	maxScriptBytes = 4 << 20
)

var _ Loader = (*ScriptLoader)(nil)

// ScriptLoader fetches the checkout script once per process and keeps it in memory.
type ScriptLoader struct {
	client  httpclient.HTTPClient
	config  Config
	metrics *metrics.Metrics
	logger  *zap.Logger

	group  singleflight.Group
	mu     sync.RWMutex
	script []byte
}

func NewScriptLoader(cfg Config, client httpclient.HTTPClient, m *metrics.Metrics, logger *zap.Logger) *ScriptLoader {
	return &ScriptLoader{client: client, config: cfg, metrics: m, logger: logger}
}

// EnsureLoaded reports whether the script is available. Concurrent callers
// share one fetch. Failures are not cached.
func (l *ScriptLoader) EnsureLoaded(ctx context.Context) bool {
	if _, ok := l.Script(); ok {
		return true
	}

	ch := l.group.DoChan(scriptKey, func() (interface{}, error) {
		if script, ok := l.Script(); ok {
			return script, nil
		}
		return l.fetch()
	})

	select {
	case res := <-ch:
		return res.Err == nil
	case <-ctx.Done():
		return false
	}
}

func (l *ScriptLoader) Script() ([]byte, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.script, l.script != nil
}

// fetch runs detached from any one caller so a cancelled caller does not fail the others.
func (l *ScriptLoader) fetch() ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), l.config.LoadTimeout)
	defer cancel()

	script, err := l.download(ctx)
	if err != nil {
		l.metrics.RecordScriptLoad("failed")
		l.logger.Warn("Failed to load checkout script",
			zap.String("url", l.config.ScriptURL),
			zap.Error(err),
		)
		return nil, err
	}

	l.mu.Lock()
	l.script = script
	l.mu.Unlock()

	l.metrics.RecordScriptLoad("fetched")
	l.logger.Info("Checkout script loaded",
		zap.String("url", l.config.ScriptURL),
		zap.Int("bytes", len(script)),
	)

	return script, nil
}

func (l *ScriptLoader) download(ctx context.Context) ([]byte, error) {
	resp, err := l.client.Get(ctx, l.config.ScriptURL, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	script, err := io.ReadAll(io.LimitReader(resp.Body, maxScriptBytes))
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	if len(script) == 0 {
		return nil, fmt.Errorf("empty script")
	}

	return script, nil
}
