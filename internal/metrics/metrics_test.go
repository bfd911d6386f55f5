package metrics_test

import (
	"testing"
	"time"

	"github.com/Bluepen/wallet-topup/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())

	m.RecordTopUpOutcome("succeeded")
	m.RecordTopUpOutcome("succeeded")
	m.RecordTopUpOutcome("cancelled")
	m.RecordAPIRequest("/api/wallet", "200", 20*time.Millisecond)
	m.RecordScriptLoad("fetched")
	m.SetConfirmedBalance(1500)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TopUpAttemptsTotal.WithLabelValues("succeeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TopUpAttemptsTotal.WithLabelValues("cancelled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.APIRequestsTotal.WithLabelValues("/api/wallet", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewayScriptLoads.WithLabelValues("fetched")))
	assert.Equal(t, 1500.0, testutil.ToFloat64(m.ConfirmedBalance))
}

func TestNewRegistry(t *testing.T) {
	reg := metrics.NewRegistry()
	metrics.NewMetrics(reg)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
