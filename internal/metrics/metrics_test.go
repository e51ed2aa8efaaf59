package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/voucher-service/internal/metrics"
)

func Test_New_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.VouchersCreated.Inc()
	m.VoucherApplies.WithLabelValues(metrics.ResultApplied).Inc()
	m.VoucherApplies.WithLabelValues(metrics.ResultApplied).Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.VouchersCreated))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.VoucherApplies.WithLabelValues(metrics.ResultApplied)))
	assert.Panics(t, func() { metrics.New(reg) })
}

func Test_New_ExposedNames(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.VouchersCreated.Inc()
	m.VoucherApplies.WithLabelValues(metrics.ResultConflict).Inc()
	m.RequestDuration.WithLabelValues("POST", "/vouchers", "201").Observe(0.01)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"voucher_service_vouchers_created_total",
		"voucher_service_voucher_apply_total",
		"voucher_service_http_request_duration_seconds",
	}, names)
}
