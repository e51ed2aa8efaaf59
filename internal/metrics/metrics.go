package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "voucher_service"

const (
	ResultApplied    = "applied"
	ResultNotApplied = "not_applied"
	ResultConflict   = "conflict"
)

// Metrics holds the collectors shared by the service and the HTTP layer.
type Metrics struct {
	VouchersCreated prometheus.Counter
	VoucherApplies  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		VouchersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vouchers_created_total",
			Help:      "Number of vouchers created.",
		}),
		VoucherApplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "voucher_apply_total",
			Help:      "Number of apply attempts by result.",
		}, []string{"result"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.VouchersCreated, m.VoucherApplies, m.RequestDuration)
	return m
}
