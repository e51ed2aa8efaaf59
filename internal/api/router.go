package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Cheertaboi/voucher-service/internal/api/handlers"
	"github.com/Cheertaboi/voucher-service/internal/api/middleware"
	"github.com/Cheertaboi/voucher-service/internal/metrics"
)

// NewRouter builds the HTTP router for the voucher-service
func NewRouter(svc handlers.VoucherService, logger zerolog.Logger, m *metrics.Metrics, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics(m))

	voucherHandler := handlers.NewVoucherHandler(svc)

	r.Route("/vouchers", func(r chi.Router) {
		r.Post("/", voucherHandler.CreateVoucher)
		r.Post("/apply", voucherHandler.ApplyVoucher)
		r.Get("/{code}", voucherHandler.GetVoucher)
	})

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return r
}
