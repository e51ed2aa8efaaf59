package api_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/voucher-service/internal/api"
	"github.com/Cheertaboi/voucher-service/internal/metrics"
	"github.com/Cheertaboi/voucher-service/internal/repository"
	"github.com/Cheertaboi/voucher-service/internal/service"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newServer(t *testing.T, logs io.Writer) *httptest.Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	svc := service.NewVoucherService(repository.NewMemoryVoucherRepo(), m)
	srv := httptest.NewServer(api.NewRouter(svc, zerolog.New(logs), m, reg))
	t.Cleanup(srv.Close)
	return srv
}

func TestRouter(t *testing.T) {
	logs := &syncBuffer{}
	srv := newServer(t, logs)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/vouchers", "application/json", bytes.NewBufferString(`{"code":"ABC","discount":15}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/vouchers/apply", "application/json", bytes.NewBufferString(`{"code":"ABC","amount":150}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)

	assert.Contains(t, string(body), `voucher_service_vouchers_created_total 1`)
	assert.Contains(t, string(body), `voucher_service_voucher_apply_total{result="applied"} 1`)
	assert.Contains(t, string(body), `route="/vouchers/apply"`)

	assert.Contains(t, logs.String(), `"path":"/vouchers/apply"`)
	assert.Contains(t, logs.String(), `"request_id":`)
	assert.Contains(t, logs.String(), `"message":"voucher applied"`)
}
