package statelessauth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auth0/go-stateless-auth/core"
)

func TestNoopMetrics(t *testing.T) {
	// Test that NoopMetrics methods don't panic
	var metrics Metrics = NoopMetrics{}

	metrics.IncTokensIssued()
	metrics.IncAuthentications(OutcomeAuthenticated)
	metrics.ObserveLatency(OperationRetrieve, time.Millisecond)
}

func TestPrometheusMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	metrics, err := NewPrometheusMetrics(registry, "auth")
	require.NoError(t, err)

	metrics.IncTokensIssued()
	metrics.IncTokensIssued()
	metrics.IncAuthentications(OutcomeAuthenticated)
	metrics.IncAuthentications(OutcomeFailed)
	metrics.IncAuthentications(OutcomeFailed)
	metrics.ObserveLatency(OperationAdd, 2*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.tokensIssued))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.authentications.WithLabelValues(OutcomeAuthenticated)))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.authentications.WithLabelValues(OutcomeFailed)))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.latency, "auth_operation_duration_seconds"))

	t.Run("registration conflict", func(t *testing.T) {
		again, err := NewPrometheusMetrics(registry, "auth")
		assert.Nil(t, again)
		assert.ErrorIs(t, err, core.ErrConfiguration)
	})
}

func TestMetrics_Wiring(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics, err := NewPrometheusMetrics(registry, "wired")
	require.NoError(t, err)

	binder := newStringBinder(t)

	success, err := NewSuccessHandler(binder, WithSuccessMetrics(metrics))
	require.NoError(t, err)
	middleware, err := New(binder, WithMetrics(metrics))
	require.NoError(t, err)

	login := httptest.NewRecorder()
	require.NoError(t, success.OnAuthenticationSuccess(login, httptest.NewRequest(http.MethodPost, "/login", nil), core.NewAuthenticatedIdentity("alice")))

	handler := middleware.Authenticate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	authenticated := httptest.NewRequest(http.MethodGet, "/", nil)
	authenticated.Header.Set(TokenName, responseToken(login.Header()))
	handler.ServeHTTP(httptest.NewRecorder(), authenticated)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	tampered := httptest.NewRequest(http.MethodGet, "/", nil)
	tampered.Header.Set(TokenName, "x.y.z")
	handler.ServeHTTP(httptest.NewRecorder(), tampered)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.tokensIssued))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.authentications.WithLabelValues(OutcomeAuthenticated)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.authentications.WithLabelValues(OutcomeAnonymous)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.authentications.WithLabelValues(OutcomeFailed)))
	assert.Equal(t, 2, testutil.CollectAndCount(metrics.latency))
}
