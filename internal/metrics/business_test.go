package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertMetricLine checks that the Prometheus output contains a metric
// matching the given name, partial label pattern and value. The regex allows
// the extra otel scope labels added by the exporter.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")

	require.NoError(t, err)
	assert.NotNil(t, bm)
}

func TestBusinessMetrics_Integration(t *testing.T) {
	provider, err := NewProvider("integration_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "integration_test")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, "fields", "put", StatusSuccess)
	bm.RecordOperation(ctx, "fields", "put", StatusSuccess)
	bm.RecordOperation(ctx, "fields", "get", StatusError)
	bm.RecordDuration(ctx, "fields", "put", 5*time.Millisecond, StatusSuccess)
	bm.RecordDuration(ctx, "fields", "put", 7*time.Millisecond, StatusSuccess)
	bm.RecordFieldsRotated(ctx, "k-2025", 3)
	bm.RecordFieldsRotated(ctx, "k-2025", 0)

	output := scrape(t, provider)

	assertMetricLine(t, output,
		`integration_test_operations_total`,
		`domain="fields".*operation="put".*status="success"`,
		`2`,
	)
	assertMetricLine(t, output,
		`integration_test_operations_total`,
		`domain="fields".*operation="get".*status="error"`,
		`1`,
	)
	assertMetricLine(t, output,
		`integration_test_operation_duration_seconds_count`,
		`domain="fields".*operation="put".*status="success"`,
		`2`,
	)
	assertMetricLine(t, output,
		`integration_test_fields_rotated_total`,
		`key_id="k-2025"`,
		`3`,
	)
}

func TestNewNoOpBusinessMetrics(t *testing.T) {
	noOp := NewNoOpBusinessMetrics()

	assert.IsType(t, &NoOpBusinessMetrics{}, noOp)
	assert.NotPanics(t, func() {
		noOp.RecordOperation(context.Background(), "fields", "put", StatusSuccess)
		noOp.RecordDuration(context.Background(), "fields", "put", time.Millisecond, StatusError)
		noOp.RecordFieldsRotated(context.Background(), "k-test", 10)
	})
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, StatusSuccess, StatusOf(nil))
	assert.Equal(t, StatusError, StatusOf(errors.New("boom")))
}
