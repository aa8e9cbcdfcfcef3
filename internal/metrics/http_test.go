package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "test_app"))
	router.GET("/v1/fields/:ownerType/:ownerId", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ownerId": c.Param("ownerId")})
	})
	router.POST("/v1/env-vars/encrypt", func(c *gin.Context) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation_error"})
	})

	for _, path := range []string{"/v1/fields/workspace/1", "/v1/fields/workspace/2"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/env-vars/encrypt", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	output := scrape(t, provider)

	assertMetricLine(t, output,
		`test_app_http_requests_total`,
		`method="GET".*path="/v1/fields/:ownerType/:ownerId".*status_code="200"`,
		`2`,
	)
	assertMetricLine(t, output,
		`test_app_http_requests_total`,
		`method="POST".*path="/v1/env-vars/encrypt".*status_code="422"`,
		`1`,
	)
	assertMetricLine(t, output,
		`test_app_http_requests_total`,
		`path="unknown".*status_code="404"`,
		`1`,
	)
}

func TestRoutePattern(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "RoutePattern", input: "/v1/fields/:ownerType/:ownerId/:fieldName", expected: "/v1/fields/:ownerType/:ownerId/:fieldName"},
		{name: "EmptyPath", input: "", expected: "unknown"},
		{name: "RootPath", input: "/", expected: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, routePattern(tt.input))
		})
	}
}
