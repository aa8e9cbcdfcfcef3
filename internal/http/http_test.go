package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/stakwork/fieldcrypt/internal/auth/domain"
	authMocks "github.com/stakwork/fieldcrypt/internal/auth/service/mocks"
	"github.com/stakwork/fieldcrypt/internal/config"
	encryptionHTTP "github.com/stakwork/fieldcrypt/internal/encryption/http"
	fieldsDomain "github.com/stakwork/fieldcrypt/internal/fields/domain"
	fieldsHTTP "github.com/stakwork/fieldcrypt/internal/fields/http"
	fieldsMocks "github.com/stakwork/fieldcrypt/internal/fields/usecase/mocks"
	"github.com/stakwork/fieldcrypt/internal/metrics"
	"github.com/stakwork/fieldcrypt/internal/testutil"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		MetricsNamespace:        "fieldcrypt_test",
		RateLimitEnabled:        false,
		RateLimitRequestsPerSec: 10,
		RateLimitBurst:          20,
	}
}

type testServer struct {
	server    *Server
	verifier  *authMocks.MockTokenVerifier
	fieldsUse *fieldsMocks.MockFieldUseCase
}

func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()

	db, mockDB := testutil.NewMockDB(t)
	mockDB.ExpectPing()

	svc, _ := testutil.NewEncryptionService(t)
	verifier := &authMocks.MockTokenVerifier{}
	fieldUseCase := &fieldsMocks.MockFieldUseCase{}
	logger := discardLogger()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := NewServer(db, "localhost", 0, logger)
	server.SetupRouter(ctx, cfg, RouterDeps{
		FieldHandler:  fieldsHTTP.NewFieldHandler(fieldUseCase, logger),
		EnvVarHandler: encryptionHTTP.NewEnvVarHandler(svc, metrics.NewNoOpBusinessMetrics(), logger),
		TokenVerifier: verifier,
	})

	return &testServer{server: server, verifier: verifier, fieldsUse: fieldUseCase}
}

func (ts *testServer) do(method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.server.GetHandler().ServeHTTP(w, req)
	return w
}

func TestServer_Health(t *testing.T) {
	ts := newTestServer(t, testConfig())

	w := ts.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())

	_, err := uuid.Parse(w.Header().Get("X-Request-Id"))
	assert.NoError(t, err)
}

func TestServer_Ready(t *testing.T) {
	t.Run("database reachable", func(t *testing.T) {
		ts := newTestServer(t, testConfig())

		w := ts.do(http.MethodGet, "/ready", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ready","components":{"database":"ok"}}`, w.Body.String())
	})

	t.Run("database unreachable", func(t *testing.T) {
		db, mockDB := testutil.NewMockDB(t)
		mockDB.ExpectPing().WillReturnError(errors.New("connection refused"))

		server := NewServer(db, "localhost", 0, discardLogger())
		server.SetupRouter(context.Background(), testConfig(), RouterDeps{})

		w := httptest.NewRecorder()
		server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "not_ready", response["status"])
	})

	t.Run("no database", func(t *testing.T) {
		server := NewServer(nil, "localhost", 0, discardLogger())
		server.SetupRouter(context.Background(), testConfig(), RouterDeps{})

		w := httptest.NewRecorder()
		server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestServer_V1RequiresToken(t *testing.T) {
	ts := newTestServer(t, testConfig())

	w := ts.do(http.MethodGet, "/v1/keys/active", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	ts.verifier.On("Verify", "bad").Return(authDomain.ErrInvalidToken).Once()
	w = ts.do(http.MethodGet, "/v1/keys/active", "bad", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	ts.verifier.On("Verify", "good").Return(nil)
	w = ts.do(http.MethodGet, "/v1/keys/active", "good", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"keyId":"k-test"}`, w.Body.String())
}

func TestServer_FieldRoutes(t *testing.T) {
	ts := newTestServer(t, testConfig())
	ts.verifier.On("Verify", "good").Return(nil)

	ref := fieldsDomain.FieldRef{OwnerType: "workspace", OwnerID: "ws-1", FieldName: "stakworkApiKey"}
	ts.fieldsUse.On("Put", mock.Anything, ref, "sk-1").Return(&fieldsDomain.EncryptedField{
		ID:        uuid.Must(uuid.NewV7()),
		OwnerType: ref.OwnerType,
		OwnerID:   ref.OwnerID,
		FieldName: ref.FieldName,
		Value:     "{}",
		KeyID:     testutil.TestKeyID,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}, nil).Once()
	ts.fieldsUse.On("List", mock.Anything, "workspace", "ws-1", 0, 50).
		Return([]*fieldsDomain.EncryptedField{}, nil).
		Once()

	w := ts.do(http.MethodPut, "/v1/fields/workspace/ws-1/stakworkApiKey", "good", `{"value":"sk-1"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodGet, "/v1/fields/workspace/ws-1", "good", "")
	assert.Equal(t, http.StatusOK, w.Code)

	ts.fieldsUse.AssertExpectations(t)
}

func TestServer_EnvVarRoundTrip(t *testing.T) {
	ts := newTestServer(t, testConfig())
	ts.verifier.On("Verify", "good").Return(nil)

	w := ts.do(http.MethodPost, "/v1/env-vars/encrypt", "good", `{"envVars":[{"name":"API_KEY","value":"sk-1"}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodPost, "/v1/env-vars/decrypt", "good", w.Body.String())
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"envVars":[{"name":"API_KEY","value":"sk-1"}]}`, w.Body.String())
}

func TestServer_RateLimitAppliesBeforeAuthentication(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitEnabled = true
	cfg.RateLimitRequestsPerSec = 0.01
	cfg.RateLimitBurst = 1

	ts := newTestServer(t, cfg)
	ts.verifier.On("Verify", "bad").Return(authDomain.ErrInvalidToken).Once()

	assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodGet, "/v1/keys/active", "bad", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, ts.do(http.MethodGet, "/v1/keys/active", "bad", "").Code)
	ts.verifier.AssertNumberOfCalls(t, "Verify", 1)
}

func TestServer_WithoutVerifierHasNoV1Routes(t *testing.T) {
	server := NewServer(nil, "localhost", 0, discardLogger())
	server.SetupRouter(context.Background(), testConfig(), RouterDeps{})

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/keys/active", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_StartWithoutRouter(t *testing.T) {
	server := NewServer(nil, "localhost", 0, discardLogger())
	assert.Error(t, server.Start(context.Background()))
}

func TestServer_StartAndShutdown(t *testing.T) {
	server := NewServer(nil, "127.0.0.1", 0, discardLogger())
	server.SetupRouter(context.Background(), testConfig(), RouterDeps{})

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start(context.Background()) }()
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))
	assert.NoError(t, <-errCh)
}

func TestCustomLoggerMiddleware_RecoversWithStatus(t *testing.T) {
	router := gin.New()
	router.Use(gin.Recovery(), CustomLoggerMiddleware(discardLogger()))
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestMetricsServer(t *testing.T) {
	provider, err := metrics.NewProvider("fieldcrypt_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	server := NewMetricsServer("localhost", 0, discardLogger(), provider)

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	w = httptest.NewRecorder()
	NewMetricsServer("localhost", 0, discardLogger(), nil).
		GetHandler().
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
