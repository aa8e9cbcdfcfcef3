package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	authDomain "github.com/stakwork/fieldcrypt/internal/auth/domain"
	"github.com/stakwork/fieldcrypt/internal/auth/service/mocks"
)

func newAuthRouter(verifier *mocks.MockTokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(AuthenticationMiddleware(verifier, logger))
	router.GET("/v1/keys/active", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"keyId": "k-test"})
	})
	return router
}

func TestAuthenticationMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		setup      func(m *mocks.MockTokenVerifier)
		wantStatus int
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "basic scheme",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "too short",
			header:     "Bear",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "wrong token",
			header: "Bearer nope",
			setup: func(m *mocks.MockTokenVerifier) {
				m.On("Verify", "nope").Return(authDomain.ErrInvalidToken).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "valid token",
			header: "Bearer good-token",
			setup: func(m *mocks.MockTokenVerifier) {
				m.On("Verify", "good-token").Return(nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "scheme is case-insensitive",
			header: "bEaReR good-token",
			setup: func(m *mocks.MockTokenVerifier) {
				m.On("Verify", "good-token").Return(nil).Once()
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &mocks.MockTokenVerifier{}
			if tt.setup != nil {
				tt.setup(verifier)
			}

			req := httptest.NewRequest(http.MethodGet, "/v1/keys/active", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			newAuthRouter(verifier).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), "unauthorized")
			}
			verifier.AssertExpectations(t)
		})
	}
}
