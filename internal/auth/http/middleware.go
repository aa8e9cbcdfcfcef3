// Package http provides the bearer-token authentication and rate limiting
// middleware guarding the /v1 API.
package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/stakwork/fieldcrypt/internal/auth/service"
	apperrors "github.com/stakwork/fieldcrypt/internal/errors"
	"github.com/stakwork/fieldcrypt/internal/httputil"
)

const bearerPrefix = "bearer "

// AuthenticationMiddleware requires "Authorization: Bearer <token>" (the
// scheme is case-insensitive) and checks the token with verifier. Missing,
// malformed and wrong tokens all answer 401.
func AuthenticationMiddleware(verifier authService.TokenVerifier, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if err := verifier.Verify(strings.TrimSpace(authHeader[len(bearerPrefix):])); err != nil {
			logger.Debug("authentication failed", slog.String("client_ip", c.ClientIP()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
