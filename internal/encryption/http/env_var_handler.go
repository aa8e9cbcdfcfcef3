// Package http exposes the encryption service over HTTP: bulk env-var
// encryption and decryption and the active key id.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stakwork/fieldcrypt/internal/encryption/http/dto"
	"github.com/stakwork/fieldcrypt/internal/encryption/service"
	"github.com/stakwork/fieldcrypt/internal/httputil"
	"github.com/stakwork/fieldcrypt/internal/metrics"
	customValidation "github.com/stakwork/fieldcrypt/internal/validation"
)

const metricsDomain = "env_vars"

// EnvVarHandler handles env-var encryption requests.
type EnvVarHandler struct {
	encryptor service.FieldEncryptor
	metrics   metrics.BusinessMetrics
	logger    *slog.Logger
}

// NewEnvVarHandler creates an env-var handler.
func NewEnvVarHandler(
	encryptor service.FieldEncryptor,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) *EnvVarHandler {
	return &EnvVarHandler{
		encryptor: encryptor,
		metrics:   businessMetrics,
		logger:    logger,
	}
}

func (h *EnvVarHandler) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusOf(err)
	h.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	h.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// EncryptHandler encrypts a list of variables with the active key.
// POST /v1/env-vars/encrypt
func (h *EnvVarHandler) EncryptHandler(c *gin.Context) {
	var req dto.EncryptEnvVarsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	start := time.Now()
	encrypted, err := h.encryptor.EncryptEnvVars(req.ToDomain())
	h.record(c.Request.Context(), "encrypt", start, err)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.EncryptedEnvVarsResponse{EnvVars: encrypted})
}

// DecryptHandler decrypts a list of variables. Values may be envelope
// objects, serialized envelopes or legacy plaintext strings.
// POST /v1/env-vars/decrypt
func (h *EnvVarHandler) DecryptHandler(c *gin.Context) {
	var req dto.DecryptEnvVarsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	stored, err := req.ToDomain()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	start := time.Now()
	decrypted, err := h.encryptor.DecryptEnvVars(stored)
	h.record(c.Request.Context(), "decrypt", start, err)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DecryptedEnvVarsResponse{EnvVars: decrypted})
}

// ActiveKeyHandler returns the active key id.
// GET /v1/keys/active
func (h *EnvVarHandler) ActiveKeyHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ActiveKeyResponse{KeyID: h.encryptor.ActiveKeyID()})
}
