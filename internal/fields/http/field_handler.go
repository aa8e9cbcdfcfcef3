// Package http provides the HTTP handlers of the encrypted field store.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stakwork/fieldcrypt/internal/fields/http/dto"
	fieldsUseCase "github.com/stakwork/fieldcrypt/internal/fields/usecase"
	"github.com/stakwork/fieldcrypt/internal/httputil"
	customValidation "github.com/stakwork/fieldcrypt/internal/validation"
)

// FieldHandler handles HTTP requests for encrypted fields.
type FieldHandler struct {
	fieldUseCase fieldsUseCase.FieldUseCase
	logger       *slog.Logger
}

// NewFieldHandler creates a field handler.
func NewFieldHandler(fieldUseCase fieldsUseCase.FieldUseCase, logger *slog.Logger) *FieldHandler {
	return &FieldHandler{
		fieldUseCase: fieldUseCase,
		logger:       logger,
	}
}

// bindFieldPath reads and validates the field URL parameters. It writes the
// error response and returns false when they are invalid.
func (h *FieldHandler) bindFieldPath(c *gin.Context) (dto.FieldPath, bool) {
	path := dto.FieldPath{
		OwnerType: c.Param("ownerType"),
		OwnerID:   c.Param("ownerId"),
		FieldName: c.Param("fieldName"),
	}
	if err := path.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return path, false
	}
	return path, true
}

// PutHandler encrypts and stores a field value.
// PUT /v1/fields/:ownerType/:ownerId/:fieldName
// Returns 200 OK with the field metadata and key id.
func (h *FieldHandler) PutHandler(c *gin.Context) {
	path, ok := h.bindFieldPath(c)
	if !ok {
		return
	}

	var req dto.PutFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	field, err := h.fieldUseCase.Put(c.Request.Context(), path.Ref(), *req.Value)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapFieldToResponse(field))
}

// GetHandler decrypts and returns a field value.
// GET /v1/fields/:ownerType/:ownerId/:fieldName
func (h *FieldHandler) GetHandler(c *gin.Context) {
	path, ok := h.bindFieldPath(c)
	if !ok {
		return
	}

	field, err := h.fieldUseCase.Get(c.Request.Context(), path.Ref())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapFieldToGetResponse(field))
}

// DeleteHandler removes a field.
// DELETE /v1/fields/:ownerType/:ownerId/:fieldName
// Returns 204 No Content.
func (h *FieldHandler) DeleteHandler(c *gin.Context) {
	path, ok := h.bindFieldPath(c)
	if !ok {
		return
	}

	if err := h.fieldUseCase.Delete(c.Request.Context(), path.Ref()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ListHandler lists the fields of one owner without their values.
// GET /v1/fields/:ownerType/:ownerId?offset=0&limit=50
func (h *FieldHandler) ListHandler(c *gin.Context) {
	owner := dto.OwnerPath{
		OwnerType: c.Param("ownerType"),
		OwnerID:   c.Param("ownerId"),
	}
	if err := owner.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	fields, err := h.fieldUseCase.List(c.Request.Context(), owner.OwnerType, owner.OwnerID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapFieldsToListResponse(fields))
}
