package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/guttosm/stacking-service/internal/circuitbreaker"
	"github.com/guttosm/stacking-service/internal/domain/dto"
	"github.com/guttosm/stacking-service/internal/domain/model"
	"github.com/guttosm/stacking-service/internal/i18n"
	"github.com/guttosm/stacking-service/internal/repository"
	"github.com/guttosm/stacking-service/internal/service"
)

// respondBindError answers a request whose body could not be bound or
// failed its own Validate.
func respondBindError(c *gin.Context, err error) {
	var validationErr *dto.ValidationError
	if errors.As(err, &validationErr) {
		respondError(c, err)
		return
	}

	builder := NewResponseBuilder(c)

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[bindingFieldName(fe)] = "failed " + fe.Tag() + " check"
		}
		builder.ErrorWithDetails(http.StatusBadRequest, dto.ErrCodeInvalidRequest, i18n.ErrKeyInvalidRequest, details, err)
		return
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		builder.ErrorWithDetails(http.StatusBadRequest, dto.ErrCodeInvalidRequest, i18n.ErrKeyInvalidRequestBody,
			map[string]string{typeErr.Field: "must be " + typeErr.Type.String()}, err)
		return
	}
	builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
}

// respondError maps service and repository errors onto HTTP responses.
func respondError(c *gin.Context, err error) {
	builder := NewResponseBuilder(c)

	var cfgErr *model.ConfigurationError
	var validationErr *dto.ValidationError

	switch {
	case errors.As(err, &validationErr):
		key := i18n.ErrKeyInvalidCart
		if validationErr.Field == "items" {
			key = i18n.ErrKeyCartTooLarge
		}
		builder.ErrorWithDetails(http.StatusBadRequest, dto.ErrCodeInvalidRequest, key,
			map[string]string{validationErr.Field: validationErr.Message}, err)
	case errors.As(err, &cfgErr):
		details := map[string]string{"field": cfgErr.Field, "reason": cfgErr.Reason}
		if cfgErr.GroupID != "" {
			details["group_id"] = cfgErr.GroupID
		}
		builder.ErrorWithDetails(http.StatusBadRequest, dto.ErrCodeInvalidGroup, i18n.ErrKeyInvalidGroup, details, err)
	case errors.Is(err, service.ErrUnknownStrategy):
		builder.Error(http.StatusBadRequest, i18n.ErrKeyUnknownStrategy, err)
	case errors.Is(err, repository.ErrGroupNotFound):
		builder.Error(http.StatusNotFound, i18n.ErrKeyGroupNotFound, err)
	case errors.Is(err, circuitbreaker.ErrCircuitOpen), errors.Is(err, service.ErrCatalogNotConfigured):
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyCatalogUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		builder.Error(http.StatusGatewayTimeout, i18n.ErrKeyTimeout, err)
	default:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

// bindingFieldName drops the struct name from the namespace, so
// "SimulateRequest.items[0].product_id" becomes "items[0].product_id".
func bindingFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	if ns == "" {
		return fe.Field()
	}
	return ns
}
