package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"catalog-studio/metrics"
	"catalog-studio/registry"
	"catalog-studio/repository"
	"catalog-studio/service"
)

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, registry.ErrTemplateNotFound),
		errors.Is(err, repository.ErrCatalogNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrPageNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnknownFormat),
		errors.Is(err, service.ErrNoProducts):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a JSON error. Server errors are logged and their
// details are not exposed.
func respondError(c *gin.Context, op string, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		zctx.From(c.Request.Context()).Error("Request failed", zap.String("op", op), zap.Error(err))
		metrics.ErrorsTotal.WithLabelValues(op).Inc()
		msg = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
