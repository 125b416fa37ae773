package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/logger"
)

// statusFor maps a service error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNoInput),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrConversionFailed):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		logger.Error("request failed: %v", err)
	}
	httpx.WriteJsonCtx(ctx, w, code, errorResponse{Error: err.Error()})
}

func writeBadRequest(ctx context.Context, w http.ResponseWriter, msg string) {
	httpx.WriteJsonCtx(ctx, w, http.StatusBadRequest, errorResponse{Error: msg})
}
