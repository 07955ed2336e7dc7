package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oninepa/k-yayo-backend/internal/common"
)

// respondError maps a service error to the HTTP status and envelope.
// Everything here is recoverable at the caller; nothing panics or retries.
func respondError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, common.ErrMemberNotFound), errors.Is(err, common.ErrNotFound):
		common.ErrorResponse(c, http.StatusNotFound, message, err)
	case errors.Is(err, common.ErrInsufficientPoints):
		common.ErrorResponse(c, http.StatusPaymentRequired, message, err)
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, http.StatusForbidden, message, err)
	case errors.Is(err, common.ErrMalformedAreaID),
		errors.Is(err, common.ErrInvalidRole),
		errors.Is(err, common.ErrInvalidNickname),
		errors.Is(err, common.ErrInvalidAmount),
		errors.Is(err, common.ErrInvalidInput):
		common.ErrorResponse(c, http.StatusBadRequest, message, err)
	case errors.Is(err, common.ErrUnauthorized):
		common.ErrorResponse(c, http.StatusUnauthorized, message, err)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, message, err)
	}
}
