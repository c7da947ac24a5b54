package httpserver

import (
	"errors"
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/service/anonymous"
	authsvc "storefront/internal/service/auth"

	"github.com/gin-gonic/gin"
)

func errorBody(msg string) gin.H {
	return gin.H{"error": msg}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, authsvc.ErrInvalidCredentials),
		errors.Is(err, authsvc.ErrInvalidToken),
		errors.Is(err, anonymous.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps service errors to a JSON response. Internal failures are
// not echoed to the client.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, errorBody("internal error"))
		return
	}
	c.JSON(status, errorBody(err.Error()))
}

func (h *handlers) fail(c *gin.Context, op string, err error) {
	if statusFor(err) == http.StatusInternalServerError {
		h.logger.Printf("http: %s failed path=%s error=%v", op, c.FullPath(), err)
	}
	writeError(c, err)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorBody(msg))
}

