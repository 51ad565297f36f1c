package utils

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	pkgerrors "pokedex/pkg/errors"
	"pokedex/pkg/logging"
)

// ParseOptionalInt parses an optional non-negative query value. Empty
// input yields nil; anything that is not an integer is InvalidArgument.
func ParseOptionalInt(name, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, pkgerrors.NewValidationError(name, raw, "must be a valid number")
	}
	if n < 0 {
		return nil, pkgerrors.NewValidationError(name, n, "must be >= 0")
	}
	return &n, nil
}

// StatusFor maps the error taxonomy onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case pkgerrors.IsInvalidArgument(err):
		return http.StatusBadRequest
	case pkgerrors.IsNotFound(err):
		return http.StatusNotFound
	case pkgerrors.IsUnauthorized(err):
		return http.StatusUnauthorized
	case pkgerrors.IsUpstreamUnavailable(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes {"error": msg}. Internal failures are logged and
// reported with a generic message.
func RespondError(c *gin.Context, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		msg = "internal error"
	}
	c.JSON(status, gin.H{"error": msg})
}
