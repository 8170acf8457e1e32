package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fullstack/libreria-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors:
// {status, timestamp, error|errores, path}. Plain failures carry a single
// message under "error"; validation failures carry the full field→message
// map under "errores".
type errorResponse struct {
	Status    int               `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Error     string            `json:"error,omitempty"`
	Errores   map[string]string `json:"errores,omitempty"`
	Path      string            `json:"path"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the domain error taxonomy to deterministic HTTP status codes.
//   - Enumerates every offending field for validation failures.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := resolveError(err, log, c)
		resp.Timestamp = time.Now().UTC()
		resp.Path = c.Request().URL.Path
		_ = c.JSON(resp.Status, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) errorResponse {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return errorResponse{Status: he.Code, Error: fmt.Sprintf("%v", he.Message)}
	}

	// Validation failures report every offending field at once.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return errorResponse{Status: http.StatusBadRequest, Errores: ve.Fields}
	}

	// Remaining taxonomy kinds map one-to-one to status codes. Conflict and
	// not-found keep their message, which names the offending key; the
	// credentials message stays generic so it cannot be used to probe for
	// registered emails.
	switch {
	case errors.Is(err, domain.ErrConflict):
		return errorResponse{Status: http.StatusConflict, Error: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return errorResponse{Status: http.StatusNotFound, Error: err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return errorResponse{Status: http.StatusUnauthorized, Error: "invalid credentials"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return errorResponse{Status: http.StatusInternalServerError, Error: "internal server error"}
}
