package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fullstack/libreria-system/internal/core/domain"
)

func invokeErrorHandler(t *testing.T, err error) (*httptest.ResponseRecorder, errorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/id/42", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v\n%s", err, rec.Body.String())
	}
	return rec, body
}

func TestErrorHandler_NotFound(t *testing.T) {
	rec, body := invokeErrorHandler(t, &domain.NotFoundError{Resource: "account", Key: "42"})

	if rec.Code != http.StatusNotFound || body.Status != http.StatusNotFound {
		t.Fatalf("expected 404, got code=%d status=%d", rec.Code, body.Status)
	}
	if body.Error == "" {
		t.Fatalf("expected an error message naming the missing key")
	}
	if body.Path != "/api/users/id/42" {
		t.Fatalf("unexpected path: %s", body.Path)
	}
	if body.Timestamp.IsZero() {
		t.Fatalf("timestamp not stamped")
	}
}

func TestErrorHandler_Conflict(t *testing.T) {
	rec, body := invokeErrorHandler(t, &domain.ConflictError{Email: "a@x.com"})

	if rec.Code != http.StatusConflict || body.Status != http.StatusConflict {
		t.Fatalf("expected 409, got code=%d status=%d", rec.Code, body.Status)
	}
}

func TestErrorHandler_Validation(t *testing.T) {
	fields := map[string]string{
		"email":     "email must be a valid email",
		"full_name": "full_name must be at least 10 characters",
	}
	rec, body := invokeErrorHandler(t, &domain.ValidationError{Fields: fields})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body.Error != "" {
		t.Fatalf("validation responses must use errores, not error: %q", body.Error)
	}
	if len(body.Errores) != len(fields) {
		t.Fatalf("expected every offending field in errores, got %v", body.Errores)
	}
	for field, msg := range fields {
		if body.Errores[field] != msg {
			t.Fatalf("field %q: got %q want %q", field, body.Errores[field], msg)
		}
	}
}

func TestErrorHandler_InvalidCredentials(t *testing.T) {
	rec, body := invokeErrorHandler(t, domain.ErrInvalidCredentials)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body.Error != "invalid credentials" {
		t.Fatalf("credentials message must stay generic, got %q", body.Error)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec, body := invokeErrorHandler(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))

	if rec.Code != http.StatusBadRequest || body.Error != "invalid payload" {
		t.Fatalf("unexpected response: code=%d body=%+v", rec.Code, body)
	}
}

func TestErrorHandler_UnexpectedError(t *testing.T) {
	rec, body := invokeErrorHandler(t, errors.New("mongo: connection reset"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body.Error != "internal server error" {
		t.Fatalf("internal failures must not leak details, got %q", body.Error)
	}
}
