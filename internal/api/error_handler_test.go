package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/questionsapp/questions-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body is not the message envelope: %v (%s)", err, rec.Body.String())
	}
	return rec.Code, resp.Message
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"validation", domain.NewValidationError("email"), http.StatusBadRequest, "required fields: email"},
		{"email exists", domain.ErrEmailExists, http.StatusConflict, "email exists"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "too many failed attempts, try again later"},
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized, "invalid or expired token"},
		{"expired token", domain.ErrTokenExpired, http.StatusUnauthorized, "invalid or expired token"},
		{"wrong token kind", domain.ErrWrongTokenKind, http.StatusUnauthorized, "invalid or expired token"},
		{"user not found", domain.ErrUserNotFound, http.StatusUnauthorized, "invalid user"},
		{"question not found", domain.ErrQuestionNotFound, http.StatusNotFound, "question not found"},
	}

	for _, tc := range cases {
		code, msg := renderError(t, tc.err)
		if code != tc.wantCode {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.wantCode, code)
		}
		if msg != tc.wantMsg {
			t.Fatalf("%s: expected message %q, got %q", tc.name, tc.wantMsg, msg)
		}
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.New("login: lookup: " + domain.ErrInvalidCredentials.Error())
	code, msg := renderError(t, wrapped)
	// A hand-built string is not the sentinel; it must fall through to 500.
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for a non-sentinel error, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "Access denied, you're not an admin"))
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if msg != "Access denied, you're not an admin" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestHTTPErrorHandler_UnexpectedError(t *testing.T) {
	code, msg := renderError(t, errors.New("mongo: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal details leaked: %q", msg)
	}
}
