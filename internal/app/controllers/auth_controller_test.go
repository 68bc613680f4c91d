package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kaganyildiz/academix/internal/app/services"
)

// Binding failures are rejected before the service layer runs, so the
// controller under test needs no backing repositories.
func newValidationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewAuthController(services.NewAuthService(nil, nil, nil, nil, nil, zerolog.Nop()))

	router := gin.New()
	router.POST("/api/auth/register", ctrl.Register)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type validationEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func TestRegisterCollectsAllFieldErrors(t *testing.T) {
	router := newValidationRouter()

	// Short username, short password, missing role: three failures at once
	rec := postJSON(t, router, "/api/auth/register",
		`{"username":"ab","password":"short"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (body %s)", rec.Code, rec.Body.String())
	}

	var body validationEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success {
		t.Fatal("expected success=false")
	}
	if body.Message != "Validation failed" {
		t.Fatalf("unexpected message: %q", body.Message)
	}

	fields := map[string]bool{}
	for _, fieldError := range body.Errors {
		if fieldError.Message == "" {
			t.Fatalf("field %q carries no message", fieldError.Field)
		}
		fields[fieldError.Field] = true
	}
	for _, want := range []string{"username", "password", "role"} {
		if !fields[want] {
			t.Fatalf("expected a field error for %q, got %v", want, body.Errors)
		}
	}
	if len(body.Errors) != 3 {
		t.Fatalf("expected exactly 3 field errors, got %d: %v", len(body.Errors), body.Errors)
	}
}

func TestRegisterRejectsMalformedBody(t *testing.T) {
	router := newValidationRouter()

	rec := postJSON(t, router, "/api/auth/register", `{"username":`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body validationEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Errors) != 1 || body.Errors[0].Field != "body" {
		t.Fatalf("expected a single body-level error, got %v", body.Errors)
	}
}
