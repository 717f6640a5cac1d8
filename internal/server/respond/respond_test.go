package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/authd/internal/errors"
)

func perform(t *testing.T, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.GET("/test", handler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestOK_EnvelopeShape(t *testing.T) {
	rec := perform(t, func(c *gin.Context) {
		OK(c, "Login successful", map[string]string{"id": "user-1"})
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp SuccessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success=true")
	}
	if resp.Message != "Login successful" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
	if resp.Data == nil {
		t.Error("expected data payload")
	}
	if _, err := time.Parse(time.RFC3339, resp.Timestamp); err != nil {
		t.Errorf("timestamp not RFC3339: %q", resp.Timestamp)
	}
}

func TestCreated_Status(t *testing.T) {
	rec := perform(t, func(c *gin.Context) {
		Created(c, "User registered", nil)
	})
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestError_AppError(t *testing.T) {
	rec := perform(t, func(c *gin.Context) {
		Error(c, apperrors.InvalidCredentials())
	})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Error("expected success=false")
	}
	if resp.Error.Type != apperrors.TypeClient {
		t.Errorf("expected client_error, got %s", resp.Error.Type)
	}
	if resp.Error.Code != apperrors.ErrCodeInvalidCredentials {
		t.Errorf("expected INVALID_CREDENTIALS, got %s", resp.Error.Code)
	}
	if _, err := time.Parse(time.RFC3339, resp.Timestamp); err != nil {
		t.Errorf("timestamp not RFC3339: %q", resp.Timestamp)
	}
}

func TestError_ValidationDetails(t *testing.T) {
	details := []map[string]string{{"field": "email", "code": "required"}}
	rec := perform(t, func(c *gin.Context) {
		Error(c, apperrors.Validation(details))
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error.Details == nil {
		t.Error("validation errors must carry details")
	}
}

func TestError_NonAppErrorBecomesInternal(t *testing.T) {
	rec := perform(t, func(c *gin.Context) {
		Error(c, fmt.Errorf("dial tcp: connection refused"))
	})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error.Code != apperrors.ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", resp.Error.Code)
	}
}

func TestError_ProductionSuppressesCause(t *testing.T) {
	SetProduction(true)
	defer SetProduction(false)

	rec := perform(t, func(c *gin.Context) {
		Error(c, fmt.Errorf("dsn=postgres://user:hunter2@db/prod"))
	})

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error.Details != nil {
		t.Error("production responses must not carry internal details")
	}
	if resp.Error.Message != "An unexpected error occurred" {
		t.Errorf("production message leaked internals: %q", resp.Error.Message)
	}
	if strings.Contains(rec.Body.String(), "hunter2") {
		t.Error("response body leaked the underlying error text")
	}
}

func TestError_DevelopmentExposesCause(t *testing.T) {
	SetProduction(false)

	rec := perform(t, func(c *gin.Context) {
		Error(c, fmt.Errorf("boom"))
	})

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	details, ok := resp.Error.Details.(map[string]any)
	if !ok {
		t.Fatalf("expected details map outside production, got %T", resp.Error.Details)
	}
	if details["cause"] != "boom" {
		t.Errorf("expected cause in details, got %v", details)
	}
}
