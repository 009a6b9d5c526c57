package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/backoffice/application/port/mocks"
	"github.com/stockroom/backoffice/application/port/outbound"
	"github.com/stockroom/backoffice/infrastructure/service/logger"
)

func testLogger() logger.Logger {
	return logger.NewStructuredLogger(logger.LoggerConfig{Output: io.Discard})
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Status bool `json:"status"`
		Data   struct {
			Code string `json:"code"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Status)
	return env.Data.Code
}

func TestRequireAuth(t *testing.T) {
	claims := &outbound.TokenClaims{UserID: 4, Email: "admin@example.com", Role: "admin"}

	tokens := new(mocks.TokenService)
	tokens.On("ValidateAccessToken", "good").Return(claims, nil)
	tokens.On("ValidateAccessToken", "bad").Return(nil, errors.New("expired"))

	m := NewAuthMiddleware(tokens, testLogger())

	var seen *outbound.TokenClaims
	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetUserClaims(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, claims, seen)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	m := NewAuthMiddleware(new(mocks.TokenService), testLogger())
	handler := m.RequireRoles("admin", "manager")(http.HandlerFunc(okHandler))

	tests := []struct {
		name   string
		claims *outbound.TokenClaims
		want   int
	}{
		{"no claims", nil, http.StatusUnauthorized},
		{"editor is forbidden", &outbound.TokenClaims{UserID: 3, Role: "editor"}, http.StatusForbidden},
		{"manager is allowed", &outbound.TokenClaims{UserID: 2, Role: "manager"}, http.StatusOK},
		{"admin is allowed", &outbound.TokenClaims{UserID: 1, Role: "admin"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/v1/inventories/1", nil)
			if tt.claims != nil {
				req = req.WithContext(WithUserClaims(req.Context(), tt.claims))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestActorID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, ActorID(req.Context()))

	ctx := WithUserClaims(req.Context(), &outbound.TokenClaims{UserID: 9})
	actor := ActorID(ctx)
	require.NotNil(t, actor)
	assert.Equal(t, int64(9), *actor)
}

func TestCorrelationIDMiddleware(t *testing.T) {
	var fromCtx string
	handler := CorrelationIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = logger.CorrelationIDFromContext(r.Context())
	}))

	t.Run("generates an id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		cid := rec.Header().Get(CorrelationIDHeader)
		assert.Len(t, cid, 36)
		assert.Equal(t, cid, fromCtx)
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(CorrelationIDHeader, "req-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "req-123", rec.Header().Get(CorrelationIDHeader))
		assert.Equal(t, "req-123", fromCtx)
	})
}

func TestCORSMiddleware(t *testing.T) {
	handler := CORSMiddleware(CORSConfig{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowCredentials: true,
	})(http.HandlerFunc(okHandler))

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/products", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})
}

func newRateLimitMiddleware(service *mocks.RateLimitService) *RateLimitMiddleware {
	return NewRateLimitMiddleware(service, RateLimitConfig{
		Attempts:      10,
		Window:        15 * time.Minute,
		BlockDuration: 30 * time.Minute,
	}, testLogger())
}

func loginRequest() *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/v1/login", nil)
	req.RemoteAddr = "10.0.0.8:51234"
	return req
}

func TestRateLimit_CountsRejectedLogins(t *testing.T) {
	service := new(mocks.RateLimitService)
	service.On("IsBlocked", mock.Anything, "login:ip:10.0.0.8").Return(false, nil)
	service.On("CheckLimit", mock.Anything, "login:ip:10.0.0.8", 10, 15*time.Minute).Return(true, nil)
	service.On("Increment", mock.Anything, "login:ip:10.0.0.8", 15*time.Minute).Return(nil).Once()

	handler := newRateLimitMiddleware(service).RateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest())

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	service.AssertExpectations(t)
}

func TestRateLimit_SuccessfulLoginNotCounted(t *testing.T) {
	service := new(mocks.RateLimitService)
	service.On("IsBlocked", mock.Anything, "login:ip:10.0.0.8").Return(false, nil)
	service.On("CheckLimit", mock.Anything, "login:ip:10.0.0.8", 10, 15*time.Minute).Return(true, nil)

	handler := newRateLimitMiddleware(service).RateLimit(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest())

	assert.Equal(t, http.StatusOK, rec.Code)
	service.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything, mock.Anything)
}

func TestRateLimit_BlocksWhenLimitReached(t *testing.T) {
	service := new(mocks.RateLimitService)
	service.On("IsBlocked", mock.Anything, "login:ip:10.0.0.8").Return(false, nil)
	service.On("CheckLimit", mock.Anything, "login:ip:10.0.0.8", 10, 15*time.Minute).Return(false, nil)
	service.On("Block", mock.Anything, "login:ip:10.0.0.8", 30*time.Minute, "Rate limit exceeded").Return(nil)

	called := false
	handler := newRateLimitMiddleware(service).RateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest())

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1800", rec.Header().Get("Retry-After"))
	assert.False(t, called)
	service.AssertExpectations(t)
}

func TestRequireRoles_ForbiddenBody(t *testing.T) {
	m := NewAuthMiddleware(new(mocks.TokenService), testLogger())
	handler := m.RequireRoles("admin")(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/v1/audit-logs", nil)
	req = req.WithContext(WithUserClaims(req.Context(), &outbound.TokenClaims{UserID: 2, Role: "manager"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "SEC_7001", errorCode(t, rec))
	assert.Contains(t, rec.Body.String(), "This action is unauthorized.")
}

func TestRateLimit_RejectionBody(t *testing.T) {
	service := new(mocks.RateLimitService)
	service.On("IsBlocked", mock.Anything, "login:ip:10.0.0.8").Return(true, nil)

	rec := httptest.NewRecorder()
	newRateLimitMiddleware(service).RateLimit(http.HandlerFunc(okHandler)).ServeHTTP(rec, loginRequest())

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "RATE_3001", errorCode(t, rec))
	assert.Contains(t, rec.Body.String(), "Attempts: 10, Window: 15m0s")
}

func TestRateLimit_AlreadyBlocked(t *testing.T) {
	service := new(mocks.RateLimitService)
	service.On("IsBlocked", mock.Anything, "login:ip:10.0.0.8").Return(true, nil)

	handler := newRateLimitMiddleware(service).RateLimit(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest())

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	service.AssertNotCalled(t, "CheckLimit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.10:4000"
	assert.Equal(t, "192.168.1.10", ClientIP(req))

	req.Header.Set("X-Real-IP", "172.16.0.2")
	assert.Equal(t, "172.16.0.2", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "203.0.113.5", ClientIP(req))
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewStructuredLogger(logger.LoggerConfig{Format: "json", Output: &buf})

	handler := Recovery(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("nil map")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "Panic recovered")
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewStructuredLogger(logger.LoggerConfig{Format: "json", Output: &buf})

	handler := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/products/99", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), `"status":404`)
	assert.Contains(t, buf.String(), "Request rejected")
}
