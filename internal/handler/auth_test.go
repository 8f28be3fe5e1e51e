package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-auth-api/internal/service"
)

func setupAuthRouter(svc AuthService) http.Handler {
	h := NewAuthHandler(svc, NewRequestValidator(), zap.NewNop())
	r := chi.NewRouter()
	r.Post("/api/auth/register", h.Register)
	r.Post("/api/auth/login", h.Login)
	return r
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		setup    func(*MockAuthService)
		wantCode int
		wantBody string
	}{
		{
			name: "success",
			body: `{"username":"u1","email":"u1@x.io","password":"p"}`,
			setup: func(m *MockAuthService) {
				m.On("Register", mock.Anything, "u1", "u1@x.io", "p").Return("jwt-token", nil)
			},
			wantCode: http.StatusOK,
			wantBody: `{"token":"jwt-token"}`,
		},
		{
			name: "duplicate username",
			body: `{"username":"u1","email":"other@x.io","password":"p"}`,
			setup: func(m *MockAuthService) {
				m.On("Register", mock.Anything, "u1", "other@x.io", "p").
					Return("", fmt.Errorf("username %q: %w", "u1", service.ErrUserAlreadyExists))
			},
			wantCode: http.StatusConflict,
		},
		{
			name:     "invalid email",
			body:     `{"username":"u1","email":"not-an-email","password":"p"}`,
			setup:    func(m *MockAuthService) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing password",
			body:     `{"username":"u1","email":"u1@x.io"}`,
			setup:    func(m *MockAuthService) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "blank username",
			body:     `{"username":" ","email":"u1@x.io","password":"p"}`,
			setup:    func(m *MockAuthService) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "internal error",
			body: `{"username":"u1","email":"u1@x.io","password":"p"}`,
			setup: func(m *MockAuthService) {
				m.On("Register", mock.Anything, "u1", "u1@x.io", "p").Return("", errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"internal error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAuthService)
			tt.setup(svc)

			w := doRequest(setupAuthRouter(svc), http.MethodPost, "/api/auth/register", tt.body, nil)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		setup    func(*MockAuthService)
		wantCode int
	}{
		{
			name: "success",
			body: `{"username":"admin","password":"admin123"}`,
			setup: func(m *MockAuthService) {
				m.On("Authenticate", mock.Anything, "admin", "admin123").Return("jwt-token", nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name: "bad credentials",
			body: `{"username":"admin","password":"wrong"}`,
			setup: func(m *MockAuthService) {
				m.On("Authenticate", mock.Anything, "admin", "wrong").Return("", service.ErrInvalidCredentials)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "missing username",
			body:     `{"password":"x"}`,
			setup:    func(m *MockAuthService) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "empty body",
			body:     "",
			setup:    func(m *MockAuthService) {},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAuthService)
			tt.setup(svc)

			w := doRequest(setupAuthRouter(svc), http.MethodPost, "/api/auth/login", tt.body, nil)

			assert.Equal(t, tt.wantCode, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
