package handler

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-auth-api/internal/model"
	"github.com/BuzzLyutic/task-auth-api/internal/service"
	"github.com/BuzzLyutic/task-auth-api/pkg/respond"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Authenticate(ctx context.Context, username, password string) (string, error)
}

type AuthHandler struct {
	service   AuthService
	validator *RequestValidator
	logger    *zap.Logger
}

func NewAuthHandler(srv AuthService, v *RequestValidator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:   srv,
		validator: v,
		logger:    logger,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := h.validator.Decode(r, &req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	h.logger.Info("user registered", zap.String("username", req.Username))
	respond.JSON(w, r, http.StatusOK, model.AuthResponse{Token: token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := h.validator.Decode(r, &req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, model.AuthResponse{Token: token})
}

func (h *AuthHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrUserAlreadyExists):
		respond.Error(w, r, http.StatusConflict, "username or email already taken")
	case errors.Is(err, service.ErrInvalidCredentials):
		respond.Error(w, r, http.StatusUnauthorized, "invalid username or password")
	default:
		h.logger.Error("auth failed", zap.Error(err), zap.String("path", r.URL.Path))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
