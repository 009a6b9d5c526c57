package handler

import (
	"net/http"

	"github.com/stockroom/backoffice/application/port/inbound"
	apperror "github.com/stockroom/backoffice/domain/error"
	"github.com/stockroom/backoffice/infrastructure/http/middleware"
	"github.com/stockroom/backoffice/infrastructure/http/response"
	"github.com/stockroom/backoffice/infrastructure/http/validator"
)

type AuthHandler struct {
	authUseCase inbound.AuthUseCase
}

func NewAuthHandler(authUseCase inbound.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req inbound.LoginRequest
	if err := validator.DecodeJSON(r, &req); err != nil {
		response.FromError(w, apperror.ErrInvalidRequest(err.Error()))
		return
	}

	loginRes, err := h.authUseCase.Login(r.Context(), req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, loginRes)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserClaims(r.Context())
	if claims == nil {
		response.Unauthorized(w, "Unauthenticated.")
		return
	}

	user, err := h.authUseCase.Me(r.Context(), claims.UserID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, user)
}

// Logout acknowledges the request; access tokens are stateless and the
// client drops its copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Logged out.", nil)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserClaims(r.Context())
	if claims == nil {
		response.Unauthorized(w, "Unauthenticated.")
		return
	}

	var req inbound.UpdateProfileRequest
	if err := validator.DecodeJSON(r, &req); err != nil {
		response.FromError(w, apperror.ErrInvalidRequest(err.Error()))
		return
	}

	user, err := h.authUseCase.UpdateProfile(r.Context(), claims.UserID, req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Profile updated.", user)
}

func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserClaims(r.Context())
	if claims == nil {
		response.Unauthorized(w, "Unauthenticated.")
		return
	}

	var req inbound.UpdatePasswordRequest
	if err := validator.DecodeJSON(r, &req); err != nil {
		response.FromError(w, apperror.ErrInvalidRequest(err.Error()))
		return
	}

	if err := h.authUseCase.UpdatePassword(r.Context(), claims.UserID, req); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Password updated.", nil)
}
