package handlers

import (
	"encoding/json"
	"net/http"

	"ntlango-api/application/ports"
	"ntlango-api/interfaces/http/rest/middleware"
	apperrors "ntlango-api/pkg/errors"
	"ntlango-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProfileHandler handles profile management HTTP requests
type ProfileHandler struct {
	identity     ports.IdentityProvider
	errorHandler *apperrors.ErrorHandler
	logger       *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(identity ports.IdentityProvider, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		identity:     identity,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// UpdateProfileRequest represents the request body for a profile update
type UpdateProfileRequest struct {
	UserAttributes []ports.UserAttribute `json:"userAttributes" validate:"required,min=1,dive"`
}

// ForgotPasswordRequest represents the request body to start a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ConfirmForgotPasswordRequest represents the request body to complete a
// password reset
type ConfirmForgotPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Code     string `json:"code" validate:"required"`
}

// UpdateProfile handles PUT /profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	accessToken, ok := middleware.AccessTokenFromContext(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, apperrors.NewUnauthenticatedError("Missing authorization header"))
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInvalidArgumentError("Invalid request body"))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInvalidArgumentError(err.Error()))
		return
	}

	user, err := h.identity.UpdateUserAttributes(r.Context(), accessToken, req.UserAttributes)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// ForgotPassword handles PUT /profile/forgotPassword
func (h *ProfileHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInvalidArgumentError("Invalid request body"))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInvalidArgumentError(err.Error()))
		return
	}

	msg, err := h.identity.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, msg)
}

// ConfirmForgotPassword handles PUT /profile/forgotPassword/confirm
func (h *ProfileHandler) ConfirmForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ConfirmForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInvalidArgumentError("Invalid request body"))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInvalidArgumentError(err.Error()))
		return
	}

	msg, err := h.identity.ConfirmForgotPassword(r.Context(), req.Email, req.Password, req.Code)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, msg)
}

// RemoveAccount handles DELETE /profile/remove
func (h *ProfileHandler) RemoveAccount(w http.ResponseWriter, r *http.Request) {
	accessToken, ok := middleware.AccessTokenFromContext(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, apperrors.NewUnauthenticatedError("Missing authorization header"))
		return
	}

	msg, err := h.identity.RemoveAccount(r.Context(), accessToken)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, msg)
}

// AdminRemoveAccount handles DELETE /profile/remove/{username}
func (h *ProfileHandler) AdminRemoveAccount(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		h.errorHandler.Handle(w, r, apperrors.NewInvalidArgumentError("username is required"))
		return
	}

	msg, err := h.identity.AdminRemoveAccount(r.Context(), username)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, msg)
}

// respondJSON sends a JSON response
func (h *ProfileHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
