package handlers

import (
	"encoding/json"
	"net/http"

	"ntlango-api/application/ports"
	"ntlango-api/interfaces/http/rest/middleware"
	apperrors "ntlango-api/pkg/errors"
	"ntlango-api/pkg/utils"

	"go.uber.org/zap"
)

// AuthHandler handles registration and session HTTP requests. All identity
// decisions are delegated to the provider; this layer only shapes requests
// and responses.
type AuthHandler struct {
	identity     ports.IdentityProvider
	errorHandler *apperrors.ErrorHandler
	logger       *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(identity ports.IdentityProvider, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		identity:     identity,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// VerifyEmailRequest represents the request body for email confirmation
type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req ports.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInvalidArgumentError("Invalid request body"))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInvalidArgumentError(err.Error()))
		return
	}

	msg, err := h.identity.Register(r.Context(), req)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, msg)
}

// VerifyEmail handles POST /auth/verifyEmail
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req VerifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInvalidArgumentError("Invalid request body"))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInvalidArgumentError(err.Error()))
		return
	}

	msg, err := h.identity.VerifyEmail(r.Context(), req.Email, req.Code)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, msg)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req ports.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInvalidArgumentError("Invalid request body"))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInvalidArgumentError(err.Error()))
		return
	}

	token, err := h.identity.Login(r.Context(), req)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, token)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	accessToken, ok := middleware.AccessTokenFromContext(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, apperrors.NewUnauthenticatedError("Missing authorization header"))
		return
	}

	msg, err := h.identity.Logout(r.Context(), accessToken)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, msg)
}

// respondJSON sends a JSON response
func (h *AuthHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
