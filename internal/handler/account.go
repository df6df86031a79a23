package handler

import (
	"encoding/json"
	"net/http"

	"magicgatherer-api/internal/service"
	"magicgatherer-api/pkg/apierror"
	"magicgatherer-api/pkg/response"
)

// AccountHandler handles authentication-related HTTP requests.
type AccountHandler struct {
	accounts *service.AccountService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ForgotPasswordRequest represents the request body for a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest represents the request body for a password reset.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// UserResponse is the public view of a registered user.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Login handles POST /api/auth/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		response.Error(w, apierror.BadRequest("username and password are required"))
		return
	}

	result, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.OK(w, result)
}

// Register handles POST /api/auth/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := h.accounts.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Created(w, UserResponse{ID: user.ID, Username: user.Username, Email: user.Email})
}

// ForgotPassword handles POST /api/auth/forgot-password
func (h *AccountHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Email == "" {
		response.Error(w, apierror.BadRequest("email is required"))
		return
	}

	if err := h.accounts.ForgotPassword(r.Context(), req.Email); err != nil {
		writeServiceError(w, err)
		return
	}
	response.Message(w, "reset link sent")
}

// ResetPassword handles POST /api/auth/reset-password
func (h *AccountHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Token == "" {
		response.Error(w, apierror.BadRequest("token is required"))
		return
	}

	if err := h.accounts.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		writeServiceError(w, err)
		return
	}
	response.Message(w, "password updated")
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return false
	}
	return true
}
