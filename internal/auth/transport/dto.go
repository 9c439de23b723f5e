// Package transport defines request/response DTOs for the auth module.
package transport

import "recruit_portal_backend/internal/auth/service"

// LoginRequest is the credential payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the opaque session ID and the authenticated user.
type LoginResponse struct {
	SessionID string           `json:"sessionId"`
	User      service.UserView `json:"user"`
}

// LogoutResponse acknowledges session destruction.
type LogoutResponse struct {
	Success bool `json:"success"`
}
