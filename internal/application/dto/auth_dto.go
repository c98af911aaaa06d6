package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// IdentityResponse identidad activa (sin password).
type IdentityResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

// LoginResponse token de sesión e identidad.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      IdentityResponse `json:"user"`
}

// MeResponse GET /api/auth/me: identidad y permisos derivados del rol.
type MeResponse struct {
	User          IdentityResponse `json:"user"`
	CanModify     bool             `json:"can_modify_catalog"`
	CanViewReport bool             `json:"can_view_dashboard"`
}
