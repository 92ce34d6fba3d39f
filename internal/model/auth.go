package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest es el cuerpo de POST /auth/login. Los clientes entran con su cédula.
type LoginRequest struct {
	Cedula   string `json:"cedula" validate:"required,numeric,min=8,max=10"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse es la respuesta de un login exitoso.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// JWTCustomClaims embebe los claims estándar (iss, sub, exp, ...).
type JWTCustomClaims struct {
	jwt.RegisteredClaims
}

// ForgotPasswordRequest inicia el flujo de restablecimiento. Solo lleva la cédula;
// el correo se resuelve en el directorio de clientes.
type ForgotPasswordRequest struct {
	Cedula string `json:"cedula" validate:"required,numeric,min=8,max=10"`
}

// ValidateTokenRequest comprueba un enlace sin consumirlo.
type ValidateTokenRequest struct {
	Token string `json:"token" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// ValidateTokenResponse es la respuesta de POST /password/validate.
type ValidateTokenResponse struct {
	Valid bool `json:"valid"`
}

// ResetPasswordRequest finaliza el restablecimiento consumiendo el token.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}
