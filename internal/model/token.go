package model

import (
	"strings"
	"time"
)

// ResetToken es el registro de un token de restablecimiento de contraseña.
// Vive en el TokenStore desde su emisión hasta que se consume o expira;
// nunca se modifica en el camino.
type ResetToken struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	Cedula    string    `json:"cedula,omitempty"` // solo para auditoría, nunca autoriza nada
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the token is past its TTL at the given instant.
func (t ResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// MatchesEmail compares the subject identity case-insensitively.
func (t ResetToken) MatchesEmail(email string) bool {
	return strings.EqualFold(t.Email, email)
}
