// Package store guarda los tokens de restablecimiento durante su ciclo de vida:
// emitido → consumido o expirado. Es el único estado mutable compartido del
// flujo de restablecimiento.
package store

import (
	"context"
	"time"

	"portal_creditos/internal/model"
)

// TokenStore mapea token → registro. El emisor escribe, el validador lee y
// borra, y el barrido borra en lote; toda coordinación pasa por la propia
// implementación.
type TokenStore interface {
	// Put inserta el registro. Una colisión de clave no corrompe el estado:
	// gana la última escritura.
	Put(ctx context.Context, record model.ResetToken) error

	// Get devuelve el registro o model.ErrNotFound. Sin efectos secundarios.
	Get(ctx context.Context, token string) (*model.ResetToken, error)

	// Remove elimina el token. Es idempotente: borrar un token ausente no es error.
	Remove(ctx context.Context, token string) error

	// Consume elimina y devuelve el registro en una sola operación atómica.
	// Ante llamadas concurrentes sobre el mismo token, exactamente una recibe
	// el registro; las demás reciben model.ErrNotFound.
	Consume(ctx context.Context, token string) (*model.ResetToken, error)

	// SweepExpired purga los registros con ExpiresAt anterior a now y devuelve
	// cuántos eliminó. La validez nunca depende de que el barrido haya corrido:
	// la validación re-chequea la expiración por su cuenta.
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}
