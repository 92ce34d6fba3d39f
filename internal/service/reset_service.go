package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"time"

	"portal_creditos/internal/config"
	"portal_creditos/internal/middleware"
	"portal_creditos/internal/model"
	"portal_creditos/internal/repository"
	"portal_creditos/internal/store"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ResetService implementa el ciclo de vida del token de restablecimiento:
// emisión, notificación, validación y consumo único.
type ResetService interface {
	// RequestPasswordReset emite un token para la cédula dada y envía el
	// enlace por correo. Si la cédula no existe devuelve nil igualmente: la
	// respuesta al cliente debe ser indistinguible del éxito.
	RequestPasswordReset(ctx context.Context, cedula string) error

	// ValidateToken responde si el par token/correo es válido, sin consumirlo.
	ValidateToken(ctx context.Context, token, email string) (bool, error)

	// ResetPassword consume el token y actualiza la credencial. El consumo es
	// atómico: de dos llamadas concurrentes con el mismo token, una sola gana.
	ResetPassword(ctx context.Context, token, email, newPassword string) error
}

type resetService struct {
	db          *gorm.DB
	clienteRepo repository.ClienteRepository
	tokens      store.TokenStore
	mailer      Mailer
	cfg         *config.Config
}

func NewResetService(db *gorm.DB, clienteRepo repository.ClienteRepository, tokens store.TokenStore, mailer Mailer, cfg *config.Config) ResetService {
	return &resetService{
		db:          db,
		clienteRepo: clienteRepo,
		tokens:      tokens,
		mailer:      mailer,
		cfg:         cfg,
	}
}

func (s *resetService) RequestPasswordReset(ctx context.Context, cedula string) error {
	logger := middleware.GetLogger(ctx).With("cedula", cedula)

	cliente, err := s.clienteRepo.FindByCedula(ctx, s.db, cedula)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// La respuesta al cliente es idéntica al éxito; solo el log distingue.
			logger.Warn("Password reset requested for unknown cedula")
			return nil
		}
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Ocurrió un error en el servidor.", "", err)
	}

	if !cliente.Activo {
		logger.Warn("Password reset requested for inactive account", "cliente_id", cliente.ClienteID)
		return nil
	}

	record, err := s.issueToken(ctx, cliente.Email, cedula)
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/restablecer?token=%s", s.cfg.App.FrontendURL, url.QueryEscape(record.Token))
	if err := s.sendResetNotification(ctx, cliente.Email, resetURL); err != nil {
		return err
	}

	logger.Info("Password reset email sent", "cliente_id", cliente.ClienteID)
	return nil
}

func (s *resetService) ValidateToken(ctx context.Context, token, email string) (bool, error) {
	logger := middleware.GetLogger(ctx)

	record, err := s.tokens.Get(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Validation of unknown reset token", "token_prefix", tokenPrefix(token))
			return false, nil
		}
		return false, model.NewAppError("INTERNAL_SERVER_ERROR", "Ocurrió un error en el servidor.", "", err)
	}

	if record.Expired(time.Now()) {
		// Limpieza inmediata: un token vencido no espera al barrido.
		logger.Warn("Validation of expired reset token", "token_prefix", tokenPrefix(token), "expires_at", record.ExpiresAt)
		if err := s.tokens.Remove(ctx, token); err != nil {
			logger.Error("Failed to remove expired reset token", "error", err)
		}
		return false, nil
	}

	if !record.MatchesEmail(email) {
		// La discordancia de correo no prueba que el token esté comprometido;
		// se mantiene vivo hasta su propia expiración o consumo.
		logger.Warn("Reset token email mismatch", "token_prefix", tokenPrefix(token))
		return false, nil
	}

	return true, nil
}

func (s *resetService) ResetPassword(ctx context.Context, token, email, newPassword string) error {
	logger := middleware.GetLogger(ctx)

	invalidLink := func(cause error) error {
		return model.NewAppError("INVALID_TOKEN", "El enlace no es válido o ha expirado.", "token", cause)
	}

	record, err := s.tokens.Get(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Reset attempt with unknown token", "token_prefix", tokenPrefix(token))
			return invalidLink(model.ErrInvalidInput)
		}
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Ocurrió un error en el servidor.", "", err)
	}

	if record.Expired(time.Now()) {
		logger.Warn("Reset attempt with expired token", "token_prefix", tokenPrefix(token), "expires_at", record.ExpiresAt)
		if err := s.tokens.Remove(ctx, token); err != nil {
			logger.Error("Failed to remove expired reset token", "error", err)
		}
		return invalidLink(model.ErrInvalidInput)
	}

	if !record.MatchesEmail(email) {
		logger.Warn("Reset attempt with mismatched email", "token_prefix", tokenPrefix(token))
		return invalidLink(model.ErrInvalidInput)
	}

	// Consumo atómico: si otra petición ganó la carrera, el token ya no está.
	record, err = s.tokens.Consume(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Reset token consumed by concurrent request", "token_prefix", tokenPrefix(token))
			return invalidLink(model.ErrInvalidInput)
		}
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Ocurrió un error en el servidor.", "", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Ocurrió un error al procesar la contraseña.", "", err)
	}

	cliente, err := s.clienteRepo.FindByEmail(ctx, s.db, record.Email)
	if err != nil {
		// El token ya se gastó; el cliente deberá pedir un enlace nuevo.
		logger.Error("Cliente lookup failed after token consumption", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "No se pudo actualizar la contraseña.", "", err)
	}

	if err := s.clienteRepo.UpdatePasswordHash(ctx, s.db, cliente.ClienteID, string(hashedPassword)); err != nil {
		logger.Error("Password update failed after token consumption", "error", err, "cliente_id", cliente.ClienteID)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "No se pudo actualizar la contraseña.", "", err)
	}

	logger.Info("Password reset successfully", "cliente_id", cliente.ClienteID)
	return nil
}

// --- helpers ---

// issueToken genera 32 bytes aleatorios (256 bits), guarda el registro y lo devuelve.
func (s *resetService) issueToken(ctx context.Context, email, cedula string) (*model.ResetToken, error) {
	logger := middleware.GetLogger(ctx)

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		logger.Error("Failed to generate random bytes for token", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "No se pudo generar el enlace.", "", err)
	}

	now := time.Now()
	record := model.ResetToken{
		Token:     hex.EncodeToString(tokenBytes),
		Email:     email,
		Cedula:    cedula,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.Reset.TokenTTL),
	}

	if err := s.tokens.Put(ctx, record); err != nil {
		logger.Error("Failed to store reset token", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "No se pudo generar el enlace.", "", err)
	}
	return &record, nil
}

func (s *resetService) sendResetNotification(ctx context.Context, email, resetURL string) error {
	logger := middleware.GetLogger(ctx)

	subject := fmt.Sprintf("[%s] Restablece tu contraseña", s.cfg.App.Name)
	ttl := formatTTL(s.cfg.Reset.TokenTTL)
	textBody := fmt.Sprintf(
		"Recibimos una solicitud para restablecer tu contraseña.\n\n"+
			"Abre el siguiente enlace para continuar:\n%s\n\n"+
			"El enlace vence en %s. Si no solicitaste este cambio, ignora este correo.",
		resetURL, ttl,
	)
	htmlBody := fmt.Sprintf(
		`<p>Recibimos una solicitud para restablecer tu contraseña.</p>`+
			`<p><a href="%s">Restablecer contraseña</a></p>`+
			`<p>El enlace vence en %s. Si no solicitaste este cambio, ignora este correo.</p>`,
		resetURL, ttl,
	)

	logger.Info("Sending password reset email", "to", email)
	if err := s.mailer.Send(ctx, email, subject, htmlBody, textBody); err != nil {
		return mailErrorToAppError(ctx, err)
	}
	return nil
}

// mailErrorToAppError traduce la categoría del fallo de transporte al mensaje
// del cliente. El detalle crudo nunca sale del log.
func mailErrorToAppError(ctx context.Context, err error) *model.AppError {
	logger := middleware.GetLogger(ctx)

	category := model.MailErrUnknown
	var mailErr *model.MailError
	if errors.As(err, &mailErr) {
		category = mailErr.Category
	}
	logger.Error("Reset email send failed", "category", string(category), "error", err)

	switch category {
	case model.MailErrRateLimited, model.MailErrTimeout:
		return model.NewAppError("EMAIL_SEND_FAILED", "No pudimos enviar el correo en este momento. Intenta nuevamente en unos minutos.", "", model.ErrMailTransport)
	default:
		return model.NewAppError("EMAIL_SEND_FAILED", "No pudimos enviar el correo. Intenta nuevamente más tarde.", "", model.ErrMailTransport)
	}
}

func formatTTL(d time.Duration) string {
	if d >= time.Hour {
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hora"
		}
		return fmt.Sprintf("%d horas", hours)
	}
	return fmt.Sprintf("%d minutos", int(d.Minutes()))
}

func tokenPrefix(token string) string {
	if len(token) > 8 {
		return token[:8]
	}
	return token
}
