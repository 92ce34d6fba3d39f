package service

import (
	"context"
	"errors"
	"time"

	"portal_creditos/internal/config"
	"portal_creditos/internal/middleware"
	"portal_creditos/internal/model"
	"portal_creditos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService autentica clientes por cédula y emite el JWT de sesión.
type AuthService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	GetCliente(ctx context.Context, clienteID uuid.UUID) (*model.Cliente, error)
}

type authService struct {
	db          *gorm.DB
	clienteRepo repository.ClienteRepository
	cfg         *config.Config
}

func NewAuthService(db *gorm.DB, clienteRepo repository.ClienteRepository, cfg *config.Config) AuthService {
	return &authService{
		db:          db,
		clienteRepo: clienteRepo,
		cfg:         cfg,
	}
}

func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	logger := middleware.GetLogger(ctx).With("cedula", req.Cedula)

	cliente, err := s.clienteRepo.FindByCedula(ctx, s.db, req.Cedula)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Login failed: cliente not found")
			return nil, model.NewAppError("AUTHENTICATION_FAILED", "La cédula o la contraseña no son correctas.", "", model.ErrInvalidInput)
		}
		logger.Error("Login failed: db error on FindByCedula", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Ocurrió un error en el servidor.", "", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(cliente.PasswordHash), []byte(req.Password))
	if err != nil {
		logger.Warn("Login failed: password mismatch", "cliente_id", cliente.ClienteID)
		return nil, model.NewAppError("AUTHENTICATION_FAILED", "La cédula o la contraseña no son correctas.", "", model.ErrInvalidInput)
	}

	if !cliente.Activo {
		logger.Warn("Login failed: account not active", "cliente_id", cliente.ClienteID)
		return nil, model.NewAppError("ACCOUNT_NOT_ACTIVE", "La cuenta está desactivada. Comunícate con atención al cliente.", "", model.ErrForbidden)
	}

	claims := &jwt.RegisteredClaims{
		Issuer:    s.cfg.App.Name,
		Subject:   cliente.ClienteID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.JWT.AccessTokenTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		logger.Error("Failed to sign JWT", "error", err, "cliente_id", cliente.ClienteID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "No se pudo iniciar la sesión.", "", err)
	}

	logger.Info("Login successful", "cliente_id", cliente.ClienteID)
	return &model.LoginResponse{AccessToken: signedToken}, nil
}

func (s *authService) GetCliente(ctx context.Context, clienteID uuid.UUID) (*model.Cliente, error) {
	logger := middleware.GetLogger(ctx)
	cliente, err := s.clienteRepo.FindByID(ctx, s.db, clienteID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Cliente not found", "cliente_id", clienteID.String())
			return nil, model.NewAppError("CLIENTE_NOT_FOUND", "El cliente no existe.", "", model.ErrNotFound)
		}
		logger.Error("Error finding cliente by ID", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Ocurrió un error en el servidor.", "", err)
	}
	return cliente, nil
}
