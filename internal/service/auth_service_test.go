package service_test

import (
	"context"
	"testing"
	"time"

	"portal_creditos/internal/config"
	"portal_creditos/internal/model"
	"portal_creditos/internal/repository/mocks"
	"portal_creditos/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Portal Creditos"},
		JWT: config.JWTConfig{
			SecretKey:      "test-secret-key",
			AccessTokenTTL: 15 * time.Minute,
		},
	}
}

func TestAuthService_Login(t *testing.T) {
	clienteID := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-correcta"), bcrypt.DefaultCost)
	require.NoError(t, err)

	activeCliente := &model.Cliente{
		ClienteID:    clienteID,
		Cedula:       "12345678",
		Email:        "cliente@example.com",
		PasswordHash: string(hash),
		Activo:       true,
	}

	t.Run("login exitoso emite un JWT verificable", func(t *testing.T) {
		clienteRepo := new(mocks.ClienteRepository)
		clienteRepo.On("FindByCedula", mock.Anything, mock.Anything, "12345678").Return(activeCliente, nil).Once()

		cfg := newAuthTestConfig()
		svc := service.NewAuthService(nil, clienteRepo, cfg)

		resp, err := svc.Login(context.Background(), &model.LoginRequest{Cedula: "12345678", Password: "clave-correcta"})
		require.NoError(t, err)
		require.NotEmpty(t, resp.AccessToken)

		claims := &jwt.RegisteredClaims{}
		parsed, err := jwt.ParseWithClaims(resp.AccessToken, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWT.SecretKey), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, clienteID.String(), claims.Subject)
		clienteRepo.AssertExpectations(t)
	})

	t.Run("cedula desconocida y clave equivocada devuelven el mismo mensaje", func(t *testing.T) {
		clienteRepo := new(mocks.ClienteRepository)
		clienteRepo.On("FindByCedula", mock.Anything, mock.Anything, "99999999").Return(nil, model.ErrNotFound).Once()
		clienteRepo.On("FindByCedula", mock.Anything, mock.Anything, "12345678").Return(activeCliente, nil).Once()

		svc := service.NewAuthService(nil, clienteRepo, newAuthTestConfig())

		_, errUnknown := svc.Login(context.Background(), &model.LoginRequest{Cedula: "99999999", Password: "clave-correcta"})
		_, errWrongPassword := svc.Login(context.Background(), &model.LoginRequest{Cedula: "12345678", Password: "clave-equivocada"})

		var appErrUnknown, appErrWrong *model.AppError
		require.ErrorAs(t, errUnknown, &appErrUnknown)
		require.ErrorAs(t, errWrongPassword, &appErrWrong)
		assert.Equal(t, appErrUnknown.Detail, appErrWrong.Detail)
	})

	t.Run("cuenta desactivada no puede iniciar sesion", func(t *testing.T) {
		inactive := *activeCliente
		inactive.Activo = false

		clienteRepo := new(mocks.ClienteRepository)
		clienteRepo.On("FindByCedula", mock.Anything, mock.Anything, "12345678").Return(&inactive, nil).Once()

		svc := service.NewAuthService(nil, clienteRepo, newAuthTestConfig())

		_, err := svc.Login(context.Background(), &model.LoginRequest{Cedula: "12345678", Password: "clave-correcta"})
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "ACCOUNT_NOT_ACTIVE", appErr.Detail.Code)
		assert.ErrorIs(t, err, model.ErrForbidden)
	})
}
