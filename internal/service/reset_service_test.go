package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"portal_creditos/internal/config"
	"portal_creditos/internal/model"
	"portal_creditos/internal/repository/mocks"
	"portal_creditos/internal/service"
	servicemocks "portal_creditos/internal/service/mocks"
	"portal_creditos/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ResetServiceTestSuite struct {
	suite.Suite

	mockClienteRepo *mocks.ClienteRepository
	mockMailer      *servicemocks.Mailer
	tokenStore      *store.MemoryTokenStore
	cfg             *config.Config
	resetService    service.ResetService
}

func (s *ResetServiceTestSuite) SetupTest() {
	s.mockClienteRepo = new(mocks.ClienteRepository)
	s.mockMailer = new(servicemocks.Mailer)
	s.tokenStore = store.NewMemoryTokenStore()

	s.cfg = &config.Config{
		App: config.AppConfig{
			Name:        "Portal Creditos",
			FrontendURL: "http://localhost:3000",
		},
		Reset: config.ResetConfig{
			TokenTTL:      time.Hour,
			SweepInterval: 10 * time.Minute,
		},
	}

	s.resetService = service.NewResetService(nil, s.mockClienteRepo, s.tokenStore, s.mockMailer, s.cfg)
}

func TestResetService(t *testing.T) {
	suite.Run(t, new(ResetServiceTestSuite))
}

func (s *ResetServiceTestSuite) seedToken(token, email string, ttl time.Duration) model.ResetToken {
	now := time.Now()
	record := model.ResetToken{
		Token:     token,
		Email:     email,
		Cedula:    "12345678",
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
	s.Require().NoError(s.tokenStore.Put(context.Background(), record))
	return record
}

func (s *ResetServiceTestSuite) TestRequestPasswordReset() {
	activeCliente := &model.Cliente{
		ClienteID: uuid.New(),
		Cedula:    "12345678",
		Email:     "cliente@example.com",
		Activo:    true,
	}

	testCases := []struct {
		name        string
		cedula      string
		setupMocks  func()
		checkResult func(err error)
	}{
		{
			name:   "Success - token emitido y correo enviado",
			cedula: "12345678",
			setupMocks: func() {
				s.mockClienteRepo.On("FindByCedula", mock.Anything, mock.Anything, "12345678").Return(activeCliente, nil).Once()
				s.mockMailer.On("Send", mock.Anything, "cliente@example.com", mock.Anything, mock.Anything, mock.Anything).
					Run(func(args mock.Arguments) {
						// El cuerpo debe llevar el enlace de restablecimiento.
						textBody := args.String(4)
						s.Contains(textBody, "http://localhost:3000/restablecer?token=")
					}).
					Return(nil).Once()
			},
			checkResult: func(err error) {
				s.NoError(err)
				s.Equal(1, s.tokenStore.Len())
			},
		},
		{
			name:   "Cedula desconocida - exito silencioso, sin correo",
			cedula: "99999999",
			setupMocks: func() {
				s.mockClienteRepo.On("FindByCedula", mock.Anything, mock.Anything, "99999999").Return(nil, model.ErrNotFound).Once()
			},
			checkResult: func(err error) {
				s.NoError(err)
				s.Equal(0, s.tokenStore.Len())
				s.mockMailer.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			},
		},
		{
			name:   "Cuenta inactiva - exito silencioso, sin correo",
			cedula: "12345678",
			setupMocks: func() {
				inactive := *activeCliente
				inactive.Activo = false
				s.mockClienteRepo.On("FindByCedula", mock.Anything, mock.Anything, "12345678").Return(&inactive, nil).Once()
			},
			checkResult: func(err error) {
				s.NoError(err)
				s.Equal(0, s.tokenStore.Len())
			},
		},
		{
			name:   "Fallo de transporte de correo",
			cedula: "12345678",
			setupMocks: func() {
				s.mockClienteRepo.On("FindByCedula", mock.Anything, mock.Anything, "12345678").Return(activeCliente, nil).Once()
				s.mockMailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(model.NewMailError(model.MailErrAuth, model.ErrMailTransport)).Once()
			},
			checkResult: func(err error) {
				s.Error(err)
				var appErr *model.AppError
				s.ErrorAs(err, &appErr)
				s.Equal("EMAIL_SEND_FAILED", appErr.Detail.Code)
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			tc.setupMocks()

			err := s.resetService.RequestPasswordReset(context.Background(), tc.cedula)

			tc.checkResult(err)
			s.mockClienteRepo.AssertExpectations(s.T())
			s.mockMailer.AssertExpectations(s.T())
		})
	}
}

func (s *ResetServiceTestSuite) TestValidateToken() {
	ctx := context.Background()

	s.Run("token valido", func() {
		s.SetupTest()
		s.seedToken("tok-valido", "cliente@example.com", time.Hour)

		valid, err := s.resetService.ValidateToken(ctx, "tok-valido", "cliente@example.com")
		s.NoError(err)
		s.True(valid)

		// Validar no consume: sigue siendo válido.
		valid, err = s.resetService.ValidateToken(ctx, "tok-valido", "cliente@example.com")
		s.NoError(err)
		s.True(valid)
	})

	s.Run("comparacion de correo sin distinguir mayusculas", func() {
		s.SetupTest()
		s.seedToken("tok-valido", "Cliente@Example.com", time.Hour)

		valid, err := s.resetService.ValidateToken(ctx, "tok-valido", "cliente@example.com")
		s.NoError(err)
		s.True(valid)
	})

	s.Run("token inexistente", func() {
		s.SetupTest()

		valid, err := s.resetService.ValidateToken(ctx, "no-existe", "cliente@example.com")
		s.NoError(err)
		s.False(valid)
	})

	s.Run("token vencido se elimina aunque el barrido no haya corrido", func() {
		s.SetupTest()
		s.seedToken("tok-vencido", "cliente@example.com", -time.Second)

		valid, err := s.resetService.ValidateToken(ctx, "tok-vencido", "cliente@example.com")
		s.NoError(err)
		s.False(valid)
		// Limpieza inmediata del vencido.
		s.Equal(0, s.tokenStore.Len())
	})

	s.Run("correo equivocado no destruye el token", func() {
		s.SetupTest()
		s.seedToken("tok-valido", "cliente@example.com", time.Hour)

		valid, err := s.resetService.ValidateToken(ctx, "tok-valido", "otra@example.com")
		s.NoError(err)
		s.False(valid)

		// El token sobrevive al intento con correo equivocado.
		valid, err = s.resetService.ValidateToken(ctx, "tok-valido", "cliente@example.com")
		s.NoError(err)
		s.True(valid)
	})
}

func (s *ResetServiceTestSuite) TestResetPassword() {
	ctx := context.Background()
	clienteID := uuid.New()
	cliente := &model.Cliente{
		ClienteID: clienteID,
		Cedula:    "12345678",
		Email:     "cliente@example.com",
		Activo:    true,
	}

	s.Run("exito y consumo unico", func() {
		s.SetupTest()
		s.seedToken("tok-valido", "cliente@example.com", time.Hour)
		s.mockClienteRepo.On("FindByEmail", mock.Anything, mock.Anything, "cliente@example.com").Return(cliente, nil).Once()
		s.mockClienteRepo.On("UpdatePasswordHash", mock.Anything, mock.Anything, clienteID, mock.AnythingOfType("string")).Return(nil).Once()

		err := s.resetService.ResetPassword(ctx, "tok-valido", "cliente@example.com", "nueva-clave")
		s.NoError(err)
		s.Equal(0, s.tokenStore.Len())

		// Re-presentar el token consumido siempre falla.
		err = s.resetService.ResetPassword(ctx, "tok-valido", "cliente@example.com", "nueva-clave")
		s.Error(err)
		var appErr *model.AppError
		s.ErrorAs(err, &appErr)
		s.Equal("INVALID_TOKEN", appErr.Detail.Code)

		s.mockClienteRepo.AssertExpectations(s.T())
	})

	s.Run("token vencido", func() {
		s.SetupTest()
		s.seedToken("tok-vencido", "cliente@example.com", -time.Second)

		err := s.resetService.ResetPassword(ctx, "tok-vencido", "cliente@example.com", "nueva-clave")
		s.Error(err)
		var appErr *model.AppError
		s.ErrorAs(err, &appErr)
		s.Equal("INVALID_TOKEN", appErr.Detail.Code)
		s.Equal(0, s.tokenStore.Len())
	})

	s.Run("correo equivocado no gasta el token", func() {
		s.SetupTest()
		s.seedToken("tok-valido", "cliente@example.com", time.Hour)

		err := s.resetService.ResetPassword(ctx, "tok-valido", "otra@example.com", "nueva-clave")
		s.Error(err)
		s.Equal(1, s.tokenStore.Len())
	})

	s.Run("fallo al actualizar la credencial deja el token gastado", func() {
		// Comportamiento deliberado: el consumo no se revierte. El cliente
		// debe pedir un enlace nuevo.
		s.SetupTest()
		s.seedToken("tok-valido", "cliente@example.com", time.Hour)
		s.mockClienteRepo.On("FindByEmail", mock.Anything, mock.Anything, "cliente@example.com").Return(cliente, nil).Once()
		s.mockClienteRepo.On("UpdatePasswordHash", mock.Anything, mock.Anything, clienteID, mock.AnythingOfType("string")).
			Return(model.ErrInternalServer).Once()

		err := s.resetService.ResetPassword(ctx, "tok-valido", "cliente@example.com", "nueva-clave")
		s.Error(err)
		s.Equal(0, s.tokenStore.Len())
	})
}

func (s *ResetServiceTestSuite) TestIssuedTokensAreUnpredictable() {
	cliente := &model.Cliente{
		ClienteID: uuid.New(),
		Cedula:    "12345678",
		Email:     "cliente@example.com",
		Activo:    true,
	}

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		s.SetupTest()
		var captured string
		s.mockClienteRepo.On("FindByCedula", mock.Anything, mock.Anything, "12345678").Return(cliente, nil).Once()
		s.mockMailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				textBody := args.String(4)
				idx := strings.Index(textBody, "token=")
				s.Require().GreaterOrEqual(idx, 0)
				captured = strings.Fields(textBody[idx+len("token="):])[0]
			}).
			Return(nil).Once()

		s.Require().NoError(s.resetService.RequestPasswordReset(context.Background(), "12345678"))

		// 32 bytes aleatorios en hex: 64 caracteres, nunca repetidos.
		s.Len(captured, 64)
		s.False(seen[captured], "token repetido")
		seen[captured] = true
	}
}
