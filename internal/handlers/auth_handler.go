package handlers

import (
	"errors"
	"net/http"

	"portal_creditos/internal/middleware"
	"portal_creditos/internal/model"
	"portal_creditos/internal/service"
	"portal_creditos/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// Login autentica al cliente con cédula y contraseña y devuelve el JWT.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.LoginRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode login request body", "error", err)
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "El cuerpo de la solicitud no tiene un formato válido.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed for login", "errors", validationErrors.Error())
			appErr := webutil.NewValidationErrorResponse(validationErrors)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation for login", "error", err)
			webutil.HandleError(w, logger, err)
		}
		return
	}

	loginResponse, err := h.service.Login(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, loginResponse, logger)
}

// GetMe devuelve los datos del cliente autenticado.
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	clienteID, err := middleware.GetClienteIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	cliente, err := h.service.GetCliente(r.Context(), clienteID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	response := &model.ClienteResponse{
		ClienteID: cliente.ClienteID,
		Cedula:    cliente.Cedula,
		Nombre:    cliente.Nombre,
		Email:     cliente.Email,
		Activo:    cliente.Activo,
		CreatedAt: cliente.CreatedAt,
	}

	webutil.RespondWithJSON(w, http.StatusOK, response, logger)
}
