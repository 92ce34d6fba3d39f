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

// forgotPasswordMessage es la única respuesta de POST /password/forgot:
// idéntica exista o no la cédula, para no permitir enumerar cuentas.
const forgotPasswordMessage = "Si la cédula está registrada, enviamos un enlace de restablecimiento al correo asociado. Revisa también la carpeta de spam."

type ResetHandler struct {
	service service.ResetService
}

func NewResetHandler(s service.ResetService) *ResetHandler {
	return &ResetHandler{service: s}
}

// RequestPasswordReset inicia el flujo: cédula → correo → enlace por email.
func (h *ResetHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.ForgotPasswordRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode forgot-password request body", "error", err)
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "El cuerpo de la solicitud no tiene un formato válido.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			appErr := webutil.NewValidationErrorResponse(validationErrors)
			webutil.HandleError(w, logger, appErr)
		} else {
			webutil.HandleError(w, logger, err)
		}
		return
	}

	if err := h.service.RequestPasswordReset(r.Context(), req.Cedula); err != nil {
		// Solo fallos de envío o internos llegan acá; "cédula no encontrada" ya
		// fue colapsado a éxito en el servicio.
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": forgotPasswordMessage,
	}, logger)
}

// ValidateToken responde {valid} sin consumir ni borrar nada salvo expiración.
func (h *ResetHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.ValidateTokenRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode validate-token request body", "error", err)
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "El cuerpo de la solicitud no tiene un formato válido.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			appErr := webutil.NewValidationErrorResponse(validationErrors)
			webutil.HandleError(w, logger, appErr)
		} else {
			webutil.HandleError(w, logger, err)
		}
		return
	}

	valid, err := h.service.ValidateToken(r.Context(), req.Token, req.Email)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.ValidateTokenResponse{Valid: valid}, logger)
}

// ResetPassword consume el token y actualiza la contraseña.
func (h *ResetHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.ResetPasswordRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode reset-password request body", "error", err)
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "El cuerpo de la solicitud no tiene un formato válido.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			appErr := webutil.NewValidationErrorResponse(validationErrors)
			webutil.HandleError(w, logger, appErr)
		} else {
			webutil.HandleError(w, logger, err)
		}
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Token, req.Email, req.Password); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "La contraseña se actualizó correctamente.",
	}, logger)
}
