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

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// CreateReport registra un reporte de falla del cliente autenticado.
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	clienteID, err := middleware.GetClienteIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.CreateReportRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode create-report request body", "error", err)
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

	reporte, err := h.service.CreateReport(r.Context(), clienteID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	response := &model.ReportResponse{
		ReporteID:   reporte.ReporteID,
		Categoria:   reporte.Categoria,
		Descripcion: reporte.Descripcion,
		CreatedAt:   reporte.CreatedAt,
	}
	webutil.RespondWithJSON(w, http.StatusCreated, response, logger)
}

// ListReports devuelve los reportes del cliente autenticado, el más reciente primero.
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	clienteID, err := middleware.GetClienteIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	reportes, err := h.service.ListReports(r.Context(), clienteID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	response := make([]model.ReportResponse, 0, len(reportes))
	for _, reporte := range reportes {
		response = append(response, model.ReportResponse{
			ReporteID:   reporte.ReporteID,
			Categoria:   reporte.Categoria,
			Descripcion: reporte.Descripcion,
			CreatedAt:   reporte.CreatedAt,
		})
	}
	webutil.RespondWithJSON(w, http.StatusOK, response, logger)
}
