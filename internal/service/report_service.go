package service

import (
	"context"

	"portal_creditos/internal/middleware"
	"portal_creditos/internal/model"
	"portal_creditos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportService gestiona los reportes de falla de los clientes autenticados.
type ReportService interface {
	CreateReport(ctx context.Context, clienteID uuid.UUID, req *model.CreateReportRequest) (*model.ReporteFalla, error)
	ListReports(ctx context.Context, clienteID uuid.UUID) ([]model.ReporteFalla, error)
}

type reportService struct {
	db         *gorm.DB
	reportRepo repository.ReportRepository
}

func NewReportService(db *gorm.DB, reportRepo repository.ReportRepository) ReportService {
	return &reportService{
		db:         db,
		reportRepo: reportRepo,
	}
}

func (s *reportService) CreateReport(ctx context.Context, clienteID uuid.UUID, req *model.CreateReportRequest) (*model.ReporteFalla, error) {
	logger := middleware.GetLogger(ctx)

	reporte := &model.ReporteFalla{
		ReporteID:   uuid.New(),
		ClienteID:   clienteID,
		Categoria:   req.Categoria,
		Descripcion: req.Descripcion,
	}

	if err := s.reportRepo.Create(ctx, s.db, reporte); err != nil {
		logger.Error("Failed to create reporte", "error", err, "cliente_id", clienteID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "No se pudo registrar el reporte.", "", err)
	}

	logger.Info("Reporte created", "reporte_id", reporte.ReporteID, "cliente_id", clienteID)
	return reporte, nil
}

func (s *reportService) ListReports(ctx context.Context, clienteID uuid.UUID) ([]model.ReporteFalla, error) {
	reportes, err := s.reportRepo.ListByCliente(ctx, s.db, clienteID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "No se pudieron obtener los reportes.", "", err)
	}
	return reportes, nil
}
