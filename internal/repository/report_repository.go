//go:generate mockery --name ReportRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"portal_creditos/internal/middleware"
	"portal_creditos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(ctx context.Context, db *gorm.DB, reporte *model.ReporteFalla) error
	FindByID(ctx context.Context, db *gorm.DB, reporteID uuid.UUID) (*model.ReporteFalla, error)
	ListByCliente(ctx context.Context, db *gorm.DB, clienteID uuid.UUID) ([]model.ReporteFalla, error)
}

type gormReportRepository struct{}

func NewGormReportRepository() ReportRepository {
	return &gormReportRepository{}
}

func (r *gormReportRepository) Create(ctx context.Context, db *gorm.DB, reporte *model.ReporteFalla) error {
	logger := middleware.GetLogger(ctx)
	if err := db.WithContext(ctx).Create(reporte).Error; err != nil {
		logger.Error("Error creating reporte in DB", "error", err, "cliente_id", reporte.ClienteID)
		return fmt.Errorf("gormReportRepository.Create: %w", err)
	}
	return nil
}

func (r *gormReportRepository) FindByID(ctx context.Context, db *gorm.DB, reporteID uuid.UUID) (*model.ReporteFalla, error) {
	logger := middleware.GetLogger(ctx)
	var reporte model.ReporteFalla
	if err := db.WithContext(ctx).Where("reporte_id = ?", reporteID).First(&reporte).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding reporte by ID", "error", err)
		return nil, fmt.Errorf("gormReportRepository.FindByID: %w", err)
	}
	return &reporte, nil
}

func (r *gormReportRepository) ListByCliente(ctx context.Context, db *gorm.DB, clienteID uuid.UUID) ([]model.ReporteFalla, error) {
	logger := middleware.GetLogger(ctx)
	var reportes []model.ReporteFalla
	err := db.WithContext(ctx).
		Where("cliente_id = ?", clienteID).
		Order("created_at DESC").
		Find(&reportes).Error
	if err != nil {
		logger.Error("Error listing reportes by cliente", "error", err, "cliente_id", clienteID)
		return nil, fmt.Errorf("gormReportRepository.ListByCliente: %w", err)
	}
	return reportes, nil
}
