package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReporteFalla es un reporte de falla enviado por un cliente autenticado.
type ReporteFalla struct {
	ReporteID   uuid.UUID      `gorm:"type:uuid;primaryKey" json:"reporte_id"`
	ClienteID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"cliente_id"`
	Categoria   string         `gorm:"not null" json:"categoria"`
	Descripcion string         `gorm:"not null" json:"descripcion"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ReporteFalla) TableName() string {
	return "reportes_falla"
}

// CreateReportRequest es el cuerpo de POST /reportes.
type CreateReportRequest struct {
	Categoria   string `json:"categoria" validate:"required,oneof=acceso pagos datos otro"`
	Descripcion string `json:"descripcion" validate:"required,min=10,max=2000"`
}

// ReportResponse es la vista de un reporte que se devuelve a la API.
type ReportResponse struct {
	ReporteID   uuid.UUID `json:"reporte_id"`
	Categoria   string    `json:"categoria"`
	Descripcion string    `json:"descripcion"`
	CreatedAt   time.Time `json:"created_at"`
}
