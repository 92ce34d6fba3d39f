//go:generate mockery --name ClienteRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"portal_creditos/internal/middleware"
	"portal_creditos/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ClienteRepository es el directorio de clientes: resuelve cédula → cliente
// (y con él, su correo) y actualiza la credencial al final del flujo de
// restablecimiento.
type ClienteRepository interface {
	Create(ctx context.Context, db *gorm.DB, cliente *model.Cliente) error
	FindByID(ctx context.Context, db *gorm.DB, clienteID uuid.UUID) (*model.Cliente, error)
	FindByCedula(ctx context.Context, db *gorm.DB, cedula string) (*model.Cliente, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Cliente, error)
	UpdatePasswordHash(ctx context.Context, db *gorm.DB, clienteID uuid.UUID, passwordHash string) error
}

type gormClienteRepository struct{}

func NewGormClienteRepository() ClienteRepository {
	return &gormClienteRepository{}
}

func (r *gormClienteRepository) Create(ctx context.Context, db *gorm.DB, cliente *model.Cliente) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(cliente)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn("Duplicate key error on create cliente",
				"error", result.Error,
				"cedula", cliente.Cedula,
			)
			return model.ErrConflict
		}
		logger.Error("Error creating cliente in DB", "error", result.Error, "cedula", cliente.Cedula)
		return fmt.Errorf("gormClienteRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormClienteRepository) FindByID(ctx context.Context, db *gorm.DB, clienteID uuid.UUID) (*model.Cliente, error) {
	logger := middleware.GetLogger(ctx)
	var cliente model.Cliente
	if err := db.WithContext(ctx).Where("cliente_id = ?", clienteID).First(&cliente).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding cliente by ID", "error", err)
		return nil, fmt.Errorf("gormClienteRepository.FindByID: %w", err)
	}
	return &cliente, nil
}

func (r *gormClienteRepository) FindByCedula(ctx context.Context, db *gorm.DB, cedula string) (*model.Cliente, error) {
	logger := middleware.GetLogger(ctx)
	var cliente model.Cliente
	if err := db.WithContext(ctx).Where("cedula = ?", cedula).First(&cliente).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding cliente by cedula", "error", err)
		return nil, fmt.Errorf("gormClienteRepository.FindByCedula: %w", err)
	}
	return &cliente, nil
}

func (r *gormClienteRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Cliente, error) {
	logger := middleware.GetLogger(ctx)
	var cliente model.Cliente
	if err := db.WithContext(ctx).Where("lower(email) = lower(?)", email).First(&cliente).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding cliente by email", "error", err)
		return nil, fmt.Errorf("gormClienteRepository.FindByEmail: %w", err)
	}
	return &cliente, nil
}

func (r *gormClienteRepository) UpdatePasswordHash(ctx context.Context, db *gorm.DB, clienteID uuid.UUID, passwordHash string) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Model(&model.Cliente{}).
		Where("cliente_id = ?", clienteID).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		logger.Error("Error updating password hash", "error", result.Error, "cliente_id", clienteID)
		return fmt.Errorf("gormClienteRepository.UpdatePasswordHash: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
