package repository_test

import (
	"context"
	"testing"
	"time"

	"portal_creditos/internal/model"
	"portal_creditos/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.ReporteFalla{}))
	return db
}

func TestGormReportRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewGormReportRepository()
	ctx := context.Background()

	reporte := &model.ReporteFalla{
		ReporteID:   uuid.New(),
		ClienteID:   uuid.New(),
		Categoria:   "pagos",
		Descripcion: "No aparece el último pago aplicado al crédito.",
	}
	require.NoError(t, repo.Create(ctx, db, reporte))

	got, err := repo.FindByID(ctx, db, reporte.ReporteID)
	require.NoError(t, err)
	assert.Equal(t, reporte.ClienteID, got.ClienteID)
	assert.Equal(t, "pagos", got.Categoria)
	assert.WithinDuration(t, time.Now(), got.CreatedAt, 10*time.Second)
}

func TestGormReportRepository_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewGormReportRepository()

	_, err := repo.FindByID(context.Background(), db, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestGormReportRepository_ListByCliente(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewGormReportRepository()
	ctx := context.Background()

	clienteID := uuid.New()
	otroClienteID := uuid.New()

	for i, desc := range []string{
		"Primer reporte sobre el acceso al portal.",
		"Segundo reporte sobre el estado de cuenta.",
	} {
		reporte := &model.ReporteFalla{
			ReporteID:   uuid.New(),
			ClienteID:   clienteID,
			Categoria:   "acceso",
			Descripcion: desc,
			CreatedAt:   time.Now().Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, db, reporte))
	}
	require.NoError(t, repo.Create(ctx, db, &model.ReporteFalla{
		ReporteID:   uuid.New(),
		ClienteID:   otroClienteID,
		Categoria:   "otro",
		Descripcion: "Reporte de otro cliente que no debe aparecer.",
	}))

	reportes, err := repo.ListByCliente(ctx, db, clienteID)
	require.NoError(t, err)
	require.Len(t, reportes, 2)

	// Orden descendente por fecha de creación.
	assert.Equal(t, "Segundo reporte sobre el estado de cuenta.", reportes[0].Descripcion)
	for _, r := range reportes {
		assert.Equal(t, clienteID, r.ClienteID)
	}
}
