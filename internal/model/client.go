package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cliente es el titular de un crédito registrado en el portal.
// La cédula es la clave de búsqueda principal.
type Cliente struct {
	ClienteID    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"cliente_id"`
	Cedula       string         `gorm:"unique;not null" json:"cedula"`
	Nombre       string         `gorm:"not null" json:"nombre"`
	Email        string         `gorm:"unique;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Activo       bool           `json:"activo" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Cliente) TableName() string {
	return "clientes"
}

type ContextKey string

const (
	ClienteIDKey ContextKey = "clienteID"
)

// ClienteResponse es la vista del cliente que se devuelve a la API.
type ClienteResponse struct {
	ClienteID uuid.UUID `json:"cliente_id"`
	Cedula    string    `json:"cedula"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
}
