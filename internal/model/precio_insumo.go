package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PrecioInsumo registra cada precio informado por un proveedor para un insumo.
// Los registros son historia append-only; la fila con Vigente=true es la que
// alimenta el costeo. Invariante (aplicación, no base): a lo sumo una fila
// vigente por par (insumo, proveedor) — el write path desmarca la anterior
// dentro de la misma transacción que marca la nueva.
type PrecioInsumo struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InsumoID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProveedorID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Precio      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Fecha       time.Time       `gorm:"not null"`
	Vigente     bool            `gorm:"not null;default:true;index"`
	CreatedAt   time.Time

	Insumo    Insumo    `gorm:"foreignKey:InsumoID"`
	Proveedor Proveedor `gorm:"foreignKey:ProveedorID"`
}

func (PrecioInsumo) TableName() string { return "precios_insumo" }
