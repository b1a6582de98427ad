package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FacturaProveedor is a supplier invoice. When OrdenCompraID is set the
// invoice settles that purchase order and drives its estado through the
// reconciliation (recibida / recibida_parcial). Anulada is a soft delete:
// reversing an invoice puts the linked order back in enviada and cancels
// any shortfall order it had spawned.
type FacturaProveedor struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProveedorID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Numero        string          `gorm:"not null"`
	Fecha         time.Time       `gorm:"not null"`
	OrdenCompraID *uuid.UUID      `gorm:"type:uuid;index"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Anulada       bool            `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Proveedor    Proveedor           `gorm:"foreignKey:ProveedorID"`
	Items        []FacturaItem       `gorm:"foreignKey:FacturaID"`
	Percepciones []FacturaPercepcion `gorm:"foreignKey:FacturaID"`
}

func (FacturaProveedor) TableName() string { return "facturas_proveedor" }

// FacturaItem is one delivered line of a supplier invoice.
type FacturaItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FacturaID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	InsumoID       uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Insumo Insumo `gorm:"foreignKey:InsumoID"`
}

func (FacturaItem) TableName() string { return "facturas_proveedor_items" }

// FacturaPercepcion is an extra tax or surcharge line on the invoice
// (percepciones IIBB, flete, etc.) — outside the item reconciliation.
type FacturaPercepcion struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FacturaID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Concepto  string          `gorm:"not null"`
	Monto     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (FacturaPercepcion) TableName() string { return "facturas_proveedor_percepciones" }
