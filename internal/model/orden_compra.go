package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
// borrador → enviada → (recibida | recibida_parcial | anulada).
// La recepción la dispara la carga de la factura que la salda; la anulación
// manual sólo es válida en borrador.
const (
	OrdenBorrador        = "borrador"
	OrdenEnviada         = "enviada"
	OrdenRecibida        = "recibida"
	OrdenRecibidaParcial = "recibida_parcial"
	OrdenAnulada         = "anulada"
)

// OrdenCompra is a purchase order sent to one supplier.
// Numero is the human-readable sequential identifier (A01-0001 style).
// OrdenOrigenID links a shortfall order back to the order whose undelivered
// quantities it covers; at most one shortfall order may exist per origin.
type OrdenCompra struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero        string          `gorm:"type:varchar(10);uniqueIndex;not null"`
	ProveedorID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Fecha         time.Time       `gorm:"not null"`
	Estado        string          `gorm:"type:varchar(20);not null;default:'borrador'"`
	OrdenOrigenID *uuid.UUID      `gorm:"type:uuid;index"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	// PDFPath is relative to PDF_STORAGE_PATH; set by the documento worker.
	PDFPath   *string `gorm:"column:pdf_path"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Proveedor Proveedor         `gorm:"foreignKey:ProveedorID"`
	Items     []OrdenCompraItem `gorm:"foreignKey:OrdenCompraID"`
}

func (OrdenCompra) TableName() string { return "ordenes_compra" }

// OrdenCompraItem snapshots the agreed unit price at order time; Subtotal is
// Cantidad * PrecioUnitario, persisted so the document never shifts with
// later price changes.
type OrdenCompraItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenCompraID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	InsumoID       uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Insumo Insumo `gorm:"foreignKey:InsumoID"`
}

func (OrdenCompraItem) TableName() string { return "ordenes_compra_items" }
