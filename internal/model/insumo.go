package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Insumo is a raw ingredient purchased from suppliers.
// MermaPct is the expected waste percentage applied on top of the purchase
// price; IVAPct is the VAT rate of the ingredient. Both feed the landed
// unit cost: precio * (1 + iva/100) * (1 + merma/100).
type Insumo struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string          `gorm:"index;not null"`
	Categoria    string          `gorm:"not null"`
	UnidadMedida string          `gorm:"not null;default:'kg'"`
	MermaPct     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	IVAPct       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:21;column:iva_pct"`
	Activo       bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Precios []PrecioInsumo `gorm:"foreignKey:InsumoID"`
}

func (Insumo) TableName() string { return "insumos" }
