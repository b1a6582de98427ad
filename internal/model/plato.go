package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Component kinds for composed lines (platos and menús).
const (
	ComponenteInsumo = "insumo"
	ComponenteReceta = "receta"
	ComponentePlato  = "plato"
)

// Plato is a dish on the carta. PrecioCarta and FoodCostObjetivo drive the
// margin screens; the dish cost itself is always computed from current prices.
type Plato struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre           string          `gorm:"index;not null"`
	Seccion          string          `gorm:"not null"`
	PrecioCarta      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FoodCostObjetivo decimal.Decimal `gorm:"type:decimal(5,2);not null;default:30"`
	Activo           bool            `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Items []PlatoItem `gorm:"foreignKey:PlatoID"`
}

func (Plato) TableName() string { return "platos" }

// PlatoItem is one component line of a dish. ComponenteTipo selects the
// unit-cost lookup: "insumo" (landed cost) or "receta" (cost per portion).
type PlatoItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PlatoID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ComponenteTipo string          `gorm:"type:varchar(10);not null"`
	ComponenteID   uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       decimal.Decimal `gorm:"type:decimal(12,3);not null"`
}

func (PlatoItem) TableName() string { return "platos_items" }
