package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuEjecutivo is an ordered set of lines sold at a fixed price.
// Each line references an insumo, a receta base or a plato.
type MenuEjecutivo struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre           string          `gorm:"not null"`
	Fecha            time.Time       `gorm:"not null"`
	PrecioVenta      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FoodCostObjetivo decimal.Decimal `gorm:"type:decimal(5,2);not null;default:30"`
	Activo           bool            `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Items []MenuEjecutivoItem `gorm:"foreignKey:MenuEjecutivoID"`
}

func (MenuEjecutivo) TableName() string { return "menus_ejecutivos" }

// MenuEjecutivoItem is one line of an executive menu. EsBebida separates
// beverage lines on the costing screens; the cost math treats them the same.
type MenuEjecutivoItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MenuEjecutivoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ComponenteTipo  string          `gorm:"type:varchar(10);not null"`
	ComponenteID    uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad        decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	EsBebida        bool            `gorm:"not null;default:false"`
}

func (MenuEjecutivoItem) TableName() string { return "menus_ejecutivos_items" }

// MenuEspecial models an event menu: selectable dish options grouped by
// course type, costed per person for a given head count.
type MenuEspecial struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre           string          `gorm:"not null"`
	Comensales       int             `gorm:"not null;default:1"`
	CostoPorPersona  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FoodCostObjetivo decimal.Decimal `gorm:"type:decimal(5,2);not null;default:30"`
	PrecioVenta      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Activo           bool            `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Opciones []MenuEspecialOpcion `gorm:"foreignKey:MenuEspecialID"`
}

func (MenuEspecial) TableName() string { return "menus_especiales" }

// MenuEspecialOpcion is one selectable dish within a course of a special menu.
// TipoCurso: "entrada" | "principal" | "postre".
type MenuEspecialOpcion struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MenuEspecialID uuid.UUID `gorm:"type:uuid;not null;index"`
	TipoCurso      string    `gorm:"type:varchar(20);not null"`
	PlatoID        uuid.UUID `gorm:"type:uuid;not null"`

	Plato Plato `gorm:"foreignKey:PlatoID"`
}

func (MenuEspecialOpcion) TableName() string { return "menus_especiales_opciones" }
