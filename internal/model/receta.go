package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecetaBase is an elaboration (sub-recipe / prep) used as a component of
// dishes and menus. Porciones is the yield in portions; the cost per portion
// is derived at query time, never persisted.
type RecetaBase struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"index;not null"`
	Porciones int       `gorm:"not null;default:1"`
	Activo    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []RecetaBaseItem `gorm:"foreignKey:RecetaBaseID"`
}

func (RecetaBase) TableName() string { return "recetas_base" }

// RecetaBaseItem is one (insumo, cantidad) line of an elaboration.
type RecetaBaseItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RecetaBaseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	InsumoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad     decimal.Decimal `gorm:"type:decimal(12,3);not null"`

	Insumo Insumo `gorm:"foreignKey:InsumoID"`
}

func (RecetaBaseItem) TableName() string { return "recetas_base_items" }
