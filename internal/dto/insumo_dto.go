package dto

import "github.com/shopspring/decimal"

// InsumoFilter is bound from the query string of GET /v1/insumos.
type InsumoFilter struct {
	Nombre    string `form:"nombre"`
	Categoria string `form:"categoria"`
	Activo    string `form:"activo"` // "false" | "all" | default activos
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CrearInsumoRequest struct {
	Nombre       string          `json:"nombre"        validate:"required,min=2"`
	Categoria    string          `json:"categoria"     validate:"required"`
	UnidadMedida string          `json:"unidad_medida" validate:"required,oneof=kg g l ml unidad docena"`
	MermaPct     decimal.Decimal `json:"merma_pct"     validate:"min=0,max=100"`
	IVAPct       decimal.Decimal `json:"iva_pct"       validate:"min=0,max=100"`
}

type ActualizarInsumoRequest struct {
	Nombre       string          `json:"nombre"        validate:"required,min=2"`
	Categoria    string          `json:"categoria"     validate:"required"`
	UnidadMedida string          `json:"unidad_medida" validate:"required,oneof=kg g l ml unidad docena"`
	MermaPct     decimal.Decimal `json:"merma_pct"     validate:"min=0,max=100"`
	IVAPct       decimal.Decimal `json:"iva_pct"       validate:"min=0,max=100"`
}

type InsumoResponse struct {
	ID           string          `json:"id"`
	Nombre       string          `json:"nombre"`
	Categoria    string          `json:"categoria"`
	UnidadMedida string          `json:"unidad_medida"`
	MermaPct     decimal.Decimal `json:"merma_pct"`
	IVAPct       decimal.Decimal `json:"iva_pct"`
	Activo       bool            `json:"activo"`
	// PrecioVigente is the representative current price (minimum across
	// suppliers); null when the insumo has no current price.
	PrecioVigente *decimal.Decimal `json:"precio_vigente,omitempty"`
	// CostoUnitario is the landed cost derived from the vigente price.
	CostoUnitario *decimal.Decimal `json:"costo_unitario,omitempty"`
}

type InsumoListResponse struct {
	Data  []InsumoResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
