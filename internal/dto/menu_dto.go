package dto

import "github.com/shopspring/decimal"

type CrearMenuEjecutivoRequest struct {
	Nombre           string                  `json:"nombre"             validate:"required,min=2"`
	Fecha            string                  `json:"fecha"              validate:"omitempty,datetime=2006-01-02"`
	PrecioVenta      decimal.Decimal         `json:"precio_venta"       validate:"min=0"`
	FoodCostObjetivo decimal.Decimal         `json:"food_cost_objetivo" validate:"min=0,max=100"`
	Items            []ItemComponenteRequest `json:"items"              validate:"required,min=1,dive"`
}

type MenuEjecutivoResponse struct {
	ID               string                   `json:"id"`
	Nombre           string                   `json:"nombre"`
	Fecha            string                   `json:"fecha"`
	PrecioVenta      decimal.Decimal          `json:"precio_venta"`
	FoodCostObjetivo decimal.Decimal          `json:"food_cost_objetivo"`
	Items            []ItemComponenteResponse `json:"items,omitempty"`
}

type OpcionMenuEspecialRequest struct {
	TipoCurso string `json:"tipo_curso" validate:"required,oneof=entrada principal postre"`
	PlatoID   string `json:"plato_id"   validate:"required,uuid"`
}

type CrearMenuEspecialRequest struct {
	Nombre           string                      `json:"nombre"             validate:"required,min=2"`
	Comensales       int                         `json:"comensales"         validate:"required,min=1"`
	CostoPorPersona  decimal.Decimal             `json:"costo_por_persona"  validate:"min=0"`
	FoodCostObjetivo decimal.Decimal             `json:"food_cost_objetivo" validate:"min=0,max=100"`
	PrecioVenta      decimal.Decimal             `json:"precio_venta"       validate:"min=0"`
	Opciones         []OpcionMenuEspecialRequest `json:"opciones"           validate:"required,min=1,dive"`
}

type OpcionMenuEspecialResponse struct {
	TipoCurso string           `json:"tipo_curso"`
	PlatoID   string           `json:"plato_id"`
	Plato     string           `json:"plato,omitempty"`
	Costo     *decimal.Decimal `json:"costo,omitempty"`
}

type MenuEspecialResponse struct {
	ID               string                       `json:"id"`
	Nombre           string                       `json:"nombre"`
	Comensales       int                          `json:"comensales"`
	CostoPorPersona  decimal.Decimal              `json:"costo_por_persona"`
	FoodCostObjetivo decimal.Decimal              `json:"food_cost_objetivo"`
	PrecioVenta      decimal.Decimal              `json:"precio_venta"`
	Opciones         []OpcionMenuEspecialResponse `json:"opciones,omitempty"`
}
