package dto

import "github.com/shopspring/decimal"

// ItemComponenteRequest is a polymorphic component line: an insumo or a
// receta for platos; menus additionally accept platos.
type ItemComponenteRequest struct {
	Tipo         string          `json:"tipo"          validate:"required,oneof=insumo receta plato"`
	ComponenteID string          `json:"componente_id" validate:"required,uuid"`
	Cantidad     decimal.Decimal `json:"cantidad"      validate:"required"`
	EsBebida     bool            `json:"es_bebida"`
}

type CrearPlatoRequest struct {
	Nombre           string                  `json:"nombre"             validate:"required,min=2"`
	Seccion          string                  `json:"seccion"            validate:"required"`
	PrecioCarta      decimal.Decimal         `json:"precio_carta"       validate:"min=0"`
	FoodCostObjetivo decimal.Decimal         `json:"food_cost_objetivo" validate:"min=0,max=100"`
	Items            []ItemComponenteRequest `json:"items"              validate:"required,min=1,dive"`
}

type ActualizarPlatoRequest struct {
	Nombre           string                  `json:"nombre"             validate:"required,min=2"`
	Seccion          string                  `json:"seccion"            validate:"required"`
	PrecioCarta      decimal.Decimal         `json:"precio_carta"       validate:"min=0"`
	FoodCostObjetivo decimal.Decimal         `json:"food_cost_objetivo" validate:"min=0,max=100"`
	Items            []ItemComponenteRequest `json:"items"              validate:"required,min=1,dive"`
}

type ItemComponenteResponse struct {
	Tipo         string          `json:"tipo"`
	ComponenteID string          `json:"componente_id"`
	Cantidad     decimal.Decimal `json:"cantidad"`
	EsBebida     bool            `json:"es_bebida,omitempty"`
}

type PlatoResponse struct {
	ID               string                   `json:"id"`
	Nombre           string                   `json:"nombre"`
	Seccion          string                   `json:"seccion"`
	PrecioCarta      decimal.Decimal          `json:"precio_carta"`
	FoodCostObjetivo decimal.Decimal          `json:"food_cost_objetivo"`
	Activo           bool                     `json:"activo"`
	Items            []ItemComponenteResponse `json:"items,omitempty"`
}
