package dto

import "github.com/shopspring/decimal"

type ItemRecetaRequest struct {
	InsumoID string          `json:"insumo_id" validate:"required,uuid"`
	Cantidad decimal.Decimal `json:"cantidad"  validate:"required"`
}

type CrearRecetaRequest struct {
	Nombre    string              `json:"nombre"    validate:"required,min=2"`
	Porciones int                 `json:"porciones" validate:"required,min=1"`
	Items     []ItemRecetaRequest `json:"items"     validate:"required,min=1,dive"`
}

type ActualizarRecetaRequest struct {
	Nombre    string              `json:"nombre"    validate:"required,min=2"`
	Porciones int                 `json:"porciones" validate:"required,min=1"`
	Items     []ItemRecetaRequest `json:"items"     validate:"required,min=1,dive"`
}

type ItemRecetaResponse struct {
	InsumoID string          `json:"insumo_id"`
	Insumo   string          `json:"insumo,omitempty"`
	Cantidad decimal.Decimal `json:"cantidad"`
}

type RecetaResponse struct {
	ID        string               `json:"id"`
	Nombre    string               `json:"nombre"`
	Porciones int                  `json:"porciones"`
	Activo    bool                 `json:"activo"`
	Items     []ItemRecetaResponse `json:"items,omitempty"`
}
