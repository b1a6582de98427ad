package dto

import "github.com/shopspring/decimal"

// RegistrarPrecioRequest records a new supplier price for an ingredient.
// The previous vigente row of the (insumo, proveedor) pair is cleared in the
// same transaction.
type RegistrarPrecioRequest struct {
	ProveedorID string          `json:"proveedor_id" validate:"required,uuid"`
	Precio      decimal.Decimal `json:"precio"       validate:"required"`
	Fecha       string          `json:"fecha"        validate:"omitempty,datetime=2006-01-02"` // empty = today
}

type PrecioResponse struct {
	ID          string          `json:"id"`
	InsumoID    string          `json:"insumo_id"`
	ProveedorID string          `json:"proveedor_id"`
	Proveedor   string          `json:"proveedor,omitempty"`
	Precio      decimal.Decimal `json:"precio"`
	Fecha       string          `json:"fecha"`
	Vigente     bool            `json:"vigente"`
}

type PrecioListResponse struct {
	Data  []PrecioResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
