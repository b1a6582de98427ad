package dto

import "github.com/shopspring/decimal"

// FacturaFilter is bound from the query string of GET /v1/facturas.
type FacturaFilter struct {
	ProveedorID string `form:"proveedor_id"`
	Anuladas    string `form:"anuladas"` // "true" | "all" | default vigentes
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ItemFacturaRequest struct {
	InsumoID       string          `json:"insumo_id"       validate:"required,uuid"`
	Cantidad       decimal.Decimal `json:"cantidad"        validate:"required"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"required"`
}

type PercepcionRequest struct {
	Concepto string          `json:"concepto" validate:"required"`
	Monto    decimal.Decimal `json:"monto"    validate:"required"`
}

type CrearFacturaRequest struct {
	ProveedorID string `json:"proveedor_id" validate:"required,uuid"`
	Numero      string `json:"numero"       validate:"required"`
	Fecha       string `json:"fecha"        validate:"omitempty,datetime=2006-01-02"`
	// OrdenCompraID links the invoice to the order it settles; the order's
	// estado is derived from the reconciliation in the same transaction.
	OrdenCompraID *string              `json:"orden_compra_id" validate:"omitempty,uuid"`
	Items         []ItemFacturaRequest `json:"items"           validate:"required,min=1,dive"`
	Percepciones  []PercepcionRequest  `json:"percepciones"    validate:"omitempty,dive"`
}

type ItemFacturaResponse struct {
	InsumoID       string          `json:"insumo_id"`
	Insumo         string          `json:"insumo,omitempty"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type PercepcionResponse struct {
	Concepto string          `json:"concepto"`
	Monto    decimal.Decimal `json:"monto"`
}

type FacturaResponse struct {
	ID            string                `json:"id"`
	ProveedorID   string                `json:"proveedor_id"`
	Proveedor     string                `json:"proveedor,omitempty"`
	Numero        string                `json:"numero"`
	Fecha         string                `json:"fecha"`
	OrdenCompraID *string               `json:"orden_compra_id,omitempty"`
	Total         decimal.Decimal       `json:"total"`
	Anulada       bool                  `json:"anulada"`
	Items         []ItemFacturaResponse `json:"items,omitempty"`
	Percepciones  []PercepcionResponse  `json:"percepciones,omitempty"`
	// EstadoOrden is the estado the linked order took after reconciliation.
	EstadoOrden string `json:"estado_orden,omitempty"`
}

type FacturaListResponse struct {
	Data  []FacturaResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
