package dto

import "github.com/shopspring/decimal"

// OrdenFilter is bound from the query string of GET /v1/ordenes.
type OrdenFilter struct {
	Estado      string `form:"estado"` // borrador | enviada | ... | all
	ProveedorID string `form:"proveedor_id"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ItemOrdenRequest struct {
	InsumoID       string          `json:"insumo_id"       validate:"required,uuid"`
	Cantidad       decimal.Decimal `json:"cantidad"        validate:"required"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"required"`
}

type CrearOrdenRequest struct {
	ProveedorID string             `json:"proveedor_id" validate:"required,uuid"`
	Fecha       string             `json:"fecha"        validate:"omitempty,datetime=2006-01-02"` // empty = today
	Items       []ItemOrdenRequest `json:"items"        validate:"required,min=1,dive"`
}

// ActualizarOrdenRequest replaces the item list of a draft/sent order.
// Refused outright once an invoice references the order.
type ActualizarOrdenRequest struct {
	Items []ItemOrdenRequest `json:"items" validate:"required,min=1,dive"`
}

type ItemOrdenResponse struct {
	InsumoID       string          `json:"insumo_id"`
	Insumo         string          `json:"insumo,omitempty"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type OrdenResponse struct {
	ID            string              `json:"id"`
	Numero        string              `json:"numero"`
	ProveedorID   string              `json:"proveedor_id"`
	Proveedor     string              `json:"proveedor,omitempty"`
	Fecha         string              `json:"fecha"`
	Estado        string              `json:"estado"`
	OrdenOrigenID *string             `json:"orden_origen_id,omitempty"`
	Total         decimal.Decimal     `json:"total"`
	Items         []ItemOrdenResponse `json:"items,omitempty"`
}

type OrdenListResponse struct {
	Data  []OrdenResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// LineaConciliacionResponse is one reconciled line of the order/invoice view.
type LineaConciliacionResponse struct {
	InsumoID      string          `json:"insumo_id"`
	Insumo        string          `json:"insumo,omitempty"`
	Pedida        decimal.Decimal `json:"cantidad_pedida"`
	Recibida      decimal.Decimal `json:"cantidad_recibida"`
	PrecioOrden   decimal.Decimal `json:"precio_orden"`
	PrecioFactura decimal.Decimal `json:"precio_factura"`
	Estado        string          `json:"estado"`
	PrecioDifiere bool            `json:"precio_difiere"`
}

type SemaforoResponse struct {
	NoEntregadas      int  `json:"no_entregadas"`
	Parciales         int  `json:"parciales"`
	DiferenciasPrecio int  `json:"diferencias_precio"`
	Nuevos            int  `json:"nuevos"`
	Perfecto          bool `json:"perfecto"`
}

type ConciliacionResponse struct {
	OrdenID   string                      `json:"orden_id"`
	FacturaID string                      `json:"factura_id"`
	Lineas    []LineaConciliacionResponse `json:"lineas"`
	Semaforo  SemaforoResponse            `json:"semaforo"`
}
