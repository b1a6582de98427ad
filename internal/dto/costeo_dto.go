package dto

import "github.com/shopspring/decimal"

// LineaCosteoResponse is one costed component line of a roll-up.
type LineaCosteoResponse struct {
	Tipo          string          `json:"tipo"`
	ComponenteID  string          `json:"componente_id"`
	Nombre        string          `json:"nombre,omitempty"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	Costo         decimal.Decimal `json:"costo"`
}

// CosteoResponse is the detailed cost breakdown of a receta, plato or menú.
// InsumosSinPrecio surfaces ingredients costed at zero for lack of a current
// price: a warning, not an error, so the food-cost screens undercount.
type CosteoResponse struct {
	Total            decimal.Decimal       `json:"total"`
	PorPorcion       *decimal.Decimal      `json:"por_porcion,omitempty"`
	Lineas           []LineaCosteoResponse `json:"lineas"`
	InsumosSinPrecio []string              `json:"insumos_sin_precio,omitempty"`
	// Analisis is present when the entity has a sale price to compare.
	Analisis *AnalisisResponse `json:"analisis,omitempty"`
}

// AnalisisResponse is the shared pricing derivation: suggested price,
// realized food cost and classification against the target.
type AnalisisResponse struct {
	Costo             decimal.Decimal `json:"costo"`
	PrecioVenta       decimal.Decimal `json:"precio_venta"`
	FoodCostObjetivo  decimal.Decimal `json:"food_cost_objetivo"`
	PrecioSugerido    decimal.Decimal `json:"precio_sugerido"`
	FoodCostRealizado decimal.Decimal `json:"food_cost_realizado"`
	Contribucion      decimal.Decimal `json:"contribucion"`
	Estado            string          `json:"estado"` // ok | alerta | peligro
}

// CartaItemResponse is one row of the carta food-cost overview.
type CartaItemResponse struct {
	PlatoID  string           `json:"plato_id"`
	Nombre   string           `json:"nombre"`
	Seccion  string           `json:"seccion"`
	Analisis AnalisisResponse `json:"analisis"`
	// SinPrecio is true when at least one ingredient lacks a current price
	// and the cost figure undercounts.
	SinPrecio bool `json:"sin_precio,omitempty"`
}

type CartaResponse struct {
	Platos []CartaItemResponse `json:"platos"`
}
