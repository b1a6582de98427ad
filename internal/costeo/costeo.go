// Package costeo implements the cost roll-up engine: landed unit costs of
// ingredients, aggregation through elaborations, dishes and menus, and the
// shared pricing derivation (suggested price, realized food cost, margin).
// All math is best-effort: missing prices and zero divisors degrade to zero
// instead of failing, so a partially loaded catalog still yields estimates.
package costeo

import "github.com/shopspring/decimal"

// Estados de food cost realizado contra el objetivo.
const (
	EstadoOK      = "ok"
	EstadoAlerta  = "alerta"
	EstadoPeligro = "peligro"
)

var cien = decimal.NewFromInt(100)

// CostoUnitario computes the landed unit cost of an ingredient:
// precio * (1 + iva/100) * (1 + merma/100).
func CostoUnitario(precio, ivaPct, mermaPct decimal.Decimal) decimal.Decimal {
	conIVA := precio.Mul(decimal.NewFromInt(1).Add(ivaPct.Div(cien)))
	return conIVA.Mul(decimal.NewFromInt(1).Add(mermaPct.Div(cien)))
}

// CostoPorPorcion divides a total recipe cost by its yield.
// A yield of zero or less returns the total unchanged.
func CostoPorPorcion(total decimal.Decimal, porciones int) decimal.Decimal {
	if porciones <= 0 {
		return total
	}
	return total.Div(decimal.NewFromInt(int64(porciones)))
}

// PrecioSugerido derives the sale price that would put the food cost exactly
// at the target percentage: costo / (objetivo/100). Zero when the target is
// not positive.
func PrecioSugerido(costo, fcObjetivo decimal.Decimal) decimal.Decimal {
	if !fcObjetivo.IsPositive() {
		return decimal.Zero
	}
	return costo.Div(fcObjetivo.Div(cien))
}

// FoodCostRealizado returns (costo / precioVenta) * 100, or zero when the
// sale price is not positive.
func FoodCostRealizado(costo, precioVenta decimal.Decimal) decimal.Decimal {
	if !precioVenta.IsPositive() {
		return decimal.Zero
	}
	return costo.Div(precioVenta).Mul(cien)
}

// Contribucion is the margin in currency: precioVenta - costo.
func Contribucion(precioVenta, costo decimal.Decimal) decimal.Decimal {
	return precioVenta.Sub(costo)
}

// ClasificarFoodCost compares realized food cost against the target:
// within target → ok, up to 5 points over → alerta, beyond that → peligro.
func ClasificarFoodCost(realizado, objetivo decimal.Decimal) string {
	switch {
	case realizado.LessThanOrEqual(objetivo):
		return EstadoOK
	case realizado.LessThanOrEqual(objetivo.Add(decimal.NewFromInt(5))):
		return EstadoAlerta
	default:
		return EstadoPeligro
	}
}

// Analisis bundles the pricing derivation shared by platos en carta, menús
// ejecutivos y menús especiales.
type Analisis struct {
	Costo             decimal.Decimal `json:"costo"`
	PrecioVenta       decimal.Decimal `json:"precio_venta"`
	FoodCostObjetivo  decimal.Decimal `json:"food_cost_objetivo"`
	PrecioSugerido    decimal.Decimal `json:"precio_sugerido"`
	FoodCostRealizado decimal.Decimal `json:"food_cost_realizado"`
	Contribucion      decimal.Decimal `json:"contribucion"`
	Estado            string          `json:"estado"`
}

// Analizar applies the three shared formulas and the classification to one
// (costo, precio de venta, objetivo) triple. Every menu type goes through
// this single primitive.
func Analizar(costo, precioVenta, fcObjetivo decimal.Decimal) Analisis {
	return Analisis{
		Costo:             costo,
		PrecioVenta:       precioVenta,
		FoodCostObjetivo:  fcObjetivo,
		PrecioSugerido:    PrecioSugerido(costo, fcObjetivo),
		FoodCostRealizado: FoodCostRealizado(costo, precioVenta),
		Contribucion:      Contribucion(precioVenta, costo),
		Estado:            ClasificarFoodCost(FoodCostRealizado(costo, precioVenta), fcObjetivo),
	}
}
