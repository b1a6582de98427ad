package costeo

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCostoUnitario(t *testing.T) {
	// 100 * 1.21 * 1.10 = 133.10
	costo := CostoUnitario(d("100"), d("21"), d("10"))
	assert.True(t, costo.Equal(d("133.1")), "got %s", costo)
}

func TestCostoUnitario_CreceConCadaFactor(t *testing.T) {
	// Subir precio, IVA o merma por separado siempre encarece el insumo.
	base := CostoUnitario(d("100"), d("21"), d("10"))
	assert.True(t, CostoUnitario(d("100.01"), d("21"), d("10")).GreaterThan(base))
	assert.True(t, CostoUnitario(d("100"), d("21.5"), d("10")).GreaterThan(base))
	assert.True(t, CostoUnitario(d("100"), d("21"), d("10.5")).GreaterThan(base))
}

func TestCostoUnitario_SinIVANiMerma(t *testing.T) {
	costo := CostoUnitario(d("250.50"), decimal.Zero, decimal.Zero)
	assert.True(t, costo.Equal(d("250.50")))
}

func TestCostoUnitario_SoloMerma(t *testing.T) {
	// La merma se aplica sobre el precio con IVA incluido.
	costo := CostoUnitario(d("80"), decimal.Zero, d("25"))
	assert.True(t, costo.Equal(d("100")), "got %s", costo)
}

func TestCostoPorPorcion(t *testing.T) {
	assert.True(t, CostoPorPorcion(d("100"), 4).Equal(d("25")))
}

func TestCostoPorPorcion_RendimientoInvalido(t *testing.T) {
	// Porciones cero o negativas devuelven el total sin dividir.
	assert.True(t, CostoPorPorcion(d("100"), 0).Equal(d("100")))
	assert.True(t, CostoPorPorcion(d("100"), -3).Equal(d("100")))
}

func TestPrecioSugerido(t *testing.T) {
	// costo 30 con objetivo 30% → precio 100
	assert.True(t, PrecioSugerido(d("30"), d("30")).Equal(d("100")))
}

func TestPrecioSugerido_ObjetivoNoPositivo(t *testing.T) {
	assert.True(t, PrecioSugerido(d("30"), decimal.Zero).IsZero())
	assert.True(t, PrecioSugerido(d("30"), d("-5")).IsZero())
}

func TestFoodCostRealizado(t *testing.T) {
	assert.True(t, FoodCostRealizado(d("25"), d("100")).Equal(d("25")))
}

func TestFoodCostRealizado_SinPrecioVenta(t *testing.T) {
	assert.True(t, FoodCostRealizado(d("25"), decimal.Zero).IsZero())
}

func TestContribucion(t *testing.T) {
	assert.True(t, Contribucion(d("100"), d("32.50")).Equal(d("67.50")))
}

func TestClasificarFoodCost(t *testing.T) {
	casos := []struct {
		realizado string
		objetivo  string
		esperado  string
	}{
		{"20", "30", EstadoOK},
		{"30", "30", EstadoOK}, // exactamente en el objetivo sigue ok
		{"30.01", "30", EstadoAlerta},
		{"35", "30", EstadoAlerta}, // objetivo + 5 es el borde de alerta
		{"35.01", "30", EstadoPeligro},
		{"60", "30", EstadoPeligro},
	}
	for _, c := range casos {
		estado := ClasificarFoodCost(d(c.realizado), d(c.objetivo))
		assert.Equal(t, c.esperado, estado, "realizado=%s objetivo=%s", c.realizado, c.objetivo)
	}
}

func TestAnalizar(t *testing.T) {
	a := Analizar(d("30"), d("120"), d("30"))

	assert.True(t, a.Costo.Equal(d("30")))
	assert.True(t, a.PrecioSugerido.Equal(d("100")))
	assert.True(t, a.FoodCostRealizado.Equal(d("25")))
	assert.True(t, a.Contribucion.Equal(d("90")))
	assert.Equal(t, EstadoOK, a.Estado)
}

func TestAnalizar_EnPeligro(t *testing.T) {
	a := Analizar(d("50"), d("100"), d("30"))

	assert.True(t, a.FoodCostRealizado.Equal(d("50")))
	assert.Equal(t, EstadoPeligro, a.Estado)
}
