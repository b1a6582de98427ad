package conciliacion

import (
	"testing"

	"github.com/Fpidal/recetas-tero-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func itemOrden(insumoID uuid.UUID, cantidad, precio string) model.OrdenCompraItem {
	return model.OrdenCompraItem{
		InsumoID:       insumoID,
		Cantidad:       d(cantidad),
		PrecioUnitario: d(precio),
		Subtotal:       d(cantidad).Mul(d(precio)),
	}
}

func itemFactura(insumoID uuid.UUID, cantidad, precio string) model.FacturaItem {
	return model.FacturaItem{
		InsumoID:       insumoID,
		Cantidad:       d(cantidad),
		PrecioUnitario: d(precio),
		Subtotal:       d(cantidad).Mul(d(precio)),
	}
}

func lineaPorInsumo(t *testing.T, res *Resultado, insumoID uuid.UUID) Linea {
	t.Helper()
	for _, l := range res.Lineas {
		if l.InsumoID == insumoID {
			return l
		}
	}
	t.Fatalf("no hay línea para el insumo %s", insumoID)
	return Linea{}
}

func TestConciliar_EntregaPerfecta(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	res := Conciliar(
		[]model.OrdenCompraItem{itemOrden(a, "10", "100"), itemOrden(b, "5", "200")},
		[]model.FacturaItem{itemFactura(a, "10", "100"), itemFactura(b, "5", "200")},
	)

	require.Len(t, res.Lineas, 2)
	assert.Equal(t, LineaCompleta, res.Lineas[0].Estado)
	assert.Equal(t, LineaCompleta, res.Lineas[1].Estado)
	assert.True(t, res.Semaforo.Perfecto())
}

func TestConciliar_LineaParcial(t *testing.T) {
	a := uuid.New()

	res := Conciliar(
		[]model.OrdenCompraItem{itemOrden(a, "10", "100")},
		[]model.FacturaItem{itemFactura(a, "6", "100")},
	)

	linea := lineaPorInsumo(t, res, a)
	assert.Equal(t, LineaParcial, linea.Estado)
	assert.True(t, linea.Pedida.Equal(d("10")))
	assert.True(t, linea.Recibida.Equal(d("6")))
	assert.Equal(t, 1, res.Semaforo.Parciales)
	assert.False(t, res.Semaforo.Perfecto())
}

func TestConciliar_ParcialPorCentesima(t *testing.T) {
	// Cualquier cantidad menor a la pedida es parcial, sin tolerancia.
	a := uuid.New()

	res := Conciliar(
		[]model.OrdenCompraItem{itemOrden(a, "10", "100")},
		[]model.FacturaItem{itemFactura(a, "9.99", "100")},
	)

	assert.Equal(t, LineaParcial, res.Lineas[0].Estado)
}

func TestConciliar_EntregaDeMas(t *testing.T) {
	// Recibir más de lo pedido sigue siendo completa.
	a := uuid.New()

	res := Conciliar(
		[]model.OrdenCompraItem{itemOrden(a, "10", "100")},
		[]model.FacturaItem{itemFactura(a, "12", "100")},
	)

	assert.Equal(t, LineaCompleta, res.Lineas[0].Estado)
	assert.Equal(t, 0, res.Semaforo.Parciales)
}

func TestConciliar_NoEntregada(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	res := Conciliar(
		[]model.OrdenCompraItem{itemOrden(a, "10", "100"), itemOrden(b, "5", "50")},
		[]model.FacturaItem{itemFactura(a, "10", "100")},
	)

	linea := lineaPorInsumo(t, res, b)
	assert.Equal(t, LineaNoEntregada, linea.Estado)
	assert.True(t, linea.Recibida.IsZero())
	assert.Equal(t, 1, res.Semaforo.NoEntregadas)
}

func TestConciliar_InsumoNuevo(t *testing.T) {
	a, extra := uuid.New(), uuid.New()

	res := Conciliar(
		[]model.OrdenCompraItem{itemOrden(a, "10", "100")},
		[]model.FacturaItem{itemFactura(a, "10", "100"), itemFactura(extra, "3", "80")},
	)

	require.Len(t, res.Lineas, 2)
	linea := lineaPorInsumo(t, res, extra)
	assert.Equal(t, LineaNueva, linea.Estado)
	assert.True(t, linea.Pedida.IsZero())
	assert.True(t, linea.Recibida.Equal(d("3")))
	assert.Equal(t, 1, res.Semaforo.Nuevos)
}

func TestConciliar_EntregaRepartidaEnVariasLineas(t *testing.T) {
	// Un remito puede facturar el mismo insumo en dos renglones; la suma es
	// lo recibido.
	a := uuid.New()

	res := Conciliar(
		[]model.OrdenCompraItem{itemOrden(a, "10", "100")},
		[]model.FacturaItem{itemFactura(a, "6", "100"), itemFactura(a, "4", "100")},
	)

	require.Len(t, res.Lineas, 1)
	linea := lineaPorInsumo(t, res, a)
	assert.Equal(t, LineaCompleta, linea.Estado)
	assert.True(t, linea.Recibida.Equal(d("10")))
	assert.True(t, res.Semaforo.Perfecto())
}

func TestConciliar_EntregaRepartidaSigueCorta(t *testing.T) {
	a := uuid.New()

	res := Conciliar(
		[]model.OrdenCompraItem{itemOrden(a, "10", "100")},
		[]model.FacturaItem{itemFactura(a, "4", "100"), itemFactura(a, "3", "100")},
	)

	linea := lineaPorInsumo(t, res, a)
	assert.Equal(t, LineaParcial, linea.Estado)
	assert.True(t, linea.Recibida.Equal(d("7")))
	assert.Equal(t, 1, res.Semaforo.Parciales)
}

func TestConciliar_PrecioDistintoEnUnaDeLasLineas(t *testing.T) {
	// Basta que un renglón venga a otro precio para marcar la diferencia.
	a := uuid.New()

	res := Conciliar(
		[]model.OrdenCompraItem{itemOrden(a, "10", "100")},
		[]model.FacturaItem{itemFactura(a, "6", "100"), itemFactura(a, "4", "110")},
	)

	linea := lineaPorInsumo(t, res, a)
	assert.Equal(t, LineaCompleta, linea.Estado)
	assert.True(t, linea.PrecioDifiere)
	assert.Equal(t, 1, res.Semaforo.DiferenciasPrecio)
}

func TestConciliar_NuevoRepartidoCuentaUnaVez(t *testing.T) {
	a, extra := uuid.New(), uuid.New()

	res := Conciliar(
		[]model.OrdenCompraItem{itemOrden(a, "10", "100")},
		[]model.FacturaItem{
			itemFactura(a, "10", "100"),
			itemFactura(extra, "2", "80"),
			itemFactura(extra, "1", "80"),
		},
	)

	require.Len(t, res.Lineas, 2)
	linea := lineaPorInsumo(t, res, extra)
	assert.Equal(t, LineaNueva, linea.Estado)
	assert.True(t, linea.Recibida.Equal(d("3")))
	assert.Equal(t, 1, res.Semaforo.Nuevos)
}

func TestConciliar_DiferenciaDePrecioEsOrtogonal(t *testing.T) {
	// Una línea puede ser parcial y además tener diferencia de precio; los
	// contadores se mueven por separado.
	a := uuid.New()

	res := Conciliar(
		[]model.OrdenCompraItem{itemOrden(a, "10", "100")},
		[]model.FacturaItem{itemFactura(a, "6", "110")},
	)

	linea := lineaPorInsumo(t, res, a)
	assert.Equal(t, LineaParcial, linea.Estado)
	assert.True(t, linea.PrecioDifiere)
	assert.Equal(t, 1, res.Semaforo.Parciales)
	assert.Equal(t, 1, res.Semaforo.DiferenciasPrecio)
}

func TestConciliar_PrecioIgualNoMarcaDiferencia(t *testing.T) {
	a := uuid.New()

	res := Conciliar(
		[]model.OrdenCompraItem{itemOrden(a, "10", "100.00")},
		[]model.FacturaItem{itemFactura(a, "10", "100")},
	)

	// 100.00 y 100 son el mismo valor decimal.
	assert.False(t, res.Lineas[0].PrecioDifiere)
	assert.True(t, res.Semaforo.Perfecto())
}

func TestConciliar_SinFacturaItems(t *testing.T) {
	a := uuid.New()

	res := Conciliar([]model.OrdenCompraItem{itemOrden(a, "10", "100")}, nil)

	assert.Equal(t, LineaNoEntregada, res.Lineas[0].Estado)
	assert.Equal(t, 1, res.Semaforo.NoEntregadas)
}

func TestFaltantes(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	// a: pedida 10, recibida 6 → faltan 4. b: no entregada → faltan 5.
	res := Conciliar(
		[]model.OrdenCompraItem{itemOrden(a, "10", "100"), itemOrden(b, "5", "50")},
		[]model.FacturaItem{itemFactura(a, "6", "100")},
	)

	faltantes := res.Faltantes()
	require.Len(t, faltantes, 2)
	assert.Equal(t, a, faltantes[0].InsumoID)
	assert.True(t, faltantes[0].Cantidad.Equal(d("4")))
	assert.True(t, faltantes[0].PrecioUnitario.Equal(d("100")))
	assert.Equal(t, b, faltantes[1].InsumoID)
	assert.True(t, faltantes[1].Cantidad.Equal(d("5")))
}

func TestFaltantes_EntregaCompletaNoGenera(t *testing.T) {
	a, extra := uuid.New(), uuid.New()

	res := Conciliar(
		[]model.OrdenCompraItem{itemOrden(a, "10", "100")},
		[]model.FacturaItem{itemFactura(a, "10", "100"), itemFactura(extra, "2", "30")},
	)

	// Las líneas completa y nuevo no aportan faltantes.
	assert.Empty(t, res.Faltantes())
}

func TestFaltantes_PrecioDelFaltanteEsElDeLaOrden(t *testing.T) {
	a := uuid.New()

	res := Conciliar(
		[]model.OrdenCompraItem{itemOrden(a, "10", "100")},
		[]model.FacturaItem{itemFactura(a, "4", "125")},
	)

	faltantes := res.Faltantes()
	require.Len(t, faltantes, 1)
	// El faltante se valoriza al precio original de la orden, no al facturado.
	assert.True(t, faltantes[0].PrecioUnitario.Equal(d("100")))
}
