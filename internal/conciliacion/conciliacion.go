// Package conciliacion compares a purchase order against the supplier
// invoice that settles it: per-line delivery classification, the aggregate
// traffic-light indicators, and the missing quantities that seed a
// shortfall order.
package conciliacion

import (
	"github.com/Fpidal/recetas-tero-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de entrega de una línea de orden contra la factura.
const (
	LineaCompleta    = "completa"
	LineaParcial     = "parcial"
	LineaNoEntregada = "no_entregada"
	// LineaNueva marks an invoice line whose insumo was never ordered.
	LineaNueva = "nuevo"
)

// Linea is the reconciled view of one insumo across order and invoice.
// PrecioDifiere is orthogonal to the quantity classification: a line can be
// parcial and carry a price difference at the same time.
type Linea struct {
	InsumoID      uuid.UUID       `json:"insumo_id"`
	Pedida        decimal.Decimal `json:"cantidad_pedida"`
	Recibida      decimal.Decimal `json:"cantidad_recibida"`
	PrecioOrden   decimal.Decimal `json:"precio_orden"`
	PrecioFactura decimal.Decimal `json:"precio_factura"`
	Estado        string          `json:"estado"`
	PrecioDifiere bool            `json:"precio_difiere"`
}

// Semaforo holds the four independent indicator counters. An order whose
// counters are all zero matched its invoice perfectly.
type Semaforo struct {
	NoEntregadas      int `json:"no_entregadas"`
	Parciales         int `json:"parciales"`
	DiferenciasPrecio int `json:"diferencias_precio"`
	Nuevos            int `json:"nuevos"`
}

// Perfecto reports whether the order and invoice matched without deviation.
func (s Semaforo) Perfecto() bool {
	return s.NoEntregadas == 0 && s.Parciales == 0 && s.DiferenciasPrecio == 0 && s.Nuevos == 0
}

// Resultado is the full reconciliation of one order/invoice pair.
type Resultado struct {
	Lineas   []Linea  `json:"lineas"`
	Semaforo Semaforo `json:"semaforo"`
}

// Faltante is one undelivered or short quantity, priced at the original
// order price, ready to become a shortfall order line.
type Faltante struct {
	InsumoID       uuid.UUID
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
}

// entrega accumulates invoice lines per insumo: a delivery split across
// several lines counts as one received quantity. PrecioFactura reports the
// first line's unit price; precioMixto remembers that later lines disagreed.
type entrega struct {
	cantidad    decimal.Decimal
	precio      decimal.Decimal
	precioMixto bool
}

// Conciliar classifies every order line against the invoice lines matched by
// insumo, and appends one "nuevo" line per invoice insumo never ordered.
func Conciliar(ordenItems []model.OrdenCompraItem, facturaItems []model.FacturaItem) *Resultado {
	recibidos := make(map[uuid.UUID]*entrega, len(facturaItems))
	for _, fi := range facturaItems {
		e, visto := recibidos[fi.InsumoID]
		if !visto {
			recibidos[fi.InsumoID] = &entrega{cantidad: fi.Cantidad, precio: fi.PrecioUnitario}
			continue
		}
		e.cantidad = e.cantidad.Add(fi.Cantidad)
		if !fi.PrecioUnitario.Equal(e.precio) {
			e.precioMixto = true
		}
	}
	pedidos := make(map[uuid.UUID]bool, len(ordenItems))

	res := &Resultado{}
	for _, oi := range ordenItems {
		pedidos[oi.InsumoID] = true
		linea := Linea{
			InsumoID:    oi.InsumoID,
			Pedida:      oi.Cantidad,
			PrecioOrden: oi.PrecioUnitario,
		}
		e, entregado := recibidos[oi.InsumoID]
		if !entregado {
			linea.Estado = LineaNoEntregada
			res.Semaforo.NoEntregadas++
			res.Lineas = append(res.Lineas, linea)
			continue
		}
		linea.Recibida = e.cantidad
		linea.PrecioFactura = e.precio
		if e.cantidad.LessThan(oi.Cantidad) {
			linea.Estado = LineaParcial
			res.Semaforo.Parciales++
		} else {
			linea.Estado = LineaCompleta
		}
		// Flagged when any invoice line priced the insumo off the order.
		if !e.precio.Equal(oi.PrecioUnitario) || e.precioMixto {
			linea.PrecioDifiere = true
			res.Semaforo.DiferenciasPrecio++
		}
		res.Lineas = append(res.Lineas, linea)
	}

	// Invoice insumos outside the order, in first-appearance order.
	vistos := make(map[uuid.UUID]bool)
	for _, fi := range facturaItems {
		if pedidos[fi.InsumoID] || vistos[fi.InsumoID] {
			continue
		}
		vistos[fi.InsumoID] = true
		e := recibidos[fi.InsumoID]
		res.Lineas = append(res.Lineas, Linea{
			InsumoID:      fi.InsumoID,
			Recibida:      e.cantidad,
			PrecioFactura: e.precio,
			Estado:        LineaNueva,
		})
		res.Semaforo.Nuevos++
	}
	return res
}

// Faltantes returns the positive missing quantities of the reconciliation:
// the full ordered quantity for undelivered lines, pedida - recibida for
// partial ones. Complete and "nuevo" lines contribute nothing. An empty
// result means there is nothing to cover with a shortfall order.
func (r *Resultado) Faltantes() []Faltante {
	var faltantes []Faltante
	for _, l := range r.Lineas {
		switch l.Estado {
		case LineaNoEntregada:
			faltantes = append(faltantes, Faltante{InsumoID: l.InsumoID, Cantidad: l.Pedida, PrecioUnitario: l.PrecioOrden})
		case LineaParcial:
			faltantes = append(faltantes, Faltante{InsumoID: l.InsumoID, Cantidad: l.Pedida.Sub(l.Recibida), PrecioUnitario: l.PrecioOrden})
		}
	}
	return faltantes
}
