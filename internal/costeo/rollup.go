package costeo

import (
	"context"
	"fmt"

	"github.com/Fpidal/recetas-tero-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Almacen is the read surface the roll-up needs from the data store.
// Services adapt the GORM repositories onto it; tests plug in maps.
// Every method returns (nil, nil) for a missing record: missing reference
// data degrades the computed cost to zero instead of failing the roll-up.
type Almacen interface {
	// Insumo returns the ingredient master data (IVA, merma).
	Insumo(ctx context.Context, id uuid.UUID) (*model.Insumo, error)
	// PrecioVigente returns the representative current price of the insumo:
	// the minimum across suppliers' vigente rows, ties broken by latest
	// fecha. (nil, nil) means the insumo has no current price.
	PrecioVigente(ctx context.Context, insumoID uuid.UUID) (*model.PrecioInsumo, error)
	// Receta returns the elaboration with its items loaded.
	Receta(ctx context.Context, id uuid.UUID) (*model.RecetaBase, error)
	// Plato returns the dish with its items loaded.
	Plato(ctx context.Context, id uuid.UUID) (*model.Plato, error)
}

// Linea is a component line of any composed entity (plato, menú).
type Linea struct {
	Tipo         string // insumo | receta | plato
	ComponenteID uuid.UUID
	Cantidad     decimal.Decimal
}

// DetalleLinea is one costed line of a roll-up result.
type DetalleLinea struct {
	Tipo          string          `json:"tipo"`
	ComponenteID  uuid.UUID       `json:"componente_id"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	Costo         decimal.Decimal `json:"costo"`
}

// Detalle is the result of costing a composed entity. InsumosSinPrecio
// lists every ingredient that was costed at zero for lack of a current
// price — surfaced as a warning, never as an error.
type Detalle struct {
	Total            decimal.Decimal `json:"total"`
	PorPorcion       decimal.Decimal `json:"por_porcion"`
	Lineas           []DetalleLinea  `json:"lineas"`
	InsumosSinPrecio []uuid.UUID     `json:"insumos_sin_precio"`
}

// Calculadora rolls ingredient costs up through recetas, platos and menús.
type Calculadora struct {
	almacen Almacen
}

func NewCalculadora(almacen Almacen) *Calculadora {
	return &Calculadora{almacen: almacen}
}

// CostoInsumo returns the landed unit cost of an ingredient.
// sinPrecio is true when no current price exists; the cost is then zero.
func (c *Calculadora) CostoInsumo(ctx context.Context, id uuid.UUID) (decimal.Decimal, bool, error) {
	insumo, err := c.almacen.Insumo(ctx, id)
	if err != nil {
		return decimal.Zero, false, err
	}
	if insumo == nil {
		return decimal.Zero, true, nil
	}
	precio, err := c.almacen.PrecioVigente(ctx, id)
	if err != nil {
		return decimal.Zero, false, err
	}
	if precio == nil {
		return decimal.Zero, true, nil
	}
	return CostoUnitario(precio.Precio, insumo.IVAPct, insumo.MermaPct), false, nil
}

// CostoReceta costs an elaboration: sum of line costs, plus the per-portion
// figure derived from its yield.
func (c *Calculadora) CostoReceta(ctx context.Context, id uuid.UUID) (*Detalle, error) {
	receta, err := c.almacen.Receta(ctx, id)
	if err != nil {
		return nil, err
	}
	if receta == nil {
		return &Detalle{Total: decimal.Zero, PorPorcion: decimal.Zero}, nil
	}
	lineas := make([]Linea, 0, len(receta.Items))
	for _, item := range receta.Items {
		lineas = append(lineas, Linea{Tipo: model.ComponenteInsumo, ComponenteID: item.InsumoID, Cantidad: item.Cantidad})
	}
	detalle, err := c.CostoLineas(ctx, lineas)
	if err != nil {
		return nil, err
	}
	detalle.PorPorcion = CostoPorPorcion(detalle.Total, receta.Porciones)
	return detalle, nil
}

// CostoPlato costs a dish over its insumo/receta component lines.
func (c *Calculadora) CostoPlato(ctx context.Context, id uuid.UUID) (*Detalle, error) {
	plato, err := c.almacen.Plato(ctx, id)
	if err != nil {
		return nil, err
	}
	if plato == nil {
		return &Detalle{Total: decimal.Zero, PorPorcion: decimal.Zero}, nil
	}
	lineas := make([]Linea, 0, len(plato.Items))
	for _, item := range plato.Items {
		lineas = append(lineas, Linea{Tipo: item.ComponenteTipo, ComponenteID: item.ComponenteID, Cantidad: item.Cantidad})
	}
	return c.CostoLineas(ctx, lineas)
}

// CostoLineas is the shared aggregation: line_cost = cantidad * unit_cost,
// where the unit cost dispatches on the component kind — landed cost for an
// insumo, cost per portion for a receta, total dish cost for a plato.
func (c *Calculadora) CostoLineas(ctx context.Context, lineas []Linea) (*Detalle, error) {
	detalle := &Detalle{Total: decimal.Zero, PorPorcion: decimal.Zero}
	sinPrecio := make(map[uuid.UUID]bool)

	for _, linea := range lineas {
		var unitario decimal.Decimal
		switch linea.Tipo {
		case model.ComponenteInsumo:
			costo, faltante, err := c.CostoInsumo(ctx, linea.ComponenteID)
			if err != nil {
				return nil, err
			}
			if faltante && !sinPrecio[linea.ComponenteID] {
				sinPrecio[linea.ComponenteID] = true
				detalle.InsumosSinPrecio = append(detalle.InsumosSinPrecio, linea.ComponenteID)
			}
			unitario = costo
		case model.ComponenteReceta:
			sub, err := c.CostoReceta(ctx, linea.ComponenteID)
			if err != nil {
				return nil, err
			}
			unitario = sub.PorPorcion
			detalle.agregarFaltantes(sub, sinPrecio)
		case model.ComponentePlato:
			sub, err := c.CostoPlato(ctx, linea.ComponenteID)
			if err != nil {
				return nil, err
			}
			unitario = sub.Total
			detalle.agregarFaltantes(sub, sinPrecio)
		default:
			return nil, fmt.Errorf("tipo de componente desconocido: %q", linea.Tipo)
		}

		costo := linea.Cantidad.Mul(unitario)
		detalle.Lineas = append(detalle.Lineas, DetalleLinea{
			Tipo:          linea.Tipo,
			ComponenteID:  linea.ComponenteID,
			Cantidad:      linea.Cantidad,
			CostoUnitario: unitario,
			Costo:         costo,
		})
		detalle.Total = detalle.Total.Add(costo)
	}
	return detalle, nil
}

func (d *Detalle) agregarFaltantes(sub *Detalle, vistos map[uuid.UUID]bool) {
	for _, id := range sub.InsumosSinPrecio {
		if !vistos[id] {
			vistos[id] = true
			d.InsumosSinPrecio = append(d.InsumosSinPrecio, id)
		}
	}
}
