package costeo

import (
	"context"
	"testing"

	"github.com/Fpidal/recetas-tero-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── In-memory Almacen stub ───────────────────────────────────────────────────

type stubAlmacen struct {
	insumos map[uuid.UUID]*model.Insumo
	precios map[uuid.UUID]*model.PrecioInsumo
	recetas map[uuid.UUID]*model.RecetaBase
	platos  map[uuid.UUID]*model.Plato
}

func newStubAlmacen() *stubAlmacen {
	return &stubAlmacen{
		insumos: make(map[uuid.UUID]*model.Insumo),
		precios: make(map[uuid.UUID]*model.PrecioInsumo),
		recetas: make(map[uuid.UUID]*model.RecetaBase),
		platos:  make(map[uuid.UUID]*model.Plato),
	}
}

func (s *stubAlmacen) Insumo(_ context.Context, id uuid.UUID) (*model.Insumo, error) {
	return s.insumos[id], nil
}

func (s *stubAlmacen) PrecioVigente(_ context.Context, insumoID uuid.UUID) (*model.PrecioInsumo, error) {
	return s.precios[insumoID], nil
}

func (s *stubAlmacen) Receta(_ context.Context, id uuid.UUID) (*model.RecetaBase, error) {
	return s.recetas[id], nil
}

func (s *stubAlmacen) Plato(_ context.Context, id uuid.UUID) (*model.Plato, error) {
	return s.platos[id], nil
}

var _ Almacen = (*stubAlmacen)(nil)

// seedInsumo registra un insumo con su precio vigente. precio == "" lo deja
// sin precio actual.
func (s *stubAlmacen) seedInsumo(iva, merma, precio string) uuid.UUID {
	id := uuid.New()
	s.insumos[id] = &model.Insumo{
		ID:       id,
		Nombre:   "insumo-" + id.String()[:8],
		IVAPct:   d(iva),
		MermaPct: d(merma),
		Activo:   true,
	}
	if precio != "" {
		s.precios[id] = &model.PrecioInsumo{
			ID:       uuid.New(),
			InsumoID: id,
			Precio:   d(precio),
			Vigente:  true,
		}
	}
	return id
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCostoInsumo(t *testing.T) {
	almacen := newStubAlmacen()
	id := almacen.seedInsumo("21", "10", "100")
	calc := NewCalculadora(almacen)

	costo, sinPrecio, err := calc.CostoInsumo(context.Background(), id)

	require.NoError(t, err)
	assert.False(t, sinPrecio)
	assert.True(t, costo.Equal(d("133.1")), "got %s", costo)
}

func TestCostoInsumo_SinPrecioVigente(t *testing.T) {
	almacen := newStubAlmacen()
	id := almacen.seedInsumo("21", "0", "")
	calc := NewCalculadora(almacen)

	costo, sinPrecio, err := calc.CostoInsumo(context.Background(), id)

	require.NoError(t, err)
	assert.True(t, sinPrecio)
	assert.True(t, costo.IsZero())
}

func TestCostoInsumo_Inexistente(t *testing.T) {
	calc := NewCalculadora(newStubAlmacen())

	costo, sinPrecio, err := calc.CostoInsumo(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.True(t, sinPrecio)
	assert.True(t, costo.IsZero())
}

func TestCostoReceta(t *testing.T) {
	almacen := newStubAlmacen()
	papa := almacen.seedInsumo("0", "0", "10")   // unitario 10
	aceite := almacen.seedInsumo("0", "0", "20") // unitario 20

	recetaID := uuid.New()
	almacen.recetas[recetaID] = &model.RecetaBase{
		ID:        recetaID,
		Nombre:    "Papas españolas",
		Porciones: 4,
		Items: []model.RecetaBaseItem{
			{InsumoID: papa, Cantidad: d("2")},     // 20
			{InsumoID: aceite, Cantidad: d("0.5")}, // 10
		},
	}
	calc := NewCalculadora(almacen)

	detalle, err := calc.CostoReceta(context.Background(), recetaID)

	require.NoError(t, err)
	assert.True(t, detalle.Total.Equal(d("30")), "got %s", detalle.Total)
	assert.True(t, detalle.PorPorcion.Equal(d("7.5")), "got %s", detalle.PorPorcion)
	assert.Len(t, detalle.Lineas, 2)
	assert.Empty(t, detalle.InsumosSinPrecio)
}

func TestCostoReceta_Inexistente(t *testing.T) {
	calc := NewCalculadora(newStubAlmacen())

	detalle, err := calc.CostoReceta(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.True(t, detalle.Total.IsZero())
}

func TestCostoPlato_ConRecetaAnidada(t *testing.T) {
	almacen := newStubAlmacen()
	carne := almacen.seedInsumo("0", "0", "100")
	papa := almacen.seedInsumo("0", "0", "10")

	recetaID := uuid.New()
	almacen.recetas[recetaID] = &model.RecetaBase{
		ID:        recetaID,
		Porciones: 4,
		Items:     []model.RecetaBaseItem{{InsumoID: papa, Cantidad: d("2")}}, // total 20, porción 5
	}

	platoID := uuid.New()
	almacen.platos[platoID] = &model.Plato{
		ID: platoID,
		Items: []model.PlatoItem{
			{ComponenteTipo: model.ComponenteInsumo, ComponenteID: carne, Cantidad: d("0.3")},  // 30
			{ComponenteTipo: model.ComponenteReceta, ComponenteID: recetaID, Cantidad: d("1")}, // 5
		},
	}
	calc := NewCalculadora(almacen)

	detalle, err := calc.CostoPlato(context.Background(), platoID)

	require.NoError(t, err)
	assert.True(t, detalle.Total.Equal(d("35")), "got %s", detalle.Total)
}

func TestCostoLineas_InsumosSinPrecioSinDuplicados(t *testing.T) {
	almacen := newStubAlmacen()
	sinPrecio := almacen.seedInsumo("21", "0", "")

	recetaID := uuid.New()
	almacen.recetas[recetaID] = &model.RecetaBase{
		ID:        recetaID,
		Porciones: 1,
		Items:     []model.RecetaBaseItem{{InsumoID: sinPrecio, Cantidad: d("1")}},
	}
	calc := NewCalculadora(almacen)

	// El mismo insumo faltante aparece directo y dentro de la receta.
	detalle, err := calc.CostoLineas(context.Background(), []Linea{
		{Tipo: model.ComponenteInsumo, ComponenteID: sinPrecio, Cantidad: d("2")},
		{Tipo: model.ComponenteReceta, ComponenteID: recetaID, Cantidad: d("1")},
	})

	require.NoError(t, err)
	assert.True(t, detalle.Total.IsZero())
	assert.Equal(t, []uuid.UUID{sinPrecio}, detalle.InsumosSinPrecio)
}

func TestCostoLineas_TipoDesconocido(t *testing.T) {
	calc := NewCalculadora(newStubAlmacen())

	_, err := calc.CostoLineas(context.Background(), []Linea{
		{Tipo: "combo", ComponenteID: uuid.New(), Cantidad: d("1")},
	})

	assert.Error(t, err)
}
