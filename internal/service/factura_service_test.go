package service

import (
	"context"
	"testing"

	"github.com/Fpidal/recetas-tero-sub001/internal/dto"
	"github.com/Fpidal/recetas-tero-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFacturaSvc() (FacturaService, *stubOrdenRepo, *stubFacturaRepo) {
	ordenes := newStubOrdenRepo()
	facturas := newStubFacturaRepo()
	return NewFacturaService(facturas, ordenes), ordenes, facturas
}

func TestCrearFactura_SinOrden(t *testing.T) {
	svc, _, _ := buildFacturaSvc()

	resp, err := svc.Crear(context.Background(), dto.CrearFacturaRequest{
		ProveedorID: uuid.NewString(),
		Numero:      "0001-00004521",
		Fecha:       "2026-08-30",
		Items: []dto.ItemFacturaRequest{
			{InsumoID: uuid.NewString(), Cantidad: d("10"), PrecioUnitario: d("100")},
		},
		Percepciones: []dto.PercepcionRequest{
			{Concepto: "Percepción IIBB", Monto: d("35.50")},
		},
	})

	require.NoError(t, err)
	assert.False(t, resp.Anulada)
	assert.Nil(t, resp.OrdenCompraID)
	assert.Empty(t, resp.EstadoOrden)
	// 10 * 100 + percepción 35.50
	assert.True(t, resp.Total.Equal(d("1035.50")), "got %s", resp.Total)
}

func TestCrearFactura_EntregaCompleta(t *testing.T) {
	svc, ordenes, _ := buildFacturaSvc()
	a := uuid.New()
	o := seedOrden(ordenes, "A01-0001", model.OrdenEnviada, itemOrden(a, "10", "100"))
	ordenID := o.ID.String()

	resp, err := svc.Crear(context.Background(), dto.CrearFacturaRequest{
		ProveedorID:   uuid.NewString(),
		Numero:        "0001-00000001",
		OrdenCompraID: &ordenID,
		Items: []dto.ItemFacturaRequest{
			{InsumoID: a.String(), Cantidad: d("10"), PrecioUnitario: d("100")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, model.OrdenRecibida, resp.EstadoOrden)
	assert.Equal(t, model.OrdenRecibida, ordenes.ordenes[o.ID].Estado)
}

func TestCrearFactura_EntregaParcial(t *testing.T) {
	svc, ordenes, _ := buildFacturaSvc()
	a, b := uuid.New(), uuid.New()
	o := seedOrden(ordenes, "A01-0001", model.OrdenEnviada,
		itemOrden(a, "10", "100"), itemOrden(b, "5", "50"))
	ordenID := o.ID.String()

	resp, err := svc.Crear(context.Background(), dto.CrearFacturaRequest{
		ProveedorID:   uuid.NewString(),
		Numero:        "0001-00000002",
		OrdenCompraID: &ordenID,
		Items: []dto.ItemFacturaRequest{
			{InsumoID: a.String(), Cantidad: d("6"), PrecioUnitario: d("100")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, model.OrdenRecibidaParcial, resp.EstadoOrden)
	assert.Equal(t, model.OrdenRecibidaParcial, ordenes.ordenes[o.ID].Estado)
}

func TestCrearFactura_SoloDiferenciaDePrecioEsRecibida(t *testing.T) {
	// Las diferencias de precio no degradan el estado: todas las cantidades
	// llegaron, la orden queda recibida.
	svc, ordenes, _ := buildFacturaSvc()
	a := uuid.New()
	o := seedOrden(ordenes, "A01-0001", model.OrdenEnviada, itemOrden(a, "10", "100"))
	ordenID := o.ID.String()

	resp, err := svc.Crear(context.Background(), dto.CrearFacturaRequest{
		ProveedorID:   uuid.NewString(),
		Numero:        "0001-00000003",
		OrdenCompraID: &ordenID,
		Items: []dto.ItemFacturaRequest{
			{InsumoID: a.String(), Cantidad: d("10"), PrecioUnitario: d("120")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, model.OrdenRecibida, resp.EstadoOrden)
}

func TestCrearFactura_OrdenEnBorrador(t *testing.T) {
	svc, ordenes, _ := buildFacturaSvc()
	o := seedOrden(ordenes, "A01-0001", model.OrdenBorrador, itemOrden(uuid.New(), "10", "100"))
	ordenID := o.ID.String()

	_, err := svc.Crear(context.Background(), dto.CrearFacturaRequest{
		ProveedorID:   uuid.NewString(),
		Numero:        "0001-00000004",
		OrdenCompraID: &ordenID,
		Items:         []dto.ItemFacturaRequest{{InsumoID: uuid.NewString(), Cantidad: d("1"), PrecioUnitario: d("10")}},
	})

	assert.ErrorIs(t, err, ErrEstadoInvalido)
}

func TestCrearFactura_OrdenYaFacturada(t *testing.T) {
	svc, ordenes, facturas := buildFacturaSvc()
	a := uuid.New()
	o := seedOrden(ordenes, "A01-0001", model.OrdenEnviada, itemOrden(a, "10", "100"))
	seedFacturaDeOrden(facturas, o.ID, itemFactura(a, "10", "100"))
	ordenID := o.ID.String()

	_, err := svc.Crear(context.Background(), dto.CrearFacturaRequest{
		ProveedorID:   uuid.NewString(),
		Numero:        "0001-00000005",
		OrdenCompraID: &ordenID,
		Items:         []dto.ItemFacturaRequest{{InsumoID: a.String(), Cantidad: d("10"), PrecioUnitario: d("100")}},
	})

	assert.ErrorIs(t, err, ErrOrdenFacturada)
}

func TestAnularFactura_RevierteLaOrden(t *testing.T) {
	svc, ordenes, facturas := buildFacturaSvc()
	a := uuid.New()
	o := seedOrden(ordenes, "A01-0001", model.OrdenRecibidaParcial, itemOrden(a, "10", "100"))
	f := seedFacturaDeOrden(facturas, o.ID, itemFactura(a, "6", "100"))

	err := svc.Anular(context.Background(), f.ID)

	require.NoError(t, err)
	assert.True(t, facturas.facturas[f.ID].Anulada)
	assert.Equal(t, model.OrdenEnviada, ordenes.ordenes[o.ID].Estado)
}

func TestAnularFactura_AnulaLaOrdenFaltante(t *testing.T) {
	ordenes := newStubOrdenRepo()
	facturas := newStubFacturaRepo()
	facturaSvc := NewFacturaService(facturas, ordenes)
	ordenSvc := NewOrdenService(ordenes, facturas, nil)

	a := uuid.New()
	o := seedOrden(ordenes, "A01-0001", model.OrdenRecibidaParcial, itemOrden(a, "10", "100"))
	f := seedFacturaDeOrden(facturas, o.ID, itemFactura(a, "6", "100"))

	faltante, err := ordenSvc.GenerarOrdenFaltante(context.Background(), o.ID)
	require.NoError(t, err)

	err = facturaSvc.Anular(context.Background(), f.ID)

	require.NoError(t, err)
	assert.Equal(t, model.OrdenEnviada, ordenes.ordenes[o.ID].Estado)
	assert.Equal(t, model.OrdenAnulada, ordenes.ordenes[uuid.MustParse(faltante.ID)].Estado)
}

func TestAnularFactura_YaAnulada(t *testing.T) {
	svc, ordenes, facturas := buildFacturaSvc()
	a := uuid.New()
	o := seedOrden(ordenes, "A01-0001", model.OrdenRecibida, itemOrden(a, "10", "100"))
	f := seedFacturaDeOrden(facturas, o.ID, itemFactura(a, "10", "100"))

	require.NoError(t, svc.Anular(context.Background(), f.ID))

	err := svc.Anular(context.Background(), f.ID)
	assert.ErrorIs(t, err, ErrFacturaAnulada)
}

func TestAnularFactura_SinOrdenAsociada(t *testing.T) {
	svc, _, facturas := buildFacturaSvc()
	f := &model.FacturaProveedor{ID: uuid.New(), ProveedorID: uuid.New(), Numero: "0001-00000009"}
	facturas.facturas[f.ID] = f

	err := svc.Anular(context.Background(), f.ID)

	require.NoError(t, err)
	assert.True(t, facturas.facturas[f.ID].Anulada)
}
