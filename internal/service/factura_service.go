package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Fpidal/recetas-tero-sub001/internal/conciliacion"
	"github.com/Fpidal/recetas-tero-sub001/internal/dto"
	"github.com/Fpidal/recetas-tero-sub001/internal/model"
	"github.com/Fpidal/recetas-tero-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrFacturaAnulada: the invoice was already reversed.
var ErrFacturaAnulada = errors.New("la factura ya está anulada")

type FacturaService interface {
	Crear(ctx context.Context, req dto.CrearFacturaRequest) (*dto.FacturaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.FacturaResponse, error)
	Listar(ctx context.Context, filter dto.FacturaFilter) (*dto.FacturaListResponse, error)
	Anular(ctx context.Context, id uuid.UUID) error
}

type facturaService struct {
	facturas repository.FacturaRepository
	ordenes  repository.OrdenCompraRepository
}

func NewFacturaService(facturas repository.FacturaRepository, ordenes repository.OrdenCompraRepository) FacturaService {
	return &facturaService{facturas: facturas, ordenes: ordenes}
}

// Crear registers a supplier invoice. When the invoice settles an order, the
// order's estado is derived from the reconciliation and written in the same
// transaction: recibida when every line arrived complete, recibida_parcial
// otherwise.
func (s *facturaService) Crear(ctx context.Context, req dto.CrearFacturaRequest) (*dto.FacturaResponse, error) {
	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, fmt.Errorf("proveedor_id inválido: %w", err)
	}
	fecha := time.Now()
	if req.Fecha != "" {
		fecha, err = time.Parse("2006-01-02", req.Fecha)
		if err != nil {
			return nil, fmt.Errorf("fecha inválida: %w", err)
		}
	}

	items := make([]model.FacturaItem, 0, len(req.Items))
	total := decimal.Zero
	for _, it := range req.Items {
		insumoID, err := uuid.Parse(it.InsumoID)
		if err != nil {
			return nil, fmt.Errorf("insumo_id inválido: %w", err)
		}
		subtotal := it.Cantidad.Mul(it.PrecioUnitario)
		items = append(items, model.FacturaItem{
			InsumoID:       insumoID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Subtotal:       subtotal,
		})
		total = total.Add(subtotal)
	}
	percepciones := make([]model.FacturaPercepcion, 0, len(req.Percepciones))
	for _, p := range req.Percepciones {
		percepciones = append(percepciones, model.FacturaPercepcion{Concepto: p.Concepto, Monto: p.Monto})
		total = total.Add(p.Monto)
	}

	factura := &model.FacturaProveedor{
		ProveedorID:  proveedorID,
		Numero:       req.Numero,
		Fecha:        fecha,
		Total:        total,
		Items:        items,
		Percepciones: percepciones,
	}

	var orden *model.OrdenCompra
	estadoOrden := ""
	if req.OrdenCompraID != nil {
		ordenID, err := uuid.Parse(*req.OrdenCompraID)
		if err != nil {
			return nil, fmt.Errorf("orden_compra_id inválido: %w", err)
		}
		orden, err = s.ordenes.FindByID(ctx, ordenID)
		if err != nil {
			return nil, err
		}
		if orden.Estado != model.OrdenEnviada {
			return nil, ErrEstadoInvalido
		}
		previa, err := s.facturas.FindByOrden(ctx, ordenID)
		if err != nil {
			return nil, err
		}
		if previa != nil {
			return nil, ErrOrdenFacturada
		}
		factura.OrdenCompraID = &ordenID

		res := conciliacion.Conciliar(orden.Items, items)
		estadoOrden = model.OrdenRecibida
		if res.Semaforo.NoEntregadas > 0 || res.Semaforo.Parciales > 0 {
			estadoOrden = model.OrdenRecibidaParcial
		}
	}

	err = runTx(ctx, s.facturas.DB(), func(tx *gorm.DB) error {
		if err := s.facturas.CreateTx(tx, factura); err != nil {
			return err
		}
		if orden != nil {
			return s.ordenes.UpdateEstadoTx(tx, orden.ID, estadoOrden)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := facturaToResponse(factura)
	resp.EstadoOrden = estadoOrden
	return resp, nil
}

func (s *facturaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.FacturaResponse, error) {
	factura, err := s.facturas.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return facturaToResponse(factura), nil
}

func (s *facturaService) Listar(ctx context.Context, filter dto.FacturaFilter) (*dto.FacturaListResponse, error) {
	facturas, total, err := s.facturas.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.FacturaListResponse{Total: total, Page: filter.Page, Limit: filter.Limit, Data: []dto.FacturaResponse{}}
	for i := range facturas {
		resp.Data = append(resp.Data, *facturaToResponse(&facturas[i]))
	}
	return resp, nil
}

// Anular reverses an invoice without deleting it. The linked order goes back
// to enviada, ready for a corrected invoice, and a live shortfall order
// spawned from the reverted reconciliation is cancelled with it.
func (s *facturaService) Anular(ctx context.Context, id uuid.UUID) error {
	factura, err := s.facturas.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if factura.Anulada {
		return ErrFacturaAnulada
	}

	var faltante *model.OrdenCompra
	if factura.OrdenCompraID != nil {
		faltante, err = s.ordenes.FindByOrigen(ctx, *factura.OrdenCompraID)
		if err != nil {
			return err
		}
	}

	err = runTx(ctx, s.facturas.DB(), func(tx *gorm.DB) error {
		if err := s.facturas.MarkAnuladaTx(tx, id); err != nil {
			return err
		}
		if factura.OrdenCompraID != nil {
			if err := s.ordenes.UpdateEstadoTx(tx, *factura.OrdenCompraID, model.OrdenEnviada); err != nil {
				return err
			}
		}
		if faltante != nil {
			return s.ordenes.UpdateEstadoTx(tx, faltante.ID, model.OrdenAnulada)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if faltante != nil {
		log.Info().Str("factura_id", id.String()).Str("orden_faltante", faltante.Numero).
			Msg("orden faltante anulada al anular la factura")
	}
	return nil
}

func facturaToResponse(f *model.FacturaProveedor) *dto.FacturaResponse {
	resp := &dto.FacturaResponse{
		ID:          f.ID.String(),
		ProveedorID: f.ProveedorID.String(),
		Numero:      f.Numero,
		Fecha:       f.Fecha.Format("2006-01-02"),
		Total:       f.Total,
		Anulada:     f.Anulada,
	}
	if f.Proveedor.ID != uuid.Nil {
		resp.Proveedor = f.Proveedor.RazonSocial
	}
	if f.OrdenCompraID != nil {
		ordenID := f.OrdenCompraID.String()
		resp.OrdenCompraID = &ordenID
	}
	for _, it := range f.Items {
		item := dto.ItemFacturaResponse{
			InsumoID:       it.InsumoID.String(),
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Subtotal:       it.Subtotal,
		}
		if it.Insumo.ID != uuid.Nil {
			item.Insumo = it.Insumo.Nombre
		}
		resp.Items = append(resp.Items, item)
	}
	for _, p := range f.Percepciones {
		resp.Percepciones = append(resp.Percepciones, dto.PercepcionResponse{Concepto: p.Concepto, Monto: p.Monto})
	}
	return resp
}
