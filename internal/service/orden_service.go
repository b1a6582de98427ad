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

var (
	// ErrOrdenFacturada: the order already has a live invoice, so its lines
	// are locked.
	ErrOrdenFacturada = errors.New("la orden ya tiene una factura asociada y no puede modificarse")
	// ErrEstadoInvalido: the requested transition is not allowed from the
	// order's current estado.
	ErrEstadoInvalido = errors.New("la orden no admite esta operación en su estado actual")
	// ErrSinFactura: the operation needs the settling invoice and the order
	// has none.
	ErrSinFactura = errors.New("la orden no tiene una factura asociada")
	// ErrSinFaltantes: reconciliation shows nothing undelivered.
	ErrSinFaltantes = errors.New("la orden no tiene cantidades faltantes")
)

// FaltanteExistenteError refuses a second shortfall order for the same origin
// and surfaces the number of the one that already exists.
type FaltanteExistenteError struct {
	Numero string
}

func (e *FaltanteExistenteError) Error() string {
	return fmt.Sprintf("ya existe la orden faltante %s para esta orden", e.Numero)
}

// Encolador pushes background jobs; the worker dispatcher implements it.
// A nil Encolador disables enqueueing (unit tests, seed tooling).
type Encolador interface {
	EncolarDocumento(ctx context.Context, ordenID uuid.UUID) error
}

type OrdenService interface {
	Crear(ctx context.Context, req dto.CrearOrdenRequest) (*dto.OrdenResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.OrdenResponse, error)
	Listar(ctx context.Context, filter dto.OrdenFilter) (*dto.OrdenListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarOrdenRequest) (*dto.OrdenResponse, error)
	Anular(ctx context.Context, id uuid.UUID) error
	Emitir(ctx context.Context, id uuid.UUID) (*dto.OrdenResponse, error)
	Conciliacion(ctx context.Context, id uuid.UUID) (*dto.ConciliacionResponse, error)
	GenerarOrdenFaltante(ctx context.Context, id uuid.UUID) (*dto.OrdenResponse, error)
}

type ordenService struct {
	ordenes  repository.OrdenCompraRepository
	facturas repository.FacturaRepository
	cola     Encolador
}

func NewOrdenService(ordenes repository.OrdenCompraRepository, facturas repository.FacturaRepository, cola Encolador) OrdenService {
	return &ordenService{ordenes: ordenes, facturas: facturas, cola: cola}
}

func (s *ordenService) Crear(ctx context.Context, req dto.CrearOrdenRequest) (*dto.OrdenResponse, error) {
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
	items, total, err := buildItemsOrden(req.Items)
	if err != nil {
		return nil, err
	}

	orden := &model.OrdenCompra{
		ProveedorID: proveedorID,
		Fecha:       fecha,
		Estado:      model.OrdenBorrador,
		Total:       total,
		Items:       items,
	}
	err = runTx(ctx, s.ordenes.DB(), func(tx *gorm.DB) error {
		max, err := s.ordenes.MaxNumeroTx(tx)
		if err != nil {
			return err
		}
		orden.Numero = conciliacion.SiguienteNumero(max)
		return s.ordenes.CreateTx(tx, orden)
	})
	if err != nil {
		return nil, err
	}
	return ordenToResponse(orden), nil
}

func (s *ordenService) Obtener(ctx context.Context, id uuid.UUID) (*dto.OrdenResponse, error) {
	orden, err := s.ordenes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ordenToResponse(orden), nil
}

func (s *ordenService) Listar(ctx context.Context, filter dto.OrdenFilter) (*dto.OrdenListResponse, error) {
	ordenes, total, err := s.ordenes.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.OrdenListResponse{Total: total, Page: filter.Page, Limit: filter.Limit, Data: []dto.OrdenResponse{}}
	for i := range ordenes {
		resp.Data = append(resp.Data, *ordenToResponse(&ordenes[i]))
	}
	return resp, nil
}

// Actualizar replaces the item lines of a draft or sent order. Once an
// invoice references the order the lines are the reconciliation baseline and
// can no longer change.
func (s *ordenService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarOrdenRequest) (*dto.OrdenResponse, error) {
	orden, err := s.ordenes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if orden.Estado != model.OrdenBorrador && orden.Estado != model.OrdenEnviada {
		return nil, ErrEstadoInvalido
	}
	factura, err := s.facturas.FindByOrden(ctx, id)
	if err != nil {
		return nil, err
	}
	if factura != nil {
		return nil, ErrOrdenFacturada
	}

	items, total, err := buildItemsOrden(req.Items)
	if err != nil {
		return nil, err
	}
	err = runTx(ctx, s.ordenes.DB(), func(tx *gorm.DB) error {
		if err := s.ordenes.ReplaceItemsTx(tx, id, items); err != nil {
			return err
		}
		return s.ordenes.UpdateTotalTx(tx, id, total)
	})
	if err != nil {
		return nil, err
	}
	orden.Items = items
	orden.Total = total
	return ordenToResponse(orden), nil
}

// Anular cancels an order. Only drafts can be cancelled by hand; anything
// already sent to the supplier has to be resolved through its invoice.
func (s *ordenService) Anular(ctx context.Context, id uuid.UUID) error {
	orden, err := s.ordenes.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if orden.Estado != model.OrdenBorrador {
		return ErrEstadoInvalido
	}
	return s.ordenes.UpdateEstado(ctx, id, model.OrdenAnulada)
}

// Emitir moves a draft to enviada and queues the PDF + email job. A queue
// failure does not roll back the transition: the retry cron picks up sent
// orders without a document.
func (s *ordenService) Emitir(ctx context.Context, id uuid.UUID) (*dto.OrdenResponse, error) {
	orden, err := s.ordenes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if orden.Estado != model.OrdenBorrador {
		return nil, ErrEstadoInvalido
	}
	if err := s.ordenes.UpdateEstado(ctx, id, model.OrdenEnviada); err != nil {
		return nil, err
	}
	orden.Estado = model.OrdenEnviada

	if s.cola != nil {
		if err := s.cola.EncolarDocumento(ctx, id); err != nil {
			log.Warn().Err(err).Str("orden_id", id.String()).Msg("no se pudo encolar el documento de la orden")
		}
	}
	return ordenToResponse(orden), nil
}

func (s *ordenService) Conciliacion(ctx context.Context, id uuid.UUID) (*dto.ConciliacionResponse, error) {
	orden, err := s.ordenes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	factura, err := s.facturas.FindByOrden(ctx, id)
	if err != nil {
		return nil, err
	}
	if factura == nil {
		return nil, ErrSinFactura
	}
	res := conciliacion.Conciliar(orden.Items, factura.Items)
	return conciliacionToResponse(orden, factura, res), nil
}

// GenerarOrdenFaltante creates a draft order covering the undelivered
// quantities of a partially received order. At most one live shortfall order
// may exist per origin.
func (s *ordenService) GenerarOrdenFaltante(ctx context.Context, id uuid.UUID) (*dto.OrdenResponse, error) {
	existente, err := s.ordenes.FindByOrigen(ctx, id)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, &FaltanteExistenteError{Numero: existente.Numero}
	}

	orden, err := s.ordenes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if orden.Estado != model.OrdenRecibidaParcial {
		return nil, ErrEstadoInvalido
	}
	factura, err := s.facturas.FindByOrden(ctx, id)
	if err != nil {
		return nil, err
	}
	if factura == nil {
		return nil, ErrSinFactura
	}

	faltantes := conciliacion.Conciliar(orden.Items, factura.Items).Faltantes()
	if len(faltantes) == 0 {
		return nil, ErrSinFaltantes
	}

	items := make([]model.OrdenCompraItem, 0, len(faltantes))
	total := decimal.Zero
	for _, f := range faltantes {
		subtotal := f.Cantidad.Mul(f.PrecioUnitario)
		items = append(items, model.OrdenCompraItem{
			InsumoID:       f.InsumoID,
			Cantidad:       f.Cantidad,
			PrecioUnitario: f.PrecioUnitario,
			Subtotal:       subtotal,
		})
		total = total.Add(subtotal)
	}

	origenID := id
	faltante := &model.OrdenCompra{
		ProveedorID:   orden.ProveedorID,
		Fecha:         time.Now(),
		Estado:        model.OrdenBorrador,
		OrdenOrigenID: &origenID,
		Total:         total,
		Items:         items,
	}
	err = runTx(ctx, s.ordenes.DB(), func(tx *gorm.DB) error {
		max, err := s.ordenes.MaxNumeroTx(tx)
		if err != nil {
			return err
		}
		faltante.Numero = conciliacion.SiguienteNumero(max)
		return s.ordenes.CreateTx(tx, faltante)
	})
	if err != nil {
		return nil, err
	}
	return ordenToResponse(faltante), nil
}

func buildItemsOrden(reqs []dto.ItemOrdenRequest) ([]model.OrdenCompraItem, decimal.Decimal, error) {
	items := make([]model.OrdenCompraItem, 0, len(reqs))
	total := decimal.Zero
	for _, it := range reqs {
		insumoID, err := uuid.Parse(it.InsumoID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("insumo_id inválido: %w", err)
		}
		if !it.Cantidad.IsPositive() {
			return nil, decimal.Zero, fmt.Errorf("cantidad inválida para el insumo %s", it.InsumoID)
		}
		subtotal := it.Cantidad.Mul(it.PrecioUnitario)
		items = append(items, model.OrdenCompraItem{
			InsumoID:       insumoID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Subtotal:       subtotal,
		})
		total = total.Add(subtotal)
	}
	return items, total, nil
}

func ordenToResponse(o *model.OrdenCompra) *dto.OrdenResponse {
	resp := &dto.OrdenResponse{
		ID:          o.ID.String(),
		Numero:      o.Numero,
		ProveedorID: o.ProveedorID.String(),
		Fecha:       o.Fecha.Format("2006-01-02"),
		Estado:      o.Estado,
		Total:       o.Total,
	}
	if o.Proveedor.ID != uuid.Nil {
		resp.Proveedor = o.Proveedor.RazonSocial
	}
	if o.OrdenOrigenID != nil {
		origen := o.OrdenOrigenID.String()
		resp.OrdenOrigenID = &origen
	}
	for _, it := range o.Items {
		item := dto.ItemOrdenResponse{
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
	return resp
}

func conciliacionToResponse(o *model.OrdenCompra, f *model.FacturaProveedor, res *conciliacion.Resultado) *dto.ConciliacionResponse {
	nombres := make(map[uuid.UUID]string, len(o.Items)+len(f.Items))
	for _, it := range o.Items {
		if it.Insumo.ID != uuid.Nil {
			nombres[it.InsumoID] = it.Insumo.Nombre
		}
	}
	for _, it := range f.Items {
		if it.Insumo.ID != uuid.Nil {
			nombres[it.InsumoID] = it.Insumo.Nombre
		}
	}

	resp := &dto.ConciliacionResponse{
		OrdenID:   o.ID.String(),
		FacturaID: f.ID.String(),
		Semaforo: dto.SemaforoResponse{
			NoEntregadas:      res.Semaforo.NoEntregadas,
			Parciales:         res.Semaforo.Parciales,
			DiferenciasPrecio: res.Semaforo.DiferenciasPrecio,
			Nuevos:            res.Semaforo.Nuevos,
			Perfecto:          res.Semaforo.Perfecto(),
		},
	}
	for _, l := range res.Lineas {
		resp.Lineas = append(resp.Lineas, dto.LineaConciliacionResponse{
			InsumoID:      l.InsumoID.String(),
			Insumo:        nombres[l.InsumoID],
			Pedida:        l.Pedida,
			Recibida:      l.Recibida,
			PrecioOrden:   l.PrecioOrden,
			PrecioFactura: l.PrecioFactura,
			Estado:        l.Estado,
			PrecioDifiere: l.PrecioDifiere,
		})
	}
	return resp
}
