package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Fpidal/recetas-tero-sub001/internal/costeo"
	"github.com/Fpidal/recetas-tero-sub001/internal/dto"
	"github.com/Fpidal/recetas-tero-sub001/internal/model"
	"github.com/Fpidal/recetas-tero-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	cachePrefixCosto = "costo:"
	cacheTTLCosto    = 10 * time.Minute
)

// CosteoService exposes the cost roll-up engine over the repositories:
// landed ingredient costs, recipe/dish/menu breakdowns, and the carta
// food-cost overview. Dish totals are cached in Redis and invalidated on
// every price or composition write.
type CosteoService interface {
	// CostoInsumo returns the representative vigente price (nil when the
	// insumo has no current price) and the landed unit cost derived from it.
	CostoInsumo(ctx context.Context, id uuid.UUID) (*decimal.Decimal, decimal.Decimal, error)
	CostoReceta(ctx context.Context, id uuid.UUID) (*dto.CosteoResponse, error)
	CostoPlato(ctx context.Context, id uuid.UUID) (*dto.CosteoResponse, error)
	CostoMenuEjecutivo(ctx context.Context, id uuid.UUID) (*dto.CosteoResponse, error)
	CostoMenuEspecial(ctx context.Context, id uuid.UUID) (*dto.CosteoResponse, error)
	Carta(ctx context.Context) (*dto.CartaResponse, error)
	// InvalidarCache drops every cached roll-up. Called by the write paths
	// that change prices or composition; best-effort, never fails the write.
	InvalidarCache(ctx context.Context)
}

type costeoService struct {
	insumoRepo repository.InsumoRepository
	precioRepo repository.PrecioRepository
	recetaRepo repository.RecetaRepository
	platoRepo  repository.PlatoRepository
	menuRepo   repository.MenuRepository
	rdb        *redis.Client
	calc       *costeo.Calculadora
}

func NewCosteoService(
	insumoRepo repository.InsumoRepository,
	precioRepo repository.PrecioRepository,
	recetaRepo repository.RecetaRepository,
	platoRepo repository.PlatoRepository,
	menuRepo repository.MenuRepository,
	rdb *redis.Client,
) CosteoService {
	s := &costeoService{
		insumoRepo: insumoRepo,
		precioRepo: precioRepo,
		recetaRepo: recetaRepo,
		platoRepo:  platoRepo,
		menuRepo:   menuRepo,
		rdb:        rdb,
	}
	s.calc = costeo.NewCalculadora(&almacenRepos{s: s})
	return s
}

// almacenRepos adapts the repositories onto the engine's Almacen interface,
// translating gorm's not-found into the (nil, nil) the engine expects.
type almacenRepos struct{ s *costeoService }

func (a *almacenRepos) Insumo(ctx context.Context, id uuid.UUID) (*model.Insumo, error) {
	insumo, err := a.s.insumoRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return insumo, err
}

func (a *almacenRepos) PrecioVigente(ctx context.Context, insumoID uuid.UUID) (*model.PrecioInsumo, error) {
	return a.s.precioRepo.FindVigenteMin(ctx, insumoID)
}

func (a *almacenRepos) Receta(ctx context.Context, id uuid.UUID) (*model.RecetaBase, error) {
	receta, err := a.s.recetaRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return receta, err
}

func (a *almacenRepos) Plato(ctx context.Context, id uuid.UUID) (*model.Plato, error) {
	plato, err := a.s.platoRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return plato, err
}

// ── Costos ───────────────────────────────────────────────────────────────────

func (s *costeoService) CostoInsumo(ctx context.Context, id uuid.UUID) (*decimal.Decimal, decimal.Decimal, error) {
	vigente, err := s.precioRepo.FindVigenteMin(ctx, id)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if vigente == nil {
		return nil, decimal.Zero, nil
	}
	costo, _, err := s.calc.CostoInsumo(ctx, id)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return &vigente.Precio, costo, nil
}

func (s *costeoService) CostoReceta(ctx context.Context, id uuid.UUID) (*dto.CosteoResponse, error) {
	detalle, err := s.calc.CostoReceta(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.detalleToResponse(ctx, detalle)
	porPorcion := detalle.PorPorcion
	resp.PorPorcion = &porPorcion
	return resp, nil
}

func (s *costeoService) CostoPlato(ctx context.Context, id uuid.UUID) (*dto.CosteoResponse, error) {
	plato, err := s.platoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detalle, err := s.calc.CostoPlato(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.detalleToResponse(ctx, detalle)
	analisis := costeo.Analizar(detalle.Total, plato.PrecioCarta, plato.FoodCostObjetivo)
	resp.Analisis = analisisToResponse(analisis)
	return resp, nil
}

func (s *costeoService) CostoMenuEjecutivo(ctx context.Context, id uuid.UUID) (*dto.CosteoResponse, error) {
	menu, err := s.menuRepo.FindEjecutivoByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lineas := make([]costeo.Linea, 0, len(menu.Items))
	for _, item := range menu.Items {
		lineas = append(lineas, costeo.Linea{
			Tipo:         item.ComponenteTipo,
			ComponenteID: item.ComponenteID,
			Cantidad:     item.Cantidad,
		})
	}
	detalle, err := s.calc.CostoLineas(ctx, lineas)
	if err != nil {
		return nil, err
	}
	resp := s.detalleToResponse(ctx, detalle)
	analisis := costeo.Analizar(detalle.Total, menu.PrecioVenta, menu.FoodCostObjetivo)
	resp.Analisis = analisisToResponse(analisis)
	return resp, nil
}

// CostoMenuEspecial derives the event total from the per-person cost and the
// head count, then applies the same shared pricing primitive as every other
// menu type. Each selectable dish option is costed for the screen.
func (s *costeoService) CostoMenuEspecial(ctx context.Context, id uuid.UUID) (*dto.CosteoResponse, error) {
	menu, err := s.menuRepo.FindEspecialByID(ctx, id)
	if err != nil {
		return nil, err
	}
	total := menu.CostoPorPersona.Mul(decimal.NewFromInt(int64(menu.Comensales)))

	resp := &dto.CosteoResponse{Total: total}
	for _, op := range menu.Opciones {
		detalle, err := s.calc.CostoPlato(ctx, op.PlatoID)
		if err != nil {
			return nil, err
		}
		resp.Lineas = append(resp.Lineas, dto.LineaCosteoResponse{
			Tipo:          model.ComponentePlato,
			ComponenteID:  op.PlatoID.String(),
			Nombre:        op.Plato.Nombre,
			Cantidad:      decimal.NewFromInt(1),
			CostoUnitario: detalle.Total,
			Costo:         detalle.Total,
		})
		for _, faltante := range detalle.InsumosSinPrecio {
			resp.InsumosSinPrecio = append(resp.InsumosSinPrecio, faltante.String())
		}
	}
	analisis := costeo.Analizar(total, menu.PrecioVenta, menu.FoodCostObjetivo)
	resp.Analisis = analisisToResponse(analisis)
	return resp, nil
}

// ── Carta ────────────────────────────────────────────────────────────────────

// costoCacheado is the cached shape of one dish roll-up.
type costoCacheado struct {
	Total     decimal.Decimal `json:"total"`
	SinPrecio bool            `json:"sin_precio"`
}

// Carta builds the food-cost overview of every active dish, going through
// the Redis cache so the screen does not redo the full roll-up per request.
func (s *costeoService) Carta(ctx context.Context) (*dto.CartaResponse, error) {
	platos, err := s.platoRepo.List(ctx, "", false)
	if err != nil {
		return nil, err
	}
	resp := &dto.CartaResponse{Platos: make([]dto.CartaItemResponse, 0, len(platos))}
	for i := range platos {
		plato := &platos[i]
		costo, err := s.costoPlatoCacheado(ctx, plato.ID)
		if err != nil {
			return nil, err
		}
		analisis := costeo.Analizar(costo.Total, plato.PrecioCarta, plato.FoodCostObjetivo)
		resp.Platos = append(resp.Platos, dto.CartaItemResponse{
			PlatoID:   plato.ID.String(),
			Nombre:    plato.Nombre,
			Seccion:   plato.Seccion,
			Analisis:  *analisisToResponse(analisis),
			SinPrecio: costo.SinPrecio,
		})
	}
	return resp, nil
}

func (s *costeoService) costoPlatoCacheado(ctx context.Context, platoID uuid.UUID) (*costoCacheado, error) {
	key := cachePrefixCosto + "plato:" + platoID.String()

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var cached costoCacheado
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	detalle, err := s.calc.CostoPlato(ctx, platoID)
	if err != nil {
		return nil, err
	}
	costo := &costoCacheado{Total: detalle.Total, SinPrecio: len(detalle.InsumosSinPrecio) > 0}

	if s.rdb != nil {
		if data, err := json.Marshal(costo); err == nil {
			if err := s.rdb.Set(ctx, key, data, cacheTTLCosto).Err(); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("costeo: cache set failed")
			}
		}
	}
	return costo, nil
}

func (s *costeoService) InvalidarCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	iter := s.rdb.Scan(ctx, 0, cachePrefixCosto+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Warn().Err(err).Str("key", iter.Val()).Msg("costeo: cache del failed")
		}
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("costeo: cache scan failed")
	}
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func (s *costeoService) detalleToResponse(ctx context.Context, detalle *costeo.Detalle) *dto.CosteoResponse {
	resp := &dto.CosteoResponse{Total: detalle.Total}
	for _, linea := range detalle.Lineas {
		resp.Lineas = append(resp.Lineas, dto.LineaCosteoResponse{
			Tipo:          linea.Tipo,
			ComponenteID:  linea.ComponenteID.String(),
			Nombre:        s.nombreComponente(ctx, linea.Tipo, linea.ComponenteID),
			Cantidad:      linea.Cantidad,
			CostoUnitario: linea.CostoUnitario,
			Costo:         linea.Costo,
		})
	}
	for _, id := range detalle.InsumosSinPrecio {
		resp.InsumosSinPrecio = append(resp.InsumosSinPrecio, id.String())
	}
	return resp
}

// nombreComponente resolves the display name of a component line.
// Lookup failures just leave the name empty — the cost math already ran.
func (s *costeoService) nombreComponente(ctx context.Context, tipo string, id uuid.UUID) string {
	switch tipo {
	case model.ComponenteInsumo:
		if insumo, err := s.insumoRepo.FindByID(ctx, id); err == nil {
			return insumo.Nombre
		}
	case model.ComponenteReceta:
		if receta, err := s.recetaRepo.FindByID(ctx, id); err == nil {
			return receta.Nombre
		}
	case model.ComponentePlato:
		if plato, err := s.platoRepo.FindByID(ctx, id); err == nil {
			return plato.Nombre
		}
	}
	return ""
}

func analisisToResponse(a costeo.Analisis) *dto.AnalisisResponse {
	return &dto.AnalisisResponse{
		Costo:             a.Costo,
		PrecioVenta:       a.PrecioVenta,
		FoodCostObjetivo:  a.FoodCostObjetivo,
		PrecioSugerido:    a.PrecioSugerido,
		FoodCostRealizado: a.FoodCostRealizado,
		Contribucion:      a.Contribucion,
		Estado:            a.Estado,
	}
}
