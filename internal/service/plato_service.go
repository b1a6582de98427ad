package service

import (
	"context"
	"fmt"

	"github.com/Fpidal/recetas-tero-sub001/internal/dto"
	"github.com/Fpidal/recetas-tero-sub001/internal/model"
	"github.com/Fpidal/recetas-tero-sub001/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlatoService interface {
	Crear(ctx context.Context, req dto.CrearPlatoRequest) (*dto.PlatoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PlatoResponse, error)
	Listar(ctx context.Context, seccion string) ([]dto.PlatoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPlatoRequest) (*dto.PlatoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type platoService struct {
	repo   repository.PlatoRepository
	costeo CosteoService
}

func NewPlatoService(repo repository.PlatoRepository, costeo CosteoService) PlatoService {
	return &platoService{repo: repo, costeo: costeo}
}

func (s *platoService) Crear(ctx context.Context, req dto.CrearPlatoRequest) (*dto.PlatoResponse, error) {
	items, err := parseItemsPlato(req.Items)
	if err != nil {
		return nil, err
	}
	plato := &model.Plato{
		Nombre:           req.Nombre,
		Seccion:          req.Seccion,
		PrecioCarta:      req.PrecioCarta,
		FoodCostObjetivo: req.FoodCostObjetivo,
		Activo:           true,
		Items:            items,
	}
	if err := s.repo.Create(ctx, plato); err != nil {
		return nil, err
	}
	return platoToResponse(plato), nil
}

func (s *platoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PlatoResponse, error) {
	plato, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return platoToResponse(plato), nil
}

func (s *platoService) Listar(ctx context.Context, seccion string) ([]dto.PlatoResponse, error) {
	platos, err := s.repo.List(ctx, seccion, false)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PlatoResponse, 0, len(platos))
	for i := range platos {
		resp = append(resp, *platoToResponse(&platos[i]))
	}
	return resp, nil
}

func (s *platoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPlatoRequest) (*dto.PlatoResponse, error) {
	plato, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := parseItemsPlato(req.Items)
	if err != nil {
		return nil, err
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		plato.Nombre = req.Nombre
		plato.Seccion = req.Seccion
		plato.PrecioCarta = req.PrecioCarta
		plato.FoodCostObjetivo = req.FoodCostObjetivo
		plato.Items = nil
		if tx != nil {
			if err := tx.Save(plato).Error; err != nil {
				return err
			}
		}
		return s.repo.ReplaceItemsTx(tx, id, items)
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.costeo != nil {
		s.costeo.InvalidarCache(ctx)
	}

	plato.Items = items
	return platoToResponse(plato), nil
}

func (s *platoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

// parseItemsPlato validates that dish lines only reference insumos or
// recetas — a dish cannot contain another dish.
func parseItemsPlato(items []dto.ItemComponenteRequest) ([]model.PlatoItem, error) {
	parsed := make([]model.PlatoItem, 0, len(items))
	for _, item := range items {
		if item.Tipo != model.ComponenteInsumo && item.Tipo != model.ComponenteReceta {
			return nil, fmt.Errorf("tipo de componente %q no permitido en un plato", item.Tipo)
		}
		componenteID, err := uuid.Parse(item.ComponenteID)
		if err != nil {
			return nil, fmt.Errorf("componente_id inválido: %w", err)
		}
		parsed = append(parsed, model.PlatoItem{
			ComponenteTipo: item.Tipo,
			ComponenteID:   componenteID,
			Cantidad:       item.Cantidad,
		})
	}
	return parsed, nil
}

func platoToResponse(p *model.Plato) *dto.PlatoResponse {
	resp := &dto.PlatoResponse{
		ID:               p.ID.String(),
		Nombre:           p.Nombre,
		Seccion:          p.Seccion,
		PrecioCarta:      p.PrecioCarta,
		FoodCostObjetivo: p.FoodCostObjetivo,
		Activo:           p.Activo,
	}
	for _, item := range p.Items {
		resp.Items = append(resp.Items, dto.ItemComponenteResponse{
			Tipo:         item.ComponenteTipo,
			ComponenteID: item.ComponenteID.String(),
			Cantidad:     item.Cantidad,
		})
	}
	return resp
}
