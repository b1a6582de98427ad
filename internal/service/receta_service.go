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

type RecetaService interface {
	Crear(ctx context.Context, req dto.CrearRecetaRequest) (*dto.RecetaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.RecetaResponse, error)
	Listar(ctx context.Context) ([]dto.RecetaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarRecetaRequest) (*dto.RecetaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type recetaService struct {
	repo   repository.RecetaRepository
	costeo CosteoService
}

func NewRecetaService(repo repository.RecetaRepository, costeo CosteoService) RecetaService {
	return &recetaService{repo: repo, costeo: costeo}
}

func (s *recetaService) Crear(ctx context.Context, req dto.CrearRecetaRequest) (*dto.RecetaResponse, error) {
	items, err := parseItemsReceta(req.Items)
	if err != nil {
		return nil, err
	}
	receta := &model.RecetaBase{
		Nombre:    req.Nombre,
		Porciones: req.Porciones,
		Activo:    true,
		Items:     items,
	}
	if err := s.repo.Create(ctx, receta); err != nil {
		return nil, err
	}
	return recetaToResponse(receta), nil
}

func (s *recetaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.RecetaResponse, error) {
	receta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return recetaToResponse(receta), nil
}

func (s *recetaService) Listar(ctx context.Context) ([]dto.RecetaResponse, error) {
	recetas, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RecetaResponse, 0, len(recetas))
	for i := range recetas {
		resp = append(resp, *recetaToResponse(&recetas[i]))
	}
	return resp, nil
}

// Actualizar replaces header and item list in one transaction so a failure
// cannot leave a recipe with half-swapped lines.
func (s *recetaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarRecetaRequest) (*dto.RecetaResponse, error) {
	receta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := parseItemsReceta(req.Items)
	if err != nil {
		return nil, err
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		receta.Nombre = req.Nombre
		receta.Porciones = req.Porciones
		receta.Items = nil
		if tx != nil {
			if err := tx.Save(receta).Error; err != nil {
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

	receta.Items = items
	return recetaToResponse(receta), nil
}

func (s *recetaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func parseItemsReceta(items []dto.ItemRecetaRequest) ([]model.RecetaBaseItem, error) {
	parsed := make([]model.RecetaBaseItem, 0, len(items))
	for _, item := range items {
		insumoID, err := uuid.Parse(item.InsumoID)
		if err != nil {
			return nil, fmt.Errorf("insumo_id inválido: %w", err)
		}
		parsed = append(parsed, model.RecetaBaseItem{InsumoID: insumoID, Cantidad: item.Cantidad})
	}
	return parsed, nil
}

func recetaToResponse(r *model.RecetaBase) *dto.RecetaResponse {
	resp := &dto.RecetaResponse{
		ID:        r.ID.String(),
		Nombre:    r.Nombre,
		Porciones: r.Porciones,
		Activo:    r.Activo,
	}
	for _, item := range r.Items {
		ir := dto.ItemRecetaResponse{InsumoID: item.InsumoID.String(), Cantidad: item.Cantidad}
		if item.Insumo.ID != uuid.Nil {
			ir.Insumo = item.Insumo.Nombre
		}
		resp.Items = append(resp.Items, ir)
	}
	return resp
}
