package service

import (
	"context"

	"github.com/Fpidal/recetas-tero-sub001/internal/dto"
	"github.com/Fpidal/recetas-tero-sub001/internal/model"
	"github.com/Fpidal/recetas-tero-sub001/internal/repository"

	"github.com/google/uuid"
)

// InsumoService defines the business logic contract for ingredients.
type InsumoService interface {
	Crear(ctx context.Context, req dto.CrearInsumoRequest) (*dto.InsumoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.InsumoResponse, error)
	Listar(ctx context.Context, filter dto.InsumoFilter) (*dto.InsumoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarInsumoRequest) (*dto.InsumoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type insumoService struct {
	repo   repository.InsumoRepository
	costeo CosteoService
}

func NewInsumoService(repo repository.InsumoRepository, costeo CosteoService) InsumoService {
	return &insumoService{repo: repo, costeo: costeo}
}

func (s *insumoService) Crear(ctx context.Context, req dto.CrearInsumoRequest) (*dto.InsumoResponse, error) {
	insumo := &model.Insumo{
		Nombre:       req.Nombre,
		Categoria:    req.Categoria,
		UnidadMedida: req.UnidadMedida,
		MermaPct:     req.MermaPct,
		IVAPct:       req.IVAPct,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, insumo); err != nil {
		return nil, err
	}
	return insumoToResponse(insumo), nil
}

func (s *insumoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.InsumoResponse, error) {
	insumo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := insumoToResponse(insumo)
	// Best effort: the response carries the live landed cost when a current
	// price exists; absence just leaves the fields null.
	if s.costeo != nil {
		if vigente, costo, err := s.costeo.CostoInsumo(ctx, id); err == nil && vigente != nil {
			resp.PrecioVigente = vigente
			resp.CostoUnitario = &costo
		}
	}
	return resp, nil
}

func (s *insumoService) Listar(ctx context.Context, filter dto.InsumoFilter) (*dto.InsumoListResponse, error) {
	insumos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.InsumoListResponse{
		Data:  make([]dto.InsumoResponse, 0, len(insumos)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range insumos {
		resp.Data = append(resp.Data, *insumoToResponse(&insumos[i]))
	}
	return resp, nil
}

func (s *insumoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarInsumoRequest) (*dto.InsumoResponse, error) {
	insumo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	insumo.Nombre = req.Nombre
	insumo.Categoria = req.Categoria
	insumo.UnidadMedida = req.UnidadMedida
	insumo.MermaPct = req.MermaPct
	insumo.IVAPct = req.IVAPct
	if err := s.repo.Update(ctx, insumo); err != nil {
		return nil, err
	}
	// Merma/IVA feed the landed cost, so cached roll-ups are stale now.
	if s.costeo != nil {
		s.costeo.InvalidarCache(ctx)
	}
	return insumoToResponse(insumo), nil
}

func (s *insumoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *insumoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivar(ctx, id)
}

func insumoToResponse(i *model.Insumo) *dto.InsumoResponse {
	return &dto.InsumoResponse{
		ID:           i.ID.String(),
		Nombre:       i.Nombre,
		Categoria:    i.Categoria,
		UnidadMedida: i.UnidadMedida,
		MermaPct:     i.MermaPct,
		IVAPct:       i.IVAPct,
		Activo:       i.Activo,
	}
}
