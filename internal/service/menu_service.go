package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Fpidal/recetas-tero-sub001/internal/dto"
	"github.com/Fpidal/recetas-tero-sub001/internal/model"
	"github.com/Fpidal/recetas-tero-sub001/internal/repository"

	"github.com/google/uuid"
)

// MenuService covers both menu flavors: ejecutivos (fixed line list) and
// especiales (selectable dish options per course).
type MenuService interface {
	CrearEjecutivo(ctx context.Context, req dto.CrearMenuEjecutivoRequest) (*dto.MenuEjecutivoResponse, error)
	ObtenerEjecutivo(ctx context.Context, id uuid.UUID) (*dto.MenuEjecutivoResponse, error)
	ListarEjecutivos(ctx context.Context) ([]dto.MenuEjecutivoResponse, error)
	EliminarEjecutivo(ctx context.Context, id uuid.UUID) error

	CrearEspecial(ctx context.Context, req dto.CrearMenuEspecialRequest) (*dto.MenuEspecialResponse, error)
	ObtenerEspecial(ctx context.Context, id uuid.UUID) (*dto.MenuEspecialResponse, error)
	ListarEspeciales(ctx context.Context) ([]dto.MenuEspecialResponse, error)
	EliminarEspecial(ctx context.Context, id uuid.UUID) error
}

type menuService struct {
	repo repository.MenuRepository
}

func NewMenuService(repo repository.MenuRepository) MenuService {
	return &menuService{repo: repo}
}

// ── Menú ejecutivo ───────────────────────────────────────────────────────────

func (s *menuService) CrearEjecutivo(ctx context.Context, req dto.CrearMenuEjecutivoRequest) (*dto.MenuEjecutivoResponse, error) {
	fecha := time.Now()
	if req.Fecha != "" {
		var err error
		fecha, err = time.Parse("2006-01-02", req.Fecha)
		if err != nil {
			return nil, fmt.Errorf("fecha inválida: %w", err)
		}
	}

	items := make([]model.MenuEjecutivoItem, 0, len(req.Items))
	for _, item := range req.Items {
		componenteID, err := uuid.Parse(item.ComponenteID)
		if err != nil {
			return nil, fmt.Errorf("componente_id inválido: %w", err)
		}
		items = append(items, model.MenuEjecutivoItem{
			ComponenteTipo: item.Tipo,
			ComponenteID:   componenteID,
			Cantidad:       item.Cantidad,
			EsBebida:       item.EsBebida,
		})
	}

	menu := &model.MenuEjecutivo{
		Nombre:           req.Nombre,
		Fecha:            fecha,
		PrecioVenta:      req.PrecioVenta,
		FoodCostObjetivo: req.FoodCostObjetivo,
		Activo:           true,
		Items:            items,
	}
	if err := s.repo.CreateEjecutivo(ctx, menu); err != nil {
		return nil, err
	}
	return ejecutivoToResponse(menu), nil
}

func (s *menuService) ObtenerEjecutivo(ctx context.Context, id uuid.UUID) (*dto.MenuEjecutivoResponse, error) {
	menu, err := s.repo.FindEjecutivoByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ejecutivoToResponse(menu), nil
}

func (s *menuService) ListarEjecutivos(ctx context.Context) ([]dto.MenuEjecutivoResponse, error) {
	menus, err := s.repo.ListEjecutivos(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MenuEjecutivoResponse, 0, len(menus))
	for i := range menus {
		resp = append(resp, *ejecutivoToResponse(&menus[i]))
	}
	return resp, nil
}

func (s *menuService) EliminarEjecutivo(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDeleteEjecutivo(ctx, id)
}

// ── Menú especial ────────────────────────────────────────────────────────────

func (s *menuService) CrearEspecial(ctx context.Context, req dto.CrearMenuEspecialRequest) (*dto.MenuEspecialResponse, error) {
	opciones := make([]model.MenuEspecialOpcion, 0, len(req.Opciones))
	for _, op := range req.Opciones {
		platoID, err := uuid.Parse(op.PlatoID)
		if err != nil {
			return nil, fmt.Errorf("plato_id inválido: %w", err)
		}
		opciones = append(opciones, model.MenuEspecialOpcion{TipoCurso: op.TipoCurso, PlatoID: platoID})
	}

	menu := &model.MenuEspecial{
		Nombre:           req.Nombre,
		Comensales:       req.Comensales,
		CostoPorPersona:  req.CostoPorPersona,
		FoodCostObjetivo: req.FoodCostObjetivo,
		PrecioVenta:      req.PrecioVenta,
		Activo:           true,
		Opciones:         opciones,
	}
	if err := s.repo.CreateEspecial(ctx, menu); err != nil {
		return nil, err
	}
	return especialToResponse(menu), nil
}

func (s *menuService) ObtenerEspecial(ctx context.Context, id uuid.UUID) (*dto.MenuEspecialResponse, error) {
	menu, err := s.repo.FindEspecialByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return especialToResponse(menu), nil
}

func (s *menuService) ListarEspeciales(ctx context.Context) ([]dto.MenuEspecialResponse, error) {
	menus, err := s.repo.ListEspeciales(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MenuEspecialResponse, 0, len(menus))
	for i := range menus {
		resp = append(resp, *especialToResponse(&menus[i]))
	}
	return resp, nil
}

func (s *menuService) EliminarEspecial(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDeleteEspecial(ctx, id)
}

func ejecutivoToResponse(m *model.MenuEjecutivo) *dto.MenuEjecutivoResponse {
	resp := &dto.MenuEjecutivoResponse{
		ID:               m.ID.String(),
		Nombre:           m.Nombre,
		Fecha:            m.Fecha.Format("2006-01-02"),
		PrecioVenta:      m.PrecioVenta,
		FoodCostObjetivo: m.FoodCostObjetivo,
	}
	for _, item := range m.Items {
		resp.Items = append(resp.Items, dto.ItemComponenteResponse{
			Tipo:         item.ComponenteTipo,
			ComponenteID: item.ComponenteID.String(),
			Cantidad:     item.Cantidad,
			EsBebida:     item.EsBebida,
		})
	}
	return resp
}

func especialToResponse(m *model.MenuEspecial) *dto.MenuEspecialResponse {
	resp := &dto.MenuEspecialResponse{
		ID:               m.ID.String(),
		Nombre:           m.Nombre,
		Comensales:       m.Comensales,
		CostoPorPersona:  m.CostoPorPersona,
		FoodCostObjetivo: m.FoodCostObjetivo,
		PrecioVenta:      m.PrecioVenta,
	}
	for _, op := range m.Opciones {
		opResp := dto.OpcionMenuEspecialResponse{TipoCurso: op.TipoCurso, PlatoID: op.PlatoID.String()}
		if op.Plato.ID != uuid.Nil {
			opResp.Plato = op.Plato.Nombre
		}
		resp.Opciones = append(resp.Opciones, opResp)
	}
	return resp
}
