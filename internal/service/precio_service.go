package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Fpidal/recetas-tero-sub001/internal/dto"
	"github.com/Fpidal/recetas-tero-sub001/internal/model"
	"github.com/Fpidal/recetas-tero-sub001/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PrecioService manages the per-supplier price history of ingredients.
type PrecioService interface {
	// Registrar records a new supplier price. The previous vigente row of
	// the (insumo, proveedor) pair is cleared inside the same transaction,
	// keeping the one-current-price invariant without call-site convention.
	Registrar(ctx context.Context, insumoID uuid.UUID, req dto.RegistrarPrecioRequest) (*dto.PrecioResponse, error)
	Historial(ctx context.Context, insumoID uuid.UUID, page, limit int) (*dto.PrecioListResponse, error)
}

type precioService struct {
	repo   repository.PrecioRepository
	costeo CosteoService
}

func NewPrecioService(repo repository.PrecioRepository, costeo CosteoService) PrecioService {
	return &precioService{repo: repo, costeo: costeo}
}

func (s *precioService) Registrar(ctx context.Context, insumoID uuid.UUID, req dto.RegistrarPrecioRequest) (*dto.PrecioResponse, error) {
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

	precio := &model.PrecioInsumo{
		InsumoID:    insumoID,
		ProveedorID: proveedorID,
		Precio:      req.Precio,
		Fecha:       fecha,
		Vigente:     true,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.ClearVigenteTx(tx, insumoID, proveedorID); err != nil {
			return err
		}
		return s.repo.CreateTx(tx, precio)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Any cached roll-up that ate the old price is stale now.
	if s.costeo != nil {
		s.costeo.InvalidarCache(ctx)
	}

	return precioToResponse(precio), nil
}

func (s *precioService) Historial(ctx context.Context, insumoID uuid.UUID, page, limit int) (*dto.PrecioListResponse, error) {
	precios, total, err := s.repo.ListByInsumo(ctx, insumoID, page, limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.PrecioListResponse{
		Data:  make([]dto.PrecioResponse, 0, len(precios)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for i := range precios {
		r := precioToResponse(&precios[i])
		if precios[i].Proveedor.ID != uuid.Nil {
			r.Proveedor = precios[i].Proveedor.RazonSocial
		}
		resp.Data = append(resp.Data, *r)
	}
	return resp, nil
}

func precioToResponse(p *model.PrecioInsumo) *dto.PrecioResponse {
	return &dto.PrecioResponse{
		ID:          p.ID.String(),
		InsumoID:    p.InsumoID.String(),
		ProveedorID: p.ProveedorID.String(),
		Precio:      p.Precio,
		Fecha:       p.Fecha.Format("2006-01-02"),
		Vigente:     p.Vigente,
	}
}
