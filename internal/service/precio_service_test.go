package service

import (
	"context"
	"testing"

	"github.com/Fpidal/recetas-tero-sub001/internal/dto"
	"github.com/Fpidal/recetas-tero-sub001/internal/model"
	"github.com/Fpidal/recetas-tero-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory PrecioRepository stub ──────────────────────────────────────────

type stubPrecioRepo struct {
	precios []*model.PrecioInsumo
}

func (r *stubPrecioRepo) FindVigenteMin(_ context.Context, insumoID uuid.UUID) (*model.PrecioInsumo, error) {
	var min *model.PrecioInsumo
	for _, p := range r.precios {
		if p.InsumoID != insumoID || !p.Vigente {
			continue
		}
		if min == nil || p.Precio.LessThan(min.Precio) {
			min = p
		}
	}
	return min, nil
}

func (r *stubPrecioRepo) ListByInsumo(_ context.Context, insumoID uuid.UUID, _, _ int) ([]model.PrecioInsumo, int64, error) {
	var result []model.PrecioInsumo
	for _, p := range r.precios {
		if p.InsumoID == insumoID {
			result = append(result, *p)
		}
	}
	return result, int64(len(result)), nil
}

func (r *stubPrecioRepo) ClearVigenteTx(_ *gorm.DB, insumoID, proveedorID uuid.UUID) error {
	for _, p := range r.precios {
		if p.InsumoID == insumoID && p.ProveedorID == proveedorID {
			p.Vigente = false
		}
	}
	return nil
}

func (r *stubPrecioRepo) CreateTx(_ *gorm.DB, p *model.PrecioInsumo) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.precios = append(r.precios, p)
	return nil
}

func (r *stubPrecioRepo) DB() *gorm.DB { return nil }

var _ repository.PrecioRepository = (*stubPrecioRepo)(nil)

// ── Tests ────────────────────────────────────────────────────────────────────

func TestRegistrarPrecio(t *testing.T) {
	repo := &stubPrecioRepo{}
	svc := NewPrecioService(repo, nil)
	insumoID := uuid.New()

	resp, err := svc.Registrar(context.Background(), insumoID, dto.RegistrarPrecioRequest{
		ProveedorID: uuid.NewString(),
		Precio:      d("1520.50"),
		Fecha:       "2026-08-30",
	})

	require.NoError(t, err)
	assert.True(t, resp.Vigente)
	assert.True(t, resp.Precio.Equal(d("1520.50")))
	assert.Equal(t, "2026-08-30", resp.Fecha)
}

func TestRegistrarPrecio_DesmarcaElAnterior(t *testing.T) {
	repo := &stubPrecioRepo{}
	svc := NewPrecioService(repo, nil)
	insumoID := uuid.New()
	proveedorID := uuid.NewString()

	_, err := svc.Registrar(context.Background(), insumoID, dto.RegistrarPrecioRequest{
		ProveedorID: proveedorID, Precio: d("100"),
	})
	require.NoError(t, err)
	_, err = svc.Registrar(context.Background(), insumoID, dto.RegistrarPrecioRequest{
		ProveedorID: proveedorID, Precio: d("110"),
	})
	require.NoError(t, err)

	// Una sola fila vigente por par (insumo, proveedor).
	vigentes := 0
	for _, p := range repo.precios {
		if p.Vigente {
			vigentes++
		}
	}
	assert.Equal(t, 1, vigentes)
	require.Len(t, repo.precios, 2)
	assert.False(t, repo.precios[0].Vigente)
	assert.True(t, repo.precios[1].Vigente)
}

func TestRegistrarPrecio_NoTocaOtrosProveedores(t *testing.T) {
	repo := &stubPrecioRepo{}
	svc := NewPrecioService(repo, nil)
	insumoID := uuid.New()

	_, err := svc.Registrar(context.Background(), insumoID, dto.RegistrarPrecioRequest{
		ProveedorID: uuid.NewString(), Precio: d("100"),
	})
	require.NoError(t, err)
	_, err = svc.Registrar(context.Background(), insumoID, dto.RegistrarPrecioRequest{
		ProveedorID: uuid.NewString(), Precio: d("90"),
	})
	require.NoError(t, err)

	// Cada proveedor conserva su propia fila vigente.
	assert.True(t, repo.precios[0].Vigente)
	assert.True(t, repo.precios[1].Vigente)

	// El costeo toma el mínimo entre proveedores.
	min, err := repo.FindVigenteMin(context.Background(), insumoID)
	require.NoError(t, err)
	assert.True(t, min.Precio.Equal(decimal.RequireFromString("90")))
}

func TestRegistrarPrecio_ProveedorInvalido(t *testing.T) {
	svc := NewPrecioService(&stubPrecioRepo{}, nil)

	_, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarPrecioRequest{
		ProveedorID: "no-es-uuid", Precio: d("100"),
	})

	assert.Error(t, err)
}
