package repository

import (
	"context"
	"errors"

	"github.com/Fpidal/recetas-tero-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PrecioRepository manages the per-supplier price history of ingredients.
type PrecioRepository interface {
	// FindVigenteMin returns the representative current price of the insumo:
	// minimum price among vigente rows across suppliers, ties broken by most
	// recent fecha. (nil, nil) when no current price exists.
	FindVigenteMin(ctx context.Context, insumoID uuid.UUID) (*model.PrecioInsumo, error)
	ListByInsumo(ctx context.Context, insumoID uuid.UUID, page, limit int) ([]model.PrecioInsumo, int64, error)

	// Used inside the price-registration transaction: exactly one vigente row
	// per (insumo, proveedor) — the previous one is cleared in the same tx.
	ClearVigenteTx(tx *gorm.DB, insumoID, proveedorID uuid.UUID) error
	CreateTx(tx *gorm.DB, p *model.PrecioInsumo) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type precioRepo struct{ db *gorm.DB }

func NewPrecioRepository(db *gorm.DB) PrecioRepository { return &precioRepo{db: db} }

func (r *precioRepo) FindVigenteMin(ctx context.Context, insumoID uuid.UUID) (*model.PrecioInsumo, error) {
	var p model.PrecioInsumo
	err := r.db.WithContext(ctx).
		Where("insumo_id = ? AND vigente = true", insumoID).
		Order("precio ASC, fecha DESC").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByInsumo returns paginated price records for one ingredient,
// newest-first, with the supplier preloaded for display.
func (r *precioRepo) ListByInsumo(ctx context.Context, insumoID uuid.UUID, page, limit int) ([]model.PrecioInsumo, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.PrecioInsumo{}).
		Where("insumo_id = ?", insumoID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.PrecioInsumo
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("insumo_id = ?", insumoID).
		Order("fecha DESC").
		Limit(limit).
		Offset(offset).
		Preload("Proveedor").
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *precioRepo) ClearVigenteTx(tx *gorm.DB, insumoID, proveedorID uuid.UUID) error {
	return tx.Model(&model.PrecioInsumo{}).
		Where("insumo_id = ? AND proveedor_id = ? AND vigente = true", insumoID, proveedorID).
		Update("vigente", false).Error
}

func (r *precioRepo) CreateTx(tx *gorm.DB, p *model.PrecioInsumo) error {
	return tx.Create(p).Error
}

func (r *precioRepo) DB() *gorm.DB { return r.db }
