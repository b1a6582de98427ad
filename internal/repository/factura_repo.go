package repository

import (
	"context"
	"errors"

	"github.com/Fpidal/recetas-tero-sub001/internal/dto"
	"github.com/Fpidal/recetas-tero-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FacturaRepository is the data access contract for supplier invoices.
type FacturaRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.FacturaProveedor, error)
	List(ctx context.Context, filter dto.FacturaFilter) ([]model.FacturaProveedor, int64, error)

	// FindByOrden returns the non-reversed invoice settling an order, or
	// (nil, nil) when the order has no invoice yet.
	FindByOrden(ctx context.Context, ordenID uuid.UUID) (*model.FacturaProveedor, error)

	CreateTx(tx *gorm.DB, f *model.FacturaProveedor) error
	MarkAnuladaTx(tx *gorm.DB, id uuid.UUID) error

	DB() *gorm.DB
}

type facturaRepo struct{ db *gorm.DB }

func NewFacturaRepository(db *gorm.DB) FacturaRepository { return &facturaRepo{db: db} }

func (r *facturaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.FacturaProveedor, error) {
	var f model.FacturaProveedor
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Insumo").
		Preload("Percepciones").
		Preload("Proveedor").
		First(&f, id).Error
	return &f, err
}

func (r *facturaRepo) List(ctx context.Context, filter dto.FacturaFilter) ([]model.FacturaProveedor, int64, error) {
	var facturas []model.FacturaProveedor
	var total int64

	q := r.db.WithContext(ctx).Model(&model.FacturaProveedor{})
	switch filter.Anuladas {
	case "true":
		q = q.Where("anulada = true")
	case "all":
		// no filter
	default:
		q = q.Where("anulada = false")
	}
	if filter.ProveedorID != "" {
		q = q.Where("proveedor_id = ?", filter.ProveedorID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("fecha DESC").Limit(filter.Limit).Offset(offset).
		Preload("Proveedor").
		Find(&facturas).Error
	return facturas, total, err
}

func (r *facturaRepo) FindByOrden(ctx context.Context, ordenID uuid.UUID) (*model.FacturaProveedor, error) {
	var f model.FacturaProveedor
	err := r.db.WithContext(ctx).
		Where("orden_compra_id = ? AND anulada = false", ordenID).
		Preload("Items").
		Preload("Items.Insumo").
		First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *facturaRepo) CreateTx(tx *gorm.DB, f *model.FacturaProveedor) error {
	return tx.Create(f).Error
}

func (r *facturaRepo) MarkAnuladaTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&model.FacturaProveedor{}).Where("id = ?", id).Update("anulada", true).Error
}

func (r *facturaRepo) DB() *gorm.DB { return r.db }
