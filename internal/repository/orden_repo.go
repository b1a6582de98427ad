package repository

import (
	"context"
	"errors"

	"github.com/Fpidal/recetas-tero-sub001/internal/dto"
	"github.com/Fpidal/recetas-tero-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrdenCompraRepository is the data access contract for purchase orders.
type OrdenCompraRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenCompra, error)
	List(ctx context.Context, filter dto.OrdenFilter) ([]model.OrdenCompra, int64, error)
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error
	SetPDFPath(ctx context.Context, id uuid.UUID, path string) error

	// FindByOrigen returns the shortfall order spawned by an origin order,
	// or (nil, nil) when none exists.
	FindByOrigen(ctx context.Context, origenID uuid.UUID) (*model.OrdenCompra, error)

	// ListEnviadasSinPDF returns sent orders whose document was never
	// generated, oldest first. Feeds the retry cron.
	ListEnviadasSinPDF(ctx context.Context, limit int) ([]model.OrdenCompra, error)

	// MaxNumeroTx returns the highest order number matching the A01-0001
	// pattern, or "" on an empty table. Called inside the creation tx; two
	// writers can read the same max, in which case the unique index on
	// numero fails the loser's insert.
	MaxNumeroTx(tx *gorm.DB) (string, error)

	CreateTx(tx *gorm.DB, o *model.OrdenCompra) error
	ReplaceItemsTx(tx *gorm.DB, ordenID uuid.UUID, items []model.OrdenCompraItem) error
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error
	UpdateTotalTx(tx *gorm.DB, id uuid.UUID, total interface{}) error

	DB() *gorm.DB
}

type ordenRepo struct{ db *gorm.DB }

func NewOrdenCompraRepository(db *gorm.DB) OrdenCompraRepository { return &ordenRepo{db: db} }

func (r *ordenRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenCompra, error) {
	var o model.OrdenCompra
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Insumo").
		Preload("Proveedor").
		First(&o, id).Error
	return &o, err
}

func (r *ordenRepo) List(ctx context.Context, filter dto.OrdenFilter) ([]model.OrdenCompra, int64, error) {
	var ordenes []model.OrdenCompra
	var total int64

	q := r.db.WithContext(ctx).Model(&model.OrdenCompra{})
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ProveedorID != "" {
		q = q.Where("proveedor_id = ?", filter.ProveedorID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("numero DESC").Limit(filter.Limit).Offset(offset).
		Preload("Proveedor").
		Find(&ordenes).Error
	return ordenes, total, err
}

func (r *ordenRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.OrdenCompra{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *ordenRepo) SetPDFPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.db.WithContext(ctx).Model(&model.OrdenCompra{}).Where("id = ?", id).Update("pdf_path", path).Error
}

func (r *ordenRepo) FindByOrigen(ctx context.Context, origenID uuid.UUID) (*model.OrdenCompra, error) {
	var o model.OrdenCompra
	err := r.db.WithContext(ctx).
		Where("orden_origen_id = ? AND estado <> ?", origenID, model.OrdenAnulada).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ordenRepo) ListEnviadasSinPDF(ctx context.Context, limit int) ([]model.OrdenCompra, error) {
	var ordenes []model.OrdenCompra
	err := r.db.WithContext(ctx).
		Where("estado = ? AND pdf_path IS NULL", model.OrdenEnviada).
		Order("updated_at ASC").
		Limit(limit).
		Find(&ordenes).Error
	return ordenes, err
}

func (r *ordenRepo) MaxNumeroTx(tx *gorm.DB) (string, error) {
	var numero string
	err := tx.Model(&model.OrdenCompra{}).
		Where(`numero ~ '^[A-Z][0-9]{2}-[0-9]{4}$'`).
		Order("numero DESC").
		Limit(1).
		Pluck("numero", &numero).Error
	if err != nil {
		return "", err
	}
	return numero, nil
}

func (r *ordenRepo) CreateTx(tx *gorm.DB, o *model.OrdenCompra) error {
	return tx.Create(o).Error
}

func (r *ordenRepo) ReplaceItemsTx(tx *gorm.DB, ordenID uuid.UUID, items []model.OrdenCompraItem) error {
	if err := tx.Where("orden_compra_id = ?", ordenID).Delete(&model.OrdenCompraItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrdenCompraID = ordenID
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

func (r *ordenRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.OrdenCompra{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *ordenRepo) UpdateTotalTx(tx *gorm.DB, id uuid.UUID, total interface{}) error {
	return tx.Model(&model.OrdenCompra{}).Where("id = ?", id).Update("total", total).Error
}

func (r *ordenRepo) DB() *gorm.DB { return r.db }
