package repository

import (
	"context"

	"github.com/Fpidal/recetas-tero-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecetaRepository manages elaborations (recetas base) and their items.
type RecetaRepository interface {
	Create(ctx context.Context, rec *model.RecetaBase) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.RecetaBase, error)
	List(ctx context.Context, incluirInactivas bool) ([]model.RecetaBase, error)
	Update(ctx context.Context, rec *model.RecetaBase) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// ReplaceItemsTx swaps the full item list in one transaction step.
	ReplaceItemsTx(tx *gorm.DB, recetaID uuid.UUID, items []model.RecetaBaseItem) error

	DB() *gorm.DB
}

type recetaRepo struct{ db *gorm.DB }

func NewRecetaRepository(db *gorm.DB) RecetaRepository { return &recetaRepo{db: db} }

func (r *recetaRepo) Create(ctx context.Context, rec *model.RecetaBase) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recetaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.RecetaBase, error) {
	var rec model.RecetaBase
	err := r.db.WithContext(ctx).Preload("Items").Preload("Items.Insumo").First(&rec, id).Error
	return &rec, err
}

func (r *recetaRepo) List(ctx context.Context, incluirInactivas bool) ([]model.RecetaBase, error) {
	var recetas []model.RecetaBase
	q := r.db.WithContext(ctx).Preload("Items")
	if !incluirInactivas {
		q = q.Where("activo = true")
	}
	err := q.Order("nombre ASC").Find(&recetas).Error
	return recetas, err
}

func (r *recetaRepo) Update(ctx context.Context, rec *model.RecetaBase) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *recetaRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.RecetaBase{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *recetaRepo) ReplaceItemsTx(tx *gorm.DB, recetaID uuid.UUID, items []model.RecetaBaseItem) error {
	if err := tx.Where("receta_base_id = ?", recetaID).Delete(&model.RecetaBaseItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].RecetaBaseID = recetaID
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

func (r *recetaRepo) DB() *gorm.DB { return r.db }
