package repository

import (
	"context"

	"github.com/Fpidal/recetas-tero-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlatoRepository interface {
	Create(ctx context.Context, p *model.Plato) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Plato, error)
	List(ctx context.Context, seccion string, incluirInactivos bool) ([]model.Plato, error)
	Update(ctx context.Context, p *model.Plato) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	ReplaceItemsTx(tx *gorm.DB, platoID uuid.UUID, items []model.PlatoItem) error

	DB() *gorm.DB
}

type platoRepo struct{ db *gorm.DB }

func NewPlatoRepository(db *gorm.DB) PlatoRepository { return &platoRepo{db: db} }

func (r *platoRepo) Create(ctx context.Context, p *model.Plato) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *platoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Plato, error) {
	var p model.Plato
	err := r.db.WithContext(ctx).Preload("Items").First(&p, id).Error
	return &p, err
}

func (r *platoRepo) List(ctx context.Context, seccion string, incluirInactivos bool) ([]model.Plato, error) {
	var platos []model.Plato
	q := r.db.WithContext(ctx).Preload("Items")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	if seccion != "" {
		q = q.Where("seccion = ?", seccion)
	}
	err := q.Order("seccion ASC, nombre ASC").Find(&platos).Error
	return platos, err
}

func (r *platoRepo) Update(ctx context.Context, p *model.Plato) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *platoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Plato{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *platoRepo) ReplaceItemsTx(tx *gorm.DB, platoID uuid.UUID, items []model.PlatoItem) error {
	if err := tx.Where("plato_id = ?", platoID).Delete(&model.PlatoItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].PlatoID = platoID
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

func (r *platoRepo) DB() *gorm.DB { return r.db }
