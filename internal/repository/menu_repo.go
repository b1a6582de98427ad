package repository

import (
	"context"

	"github.com/Fpidal/recetas-tero-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuRepository covers both menu flavors; they share the costing flow so a
// single repository keeps the wiring flat.
type MenuRepository interface {
	CreateEjecutivo(ctx context.Context, m *model.MenuEjecutivo) error
	FindEjecutivoByID(ctx context.Context, id uuid.UUID) (*model.MenuEjecutivo, error)
	ListEjecutivos(ctx context.Context) ([]model.MenuEjecutivo, error)
	UpdateEjecutivo(ctx context.Context, m *model.MenuEjecutivo) error
	SoftDeleteEjecutivo(ctx context.Context, id uuid.UUID) error
	ReplaceEjecutivoItemsTx(tx *gorm.DB, menuID uuid.UUID, items []model.MenuEjecutivoItem) error

	CreateEspecial(ctx context.Context, m *model.MenuEspecial) error
	FindEspecialByID(ctx context.Context, id uuid.UUID) (*model.MenuEspecial, error)
	ListEspeciales(ctx context.Context) ([]model.MenuEspecial, error)
	UpdateEspecial(ctx context.Context, m *model.MenuEspecial) error
	SoftDeleteEspecial(ctx context.Context, id uuid.UUID) error
	ReplaceEspecialOpcionesTx(tx *gorm.DB, menuID uuid.UUID, opciones []model.MenuEspecialOpcion) error

	DB() *gorm.DB
}

type menuRepo struct{ db *gorm.DB }

func NewMenuRepository(db *gorm.DB) MenuRepository { return &menuRepo{db: db} }

func (r *menuRepo) CreateEjecutivo(ctx context.Context, m *model.MenuEjecutivo) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *menuRepo) FindEjecutivoByID(ctx context.Context, id uuid.UUID) (*model.MenuEjecutivo, error) {
	var m model.MenuEjecutivo
	err := r.db.WithContext(ctx).Preload("Items").First(&m, id).Error
	return &m, err
}

func (r *menuRepo) ListEjecutivos(ctx context.Context) ([]model.MenuEjecutivo, error) {
	var menus []model.MenuEjecutivo
	err := r.db.WithContext(ctx).Where("activo = true").Order("fecha DESC").Find(&menus).Error
	return menus, err
}

func (r *menuRepo) UpdateEjecutivo(ctx context.Context, m *model.MenuEjecutivo) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *menuRepo) SoftDeleteEjecutivo(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.MenuEjecutivo{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *menuRepo) ReplaceEjecutivoItemsTx(tx *gorm.DB, menuID uuid.UUID, items []model.MenuEjecutivoItem) error {
	if err := tx.Where("menu_ejecutivo_id = ?", menuID).Delete(&model.MenuEjecutivoItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].MenuEjecutivoID = menuID
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

func (r *menuRepo) CreateEspecial(ctx context.Context, m *model.MenuEspecial) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *menuRepo) FindEspecialByID(ctx context.Context, id uuid.UUID) (*model.MenuEspecial, error) {
	var m model.MenuEspecial
	err := r.db.WithContext(ctx).Preload("Opciones").Preload("Opciones.Plato").First(&m, id).Error
	return &m, err
}

func (r *menuRepo) ListEspeciales(ctx context.Context) ([]model.MenuEspecial, error) {
	var menus []model.MenuEspecial
	err := r.db.WithContext(ctx).Where("activo = true").Order("created_at DESC").Find(&menus).Error
	return menus, err
}

func (r *menuRepo) UpdateEspecial(ctx context.Context, m *model.MenuEspecial) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *menuRepo) SoftDeleteEspecial(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.MenuEspecial{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *menuRepo) ReplaceEspecialOpcionesTx(tx *gorm.DB, menuID uuid.UUID, opciones []model.MenuEspecialOpcion) error {
	if err := tx.Where("menu_especial_id = ?", menuID).Delete(&model.MenuEspecialOpcion{}).Error; err != nil {
		return err
	}
	for i := range opciones {
		opciones[i].MenuEspecialID = menuID
	}
	if len(opciones) == 0 {
		return nil
	}
	return tx.Create(&opciones).Error
}

func (r *menuRepo) DB() *gorm.DB { return r.db }
