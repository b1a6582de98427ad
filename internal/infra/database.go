package infra

import (
	"fmt"

	"github.com/Fpidal/recetas-tero-sub001/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate to create / update all tables.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}
	return db, nil
}

// RunMigrations applies the schema. gen_random_uuid() needs pgcrypto on
// PostgreSQL < 13, so the extension is ensured first.
func RunMigrations(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&model.Proveedor{},
		&model.Insumo{},
		&model.PrecioInsumo{},
		&model.RecetaBase{},
		&model.RecetaBaseItem{},
		&model.Plato{},
		&model.PlatoItem{},
		&model.MenuEjecutivo{},
		&model.MenuEjecutivoItem{},
		&model.MenuEspecial{},
		&model.MenuEspecialOpcion{},
		&model.OrdenCompra{},
		&model.OrdenCompraItem{},
		&model.FacturaProveedor{},
		&model.FacturaItem{},
		&model.FacturaPercepcion{},
	)
}
