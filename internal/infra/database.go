package infra

import (
	"fmt"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// to create / update all tables.
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

	if err := db.AutoMigrate(
		&model.Categoria{},
		&model.Producto{},
		&model.Presentacion{},
		&model.Insumo{},
		&model.Receta{},
		&model.InventarioInsumo{},
		&model.MovimientoInventario{},
		&model.Cliente{},
		&model.Usuario{},
		&model.Pedido{},
		&model.DetallePedido{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}
