package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Unidades de medida válidas para un insumo.
const (
	UnidadLitro  = "litro"
	UnidadPieza  = "pieza"
	UnidadLibra  = "libra"
	UnidadUnidad = "unidad"
	UnidadOnza   = "onza"
	UnidadMl     = "ml"
	UnidadGramo  = "gramo"
	UnidadTaza   = "taza"
)

// Insumo es una materia prima consumida por las recetas y controlada
// por el inventario (una fila de InventarioInsumo por insumo).
type Insumo struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string    `gorm:"uniqueIndex;not null"`
	UnidadMedida string    `gorm:"type:varchar(10);not null"`
	CostoCompra  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	StockMinimo  decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	Activo       bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Insumo) TableName() string { return "insumos" }
