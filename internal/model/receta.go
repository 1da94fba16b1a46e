package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receta es una arista Presentacion×Insumo: cuánto insumo consume producir
// una unidad de esa presentación. El par (presentación, insumo) es único.
type Receta struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PresentacionID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_presentacion_insumo;not null"`
	InsumoID       uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_presentacion_insumo;not null"`
	// CantidadRequerida por unidad producida, en la unidad de medida del insumo.
	CantidadRequerida decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Presentacion *Presentacion `gorm:"foreignKey:PresentacionID"`
	Insumo       *Insumo       `gorm:"foreignKey:InsumoID"`
}

func (Receta) TableName() string { return "recetas" }
