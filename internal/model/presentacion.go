package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Presentacion es una variante con precio propio de un producto
// (ej: "3 Piezas", "6 Piezas", "Familiar"). Un producto tiene 1..N.
// A lo sumo una presentación activa por producto lleva EsDefault=true;
// el servicio limpia la bandera de las hermanas dentro de la misma tx.
type Presentacion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre      string    `gorm:"not null"`
	Descripcion *string
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	EsDefault   bool            `gorm:"not null;default:false"`
	Activo      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (Presentacion) TableName() string { return "presentaciones" }
