package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto es un ítem vendible del menú. El precio real vive en sus
// Presentaciones; Precio es el campo plano heredado que solo se usa como
// fallback al valorar líneas de pedido sin precio explícito.
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion *string
	CategoriaID uuid.UUID `gorm:"type:uuid;not null;index"`
	ImagenURL   *string
	// Precio: deprecated — fallback only, never written by Crear.
	Precio                 *decimal.Decimal `gorm:"type:decimal(10,2)"`
	PresentacionDefaultID  *uuid.UUID       `gorm:"type:uuid"`
	Activo                 bool             `gorm:"not null;default:true"`
	CreatedAt              time.Time
	UpdatedAt              time.Time

	Categoria      *Categoria     `gorm:"foreignKey:CategoriaID"`
	Presentaciones []Presentacion `gorm:"foreignKey:ProductoID"`
}

func (Producto) TableName() string { return "productos" }
