package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados del pedido: pendiente → en_preparacion → listo → entregado,
// con cancelado alcanzable desde cualquier estado no terminal salvo entregado.
const (
	EstadoPendiente     = "pendiente"
	EstadoEnPreparacion = "en_preparacion"
	EstadoListo         = "listo"
	EstadoEntregado     = "entregado"
	EstadoCancelado     = "cancelado"
)

// EstadoPedidoValido reporta si estado es uno de los cinco valores del enum.
func EstadoPedidoValido(estado string) bool {
	switch estado {
	case EstadoPendiente, EstadoEnPreparacion, EstadoListo, EstadoEntregado, EstadoCancelado:
		return true
	}
	return false
}

// Pedido es una orden de cliente. Total es derivado: siempre igual a la suma
// de los subtotales de sus detalles al momento de creación.
type Pedido struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID   *uuid.UUID `gorm:"type:uuid;index"`
	UsuarioID   *uuid.UUID `gorm:"type:uuid;index"`
	FechaPedido time.Time  `gorm:"not null"`
	Estado      string     `gorm:"type:varchar(20);not null;default:'pendiente'"`
	Total       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Notas       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Cliente  *Cliente        `gorm:"foreignKey:ClienteID"`
	Usuario  *Usuario        `gorm:"foreignKey:UsuarioID"`
	Detalles []DetallePedido `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE"`
}

func (Pedido) TableName() string { return "pedidos" }

// DetallePedido es una línea del pedido. PrecioUnitario es un snapshot al
// momento del pedido — nunca se recalcula desde el catálogo.
type DetallePedido struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID  `gorm:"type:uuid;not null"`
	PresentacionID *uuid.UUID `gorm:"type:uuid"`
	Cantidad       int        `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Instrucciones  *string
	CreatedAt      time.Time

	Producto     *Producto     `gorm:"foreignKey:ProductoID"`
	Presentacion *Presentacion `gorm:"foreignKey:PresentacionID"`
}

func (DetallePedido) TableName() string { return "detalle_pedidos" }
