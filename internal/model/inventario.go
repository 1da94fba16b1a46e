package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario. entrada/ajuste suman stock,
// salida/merma restan y nunca pueden dejarlo negativo.
const (
	MovEntrada = "entrada"
	MovSalida  = "salida"
	MovAjuste  = "ajuste"
	MovMerma   = "merma"
)

// TipoMovimientoValido reporta si tipo es uno de los cuatro tipos conocidos.
func TipoMovimientoValido(tipo string) bool {
	switch tipo {
	case MovEntrada, MovSalida, MovAjuste, MovMerma:
		return true
	}
	return false
}

// MovimientoIncrementa reporta la dirección del tipo sobre el stock.
func MovimientoIncrementa(tipo string) bool {
	return tipo == MovEntrada || tipo == MovAjuste
}

// InventarioInsumo es el total materializado de stock por insumo.
// La historia de movimientos es la fuente de verdad; esta fila solo
// acumula el total corriente y se crea perezosamente en el primer movimiento.
type InventarioInsumo struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InsumoID       uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	CantidadActual decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	UpdatedAt      time.Time

	Insumo *Insumo `gorm:"foreignKey:InsumoID"`
}

func (InventarioInsumo) TableName() string { return "inventario_insumos" }

// MovimientoInventario registra cada cambio firmado de stock de un insumo.
// Es un log append-only de auditoría; borrar un movimiento aplica el delta
// inverso sobre InventarioInsumo dentro de la misma transacción.
type MovimientoInventario struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InsumoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo     string          `gorm:"type:varchar(10);not null"`
	Cantidad decimal.Decimal `gorm:"type:decimal(10,3);not null"` // siempre positiva; el tipo da el signo
	PedidoID  *uuid.UUID `gorm:"type:uuid;index"`
	UsuarioID *uuid.UUID `gorm:"type:uuid"`
	Notas     *string
	CreatedAt time.Time

	Insumo  *Insumo  `gorm:"foreignKey:InsumoID"`
	Pedido  *Pedido  `gorm:"foreignKey:PedidoID"`
	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

func (MovimientoInventario) TableName() string { return "movimientos_inventario" }
