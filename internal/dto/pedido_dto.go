package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type DetallePedidoRequest struct {
	ProductoID     string  `json:"producto_id"     validate:"required,uuid"`
	PresentacionID *string `json:"presentacion_id" validate:"omitempty,uuid"`
	Cantidad       int     `json:"cantidad"        validate:"required,min=1"`
	// PrecioUnitario opcional: si falta se usa el precio plano heredado del
	// producto y en última instancia 0. Queda congelado en la línea.
	PrecioUnitario *decimal.Decimal `json:"precio_unitario" validate:"omitempty"`
	Instrucciones  *string          `json:"instrucciones"`
}

type CrearPedidoRequest struct {
	ClienteID *string                `json:"cliente_id" validate:"omitempty,uuid"`
	UsuarioID *string                `json:"usuario_id" validate:"omitempty,uuid"`
	Detalles  []DetallePedidoRequest `json:"detalles"   validate:"required,min=1,dive"`
	Notas     *string                `json:"notas"`
}

type ActualizarEstadoRequest struct {
	Estado string `json:"estado" validate:"required"`
}

type PedidoFilter struct {
	Estado    string `form:"estado"`
	ClienteID string `form:"cliente_id" validate:"omitempty,uuid"`
	Fecha     string `form:"fecha"` // YYYY-MM-DD
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetallePedidoResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto,omitempty"`
	PresentacionID *string         `json:"presentacion_id,omitempty"`
	Presentacion   string          `json:"presentacion,omitempty"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Instrucciones  *string         `json:"instrucciones,omitempty"`
}

type PedidoResponse struct {
	ID          string                  `json:"id"`
	ClienteID   *string                 `json:"cliente_id,omitempty"`
	Cliente     string                  `json:"cliente,omitempty"`
	UsuarioID   *string                 `json:"usuario_id,omitempty"`
	Usuario     string                  `json:"usuario,omitempty"`
	FechaPedido string                  `json:"fecha_pedido"`
	Estado      string                  `json:"estado"`
	Total       decimal.Decimal         `json:"total"`
	Notas       *string                 `json:"notas,omitempty"`
	Detalles    []DetallePedidoResponse `json:"detalles"`
}

type PedidoListResponse struct {
	Data  []PedidoResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
