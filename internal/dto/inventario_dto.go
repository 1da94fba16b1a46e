package dto

import "github.com/shopspring/decimal"

type RegistrarMovimientoRequest struct {
	InsumoID  string          `json:"insumo_id"  validate:"required,uuid"`
	Tipo      string          `json:"tipo"       validate:"required,oneof=entrada salida ajuste merma"`
	Cantidad  decimal.Decimal `json:"cantidad"   validate:"required"`
	PedidoID  *string         `json:"pedido_id"  validate:"omitempty,uuid"`
	UsuarioID *string         `json:"usuario_id" validate:"omitempty,uuid"`
	Notas     *string         `json:"notas"`
}

type MovimientoResponse struct {
	ID             string          `json:"id"`
	InsumoID       string          `json:"insumo_id"`
	Insumo         string          `json:"insumo,omitempty"`
	UnidadMedida   string          `json:"unidad_medida,omitempty"`
	Tipo           string          `json:"tipo"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	StockResultado decimal.Decimal `json:"stock_resultado"`
	PedidoID       *string         `json:"pedido_id,omitempty"`
	UsuarioID      *string         `json:"usuario_id,omitempty"`
	Usuario        string          `json:"usuario,omitempty"`
	Notas          *string         `json:"notas,omitempty"`
	CreatedAt      string          `json:"created_at"`
}

type MovimientoFilter struct {
	InsumoID string `form:"insumo_id" validate:"omitempty,uuid"`
	Tipo     string `form:"tipo"      validate:"omitempty,oneof=entrada salida ajuste merma"`
	PedidoID string `form:"pedido_id" validate:"omitempty,uuid"`
	Page     int    `form:"page,default=1"    validate:"min=1"`
	Limit    int    `form:"limit,default=50"  validate:"min=1,max=200"`
}

type MovimientoListResponse struct {
	Data  []MovimientoResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// RegistrarConsumoRequest descuenta inventario según las recetas de un pedido.
type RegistrarConsumoRequest struct {
	PedidoID  string  `json:"pedido_id"  validate:"required,uuid"`
	UsuarioID *string `json:"usuario_id" validate:"omitempty,uuid"`
}

type RegistrarConsumoResponse struct {
	PedidoID    string               `json:"pedido_id"`
	Movimientos []MovimientoResponse `json:"movimientos"`
	Total       int                  `json:"total"`
}

// AlertaStockResponse: un insumo activo con cantidad_actual < stock_minimo.
type AlertaStockResponse struct {
	InsumoID       string          `json:"insumo_id"`
	Insumo         string          `json:"insumo"`
	UnidadMedida   string          `json:"unidad_medida"`
	CantidadActual decimal.Decimal `json:"cantidad_actual"`
	StockMinimo    decimal.Decimal `json:"stock_minimo"`
	Deficit        decimal.Decimal `json:"deficit"`
	// Porcentaje de stock respecto al mínimo (0-100); 0 cuando el mínimo es 0.
	Porcentaje decimal.Decimal `json:"porcentaje"`
}

type StockInsumoResponse struct {
	InsumoID       string          `json:"insumo_id"`
	Insumo         string          `json:"insumo"`
	UnidadMedida   string          `json:"unidad_medida"`
	CantidadActual decimal.Decimal `json:"cantidad_actual"`
	StockMinimo    decimal.Decimal `json:"stock_minimo"`
	StockBajo      bool            `json:"stock_bajo"`
	UpdatedAt      string          `json:"updated_at"`
}
