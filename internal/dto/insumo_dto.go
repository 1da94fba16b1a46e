package dto

import "github.com/shopspring/decimal"

type CrearInsumoRequest struct {
	Nombre       string          `json:"nombre"        validate:"required,min=2,max=100"`
	UnidadMedida string          `json:"unidad_medida" validate:"required,oneof=litro pieza libra unidad onza ml gramo taza"`
	CostoCompra  decimal.Decimal `json:"costo_compra"  validate:"min=0"`
	StockMinimo  decimal.Decimal `json:"stock_minimo"  validate:"min=0"`
}

type ActualizarInsumoRequest struct {
	Nombre       *string          `json:"nombre"        validate:"omitempty,min=2,max=100"`
	UnidadMedida *string          `json:"unidad_medida" validate:"omitempty,oneof=litro pieza libra unidad onza ml gramo taza"`
	CostoCompra  *decimal.Decimal `json:"costo_compra"  validate:"omitempty,min=0"`
	StockMinimo  *decimal.Decimal `json:"stock_minimo"  validate:"omitempty,min=0"`
}

type InsumoResponse struct {
	ID           string          `json:"id"`
	Nombre       string          `json:"nombre"`
	UnidadMedida string          `json:"unidad_medida"`
	CostoCompra  decimal.Decimal `json:"costo_compra"`
	StockMinimo  decimal.Decimal `json:"stock_minimo"`
	Activo       bool            `json:"activo"`
}
