package dto

import "github.com/shopspring/decimal"

type CrearRecetaRequest struct {
	PresentacionID    string          `json:"presentacion_id"    validate:"required,uuid"`
	InsumoID          string          `json:"insumo_id"          validate:"required,uuid"`
	CantidadRequerida decimal.Decimal `json:"cantidad_requerida" validate:"required"`
}

type ActualizarRecetaRequest struct {
	CantidadRequerida decimal.Decimal `json:"cantidad_requerida" validate:"required"`
}

type RecetaResponse struct {
	ID                string          `json:"id"`
	PresentacionID    string          `json:"presentacion_id"`
	InsumoID          string          `json:"insumo_id"`
	Insumo            string          `json:"insumo,omitempty"`
	UnidadMedida      string          `json:"unidad_medida,omitempty"`
	CantidadRequerida decimal.Decimal `json:"cantidad_requerida"`
}

// CostoInsumoDetalle is one row of the production cost breakdown.
type CostoInsumoDetalle struct {
	InsumoID          string          `json:"insumo_id"`
	Insumo            string          `json:"insumo"`
	UnidadMedida      string          `json:"unidad_medida"`
	CantidadRequerida decimal.Decimal `json:"cantidad_requerida"`
	CostoUnitario     decimal.Decimal `json:"costo_unitario"`
	CostoTotal        decimal.Decimal `json:"costo_total"`
}

type CostoProduccionResponse struct {
	PresentacionID string               `json:"presentacion_id"`
	CostoTotal     decimal.Decimal      `json:"costo_total"`
	// SinReceta marca costo cero por ausencia de receta (no es un error).
	SinReceta bool                 `json:"sin_receta"`
	Detalle   []CostoInsumoDetalle `json:"detalle"`
}

type DuplicarRecetaRequest struct {
	OrigenID  string `json:"origen_id"  validate:"required,uuid"`
	DestinoID string `json:"destino_id" validate:"required,uuid"`
}

type DuplicarRecetaResponse struct {
	OrigenID  string `json:"origen_id"`
	DestinoID string `json:"destino_id"`
	Copiadas  int    `json:"copiadas"`
	Omitidas  int    `json:"omitidas"` // pares que ya existían en el destino
}
