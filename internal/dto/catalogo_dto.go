package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Categoría ───────────────────────────────────────────────────────────────

type CrearCategoriaRequest struct {
	Nombre      string  `json:"nombre"      validate:"required,min=2,max=100"`
	Descripcion *string `json:"descripcion"`
}

type ActualizarCategoriaRequest struct {
	Nombre      *string `json:"nombre"      validate:"omitempty,min=2,max=100"`
	Descripcion *string `json:"descripcion"`
}

type CategoriaResponse struct {
	ID          uuid.UUID `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion *string   `json:"descripcion,omitempty"`
	Activo      bool      `json:"activo"`
}

// DesactivarCategoriaResponse reporta cuántos productos quedan apuntando a la
// categoría. Informativo: la desactivación nunca cascada a los hijos.
type DesactivarCategoriaResponse struct {
	ID                 string `json:"id"`
	Activo             bool   `json:"activo"`
	ProductosAfectados int64  `json:"productos_afectados"`
}

// ─── Producto ────────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre      string  `json:"nombre"       validate:"required,min=2,max=120"`
	Descripcion *string `json:"descripcion"`
	CategoriaID string  `json:"categoria_id" validate:"required,uuid"`
	ImagenURL   *string `json:"imagen_url"   validate:"omitempty,url"`
	// Precio plano heredado: se acepta en el payload por compatibilidad con
	// clientes viejos pero se descarta — el precio vive en las presentaciones.
	Precio *decimal.Decimal `json:"precio"`
}

type ActualizarProductoRequest struct {
	Nombre                *string `json:"nombre"       validate:"omitempty,min=2,max=120"`
	Descripcion           *string `json:"descripcion"`
	CategoriaID           *string `json:"categoria_id" validate:"omitempty,uuid"`
	ImagenURL             *string `json:"imagen_url"   validate:"omitempty,url"`
	PresentacionDefaultID *string `json:"presentacion_default_id" validate:"omitempty,uuid"`
}

type ProductoFilter struct {
	Nombre      string `form:"nombre"`
	CategoriaID string `form:"categoria_id"`
	Activo      string `form:"activo"` // "false" = inactivos, "all" = todos, default = activos
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type ProductoResponse struct {
	ID                    string                 `json:"id"`
	Nombre                string                 `json:"nombre"`
	Descripcion           *string                `json:"descripcion"`
	CategoriaID           string                 `json:"categoria_id"`
	Categoria             string                 `json:"categoria,omitempty"`
	ImagenURL             *string                `json:"imagen_url"`
	Precio                *decimal.Decimal       `json:"precio,omitempty"` // deprecated
	PresentacionDefaultID *string                `json:"presentacion_default_id"`
	Activo                bool                   `json:"activo"`
	Presentaciones        []PresentacionResponse `json:"presentaciones,omitempty"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type DesactivarProductoResponse struct {
	ID                      string `json:"id"`
	Activo                  bool   `json:"activo"`
	PresentacionesAfectadas int64  `json:"presentaciones_afectadas"`
}

// ─── Presentación ────────────────────────────────────────────────────────────

type CrearPresentacionRequest struct {
	ProductoID  string          `json:"producto_id" validate:"required,uuid"`
	Nombre      string          `json:"nombre"      validate:"required,min=1,max=100"`
	Descripcion *string         `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"      validate:"min=0"`
	EsDefault   bool            `json:"es_default"`
}

type ActualizarPresentacionRequest struct {
	Nombre      *string          `json:"nombre" validate:"omitempty,min=1,max=100"`
	Descripcion *string          `json:"descripcion"`
	Precio      *decimal.Decimal `json:"precio" validate:"omitempty,min=0"`
	EsDefault   *bool            `json:"es_default"`
}

type PresentacionResponse struct {
	ID          string          `json:"id"`
	ProductoID  string          `json:"producto_id"`
	Nombre      string          `json:"nombre"`
	Descripcion *string         `json:"descripcion,omitempty"`
	Precio      decimal.Decimal `json:"precio"`
	EsDefault   bool            `json:"es_default"`
	Activo      bool            `json:"activo"`
}

// ConsultaPrecioResponse is returned by the cached price lookup endpoint.
type ConsultaPrecioResponse struct {
	PresentacionID string          `json:"presentacion_id"`
	Producto       string          `json:"producto"`
	Presentacion   string          `json:"presentacion"`
	Precio         decimal.Decimal `json:"precio"`
}
