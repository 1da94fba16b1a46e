package handler

import (
	"net/http"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/dto"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type RecetasHandler struct{ svc service.RecetaService }

func NewRecetasHandler(svc service.RecetaService) *RecetasHandler {
	return &RecetasHandler{svc: svc}
}

// CrearVinculo godoc
// @Summary      Vincular un insumo a la receta de una presentación
// @Description  El par (presentación, insumo) es único: repetirlo devuelve 409, actualice la cantidad en su lugar.
// @Tags         recetas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearRecetaRequest true "Vínculo de receta"
// @Success      201  {object} dto.RecetaResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/recetas [post]
func (h *RecetasHandler) CrearVinculo(c *gin.Context) {
	var req dto.CrearRecetaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearVinculo(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarPorPresentacion lista la receta completa de una presentación.
func (h *RecetasHandler) ListarPorPresentacion(c *gin.Context) {
	presID, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarPorPresentacion(c.Request.Context(), presID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecetasHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarRecetaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecetasHandler) Eliminar(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CostoProduccion godoc
// @Summary      Costo de producción de una presentación
// @Description  Σ cantidad_requerida × costo_compra por insumo. Sin receta: costo cero con sin_receta=true.
// @Tags         recetas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la presentación"
// @Success      200 {object} dto.CostoProduccionResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/presentaciones/{id}/costo [get]
func (h *RecetasHandler) CostoProduccion(c *gin.Context) {
	presID, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.CalcularCostoProduccion(c.Request.Context(), presID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Duplicar godoc
// @Summary      Duplicar receta entre presentaciones
// @Description  Copia los vínculos de la presentación origen a la destino; los pares existentes se omiten.
// @Tags         recetas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.DuplicarRecetaRequest true "Origen y destino"
// @Success      200  {object} dto.DuplicarRecetaResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/recetas/duplicar [post]
func (h *RecetasHandler) Duplicar(c *gin.Context) {
	var req dto.DuplicarRecetaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.DuplicarReceta(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
