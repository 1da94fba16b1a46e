package handler

import (
	"net/http"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/dto"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type PresentacionesHandler struct{ svc service.PresentacionService }

func NewPresentacionesHandler(svc service.PresentacionService) *PresentacionesHandler {
	return &PresentacionesHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear presentación de un producto
// @Description  Crea una variante con precio propio. es_default=true desplaza el default anterior en la misma transacción.
// @Tags         presentaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearPresentacionRequest true "Presentación"
// @Success      201  {object} dto.PresentacionResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/presentaciones [post]
func (h *PresentacionesHandler) Crear(c *gin.Context) {
	var req dto.CrearPresentacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PresentacionesHandler) Obtener(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarPorProducto lista las presentaciones de un producto.
func (h *PresentacionesHandler) ListarPorProducto(c *gin.Context) {
	productoID, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	incluirInactivas := c.Query("incluir_inactivas") == "true"
	resp, err := h.svc.ListarPorProducto(c.Request.Context(), productoID, incluirInactivas)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PresentacionesHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarPresentacionRequest
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

func (h *PresentacionesHandler) Desactivar(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PresentacionesHandler) Reactivar(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Reactivar(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PresentacionesHandler) EliminarPermanente(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.EliminarPermanente(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
