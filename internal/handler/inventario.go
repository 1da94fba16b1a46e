package handler

import (
	"net/http"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/apierror"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/dto"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// RegistrarMovimiento godoc
// @Summary      Registrar movimiento de inventario
// @Description  entrada/ajuste suman, salida/merma restan. Salidas que dejarían stock negativo devuelven 409 sin efecto alguno.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarMovimientoRequest true "Movimiento"
// @Success      201  {object} dto.MovimientoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/inventario/movimientos [post]
func (h *InventarioHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.RegistrarMovimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarMovimiento(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// EliminarMovimiento godoc
// @Summary      Eliminar movimiento del historial
// @Description  Aplica el delta inverso sobre el stock en la misma transacción. 409 si revertir dejaría stock negativo.
// @Tags         inventario
// @Security     BearerAuth
// @Param        id path string true "UUID del movimiento"
// @Success      204
// @Failure      409 {object} apierror.APIError
// @Router       /v1/inventario/movimientos/{id} [delete]
func (h *InventarioHandler) EliminarMovimiento(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.EliminarMovimiento(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListarMovimientos returns the paginated movement history.
func (h *InventarioHandler) ListarMovimientos(c *gin.Context) {
	var filter dto.MovimientoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("parámetros de consulta inválidos"))
		return
	}
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarConsumo godoc
// @Summary      Descontar inventario según las recetas de un pedido
// @Description  Una transacción para todas las líneas: si cualquier insumo queda corto, nada se descuenta (409).
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarConsumoRequest true "Pedido a consumir"
// @Success      201  {object} dto.RegistrarConsumoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/inventario/consumos [post]
func (h *InventarioHandler) RegistrarConsumo(c *gin.Context) {
	var req dto.RegistrarConsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarConsumoPedido(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ObtenerStock returns the current stock record for one ingredient.
func (h *InventarioHandler) ObtenerStock(c *gin.Context) {
	insumoID, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerStock(c.Request.Context(), insumoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarStock returns the materialized stock table.
func (h *InventarioHandler) ListarStock(c *gin.Context) {
	resp, err := h.svc.ListarStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AlertasStock godoc
// @Summary      Insumos con stock bajo
// @Description  Insumos activos con cantidad_actual estrictamente menor que stock_minimo, con déficit y porcentaje.
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.AlertaStockResponse
// @Router       /v1/inventario/alertas [get]
func (h *InventarioHandler) AlertasStock(c *gin.Context) {
	resp, err := h.svc.AlertasStockBajo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
