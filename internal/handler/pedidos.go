package handler

import (
	"net/http"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/apierror"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/dto"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/infra"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/repository"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type PedidosHandler struct {
	svc        service.PedidoService
	pedidoRepo repository.PedidoRepository
	pdfPath    string
}

func NewPedidosHandler(svc service.PedidoService, pedidoRepo repository.PedidoRepository, pdfPath string) *PedidosHandler {
	return &PedidosHandler{svc: svc, pedidoRepo: pedidoRepo, pdfPath: pdfPath}
}

// Crear godoc
// @Summary      Crear pedido
// @Description  Valida productos y presentaciones, congela precios por línea y publica pedido:creado.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearPedidoRequest true "Pedido"
// @Success      201  {object} dto.PedidoResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/pedidos [post]
func (h *PedidosHandler) Crear(c *gin.Context) {
	var req dto.CrearPedidoRequest
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

func (h *PedidosHandler) Obtener(c *gin.Context) {
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

// Listar godoc
// @Summary      Listar pedidos
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        estado     query string false "pendiente | en_preparacion | listo | entregado | cancelado | all"
// @Param        cliente_id query string false "Filtro por cliente"
// @Param        fecha      query string false "Fecha YYYY-MM-DD"
// @Param        page       query int    false "Página (default 1)"
// @Param        limit      query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.PedidoListResponse
// @Router       /v1/pedidos [get]
func (h *PedidosHandler) Listar(c *gin.Context) {
	var filter dto.PedidoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("parámetros de consulta inválidos"))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarEstado godoc
// @Summary      Cambiar estado de un pedido
// @Description  Acepta cualquier estado del enum; el flujo de cocina puede avanzar y retroceder. Publica pedido:estado_cambiado.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                      true "UUID del pedido"
// @Param        body body dto.ActualizarEstadoRequest true "Nuevo estado"
// @Success      200  {object} dto.PedidoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/pedidos/{id}/estado [put]
func (h *PedidosHandler) ActualizarEstado(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarEstado(c.Request.Context(), id, req.Estado)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancelar godoc
// @Summary      Cancelar pedido
// @Description  Rechaza pedidos entregados y cancelaciones repetidas con 409. Publica pedido:cancelado.
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del pedido"
// @Success      200 {object} dto.PedidoResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/pedidos/{id} [delete]
func (h *PedidosHandler) Cancelar(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Cancelar(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Ticket godoc
// @Summary      Generar comanda PDF del pedido
// @Tags         pedidos
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "UUID del pedido"
// @Success      200 {file} binary
// @Failure      404 {object} apierror.APIError
// @Router       /v1/pedidos/{id}/ticket [get]
func (h *PedidosHandler) Ticket(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	pedido, err := h.pedidoRepo.ObtenerHidratado(c.Request.Context(), id)
	if err != nil {
		respondError(c, apierror.NotFound("pedido no encontrado"))
		return
	}
	path, err := infra.GenerateTicketPDF(pedido, h.pdfPath)
	if err != nil {
		respondError(c, apierror.Internal("no se pudo generar el ticket"))
		return
	}
	c.FileAttachment(path, "pedido_"+id.String()[:8]+".pdf")
}
