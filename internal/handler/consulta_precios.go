package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/apierror"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/dto"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// ConsultaPreciosHandler serves the public price lookup endpoint.
// No authentication required — read-only, backed by a short Redis cache so
// menu boards can poll it cheaply.
type ConsultaPreciosHandler struct {
	repo repository.PresentacionRepository
	rdb  *redis.Client
	ttl  time.Duration
}

func NewConsultaPreciosHandler(repo repository.PresentacionRepository, rdb *redis.Client, ttlSeconds int) *ConsultaPreciosHandler {
	if ttlSeconds <= 0 {
		ttlSeconds = 60
	}
	return &ConsultaPreciosHandler{repo: repo, rdb: rdb, ttl: time.Duration(ttlSeconds) * time.Second}
}

// GetPrecio godoc
// @Summary      Consulta de precio de una presentación (sin autenticación)
// @Tags         precio
// @Produce      json
// @Param        id path string true "UUID de la presentación"
// @Success      200 {object} dto.ConsultaPrecioResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/precio/{id} [get]
func (h *ConsultaPreciosHandler) GetPrecio(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	cacheKey := "precio:" + id.String()

	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp dto.ConsultaPrecioResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	pres, err := h.repo.ObtenerPorID(ctx, id)
	if err != nil || !pres.Activo {
		c.JSON(http.StatusNotFound, apierror.New("Presentación no encontrada"))
		return
	}

	resp := dto.ConsultaPrecioResponse{
		PresentacionID: pres.ID.String(),
		Presentacion:   pres.Nombre,
		Precio:         pres.Precio,
	}
	if pres.Producto != nil {
		resp.Producto = pres.Producto.Nombre
	}

	// Populate cache — best effort, ignore errors
	if h.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = h.rdb.Set(context.Background(), cacheKey, b, h.ttl).Err()
		}
	}

	c.JSON(http.StatusOK, resp)
}
