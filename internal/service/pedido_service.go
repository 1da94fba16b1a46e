package service

import (
	"context"
	"fmt"
	"time"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/apierror"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/dto"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/model"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/notify"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PedidoService interface {
	Crear(ctx context.Context, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error)
	Listar(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error)
	ActualizarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.PedidoResponse, error)
	Cancelar(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error)
}

type pedidoService struct {
	repo             repository.PedidoRepository
	productoRepo     repository.ProductoRepository
	presentacionRepo repository.PresentacionRepository
	clienteRepo      repository.ClienteRepository
	usuarioRepo      repository.UsuarioRepository
	publisher        notify.Publisher
}

func NewPedidoService(
	repo repository.PedidoRepository,
	productoRepo repository.ProductoRepository,
	presentacionRepo repository.PresentacionRepository,
	clienteRepo repository.ClienteRepository,
	usuarioRepo repository.UsuarioRepository,
	publisher notify.Publisher,
) PedidoService {
	return &pedidoService{
		repo:             repo,
		productoRepo:     productoRepo,
		presentacionRepo: presentacionRepo,
		clienteRepo:      clienteRepo,
		usuarioRepo:      usuarioRepo,
		publisher:        publisher,
	}
}

// ── Crear ─────────────────────────────────────────────────────────────────────
// Flujo:
//   1. Validar cliente y usuario (si vienen: existentes y activos) y cada
//      línea: producto existente y activo, presentación existente, activa y
//      perteneciente al producto.
//   2. Resolver precio unitario por línea: explícito en el payload, si no el
//      precio plano heredado del producto, en última instancia cero. El valor
//      queda congelado en la línea.
//   3. BEGIN TX: crear pedido + detalles con total = Σ subtotales. COMMIT.
//   4. Publicar pedido:creado (best-effort, nunca falla el pedido).

func (s *pedidoService) Crear(ctx context.Context, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error) {
	pedido := model.Pedido{
		FechaPedido: time.Now(),
		Estado:      model.EstadoPendiente,
		Notas:       req.Notas,
	}

	if req.ClienteID != nil {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, apierror.Validation("cliente_id inválido")
		}
		if _, err := clienteActivo(ctx, s.clienteRepo, cid); err != nil {
			return nil, err
		}
		pedido.ClienteID = &cid
	}
	if req.UsuarioID != nil {
		uid, err := uuid.Parse(*req.UsuarioID)
		if err != nil {
			return nil, apierror.Validation("usuario_id inválido")
		}
		if _, err := usuarioActivo(ctx, s.usuarioRepo, uid); err != nil {
			return nil, err
		}
		pedido.UsuarioID = &uid
	}

	// Pre-flight: resolver productos, presentaciones y precios fuera de la tx.
	total := decimal.Zero
	for _, det := range req.Detalles {
		prodID, err := uuid.Parse(det.ProductoID)
		if err != nil {
			return nil, apierror.Validation("producto_id inválido")
		}
		if det.Cantidad < 1 {
			return nil, apierror.Validation("la cantidad de cada línea debe ser al menos 1")
		}

		prod, err := productoActivo(ctx, s.productoRepo, prodID)
		if err != nil {
			return nil, err
		}

		var presID *uuid.UUID
		if det.PresentacionID != nil {
			pid, err := uuid.Parse(*det.PresentacionID)
			if err != nil {
				return nil, apierror.Validation("presentacion_id inválido")
			}
			pres, err := presentacionActiva(ctx, s.presentacionRepo, pid)
			if err != nil {
				return nil, err
			}
			if pres.ProductoID != prodID {
				return nil, apierror.ReferenceInvalid(fmt.Sprintf("la presentación %q no pertenece al producto %q", pres.Nombre, prod.Nombre))
			}
			presID = &pid
		}

		precio := decimal.Zero
		switch {
		case det.PrecioUnitario != nil:
			if det.PrecioUnitario.IsNegative() {
				return nil, apierror.Validation("precio_unitario no puede ser negativo")
			}
			precio = *det.PrecioUnitario
		case prod.Precio != nil:
			precio = *prod.Precio
		}

		subtotal := precio.Mul(decimal.NewFromInt(int64(det.Cantidad)))
		total = total.Add(subtotal)
		pedido.Detalles = append(pedido.Detalles, model.DetallePedido{
			ProductoID:     prodID,
			PresentacionID: presID,
			Cantidad:       det.Cantidad,
			PrecioUnitario: precio,
			Subtotal:       subtotal,
			Instrucciones:  det.Instrucciones,
		})
	}
	pedido.Total = total

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.CrearTx(tx, &pedido)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := s.respuestaHidratada(ctx, pedido.ID, &pedido)
	s.publicar(ctx, notify.TopicPedidoCreado, notify.PedidoCreadoPayload{Pedido: *resp})
	return resp, nil
}

func (s *pedidoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.ObtenerHidratado(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("pedido no encontrado")
	}
	return pedidoToResponse(pedido), nil
}

func (s *pedidoService) Listar(ctx context.Context, filter dto.PedidoFilter) (*dto.PedidoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	pedidos, total, err := s.repo.Listar(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PedidoResponse, 0, len(pedidos))
	for i := range pedidos {
		data = append(data, *pedidoToResponse(&pedidos[i]))
	}
	return &dto.PedidoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ActualizarEstado acepta cualquier valor del enum de estados: el flujo de
// cocina avanza y retrocede libremente (listo → en_preparacion es válido).
// Solo la cancelación pasa por Cancelar, que sí aplica reglas terminales.
func (s *pedidoService) ActualizarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.PedidoResponse, error) {
	if !model.EstadoPedidoValido(estado) {
		return nil, apierror.Validation(fmt.Sprintf("estado desconocido: %q", estado))
	}

	pedido, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("pedido no encontrado")
	}

	anterior := pedido.Estado
	if err := s.repo.ActualizarEstado(ctx, id, estado); err != nil {
		return nil, err
	}

	resp := s.respuestaHidratada(ctx, id, pedido)
	resp.Estado = estado
	s.publicar(ctx, notify.TopicPedidoEstado, notify.EstadoCambiadoPayload{
		PedidoID:       id.String(),
		EstadoAnterior: anterior,
		EstadoNuevo:    estado,
		Pedido:         *resp,
	})
	return resp, nil
}

// Cancelar rechaza pedidos entregados (terminal) y cancelaciones repetidas.
func (s *pedidoService) Cancelar(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	pedido, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("pedido no encontrado")
	}
	if pedido.Estado == model.EstadoEntregado {
		return nil, apierror.Conflict("no se puede cancelar un pedido entregado")
	}
	if pedido.Estado == model.EstadoCancelado {
		return nil, apierror.Conflict("el pedido ya está cancelado")
	}

	anterior := pedido.Estado
	if err := s.repo.ActualizarEstado(ctx, id, model.EstadoCancelado); err != nil {
		return nil, err
	}

	resp := s.respuestaHidratada(ctx, id, pedido)
	resp.Estado = model.EstadoCancelado
	s.publicar(ctx, notify.TopicPedidoCancelado, notify.EstadoCambiadoPayload{
		PedidoID:       id.String(),
		EstadoAnterior: anterior,
		EstadoNuevo:    model.EstadoCancelado,
		Pedido:         *resp,
	})
	return resp, nil
}

// respuestaHidratada intenta recargar el pedido con sus relaciones; si la
// recarga falla (p.ej. repos stub sin hidratación) usa el modelo en mano.
func (s *pedidoService) respuestaHidratada(ctx context.Context, id uuid.UUID, fallback *model.Pedido) *dto.PedidoResponse {
	if hydrated, err := s.repo.ObtenerHidratado(ctx, id); err == nil {
		return pedidoToResponse(hydrated)
	}
	return pedidoToResponse(fallback)
}

// publicar envía la notificación best-effort: un sink caído jamás falla la
// operación del pedido, solo deja registro.
func (s *pedidoService) publicar(ctx context.Context, topic string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, payload); err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("notificación de pedido no entregada")
	}
}

func pedidoToResponse(p *model.Pedido) *dto.PedidoResponse {
	resp := &dto.PedidoResponse{
		ID:          p.ID.String(),
		FechaPedido: p.FechaPedido.Format("2006-01-02T15:04:05Z"),
		Estado:      p.Estado,
		Total:       p.Total,
		Notas:       p.Notas,
		Detalles:    make([]dto.DetallePedidoResponse, 0, len(p.Detalles)),
	}
	if p.ClienteID != nil {
		s := p.ClienteID.String()
		resp.ClienteID = &s
	}
	if p.Cliente != nil {
		resp.Cliente = p.Cliente.Nombre
	}
	if p.UsuarioID != nil {
		s := p.UsuarioID.String()
		resp.UsuarioID = &s
	}
	if p.Usuario != nil {
		resp.Usuario = p.Usuario.Nombre
	}
	for i := range p.Detalles {
		det := &p.Detalles[i]
		d := dto.DetallePedidoResponse{
			ID:             det.ID.String(),
			ProductoID:     det.ProductoID.String(),
			Cantidad:       det.Cantidad,
			PrecioUnitario: det.PrecioUnitario,
			Subtotal:       det.Subtotal,
			Instrucciones:  det.Instrucciones,
		}
		if det.Producto != nil {
			d.Producto = det.Producto.Nombre
		}
		if det.PresentacionID != nil {
			s := det.PresentacionID.String()
			d.PresentacionID = &s
		}
		if det.Presentacion != nil {
			d.Presentacion = det.Presentacion.Nombre
		}
		resp.Detalles = append(resp.Detalles, d)
	}
	return resp
}
