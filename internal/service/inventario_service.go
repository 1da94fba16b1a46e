package service

import (
	"context"
	"fmt"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/apierror"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/dto"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/model"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/repository"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InventarioService interface {
	RegistrarMovimiento(ctx context.Context, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error)
	EliminarMovimiento(ctx context.Context, id uuid.UUID) error
	RegistrarConsumoPedido(ctx context.Context, req dto.RegistrarConsumoRequest) (*dto.RegistrarConsumoResponse, error)
	ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error)
	ObtenerStock(ctx context.Context, insumoID uuid.UUID) (*dto.StockInsumoResponse, error)
	ListarStock(ctx context.Context) ([]dto.StockInsumoResponse, error)
	AlertasStockBajo(ctx context.Context) ([]dto.AlertaStockResponse, error)
}

type inventarioService struct {
	repo        repository.InventarioRepository
	insumoRepo  repository.InsumoRepository
	recetaRepo  repository.RecetaRepository
	pedidoRepo  repository.PedidoRepository
	usuarioRepo repository.UsuarioRepository
	dispatcher  *worker.Dispatcher
}

func NewInventarioService(
	repo repository.InventarioRepository,
	insumoRepo repository.InsumoRepository,
	recetaRepo repository.RecetaRepository,
	pedidoRepo repository.PedidoRepository,
	usuarioRepo repository.UsuarioRepository,
	dispatcher *worker.Dispatcher,
) InventarioService {
	return &inventarioService{
		repo:        repo,
		insumoRepo:  insumoRepo,
		recetaRepo:  recetaRepo,
		pedidoRepo:  pedidoRepo,
		usuarioRepo: usuarioRepo,
		dispatcher:  dispatcher,
	}
}

// aplicarMovimiento ejecuta un movimiento dentro de tx: toma el registro de
// inventario bajo FOR UPDATE (creándolo en cero si no existe), verifica que
// salida/merma no dejen el stock negativo, actualiza el total y apendea el
// movimiento al historial. Devuelve el stock resultante.
func (s *inventarioService) aplicarMovimiento(tx *gorm.DB, mov *model.MovimientoInventario, nombreInsumo string) (decimal.Decimal, error) {
	reg, err := s.repo.ObtenerRegistroParaActualizar(tx, mov.InsumoID)
	if err != nil {
		return decimal.Zero, err
	}

	var nuevo decimal.Decimal
	if model.MovimientoIncrementa(mov.Tipo) {
		nuevo = reg.CantidadActual.Add(mov.Cantidad)
	} else {
		nuevo = reg.CantidadActual.Sub(mov.Cantidad)
		if nuevo.IsNegative() {
			return decimal.Zero, apierror.InsufficientStock(fmt.Sprintf(
				"stock insuficiente de %q: disponible %s, requerido %s",
				nombreInsumo, reg.CantidadActual.String(), mov.Cantidad.String()))
		}
	}

	if err := s.repo.ActualizarCantidadTx(tx, reg.ID, nuevo); err != nil {
		return decimal.Zero, err
	}
	if err := s.repo.CrearMovimientoTx(tx, mov); err != nil {
		return decimal.Zero, err
	}
	return nuevo, nil
}

func (s *inventarioService) RegistrarMovimiento(ctx context.Context, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error) {
	insumoID, err := uuid.Parse(req.InsumoID)
	if err != nil {
		return nil, apierror.Validation("insumo_id inválido")
	}
	if !model.TipoMovimientoValido(req.Tipo) {
		return nil, apierror.Validation(fmt.Sprintf("tipo de movimiento desconocido: %q", req.Tipo))
	}
	if !req.Cantidad.IsPositive() {
		return nil, apierror.Validation("la cantidad debe ser mayor que cero")
	}

	ins, err := insumoActivo(ctx, s.insumoRepo, insumoID)
	if err != nil {
		return nil, err
	}

	mov := model.MovimientoInventario{
		InsumoID: insumoID,
		Tipo:     req.Tipo,
		Cantidad: req.Cantidad,
		Notas:    req.Notas,
	}
	if req.PedidoID != nil {
		pid, err := uuid.Parse(*req.PedidoID)
		if err != nil {
			return nil, apierror.Validation("pedido_id inválido")
		}
		if _, err := s.pedidoRepo.ObtenerPorID(ctx, pid); err != nil {
			return nil, apierror.ReferenceInvalid("el pedido indicado no existe")
		}
		mov.PedidoID = &pid
	}
	if req.UsuarioID != nil {
		uid, err := uuid.Parse(*req.UsuarioID)
		if err != nil {
			return nil, apierror.Validation("usuario_id inválido")
		}
		if _, err := usuarioActivo(ctx, s.usuarioRepo, uid); err != nil {
			return nil, err
		}
		mov.UsuarioID = &uid
	}

	var stockResultado decimal.Decimal
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		stockResultado, err = s.aplicarMovimiento(tx, &mov, ins.Nombre)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	s.alertarSiStockBajo(ctx, ins, stockResultado)

	resp := movimientoToResponse(&mov, stockResultado)
	resp.Insumo = ins.Nombre
	resp.UnidadMedida = ins.UnidadMedida
	return resp, nil
}

// EliminarMovimiento borra un movimiento del historial aplicando el delta
// inverso sobre el stock, en la misma transacción. Si revertir una entrada
// dejaría el stock negativo la operación se rechaza completa.
func (s *inventarioService) EliminarMovimiento(ctx context.Context, id uuid.UUID) error {
	mov, err := s.repo.ObtenerMovimiento(ctx, id)
	if err != nil {
		return apierror.NotFound("movimiento no encontrado")
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		reg, err := s.repo.ObtenerRegistroParaActualizar(tx, mov.InsumoID)
		if err != nil {
			return err
		}

		var nuevo decimal.Decimal
		if model.MovimientoIncrementa(mov.Tipo) {
			nuevo = reg.CantidadActual.Sub(mov.Cantidad)
			if nuevo.IsNegative() {
				return apierror.Conflict(fmt.Sprintf(
					"eliminar esta %s dejaría el stock en %s; registre un ajuste en su lugar",
					mov.Tipo, nuevo.String()))
			}
		} else {
			nuevo = reg.CantidadActual.Add(mov.Cantidad)
		}

		if err := s.repo.ActualizarCantidadTx(tx, reg.ID, nuevo); err != nil {
			return err
		}
		return s.repo.EliminarMovimientoTx(tx, mov.ID)
	})
}

// RegistrarConsumoPedido descuenta inventario según las recetas de las líneas
// de un pedido. Todas las salidas de todos los insumos de todas las líneas
// corren en UNA transacción: si cualquier insumo queda corto, nada se
// descuenta. Las líneas sin presentación usan la presentación default del
// producto; sin default tampoco, la línea no consume nada.
func (s *inventarioService) RegistrarConsumoPedido(ctx context.Context, req dto.RegistrarConsumoRequest) (*dto.RegistrarConsumoResponse, error) {
	pedidoID, err := uuid.Parse(req.PedidoID)
	if err != nil {
		return nil, apierror.Validation("pedido_id inválido")
	}
	pedido, err := s.pedidoRepo.ObtenerHidratado(ctx, pedidoID)
	if err != nil {
		return nil, apierror.NotFound("pedido no encontrado")
	}

	var usuarioID *uuid.UUID
	if req.UsuarioID != nil {
		uid, err := uuid.Parse(*req.UsuarioID)
		if err != nil {
			return nil, apierror.Validation("usuario_id inválido")
		}
		if _, err := usuarioActivo(ctx, s.usuarioRepo, uid); err != nil {
			return nil, err
		}
		usuarioID = &uid
	}

	// Pre-flight fuera de la tx: resolver presentación y receta por línea.
	type consumo struct {
		insumo   *model.Insumo
		cantidad decimal.Decimal
	}
	var consumos []consumo
	for i := range pedido.Detalles {
		det := &pedido.Detalles[i]

		presID := det.PresentacionID
		if presID == nil && det.Producto != nil {
			presID = det.Producto.PresentacionDefaultID
		}
		if presID == nil {
			continue
		}

		recetas, err := s.recetaRepo.ListarPorPresentacion(ctx, *presID)
		if err != nil {
			return nil, err
		}
		factor := decimal.NewFromInt(int64(det.Cantidad))
		for j := range recetas {
			rec := &recetas[j]
			if rec.Insumo == nil || !rec.Insumo.Activo {
				continue
			}
			consumos = append(consumos, consumo{
				insumo:   rec.Insumo,
				cantidad: rec.CantidadRequerida.Mul(factor),
			})
		}
	}

	movimientos := make([]*model.MovimientoInventario, 0, len(consumos))
	stocks := make([]decimal.Decimal, 0, len(consumos))

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, c := range consumos {
			mov := &model.MovimientoInventario{
				InsumoID:  c.insumo.ID,
				Tipo:      model.MovSalida,
				Cantidad:  c.cantidad,
				PedidoID:  &pedidoID,
				UsuarioID: usuarioID,
			}
			stock, err := s.aplicarMovimiento(tx, mov, c.insumo.Nombre)
			if err != nil {
				return err
			}
			movimientos = append(movimientos, mov)
			stocks = append(stocks, stock)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := &dto.RegistrarConsumoResponse{
		PedidoID:    pedidoID.String(),
		Movimientos: make([]dto.MovimientoResponse, 0, len(movimientos)),
		Total:       len(movimientos),
	}
	for i, mov := range movimientos {
		m := movimientoToResponse(mov, stocks[i])
		m.Insumo = consumos[i].insumo.Nombre
		m.UnidadMedida = consumos[i].insumo.UnidadMedida
		resp.Movimientos = append(resp.Movimientos, *m)

		s.alertarSiStockBajo(ctx, consumos[i].insumo, stocks[i])
	}
	return resp, nil
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	movimientos, total, err := s.repo.ListarMovimientos(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.MovimientoResponse, 0, len(movimientos))
	for i := range movimientos {
		mov := &movimientos[i]
		// el stock resultante no se reconstruye en listados
		m := movimientoToResponse(mov, decimal.Zero)
		if mov.Insumo != nil {
			m.Insumo = mov.Insumo.Nombre
			m.UnidadMedida = mov.Insumo.UnidadMedida
		}
		if mov.Usuario != nil {
			m.Usuario = mov.Usuario.Nombre
		}
		data = append(data, *m)
	}
	return &dto.MovimientoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *inventarioService) ObtenerStock(ctx context.Context, insumoID uuid.UUID) (*dto.StockInsumoResponse, error) {
	ins, err := s.insumoRepo.ObtenerPorID(ctx, insumoID)
	if err != nil {
		return nil, apierror.NotFound("insumo no encontrado")
	}
	reg, err := s.repo.ObtenerRegistro(ctx, insumoID)
	if err != nil {
		// Sin movimientos todavía: stock cero, no error.
		return &dto.StockInsumoResponse{
			InsumoID:       insumoID.String(),
			Insumo:         ins.Nombre,
			UnidadMedida:   ins.UnidadMedida,
			CantidadActual: decimal.Zero,
			StockMinimo:    ins.StockMinimo,
			StockBajo:      decimal.Zero.LessThan(ins.StockMinimo),
		}, nil
	}
	return registroToStockResponse(reg, ins), nil
}

func (s *inventarioService) ListarStock(ctx context.Context) ([]dto.StockInsumoResponse, error) {
	regs, err := s.repo.ListarRegistros(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockInsumoResponse, 0, len(regs))
	for i := range regs {
		reg := &regs[i]
		if reg.Insumo == nil {
			continue
		}
		out = append(out, *registroToStockResponse(reg, reg.Insumo))
	}
	return out, nil
}

// AlertasStockBajo devuelve los insumos activos con cantidad_actual
// estrictamente menor que stock_minimo. Igualar el mínimo no alerta.
func (s *inventarioService) AlertasStockBajo(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	regs, err := s.repo.ListarRegistros(ctx)
	if err != nil {
		return nil, err
	}
	alertas := make([]dto.AlertaStockResponse, 0)
	for i := range regs {
		reg := &regs[i]
		if reg.Insumo == nil || !reg.Insumo.Activo {
			continue
		}
		if !reg.CantidadActual.LessThan(reg.Insumo.StockMinimo) {
			continue
		}
		porcentaje := decimal.Zero
		if reg.Insumo.StockMinimo.IsPositive() {
			porcentaje = reg.CantidadActual.Div(reg.Insumo.StockMinimo).
				Mul(decimal.NewFromInt(100)).Round(2)
		}
		alertas = append(alertas, dto.AlertaStockResponse{
			InsumoID:       reg.InsumoID.String(),
			Insumo:         reg.Insumo.Nombre,
			UnidadMedida:   reg.Insumo.UnidadMedida,
			CantidadActual: reg.CantidadActual,
			StockMinimo:    reg.Insumo.StockMinimo,
			Deficit:        reg.Insumo.StockMinimo.Sub(reg.CantidadActual),
			Porcentaje:     porcentaje,
		})
	}
	return alertas, nil
}

// alertarSiStockBajo encola una alerta post-commit cuando el movimiento dejó
// el stock por debajo del mínimo. Best-effort: sin dispatcher no hace nada.
func (s *inventarioService) alertarSiStockBajo(ctx context.Context, ins *model.Insumo, stock decimal.Decimal) {
	if s.dispatcher == nil || !ins.Activo || !stock.LessThan(ins.StockMinimo) {
		return
	}
	_ = s.dispatcher.EnqueueAlertaStock(ctx, worker.AlertaStockPayload{
		Items: []worker.AlertaStockItem{{
			Insumo:         ins.Nombre,
			UnidadMedida:   ins.UnidadMedida,
			CantidadActual: stock.String(),
			StockMinimo:    ins.StockMinimo.String(),
		}},
	})
}

func movimientoToResponse(m *model.MovimientoInventario, stock decimal.Decimal) *dto.MovimientoResponse {
	resp := &dto.MovimientoResponse{
		ID:             m.ID.String(),
		InsumoID:       m.InsumoID.String(),
		Tipo:           m.Tipo,
		Cantidad:       m.Cantidad,
		StockResultado: stock,
		Notas:          m.Notas,
		CreatedAt:      m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if m.PedidoID != nil {
		s := m.PedidoID.String()
		resp.PedidoID = &s
	}
	if m.UsuarioID != nil {
		s := m.UsuarioID.String()
		resp.UsuarioID = &s
	}
	return resp
}

func registroToStockResponse(reg *model.InventarioInsumo, ins *model.Insumo) *dto.StockInsumoResponse {
	return &dto.StockInsumoResponse{
		InsumoID:       reg.InsumoID.String(),
		Insumo:         ins.Nombre,
		UnidadMedida:   ins.UnidadMedida,
		CantidadActual: reg.CantidadActual,
		StockMinimo:    ins.StockMinimo,
		StockBajo:      reg.CantidadActual.LessThan(ins.StockMinimo),
		UpdatedAt:      reg.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
