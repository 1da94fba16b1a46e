package service

// stubs_test.go
// In-memory repository stubs shared by the service unit tests. Each stub
// implements its repository interface over plain maps; DB() returns nil so
// runTx executes the callback directly without a real transaction.

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/dto"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/model"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errNotFound = errors.New("record not found")

// ── Categoria ────────────────────────────────────────────────────────────────

type stubCategoriaRepo struct {
	categorias map[uuid.UUID]*model.Categoria
	productos  *stubProductoRepo // para ContarProductos
}

func newStubCategoriaRepo() *stubCategoriaRepo {
	return &stubCategoriaRepo{categorias: make(map[uuid.UUID]*model.Categoria)}
}

func (r *stubCategoriaRepo) Crear(_ context.Context, c *model.Categoria) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cloned := *c
	r.categorias[c.ID] = &cloned
	return nil
}

func (r *stubCategoriaRepo) Listar(_ context.Context, incluirInactivas bool) ([]model.Categoria, error) {
	var out []model.Categoria
	for _, c := range r.categorias {
		if !incluirInactivas && !c.Activo {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCategoriaRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Categoria, error) {
	c, ok := r.categorias[id]
	if !ok {
		return nil, errNotFound
	}
	cloned := *c
	return &cloned, nil
}

func (r *stubCategoriaRepo) ObtenerPorNombre(_ context.Context, nombre string) (*model.Categoria, error) {
	for _, c := range r.categorias {
		if strings.EqualFold(c.Nombre, nombre) {
			cloned := *c
			return &cloned, nil
		}
	}
	return nil, errNotFound
}

func (r *stubCategoriaRepo) Actualizar(_ context.Context, c *model.Categoria) error {
	cloned := *c
	r.categorias[c.ID] = &cloned
	return nil
}

func (r *stubCategoriaRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	if c, ok := r.categorias[id]; ok {
		c.Activo = false
		return nil
	}
	return errNotFound
}

func (r *stubCategoriaRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if c, ok := r.categorias[id]; ok {
		c.Activo = true
		return nil
	}
	return errNotFound
}

func (r *stubCategoriaRepo) EliminarPermanente(_ context.Context, id uuid.UUID) error {
	delete(r.categorias, id)
	return nil
}

func (r *stubCategoriaRepo) ContarProductos(_ context.Context, id uuid.UUID, soloActivos bool) (int64, error) {
	if r.productos == nil {
		return 0, nil
	}
	var n int64
	for _, p := range r.productos.productos {
		if p.CategoriaID != id {
			continue
		}
		if soloActivos && !p.Activo {
			continue
		}
		n++
	}
	return n, nil
}

var _ repository.CategoriaRepository = (*stubCategoriaRepo)(nil)

// ── Producto ─────────────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos      map[uuid.UUID]*model.Producto
	presentaciones *stubPresentacionRepo
	lineasPedido   map[uuid.UUID]int64 // productoID → líneas históricas
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{
		productos:    make(map[uuid.UUID]*model.Producto),
		lineasPedido: make(map[uuid.UUID]int64),
	}
}

func (r *stubProductoRepo) Crear(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cloned := *p
	r.productos[p.ID] = &cloned
	return nil
}

func (r *stubProductoRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, errNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (r *stubProductoRepo) ObtenerConPresentaciones(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	p, err := r.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.presentaciones != nil {
		for _, pres := range r.presentaciones.presentaciones {
			if pres.ProductoID == id {
				p.Presentaciones = append(p.Presentaciones, *pres)
			}
		}
	}
	return p, nil
}

func (r *stubProductoRepo) Listar(_ context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range r.productos {
		switch filter.Activo {
		case "all":
		case "false":
			if p.Activo {
				continue
			}
		default:
			if !p.Activo {
				continue
			}
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Actualizar(_ context.Context, p *model.Producto) error {
	cloned := *p
	r.productos[p.ID] = &cloned
	return nil
}

func (r *stubProductoRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = false
		return nil
	}
	return errNotFound
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = true
		return nil
	}
	return errNotFound
}

func (r *stubProductoRepo) EliminarPermanente(_ context.Context, id uuid.UUID) error {
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) ContarPresentaciones(_ context.Context, id uuid.UUID, soloActivas bool) (int64, error) {
	if r.presentaciones == nil {
		return 0, nil
	}
	var n int64
	for _, pres := range r.presentaciones.presentaciones {
		if pres.ProductoID != id {
			continue
		}
		if soloActivas && !pres.Activo {
			continue
		}
		n++
	}
	return n, nil
}

func (r *stubProductoRepo) ContarLineasPedido(_ context.Context, id uuid.UUID) (int64, error) {
	return r.lineasPedido[id], nil
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── Presentacion ─────────────────────────────────────────────────────────────

type stubPresentacionRepo struct {
	presentaciones map[uuid.UUID]*model.Presentacion
	productos      *stubProductoRepo
	recetas        *stubRecetaRepo
	lineasPedido   map[uuid.UUID]int64
}

func newStubPresentacionRepo() *stubPresentacionRepo {
	return &stubPresentacionRepo{
		presentaciones: make(map[uuid.UUID]*model.Presentacion),
		lineasPedido:   make(map[uuid.UUID]int64),
	}
}

func (r *stubPresentacionRepo) Crear(_ context.Context, p *model.Presentacion) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cloned := *p
	r.presentaciones[p.ID] = &cloned
	return nil
}

func (r *stubPresentacionRepo) CrearTx(_ *gorm.DB, p *model.Presentacion) error {
	return r.Crear(context.Background(), p)
}

func (r *stubPresentacionRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Presentacion, error) {
	p, ok := r.presentaciones[id]
	if !ok {
		return nil, errNotFound
	}
	cloned := *p
	if r.productos != nil {
		if prod, ok := r.productos.productos[p.ProductoID]; ok {
			prodCloned := *prod
			cloned.Producto = &prodCloned
		}
	}
	return &cloned, nil
}

func (r *stubPresentacionRepo) ListarPorProducto(_ context.Context, productoID uuid.UUID, incluirInactivas bool) ([]model.Presentacion, error) {
	var out []model.Presentacion
	for _, p := range r.presentaciones {
		if p.ProductoID != productoID {
			continue
		}
		if !incluirInactivas && !p.Activo {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPresentacionRepo) Actualizar(_ context.Context, p *model.Presentacion) error {
	cloned := *p
	cloned.Producto = nil
	r.presentaciones[p.ID] = &cloned
	return nil
}

func (r *stubPresentacionRepo) ActualizarTx(_ *gorm.DB, p *model.Presentacion) error {
	return r.Actualizar(context.Background(), p)
}

func (r *stubPresentacionRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.presentaciones[id]; ok {
		p.Activo = false
		return nil
	}
	return errNotFound
}

func (r *stubPresentacionRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.presentaciones[id]; ok {
		p.Activo = true
		return nil
	}
	return errNotFound
}

func (r *stubPresentacionRepo) EliminarPermanente(_ context.Context, id uuid.UUID) error {
	delete(r.presentaciones, id)
	return nil
}

func (r *stubPresentacionRepo) LimpiarDefaultTx(_ *gorm.DB, productoID uuid.UUID, excepto uuid.UUID) error {
	for _, p := range r.presentaciones {
		if p.ProductoID == productoID && p.ID != excepto {
			p.EsDefault = false
		}
	}
	return nil
}

func (r *stubPresentacionRepo) ContarRecetas(_ context.Context, id uuid.UUID) (int64, error) {
	if r.recetas == nil {
		return 0, nil
	}
	var n int64
	for _, rec := range r.recetas.recetas {
		if rec.PresentacionID == id {
			n++
		}
	}
	return n, nil
}

func (r *stubPresentacionRepo) ContarLineasPedido(_ context.Context, id uuid.UUID) (int64, error) {
	return r.lineasPedido[id], nil
}

func (r *stubPresentacionRepo) DB() *gorm.DB { return nil }

var _ repository.PresentacionRepository = (*stubPresentacionRepo)(nil)

// ── Insumo ───────────────────────────────────────────────────────────────────

type stubInsumoRepo struct {
	insumos map[uuid.UUID]*model.Insumo
}

func newStubInsumoRepo() *stubInsumoRepo {
	return &stubInsumoRepo{insumos: make(map[uuid.UUID]*model.Insumo)}
}

func (r *stubInsumoRepo) Crear(_ context.Context, i *model.Insumo) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	cloned := *i
	r.insumos[i.ID] = &cloned
	return nil
}

func (r *stubInsumoRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Insumo, error) {
	i, ok := r.insumos[id]
	if !ok {
		return nil, errNotFound
	}
	cloned := *i
	return &cloned, nil
}

func (r *stubInsumoRepo) ObtenerPorNombre(_ context.Context, nombre string) (*model.Insumo, error) {
	for _, i := range r.insumos {
		if strings.EqualFold(i.Nombre, nombre) {
			cloned := *i
			return &cloned, nil
		}
	}
	return nil, errNotFound
}

func (r *stubInsumoRepo) Listar(_ context.Context, incluirInactivos bool) ([]model.Insumo, error) {
	var out []model.Insumo
	for _, i := range r.insumos {
		if !incluirInactivos && !i.Activo {
			continue
		}
		out = append(out, *i)
	}
	return out, nil
}

func (r *stubInsumoRepo) Actualizar(_ context.Context, i *model.Insumo) error {
	cloned := *i
	r.insumos[i.ID] = &cloned
	return nil
}

func (r *stubInsumoRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	if i, ok := r.insumos[id]; ok {
		i.Activo = false
		return nil
	}
	return errNotFound
}

func (r *stubInsumoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if i, ok := r.insumos[id]; ok {
		i.Activo = true
		return nil
	}
	return errNotFound
}

func (r *stubInsumoRepo) ContarRecetas(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

var _ repository.InsumoRepository = (*stubInsumoRepo)(nil)

// ── Receta ───────────────────────────────────────────────────────────────────

type stubRecetaRepo struct {
	recetas map[uuid.UUID]*model.Receta
	insumos *stubInsumoRepo // hidrata Insumo en los listados
}

func newStubRecetaRepo(insumos *stubInsumoRepo) *stubRecetaRepo {
	return &stubRecetaRepo{recetas: make(map[uuid.UUID]*model.Receta), insumos: insumos}
}

func (r *stubRecetaRepo) Crear(_ context.Context, rec *model.Receta) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	cloned := *rec
	cloned.Insumo = nil
	r.recetas[rec.ID] = &cloned
	return nil
}

func (r *stubRecetaRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Receta, error) {
	rec, ok := r.recetas[id]
	if !ok {
		return nil, errNotFound
	}
	cloned := *rec
	return &cloned, nil
}

func (r *stubRecetaRepo) ObtenerVinculo(_ context.Context, presentacionID, insumoID uuid.UUID) (*model.Receta, error) {
	for _, rec := range r.recetas {
		if rec.PresentacionID == presentacionID && rec.InsumoID == insumoID {
			cloned := *rec
			return &cloned, nil
		}
	}
	return nil, errNotFound
}

func (r *stubRecetaRepo) ListarPorPresentacion(_ context.Context, presentacionID uuid.UUID) ([]model.Receta, error) {
	var out []model.Receta
	for _, rec := range r.recetas {
		if rec.PresentacionID != presentacionID {
			continue
		}
		cloned := *rec
		if r.insumos != nil {
			if ins, ok := r.insumos.insumos[rec.InsumoID]; ok {
				insCloned := *ins
				cloned.Insumo = &insCloned
			}
		}
		out = append(out, cloned)
	}
	return out, nil
}

func (r *stubRecetaRepo) Actualizar(_ context.Context, rec *model.Receta) error {
	cloned := *rec
	cloned.Insumo = nil
	r.recetas[rec.ID] = &cloned
	return nil
}

func (r *stubRecetaRepo) Eliminar(_ context.Context, id uuid.UUID) error {
	delete(r.recetas, id)
	return nil
}

var _ repository.RecetaRepository = (*stubRecetaRepo)(nil)

// ── Inventario ───────────────────────────────────────────────────────────────

type stubInventarioRepo struct {
	mu          sync.Mutex
	registros   map[uuid.UUID]*model.InventarioInsumo // key: insumoID
	movimientos map[uuid.UUID]*model.MovimientoInventario
	insumos     *stubInsumoRepo
}

func newStubInventarioRepo(insumos *stubInsumoRepo) *stubInventarioRepo {
	return &stubInventarioRepo{
		registros:   make(map[uuid.UUID]*model.InventarioInsumo),
		movimientos: make(map[uuid.UUID]*model.MovimientoInventario),
		insumos:     insumos,
	}
}

func (r *stubInventarioRepo) ObtenerRegistroParaActualizar(_ *gorm.DB, insumoID uuid.UUID) (*model.InventarioInsumo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.registros[insumoID]
	if !ok {
		reg = &model.InventarioInsumo{
			ID:             uuid.New(),
			InsumoID:       insumoID,
			CantidadActual: decimal.Zero,
		}
		r.registros[insumoID] = reg
	}
	cloned := *reg
	return &cloned, nil
}

func (r *stubInventarioRepo) ActualizarCantidadTx(_ *gorm.DB, registroID uuid.UUID, cantidad decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.registros {
		if reg.ID == registroID {
			reg.CantidadActual = cantidad
			reg.UpdatedAt = time.Now()
			return nil
		}
	}
	return errNotFound
}

func (r *stubInventarioRepo) CrearMovimientoTx(_ *gorm.DB, m *model.MovimientoInventario) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	cloned := *m
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movimientos[m.ID] = &cloned
	return nil
}

func (r *stubInventarioRepo) EliminarMovimientoTx(_ *gorm.DB, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.movimientos, id)
	return nil
}

func (r *stubInventarioRepo) ObtenerMovimiento(_ context.Context, id uuid.UUID) (*model.MovimientoInventario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.movimientos[id]
	if !ok {
		return nil, errNotFound
	}
	cloned := *m
	return &cloned, nil
}

func (r *stubInventarioRepo) ObtenerMovimientoHidratado(ctx context.Context, id uuid.UUID) (*model.MovimientoInventario, error) {
	return r.ObtenerMovimiento(ctx, id)
}

func (r *stubInventarioRepo) ListarMovimientos(_ context.Context, filter dto.MovimientoFilter) ([]model.MovimientoInventario, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.MovimientoInventario
	for _, m := range r.movimientos {
		if filter.InsumoID != "" && m.InsumoID.String() != filter.InsumoID {
			continue
		}
		if filter.Tipo != "" && m.Tipo != filter.Tipo {
			continue
		}
		if filter.PedidoID != "" && (m.PedidoID == nil || m.PedidoID.String() != filter.PedidoID) {
			continue
		}
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (r *stubInventarioRepo) ObtenerRegistro(_ context.Context, insumoID uuid.UUID) (*model.InventarioInsumo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.registros[insumoID]
	if !ok {
		return nil, errNotFound
	}
	cloned := *reg
	return &cloned, nil
}

func (r *stubInventarioRepo) ListarRegistros(_ context.Context) ([]model.InventarioInsumo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.InventarioInsumo
	for _, reg := range r.registros {
		cloned := *reg
		if r.insumos != nil {
			if ins, ok := r.insumos.insumos[reg.InsumoID]; ok {
				insCloned := *ins
				cloned.Insumo = &insCloned
			}
		}
		out = append(out, cloned)
	}
	return out, nil
}

func (r *stubInventarioRepo) DB() *gorm.DB { return nil }

var _ repository.InventarioRepository = (*stubInventarioRepo)(nil)

// ── Pedido ───────────────────────────────────────────────────────────────────

type stubPedidoRepo struct {
	pedidos   map[uuid.UUID]*model.Pedido
	productos *stubProductoRepo
}

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{pedidos: make(map[uuid.UUID]*model.Pedido)}
}

func (r *stubPedidoRepo) CrearTx(_ *gorm.DB, p *model.Pedido) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Detalles {
		if p.Detalles[i].ID == uuid.Nil {
			p.Detalles[i].ID = uuid.New()
		}
		p.Detalles[i].PedidoID = p.ID
	}
	cloned := *p
	r.pedidos[p.ID] = &cloned
	return nil
}

func (r *stubPedidoRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, errNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (r *stubPedidoRepo) ObtenerHidratado(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	p, err := r.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.productos != nil {
		for i := range p.Detalles {
			if prod, ok := r.productos.productos[p.Detalles[i].ProductoID]; ok {
				prodCloned := *prod
				p.Detalles[i].Producto = &prodCloned
			}
		}
	}
	return p, nil
}

func (r *stubPedidoRepo) Listar(_ context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error) {
	var out []model.Pedido
	for _, p := range r.pedidos {
		if filter.Estado != "" && filter.Estado != "all" && p.Estado != filter.Estado {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPedidoRepo) ActualizarEstado(_ context.Context, id uuid.UUID, estado string) error {
	if p, ok := r.pedidos[id]; ok {
		p.Estado = estado
		return nil
	}
	return errNotFound
}

func (r *stubPedidoRepo) DB() *gorm.DB { return nil }

var _ repository.PedidoRepository = (*stubPedidoRepo)(nil)

// ── Cliente ──────────────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Crear(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cloned := *c
	r.clientes[c.ID] = &cloned
	return nil
}

func (r *stubClienteRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, errNotFound
	}
	cloned := *c
	return &cloned, nil
}

func (r *stubClienteRepo) Listar(_ context.Context, incluirInactivos bool) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		if !incluirInactivos && !c.Activo {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClienteRepo) Actualizar(_ context.Context, c *model.Cliente) error {
	cloned := *c
	r.clientes[c.ID] = &cloned
	return nil
}

func (r *stubClienteRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	if c, ok := r.clientes[id]; ok {
		c.Activo = false
		return nil
	}
	return errNotFound
}

func (r *stubClienteRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if c, ok := r.clientes[id]; ok {
		c.Activo = true
		return nil
	}
	return errNotFound
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── Notificaciones ───────────────────────────────────────────────────────────

type publishedEvent struct {
	Topic   string
	Payload interface{}
}

// recordingPublisher captura las notificaciones publicadas; con fail=true
// simula un sink caído para verificar que los pedidos no fallan por eso.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	fail   bool
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("sink no disponible")
	}
	p.events = append(p.events, publishedEvent{Topic: topic, Payload: payload})
	return nil
}

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Topic
	}
	return out
}
