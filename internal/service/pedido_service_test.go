package service

import (
	"context"
	"testing"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/apierror"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/dto"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/model"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/notify"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pedidoFixture struct {
	svc            PedidoService
	pedidos        *stubPedidoRepo
	productos      *stubProductoRepo
	presentaciones *stubPresentacionRepo
	clientes       *stubClienteRepo
	usuarios       *stubUsuarioRepo
	publisher      *recordingPublisher
}

func newPedidoFixture() *pedidoFixture {
	productos := newStubProductoRepo()
	presentaciones := newStubPresentacionRepo()
	presentaciones.productos = productos
	productos.presentaciones = presentaciones
	pedidos := newStubPedidoRepo()
	pedidos.productos = productos
	clientes := newStubClienteRepo()
	usuarios := newStubUsuarioRepo()
	publisher := &recordingPublisher{}
	return &pedidoFixture{
		svc:            NewPedidoService(pedidos, productos, presentaciones, clientes, usuarios, publisher),
		pedidos:        pedidos,
		productos:      productos,
		presentaciones: presentaciones,
		clientes:       clientes,
		usuarios:       usuarios,
		publisher:      publisher,
	}
}

func (f *pedidoFixture) nuevoProducto(t *testing.T, nombre string, activo bool) *model.Producto {
	t.Helper()
	p := &model.Producto{Nombre: nombre, CategoriaID: uuid.New(), Activo: activo}
	require.NoError(t, f.productos.Crear(context.Background(), p))
	return p
}

func (f *pedidoFixture) nuevaPresentacion(t *testing.T, productoID uuid.UUID, nombre, precio string, activa bool) *model.Presentacion {
	t.Helper()
	pres := &model.Presentacion{ProductoID: productoID, Nombre: nombre, Precio: dec(precio), Activo: activa}
	require.NoError(t, f.presentaciones.Crear(context.Background(), pres))
	return pres
}

func strPtr(s string) *string { return &s }

func TestCrearPedidoTotalEsSumaDeSubtotales(t *testing.T) {
	f := newPedidoFixture()
	pollo := f.nuevoProducto(t, "Pollo Frito", true)
	bebida := f.nuevoProducto(t, "Refresco", true)
	p85 := dec("85.00")
	p25 := dec("25.50")

	resp, err := f.svc.Crear(context.Background(), dto.CrearPedidoRequest{
		Detalles: []dto.DetallePedidoRequest{
			{ProductoID: pollo.ID.String(), Cantidad: 2, PrecioUnitario: &p85},
			{ProductoID: bebida.ID.String(), Cantidad: 3, PrecioUnitario: &p25},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.EstadoPendiente, resp.Estado)
	require.Len(t, resp.Detalles, 2)
	assert.True(t, resp.Detalles[0].Subtotal.Equal(dec("170.00")))
	assert.True(t, resp.Detalles[1].Subtotal.Equal(dec("76.50")))
	assert.True(t, resp.Total.Equal(dec("246.50")), "total: %s", resp.Total)

	assert.Equal(t, []string{notify.TopicPedidoCreado}, f.publisher.topics())
}

func TestCrearPedidoResolucionDePrecio(t *testing.T) {
	f := newPedidoFixture()
	ctx := context.Background()

	explicito := dec("99.00")
	legacy := dec("40.00")

	conLegacy := f.nuevoProducto(t, "Plato del día", true)
	conLegacy.Precio = &legacy
	require.NoError(t, f.productos.Actualizar(ctx, conLegacy))

	sinPrecio := f.nuevoProducto(t, "Cortesía", true)

	resp, err := f.svc.Crear(ctx, dto.CrearPedidoRequest{
		Detalles: []dto.DetallePedidoRequest{
			// El precio explícito manda aunque el producto tenga precio plano.
			{ProductoID: conLegacy.ID.String(), Cantidad: 1, PrecioUnitario: &explicito},
			// Sin explícito cae al precio plano heredado.
			{ProductoID: conLegacy.ID.String(), Cantidad: 1},
			// Sin explícito ni heredado la línea vale cero.
			{ProductoID: sinPrecio.ID.String(), Cantidad: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Detalles, 3)
	assert.True(t, resp.Detalles[0].PrecioUnitario.Equal(dec("99.00")))
	assert.True(t, resp.Detalles[1].PrecioUnitario.Equal(dec("40.00")))
	assert.True(t, resp.Detalles[2].PrecioUnitario.IsZero())
	assert.True(t, resp.Total.Equal(dec("139.00")))
}

func TestCrearPedidoValidaLineas(t *testing.T) {
	f := newPedidoFixture()
	ctx := context.Background()

	activo := f.nuevoProducto(t, "Tacos", true)
	inactivo := f.nuevoProducto(t, "Descontinuado", true)
	require.NoError(t, f.productos.Desactivar(ctx, inactivo.ID))

	otro := f.nuevoProducto(t, "Enchiladas", true)
	presAjena := f.nuevaPresentacion(t, otro.ID, "Orden", "60.00", true)
	presInactiva := f.nuevaPresentacion(t, activo.ID, "Vieja", "50.00", false)

	negativo := dec("-1")

	cases := []struct {
		nombre string
		det    dto.DetallePedidoRequest
		kind   apierror.Kind
	}{
		{"producto inexistente", dto.DetallePedidoRequest{ProductoID: uuid.NewString(), Cantidad: 1}, apierror.KindReferenceInvalid},
		{"producto inactivo", dto.DetallePedidoRequest{ProductoID: inactivo.ID.String(), Cantidad: 1}, apierror.KindReferenceInvalid},
		{"presentación de otro producto", dto.DetallePedidoRequest{ProductoID: activo.ID.String(), PresentacionID: strPtr(presAjena.ID.String()), Cantidad: 1}, apierror.KindReferenceInvalid},
		{"presentación inactiva", dto.DetallePedidoRequest{ProductoID: activo.ID.String(), PresentacionID: strPtr(presInactiva.ID.String()), Cantidad: 1}, apierror.KindReferenceInvalid},
		{"presentación inexistente", dto.DetallePedidoRequest{ProductoID: activo.ID.String(), PresentacionID: strPtr(uuid.NewString()), Cantidad: 1}, apierror.KindReferenceInvalid},
		{"cantidad cero", dto.DetallePedidoRequest{ProductoID: activo.ID.String(), Cantidad: 0}, apierror.KindValidation},
		{"precio negativo", dto.DetallePedidoRequest{ProductoID: activo.ID.String(), Cantidad: 1, PrecioUnitario: &negativo}, apierror.KindValidation},
	}
	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := f.svc.Crear(ctx, dto.CrearPedidoRequest{Detalles: []dto.DetallePedidoRequest{tc.det}})
			require.Error(t, err)
			assert.Equal(t, tc.kind, apierror.KindOf(err))
		})
	}

	// Ningún intento fallido publicó nada ni dejó pedidos a medias.
	assert.Empty(t, f.publisher.topics())
	assert.Empty(t, f.pedidos.pedidos)
}

func TestCrearPedidoClienteInexistente(t *testing.T) {
	f := newPedidoFixture()
	prod := f.nuevoProducto(t, "Sopa", true)

	_, err := f.svc.Crear(context.Background(), dto.CrearPedidoRequest{
		ClienteID: strPtr(uuid.NewString()),
		Detalles:  []dto.DetallePedidoRequest{{ProductoID: prod.ID.String(), Cantidad: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindReferenceInvalid, apierror.KindOf(err))
}

func TestCrearPedidoClienteInactivo(t *testing.T) {
	f := newPedidoFixture()
	ctx := context.Background()
	prod := f.nuevoProducto(t, "Sopa", true)

	cliente := &model.Cliente{Nombre: "Ana López", Activo: true}
	require.NoError(t, f.clientes.Crear(ctx, cliente))
	require.NoError(t, f.clientes.Desactivar(ctx, cliente.ID))

	_, err := f.svc.Crear(ctx, dto.CrearPedidoRequest{
		ClienteID: strPtr(cliente.ID.String()),
		Detalles:  []dto.DetallePedidoRequest{{ProductoID: prod.ID.String(), Cantidad: 1}},
	})
	require.Error(t, err, "un cliente dado de baja no puede encabezar pedidos nuevos")
	assert.Equal(t, apierror.KindReferenceInvalid, apierror.KindOf(err))
	assert.Empty(t, f.pedidos.pedidos)
}

func TestCrearPedidoValidaUsuario(t *testing.T) {
	f := newPedidoFixture()
	ctx := context.Background()
	prod := f.nuevoProducto(t, "Sopa", true)

	inactivo := &model.Usuario{Username: "mesero2", Nombre: "Luis Gómez", Rol: "mesero", Activo: false}
	require.NoError(t, f.usuarios.Crear(ctx, inactivo))

	cases := []struct {
		nombre    string
		usuarioID string
	}{
		{"usuario inexistente", uuid.NewString()},
		{"usuario inactivo", inactivo.ID.String()},
	}
	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := f.svc.Crear(ctx, dto.CrearPedidoRequest{
				UsuarioID: strPtr(tc.usuarioID),
				Detalles:  []dto.DetallePedidoRequest{{ProductoID: prod.ID.String(), Cantidad: 1}},
			})
			require.Error(t, err)
			assert.Equal(t, apierror.KindReferenceInvalid, apierror.KindOf(err))
		})
	}
	assert.Empty(t, f.pedidos.pedidos)

	// Un mesero activo sí queda registrado en el pedido.
	activo := &model.Usuario{Username: "mesero1", Nombre: "Juan Pérez", Rol: "mesero", Activo: true}
	require.NoError(t, f.usuarios.Crear(ctx, activo))
	resp, err := f.svc.Crear(ctx, dto.CrearPedidoRequest{
		UsuarioID: strPtr(activo.ID.String()),
		Detalles:  []dto.DetallePedidoRequest{{ProductoID: prod.ID.String(), Cantidad: 1}},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.UsuarioID)
	assert.Equal(t, activo.ID.String(), *resp.UsuarioID)
}

func crearPedidoSimple(t *testing.T, f *pedidoFixture) *dto.PedidoResponse {
	t.Helper()
	prod := f.nuevoProducto(t, "Hamburguesa", true)
	precio := dec("75.00")
	resp, err := f.svc.Crear(context.Background(), dto.CrearPedidoRequest{
		Detalles: []dto.DetallePedidoRequest{{ProductoID: prod.ID.String(), Cantidad: 1, PrecioUnitario: &precio}},
	})
	require.NoError(t, err)
	return resp
}

func TestActualizarEstadoAceptaCualquierValorDelEnum(t *testing.T) {
	f := newPedidoFixture()
	pedido := crearPedidoSimple(t, f)
	id := uuid.MustParse(pedido.ID)
	ctx := context.Background()

	// Avance normal y retroceso: cocina mueve el pedido con libertad.
	for _, estado := range []string{model.EstadoEnPreparacion, model.EstadoListo, model.EstadoEnPreparacion, model.EstadoEntregado} {
		resp, err := f.svc.ActualizarEstado(ctx, id, estado)
		require.NoError(t, err)
		assert.Equal(t, estado, resp.Estado)
	}

	// Cada cambio publicó el par anterior→nuevo.
	f.publisher.mu.Lock()
	defer f.publisher.mu.Unlock()
	require.Len(t, f.publisher.events, 5) // 1 creado + 4 cambios
	cambio, ok := f.publisher.events[1].Payload.(notify.EstadoCambiadoPayload)
	require.True(t, ok)
	assert.Equal(t, model.EstadoPendiente, cambio.EstadoAnterior)
	assert.Equal(t, model.EstadoEnPreparacion, cambio.EstadoNuevo)
}

func TestActualizarEstadoDesconocido(t *testing.T) {
	f := newPedidoFixture()
	pedido := crearPedidoSimple(t, f)

	_, err := f.svc.ActualizarEstado(context.Background(), uuid.MustParse(pedido.ID), "volando")
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestCancelarPedido(t *testing.T) {
	f := newPedidoFixture()
	pedido := crearPedidoSimple(t, f)
	id := uuid.MustParse(pedido.ID)
	ctx := context.Background()

	resp, err := f.svc.Cancelar(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoCancelado, resp.Estado)
	assert.Contains(t, f.publisher.topics(), notify.TopicPedidoCancelado)

	// Cancelar dos veces es conflicto, no idempotente silencioso.
	_, err = f.svc.Cancelar(ctx, id)
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
	assert.EqualError(t, err, "el pedido ya está cancelado")
}

func TestCancelarPedidoEntregado(t *testing.T) {
	f := newPedidoFixture()
	pedido := crearPedidoSimple(t, f)
	id := uuid.MustParse(pedido.ID)
	ctx := context.Background()

	_, err := f.svc.ActualizarEstado(ctx, id, model.EstadoEntregado)
	require.NoError(t, err)

	_, err = f.svc.Cancelar(ctx, id)
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
	assert.EqualError(t, err, "no se puede cancelar un pedido entregado")
}

func TestNotificacionCaidaNoFallaElPedido(t *testing.T) {
	f := newPedidoFixture()
	f.publisher.fail = true
	prod := f.nuevoProducto(t, "Ensalada", true)

	resp, err := f.svc.Crear(context.Background(), dto.CrearPedidoRequest{
		Detalles: []dto.DetallePedidoRequest{{ProductoID: prod.ID.String(), Cantidad: 1}},
	})
	require.NoError(t, err, "un sink caído jamás falla la creación del pedido")
	require.NotNil(t, resp)

	_, err = f.svc.Cancelar(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
}

func TestObtenerYListarPedidos(t *testing.T) {
	f := newPedidoFixture()
	pedido := crearPedidoSimple(t, f)

	got, err := f.svc.Obtener(context.Background(), uuid.MustParse(pedido.ID))
	require.NoError(t, err)
	assert.Equal(t, pedido.ID, got.ID)
	assert.Equal(t, "Hamburguesa", got.Detalles[0].Producto)

	_, err = f.svc.Obtener(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))

	lista, err := f.svc.Listar(context.Background(), dto.PedidoFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, lista.Total)
	assert.Equal(t, 1, lista.Page)

	vacia, err := f.svc.Listar(context.Background(), dto.PedidoFilter{Estado: model.EstadoCancelado})
	require.NoError(t, err)
	assert.EqualValues(t, 0, vacia.Total)
}
