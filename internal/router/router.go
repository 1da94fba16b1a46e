package router

import (
	"time"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/config"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/handler"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/infra"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/middleware"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/notify"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/repository"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/service"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, notifyCB *infra.CircuitBreaker, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	presentacionRepo := repository.NewPresentacionRepository(db)
	insumoRepo := repository.NewInsumoRepository(db)
	recetaRepo := repository.NewRecetaRepository(db)
	inventarioRepo := repository.NewInventarioRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)

	// ── Notification sink ────────────────────────────────────────────────────
	publisher := notify.NewRedisPublisher(rdb, notifyCB)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	productoSvc := service.NewProductoService(productoRepo, categoriaRepo)
	presentacionSvc := service.NewPresentacionService(presentacionRepo, productoRepo)
	insumoSvc := service.NewInsumoService(insumoRepo)
	recetaSvc := service.NewRecetaService(recetaRepo, presentacionRepo, insumoRepo)
	inventarioSvc := service.NewInventarioService(inventarioRepo, insumoRepo, recetaRepo, pedidoRepo, usuarioRepo, dispatcher)
	pedidoSvc := service.NewPedidoService(pedidoRepo, productoRepo, presentacionRepo, clienteRepo, usuarioRepo, publisher)
	clienteSvc := service.NewClienteService(clienteRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	presentacionesH := handler.NewPresentacionesHandler(presentacionSvc)
	insumosH := handler.NewInsumosHandler(insumoSvc)
	recetasH := handler.NewRecetasHandler(recetaSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc, pedidoRepo, cfg.PDFStoragePath)
	clientesH := handler.NewClientesHandler(clienteSvc)
	consultaH := handler.NewConsultaPreciosHandler(presentacionRepo, rdb, cfg.PrecioCacheTTL)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, notifyCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required (menu boards poll it)
	r.GET("/v1/precio/:id", consultaH.GetPrecio)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: administrador, mesero, cocina — declared per-endpoint
		lectura := middleware.RequireRole("administrador", "mesero", "cocina")
		admin := middleware.RequireRole("administrador")

		// Categorías — todos leen, administrador escribe
		v1.GET("/categorias", lectura, categoriasH.Listar)
		v1.GET("/categorias/:id", lectura, categoriasH.Obtener)
		categorias := v1.Group("/categorias", admin)
		{
			categorias.POST("", categoriasH.Crear)
			categorias.PUT("/:id", categoriasH.Actualizar)
			categorias.DELETE("/:id", categoriasH.Desactivar)
			categorias.PATCH("/:id/reactivar", categoriasH.Reactivar)
			categorias.DELETE("/:id/permanente", categoriasH.EliminarPermanente)
		}

		// Productos
		v1.GET("/productos", lectura, productosH.Listar)
		v1.GET("/productos/:id", lectura, productosH.Obtener)
		v1.GET("/productos/:id/presentaciones", lectura, presentacionesH.ListarPorProducto)
		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
			prods.DELETE("/:id/permanente", productosH.EliminarPermanente)
		}

		// Presentaciones
		v1.GET("/presentaciones/:id", lectura, presentacionesH.Obtener)
		v1.GET("/presentaciones/:id/receta", lectura, recetasH.ListarPorPresentacion)
		v1.GET("/presentaciones/:id/costo", middleware.RequireRole("administrador", "cocina"), recetasH.CostoProduccion)
		pres := v1.Group("/presentaciones", admin)
		{
			pres.POST("", presentacionesH.Crear)
			pres.PUT("/:id", presentacionesH.Actualizar)
			pres.DELETE("/:id", presentacionesH.Desactivar)
			pres.PATCH("/:id/reactivar", presentacionesH.Reactivar)
			pres.DELETE("/:id/permanente", presentacionesH.EliminarPermanente)
		}

		// Insumos — cocina y administrador
		v1.GET("/insumos", middleware.RequireRole("administrador", "cocina"), insumosH.Listar)
		v1.GET("/insumos/:id", middleware.RequireRole("administrador", "cocina"), insumosH.Obtener)
		v1.GET("/insumos/:id/stock", middleware.RequireRole("administrador", "cocina"), inventarioH.ObtenerStock)
		insumos := v1.Group("/insumos", admin)
		{
			insumos.POST("", insumosH.Crear)
			insumos.PUT("/:id", insumosH.Actualizar)
			insumos.DELETE("/:id", insumosH.Desactivar)
			insumos.PATCH("/:id/reactivar", insumosH.Reactivar)
		}

		// Recetas
		recetas := v1.Group("/recetas", admin)
		{
			recetas.POST("", recetasH.CrearVinculo)
			recetas.PUT("/:id", recetasH.Actualizar)
			recetas.DELETE("/:id", recetasH.Eliminar)
			recetas.POST("/duplicar", recetasH.Duplicar)
		}

		// Inventario — cocina registra, administrador corrige
		inv := v1.Group("/inventario", middleware.RequireRole("administrador", "cocina"))
		{
			inv.POST("/movimientos", inventarioH.RegistrarMovimiento)
			inv.GET("/movimientos", inventarioH.ListarMovimientos)
			inv.DELETE("/movimientos/:id", admin, inventarioH.EliminarMovimiento)
			inv.POST("/consumos", inventarioH.RegistrarConsumo)
			inv.GET("/stock", inventarioH.ListarStock)
			inv.GET("/alertas", inventarioH.AlertasStock)
		}

		// Pedidos — mesero crea y cancela, cocina cambia estados
		pedidos := v1.Group("/pedidos", lectura)
		{
			pedidos.POST("", pedidosH.Crear)
			pedidos.GET("", pedidosH.Listar)
			pedidos.GET("/:id", pedidosH.Obtener)
			pedidos.PUT("/:id/estado", pedidosH.ActualizarEstado)
			pedidos.DELETE("/:id", pedidosH.Cancelar)
			pedidos.GET("/:id/ticket", pedidosH.Ticket)
		}

		// Clientes
		clientes := v1.Group("/clientes", middleware.RequireRole("administrador", "mesero"))
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.Obtener)
			clientes.PUT("/:id", clientesH.Actualizar)
			clientes.DELETE("/:id", clientesH.Desactivar)
			clientes.PATCH("/:id/reactivar", clientesH.Reactivar)
		}

		// Usuarios — administrador only
		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.PUT("/:id", authH.ActualizarUsuario)
			usuarios.DELETE("/:id", authH.DesactivarUsuario)
			usuarios.PATCH("/:id/reactivar", authH.ReactivarUsuario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
