package router

import (
	"time"

	"coopelec/internal/config"
	"coopelec/internal/handler"
	"coopelec/internal/middleware"
	"coopelec/internal/repository"
	"coopelec/internal/service"
	"coopelec/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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
	socioRepo := repository.NewSocioRepository(db)
	cuentaRepo := repository.NewCuentaRepository(db)
	facturaRepo := repository.NewFacturaRepository(db)
	reclamoRepo := repository.NewReclamoRepository(db)
	ordenRepo := repository.NewOrdenRepository(db)
	cuadrillaRepo := repository.NewCuadrillaRepository(db)
	empleadoRepo := repository.NewEmpleadoRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	catalogoRepo := repository.NewCatalogoRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	socioSvc := service.NewSocioService(socioRepo)
	cuentaSvc := service.NewCuentaService(cuentaRepo, socioRepo)
	facturaSvc := service.NewFacturaService(facturaRepo, cuentaRepo, dispatcher, rdb, cfg)
	reclamoSvc := service.NewReclamoService(reclamoRepo, ordenRepo, cuentaRepo)
	ordenSvc := service.NewOrdenService(ordenRepo, reclamoRepo, cuadrillaRepo, dispatcher)
	cuadrillaSvc := service.NewCuadrillaService(cuadrillaRepo, empleadoRepo)
	materialSvc := service.NewMaterialService(materialRepo, ordenRepo)
	deudaSvc := service.NewDeudaService(cuentaRepo, facturaRepo, rdb)
	catalogoSvc := service.NewCatalogoService(catalogoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	sociosH := handler.NewSociosHandler(socioSvc, cuentaSvc)
	clientesH := handler.NewClientesHandler(cuentaSvc, facturaSvc, reclamoSvc)
	facturacionH := handler.NewFacturacionHandler(facturaSvc)
	reclamosH := handler.NewReclamosHandler(reclamoSvc)
	itinerarioH := handler.NewItinerarioHandler(ordenSvc)
	operariosH := handler.NewOperariosHandler(ordenSvc, materialSvc)
	cuadrillasH := handler.NewCuadrillasHandler(cuadrillaSvc)
	empleadosH := handler.NewEmpleadosHandler(cuadrillaSvc)
	materialesH := handler.NewMaterialesHandler(materialSvc)
	catalogosH := handler.NewCatalogosHandler(catalogoSvc)
	deudaH := handler.NewConsultaDeudaHandler(deudaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Debt lookup by account number — no auth required, tighter per-IP limit
	r.GET("/v1/deuda/:numeroCuenta", middleware.RateLimiter(30, time.Minute), deudaH.GetDeudaPorCuenta)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Catalogs — any authenticated user (the web forms need them)
		v1.GET("/catalogos/servicios", catalogosH.Servicios)
		v1.GET("/catalogos/tipos-reclamo", catalogosH.TiposReclamo)
		v1.GET("/catalogos/prioridades", catalogosH.Prioridades)

		// Member self-service — socio only
		clientes := v1.Group("/clientes", middleware.RequireRole("socio"))
		{
			clientes.GET("/cuentas", clientesH.MisCuentas)
			clientes.GET("/facturas", clientesH.MisFacturas)
			clientes.POST("/facturas/:id/pagar", clientesH.PagarFactura)
			clientes.GET("/facturas/:id/pdf", facturacionH.DescargarPDF)
			clientes.POST("/reclamos", clientesH.CrearReclamo)
			clientes.GET("/reclamos", clientesH.MisReclamos)
			clientes.GET("/reclamos/:id", clientesH.ObtenerReclamo)
		}

		// Field employees — operario claims, completes and loads usage
		operarios := v1.Group("/operarios", middleware.RequireRole("operario", "supervisor"))
		{
			operarios.GET("/ordenes", operariosH.MisOrdenes)
			operarios.POST("/ordenes/:id/tomar", operariosH.Tomar)
			operarios.POST("/ordenes/:id/finalizar", operariosH.Finalizar)
			operarios.POST("/ordenes/:id/materiales", operariosH.RegistrarUso)
			operarios.POST("/lecturas", sociosH.RegistrarLectura)
		}

		// Dispatch — supervisor or administrador
		itinerario := v1.Group("/itinerario", middleware.RequireRole("supervisor", "administrador"))
		{
			itinerario.GET("/pendientes", itinerarioH.Pendientes)
			itinerario.POST("/asignar", itinerarioH.Asignar)
			itinerario.DELETE("/ordenes/:id/asignacion", itinerarioH.Desasignar)
			itinerario.GET("/cuadrillas/:id", itinerarioH.PorCuadrilla)
			itinerario.GET("/ordenes/:id", itinerarioH.Obtener)
			itinerario.DELETE("/ordenes/:id", itinerarioH.Cancelar)
		}

		// Complaint back office — staff view over every complaint
		reclamos := v1.Group("/reclamos", middleware.RequireRole("supervisor", "administrador"))
		{
			reclamos.GET("", reclamosH.Listar)
			reclamos.GET("/:id", reclamosH.Obtener)
			reclamos.POST("", reclamosH.CrearPresencial)
		}

		// Crews and employees
		cuadrillas := v1.Group("/cuadrillas", middleware.RequireRole("supervisor", "administrador"))
		{
			cuadrillas.POST("", cuadrillasH.Crear)
			cuadrillas.GET("", cuadrillasH.Listar)
			cuadrillas.GET("/:id", cuadrillasH.Obtener)
			cuadrillas.PUT("/:id", cuadrillasH.Actualizar)
			cuadrillas.DELETE("/:id", cuadrillasH.Desactivar)
			cuadrillas.POST("/:id/miembros", cuadrillasH.AgregarMiembro)
			cuadrillas.DELETE("/:id/miembros/:empleadoId", cuadrillasH.QuitarMiembro)
		}

		empleados := v1.Group("/empleados", middleware.RequireRole("administrador"))
		{
			empleados.POST("", empleadosH.Crear)
			empleados.GET("", empleadosH.Listar)
			empleados.DELETE("/:id", empleadosH.Desactivar)
		}

		// Members and accounts — administrador only
		socios := v1.Group("/socios", middleware.RequireRole("administrador"))
		{
			socios.POST("", sociosH.Crear)
			socios.GET("", sociosH.Listar)
			socios.GET("/:id", sociosH.Obtener)
			socios.PUT("/:id", sociosH.Actualizar)
			socios.DELETE("/:id", sociosH.Eliminar)
			socios.GET("/:id/cuentas", sociosH.CuentasDeSocio)
		}
		v1.POST("/cuentas", middleware.RequireRole("administrador"), sociosH.CrearCuenta)
		v1.POST("/lecturas", middleware.RequireRole("administrador", "supervisor"), sociosH.RegistrarLectura)

		// Billing — emission is administrador-only; reads and payments also
		// serve the counter (supervisor)
		fact := v1.Group("/facturacion")
		{
			fact.POST("/emitir", middleware.RequireRole("administrador"), facturacionH.EmitirPeriodo)
			fact.GET("/facturas", middleware.RequireRole("supervisor", "administrador"), facturacionH.Listar)
			fact.POST("/facturas/:id/pagar", middleware.RequireRole("supervisor", "administrador"), facturacionH.RegistrarPago)
			fact.GET("/facturas/:id/pdf", middleware.RequireRole("supervisor", "administrador"), facturacionH.DescargarPDF)
		}

		// Warehouse
		materiales := v1.Group("/materiales", middleware.RequireRole("supervisor", "administrador"))
		{
			materiales.POST("", middleware.RequireRole("administrador"), materialesH.Crear)
			materiales.GET("", materialesH.Listar)
			materiales.GET("/alertas", materialesH.AlertasStock)
			materiales.GET("/:id", materialesH.Obtener)
			materiales.PATCH("/:id/stock", materialesH.AjustarStock)
			materiales.DELETE("/:id", middleware.RequireRole("administrador"), materialesH.Desactivar)
		}
		v1.GET("/ordenes/:id/materiales", middleware.RequireRole("supervisor", "administrador"), materialesH.UsosPorOrden)

		usuarios := v1.Group("/usuarios", middleware.RequireRole("administrador"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
