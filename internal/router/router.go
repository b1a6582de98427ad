package router

import (
	"time"

	"github.com/Fpidal/recetas-tero-sub001/internal/config"
	"github.com/Fpidal/recetas-tero-sub001/internal/handler"
	"github.com/Fpidal/recetas-tero-sub001/internal/middleware"
	"github.com/Fpidal/recetas-tero-sub001/internal/repository"
	"github.com/Fpidal/recetas-tero-sub001/internal/service"
	"github.com/Fpidal/recetas-tero-sub001/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
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
	insumoRepo := repository.NewInsumoRepository(db)
	precioRepo := repository.NewPrecioRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	recetaRepo := repository.NewRecetaRepository(db)
	platoRepo := repository.NewPlatoRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	ordenRepo := repository.NewOrdenCompraRepository(db)
	facturaRepo := repository.NewFacturaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	costeoSvc := service.NewCosteoService(insumoRepo, precioRepo, recetaRepo, platoRepo, menuRepo, rdb)
	insumoSvc := service.NewInsumoService(insumoRepo, costeoSvc)
	precioSvc := service.NewPrecioService(precioRepo, costeoSvc)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	recetaSvc := service.NewRecetaService(recetaRepo, costeoSvc)
	platoSvc := service.NewPlatoService(platoRepo, costeoSvc)
	menuSvc := service.NewMenuService(menuRepo)
	// A nil dispatcher (tests, tooling) must stay a nil interface.
	var cola service.Encolador
	if dispatcher != nil {
		cola = dispatcher
	}
	ordenSvc := service.NewOrdenService(ordenRepo, facturaRepo, cola)
	facturaSvc := service.NewFacturaService(facturaRepo, ordenRepo)
	reporteSvc := service.NewReporteService(costeoSvc, insumoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	insumosH := handler.NewInsumosHandler(insumoSvc, precioSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	recetasH := handler.NewRecetasHandler(recetaSvc, costeoSvc)
	platosH := handler.NewPlatosHandler(platoSvc, costeoSvc)
	menusH := handler.NewMenusHandler(menuSvc, costeoSvc)
	ordenesH := handler.NewOrdenesHandler(ordenSvc)
	facturasH := handler.NewFacturasHandler(facturaSvc)
	cartaH := handler.NewCartaHandler(costeoSvc, reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		insumos := v1.Group("/insumos")
		{
			insumos.POST("", insumosH.Crear)
			insumos.GET("", insumosH.Listar)
			insumos.GET("/:id", insumosH.ObtenerPorID)
			insumos.PUT("/:id", insumosH.Actualizar)
			insumos.DELETE("/:id", insumosH.Desactivar)
			insumos.PATCH("/:id/reactivar", insumosH.Reactivar)
			insumos.POST("/:id/precios", insumosH.RegistrarPrecio)
			insumos.GET("/:id/precios", insumosH.HistorialPrecios)
		}

		prov := v1.Group("/proveedores")
		{
			prov.POST("", proveedoresH.Crear)
			prov.GET("", proveedoresH.Listar)
			prov.GET("/:id", proveedoresH.ObtenerPorID)
			prov.PUT("/:id", proveedoresH.Actualizar)
			prov.DELETE("/:id", proveedoresH.Eliminar)
		}

		recetas := v1.Group("/recetas")
		{
			recetas.POST("", recetasH.Crear)
			recetas.GET("", recetasH.Listar)
			recetas.GET("/:id", recetasH.ObtenerPorID)
			recetas.PUT("/:id", recetasH.Actualizar)
			recetas.DELETE("/:id", recetasH.Eliminar)
			recetas.GET("/:id/costo", recetasH.Costo)
		}

		platos := v1.Group("/platos")
		{
			platos.POST("", platosH.Crear)
			platos.GET("", platosH.Listar)
			platos.GET("/:id", platosH.ObtenerPorID)
			platos.PUT("/:id", platosH.Actualizar)
			platos.DELETE("/:id", platosH.Eliminar)
			platos.GET("/:id/costo", platosH.Costo)
		}

		ejecutivos := v1.Group("/menus/ejecutivos")
		{
			ejecutivos.POST("", menusH.CrearEjecutivo)
			ejecutivos.GET("", menusH.ListarEjecutivos)
			ejecutivos.GET("/:id", menusH.ObtenerEjecutivo)
			ejecutivos.DELETE("/:id", menusH.EliminarEjecutivo)
			ejecutivos.GET("/:id/costo", menusH.CostoEjecutivo)
		}

		especiales := v1.Group("/menus/especiales")
		{
			especiales.POST("", menusH.CrearEspecial)
			especiales.GET("", menusH.ListarEspeciales)
			especiales.GET("/:id", menusH.ObtenerEspecial)
			especiales.DELETE("/:id", menusH.EliminarEspecial)
			especiales.GET("/:id/costo", menusH.CostoEspecial)
		}

		v1.GET("/carta/food-cost", cartaH.FoodCost)
		v1.GET("/reportes/food-cost.xlsx", cartaH.FoodCostXLSX)

		ordenes := v1.Group("/ordenes")
		{
			ordenes.POST("", ordenesH.Crear)
			ordenes.GET("", ordenesH.Listar)
			ordenes.GET("/:id", ordenesH.Obtener)
			ordenes.PUT("/:id", ordenesH.Actualizar)
			ordenes.DELETE("/:id", ordenesH.Anular)
			ordenes.POST("/:id/emitir", ordenesH.Emitir)
			ordenes.GET("/:id/conciliacion", ordenesH.Conciliacion)
			ordenes.POST("/:id/orden-faltante", ordenesH.GenerarOrdenFaltante)
		}

		facturas := v1.Group("/facturas")
		{
			facturas.POST("", facturasH.Crear)
			facturas.GET("", facturasH.Listar)
			facturas.GET("/:id", facturasH.Obtener)
			facturas.DELETE("/:id", facturasH.Anular)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
