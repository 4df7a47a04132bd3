package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/erp/procurement/internal/application/catalog"
	deliveryapp "github.com/erp/procurement/internal/application/delivery"
	identityapp "github.com/erp/procurement/internal/application/identity"
	inventoryapp "github.com/erp/procurement/internal/application/inventory"
	printingapp "github.com/erp/procurement/internal/application/printing"
	procurementapp "github.com/erp/procurement/internal/application/procurement"
	"github.com/erp/procurement/internal/infrastructure/auth"
	"github.com/erp/procurement/internal/infrastructure/config"
	"github.com/erp/procurement/internal/infrastructure/logger"
	"github.com/erp/procurement/internal/infrastructure/persistence"
	"github.com/erp/procurement/internal/interfaces/http/handler"
	"github.com/erp/procurement/internal/interfaces/http/middleware"
	"github.com/erp/procurement/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting procurement backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories outside the workflow transaction scope
	userRepo := persistence.NewGormUserRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	shelfRepo := persistence.NewGormShelfRepository(db.DB)

	// Workflow repositories are resolved per-transaction by the scope
	scope := persistence.NewGormTransactionScope(db.DB)

	// Infrastructure services
	jwtService := auth.NewJWTService(cfg.JWT)

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	userService := identityapp.NewUserService(userRepo)
	itemService := catalogapp.NewItemService(itemRepo)
	locationService := catalogapp.NewLocationService(locationRepo)
	warehouseService := inventoryapp.NewWarehouseService(warehouseRepo)
	shelfService := inventoryapp.NewShelfService(shelfRepo, warehouseRepo)
	allocator := inventoryapp.NewShelfAllocator()
	mrService := procurementapp.NewMaterialRequestService(scope)
	poService := procurementapp.NewPurchaseOrderService(scope, allocator)
	receiptService := procurementapp.NewReceiptService(scope)
	doService := deliveryapp.NewDeliveryOrderService(scope)
	printService := printingapp.NewPrintService(scope)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	itemHandler := handler.NewItemHandler(itemService)
	locationHandler := handler.NewLocationHandler(locationService)
	warehouseHandler := handler.NewWarehouseHandler(warehouseService)
	shelfHandler := handler.NewShelfHandler(shelfService)
	mrHandler := handler.NewMaterialRequestHandler(mrService)
	poHandler := handler.NewPurchaseOrderHandler(poService)
	receiptHandler := handler.NewReceiptHandler(receiptService)
	doHandler := handler.NewDeliveryOrderHandler(doService)
	printHandler := handler.NewPrintHandler(printService)

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.RequestLogger(log))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
		},
	}))

	// Identity domain - public auth routes
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)

	// Identity domain - user management, admins only
	identityRoutes := router.NewDomainGroup("identity", "/identity")
	identityRoutes.Use(middleware.RequireRole("admin"))
	identityRoutes.GET("/users", userHandler.List)
	identityRoutes.GET("/users/:id", userHandler.Get)
	identityRoutes.PUT("/users/:id/role", userHandler.UpdateRole)
	identityRoutes.DELETE("/users/:id", userHandler.Delete)

	// Catalog domain (items, locations)
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/items", itemHandler.Create)
	catalogRoutes.GET("/items", itemHandler.List)
	catalogRoutes.GET("/items/:id", itemHandler.Get)
	catalogRoutes.PUT("/items/:id", itemHandler.Update)
	catalogRoutes.DELETE("/items/:id", itemHandler.Delete)

	catalogRoutes.POST("/locations", locationHandler.Create)
	catalogRoutes.GET("/locations", locationHandler.List)
	catalogRoutes.GET("/locations/:id", locationHandler.Get)
	catalogRoutes.PUT("/locations/:id", locationHandler.Update)
	catalogRoutes.DELETE("/locations/:id", locationHandler.Delete)

	// Inventory domain (warehouses, shelves)
	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.POST("/warehouses", warehouseHandler.Create)
	inventoryRoutes.GET("/warehouses", warehouseHandler.List)
	inventoryRoutes.GET("/warehouses/:id", warehouseHandler.Get)
	inventoryRoutes.PUT("/warehouses/:id", warehouseHandler.Update)
	inventoryRoutes.DELETE("/warehouses/:id", warehouseHandler.Delete)

	inventoryRoutes.POST("/shelves", shelfHandler.Create)
	inventoryRoutes.GET("/shelves", shelfHandler.List)
	inventoryRoutes.GET("/shelves/:id", shelfHandler.Get)
	inventoryRoutes.PUT("/shelves/:id", shelfHandler.Update)
	inventoryRoutes.DELETE("/shelves/:id", shelfHandler.Delete)

	// Procurement domain (material requests, purchase orders, receipts)
	procurementRoutes := router.NewDomainGroup("procurement", "/procurement")
	procurementRoutes.POST("/material-requests", mrHandler.Create)
	procurementRoutes.GET("/material-requests", mrHandler.List)
	procurementRoutes.GET("/material-requests/:id", mrHandler.Get)
	procurementRoutes.PUT("/material-requests/:id", mrHandler.Update)
	procurementRoutes.DELETE("/material-requests/:id", mrHandler.Delete)

	procurementRoutes.POST("/purchase-orders", poHandler.Create)
	procurementRoutes.GET("/purchase-orders", poHandler.List)
	procurementRoutes.GET("/purchase-orders/mine", poHandler.ListMine)
	procurementRoutes.GET("/purchase-orders/:id", poHandler.Get)
	procurementRoutes.PUT("/purchase-orders/:id", poHandler.Update)
	procurementRoutes.DELETE("/purchase-orders/:id", poHandler.Delete)
	procurementRoutes.POST("/purchase-orders/:id/approve", poHandler.Approve)
	procurementRoutes.GET("/purchase-orders/:id/approvals", poHandler.Approvals)

	procurementRoutes.GET("/receipts", receiptHandler.List)
	procurementRoutes.GET("/receipts/:id", receiptHandler.Get)
	procurementRoutes.DELETE("/receipts/:id", receiptHandler.Delete)
	procurementRoutes.PATCH("/receipts/items/:itemId/status", receiptHandler.UpdateItemStatus)

	// Delivery domain
	deliveryRoutes := router.NewDomainGroup("delivery", "/delivery")
	deliveryRoutes.POST("/delivery-orders", doHandler.Create)
	deliveryRoutes.GET("/delivery-orders", doHandler.List)
	deliveryRoutes.GET("/delivery-orders/:id", doHandler.Get)
	deliveryRoutes.DELETE("/delivery-orders/:id", doHandler.Delete)
	deliveryRoutes.POST("/delivery-orders/:id/approve", doHandler.Approve)
	deliveryRoutes.GET("/delivery-orders/:id/approvals", doHandler.Approvals)

	// Print projections
	printRoutes := router.NewDomainGroup("print", "/print")
	printRoutes.GET("/material-requests/:id", printHandler.MaterialRequest)
	printRoutes.GET("/purchase-orders/:id", printHandler.PurchaseOrder)
	printRoutes.GET("/receipts/:id", printHandler.Receipt)
	printRoutes.GET("/delivery-orders/:id", printHandler.DeliveryOrder)

	r.Register(authRoutes).
		Register(identityRoutes).
		Register(catalogRoutes).
		Register(inventoryRoutes).
		Register(procurementRoutes).
		Register(deliveryRoutes).
		Register(printRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}

func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}
