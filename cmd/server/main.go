package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/schoolstore/backend/internal/application/catalog"
	storeapp "github.com/schoolstore/backend/internal/application/store"
	"github.com/schoolstore/backend/internal/infrastructure/auth"
	"github.com/schoolstore/backend/internal/infrastructure/cache"
	"github.com/schoolstore/backend/internal/infrastructure/config"
	"github.com/schoolstore/backend/internal/infrastructure/event"
	"github.com/schoolstore/backend/internal/infrastructure/logger"
	"github.com/schoolstore/backend/internal/infrastructure/persistence"
	"github.com/schoolstore/backend/internal/infrastructure/telemetry"
	"github.com/schoolstore/backend/internal/interfaces/http/handler"
	"github.com/schoolstore/backend/internal/interfaces/http/middleware"
	"github.com/schoolstore/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/schoolstore/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const version = "1.0.0"

//	@title			School Store API
//	@version		1.0
//	@description	Store catalog, packages, orders and settlement for school tenants

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	telemetryCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}

	tp, err := telemetry.NewTracerProvider(ctx, telemetryCfg, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	logsCfg := telemetryCfg
	logsCfg.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled
	lp, err := telemetry.NewLoggerProvider(ctx, logsCfg, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize logger provider", zap.Error(err))
	}

	// Application logger tees into the OTLP log bridge when it is enabled.
	log, err := logger.New(logCfg, lp.ZapCore(cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync(log)

	log.Info("Starting school store backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.Bool("telemetry", cfg.Telemetry.Enabled),
	)

	db, err := persistence.NewDatabaseWithOptions(&cfg.Database, persistence.DatabaseOptions{
		Logger:        log.Named("gorm"),
		LogLevel:      logger.MapGormLogLevel(cfg.Log.Level),
		SlowThreshold: cfg.Telemetry.DBSlowQueryThresh,
		LogFullSQL:    cfg.Telemetry.DBLogFullSQL,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
			Enabled:         true,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			DBName:          cfg.Database.DBName,
		}, log); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected")

	summaryCache, closeCache, err := cache.NewSummaryCache(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize summary cache", zap.Error(err))
	}
	defer func() {
		if err := closeCache(); err != nil {
			log.Error("Error closing summary cache", zap.Error(err))
		}
	}()

	storeMetrics, err := telemetry.NewStoreMetrics(mp.Meter("school-store"))
	if err != nil {
		log.Fatal("Failed to create store metrics", zap.Error(err))
	}

	// Repositories
	itemRepo := persistence.NewGormCatalogItemRepository(db.DB)
	inventoryRepo := persistence.NewGormInventoryRepository(db.DB)
	packageRepo := persistence.NewGormPackageRepository(db.DB)
	orderRepo := persistence.NewGormStoreOrderRepository(db.DB)
	directory := persistence.NewGormStudentDirectory(db.DB)
	txScope := persistence.NewGormStoreTransactionScope(db.DB)

	// Services
	settings := storeapp.Settings{
		LedgerCategoryName: cfg.Store.LedgerCategoryName,
		TransactionPrefix:  cfg.Store.TransactionPrefix,
		AdhocFeeDueDays:    cfg.Store.AdhocFeeDueDays,
		BulkFeeDueDays:     cfg.Store.BulkFeeDueDays,
		SummaryCacheTTL:    cfg.Store.SummaryCacheTTL,
	}
	poster := storeapp.NewLedgerPoster(settings, log, storeMetrics)
	itemService := catalogapp.NewItemService(itemRepo, inventoryRepo, log)
	packageService := catalogapp.NewPackageService(packageRepo, itemRepo, log)
	orderService := storeapp.NewOrderService(orderRepo, itemRepo, directory, txScope, poster, settings, storeMetrics, log)
	settlementService := storeapp.NewSettlementService(orderRepo, txScope, poster, storeMetrics, log)
	fulfillmentService := storeapp.NewFulfillmentService(orderRepo, log)
	assignmentService := storeapp.NewBulkAssignmentService(packageRepo, directory, txScope, settings, storeMetrics, log)
	summaryService := storeapp.NewSalesSummaryService(orderRepo, summaryCache, log)

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))
	if summaryCache != nil {
		eventBus.Subscribe(storeapp.NewSummaryInvalidationHandler(summaryCache, log))
	}
	itemService.SetEventPublisher(eventBus)
	packageService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)
	settlementService.SetEventPublisher(eventBus)
	fulfillmentService.SetEventPublisher(eventBus)
	assignmentService.SetEventPublisher(eventBus)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.Secure(),
		middleware.CORS(corsCfg),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.Tracing(middleware.TracingConfig{ServiceName: cfg.Telemetry.ServiceName, Enabled: tp.IsEnabled()}),
		middleware.SpanErrorMarker(),
	)

	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, db)
	engine.GET("/health", systemHandler.Health)
	engine.GET("/api/v1/health", systemHandler.Health)

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{Enabled: cfg.Swagger.Enabled, AllowedIPs: cfg.Swagger.AllowedIPs}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	jwtCfg := middleware.DefaultJWTConfig(auth.NewJWTService(cfg.JWT), cfg.JWT.Required)
	jwtCfg.Logger = log
	r := router.NewRouter(engine)
	r.Use(
		middleware.JWTAuth(jwtCfg),
		middleware.Identity(),
		middleware.SpanIdentity(),
	)
	r.Register(router.NewStoreGroup(router.StoreHandlers{
		Items:    handler.NewItemHandler(itemService),
		Packages: handler.NewPackageHandler(packageService, assignmentService),
		Orders:   handler.NewOrderHandler(orderService, settlementService, fulfillmentService),
		Reports:  handler.NewReportHandler(summaryService),
	}))
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
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	for name, shutdown := range map[string]func(context.Context) error{
		"tracer": tp.Shutdown,
		"meter":  mp.Shutdown,
		"logger": lp.Shutdown,
	} {
		if err := shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down telemetry provider", zap.String("provider", name), zap.Error(err))
		}
	}

	log.Info("Server exited")
}
