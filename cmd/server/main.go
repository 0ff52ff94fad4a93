package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	cartapp "github.com/respawnadega/storefront/internal/application/cart"
	catalogapp "github.com/respawnadega/storefront/internal/application/catalog"
	checkoutapp "github.com/respawnadega/storefront/internal/application/checkout"
	"github.com/respawnadega/storefront/internal/domain/cart"
	"github.com/respawnadega/storefront/internal/domain/catalog"
	"github.com/respawnadega/storefront/internal/domain/checkout"
	"github.com/respawnadega/storefront/internal/infrastructure/cache"
	"github.com/respawnadega/storefront/internal/infrastructure/catalogsource"
	"github.com/respawnadega/storefront/internal/infrastructure/config"
	"github.com/respawnadega/storefront/internal/infrastructure/logger"
	"github.com/respawnadega/storefront/internal/infrastructure/messaging"
	"github.com/respawnadega/storefront/internal/infrastructure/persistence"
	"github.com/respawnadega/storefront/internal/infrastructure/telemetry"
	"github.com/respawnadega/storefront/internal/interfaces/http/handler"
	"github.com/respawnadega/storefront/internal/interfaces/http/middleware"
	"github.com/respawnadega/storefront/internal/interfaces/http/router"
	"go.uber.org/zap"
)

//	@title			Respawn Adega Storefront API
//	@version		1.0
//	@description	Catalog browsing, session carts and WhatsApp checkout for the Respawn Adega drinks shop

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	tel, err := telemetry.Setup(context.Background(), telemetryConfig(cfg), log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()
	log = tel.Bridge(log)

	log.Info("Starting Respawn Adega storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", handler.Version),
	)

	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register request validators", zap.Error(err))
	}

	storage, storageHealth, closeStorage, err := openStorage(cfg, log)
	if err != nil {
		log.Fatal("Failed to open cart storage", zap.Error(err))
	}
	defer func() {
		if err := closeStorage(); err != nil {
			log.Error("Error closing cart storage", zap.Error(err))
		}
	}()

	primary, err := openCatalog(cfg, log)
	if err != nil {
		log.Fatal("Failed to configure catalog source", zap.Error(err))
	}

	business := checkout.BusinessInfo{
		Name:           cfg.Business.Name,
		WhatsAppNumber: cfg.Business.WhatsAppNumber,
		Address:        cfg.Business.Address,
		Hours:          cfg.Business.Hours,
	}
	if err := business.Validate(); err != nil {
		log.Fatal("Invalid business configuration", zap.Error(err))
	}

	catalogService := catalogapp.NewService(primary, catalogsource.NewStaticSource(), log)
	cartService := cartapp.NewService(storage, catalogService, log,
		cartapp.WithRequireInStock(cfg.Cart.RequireInStock),
		cartapp.WithMaxSessions(cfg.Cart.MaxSessions),
	)
	checkoutService := checkoutapp.NewService(cartService,
		checkout.NewOrderFormatter(business),
		messaging.NewWhatsAppDispatcher(log),
		log,
	)

	metrics, err := telemetry.NewMetrics(tel.Meter(telemetry.InstrumentationName))
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}
	catalogService.SetMetrics(metrics)
	cartService.SetMetrics(metrics)
	checkoutService.SetMetrics(metrics)

	systemOpts := append([]handler.SystemOption{handler.WithDrivers(cfg.Storage.Driver, cfg.Catalog.Source)}, storageHealth...)

	engine := newEngine(cfg, log, tel)
	router.Storefront(engine, router.Handlers{
		Catalog:  handler.NewCatalogHandler(catalogService),
		Cart:     handler.NewCartHandler(cartService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		System:   handler.NewSystemHandler(cfg.App.Name, cfg.App.Env, systemOpts...),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// openStorage returns the cart storage for the configured driver, its
// health report options and a close function
func openStorage(cfg *config.Config, log *zap.Logger) (cart.Storage, []handler.SystemOption, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Driver {
	case config.StorageSQLite, config.StoragePostgres:
		gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
		db, err := persistence.NewDatabase(cfg, gormLog)
		if err != nil {
			return nil, nil, noop, err
		}
		if err := telemetry.InstrumentGorm(db.DB, telemetry.DBTracingConfig{
			Enabled: cfg.Telemetry.Enabled && cfg.Telemetry.DBTracing,
			DBName:  cfg.Storage.Driver,
		}); err != nil {
			_ = db.Close()
			return nil, nil, noop, err
		}
		log.Info("Cart storage connected", zap.String("driver", cfg.Storage.Driver))
		health := []handler.SystemOption{
			handler.WithHealthCheck("storage", handler.HealthCheckerFunc(func(context.Context) error { return db.Ping() })),
			handler.WithHealthDetails("database", func() (any, error) { return db.Stats() }),
		}
		return persistence.NewGormCartStorage(db.DB), health, db.Close, nil

	case config.StorageRedis:
		factory := cache.NewCartStorageFactory(cfg.Redis, cfg.Storage.TTL,
			cache.WithLogger(log),
			cache.WithInMemoryFallback(!cfg.IsProduction()),
		)
		storage, err := factory.CreateStorage()
		if err != nil {
			return nil, nil, noop, err
		}
		var health []handler.SystemOption
		if pinger, ok := storage.(handler.HealthChecker); ok {
			health = append(health, handler.WithHealthCheck("storage", pinger))
		}
		closeFn := noop
		if closer, ok := storage.(io.Closer); ok {
			closeFn = closer.Close
		}
		return storage, health, closeFn, nil

	default:
		log.Warn("Using in-memory cart storage. Carts will not survive a restart.")
		return cache.NewInMemoryCartStorage(), nil, noop, nil
	}
}

// openCatalog returns the primary catalog source. A nil source means the
// built-in catalog answers every query.
func openCatalog(cfg *config.Config, log *zap.Logger) (catalog.Source, error) {
	if cfg.Catalog.Source != config.CatalogCMS {
		log.Info("Serving the built-in catalog")
		return nil, nil
	}

	client, err := catalogsource.NewCMSClient(catalogsource.CMSConfig{
		BaseURL:                cfg.Catalog.CMS.BaseURL,
		AccessToken:            cfg.Catalog.CMS.AccessToken,
		Timeout:                cfg.Catalog.CMS.Timeout,
		MaxConsecutiveFailures: cfg.Catalog.CMS.BreakerMaxFailures,
		OpenTimeout:            cfg.Catalog.CMS.BreakerOpenTimeout,
		HalfOpenRequests:       cfg.Catalog.CMS.BreakerHalfOpenReqs,
	}, log)
	if err != nil {
		return nil, err
	}
	log.Info("Serving the CMS catalog with built-in fallback", zap.String("base_url", cfg.Catalog.CMS.BaseURL))
	return catalogsource.NewCMSSource(client, log), nil
}

// telemetryConfig maps the application config onto the telemetry providers
func telemetryConfig(cfg *config.Config) telemetry.Config {
	return telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		Insecure:          cfg.Telemetry.Insecure,
		ServiceName:       cfg.App.Name,
		ServiceVersion:    handler.Version,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		MetricsInterval:   cfg.Telemetry.MetricsInterval,
		LogsEnabled:       cfg.Telemetry.LogsEnabled,
		Profiling: telemetry.ProfilingConfig{
			Enabled:         cfg.Telemetry.ProfilingEnabled,
			ServerAddress:   cfg.Telemetry.ProfilingServer,
			ApplicationName: cfg.App.Name,
			SpanProfiles:    cfg.Telemetry.SpanProfiles,
		},
	}
}

// newEngine builds the gin engine with the global middleware chain
func newEngine(cfg *config.Config, log *zap.Logger, tel *telemetry.Provider) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
		_ = engine.SetTrustedProxies(nil)
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	secCfg := middleware.DefaultSecurityConfig()
	secCfg.HSTSEnabled = cfg.IsProduction()

	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
	)
	if tel.Enabled() {
		tracingCfg := middleware.DefaultTracingConfig()
		tracingCfg.ServiceName = cfg.App.Name
		engine.Use(
			middleware.TracingWithConfig(tracingCfg),
			middleware.SpanEnricher(),
			middleware.HTTPMetrics(tel.Meter("http.server")),
		)
	}
	engine.Use(
		logger.GinMiddleware(log),
		middleware.SecureWithConfig(secCfg),
		middleware.CORSWithConfig(corsCfg),
	)
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitBurst)
		engine.Use(middleware.RateLimit(limiter))
	}
	engine.Use(
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.Timeout(cfg.HTTP.RequestTimeout),
	)
	return engine
}
