package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	commerceadapter "github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/commerce"
	mongoadapter "github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/mongo"
	natsadapter "github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/nats"
	redisadapter "github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/redis"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/i18n"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/tracer"
	grpcserver "github.com/Abdurahmanit/GroupProject/storefront-service/internal/port/grpc"
	httpserver "github.com/Abdurahmanit/GroupProject/storefront-service/internal/port/http"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/service"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type App struct {
	cfg            *config.Config
	log            logger.Logger
	httpServer     *httpserver.Server
	grpcServer     *grpcserver.Server
	metricsServer  *http.Server
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	natsConn       *nats.Conn
	tracerShutdown func(context.Context) error
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	logCfg := logger.ZapLoggerConfig{
		Level:       cfg.Logger.Level,
		Encoding:    cfg.Logger.Encoding,
		TimeFormat:  cfg.Logger.TimeFormat,
		ServiceName: cfg.ServiceName,
		Env:         cfg.Env,
	}
	appLogger, err := logger.NewZapLogger(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger.Info("Logger initialized")
	appLogger.Infof("Configuration loaded: Env=%s, HTTP Port: %s, GRPC Port: %s", cfg.Env, cfg.HTTPServer.Port, cfg.GRPCServer.Port)

	tracerShutdown, err := tracer.Init(ctx, tracer.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.ServiceName,
		Env:         cfg.Env,
	})
	if err != nil {
		appLogger.Errorf("Failed to initialize tracer: %v", err)
		return nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}

	metricsManager := metrics.NewMetricsManager(cfg.ServiceName)

	appLogger.Info("Initializing MongoDB client...")
	mongoClient, err := mongoadapter.NewClient(ctx, cfg.MongoDB)
	if err != nil {
		appLogger.Errorf("Failed to initialize MongoDB client: %v", err)
		return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
	}
	if err := mongoadapter.EnsureIndexes(ctx, mongoClient, cfg.MongoDB); err != nil {
		appLogger.Warnf("Failed to ensure checkout attempt indexes: %v", err)
	}
	appLogger.Info("MongoDB client initialized successfully")

	appLogger.Info("Initializing Redis client...")
	redisClient, err := redisadapter.NewClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Errorf("Failed to initialize Redis client: %v", err)
		return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
	}
	appLogger.Info("Redis client initialized successfully")

	var events service.CartEvents
	var natsConn *nats.Conn
	if cfg.NATS.URL != "" {
		natsConn, err = natsadapter.NewConnection(cfg.NATS, appLogger)
		if err != nil {
			appLogger.Warnf("NATS unavailable, cart events will not be published: %v", err)
		} else {
			publisher, errPub := natsadapter.NewNATSPublisher(natsConn)
			if errPub != nil {
				return nil, fmt.Errorf("failed to create NATS publisher: %w", errPub)
			}
			events = natsadapter.NewCartEventPublisher(publisher)
			appLogger.Info("NATS publisher initialized")
		}
	}

	commerceClient, err := commerceadapter.NewClient(commerceadapter.ClientConfig{
		BaseURL:        cfg.Commerce.BaseURL,
		APIToken:       cfg.Commerce.APIToken,
		RequestTimeout: cfg.Commerce.RequestTimeout,
	}, appLogger, metricsManager.BackendError)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize commerce client: %w", err)
	}
	appLogger.Infof("Commerce backend client initialized for %s", cfg.Commerce.BaseURL)

	membershipCache := redisadapter.NewMembershipCache(redisClient)
	checkoutGuard := redisadapter.NewCheckoutGuard(redisClient)
	attemptRepo := mongoadapter.NewCheckoutAttemptRepository(mongoClient, cfg.MongoDB)

	cartService := service.NewCartService(commerceClient, commerceClient, events, metricsManager, appLogger)
	checkoutService := service.NewCheckoutService(
		commerceClient,
		commerceClient,
		membershipCache,
		checkoutGuard,
		attemptRepo,
		events,
		metricsManager,
		appLogger,
		service.CheckoutServiceConfig{
			RedirectURL:        cfg.Checkout.RedirectURL,
			LockTTL:            cfg.Checkout.LockTTL,
			MembershipCacheTTL: cfg.MembershipCache.TTL,
		},
	)
	appLogger.Info("Services initialized")

	cartHandler := httpserver.NewCartHandler(cartService, checkoutService, i18n.NewTranslator(cfg.Checkout.DefaultLocale), appLogger)
	router := httpserver.NewRouter(cartHandler, appLogger, metricsManager)
	httpSrv := httpserver.NewServer(appLogger, httpserver.ServerConfig{
		Port:         cfg.HTTPServer.Port,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}, router)
	appLogger.Info("HTTP server instance created")

	grpcSrv := grpcserver.NewServer(
		appLogger,
		cfg.GRPCServer.Port,
		cfg.GRPCServer.TimeoutGraceful,
		cfg.GRPCServer.MaxConnectionIdle,
	)
	appLogger.Info("gRPC health server instance created")

	application := &App{
		cfg:            cfg,
		log:            appLogger,
		httpServer:     httpSrv,
		grpcServer:     grpcSrv,
		metricsServer:  metricsManager.NewServer(cfg.Metrics.Port),
		mongoClient:    mongoClient,
		redisClient:    redisClient,
		natsConn:       natsConn,
		tracerShutdown: tracerShutdown,
	}

	return application, nil
}

func (a *App) Run() {
	a.log.Info("Starting application components...")

	go func() {
		if err := a.httpServer.Start(); err != nil {
			a.log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	go func() {
		if err := a.grpcServer.Start(); err != nil {
			a.log.Fatalf("Failed to start gRPC server: %v", err)
		}
	}()

	if a.metricsServer != nil {
		go func() {
			a.log.Infof("Metrics server is starting on %s", a.metricsServer.Addr)
			if err := a.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				a.log.Errorf("Metrics server failed: %v", err)
			}
		}()
	}
	a.log.Info("Servers started in goroutines")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	a.log.Infof("Received shutdown signal: %v. Shutting down application...", receivedSignal)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.TimeoutGraceful+5*time.Second)
	defer cancel()

	a.grpcServer.SetServing(false)

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Errorf("Error during HTTP server graceful shutdown: %v", err)
	}
	if err := a.grpcServer.Stop(shutdownCtx); err != nil {
		a.log.Errorf("Error during gRPC server graceful shutdown: %v", err)
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(shutdownCtx); err != nil {
			a.log.Errorf("Error stopping metrics server: %v", err)
		}
	}

	a.log.Info("Closing connections...")

	if a.natsConn != nil {
		if err := a.natsConn.Drain(); err != nil {
			a.log.Errorf("Error draining NATS connection: %v", err)
		} else {
			a.log.Info("NATS connection drained")
		}
	}

	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
			a.log.Errorf("Error disconnecting from MongoDB: %v", err)
		} else {
			a.log.Info("MongoDB connection closed successfully")
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Errorf("Error closing Redis client: %v", err)
		} else {
			a.log.Info("Redis client closed successfully")
		}
	}

	if a.tracerShutdown != nil {
		if err := a.tracerShutdown(shutdownCtx); err != nil {
			a.log.Errorf("Error shutting down tracer: %v", err)
		}
	}

	a.log.Info("Application shut down successfully")
	_ = a.log.Sync()
}
