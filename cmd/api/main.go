package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gobusters/ectoenv"
	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
	"go.uber.org/zap"

	"github.com/GittyRyan/compass/config"
	"github.com/GittyRyan/compass/internal/handlers"
	"github.com/GittyRyan/compass/pkg/health"
	"github.com/GittyRyan/compass/pkg/httpclient"
	"github.com/GittyRyan/compass/pkg/kafka"
	"github.com/GittyRyan/compass/pkg/middleware"
	"github.com/GittyRyan/compass/pkg/motion"
	"github.com/GittyRyan/compass/pkg/redis"
	"github.com/GittyRyan/compass/pkg/repositories"
	"github.com/GittyRyan/compass/pkg/startup"
	"github.com/GittyRyan/compass/pkg/strategy"
	"github.com/GittyRyan/compass/pkg/tracing"
	"github.com/GittyRyan/compass/pkg/tracing/exporters"
)

func main() {
	// Missing .env is fine outside local development.
	_ = godotenv.Load()

	var cfg config.Config
	if err := ectoenv.BindEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := newZapLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()
	logger := zapadapter.NewZapEctoLogger(zapLogger, nil)

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Error("service exited with error")
		os.Exit(1)
	}
}

func newZapLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.PrettyLogs {
		return zap.NewDevelopment()
	}
	zapCfg := zap.NewProductionConfig()
	if err := zapCfg.Level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		zapCfg.Level = zap.NewAtomicLevel()
	}
	return zapCfg.Build()
}

func run(cfg config.Config, logger ectologger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The motion catalog is static configuration; a broken entry fails boot.
	if err := motion.Validate(); err != nil {
		return fmt.Errorf("motion catalog validation failed: %w", err)
	}

	shutdownTracing, err := setupTracing(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer shutdownTracing()

	redisClient, err := redis.NewClient(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, logger)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	var emitter kafka.Emitter = kafka.NoopEmitter{}
	var producer *kafka.Producer
	if cfg.KafkaEnabled {
		producer = kafka.NewProducer(kafka.ParseConfig(cfg.KafkaBrokers, cfg.KafkaPlanEventsTopic, cfg.KafkaErrorTopic), logger)
		defer producer.Close()
		emitter = producer
	}

	libraryRepo := repositories.NewLibraryRepository(redisClient, cfg.RedisLibraryNamespace, logger)
	libraryLocker := redis.NewLocker(redisClient, "compass:lock:")
	strategyLimiter := redis.NewRateLimiter(redisClient, "compass:ratelimit:")

	strategyHTTP := httpclient.NewClient(httpclient.Config{
		Timeout:         cfg.StrategyTimeout,
		MaxIdleConns:    100,
		IdleConnTimeout: 90 * time.Second,
	}, logger)
	strategyClient := strategy.NewClient(strategyHTTP, cfg.StrategyBaseURL, cfg.StrategySourceTag, logger)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second
	e.Server.WriteTimeout = time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second
	e.Server.IdleTimeout = time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second
	e.Server.MaxHeaderBytes = cfg.MaxHeaderBytes

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
	}))
	e.Use(otelecho.Middleware(cfg.AppName))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(logger))
	e.HTTPErrorHandler = middleware.Error(logger)

	if cfg.AuthEnabled {
		e.Use(middleware.Authentication(logger, cfg.AuthIssuerURL, cfg.AuthClientID))
	}

	checker := health.NewChecker(redisClient.Redis(), cfg.AppName)
	checker.RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	handlers.NewMotionHandler(logger).Register(api.Group("/motions"))
	plans := api.Group("/plans")
	handlers.NewPlanHandler(libraryRepo, libraryLocker, cfg.LibraryLockTTL, emitter, logger).Register(plans)
	handlers.NewStrategyHandler(libraryRepo, strategyClient, strategyLimiter, cfg.StrategyRateLimit, cfg.StrategyRateWindow, emitter, cfg.StrategySourceTag, logger).Register(plans)

	server := &serverDependency{
		e:    e,
		addr: fmt.Sprintf(":%d", cfg.Port),
	}

	boot := startup.New(logger, cfg.StartupMaxAttempts)
	boot.AddDependency(server)

	if err := boot.Start(ctx); err != nil {
		return err
	}
	checker.SetReady(true)
	logger.Infof("%s listening on %s", cfg.AppName, server.addr)

	<-ctx.Done()
	checker.SetReady(false)
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return boot.Stop(shutdownCtx)
}

func setupTracing(ctx context.Context, cfg config.Config) (func(), error) {
	if !cfg.OTLPEnabled {
		// Spans become no-ops but span attributes and trace IDs stay safe
		// to call everywhere.
		tracing.SetTracer(nil)
		return func() {}, nil
	}

	exporter, err := exporters.NewOTLPExporter(ctx, exporters.OTLPConfig{
		Endpoint: cfg.OTLPEndpoint,
		Protocol: cfg.OTLPProtocol,
		Insecure: cfg.OTLPInsecure,
		Timeout:  10 * time.Second,
	})
	if err != nil {
		return nil, err
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(cfg.AppName),
	))
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	tracing.SetTracer(provider.Tracer(cfg.AppName))

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = provider.Shutdown(shutdownCtx)
	}, nil
}

// serverDependency adapts the echo server to the startup lifecycle.
type serverDependency struct {
	e    *echo.Echo
	addr string
}

func (s *serverDependency) GetName() string     { return "http-server" }
func (s *serverDependency) DependsOn() []string { return nil }

func (s *serverDependency) Start(ctx context.Context) error {
	go func() {
		if err := s.e.Start(s.addr); err != nil && err != http.ErrServerClosed {
			s.e.Logger.Fatal(err)
		}
	}()
	return nil
}

func (s *serverDependency) Stop(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
