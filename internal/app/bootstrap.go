package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/xmlorders/config"
	cachemem "github.com/Gunvolt24/xmlorders/internal/cache/memory"
	"github.com/Gunvolt24/xmlorders/internal/kafka"
	"github.com/Gunvolt24/xmlorders/internal/ports"
	"github.com/Gunvolt24/xmlorders/internal/repo/postgres"
	rest "github.com/Gunvolt24/xmlorders/internal/transport/http"
	"github.com/Gunvolt24/xmlorders/internal/usecase"
	"github.com/Gunvolt24/xmlorders/pkg/logger"
	"github.com/Gunvolt24/xmlorders/pkg/metrics"
	"github.com/Gunvolt24/xmlorders/pkg/telemetry"
)

// Components — собранные зависимости, общие для команд CLI.
type Components struct {
	Logger   ports.Logger
	Store    *postgres.Store
	Importer *usecase.ImportService
	Reader   *usecase.OrderReadService
}

// App — HTTP-сервер чтения импортированных заказов.
type App struct {
	Logger          ports.Logger // логгер
	HTTPServer      *http.Server // HTTP-сервер
	gracefulTimeout time.Duration
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// NewLogger — логгер по конфигурации (dev/prod).
func NewLogger(cfg *config.Config) (*logger.ZapLogger, func() error, error) {
	return logger.NewZapLogger(cfg.Logger.IsProd)
}

// Bootstrap — собирает зависимости и возвращает их вместе с функцией очистки.
// Для сухого прогона хранилище не нужно: см. BootstrapOffline.
func Bootstrap(ctx context.Context, cfg *config.Config, logg ports.Logger) (*Components, Cleanup, error) {
	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Пул подключений Postgres
	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		return nil, func() {}, err
	}

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := setupTracing(ctx, cfg, logg)

	// Оповещения об импорте: Kafka или no-op.
	var (
		notifier  ports.ImportNotifier = usecase.NopNotifier{}
		publisher *kafka.Publisher
	)
	if cfg.Kafka.Enabled {
		publisher = kafka.NewPublisher(&kafka.PublisherConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			WriteTimeout: cfg.Kafka.WriteTimeout,
		}, logg)
		notifier = publisher
		logg.Infof(ctx, "kafka notifications enabled topic=%s brokers=%v", cfg.Kafka.Topic, cfg.Kafka.Brokers)
	}

	store := postgres.NewStore(pool, logg)
	orderCache := cachemem.NewLRUCacheTTL(cfg.Cache.Capacity, cfg.Cache.TTL)

	c := &Components{
		Logger:   logg,
		Store:    store,
		Importer: usecase.NewImportService(store, notifier, logg),
		Reader:   usecase.NewOrderReadService(store, orderCache, logg),
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if publisher != nil {
			if err := publisher.Close(); err != nil {
				logg.Warnf(ctx, "kafka publisher close error: %v", err)
			}
		}
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		pool.Close()
	}

	return c, cleanup, nil
}

// BootstrapOffline — только разбор и проверка файла, без БД и брокера.
func BootstrapOffline(logg ports.Logger) *usecase.ImportService {
	return usecase.NewImportService(nil, nil, logg)
}

func setupTracing(ctx context.Context, cfg *config.Config, logg ports.Logger) func(context.Context) error {
	noop := func(context.Context) error { return nil }
	if !cfg.Tracing.Enabled {
		return noop
	}
	setup, err := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
	if err != nil {
		logg.Warnf(ctx, "failed to setup tracing: %v", err)
		return noop
	}
	logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
		cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
	return setup
}

// NewApp — HTTP-сервер поверх сервиса чтения.
func NewApp(ctx context.Context, cfg *config.Config, c *Components) *App {
	applyGinMode(ctx, cfg.HTTP.GinMode, c.Logger)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	handler := rest.NewHandler(c.Reader, c.Logger, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(handler, otelServiceName)

	return &App{
		Logger: c.Logger,
		HTTPServer: &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           router,
			ReadTimeout:       cfg.HTTP.ReadTimeout,
			WriteTimeout:      cfg.HTTP.WriteTimeout,
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
			IdleTimeout:       cfg.HTTP.IdleTimeout,
		},
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}
}

// Run — запускает HTTP-сервер; ждёт отмены контекста или ошибки и останавливает его.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или ошибки сервера.
	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case runErr = <-errCh:
		a.Logger.Warnf(ctx, "http server error: %v", runErr)
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	a.Logger.Infof(ctx, "service stopped")
	return runErr
}
