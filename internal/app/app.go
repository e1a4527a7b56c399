package app

//импорт пакетов и библиотек
import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"order_lookup/internal/broker"
	"order_lookup/internal/cache"
	"order_lookup/internal/config"
	"order_lookup/internal/metrics"
	"order_lookup/internal/seed"
	"order_lookup/internal/server"
	"sync"

	"github.com/go-playground/validator/v10"
)

// основная структура нашего приложения, которая содержит все зависимости
type App struct {
	cfg           *config.Config
	store         *cache.Store
	consumer      *broker.MessageConsumer
	httpServer    *http.Server
	metricsServer *http.Server
}

// Создание и инициализация нового экземпляра App
func New(cfg *config.Config) *App {
	// 1. хранилище с тестовым заказом
	store := cache.NewStore()
	store.Insert(seed.OrderUID, seed.TestOrder())
	slog.Info("The test order has been added to the cache", "order_uid", seed.OrderUID)

	// 2. метрики
	appMetrics := metrics.NewMetrics()
	appMetrics.TrackStoreSize(store.Len)

	// 3. HTTP сервер
	mainServer := server.NewServer(store, appMetrics)
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mainServer.Router,
	}

	a := &App{
		cfg:        cfg,
		store:      store,
		httpServer: srv,
	}

	// 4. сервер метрик
	if cfg.MetricsEnabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", appMetrics.Handler())
		a.metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: metricsMux,
		}
	}

	// 5. консьюмер включается только при заданных брокерах
	if cfg.ConsumerEnabled() {
		a.consumer = broker.NewMessageConsumer(
			cfg.KafkaBrokers,
			cfg.KafkaTopic,
			cfg.KafkaGroupID,
			store,
			appMetrics,
			validator.New(),
		)
	}

	return a
}

// Run открывает сокеты и обслуживает запросы до отмены ctx.
// Ошибка привязки к адресу возвращается сразу.
func (a *App) Run(ctx context.Context) error {
	httpListener, err := net.Listen("tcp", a.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind HTTP server to %s: %w", a.httpServer.Addr, err)
	}

	var metricsListener net.Listener
	if a.metricsServer != nil {
		metricsListener, err = net.Listen("tcp", a.metricsServer.Addr)
		if err != nil {
			httpListener.Close()
			return fmt.Errorf("failed to bind metrics server to %s: %w", a.metricsServer.Addr, err)
		}
	}

	mainCtx, mainCancel := context.WithCancel(ctx)
	defer mainCancel()

	serveErr := make(chan error, 2)

	go func() {
		slog.Info("Starting HTTP server", "address", httpListener.Addr().String())
		if err := a.httpServer.Serve(httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("HTTP server: %w", err)
			mainCancel()
		}
	}()

	if metricsListener != nil {
		go func() {
			slog.Info("Starting metrics server", "address", metricsListener.Addr().String())
			if err := a.metricsServer.Serve(metricsListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- fmt.Errorf("metrics server: %w", err)
				mainCancel()
			}
		}()
	}

	var consumerDone chan struct{}
	if a.consumer != nil {
		consumerDone = make(chan struct{})
		go func() {
			defer close(consumerDone)
			slog.Info("Starting Kafka consumer loop...")
			a.consumer.StartConsuming(mainCtx)
			slog.Info("Kafka consumer loop stopped.")
		}()
	}

	slog.Info("Service is running. Press Ctrl+C to exit.")
	<-mainCtx.Done()

	var runErr error
	select {
	case runErr = <-serveErr:
		slog.Error("Shutting down due to server error", "error", runErr)
	default:
		slog.Info("Shutting down gracefully...")
	}

	if consumerDone != nil {
		<-consumerDone
	}
	a.shutdown()

	return runErr
}

// shutdown останавливает все компоненты приложения
func (a *App) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
		}
	}()

	if a.metricsServer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.metricsServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("Metrics server shutdown error", "error", err)
			}
		}()
	}

	if a.consumer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.consumer.Close()
		}()
	}

	wg.Wait()
}
