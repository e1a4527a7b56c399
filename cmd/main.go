package main

import (
	"context"
	"log/slog"
	"order_lookup/internal/app"
	"order_lookup/internal/config"
	"order_lookup/internal/logger"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// 1. Инициализация логгера
	slogLogger := logger.NewSlogLogger()
	slog.SetDefault(slogLogger)

	slog.Info("Starting service...")

	// 2. Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 3. Создание экземпляра приложения
	application := app.New(cfg)

	// 4. Запуск приложения до сигнала остановки
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		slog.Error("Service stopped with error", "error", err)
		stop()
		os.Exit(1)
	}

	slog.Info("Service stopped")
}
