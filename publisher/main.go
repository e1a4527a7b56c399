package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"order_lookup/internal/config"
	"order_lookup/internal/logger"
	"order_lookup/internal/model"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
)

const autoInterval = 10 * time.Second

// messageWriter - часть kafka.Writer, которой пользуется издатель
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// runAutoMode отправляет случайный заказ каждые autoInterval до отмены ctx
func runAutoMode(ctx context.Context, writer messageWriter, topic string) {
	slog.Info("Starting auto-generation mode", "interval", autoInterval.String())
	f := gofakeit.New(0)

	ticker := time.NewTicker(autoInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		order := generateRandomOrder(f)
		if err := publishOrder(ctx, writer, topic, order); err != nil {
			slog.Error("Failed to send message to Kafka", "error", err, "order_uid", order.OrderUID)
			continue
		}
		slog.Info("Message sent successfully", "order_uid", order.OrderUID)
	}
}

// runFileMode отправляет заказ, прочитанный из JSON-файла
func runFileMode(ctx context.Context, writer messageWriter, topic, filePath string) error {
	slog.Info("Starting file mode", "file", filePath)

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	var order model.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return fmt.Errorf("failed to decode order from %s: %w", filePath, err)
	}
	if err := validator.New().Struct(order); err != nil {
		return fmt.Errorf("invalid order in %s: %w", filePath, err)
	}

	if err := publishOrder(ctx, writer, topic, order); err != nil {
		return err
	}
	slog.Info("Message sent successfully", "order_uid", order.OrderUID)
	return nil
}

// publishOrder - общая функция для отправки заказа в Kafka, ключ сообщения - order_uid
func publishOrder(ctx context.Context, writer messageWriter, topic string, order model.Order) error {
	value, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	slog.Info("Sending message", "topic", topic, "order_uid", order.OrderUID)
	if err := writer.WriteMessages(sendCtx, kafka.Message{
		Key:   []byte(order.OrderUID),
		Value: value,
	}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

func main() {
	slog.SetDefault(logger.NewSlogLogger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if !cfg.ConsumerEnabled() {
		slog.Error("KAFKA_BROKERS is not set")
		os.Exit(1)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Select publisher mode:")
	fmt.Println("1: Auto-generate and send a random message every 10 seconds")
	fmt.Println("2: Send a message from a specified file")
	fmt.Print("Enter mode (1 or 2): ")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Scan()
	mode := strings.TrimSpace(scanner.Text())

	switch mode {
	case "1":
		runAutoMode(ctx, writer, cfg.KafkaTopic)
	case "2":
		if len(os.Args) < 2 {
			slog.Error("Usage in file mode: publisher <json_file_name>")
			os.Exit(1)
		}
		if err := runFileMode(ctx, writer, cfg.KafkaTopic, os.Args[1]); err != nil {
			slog.Error("File mode failed", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Invalid mode selected. Please enter '1' or '2'.")
		os.Exit(1)
	}
}
