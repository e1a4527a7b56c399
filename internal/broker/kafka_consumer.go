package broker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"order_lookup/internal/cache"
	"order_lookup/internal/metrics"
	"order_lookup/internal/model"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
)

// messageReader - часть kafka.Reader, которой пользуется консьюмер
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// MessageConsumer читает заказы из Kafka и кладет их в хранилище
type MessageConsumer struct {
	reader    messageReader
	store     cache.OrderCache
	metrics   *metrics.Metrics
	validator *validator.Validate
	backoff   *backoff.ExponentialBackOff
}

// NewMessageConsumer создает новый экземпляр консьюмера со всеми зависимостями
func NewMessageConsumer(
	brokers []string,
	topic string,
	groupID string,
	store cache.OrderCache,
	metrics *metrics.Metrics,
	validator *validator.Validate,
) *MessageConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: 0,
	})

	return newMessageConsumer(r, store, metrics, validator)
}

func newMessageConsumer(
	r messageReader,
	store cache.OrderCache,
	metrics *metrics.Metrics,
	validator *validator.Validate,
) *MessageConsumer {
	b := backoff.NewExponentialBackOff()
	b.MaxInterval = 30 * time.Second

	return &MessageConsumer{
		reader:    r,
		store:     store,
		metrics:   metrics,
		validator: validator,
		backoff:   b,
	}
}

// StartConsuming запускает главный цикл чтения и обработки сообщений.
// Возвращается только после отмены ctx.
func (mc *MessageConsumer) StartConsuming(ctx context.Context) {
	slog.Info("Kafka consumer started consuming messages")
	for {
		msg, err := mc.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				slog.Info("Kafka consumer context cancelled, stopping...")
				return
			}
			slog.Error("Error while receiving message from Kafka", "error", err)
			if !mc.wait(ctx) {
				return
			}
			continue
		}

		mc.metrics.MessagesConsumed.Inc()
		mc.handleMessage(msg)

		// сообщение уже учтено в хранилище, коммит только сдвигает offset
		if err := mc.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return
			}
			slog.Error("Failed to commit kafka message", "error", err, "offset", msg.Offset)
			if !mc.wait(ctx) {
				return
			}
			continue
		}
		mc.backoff.Reset()
	}
}

// handleMessage разбирает сообщение и кладет заказ в хранилище.
// Некорректные сообщения логируются и пропускаются.
func (mc *MessageConsumer) handleMessage(msg kafka.Message) {
	var order model.Order
	if err := json.Unmarshal(msg.Value, &order); err != nil {
		mc.metrics.InvalidMessages.Inc()
		slog.Warn("Failed to unmarshal message. Message ignored.", "error", err, "offset", msg.Offset)
		return
	}

	if err := mc.validator.Struct(order); err != nil {
		mc.metrics.InvalidMessages.Inc()
		slog.Warn("Invalid data received. Message ignored.", "error", err.Error(), "order_uid", order.OrderUID)
		return
	}

	mc.store.Insert(order.OrderUID, order)
	slog.Info("Order added to the cache", "order_uid", order.OrderUID)
}

// wait выдерживает паузу перед следующей попыткой. false - контекст отменен.
func (mc *MessageConsumer) wait(ctx context.Context) bool {
	timer := time.NewTimer(mc.backoff.NextBackOff())
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// Close закрывает соединение с Kafka
func (mc *MessageConsumer) Close() {
	slog.Info("Closing kafka reader...")
	if err := mc.reader.Close(); err != nil {
		slog.Error("Failed to close kafka reader", "error", err)
	}
}
