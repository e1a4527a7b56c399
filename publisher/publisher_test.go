package main

import (
	"context"
	"encoding/json"
	"errors"
	"order_lookup/internal/model"
	"order_lookup/internal/seed"
	"os"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestGenerateRandomOrder(t *testing.T) {
	f := gofakeit.New(42)
	v := validator.New()

	for i := 0; i < 20; i++ {
		order := generateRandomOrder(f)

		require.NoError(t, v.Struct(order), "Сгенерированный заказ должен проходить валидацию")
		_, err := uuid.Parse(order.OrderUID)
		require.NoError(t, err, "order_uid должен быть UUID")
		require.Equal(t, order.OrderUID, order.Payment.Transaction)
		require.NotEmpty(t, order.Items)
		for _, item := range order.Items {
			require.Equal(t, order.TrackNumber, item.TrackNumber)
		}
	}
}

func TestPublishOrder_KeyIsOrderUID(t *testing.T) {
	w := &recordingWriter{}

	err := publishOrder(context.Background(), w, "orders", seed.TestOrder())
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	require.Equal(t, seed.OrderUID, string(w.msgs[0].Key))

	var decoded model.Order
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	require.Equal(t, seed.TestOrder(), decoded)
}

func TestPublishOrder_WriterError(t *testing.T) {
	w := &recordingWriter{err: errors.New("no brokers")}

	err := publishOrder(context.Background(), w, "orders", seed.TestOrder())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no brokers")
}

func TestRunFileMode(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "order.json")
	data, err := json.Marshal(seed.TestOrder())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(valid, data, 0o600))

	noUID := filepath.Join(dir, "no_uid.json")
	require.NoError(t, os.WriteFile(noUID, []byte(`{"track_number":"X"}`), 0o600))

	t.Run("Valid file", func(t *testing.T) {
		w := &recordingWriter{}
		require.NoError(t, runFileMode(context.Background(), w, "orders", valid))
		require.Len(t, w.msgs, 1)
	})

	t.Run("Missing order_uid", func(t *testing.T) {
		w := &recordingWriter{}
		require.Error(t, runFileMode(context.Background(), w, "orders", noUID))
		require.Empty(t, w.msgs)
	})

	t.Run("Missing file", func(t *testing.T) {
		w := &recordingWriter{}
		require.Error(t, runFileMode(context.Background(), w, "orders", filepath.Join(dir, "nope.json")))
	})
}
