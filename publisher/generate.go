package main

import (
	"fmt"
	"order_lookup/internal/model"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

func randomRussianPhone(f *gofakeit.Faker) string {
	operatorCode := f.Number(900, 999)
	numberPart := fmt.Sprintf("%07d", f.Number(0, 9999999))
	return fmt.Sprintf("+7%d%s", operatorCode, numberPart)
}

// generateRandomOrder создает случайный заказ с непустым order_uid
func generateRandomOrder(f *gofakeit.Faker) model.Order {
	orderUID := uuid.NewString()
	trackNumber := "WBILM" + f.Password(false, true, false, false, false, 10)

	itemsCount := f.Number(1, 5)
	items := make([]model.Item, 0, itemsCount)
	for i := 0; i < itemsCount; i++ {
		items = append(items, model.Item{
			ChrtID:      uint32(f.Number(1000000, 9999999)),
			TrackNumber: trackNumber,
			Price:       uint32(f.Number(100, 5000)),
			Rid:         f.Password(true, false, true, false, false, 21),
			Name:        f.ProductName(),
			Sale:        uint32(f.Number(0, 70)),
			Size:        "0",
			TotalPrice:  uint32(f.Number(100, 5000)),
			NmID:        uint32(f.Number(1000000, 9999999)),
			Brand:       f.Company(),
			Status:      202,
		})
	}

	return model.Order{
		OrderUID:    orderUID,
		TrackNumber: trackNumber,
		Entry:       "WBIL",
		Delivery: model.Delivery{
			Name:    f.Name(),
			Phone:   randomRussianPhone(f),
			Zip:     f.Zip(),
			City:    f.City(),
			Address: f.Street(),
			Region:  f.State(),
			Email:   f.Email(),
		},
		Payment: model.Payment{
			Transaction:  orderUID,
			RequestID:    "",
			Currency:     f.CurrencyShort(),
			Provider:     "wbpay",
			Amount:       uint32(f.Number(1000, 10000)),
			PaymentDt:    uint64(time.Now().Unix()),
			Bank:         f.Company(),
			DeliveryCost: uint32(f.Number(300, 1500)),
			GoodsTotal:   uint32(f.Number(500, 8000)),
			CustomFee:    0,
		},
		Items:             items,
		Locale:            "en",
		InternalSignature: "",
		CustomerID:        "test",
		DeliveryService:   "meest",
		Shardkey:          fmt.Sprintf("%d", f.Number(1, 10)),
		SmID:              uint32(f.Number(1, 100)),
		DateCreated:       time.Now().UTC().Format(time.RFC3339),
		OofShard:          fmt.Sprintf("%d", f.Number(1, 10)),
	}
}
