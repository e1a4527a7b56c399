package cache

import "order_lookup/internal/model"

// OrderCache определяет интерфейс хранилища заказов
type OrderCache interface {
	Insert(uid string, order model.Order)
	Get(uid string) (model.Order, bool)
}
