package create_order

import (
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// Settings настройки создания заказов из конфигурации
type Settings struct {
	Location *time.Location // Часовой пояс филиалов, в нем проверяются часы работы
}

// Request модель запроса на создание заказа
type Request struct {
	Principal domain.Principal          // Кто оформляет заказ
	Order     domain.CreateOrderRequest // Что оформляется
}

// Response модель ответа с созданным заказом
type Response struct {
	Order *domain.Order
}
