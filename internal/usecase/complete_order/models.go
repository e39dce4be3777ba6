package complete_order

import "github.com/m04kA/SMC-BarberService/internal/domain"

// Settings настройки расчетов из конфигурации
type Settings struct {
	CommissionBasisPoints *int // Ставка мастера, если у него не задана своя
}

// Request модель запроса на завершение заказа
type Request struct {
	Principal domain.Principal
	OrderID   int64
}

// Response модель ответа: заказ и зафиксированный расчет
type Response struct {
	Order      *domain.Order
	Settlement *domain.Settlement
	Replayed   bool // true, если заказ уже был завершен ранее
}
