package checkout_cart

import (
	"github.com/m04kA/SMC-BarberService/internal/cart"
	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// Request модель запроса на оформление корзины
type Request struct {
	Principal domain.Principal
	ClientID  *int64 // Для мастера и администратора: на кого оформляются заказы
}

// Response итог оформления: по одному результату на каждый запрос корзины
type Response struct {
	Results   []cart.Result
	Succeeded int
	Failed    int
}
