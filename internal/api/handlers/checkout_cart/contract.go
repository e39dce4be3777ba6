package checkout_cart

import (
	"context"

	checkoutCart "github.com/m04kA/SMC-BarberService/internal/usecase/checkout_cart"
)

type CheckoutCartUseCase interface {
	Execute(ctx context.Context, req *checkoutCart.Request) (*checkoutCart.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
