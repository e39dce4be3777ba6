package complete_order

import (
	"context"

	completeOrder "github.com/m04kA/SMC-BarberService/internal/usecase/complete_order"
)

type CompleteOrderUseCase interface {
	Execute(ctx context.Context, req *completeOrder.Request) (*completeOrder.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
