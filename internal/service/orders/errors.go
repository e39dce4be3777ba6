package orders

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = fmt.Errorf("orders: order not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = fmt.Errorf("orders: access denied: %w", domain.ErrAuthorization)

	// ErrCannotConfirm возвращается, когда заказ не может быть подтвержден
	ErrCannotConfirm = fmt.Errorf("orders: order cannot be confirmed: %w", domain.ErrState)

	// ErrCannotCancel возвращается, когда заказ не может быть отменен
	ErrCannotCancel = fmt.Errorf("orders: order cannot be cancelled: %w", domain.ErrState)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("orders: invalid input: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("orders: internal error")
)
