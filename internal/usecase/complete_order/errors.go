package complete_order

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = fmt.Errorf("complete_order: order not found: %w", domain.ErrNotFound)

	// ErrUnauthorized возвращается, когда завершать заказ пытается клиент или мастер другого филиала
	ErrUnauthorized = fmt.Errorf("complete_order: caller is not allowed to complete this order: %w", domain.ErrAuthorization)

	// ErrInvalidState возвращается для отмененного заказа
	ErrInvalidState = fmt.Errorf("complete_order: order cannot be completed: %w", domain.ErrState)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("complete_order: invalid input: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_order: internal error")
)
