package cart

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или недоступна в филиале
	ErrServiceNotFound = fmt.Errorf("cart: service not found: %w", domain.ErrNotFound)

	// ErrProductNotFound возвращается, когда товар не найден или недоступен в филиале
	ErrProductNotFound = fmt.Errorf("cart: product not found: %w", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("cart: internal error")
)
