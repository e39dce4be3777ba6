package create_order

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	// ErrUnauthorized возвращается, когда вызывающий не может оформить заказ на этого клиента или в этом филиале
	ErrUnauthorized = fmt.Errorf("create_order: caller is not allowed to place this order: %w", domain.ErrAuthorization)

	// ErrSlotUnavailable возвращается, когда мастер уже занят в выбранное время
	ErrSlotUnavailable = fmt.Errorf("create_order: slot is no longer available: %w", domain.ErrConflict)

	// ErrInvalidItem возвращается, когда услуга или товар не найдены, неактивны или из другого филиала
	ErrInvalidItem = fmt.Errorf("create_order: invalid item: %w", domain.ErrNotFound)

	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = fmt.Errorf("create_order: branch not found: %w", domain.ErrNotFound)

	// ErrStaffNotFound возвращается, когда мастер не найден или не работает в филиале
	ErrStaffNotFound = fmt.Errorf("create_order: staff not found: %w", domain.ErrNotFound)

	// ErrClientNotFound возвращается, когда клиент не найден в UserService
	ErrClientNotFound = fmt.Errorf("create_order: client not found: %w", domain.ErrNotFound)

	// ErrOutsideHours возвращается, когда время визита выходит за часы работы филиала
	ErrOutsideHours = fmt.Errorf("create_order: appointment is outside branch hours: %w", domain.ErrValidation)

	// ErrValidationFailed возвращается при некорректных входных данных
	ErrValidationFailed = fmt.Errorf("create_order: validation failed: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_order: internal error")
)
