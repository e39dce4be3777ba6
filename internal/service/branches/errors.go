package branches

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = fmt.Errorf("branches: branch not found: %w", domain.ErrNotFound)

	// ErrHoursNotFound возвращается, когда удаляемого правила нет
	ErrHoursNotFound = fmt.Errorf("branches: hours rule not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда изменять часы работы пытается не администратор
	ErrAccessDenied = fmt.Errorf("branches: access denied: %w", domain.ErrAuthorization)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("branches: invalid input: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("branches: internal error")
)
