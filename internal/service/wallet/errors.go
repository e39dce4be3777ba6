package wallet

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = fmt.Errorf("wallet: staff not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда мастер запрашивает чужой кошелек
	ErrAccessDenied = fmt.Errorf("wallet: access denied: %w", domain.ErrAuthorization)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("wallet: invalid input: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("wallet: internal error")
)
