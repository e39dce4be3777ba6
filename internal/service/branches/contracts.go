package branches

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	Exists(ctx context.Context, branchID int64) (bool, error)
	ListHours(ctx context.Context, branchID int64) ([]domain.OperatingHoursRule, error)
	UpsertHours(ctx context.Context, rule *domain.OperatingHoursRule) (*domain.OperatingHoursRule, error)
	DeleteHours(ctx context.Context, branchID int64, weekday *int) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
