package wallet

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// WalletRepository интерфейс кошелька мастера
type WalletRepository interface {
	ListByStaff(ctx context.Context, staffID int64, from, to *time.Time) ([]domain.WalletEntry, error)
	Balance(ctx context.Context, staffID int64) (int64, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
