package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	Exists(ctx context.Context, branchID int64) (bool, error)
	// GetHoursWithFallback правило для дня недели, затем правило по умолчанию
	GetHoursWithFallback(ctx context.Context, branchID int64, weekday int) (*domain.OperatingHoursRule, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	ListActiveByBranch(ctx context.Context, branchID int64) ([]domain.Staff, error)
}

// AppointmentRepository интерфейс репозитория визитов
type AppointmentRepository interface {
	ListBusy(ctx context.Context, staffIDs []int64, from, to time.Time) ([]domain.BusyInterval, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
