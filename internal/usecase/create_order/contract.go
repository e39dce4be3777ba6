package create_order

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/integrations/notifier"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

// AppointmentRepository интерфейс репозитория визитов
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	ListBusy(ctx context.Context, staffIDs []int64, from, to time.Time) ([]domain.BusyInterval, error)
}

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	Exists(ctx context.Context, branchID int64) (bool, error)
	GetHoursWithFallback(ctx context.Context, branchID int64, weekday int) (*domain.OperatingHoursRule, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetServicesByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Service, error)
	GetProductsByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Product, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	ClientExists(ctx context.Context, userID int64) error
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	Notify(ctx context.Context, notification notifier.Notification) error
}

// Metrics бизнес-метрики
type Metrics interface {
	IncOrderCreated(kind string)
	IncSlotConflict(source string)
	IncNotificationFailed(event string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
