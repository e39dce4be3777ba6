package complete_order

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/internal/integrations/notifier"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error)
	MarkCompleted(ctx context.Context, id int64, completedAt time.Time) error
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
}

// WalletRepository интерфейс кошелька мастера
type WalletRepository interface {
	Append(ctx context.Context, entry *domain.WalletEntry) (*domain.WalletEntry, error)
}

// LoyaltyRepository интерфейс карт лояльности
type LoyaltyRepository interface {
	Accrue(ctx context.Context, clientID, branchID, points, stamps int64) (*domain.LoyaltyCard, error)
}

// SettlementRepository интерфейс журнала расчетов
type SettlementRepository interface {
	Create(ctx context.Context, s *domain.Settlement) (*domain.Settlement, error)
	GetByOrderID(ctx context.Context, orderID int64) (*domain.Settlement, error)
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	Notify(ctx context.Context, notification notifier.Notification) error
}

// Metrics бизнес-метрики
type Metrics interface {
	IncOrderSettled(outcome string)
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
