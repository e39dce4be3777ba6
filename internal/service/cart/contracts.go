package cart

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/cart"
	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// CartStore интерфейс хранилища корзин
type CartStore interface {
	Load(ctx context.Context, ownerID int64) (*cart.Session, error)
	Save(ctx context.Context, session *cart.Session) error
	Delete(ctx context.Context, ownerID int64) error
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetServicesByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Service, error)
	GetProductsByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Product, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
