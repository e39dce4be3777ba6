package cart

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/service/cart/models"
)

type CartService interface {
	Get(ctx context.Context, ownerID int64) (*models.CartResponse, error)
	AddDraft(ctx context.Context, ownerID int64, req *models.AddDraftRequest) (*models.CartResponse, error)
	AddProduct(ctx context.Context, ownerID int64, req *models.AddProductRequest) (*models.CartResponse, error)
	RemoveDraft(ctx context.Context, ownerID int64, req *models.RemoveDraftRequest) (*models.CartResponse, error)
	Clear(ctx context.Context, ownerID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
