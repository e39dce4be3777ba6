package checkout_cart

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/cart"
	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// UseCase use case для оформления корзины
type UseCase struct {
	store   CartStore
	creator OrderCreator
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(store CartStore, creator OrderCreator, logger Logger) *UseCase {
	return &UseCase{
		store:   store,
		creator: creator,
		logger:  logger,
	}
}

// submitter привязывает вызывающего к границе создания заказов
type submitter struct {
	principal domain.Principal
	creator   OrderCreator
}

func (s submitter) Submit(ctx context.Context, req *domain.CreateOrderRequest) (*domain.Order, error) {
	return s.creator.Submit(ctx, s.principal, req)
}

// Execute отправляет каждый запрос корзины независимо.
// Корзина очищается при любом исходе, частичный успех не откатывается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckoutCart: user=%d, role=%s", req.Principal.UserID, req.Principal.Role)

	// 1. Валидация входных данных
	if req.ClientID != nil && *req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: clientId must be positive", ErrInvalidInput)
	}

	// 2. Загружаем корзину
	session, err := uc.store.Load(ctx, req.Principal.UserID)
	if err != nil {
		uc.logger.Error("CheckoutCart: failed to load cart for user=%d: %v", req.Principal.UserID, err)
		return nil, fmt.Errorf("%w: failed to load cart: %v", ErrInternal, err)
	}

	if session.IsEmpty() {
		uc.logger.Info("CheckoutCart: cart of user=%d is empty", req.Principal.UserID)
		return &Response{Results: []cart.Result{}}, nil
	}

	if req.ClientID != nil {
		session.ClientID = req.ClientID
	}

	// 3. Отправляем запросы
	results := cart.Checkout(ctx, session, submitter{principal: req.Principal, creator: uc.creator})

	succeeded := cart.Succeeded(results)
	for _, r := range results {
		if r.Err != nil {
			uc.logger.Warn("CheckoutCart: request for branch=%d failed: %v", r.Request.BranchID, r.Err)
		}
	}

	// 4. Корзина уже очищена, удаляем ее из хранилища
	if err := uc.store.Delete(ctx, req.Principal.UserID); err != nil {
		uc.logger.Error("CheckoutCart: failed to delete cart for user=%d: %v", req.Principal.UserID, err)
	}

	uc.logger.Info("CheckoutCart: user=%d, submitted=%d, succeeded=%d", req.Principal.UserID, len(results), succeeded)

	return &Response{
		Results:   results,
		Succeeded: succeeded,
		Failed:    len(results) - succeeded,
	}, nil
}
