package complete_order

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	orderRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/order"
	settlementRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/settlement"
	staffRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-BarberService/internal/integrations/notifier"
	"github.com/m04kA/SMC-BarberService/internal/settlement"
)

// UseCase use case для завершения заказа с расчетом мастера и лояльности
type UseCase struct {
	orderRepo      OrderRepository
	staffRepo      StaffRepository
	walletRepo     WalletRepository
	loyaltyRepo    LoyaltyRepository
	settlementRepo SettlementRepository
	notifier       Notifier
	metrics        Metrics
	txManager      TransactionManager
	settings       Settings
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	staffRepo StaffRepository,
	walletRepo WalletRepository,
	loyaltyRepo LoyaltyRepository,
	settlementRepo SettlementRepository,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:      orderRepo,
		staffRepo:      staffRepo,
		walletRepo:     walletRepo,
		loyaltyRepo:    loyaltyRepo,
		settlementRepo: settlementRepo,
		notifier:       notifier,
		metrics:        metrics,
		txManager:      txManager,
		settings:       settings,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute завершает заказ. Повторный вызов для завершенного заказа
// возвращает сохраненный расчет и ничего не начисляет заново.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompleteOrder: order=%d, user=%d, role=%s", req.OrderID, req.Principal.UserID, req.Principal.Role)

	// 1. Валидация входных данных
	if req.OrderID <= 0 {
		return nil, fmt.Errorf("%w: orderId must be positive", ErrInvalidInput)
	}
	if !req.Principal.IsStaffOrAdmin() {
		uc.logger.Warn("CompleteOrder: role %s cannot complete orders", req.Principal.Role)
		return nil, ErrUnauthorized
	}

	var resp *Response

	// 2. Блокировка заказа, расчет и начисления в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		order, err := uc.orderRepo.GetByIDForUpdate(txCtx, req.OrderID)
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("%w: failed to get order: %v", ErrInternal, err)
		}

		// 2.1. Авторизация: мастер завершает только заказы своего филиала
		if err := uc.authorize(txCtx, req.Principal, order); err != nil {
			return err
		}

		// 2.2. Идемпотентность: уже завершенный заказ отдает сохраненный расчет
		if order.IsSettled() {
			saved, err := uc.settlementRepo.GetByOrderID(txCtx, order.ID)
			if err != nil {
				if errors.Is(err, settlementRepo.ErrSettlementNotFound) {
					return fmt.Errorf("%w: order %d completed without settlement", ErrInternal, order.ID)
				}
				return fmt.Errorf("%w: failed to get settlement: %v", ErrInternal, err)
			}
			resp = &Response{Order: order, Settlement: saved, Replayed: true}
			return nil
		}

		if !order.CanBeCompleted() {
			return fmt.Errorf("%w: status %s", ErrInvalidState, order.Status)
		}

		// 2.3. Ставка мастера: своя, из конфигурации или по умолчанию
		var staffBP *int
		if order.StaffID != nil {
			staff, err := uc.staffRepo.GetByID(txCtx, *order.StaffID)
			if err != nil && !errors.Is(err, staffRepo.ErrStaffNotFound) {
				return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
			}
			if staff != nil {
				staffBP = staff.CommissionBasisPoints
			}
		}
		bp := settlement.ResolveRate(staffBP, uc.settings.CommissionBasisPoints)
		result := settlement.Settle(order.Items, bp)

		// 2.4. Начисление мастеру
		if order.StaffID != nil && result.EarningMinor > 0 {
			orderID := order.ID
			_, err := uc.walletRepo.Append(txCtx, &domain.WalletEntry{
				StaffID:     *order.StaffID,
				OrderID:     &orderID,
				AmountMinor: result.EarningMinor,
				Kind:        domain.WalletEarning,
			})
			if err != nil {
				return fmt.Errorf("%w: failed to append wallet entry: %v", ErrInternal, err)
			}
		}

		// 2.5. Баллы и штампы клиенту
		if result.LoyaltyPointsAdded > 0 || result.LoyaltyStampsAdded > 0 {
			_, err := uc.loyaltyRepo.Accrue(txCtx, order.ClientID, order.BranchID,
				result.LoyaltyPointsAdded, result.LoyaltyStampsAdded)
			if err != nil {
				return fmt.Errorf("%w: failed to accrue loyalty: %v", ErrInternal, err)
			}
		}

		// 2.6. Фиксируем расчет и статус
		saved, err := uc.settlementRepo.Create(txCtx, &domain.Settlement{
			OrderID:               order.ID,
			StaffID:               order.StaffID,
			EarningMinor:          result.EarningMinor,
			LoyaltyPointsAdded:    result.LoyaltyPointsAdded,
			LoyaltyStampsAdded:    result.LoyaltyStampsAdded,
			CommissionBasisPoints: bp,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to save settlement: %v", ErrInternal, err)
		}

		now := uc.timeProvider.Now().UTC()
		if err := uc.orderRepo.MarkCompleted(txCtx, order.ID, now); err != nil {
			return fmt.Errorf("%w: failed to mark order completed: %v", ErrInternal, err)
		}
		order.Status = domain.StatusCompleted
		order.CompletedAt = &now

		resp = &Response{Order: order, Settlement: saved}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound), errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidState):
			uc.logger.Warn("CompleteOrder: order=%d rejected: %v", req.OrderID, err)
			return nil, err
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CompleteOrder: order=%d failed: %v", req.OrderID, err)
			return nil, err
		default:
			uc.logger.Error("CompleteOrder: order=%d transaction failed: %v", req.OrderID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	if resp.Replayed {
		uc.metrics.IncOrderSettled("replayed")
		uc.logger.Info("CompleteOrder: order=%d already completed, returning saved settlement", req.OrderID)
		return resp, nil
	}

	uc.metrics.IncOrderSettled("settled")
	uc.logger.Info("CompleteOrder: order=%d completed, earning=%d, points=%d, stamps=%d",
		req.OrderID, resp.Settlement.EarningMinor, resp.Settlement.LoyaltyPointsAdded, resp.Settlement.LoyaltyStampsAdded)

	// 3. Уведомление клиенту, ошибка не влияет на результат
	uc.notify(ctx, resp)

	return resp, nil
}

func (uc *UseCase) authorize(ctx context.Context, principal domain.Principal, order *domain.Order) error {
	if principal.IsAdmin() {
		return nil
	}

	staff, err := uc.staffRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			return fmt.Errorf("%w: user %d is not a staff member", ErrUnauthorized, principal.UserID)
		}
		return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if staff.BranchID != order.BranchID {
		return fmt.Errorf("%w: staff %d works in another branch", ErrUnauthorized, staff.ID)
	}
	return nil
}

func (uc *UseCase) notify(ctx context.Context, resp *Response) {
	s := resp.Settlement
	n := notifier.New(notifier.EventOrderCompleted, resp.Order.ClientID, "Заказ выполнен",
		fmt.Sprintf("Начислено баллов: %d, штампов: %d", s.LoyaltyPointsAdded, s.LoyaltyStampsAdded),
		map[string]string{
			"orderId": strconv.FormatInt(resp.Order.ID, 10),
			"points":  strconv.FormatInt(s.LoyaltyPointsAdded, 10),
			"stamps":  strconv.FormatInt(s.LoyaltyStampsAdded, 10),
		})
	if err := uc.notifier.Notify(ctx, n); err != nil {
		uc.metrics.IncNotificationFailed(string(notifier.EventOrderCompleted))
		uc.logger.Warn("CompleteOrder: failed to send notification for order id=%d: %v", resp.Order.ID, err)
	}
}
