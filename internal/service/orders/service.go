package orders

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	orderRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/order"
	staffRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-BarberService/internal/integrations/notifier"
	"github.com/m04kA/SMC-BarberService/internal/service/orders/models"
)

// Service сервис для чтения заказов и переходов статусов
type Service struct {
	orderRepo       OrderRepository
	appointmentRepo AppointmentRepository
	staffRepo       StaffRepository
	notifier        Notifier
	txManager       TransactionManager
	now             func() time.Time
	logger          Logger
}

// NewService создает новый экземпляр сервиса заказов
func NewService(
	orderRepo OrderRepository,
	appointmentRepo AppointmentRepository,
	staffRepo StaffRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		orderRepo:       orderRepo,
		appointmentRepo: appointmentRepo,
		staffRepo:       staffRepo,
		notifier:        notifier,
		txManager:       txManager,
		now:             time.Now,
		logger:          logger,
	}
}

// GetByID получает заказ по ID.
// Клиент видит только свои заказы, мастер - заказы своего филиала, администратор - любые.
func (s *Service) GetByID(ctx context.Context, principal domain.Principal, id int64) (*models.OrderResponse, error) {
	s.logger.Info("GetByID: fetching order id=%d for user=%d", id, principal.UserID)

	order, err := s.getOrder(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkOrderAccess(ctx, principal, order); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to order id=%d", principal.UserID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched order id=%d", id)
	return models.FromDomainOrder(order), nil
}

// ListClientOrders получает историю заказов клиента, опционально по статусу
func (s *Service) ListClientOrders(ctx context.Context, principal domain.Principal, req *models.ListClientOrdersRequest) (*models.OrderListResponse, error) {
	s.logger.Info("ListClientOrders: fetching orders for client=%d, status=%v", req.ClientID, req.Status)

	if principal.IsClient() && principal.UserID != req.ClientID {
		s.logger.Warn("ListClientOrders: user=%d cannot read orders of client=%d", principal.UserID, req.ClientID)
		return nil, ErrAccessDenied
	}

	filter := domain.OrderFilter{ClientID: &req.ClientID}
	if req.Status != nil {
		status, err := domain.ParseOrderStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListClientOrders: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListClientOrders: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: ListClientOrders - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListClientOrders: successfully fetched %d orders for client=%d", len(orders), req.ClientID)
	return models.FromDomainOrderList(orders), nil
}

// ListBranchOrders получает заказы филиала с фильтрацией по мастеру, периоду и статусу.
// Доступно мастерам этого филиала и администраторам.
func (s *Service) ListBranchOrders(ctx context.Context, principal domain.Principal, req *models.ListBranchOrdersRequest) (*models.OrderListResponse, error) {
	logMsg := fmt.Sprintf("ListBranchOrders: fetching orders for branch=%d, user=%d", req.BranchID, principal.UserID)
	if req.StaffID != nil {
		logMsg += fmt.Sprintf(", staff=%d", *req.StaffID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	if err := s.checkBranchAccess(ctx, principal, req.BranchID); err != nil {
		s.logger.Warn("ListBranchOrders: user=%d with role=%s cannot read orders of branch=%d", principal.UserID, principal.Role, req.BranchID)
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListBranchOrders: invalid filter for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: invalid filter: %v", ErrInvalidInput, err)
	}

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListBranchOrders: repository error for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: ListBranchOrders - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBranchOrders: successfully fetched %d orders for branch=%d", len(orders), req.BranchID)
	return models.FromDomainOrderList(orders), nil
}

// Confirm переводит заказ из pending в confirmed.
// Доступно мастерам филиала заказа и администраторам.
func (s *Service) Confirm(ctx context.Context, principal domain.Principal, id int64) (*models.OrderResponse, error) {
	s.logger.Info("Confirm: confirming order id=%d by user=%d", id, principal.UserID)

	if !principal.IsStaffOrAdmin() {
		s.logger.Warn("Confirm: user=%d with role=%s cannot confirm orders", principal.UserID, principal.Role)
		return nil, ErrAccessDenied
	}

	var order *domain.Order
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		o, err := s.getOrderForUpdate(txCtx, "Confirm", id)
		if err != nil {
			return err
		}

		if err := s.checkBranchAccess(txCtx, principal, o.BranchID); err != nil {
			s.logger.Warn("Confirm: access denied for user=%d to order id=%d of branch=%d", principal.UserID, id, o.BranchID)
			return err
		}

		if !o.CanBeConfirmed() {
			s.logger.Warn("Confirm: order id=%d cannot be confirmed, status=%s", id, o.Status)
			return fmt.Errorf("%w: status %s", ErrCannotConfirm, o.Status)
		}

		if err := s.orderRepo.UpdateStatus(txCtx, id, domain.StatusConfirmed); err != nil {
			s.logger.Error("Confirm: failed to update status for order id=%d: %v", id, err)
			return fmt.Errorf("%w: Confirm - update status: %v", ErrInternal, err)
		}

		o.Status = domain.StatusConfirmed
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Confirm: successfully confirmed order id=%d", id)
	s.notify(ctx, "Confirm", notifier.EventOrderConfirmed, order, "Заказ подтвержден")

	return models.FromDomainOrder(order), nil
}

// Cancel отменяет заказ и освобождает время мастера.
// Клиент может отменить только свой заказ, мастер - заказ своего филиала, администратор - любой.
func (s *Service) Cancel(ctx context.Context, principal domain.Principal, id int64) (*models.OrderResponse, error) {
	s.logger.Info("Cancel: cancelling order id=%d by user=%d", id, principal.UserID)

	var order *domain.Order
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		o, err := s.getOrderForUpdate(txCtx, "Cancel", id)
		if err != nil {
			return err
		}

		if err := s.checkOrderAccess(txCtx, principal, o); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to order id=%d", principal.UserID, id)
			return err
		}

		if !o.CanBeCancelled() {
			s.logger.Warn("Cancel: order id=%d cannot be cancelled, status=%s", id, o.Status)
			return fmt.Errorf("%w: status %s", ErrCannotCancel, o.Status)
		}

		now := s.now().UTC()
		if err := s.orderRepo.MarkCancelled(txCtx, id, now); err != nil {
			s.logger.Error("Cancel: failed to mark order id=%d cancelled: %v", id, err)
			return fmt.Errorf("%w: Cancel - mark cancelled: %v", ErrInternal, err)
		}

		if o.IsServiceBearing() {
			if err := s.appointmentRepo.CancelByOrderID(txCtx, id, now); err != nil {
				s.logger.Error("Cancel: failed to release appointment of order id=%d: %v", id, err)
				return fmt.Errorf("%w: Cancel - release appointment: %v", ErrInternal, err)
			}
		}

		o.Status = domain.StatusCancelled
		o.CancelledAt = &now
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled order id=%d", id)
	s.notify(ctx, "Cancel", notifier.EventOrderCancelled, order, "Заказ отменен")

	return models.FromDomainOrder(order), nil
}

func (s *Service) getOrder(ctx context.Context, op string, id int64) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	return s.mapOrderErr(op, id, order, err)
}

func (s *Service) getOrderForUpdate(ctx context.Context, op string, id int64) (*domain.Order, error) {
	order, err := s.orderRepo.GetByIDForUpdate(ctx, id)
	return s.mapOrderErr(op, id, order, err)
}

func (s *Service) mapOrderErr(op string, id int64, order *domain.Order, err error) (*domain.Order, error) {
	if err == nil {
		return order, nil
	}
	if errors.Is(err, orderRepo.ErrOrderNotFound) {
		s.logger.Warn("%s: order id=%d not found", op, id)
		return nil, ErrOrderNotFound
	}
	s.logger.Error("%s: repository error for order id=%d: %v", op, id, err)
	return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// checkOrderAccess клиент имеет доступ только к своим заказам, мастер - к заказам своего филиала
func (s *Service) checkOrderAccess(ctx context.Context, principal domain.Principal, order *domain.Order) error {
	if principal.IsClient() {
		if order.ClientID == principal.UserID {
			return nil
		}
		return ErrAccessDenied
	}
	return s.checkBranchAccess(ctx, principal, order.BranchID)
}

// checkBranchAccess администратор проходит всегда, мастер - только в своем филиале
func (s *Service) checkBranchAccess(ctx context.Context, principal domain.Principal, branchID int64) error {
	if principal.IsAdmin() {
		return nil
	}
	if !principal.IsStaffOrAdmin() {
		return ErrAccessDenied
	}

	staff, err := s.staffRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			return fmt.Errorf("%w: user %d is not a staff member", ErrAccessDenied, principal.UserID)
		}
		s.logger.Error("checkBranchAccess: failed to get staff id=%d: %v", principal.UserID, err)
		return fmt.Errorf("%w: get staff: %v", ErrInternal, err)
	}
	if staff.BranchID != branchID {
		return fmt.Errorf("%w: staff %d works in branch %d", ErrAccessDenied, staff.ID, staff.BranchID)
	}
	return nil
}

func (s *Service) notify(ctx context.Context, op string, event notifier.Event, order *domain.Order, title string) {
	n := notifier.New(event, order.ClientID, title, fmt.Sprintf("Заказ №%d", order.ID), map[string]string{
		"orderId": strconv.FormatInt(order.ID, 10),
		"status":  string(order.Status),
	})
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("%s: failed to send notification for order id=%d: %v", op, order.ID, err)
	}
}
