package create_order

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/appointment"
	branchRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/branch"
	staffRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-BarberService/internal/integrations/notifier"
	userClient "github.com/m04kA/SMC-BarberService/internal/integrations/userservice"
	"github.com/m04kA/SMC-BarberService/pkg/txmanager"
)

// UseCase use case для создания заказа (граница оформления)
type UseCase struct {
	orderRepo       OrderRepository
	appointmentRepo AppointmentRepository
	branchRepo      BranchRepository
	catalogRepo     CatalogRepository
	staffRepo       StaffRepository
	userClient      UserServiceClient
	notifier        Notifier
	metrics         Metrics
	txManager       TransactionManager
	settings        Settings
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	appointmentRepo AppointmentRepository,
	branchRepo BranchRepository,
	catalogRepo CatalogRepository,
	staffRepo StaffRepository,
	userClient UserServiceClient,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:       orderRepo,
		appointmentRepo: appointmentRepo,
		branchRepo:      branchRepo,
		catalogRepo:     catalogRepo,
		staffRepo:       staffRepo,
		userClient:      userClient,
		notifier:        notifier,
		metrics:         metrics,
		txManager:       txManager,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания заказа.
// Заказ, его позиции и визит сохраняются в одной SERIALIZABLE транзакции:
// либо все вместе, либо ничего.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	in := &req.Order
	uc.logger.Info("CreateOrder: user=%d, role=%s, branch=%d, items=%d, service=%t",
		req.Principal.UserID, req.Principal.Role, in.BranchID, len(in.Items), in.HasService())

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	if err := validateRequest(in, now); err != nil {
		uc.logger.Warn("CreateOrder: validation failed: %v", err)
		return nil, err
	}

	// 2. Авторизация: на кого оформляется заказ
	clientID, err := validateAuthorization(req.Principal, in.ClientID)
	if err != nil {
		uc.logger.Warn("CreateOrder: authorization failed: %v", err)
		return nil, err
	}

	if req.Principal.Role == domain.RoleStaff {
		if err := uc.checkStaffBranch(ctx, req.Principal.UserID, in.BranchID); err != nil {
			return nil, err
		}
	}

	if clientID != req.Principal.UserID {
		if err := uc.checkClient(ctx, clientID); err != nil {
			return nil, err
		}
	}

	// 3. Проверяем филиал
	exists, err := uc.branchRepo.Exists(ctx, in.BranchID)
	if err != nil {
		uc.logger.Error("CreateOrder: failed to check branch id=%d: %v", in.BranchID, err)
		return nil, fmt.Errorf("%w: failed to check branch: %v", ErrInternal, err)
	}
	if !exists {
		uc.logger.Warn("CreateOrder: branch id=%d not found", in.BranchID)
		return nil, ErrBranchNotFound
	}

	// 4. Позиции по ценам каталога, все должны принадлежать филиалу
	items, serviceMinutes, err := uc.priceItems(ctx, in)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		BranchID: in.BranchID,
		ClientID: clientID,
		Notes:    in.Notes,
		Status:   domain.StatusPending,
		Items:    items,
	}

	// 5. Для услуг: мастер филиала и окно внутри часов работы
	if in.HasService() {
		if err := uc.validateAppointment(ctx, in, serviceMinutes); err != nil {
			return nil, err
		}
		order.StaffID = in.StaffID
		order.StartAt = in.StartAt
		order.EndAt = in.EndAt
	}

	// 6. Сохраняем в сериализуемой транзакции с повторной проверкой занятости
	var created *domain.Order
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if order.IsServiceBearing() {
			// 6.1. Авторитетная проверка: блокируем пересекающиеся визиты мастера
			busy, err := uc.appointmentRepo.ListBusy(txCtx, []int64{*order.StaffID}, *order.StartAt, *order.EndAt)
			if err != nil {
				return fmt.Errorf("%w: failed to list busy intervals: %v", ErrInternal, err)
			}
			window, _ := order.Window()
			for _, b := range busy {
				if b.Interval.Overlaps(window) {
					return fmt.Errorf("%w: staff=%d busy %s-%s", ErrSlotUnavailable, b.StaffID,
						b.Start.Format(time.RFC3339), b.End.Format(time.RFC3339))
				}
			}
		}

		// 6.2. Заказ и позиции
		result, err := uc.orderRepo.Create(txCtx, order)
		if err != nil {
			return fmt.Errorf("%w: failed to create order: %v", ErrInternal, err)
		}

		// 6.3. Визит мастера
		if result.IsServiceBearing() {
			_, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
				OrderID:  result.ID,
				BranchID: result.BranchID,
				StaffID:  *result.StaffID,
				StartAt:  *result.StartAt,
				EndAt:    *result.EndAt,
			})
			if err != nil {
				if errors.Is(err, appointmentRepo.ErrSlotTaken) {
					return fmt.Errorf("%w: %v", ErrSlotUnavailable, err)
				}
				return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
			}
		}

		created = result
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			err = fmt.Errorf("%w: %v", ErrSlotUnavailable, err)
		}
		if errors.Is(err, ErrSlotUnavailable) {
			uc.metrics.IncSlotConflict("create_order")
			uc.logger.Warn("CreateOrder: slot conflict for branch=%d: %v", in.BranchID, err)
			return nil, err
		}
		uc.logger.Error("CreateOrder: transaction failed for branch=%d: %v", in.BranchID, err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	kind := string(domain.ItemKindProduct)
	if created.IsServiceBearing() {
		kind = string(domain.ItemKindService)
	}
	uc.metrics.IncOrderCreated(kind)

	uc.logger.Info("CreateOrder: successfully created order id=%d, client=%d, total=%d",
		created.ID, created.ClientID, created.TotalMinor())

	// 7. Уведомление, ошибка не влияет на результат
	uc.notify(ctx, created)

	return &Response{Order: created}, nil
}

// Submit создает заказ из корзины от имени principal
func (uc *UseCase) Submit(ctx context.Context, principal domain.Principal, in *domain.CreateOrderRequest) (*domain.Order, error) {
	resp, err := uc.Execute(ctx, &Request{Principal: principal, Order: *in})
	if err != nil {
		return nil, err
	}
	return resp.Order, nil
}

// checkClient проверяет клиента через UserService.
// При недоступности сервиса заказ не блокируется.
func (uc *UseCase) checkClient(ctx context.Context, clientID int64) error {
	err := uc.userClient.ClientExists(ctx, clientID)
	if err == nil {
		return nil
	}
	if errors.Is(err, userClient.ErrClientNotFound) {
		uc.logger.Warn("CreateOrder: client id=%d not found", clientID)
		return fmt.Errorf("%w: id=%d", ErrClientNotFound, clientID)
	}
	uc.logger.Warn("CreateOrder: client id=%d not verified, continuing: %v", clientID, err)
	return nil
}

// checkStaffBranch мастер оформляет заказы только в своем филиале
func (uc *UseCase) checkStaffBranch(ctx context.Context, userID, branchID int64) error {
	staff, err := uc.staffRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateOrder: user=%d has staff role but no staff record", userID)
			return fmt.Errorf("%w: user %d is not a staff member", ErrUnauthorized, userID)
		}
		uc.logger.Error("CreateOrder: failed to get staff id=%d: %v", userID, err)
		return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if staff.BranchID != branchID {
		uc.logger.Warn("CreateOrder: staff=%d of branch=%d cannot order in branch=%d", userID, staff.BranchID, branchID)
		return fmt.Errorf("%w: staff %d works in another branch", ErrUnauthorized, userID)
	}
	return nil
}

// priceItems проверяет принадлежность позиций филиалу и считает цены по каталогу
func (uc *UseCase) priceItems(ctx context.Context, in *domain.CreateOrderRequest) ([]domain.OrderLineItem, int, error) {
	serviceIDs, productIDs := uniqueRefs(in.Items)

	services, err := uc.catalogRepo.GetServicesByIDs(ctx, serviceIDs)
	if err != nil {
		uc.logger.Error("CreateOrder: failed to load services: %v", err)
		return nil, 0, fmt.Errorf("%w: failed to load services: %v", ErrInternal, err)
	}

	products, err := uc.catalogRepo.GetProductsByIDs(ctx, productIDs)
	if err != nil {
		uc.logger.Error("CreateOrder: failed to load products: %v", err)
		return nil, 0, fmt.Errorf("%w: failed to load products: %v", ErrInternal, err)
	}

	items := make([]domain.OrderLineItem, 0, len(in.Items))
	serviceMinutes := 0

	for _, item := range in.Items {
		var price int64

		switch item.Kind {
		case domain.ItemKindService:
			s, ok := services[item.RefID]
			if !ok || s.BranchID != in.BranchID || !s.IsBookable() {
				uc.logger.Warn("CreateOrder: service id=%d is not available in branch id=%d", item.RefID, in.BranchID)
				return nil, 0, fmt.Errorf("%w: service id=%d", ErrInvalidItem, item.RefID)
			}
			price = s.PriceMinor
			serviceMinutes += s.DurationMinutes * item.Quantity

		case domain.ItemKindProduct:
			p, ok := products[item.RefID]
			if !ok || p.BranchID != in.BranchID || !p.IsSellable() {
				uc.logger.Warn("CreateOrder: product id=%d is not available in branch id=%d", item.RefID, in.BranchID)
				return nil, 0, fmt.Errorf("%w: product id=%d", ErrInvalidItem, item.RefID)
			}
			price = p.PriceMinor
		}

		line, err := domain.NewLineItem(item.Kind, item.RefID, item.Quantity, price)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
		items = append(items, line)
	}

	return items, serviceMinutes, nil
}

// validateAppointment проверяет мастера и окно визита
func (uc *UseCase) validateAppointment(ctx context.Context, in *domain.CreateOrderRequest, serviceMinutes int) error {
	staff, err := uc.staffRepo.GetByID(ctx, *in.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateOrder: staff id=%d not found", *in.StaffID)
			return fmt.Errorf("%w: id=%d", ErrStaffNotFound, *in.StaffID)
		}
		uc.logger.Error("CreateOrder: failed to get staff id=%d: %v", *in.StaffID, err)
		return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if staff.BranchID != in.BranchID || !staff.Active {
		uc.logger.Warn("CreateOrder: staff id=%d does not work in branch id=%d", staff.ID, in.BranchID)
		return fmt.Errorf("%w: id=%d", ErrStaffNotFound, staff.ID)
	}

	window := domain.Interval{Start: *in.StartAt, End: *in.EndAt}
	if window.Minutes() < serviceMinutes {
		return fmt.Errorf("%w: window of %d minutes is shorter than services duration %d",
			ErrValidationFailed, window.Minutes(), serviceMinutes)
	}

	loc := uc.settings.Location
	if loc == nil {
		loc = in.StartAt.Location()
	}
	local := in.StartAt.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	rule, err := uc.branchRepo.GetHoursWithFallback(ctx, in.BranchID, int(day.Weekday()))
	if err != nil && !errors.Is(err, branchRepo.ErrHoursNotFound) {
		uc.logger.Error("CreateOrder: failed to get hours for branch=%d: %v", in.BranchID, err)
		return fmt.Errorf("%w: failed to get hours: %v", ErrInternal, err)
	}

	hours := domain.FallbackHours(in.BranchID)
	if rule != nil {
		hours = *rule
	}

	open, err := hours.Window(day)
	if err != nil {
		return fmt.Errorf("%w: invalid hours rule: %v", ErrInternal, err)
	}
	if !open.Contains(window) {
		uc.logger.Warn("CreateOrder: window %s-%s is outside hours %s-%s",
			local.Format(domain.TimeFormat), in.EndAt.In(loc).Format(domain.TimeFormat), hours.Open, hours.Close)
		return fmt.Errorf("%w: open %s-%s", ErrOutsideHours, hours.Open, hours.Close)
	}

	return nil
}

func (uc *UseCase) notify(ctx context.Context, order *domain.Order) {
	data := map[string]string{
		"orderId":  strconv.FormatInt(order.ID, 10),
		"branchId": strconv.FormatInt(order.BranchID, 10),
	}

	body := "Заказ оформлен"
	if order.IsServiceBearing() {
		loc := uc.settings.Location
		if loc == nil {
			loc = time.UTC
		}
		body = fmt.Sprintf("Вы записаны на %s", order.StartAt.In(loc).Format("02.01.2006 15:04"))
		data["startAt"] = order.StartAt.Format(time.RFC3339)
	}

	n := notifier.New(notifier.EventOrderCreated, order.ClientID, "Новый заказ", body, data)
	if err := uc.notifier.Notify(ctx, n); err != nil {
		uc.metrics.IncNotificationFailed(string(notifier.EventOrderCreated))
		uc.logger.Warn("CreateOrder: failed to send notification for order id=%d: %v", order.ID, err)
	}
}
