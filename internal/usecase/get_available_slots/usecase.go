package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/availability"
	"github.com/m04kA/SMC-BarberService/internal/domain"
	branchRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/branch"
	catalogRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/catalog"
)

// UseCase use case для получения слотов для записи
type UseCase struct {
	branchRepo      BranchRepository
	catalogRepo     CatalogRepository
	staffRepo       StaffRepository
	appointmentRepo AppointmentRepository
	settings        Settings
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	branchRepo BranchRepository,
	catalogRepo CatalogRepository,
	staffRepo StaffRepository,
	appointmentRepo AppointmentRepository,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		branchRepo:      branchRepo,
		catalogRepo:     catalogRepo,
		staffRepo:       staffRepo,
		appointmentRepo: appointmentRepo,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: branch=%d, service=%d, date=%s, policy=%q",
		req.BranchID, req.ServiceID, req.Date.Format(domain.DateFormat), req.Policy)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	policy, err := availability.ParseStepPolicy(req.Policy, uc.settings.DefaultPolicy)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	margin := uc.settings.MarginMinutes
	if req.MarginMinutes != nil {
		margin = *req.MarginMinutes
	}

	// 2. Дата в часовом поясе филиала, прошлые даты запрещены
	loc := uc.settings.Location
	if loc == nil {
		loc = req.Date.Location()
	}
	day := dayIn(req.Date, loc)
	if err := validateDate(day, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем филиал
	exists, err := uc.branchRepo.Exists(ctx, req.BranchID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to check branch: %v", ErrInternal, err)
	}
	if !exists {
		uc.logger.Warn("GetAvailableSlots: branch id=%d not found", req.BranchID)
		return nil, ErrBranchNotFound
	}

	// 4. Получаем услугу, она должна принадлежать филиалу и быть доступной
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.BranchID != req.BranchID || !service.IsBookable() {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not bookable in branch id=%d", req.ServiceID, req.BranchID)
		return nil, ErrServiceNotFound
	}

	// 5. Часы работы с учетом иерархии
	hours, err := uc.resolveHours(ctx, req.BranchID, day)
	if err != nil {
		return nil, err
	}

	// 6. Кандидаты: выбранный мастер или все активные мастера филиала
	staff, err := uc.staffRepo.ListActiveByBranch(ctx, req.BranchID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list staff of branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}

	candidates, err := filterStaff(staff, req.StaffID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return nil, err
	}

	// 7. Занятость мастеров в пределах рабочего дня
	window, err := hours.Window(day)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid hours rule for branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: invalid hours rule: %v", ErrInternal, err)
	}

	busy, err := uc.appointmentRepo.ListBusy(ctx, candidates, window.Start, window.End)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list busy intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to list busy intervals: %v", ErrInternal, err)
	}

	// 8. Вычисляем слоты
	slots := availability.ComputeSlots(availability.Input{
		Hours:             hours,
		Date:              day,
		DurationMinutes:   service.DurationMinutes,
		CandidateStaffIDs: candidates,
		Busy:              domain.GroupBusyByStaff(busy),
	}, availability.Options{
		Policy:          policy,
		MarginMinutes:   margin,
		OmitUnavailable: req.OmitUnavailable,
	})

	uc.logger.Info("GetAvailableSlots: generated %d slots for branch=%d, service=%d, date=%s, staff=%d",
		len(slots), req.BranchID, req.ServiceID, day.Format(domain.DateFormat), len(candidates))

	if policy == availability.PolicyHourly {
		margin = 0
	}

	return &Response{
		Date:            day,
		BranchID:        req.BranchID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Policy:          policy,
		MarginMinutes:   margin,
		Open:            hours.Open,
		Close:           hours.Close,
		Slots:           toSlots(slots),
	}, nil
}

// resolveHours правило на день недели, затем по умолчанию, затем 09:00-18:00
func (uc *UseCase) resolveHours(ctx context.Context, branchID int64, day time.Time) (domain.OperatingHoursRule, error) {
	rule, err := uc.branchRepo.GetHoursWithFallback(ctx, branchID, int(day.Weekday()))
	if err != nil {
		if errors.Is(err, branchRepo.ErrHoursNotFound) {
			uc.logger.Info("GetAvailableSlots: no hours configured for branch=%d, using fallback", branchID)
			return domain.FallbackHours(branchID), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get hours for branch=%d: %v", branchID, err)
		return domain.OperatingHoursRule{}, fmt.Errorf("%w: failed to get hours: %v", ErrInternal, err)
	}
	return *rule, nil
}

func toSlots(slots []domain.Slot) []Slot {
	result := make([]Slot, 0, len(slots))
	for i := range slots {
		result = append(result, Slot{
			Start:        slots[i].Start,
			End:          slots[i].End,
			FreeStaffIDs: slots[i].FreeStaffIDs,
			Available:    slots[i].IsAvailable(),
		})
	}
	return result
}
