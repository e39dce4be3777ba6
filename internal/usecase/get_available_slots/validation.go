package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BranchID <= 0 {
		return fmt.Errorf("%w: branchId must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffId must be positive", ErrInvalidInput)
	}

	if req.MarginMinutes != nil && (*req.MarginMinutes < 0 || *req.MarginMinutes > domain.MaxMarginMinutes) {
		return fmt.Errorf("%w: marginMinutes must be in 0..%d", ErrInvalidInput, domain.MaxMarginMinutes)
	}

	return nil
}

// dayIn возвращает начало календарного дня date в часовом поясе филиала
func dayIn(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
}

// validateDate запрещает даты раньше сегодняшнего дня филиала
func validateDate(day time.Time, now time.Time) error {
	today := dayIn(now.In(day.Location()), day.Location())
	if day.Before(today) {
		return fmt.Errorf("%w: %s", ErrInvalidDate, day.Format(domain.DateFormat))
	}
	return nil
}

// filterStaff оставляет выбранного мастера или всех активных
func filterStaff(staff []domain.Staff, staffID *int64) ([]int64, error) {
	ids := make([]int64, 0, len(staff))
	for _, s := range staff {
		if staffID != nil && s.ID != *staffID {
			continue
		}
		ids = append(ids, s.ID)
	}

	if staffID != nil && len(ids) == 0 {
		return nil, fmt.Errorf("%w: staff id=%d", ErrStaffNotFound, *staffID)
	}

	return ids, nil
}
