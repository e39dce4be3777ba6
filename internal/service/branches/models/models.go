package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// DefaultWeekday значение параметра weekday для правила по умолчанию
const DefaultWeekday = "default"

// ParseWeekday разбирает "0".."6" или "default" (nil)
func ParseWeekday(s string) (*int, error) {
	if s == DefaultWeekday {
		return nil, nil
	}
	w, err := strconv.Atoi(s)
	if err != nil || w < 0 || w > 6 {
		return nil, fmt.Errorf("%w: weekday must be 0..6 or %q", domain.ErrValidation, DefaultWeekday)
	}
	return &w, nil
}

// UpsertHoursRequest тело запроса на установку часов работы
type UpsertHoursRequest struct {
	Weekday *int   `json:"weekday"` // 0=воскресенье..6=суббота, null = правило по умолчанию
	Open    string `json:"openTime"`
	Close   string `json:"closeTime"`
}

// ToDomain конвертирует запрос в domain модель и валидирует ее
func (r *UpsertHoursRequest) ToDomain(branchID int64) (*domain.OperatingHoursRule, error) {
	open, err := types.NewTimeStringFromString(r.Open)
	if err != nil {
		return nil, fmt.Errorf("%w: openTime: %v", domain.ErrValidation, err)
	}
	closeTime, err := types.NewTimeStringFromString(r.Close)
	if err != nil {
		return nil, fmt.Errorf("%w: closeTime: %v", domain.ErrValidation, err)
	}

	rule := &domain.OperatingHoursRule{
		BranchID: branchID,
		Weekday:  r.Weekday,
		Open:     open,
		Close:    closeTime,
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	return rule, nil
}

// HoursRuleResponse правило часов работы
type HoursRuleResponse struct {
	ID        int64     `json:"id"`
	BranchID  int64     `json:"branchId"`
	Weekday   *int      `json:"weekday"`
	IsDefault bool      `json:"isDefault"`
	Open      string    `json:"openTime"`
	Close     string    `json:"closeTime"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HoursListResponse список правил филиала
type HoursListResponse struct {
	BranchID int64               `json:"branchId"`
	Rules    []HoursRuleResponse `json:"rules"`
}

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(r *domain.OperatingHoursRule) *HoursRuleResponse {
	return &HoursRuleResponse{
		ID:        r.ID,
		BranchID:  r.BranchID,
		Weekday:   r.Weekday,
		IsDefault: r.IsDefault(),
		Open:      r.Open.String(),
		Close:     r.Close.String(),
		UpdatedAt: r.UpdatedAt,
	}
}

// FromDomainRules конвертирует список правил
func FromDomainRules(branchID int64, rules []domain.OperatingHoursRule) *HoursListResponse {
	resp := &HoursListResponse{BranchID: branchID, Rules: make([]HoursRuleResponse, 0, len(rules))}
	for i := range rules {
		resp.Rules = append(resp.Rules, *FromDomainRule(&rules[i]))
	}
	return resp
}
