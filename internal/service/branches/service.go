package branches

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	branchRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/branch"
	"github.com/m04kA/SMC-BarberService/internal/service/branches/models"
)

// Service сервис администрирования часов работы филиалов
type Service struct {
	branchRepo BranchRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса филиалов
func NewService(branchRepo BranchRepository, logger Logger) *Service {
	return &Service{
		branchRepo: branchRepo,
		logger:     logger,
	}
}

// ListHours получает все правила часов работы филиала
func (s *Service) ListHours(ctx context.Context, branchID int64) (*models.HoursListResponse, error) {
	s.logger.Info("ListHours: fetching hours for branch=%d", branchID)

	if err := s.checkBranch(ctx, "ListHours", branchID); err != nil {
		return nil, err
	}

	rules, err := s.branchRepo.ListHours(ctx, branchID)
	if err != nil {
		s.logger.Error("ListHours: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: ListHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListHours: successfully fetched %d rules for branch=%d", len(rules), branchID)
	return models.FromDomainRules(branchID, rules), nil
}

// UpsertHours создает или заменяет правило для дня недели либо правило по умолчанию.
// Доступно только администраторам.
func (s *Service) UpsertHours(ctx context.Context, principal domain.Principal, branchID int64, req *models.UpsertHoursRequest) (*models.HoursRuleResponse, error) {
	s.logger.Info("UpsertHours: branch=%d, weekday=%v, %s-%s by user=%d", branchID, req.Weekday, req.Open, req.Close, principal.UserID)

	// 1. Проверяем права доступа
	if !principal.IsAdmin() {
		s.logger.Warn("UpsertHours: user=%d with role=%s is not an admin", principal.UserID, principal.Role)
		return nil, ErrAccessDenied
	}

	// 2. Валидируем входные данные
	rule, err := req.ToDomain(branchID)
	if err != nil {
		s.logger.Warn("UpsertHours: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Проверяем филиал
	if err := s.checkBranch(ctx, "UpsertHours", branchID); err != nil {
		return nil, err
	}

	// 4. Сохраняем
	saved, err := s.branchRepo.UpsertHours(ctx, rule)
	if err != nil {
		s.logger.Error("UpsertHours: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: UpsertHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertHours: successfully saved rule id=%d for branch=%d", saved.ID, branchID)
	return models.FromDomainRule(saved), nil
}

// DeleteHours удаляет правило. После удаления действует правило по умолчанию
// либо встроенные часы 09:00-18:00. Доступно только администраторам.
func (s *Service) DeleteHours(ctx context.Context, principal domain.Principal, branchID int64, weekday string) error {
	s.logger.Info("DeleteHours: branch=%d, weekday=%s by user=%d", branchID, weekday, principal.UserID)

	if !principal.IsAdmin() {
		s.logger.Warn("DeleteHours: user=%d with role=%s is not an admin", principal.UserID, principal.Role)
		return ErrAccessDenied
	}

	day, err := models.ParseWeekday(weekday)
	if err != nil {
		s.logger.Warn("DeleteHours: invalid weekday=%s: %v", weekday, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.branchRepo.DeleteHours(ctx, branchID, day); err != nil {
		if errors.Is(err, branchRepo.ErrHoursNotFound) {
			s.logger.Warn("DeleteHours: rule branch=%d weekday=%s not found", branchID, weekday)
			return ErrHoursNotFound
		}
		s.logger.Error("DeleteHours: repository error for branch=%d: %v", branchID, err)
		return fmt.Errorf("%w: DeleteHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteHours: successfully deleted rule branch=%d weekday=%s", branchID, weekday)
	return nil
}

func (s *Service) checkBranch(ctx context.Context, op string, branchID int64) error {
	exists, err := s.branchRepo.Exists(ctx, branchID)
	if err != nil {
		s.logger.Error("%s: failed to check branch id=%d: %v", op, branchID, err)
		return fmt.Errorf("%w: %s - check branch: %v", ErrInternal, op, err)
	}
	if !exists {
		s.logger.Warn("%s: branch id=%d not found", op, branchID)
		return ErrBranchNotFound
	}
	return nil
}
