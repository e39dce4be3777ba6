package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	staffRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-BarberService/internal/service/wallet/models"
)

// Service сервис кошелька мастера: баланс, журнал и выписка
type Service struct {
	walletRepo WalletRepository
	staffRepo  StaffRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса кошелька
func NewService(walletRepo WalletRepository, staffRepo StaffRepository, logger Logger) *Service {
	return &Service{
		walletRepo: walletRepo,
		staffRepo:  staffRepo,
		logger:     logger,
	}
}

// Get получает баланс и записи кошелька за период.
// Мастер видит только свой кошелек, администратор - любой.
func (s *Service) Get(ctx context.Context, principal domain.Principal, req *models.GetWalletRequest) (*models.WalletResponse, error) {
	s.logger.Info("Get: fetching wallet of staff=%d for user=%d", req.StaffID, principal.UserID)

	staff, err := s.authorize(ctx, "Get", principal, req)
	if err != nil {
		return nil, err
	}

	balance, err := s.walletRepo.Balance(ctx, req.StaffID)
	if err != nil {
		s.logger.Error("Get: failed to get balance of staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: Get - balance: %v", ErrInternal, err)
	}

	entries, err := s.walletRepo.ListByStaff(ctx, req.StaffID, req.From, req.To)
	if err != nil {
		s.logger.Error("Get: failed to list entries of staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: Get - entries: %v", ErrInternal, err)
	}

	s.logger.Info("Get: staff=%d balance=%d, entries=%d", req.StaffID, balance, len(entries))
	return &models.WalletResponse{
		StaffID:      staff.ID,
		StaffName:    staff.Name,
		BalanceMinor: balance,
		Entries:      models.FromDomainEntries(entries),
	}, nil
}

// authorize проверяет права доступа и существование мастера
func (s *Service) authorize(ctx context.Context, op string, principal domain.Principal, req *models.GetWalletRequest) (*domain.Staff, error) {
	if req.StaffID <= 0 {
		return nil, fmt.Errorf("%w: staffId must be positive", ErrInvalidInput)
	}
	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	switch {
	case principal.IsAdmin():
	case principal.Role == domain.RoleStaff && principal.UserID == req.StaffID:
	default:
		s.logger.Warn("%s: user=%d with role=%s cannot read wallet of staff=%d", op, principal.UserID, principal.Role, req.StaffID)
		return nil, ErrAccessDenied
	}

	staff, err := s.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("%s: staff id=%d not found", op, req.StaffID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("%s: failed to get staff id=%d: %v", op, req.StaffID, err)
		return nil, fmt.Errorf("%w: %s - get staff: %v", ErrInternal, op, err)
	}

	return staff, nil
}
