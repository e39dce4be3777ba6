package settlement

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
)

// Repository репозиторий результатов расчета заказов (одна запись на заказ)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расчетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет результат расчета
func (r *Repository) Create(ctx context.Context, s *domain.Settlement) (*domain.Settlement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("order_settlements").
		Columns(
			"order_id",
			"staff_id",
			"earning_minor",
			"points_added",
			"stamps_added",
			"commission_bp",
		).
		Values(
			s.OrderID,
			s.StaffID,
			s.EarningMinor,
			s.LoyaltyPointsAdded,
			s.LoyaltyStampsAdded,
			s.CommissionBasisPoints,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// GetByOrderID получает результат расчета заказа
func (r *Repository) GetByOrderID(ctx context.Context, orderID int64) (*domain.Settlement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"order_id",
		"staff_id",
		"earning_minor",
		"points_added",
		"stamps_added",
		"commission_bp",
		"created_at",
	).
		From("order_settlements").
		Where(squirrel.Eq{"order_id": orderID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrderID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Settlement
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.OrderID,
		&s.StaffID,
		&s.EarningMinor,
		&s.LoyaltyPointsAdded,
		&s.LoyaltyStampsAdded,
		&s.CommissionBasisPoints,
		&s.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSettlementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrderID - scan: %v", ErrScanRow, err)
	}

	return &s, nil
}
