package loyalty

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
)

// Repository репозиторий карт лояльности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория лояльности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Accrue начисляет баллы и штампы, создавая карту при первом начислении
func (r *Repository) Accrue(ctx context.Context, clientID, branchID, points, stamps int64) (*domain.LoyaltyCard, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("loyalty_cards").
		Columns("client_id", "branch_id", "points", "stamps").
		Values(clientID, branchID, points, stamps).
		Suffix(`ON CONFLICT (client_id, branch_id) DO UPDATE SET
			points = loyalty_cards.points + EXCLUDED.points,
			stamps = loyalty_cards.stamps + EXCLUDED.stamps,
			updated_at = NOW()
			RETURNING client_id, branch_id, points, stamps, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Accrue - build upsert query: %v", ErrBuildQuery, err)
	}

	var card domain.LoyaltyCard
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&card.ClientID,
		&card.BranchID,
		&card.Points,
		&card.Stamps,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Accrue - execute upsert: %v", ErrExecQuery, err)
	}

	return &card, nil
}

// Get получает карту клиента в филиале
func (r *Repository) Get(ctx context.Context, clientID, branchID int64) (*domain.LoyaltyCard, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("client_id", "branch_id", "points", "stamps", "updated_at").
		From("loyalty_cards").
		Where(squirrel.Eq{"client_id": clientID, "branch_id": branchID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var card domain.LoyaltyCard
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&card.ClientID,
		&card.BranchID,
		&card.Points,
		&card.Stamps,
		&card.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan: %v", ErrScanRow, err)
	}

	return &card, nil
}
