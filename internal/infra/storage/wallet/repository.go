package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
)

// Repository репозиторий кошелька мастера (журнал начислений, только добавление)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория кошелька
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись в журнал
func (r *Repository) Append(ctx context.Context, entry *domain.WalletEntry) (*domain.WalletEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("staff_wallet_entries").
		Columns("staff_id", "order_id", "amount_minor", "kind").
		Values(entry.StaffID, entry.OrderID, entry.AmountMinor, entry.Kind).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	return entry, nil
}

// ListByStaff получает записи мастера за период [from, to), nil означает без ограничения
func (r *Repository) ListByStaff(ctx context.Context, staffID int64, from, to *time.Time) ([]domain.WalletEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "staff_id", "order_id", "amount_minor", "kind", "created_at").
		From("staff_wallet_entries").
		Where(squirrel.Eq{"staff_id": staffID})

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"created_at": *from})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"created_at": *to})
	}

	query, args, err := selectBuilder.OrderBy("created_at ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.WalletEntry, 0)
	for rows.Next() {
		var e domain.WalletEntry
		if err := rows.Scan(&e.ID, &e.StaffID, &e.OrderID, &e.AmountMinor, &e.Kind, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByStaff - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByStaff - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// Balance возвращает текущий баланс мастера (сумма всех записей)
func (r *Repository) Balance(ctx context.Context, staffID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(amount_minor), 0)").
		From("staff_wallet_entries").
		Where(squirrel.Eq{"staff_id": staffID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: Balance - build select query: %v", ErrBuildQuery, err)
	}

	var balance int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&balance); err != nil {
		return 0, fmt.Errorf("%w: Balance - scan: %v", ErrScanRow, err)
	}

	return balance, nil
}
