package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
)

// Repository репозиторий визитов (занятость мастеров)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория визитов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет визит. Пересечение с активным визитом того же мастера
// отклоняется базой (exclusion-ограничение) и возвращается как ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns("order_id", "branch_id", "staff_id", "start_at", "end_at").
		Values(appt.OrderID, appt.BranchID, appt.StaffID, appt.StartAt, appt.EndAt).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&appt.ID); err != nil {
		if isConflict(err) {
			return nil, fmt.Errorf("%w: staff=%d", ErrSlotTaken, appt.StaffID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return appt, nil
}

// ListBusy получает занятые интервалы мастеров, пересекающиеся с [from, to).
// Внутри транзакции строки блокируются (FOR UPDATE) для авторитетной перепроверки.
func (r *Repository) ListBusy(ctx context.Context, staffIDs []int64, from, to time.Time) ([]domain.BusyInterval, error) {
	if len(staffIDs) == 0 {
		return []domain.BusyInterval{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("staff_id", "start_at", "end_at").
		From("appointments").
		Where(squirrel.Eq{"staff_id": staffIDs}).
		Where(squirrel.Eq{"cancelled_at": nil}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("staff_id ASC", "start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBusy - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBusy - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	busy := make([]domain.BusyInterval, 0)
	for rows.Next() {
		var b domain.BusyInterval
		if err := rows.Scan(&b.StaffID, &b.Start, &b.End); err != nil {
			return nil, fmt.Errorf("%w: ListBusy - scan row: %v", ErrScanRow, err)
		}
		busy = append(busy, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBusy - rows error: %v", ErrScanRow, err)
	}

	return busy, nil
}

// CancelByOrderID освобождает время мастера, занятое визитом заказа.
// Для товарных заказов визита нет, это не ошибка.
func (r *Repository) CancelByOrderID(ctx context.Context, orderID int64, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("cancelled_at", cancelledAt).
		Where(squirrel.Eq{"order_id": orderID}).
		Where(squirrel.Eq{"cancelled_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelByOrderID - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CancelByOrderID - execute update: %v", ErrExecQuery, err)
	}

	return nil
}
