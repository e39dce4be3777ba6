package branch

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
)

var hoursColumns = []string{
	"id",
	"branch_id",
	"weekday",
	"open_time",
	"close_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий филиалов и их часов работы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория филиалов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Exists проверяет существование филиала
func (r *Repository) Exists(ctx context.Context, branchID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("branches").
		Where(squirrel.Eq{"id": branchID}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: Exists - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// GetHours получает правило для конкретного дня недели или правило по умолчанию (weekday == nil)
func (r *Repository) GetHours(ctx context.Context, branchID int64, weekday *int) (*domain.OperatingHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(hoursColumns...).
		From("branch_hours").
		Where(squirrel.Eq{"branch_id": branchID})

	if weekday == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"weekday": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"weekday": *weekday})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetHours - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetHours - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// GetHoursWithFallback получает правило с учетом иерархии:
// 1. Правило для дня недели (branch_id, weekday)
// 2. Правило по умолчанию (branch_id, NULL)
//
// Если не найдено ни одно, возвращает ErrHoursNotFound, и вызывающая сторона
// использует domain.FallbackHours.
func (r *Repository) GetHoursWithFallback(ctx context.Context, branchID int64, weekday int) (*domain.OperatingHoursRule, error) {
	rule, err := r.GetHours(ctx, branchID, &weekday)
	if err == nil {
		return rule, nil
	}
	if err != ErrHoursNotFound {
		return nil, fmt.Errorf("%w: GetHoursWithFallback - level 1 (weekday): %v", ErrExecQuery, err)
	}

	rule, err = r.GetHours(ctx, branchID, nil)
	if err == nil {
		return rule, nil
	}
	if err != ErrHoursNotFound {
		return nil, fmt.Errorf("%w: GetHoursWithFallback - level 2 (default): %v", ErrExecQuery, err)
	}

	return nil, ErrHoursNotFound
}

// ListHours получает все правила филиала, правило по умолчанию первым
func (r *Repository) ListHours(ctx context.Context, branchID int64) ([]domain.OperatingHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(hoursColumns...).
		From("branch_hours").
		Where(squirrel.Eq{"branch_id": branchID}).
		OrderBy("weekday ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.OperatingHoursRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListHours - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, *rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListHours - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// UpsertHours создает или заменяет правило для (branch_id, weekday)
func (r *Repository) UpsertHours(ctx context.Context, rule *domain.OperatingHoursRule) (*domain.OperatingHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("branch_hours").
		Columns("branch_id", "weekday", "open_time", "close_time").
		Values(rule.BranchID, rule.Weekday, rule.Open, rule.Close).
		Suffix(`ON CONFLICT (branch_id, (COALESCE(weekday, -1)))
			DO UPDATE SET open_time = EXCLUDED.open_time, close_time = EXCLUDED.close_time, updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertHours - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertHours - execute insert: %v", ErrExecQuery, err)
	}

	return rule, nil
}

// DeleteHours удаляет правило для дня недели или правило по умолчанию (weekday == nil)
func (r *Repository) DeleteHours(ctx context.Context, branchID int64, weekday *int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("branch_hours").
		Where(squirrel.Eq{"branch_id": branchID})

	if weekday == nil {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"weekday": nil})
	} else {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"weekday": *weekday})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteHours - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteHours - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteHours - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrHoursNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*domain.OperatingHoursRule, error) {
	var rule domain.OperatingHoursRule
	var weekday sql.NullInt16

	err := row.Scan(
		&rule.ID,
		&rule.BranchID,
		&weekday,
		&rule.Open,
		&rule.Close,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if weekday.Valid {
		w := int(weekday.Int16)
		rule.Weekday = &w
	}

	return &rule, nil
}
