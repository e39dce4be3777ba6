package order

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberService/internal/domain"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/psqlbuilder"
)

var orderColumns = []string{
	"id",
	"branch_id",
	"staff_id",
	"client_id",
	"start_at",
	"end_at",
	"notes",
	"status",
	"completed_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

var itemColumns = []string{
	"id",
	"order_id",
	"kind",
	"ref_id",
	"quantity",
	"unit_price_minor",
	"subtotal_minor",
}

// Repository репозиторий для работы с заказами и их позициями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет заказ вместе с позициями.
// Должен вызываться внутри транзакции: заказ без позиций существовать не может,
// поэтому при ошибке вставки позиций транзакция откатывается целиком.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if len(order.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("orders").
		Columns(
			"branch_id",
			"staff_id",
			"client_id",
			"start_at",
			"end_at",
			"notes",
			"status",
		).
		Values(
			order.BranchID,
			order.StaffID,
			order.ClientID,
			order.StartAt,
			order.EndAt,
			order.Notes,
			order.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&order.ID,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	itemsInsert := psqlbuilder.Insert("order_items").
		Columns("order_id", "kind", "ref_id", "quantity", "unit_price_minor", "subtotal_minor")
	for _, item := range order.Items {
		itemsInsert = itemsInsert.Values(order.ID, item.Kind, item.RefID, item.Quantity, item.UnitPriceMinor, item.SubtotalMinor)
	}

	query, args, err = itemsInsert.Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build items insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute items insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	// Postgres возвращает RETURNING в порядке VALUES
	i := 0
	for rows.Next() {
		if i >= len(order.Items) {
			break
		}
		if err := rows.Scan(&order.Items[i].ID); err != nil {
			return nil, fmt.Errorf("%w: Create - scan item id: %v", ErrScanRow, err)
		}
		order.Items[i].OrderID = order.ID
		i++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Create - items rows error: %v", ErrScanRow, err)
	}
	if i != len(order.Items) {
		return nil, fmt.Errorf("%w: Create - inserted %d of %d items", ErrExecQuery, i, len(order.Items))
	}

	return order, nil
}

// GetByID получает заказ с позициями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает заказ с блокировкой строки (FOR UPDATE).
// Блокировка действует только внутри транзакции.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id int64, lock bool) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"id": id})
	if lock {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	order, err := scanOrder(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan order: %v", ErrScanRow, err)
	}

	items, err := r.itemsByOrderIDs(ctx, []int64{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]

	return order, nil
}

// List получает заказы по фильтру.
// Для конкретного клиента сортировка от новых к старым, для филиала - по времени визита.
func (r *Repository) List(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(orderColumns...).From("orders")

	if filter.BranchID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"branch_id": *filter.BranchID})
	}
	if filter.ClientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}
	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	// Товарные заказы без времени визита фильтруются по дате создания
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr("COALESCE(start_at, created_at) >= ?", *filter.StartDate))
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr("COALESCE(start_at, created_at) < ?", *filter.EndDate))
	}

	if filter.ClientID != nil && filter.BranchID == nil {
		selectBuilder = selectBuilder.OrderBy("created_at DESC", "id DESC")
	} else {
		selectBuilder = selectBuilder.OrderBy("COALESCE(start_at, created_at) ASC", "id ASC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return orders, nil
	}

	items, err := r.itemsByOrderIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, order := range orders {
		order.Items = items[order.ID]
	}

	return orders, nil
}

// UpdateStatus обновляет статус заказа
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	return r.update(ctx, "UpdateStatus", id, map[string]interface{}{
		"status": status,
	})
}

// MarkCompleted переводит заказ в completed и проставляет completed_at
func (r *Repository) MarkCompleted(ctx context.Context, id int64, completedAt time.Time) error {
	return r.update(ctx, "MarkCompleted", id, map[string]interface{}{
		"status":       domain.StatusCompleted,
		"completed_at": completedAt,
	})
}

// MarkCancelled переводит заказ в cancelled и проставляет cancelled_at
func (r *Repository) MarkCancelled(ctx context.Context, id int64, cancelledAt time.Time) error {
	return r.update(ctx, "MarkCancelled", id, map[string]interface{}{
		"status":       domain.StatusCancelled,
		"cancelled_at": cancelledAt,
	})
}

func (r *Repository) update(ctx context.Context, op string, id int64, values map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("orders").
		SetMap(values).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// itemsByOrderIDs загружает позиции для набора заказов
func (r *Repository) itemsByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderLineItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(itemColumns...).
		From("order_items").
		Where(squirrel.Eq{"order_id": orderIDs}).
		OrderBy("order_id ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: itemsByOrderIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: itemsByOrderIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.OrderLineItem, len(orderIDs))
	for rows.Next() {
		var item domain.OrderLineItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.Kind,
			&item.RefID,
			&item.Quantity,
			&item.UnitPriceMinor,
			&item.SubtotalMinor,
		); err != nil {
			return nil, fmt.Errorf("%w: itemsByOrderIDs - scan row: %v", ErrScanRow, err)
		}
		result[item.OrderID] = append(result[item.OrderID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: itemsByOrderIDs - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID,
		&order.BranchID,
		&order.StaffID,
		&order.ClientID,
		&order.StartAt,
		&order.EndAt,
		&order.Notes,
		&order.Status,
		&order.CompletedAt,
		&order.CancelledAt,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
