package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/wahidman/serverr/internal/domain"
	"github.com/wahidman/serverr/pkg/dbmetrics"
	"github.com/wahidman/serverr/pkg/psqlbuilder"
)

const (
	tableOrders = "orders"

	// Имена индексов из миграций, по ним различаем нарушения уникальности
	constraintActiveSlot = "orders_active_slot_uidx"
	constraintReference  = "orders_order_reference_uidx"

	pqUniqueViolation = "23505"
)

var orderColumns = []string{
	"id",
	"order_reference",
	"customer_name",
	"contact_number",
	"location",
	"booking_date",
	"booking_time",
	"package_label",
	"deposit_amount",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заказами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый заказ
// Нарушение уникальности слота возвращается как ErrSlotTaken, номера заказа как ErrDuplicateReference
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableOrders).
		Columns(
			"id",
			"order_reference",
			"customer_name",
			"contact_number",
			"location",
			"booking_date",
			"booking_time",
			"package_label",
			"deposit_amount",
			"status",
		).
		Values(
			order.ID,
			order.OrderReference,
			order.CustomerName,
			order.ContactNumber,
			order.Location,
			order.BookingDate,
			order.BookingTime,
			order.PackageLabel,
			order.DepositAmount,
			order.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	return order, nil
}

// GetByID получает заказ по идентификатору
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByReference получает заказ по публичному номеру ORD-...
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Order, error) {
	return r.getOne(ctx, "GetByReference", squirrel.Eq{"order_reference": reference})
}

// GetActiveBySlot получает заказы, удерживающие слот (PENDING или PAID)
// Внутри транзакции строки блокируются через FOR UPDATE
func (r *Repository) GetActiveBySlot(ctx context.Context, date time.Time, timeLabel string) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(orderColumns...).
		From(tableOrders).
		Where(squirrel.Eq{
			"booking_date": date,
			"booking_time": timeLabel,
			"status":       statusStrings(domain.SlotBlockingStatuses),
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySlot - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanOrders(rows)
}

// GetByDate получает все заказы на дату (в любом статусе), отсортированные по времени слота
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns...).
		From(tableOrders).
		Where(squirrel.Eq{"booking_date": date}).
		OrderBy("booking_time ASC", "created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanOrders(rows)
}

// List получает все заказы, новые в конце
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns...).
		From(tableOrders).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanOrders(rows)
}

// UpdateStatusIfPending переводит заказ в status только если он ещё в PENDING (compare-and-set)
// Возвращает false, если ни одна строка не изменилась
func (r *Repository) UpdateStatusIfPending(ctx context.Context, reference string, status domain.OrderStatus) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableOrders).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"order_reference": reference,
			"status":          domain.StatusPending,
		}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatusIfPending - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatusIfPending - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatusIfPending - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

func (r *Repository) getOne(ctx context.Context, method string, where squirrel.Sqlizer) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns...).
		From(tableOrders).
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	order, err := scanOrder(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan order: %v", ErrScanRow, method, err)
	}

	return order, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		order                domain.Order
		status               string
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&order.ID,
		&order.OrderReference,
		&order.CustomerName,
		&order.ContactNumber,
		&order.Location,
		&order.BookingDate,
		&order.BookingTime,
		&order.PackageLabel,
		&order.DepositAmount,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.Status = domain.OrderStatus(status)
	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	return &order, nil
}

// scanOrders сканирует строки результата в слайс заказов
func (r *Repository) scanOrders(rows *sql.Rows) ([]*domain.Order, error) {
	orders := make([]*domain.Order, 0)

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanOrders - scan row: %v", ErrScanRow, err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanOrders - rows iteration: %v", ErrScanRow, err)
	}

	return orders, nil
}

// mapUniqueViolation распознаёт нарушения уникальных индексов таблицы orders
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != pqUniqueViolation {
		return nil
	}

	switch pqErr.Constraint {
	case constraintActiveSlot:
		return ErrSlotTaken
	case constraintReference:
		return ErrDuplicateReference
	default:
		return nil
	}
}

func statusStrings(statuses []domain.OrderStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
