package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/out"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
)

const orderColumns = `
	order_id, customer_name, customer_phone, items, delivery_address,
	total_amount, payment_mode, payment_status, delivery_status,
	assigned_driver_id, assigned_driver_name, assigned_driver_phone, assigned_at,
	delivered_at, delivered_by, delivery_latitude, delivery_longitude,
	delivery_photo, delivery_notes,
	actual_payment_method, payment_notes, payment_updated_at,
	created_at, updated_at`

// OrderPgRepository — PostgreSQL репозиторий заказов
type OrderPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewOrderPgRepository создает новый экземпляр репозитория
func NewOrderPgRepository(pool *pgxpool.Pool, log *logger.Logger) *OrderPgRepository {
	return &OrderPgRepository{
		pool: pool,
		log:  log,
	}
}

// Create сохраняет новый заказ
func (r *OrderPgRepository) Create(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	query := `
		INSERT INTO orders (
			order_id, customer_name, customer_phone, items, delivery_address,
			total_amount, payment_mode, payment_status, delivery_status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = r.pool.Exec(ctx, query,
		order.OrderID,
		order.CustomerName,
		order.CustomerPhone,
		items,
		order.DeliveryAddress,
		order.TotalAmount,
		order.PaymentMode,
		order.PaymentStatus,
		order.DeliveryStatus,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.log.Error(logger.Entry{
			Action:  "db_create_order_failed",
			Message: err.Error(),
			OrderID: order.OrderID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

// FindByID возвращает заказ по идентификатору
func (r *OrderPgRepository) FindByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		r.log.Error(logger.Entry{
			Action:  "db_find_order_failed",
			Message: err.Error(),
			OrderID: orderID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, fmt.Errorf("query order by id: %w", err)
	}

	return order, nil
}

// AssignDriver назначает водителя условным обновлением: проходит только
// если заказ все еще Pending. Проверка и запись — один атомарный UPDATE
func (r *OrderPgRepository) AssignDriver(ctx context.Context, orderID string, asg domain.Assignment) error {
	query := `
		UPDATE orders SET
			assigned_driver_id = $1,
			assigned_driver_name = $2,
			assigned_driver_phone = $3,
			assigned_at = $4,
			delivery_status = 'Assigned',
			updated_at = NOW()
		WHERE order_id = $5
		  AND delivery_status = 'Pending'
	`

	result, err := r.pool.Exec(ctx, query,
		asg.DriverID, asg.DriverName, asg.DriverPhone, asg.AssignedAt, orderID)
	if err != nil {
		r.log.Error(logger.Entry{
			Action:  "db_assign_driver_failed",
			Message: err.Error(),
			OrderID: orderID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return fmt.Errorf("assign driver: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Ноль строк — заказа нет либо его уже увели. Различаем перечитыванием
		if _, err := r.FindByID(ctx, orderID); errors.Is(err, domain.ErrOrderNotFound) {
			return domain.ErrOrderNotFound
		}
		return domain.ErrAlreadyAssigned
	}

	return nil
}

// ReassignDriver перенацеливает назначение, пока заказ Assigned
func (r *OrderPgRepository) ReassignDriver(ctx context.Context, orderID string, asg domain.Assignment) error {
	query := `
		UPDATE orders SET
			assigned_driver_id = $1,
			assigned_driver_name = $2,
			assigned_driver_phone = $3,
			assigned_at = $4,
			updated_at = NOW()
		WHERE order_id = $5
		  AND delivery_status = 'Assigned'
	`

	result, err := r.pool.Exec(ctx, query,
		asg.DriverID, asg.DriverName, asg.DriverPhone, asg.AssignedAt, orderID)
	if err != nil {
		return fmt.Errorf("reassign driver: %w", err)
	}

	if result.RowsAffected() == 0 {
		if _, err := r.FindByID(ctx, orderID); errors.Is(err, domain.ErrOrderNotFound) {
			return domain.ErrOrderNotFound
		}
		return domain.ErrInvalidTransition
	}

	return nil
}

// MarkDelivered переводит заказ в Delivered условным обновлением (только из
// Assigned) и записывает proof-поля. Оплата фиксируется как Completed:
// наличные собраны при вручении, остальные режимы оплачены заранее
func (r *OrderPgRepository) MarkDelivered(ctx context.Context, orderID string, proof domain.DeliveryProof) error {
	query := `
		UPDATE orders SET
			delivery_status = 'Delivered',
			payment_status = 'Completed',
			delivered_at = $1,
			delivered_by = $2,
			delivery_latitude = $3,
			delivery_longitude = $4,
			delivery_photo = NULLIF($5, ''),
			delivery_notes = NULLIF($6, ''),
			updated_at = NOW()
		WHERE order_id = $7
		  AND delivery_status = 'Assigned'
	`

	result, err := r.pool.Exec(ctx, query,
		proof.DeliveredAt, proof.DeliveredBy, proof.Latitude, proof.Longitude,
		proof.Photo, proof.Notes, orderID)
	if err != nil {
		r.log.Error(logger.Entry{
			Action:  "db_mark_delivered_failed",
			Message: err.Error(),
			OrderID: orderID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return fmt.Errorf("mark delivered: %w", err)
	}

	if result.RowsAffected() == 0 {
		if _, err := r.FindByID(ctx, orderID); errors.Is(err, domain.ErrOrderNotFound) {
			return domain.ErrOrderNotFound
		}
		return domain.ErrInvalidTransition
	}

	return nil
}

// UpdatePaymentStatus — сверка оплаты админом, вне машины состояний доставки
func (r *OrderPgRepository) UpdatePaymentStatus(ctx context.Context, orderID string, status domain.PaymentStatus, actualMethod, notes string) (*domain.Order, error) {
	query := `
		UPDATE orders SET
			payment_status = $1,
			actual_payment_method = NULLIF($2, ''),
			payment_notes = NULLIF($3, ''),
			payment_updated_at = NOW(),
			updated_at = NOW()
		WHERE order_id = $4
	`

	result, err := r.pool.Exec(ctx, query, status, actualMethod, notes, orderID)
	if err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, domain.ErrOrderNotFound
	}

	return r.FindByID(ctx, orderID)
}

// List возвращает заказы по фильтру вместе с общим количеством
func (r *OrderPgRepository) List(ctx context.Context, filter out.OrderListFilter) ([]*domain.Order, int, error) {
	where := `WHERE true`
	args := []any{}

	if filter.DriverID != "" {
		args = append(args, filter.DriverID)
		where += fmt.Sprintf(" AND assigned_driver_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND delivery_status = $%d", len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		where += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		where += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count driver orders: %w", err)
	}

	query := `SELECT ` + orderColumns + ` FROM orders ` + where + ` ORDER BY created_at DESC`
	if filter.PageLimit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.PageLimit, (page-1)*filter.PageLimit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query driver orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, total, rows.Err()
}

// FindForDriver возвращает заказ, только если он назначен этому водителю
func (r *OrderPgRepository) FindForDriver(ctx context.Context, orderID, driverID string) (*domain.Order, error) {
	order, err := r.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Assignment == nil || order.Assignment.DriverID != driverID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

// DeleteDeliveredBefore удаляет доставленные заказы старше порога
func (r *OrderPgRepository) DeleteDeliveredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM orders
		WHERE delivery_status = 'Delivered'
		  AND delivered_at < $1
	`

	result, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete delivered orders: %w", err)
	}
	return result.RowsAffected(), nil
}

// scanOrder читает строку заказа и собирает вложенные структуры
// из nullable колонок
func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		order        domain.Order
		items        []byte
		driverID     *string
		driverName   *string
		driverPhone  *string
		assignedAt   *time.Time
		deliveredAt  *time.Time
		deliveredBy  *string
		latitude     *float64
		longitude    *float64
		photo        *string
		notes        *string
		actualMethod *string
		payNotes     *string
		payUpdatedAt *time.Time
	)

	err := row.Scan(
		&order.OrderID,
		&order.CustomerName,
		&order.CustomerPhone,
		&items,
		&order.DeliveryAddress,
		&order.TotalAmount,
		&order.PaymentMode,
		&order.PaymentStatus,
		&order.DeliveryStatus,
		&driverID,
		&driverName,
		&driverPhone,
		&assignedAt,
		&deliveredAt,
		&deliveredBy,
		&latitude,
		&longitude,
		&photo,
		&notes,
		&actualMethod,
		&payNotes,
		&payUpdatedAt,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}

	if driverID != nil {
		order.Assignment = &domain.Assignment{
			DriverID:    *driverID,
			DriverName:  strOrEmpty(driverName),
			DriverPhone: strOrEmpty(driverPhone),
		}
		if assignedAt != nil {
			order.Assignment.AssignedAt = *assignedAt
		}
	}

	if deliveredAt != nil {
		order.Proof = &domain.DeliveryProof{
			DeliveredAt: *deliveredAt,
			DeliveredBy: strOrEmpty(deliveredBy),
			Photo:       strOrEmpty(photo),
			Notes:       strOrEmpty(notes),
		}
		if latitude != nil {
			order.Proof.Latitude = *latitude
		}
		if longitude != nil {
			order.Proof.Longitude = *longitude
		}
	}

	if payUpdatedAt != nil {
		order.Reconciliation = &domain.PaymentReconciliation{
			ActualMethod: strOrEmpty(actualMethod),
			Notes:        strOrEmpty(payNotes),
			UpdatedAt:    *payUpdatedAt,
		}
	}

	return &order, nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
