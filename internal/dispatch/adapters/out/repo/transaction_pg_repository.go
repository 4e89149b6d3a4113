package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/out"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
)

// Код unique_violation в PostgreSQL
const pgUniqueViolation = "23505"

// TransactionPgRepository — append-only журнал финансовых записей.
// Уникальность по order_id обеспечивает БД, а не приложение
type TransactionPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewTransactionPgRepository создает новый экземпляр репозитория
func NewTransactionPgRepository(pool *pgxpool.Pool, log *logger.Logger) *TransactionPgRepository {
	return &TransactionPgRepository{
		pool: pool,
		log:  log,
	}
}

// Record сохраняет финансовую запись. Повторная запись по тому же заказу
// упирается в UNIQUE(order_id) и возвращает ErrDuplicateTransaction
func (r *TransactionPgRepository) Record(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	query := `
		INSERT INTO transactions (id, order_id, amount, payment_mode, payment_status, driver_id, customer_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		tx.ID, tx.OrderID, tx.Amount, tx.PaymentMode, tx.PaymentStatus, tx.DriverID, tx.CustomerRef,
	).Scan(&tx.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, domain.ErrDuplicateTransaction
		}
		r.log.Error(logger.Entry{
			Action:  "db_record_transaction_failed",
			Message: err.Error(),
			OrderID: tx.OrderID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	return &tx, nil
}

// List возвращает транзакции для админской отчетности
func (r *TransactionPgRepository) List(ctx context.Context, filter out.TransactionListFilter) ([]*domain.Transaction, int, error) {
	where := `WHERE true`
	args := []any{}

	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		where += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		where += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	query := `
		SELECT id, order_id, amount, payment_mode, payment_status, driver_id, customer_ref, created_at
		FROM transactions ` + where + ` ORDER BY created_at DESC`
	if filter.PageLimit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.PageLimit, (page-1)*filter.PageLimit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []*domain.Transaction
	for rows.Next() {
		tx := &domain.Transaction{}
		err := rows.Scan(
			&tx.ID,
			&tx.OrderID,
			&tx.Amount,
			&tx.PaymentMode,
			&tx.PaymentStatus,
			&tx.DriverID,
			&tx.CustomerRef,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}

	return txs, total, rows.Err()
}
