package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
)

const driverColumns = `
	id, user_id, name, phone, status,
	total_deliveries, completed_deliveries, average_rating,
	created_at, updated_at`

// DriverPgRepository — PostgreSQL реестр водителей
type DriverPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewDriverPgRepository создает новый экземпляр репозитория
func NewDriverPgRepository(pool *pgxpool.Pool, log *logger.Logger) *DriverPgRepository {
	return &DriverPgRepository{
		pool: pool,
		log:  log,
	}
}

// FindByID возвращает водителя по ID профиля
func (r *DriverPgRepository) FindByID(ctx context.Context, driverID string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM delivery_boys WHERE id = $1`
	return r.queryOne(ctx, query, driverID)
}

// FindByUserID возвращает водителя по ID учетной записи
func (r *DriverPgRepository) FindByUserID(ctx context.Context, userID string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM delivery_boys WHERE user_id = $1`
	return r.queryOne(ctx, query, userID)
}

// IncrementDeliveryStats атомарно увеличивает оба счетчика одним UPDATE.
// Конкурентные подтверждения по одному водителю сериализуются на строке,
// инкременты не теряются
func (r *DriverPgRepository) IncrementDeliveryStats(ctx context.Context, driverID string) (*domain.Driver, error) {
	query := `
		UPDATE delivery_boys SET
			total_deliveries = total_deliveries + 1,
			completed_deliveries = completed_deliveries + 1,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + driverColumns

	driver, err := scanDriver(r.pool.QueryRow(ctx, query, driverID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDriverNotFound
		}
		r.log.Error(logger.Entry{
			Action:  "db_increment_stats_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, fmt.Errorf("increment delivery stats: %w", err)
	}

	return driver, nil
}

// UpdateProfile обновляет имя и телефон профиля водителя.
// Учетная запись синхронизируется той же транзакцией
func (r *DriverPgRepository) UpdateProfile(ctx context.Context, driverID, name, phone string) (*domain.Driver, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		UPDATE delivery_boys SET
			name = COALESCE(NULLIF($2, ''), name),
			phone = COALESCE(NULLIF($3, ''), phone),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + driverColumns

	driver, err := scanDriver(tx.QueryRow(ctx, query, driverID, name, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDriverNotFound
		}
		return nil, fmt.Errorf("update driver profile: %w", err)
	}

	userQuery := `
		UPDATE users SET name = $2, phone = $3, updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, userQuery, driver.UserID, driver.Name, driver.Phone); err != nil {
		return nil, fmt.Errorf("sync user row: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return driver, nil
}

func (r *DriverPgRepository) queryOne(ctx context.Context, query string, arg any) (*domain.Driver, error) {
	driver, err := scanDriver(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDriverNotFound
		}
		r.log.Error(logger.Entry{
			Action:  "db_find_driver_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, fmt.Errorf("query driver: %w", err)
	}
	return driver, nil
}

func scanDriver(row pgx.Row) (*domain.Driver, error) {
	driver := &domain.Driver{}
	err := row.Scan(
		&driver.ID,
		&driver.UserID,
		&driver.Name,
		&driver.Phone,
		&driver.Status,
		&driver.TotalDeliveries,
		&driver.CompletedDeliveries,
		&driver.AverageRating,
		&driver.CreatedAt,
		&driver.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return driver, nil
}
