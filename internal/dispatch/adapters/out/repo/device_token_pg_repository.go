package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
)

// DeviceTokenPgRepository — PostgreSQL хранилище FCM токенов
type DeviceTokenPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewDeviceTokenPgRepository создает новый экземпляр репозитория
func NewDeviceTokenPgRepository(pool *pgxpool.Pool, log *logger.Logger) *DeviceTokenPgRepository {
	return &DeviceTokenPgRepository{
		pool: pool,
		log:  log,
	}
}

// SaveToken сохраняет токен, повтор той же пары driver+token — no-op
func (r *DeviceTokenPgRepository) SaveToken(ctx context.Context, driverID, token string) error {
	query := `
		INSERT INTO device_tokens (driver_id, token)
		VALUES ($1, $2)
		ON CONFLICT (driver_id, token) DO NOTHING
	`

	if _, err := r.pool.Exec(ctx, query, driverID, token); err != nil {
		return fmt.Errorf("save device token: %w", err)
	}
	return nil
}

// TokensForDriver возвращает все токены водителя
func (r *DeviceTokenPgRepository) TokensForDriver(ctx context.Context, driverID string) ([]string, error) {
	query := `SELECT token FROM device_tokens WHERE driver_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, driverID)
	if err != nil {
		return nil, fmt.Errorf("query device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("scan device token: %w", err)
		}
		tokens = append(tokens, token)
	}

	return tokens, rows.Err()
}

// DeleteToken удаляет невалидный токен
func (r *DeviceTokenPgRepository) DeleteToken(ctx context.Context, driverID, token string) error {
	query := `DELETE FROM device_tokens WHERE driver_id = $1 AND token = $2`

	if _, err := r.pool.Exec(ctx, query, driverID, token); err != nil {
		return fmt.Errorf("delete device token: %w", err)
	}
	return nil
}
