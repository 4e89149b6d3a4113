package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/admin/application/ports/out"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/admin/domain"
	dispatch "github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
)

// StatsPgRepository — агрегатные выборки для отчетности
type StatsPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewStatsPgRepository создает новый репозиторий
func NewStatsPgRepository(pool *pgxpool.Pool, log *logger.Logger) *StatsPgRepository {
	return &StatsPgRepository{
		pool: pool,
		log:  log,
	}
}

// Dashboard собирает сводку одним запросом
func (r *StatsPgRepository) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM orders WHERE delivery_status = 'Pending'),
			(SELECT COUNT(*) FROM orders WHERE delivery_status = 'Delivered'),
			(SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE payment_status = 'Completed'),
			(SELECT COUNT(*) FROM delivery_boys)
	`

	stats := &domain.DashboardStats{}
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalOrders,
		&stats.PendingOrders,
		&stats.DeliveredOrders,
		&stats.TotalRevenue,
		&stats.TotalDeliveryBoys,
	)
	if err != nil {
		return nil, fmt.Errorf("query dashboard stats: %w", err)
	}

	return stats, nil
}

// Revenue — выручка по завершенным оплатам с разбивкой по способам
func (r *StatsPgRepository) Revenue(ctx context.Context, since *time.Time) (*domain.RevenueReport, error) {
	query := `
		SELECT
			COALESCE(SUM(total_amount), 0),
			COALESCE(SUM(total_amount) FILTER (WHERE payment_mode = 'Cash'), 0),
			COALESCE(SUM(total_amount) FILTER (WHERE payment_mode = 'UPI'), 0),
			COALESCE(SUM(total_amount) FILTER (WHERE payment_mode = 'Card'), 0)
		FROM orders
		WHERE payment_status = 'Completed'
		  AND ($1::timestamptz IS NULL OR created_at >= $1)
	`

	report := &domain.RevenueReport{}
	err := r.pool.QueryRow(ctx, query, since).Scan(
		&report.TotalRevenue,
		&report.Cash,
		&report.UPI,
		&report.Card,
	)
	if err != nil {
		return nil, fmt.Errorf("query revenue: %w", err)
	}

	return report, nil
}

// Leaderboard — топ водителей по завершенным доставкам
func (r *StatsPgRepository) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, name, completed_deliveries
		FROM delivery_boys
		ORDER BY completed_deliveries DESC, name
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	rank := 1
	for rows.Next() {
		e := domain.LeaderboardEntry{Rank: rank}
		if err := rows.Scan(&e.DriverID, &e.Name, &e.Deliveries); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
		rank++
	}

	return entries, rows.Err()
}

// ListDrivers — профили водителей с пагинацией
func (r *StatsPgRepository) ListDrivers(ctx context.Context, filter out.DriverListFilter) ([]*dispatch.Driver, int, error) {
	where := `WHERE true`
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM delivery_boys `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count delivery boys: %w", err)
	}

	query := `
		SELECT id, user_id, name, phone, status,
		       total_deliveries, completed_deliveries, average_rating,
		       created_at, updated_at
		FROM delivery_boys ` + where + ` ORDER BY created_at DESC`
	if filter.PageLimit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.PageLimit, (page-1)*filter.PageLimit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query delivery boys: %w", err)
	}
	defer rows.Close()

	var drivers []*dispatch.Driver
	for rows.Next() {
		d := &dispatch.Driver{}
		err := rows.Scan(
			&d.ID, &d.UserID, &d.Name, &d.Phone, &d.Status,
			&d.TotalDeliveries, &d.CompletedDeliveries, &d.AverageRating,
			&d.CreatedAt, &d.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan delivery boy: %w", err)
		}
		drivers = append(drivers, d)
	}

	return drivers, total, rows.Err()
}
