package out

import (
	"context"
	"time"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/admin/domain"
	dispatch "github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
)

// DriverListFilter — фильтры листинга водителей
type DriverListFilter struct {
	Status    string
	Page      int
	PageLimit int
}

// StatsRepository — агрегатные выборки для админской отчетности
type StatsRepository interface {
	// Dashboard — счетчики заказов, выручка, число водителей
	Dashboard(ctx context.Context) (*domain.DashboardStats, error)

	// Revenue — выручка по завершенным оплатам с разбивкой по способам;
	// since == nil — за все время
	Revenue(ctx context.Context, since *time.Time) (*domain.RevenueReport, error)

	// Leaderboard — топ водителей по завершенным доставкам
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)

	// ListDrivers — профили водителей с пагинацией
	ListDrivers(ctx context.Context, filter DriverListFilter) ([]*dispatch.Driver, int, error)
}
