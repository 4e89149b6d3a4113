package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/out"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/config"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
)

// CleanupJob — плановая retention-очистка доставленных заказов.
// Журнал транзакций не трогает: финансовые записи живут вечно
type CleanupJob struct {
	orders        out.OrderRepository
	retentionDays int
	schedule      string
	cron          *cron.Cron
	log           *logger.Logger
}

// NewCleanupJob создает новую задачу очистки
func NewCleanupJob(orders out.OrderRepository, cfg config.CleanupConfig, log *logger.Logger) *CleanupJob {
	return &CleanupJob{
		orders:        orders,
		retentionDays: cfg.RetentionDays,
		schedule:      cfg.Schedule,
		cron:          cron.New(),
		log:           log,
	}
}

// Start запускает задачу по расписанию
func (j *CleanupJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		if err := j.RunOnce(context.Background()); err != nil {
			j.log.Error(logger.Entry{
				Action:  "cleanup_job_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	})
	if err != nil {
		return fmt.Errorf("schedule cleanup job: %w", err)
	}

	j.cron.Start()
	j.log.Info(logger.Entry{
		Action:  "cleanup_job_started",
		Message: fmt.Sprintf("delivered orders older than %d days will be removed, schedule %q", j.retentionDays, j.schedule),
	})
	return nil
}

// Stop останавливает задачу
func (j *CleanupJob) Stop() {
	j.cron.Stop()
	j.log.Info(logger.Entry{
		Action:  "cleanup_job_stopped",
		Message: "cleanup job stopped",
	})
}

// RunOnce выполняет одну итерацию очистки
func (j *CleanupJob) RunOnce(ctx context.Context) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -j.retentionDays)

	deleted, err := j.orders.DeleteDeliveredBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("cleanup delivered orders: %w", err)
	}

	j.log.Info(logger.Entry{
		Action:  "cleanup_completed",
		Message: fmt.Sprintf("%d old delivery records deleted", deleted),
	})
	return nil
}
