package usecase

import (
	"context"
	"fmt"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/out"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/metrics"
)

// notifyAssignedDriver доставляет ORDER_ASSIGNED по живому каналу, а если
// водитель не подключен — будит его устройство push-сигналом.
// Оба пути best-effort: сбой уведомления назначение не откатывает
func notifyAssignedDriver(
	ctx context.Context,
	notifier out.EventNotifier,
	wakeup out.WakeupNotifier,
	deviceTokens out.DeviceTokenRepository,
	log *logger.Logger,
	driver *domain.Driver,
	order *domain.Order,
) (notified, wakeupSent bool) {
	delivered, err := notifier.NotifyOrderAssigned(ctx, driver.UserID, order)
	if err != nil {
		log.Warn(logger.Entry{
			Action:  "order_assigned_notify_failed",
			Message: err.Error(),
			OrderID: order.OrderID,
		})
	}
	if delivered {
		return true, false
	}

	// Живого канала нет — пробуем разбудить устройство
	if !wakeup.Enabled() {
		log.Info(logger.Entry{
			Action:  "wakeup_skipped_disabled",
			Message: fmt.Sprintf("driver %s offline, push channel disabled", driver.ID),
			OrderID: order.OrderID,
		})
		return false, false
	}

	tokens, err := deviceTokens.TokensForDriver(ctx, driver.ID)
	if err != nil {
		log.Warn(logger.Entry{
			Action:  "wakeup_tokens_load_failed",
			Message: err.Error(),
			OrderID: order.OrderID,
		})
		return false, false
	}
	if len(tokens) == 0 {
		log.Info(logger.Entry{
			Action:  "wakeup_skipped_no_tokens",
			Message: fmt.Sprintf("driver %s has no registered devices", driver.ID),
			OrderID: order.OrderID,
		})
		return false, false
	}

	result := wakeup.NotifyMany(ctx, tokens)
	metrics.WakeupPushesTotal.Add(float64(len(tokens)))

	log.Info(logger.Entry{
		Action:  "wakeup_sent",
		Message: fmt.Sprintf("driver %s: %d ok, %d failed", driver.ID, result.SuccessCount, result.FailureCount),
		OrderID: order.OrderID,
	})

	// Невалидные токены вычищаем сразу (Err ставится только для них)
	for _, r := range result.Results {
		if !r.Delivered && r.Err != nil {
			if err := deviceTokens.DeleteToken(ctx, driver.ID, r.Token); err != nil {
				log.Warn(logger.Entry{
					Action:  "wakeup_token_cleanup_failed",
					Message: err.Error(),
				})
			}
		}
	}

	return false, result.SuccessCount > 0
}
