package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/in"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/out"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
)

// ReassignOrderService — перенацеливание Assigned заказа на другого водителя.
// Доставленный заказ перенацелить нельзя. Счетчики прежнего водителя
// не трогаем: они растут только при подтверждении доставки.
type ReassignOrderService struct {
	orderRepo    out.OrderRepository
	drivers      out.DriverRegistry
	deviceTokens out.DeviceTokenRepository
	notifier     out.EventNotifier
	wakeup       out.WakeupNotifier
	log          *logger.Logger
}

// NewReassignOrderService создает новый сервис
func NewReassignOrderService(
	orderRepo out.OrderRepository,
	drivers out.DriverRegistry,
	deviceTokens out.DeviceTokenRepository,
	notifier out.EventNotifier,
	wakeup out.WakeupNotifier,
	log *logger.Logger,
) *ReassignOrderService {
	return &ReassignOrderService{
		orderRepo:    orderRepo,
		drivers:      drivers,
		deviceTokens: deviceTokens,
		notifier:     notifier,
		wakeup:       wakeup,
		log:          log,
	}
}

// Execute перенацеливает заказ, пока он в статусе Assigned
func (s *ReassignOrderService) Execute(ctx context.Context, input in.AssignOrderInput) (*in.AssignOrderOutput, error) {
	// Находим нового водителя
	driver, err := s.drivers.FindByID(ctx, input.DriverID)
	if err != nil {
		return nil, err
	}

	asg := domain.Assignment{
		DriverID:    driver.ID,
		DriverName:  driver.Name,
		DriverPhone: driver.Phone,
		AssignedAt:  time.Now().UTC(),
	}

	// Условное обновление: перенацелить можно только Assigned заказ
	if err := s.orderRepo.ReassignDriver(ctx, input.OrderID, asg); err != nil {
		s.log.Warn(logger.Entry{
			Action:  "reassign_order_rejected",
			Message: fmt.Sprintf("order %s: %v", input.OrderID, err),
			OrderID: input.OrderID,
		})
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, fmt.Errorf("reload order after reassign: %w", err)
	}

	s.log.Info(logger.Entry{
		Action:  "order_reassigned",
		Message: fmt.Sprintf("order %s reassigned to driver %s (%s)", order.OrderID, driver.ID, driver.Name),
		OrderID: order.OrderID,
		Additional: map[string]any{
			"driver_id": driver.ID,
		},
	})

	// Новому водителю — те же уведомления, что и при первичном назначении
	notified, wakeupSent := notifyAssignedDriver(ctx, s.notifier, s.wakeup, s.deviceTokens, s.log, driver, order)

	return &in.AssignOrderOutput{
		Order:          order,
		DriverNotified: notified,
		WakeupSent:     wakeupSent,
	}, nil
}
