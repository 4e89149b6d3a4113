package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/in"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/out"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/metrics"
)

// AssignOrderService — use case назначения заказа водителю.
// Гонка двух диспетчеров разрешается условным UPDATE в хранилище:
// победитель один, проигравший получает ErrAlreadyAssigned.
type AssignOrderService struct {
	orderRepo    out.OrderRepository
	drivers      out.DriverRegistry
	deviceTokens out.DeviceTokenRepository
	notifier     out.EventNotifier
	wakeup       out.WakeupNotifier
	log          *logger.Logger
}

// NewAssignOrderService создает новый сервис
func NewAssignOrderService(
	orderRepo out.OrderRepository,
	drivers out.DriverRegistry,
	deviceTokens out.DeviceTokenRepository,
	notifier out.EventNotifier,
	wakeup out.WakeupNotifier,
	log *logger.Logger,
) *AssignOrderService {
	return &AssignOrderService{
		orderRepo:    orderRepo,
		drivers:      drivers,
		deviceTokens: deviceTokens,
		notifier:     notifier,
		wakeup:       wakeup,
		log:          log,
	}
}

// Execute атомарно назначает Pending заказ водителю
func (s *AssignOrderService) Execute(ctx context.Context, input in.AssignOrderInput) (*in.AssignOrderOutput, error) {
	// Находим водителя
	driver, err := s.drivers.FindByID(ctx, input.DriverID)
	if err != nil {
		s.log.Warn(logger.Entry{
			Action:  "assign_driver_not_found",
			Message: fmt.Sprintf("driver %s: %v", input.DriverID, err),
			OrderID: input.OrderID,
		})
		return nil, err
	}

	asg := domain.Assignment{
		DriverID:    driver.ID,
		DriverName:  driver.Name,
		DriverPhone: driver.Phone,
		AssignedAt:  time.Now().UTC(),
	}

	// Условное обновление: назначение проходит, только если заказ все еще Pending
	if err := s.orderRepo.AssignDriver(ctx, input.OrderID, asg); err != nil {
		if errors.Is(err, domain.ErrAlreadyAssigned) {
			metrics.OrdersAssignLostTotal.Inc()
			s.log.Warn(logger.Entry{
				Action:  "assign_order_lost_race",
				Message: fmt.Sprintf("order %s already assigned", input.OrderID),
				OrderID: input.OrderID,
			})
			return nil, err
		}
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, err
		}
		s.log.Error(logger.Entry{
			Action:  "assign_order_failed",
			Message: err.Error(),
			OrderID: input.OrderID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, fmt.Errorf("assign order: %w", err)
	}

	metrics.OrdersAssignedTotal.Inc()

	// Перечитываем заказ уже с назначением
	order, err := s.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, fmt.Errorf("reload order after assign: %w", err)
	}

	s.log.Info(logger.Entry{
		Action:  "order_assigned",
		Message: fmt.Sprintf("order %s assigned to driver %s (%s)", order.OrderID, driver.ID, driver.Name),
		OrderID: order.OrderID,
		Additional: map[string]any{
			"driver_id": driver.ID,
		},
	})

	notified, wakeupSent := notifyAssignedDriver(ctx, s.notifier, s.wakeup, s.deviceTokens, s.log, driver, order)

	return &in.AssignOrderOutput{
		Order:          order,
		DriverNotified: notified,
		WakeupSent:     wakeupSent,
	}, nil
}
