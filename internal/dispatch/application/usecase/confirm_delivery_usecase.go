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

// ConfirmDeliveryService — use case подтверждения доставки водителем.
//
// Порядок эффектов фиксированный: переход заказа → счетчики водителя →
// запись в журнал транзакций → экспорт → событие админам. Переход заказа —
// единственная точка отказа, которая возвращает ошибку клиенту; все,
// что после успешного перехода, уже не откатывает его.
type ConfirmDeliveryService struct {
	orderRepo out.OrderRepository
	drivers   out.DriverRegistry
	ledger    out.TransactionLedger
	exporter  out.TransactionExporter
	notifier  out.EventNotifier
	log       *logger.Logger
}

// NewConfirmDeliveryService создает новый сервис
func NewConfirmDeliveryService(
	orderRepo out.OrderRepository,
	drivers out.DriverRegistry,
	ledger out.TransactionLedger,
	exporter out.TransactionExporter,
	notifier out.EventNotifier,
	log *logger.Logger,
) *ConfirmDeliveryService {
	return &ConfirmDeliveryService{
		orderRepo: orderRepo,
		drivers:   drivers,
		ledger:    ledger,
		exporter:  exporter,
		notifier:  notifier,
		log:       log,
	}
}

// Execute переводит заказ в Delivered и фиксирует финансовую запись
func (s *ConfirmDeliveryService) Execute(ctx context.Context, input in.ConfirmDeliveryInput) (*in.ConfirmDeliveryOutput, error) {
	// Находим профиль водителя по учетной записи из токена
	driver, err := s.drivers.FindByUserID(ctx, input.DriverUserID)
	if err != nil {
		return nil, err
	}

	// Заказ должен существовать и быть назначен именно этому водителю
	order, err := s.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	// Pending без назначения — ошибка перехода; Forbidden остается
	// строго за чужим назначением
	if order.Assignment == nil {
		s.log.Warn(logger.Entry{
			Action:  "confirm_delivery_rejected",
			Message: fmt.Sprintf("order %s has no assignment", input.OrderID),
			OrderID: input.OrderID,
		})
		return nil, domain.ErrInvalidTransition
	}
	if order.Assignment.DriverID != driver.ID {
		s.log.Warn(logger.Entry{
			Action:  "confirm_delivery_forbidden",
			Message: fmt.Sprintf("order %s is not assigned to driver %s", input.OrderID, driver.ID),
			OrderID: input.OrderID,
		})
		return nil, domain.ErrForbidden
	}

	proof := domain.DeliveryProof{
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Photo:       input.Photo,
		Notes:       input.Notes,
		DeliveredBy: driver.Name,
		DeliveredAt: time.Now().UTC(),
	}

	// Условный переход Assigned → Delivered. Из двух конкурентных
	// подтверждений выигрывает ровно одно
	if err := s.orderRepo.MarkDelivered(ctx, input.OrderID, proof); err != nil {
		s.log.Warn(logger.Entry{
			Action:  "confirm_delivery_rejected",
			Message: fmt.Sprintf("order %s: %v", input.OrderID, err),
			OrderID: input.OrderID,
		})
		return nil, err
	}

	metrics.OrdersDeliveredTotal.Inc()

	s.log.Info(logger.Entry{
		Action:  "order_delivered",
		Message: fmt.Sprintf("order %s delivered by driver %s", input.OrderID, driver.ID),
		OrderID: input.OrderID,
		Additional: map[string]any{
			"driver_id": driver.ID,
		},
	})

	// Счетчики водителя: оба инкрементируются одним атомарным UPDATE
	if _, err := s.drivers.IncrementDeliveryStats(ctx, driver.ID); err != nil {
		s.log.Error(logger.Entry{
			Action:  "increment_delivery_stats_failed",
			Message: err.Error(),
			OrderID: input.OrderID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	// Финансовая запись: ровно одна на заказ, дубликат — ошибка контракта
	tx, err := s.ledger.Record(ctx, domain.Transaction{
		OrderID:       order.OrderID,
		Amount:        order.TotalAmount,
		PaymentMode:   string(order.PaymentMode),
		PaymentStatus: string(domain.PaymentCompleted),
		DriverID:      driver.ID,
		CustomerRef:   order.CustomerName,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateTransaction) {
			s.log.Error(logger.Entry{
				Action:  "transaction_duplicate",
				Message: fmt.Sprintf("transaction for order %s already recorded", order.OrderID),
				OrderID: order.OrderID,
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		} else {
			s.log.Error(logger.Entry{
				Action:  "transaction_record_failed",
				Message: err.Error(),
				OrderID: order.OrderID,
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	} else if s.exporter.Enabled() {
		// Выгрузка во внешнюю таблицу, best-effort
		if err := s.exporter.AppendTransaction(ctx, tx); err != nil {
			s.log.Warn(logger.Entry{
				Action:  "transaction_export_failed",
				Message: err.Error(),
				OrderID: order.OrderID,
			})
		}
	}

	// Событие админам — урезанный payload, без позиций и адреса
	event := domain.OrderDeliveredEvent{
		OrderID:        order.OrderID,
		DeliveryStatus: domain.DeliveryDelivered,
		PaymentStatus:  domain.PaymentCompleted,
		DeliveredAt:    proof.DeliveredAt,
		DeliveredBy:    proof.DeliveredBy,
		Latitude:       proof.Latitude,
		Longitude:      proof.Longitude,
	}
	if err := s.notifier.BroadcastOrderDelivered(ctx, event); err != nil {
		s.log.Warn(logger.Entry{
			Action:  "order_delivered_broadcast_failed",
			Message: err.Error(),
			OrderID: order.OrderID,
		})
	}

	return &in.ConfirmDeliveryOutput{
		OrderID:        order.OrderID,
		DeliveryStatus: string(domain.DeliveryDelivered),
		PaymentStatus:  string(domain.PaymentCompleted),
		DeliveredAt:    proof.DeliveredAt.Format(time.RFC3339),
		Message:        "Delivery confirmed successfully",
	}, nil
}
