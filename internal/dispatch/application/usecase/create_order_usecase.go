package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/in"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/out"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/metrics"
)

// CreateOrderService — use case создания заказа диспетчером
type CreateOrderService struct {
	orderRepo out.OrderRepository
	notifier  out.EventNotifier
	log       *logger.Logger
}

// NewCreateOrderService создает новый сервис
func NewCreateOrderService(
	orderRepo out.OrderRepository,
	notifier out.EventNotifier,
	log *logger.Logger,
) *CreateOrderService {
	return &CreateOrderService{
		orderRepo: orderRepo,
		notifier:  notifier,
		log:       log,
	}
}

// newOrderID генерирует идентификатор вида ORD-20250901-483920
func newOrderID(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%06d", now.Format("20060102"), rand.IntN(1000000))
}

// Execute валидирует вход, сохраняет заказ и рассылает его водителям
func (s *CreateOrderService) Execute(ctx context.Context, input in.CreateOrderInput) (*in.CreateOrderOutput, error) {
	// Валидация входных данных
	if err := validateCreateOrder(input); err != nil {
		s.log.Warn(logger.Entry{
			Action:  "create_order_validation_failed",
			Message: err.Error(),
		})
		return nil, err
	}

	mode := domain.PaymentMode(input.PaymentMode)
	now := time.Now().UTC()

	// Предоплаченные заказы сразу Completed, наличные собирает курьер
	paymentStatus := domain.PaymentPending
	if mode.Prepaid() {
		paymentStatus = domain.PaymentCompleted
	}

	order := &domain.Order{
		OrderID:         newOrderID(now),
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
		Items:           input.Items,
		DeliveryAddress: strings.TrimSpace(input.DeliveryAddress),
		TotalAmount:     input.TotalAmount,
		PaymentMode:     mode,
		PaymentStatus:   paymentStatus,
		DeliveryStatus:  domain.DeliveryPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// Сохраняем заказ в БД
	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.log.Error(logger.Entry{
			Action:  "create_order_failed",
			Message: err.Error(),
			OrderID: order.OrderID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, fmt.Errorf("create order: %w", err)
	}

	metrics.OrdersCreatedTotal.Inc()

	s.log.Info(logger.Entry{
		Action:  "order_created",
		Message: fmt.Sprintf("order %s created, total=%.2f, mode=%s", order.OrderID, order.TotalAmount, order.PaymentMode),
		OrderID: order.OrderID,
	})

	// Рассылаем всем подключенным водителям. Сбой рассылки заказ не откатывает
	if err := s.notifier.BroadcastOrderCreated(ctx, order); err != nil {
		s.log.Warn(logger.Entry{
			Action:  "order_created_broadcast_failed",
			Message: err.Error(),
			OrderID: order.OrderID,
		})
	}

	return &in.CreateOrderOutput{
		Order:   order,
		Message: "Order created successfully",
	}, nil
}

func validateCreateOrder(input in.CreateOrderInput) error {
	if strings.TrimSpace(input.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(input.CustomerPhone) == "" {
		return fmt.Errorf("%w: customer phone is required", domain.ErrValidation)
	}
	if strings.TrimSpace(input.DeliveryAddress) == "" {
		return fmt.Errorf("%w: delivery address is required", domain.ErrValidation)
	}
	if len(input.Items) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", domain.ErrValidation)
	}
	for i, item := range input.Items {
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("%w: item %d has no name", domain.ErrValidation, i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item %d has non-positive quantity", domain.ErrValidation, i)
		}
		if item.Price < 0 {
			return fmt.Errorf("%w: item %d has negative price", domain.ErrValidation, i)
		}
	}
	if input.TotalAmount <= 0 {
		return fmt.Errorf("%w: total amount must be positive", domain.ErrValidation)
	}
	if !domain.PaymentMode(input.PaymentMode).Valid() {
		return fmt.Errorf("%w: unknown payment mode %q", domain.ErrValidation, input.PaymentMode)
	}
	return nil
}
