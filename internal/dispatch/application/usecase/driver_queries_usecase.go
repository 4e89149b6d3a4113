package usecase

import (
	"context"
	"errors"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/in"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/out"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
)

// DriverQueryService — read-only запросы водителя: свои заказы, история, профиль
type DriverQueryService struct {
	orderRepo out.OrderRepository
	drivers   out.DriverRegistry
	log       *logger.Logger
}

// NewDriverQueryService создает новый сервис
func NewDriverQueryService(orderRepo out.OrderRepository, drivers out.DriverRegistry, log *logger.Logger) *DriverQueryService {
	return &DriverQueryService{orderRepo: orderRepo, drivers: drivers, log: log}
}

// ActiveOrders возвращает назначенные (еще не доставленные) заказы водителя
func (s *DriverQueryService) ActiveOrders(ctx context.Context, input in.GetDriverOrdersInput) ([]domain.Order, error) {
	driver, err := s.drivers.FindByUserID(ctx, input.DriverUserID)
	if err != nil {
		return nil, err
	}

	status := domain.DeliveryAssigned
	if input.Status != "" {
		status = domain.DeliveryStatus(input.Status)
	}

	orders, _, err := s.orderRepo.List(ctx, out.OrderListFilter{DriverID: driver.ID, Status: status})
	if err != nil {
		return nil, err
	}
	return deref(orders), nil
}

// History возвращает доставленные заказы водителя
func (s *DriverQueryService) History(ctx context.Context, driverUserID string, filter out.OrderListFilter) ([]domain.Order, int, error) {
	driver, err := s.drivers.FindByUserID(ctx, driverUserID)
	if err != nil {
		return nil, 0, err
	}

	filter.DriverID = driver.ID
	filter.Status = domain.DeliveryDelivered
	orders, total, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return deref(orders), total, nil
}

// Profile возвращает профиль водителя со счетчиками
func (s *DriverQueryService) Profile(ctx context.Context, driverUserID string) (*domain.Driver, error) {
	return s.drivers.FindByUserID(ctx, driverUserID)
}

// Order возвращает заказ, только если он назначен этому водителю.
// Чужой заказ наружу не отличим от несуществующего
func (s *DriverQueryService) Order(ctx context.Context, driverUserID, orderID string) (*domain.Order, error) {
	driver, err := s.drivers.FindByUserID(ctx, driverUserID)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindForDriver(ctx, orderID, driver.ID)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func deref(orders []*domain.Order) []domain.Order {
	res := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		res = append(res, *o)
	}
	return res
}
