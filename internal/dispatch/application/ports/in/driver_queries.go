package in

import (
	"context"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/out"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
)

// GetDriverOrdersInput — выборка заказов водителя
type GetDriverOrdersInput struct {
	DriverUserID string
	Status       string // пусто — назначенные
}

// DriverQueries — read-only запросы водителя
type DriverQueries interface {
	// ActiveOrders — текущие назначенные заказы
	ActiveOrders(ctx context.Context, input GetDriverOrdersInput) ([]domain.Order, error)

	// History — доставленные заказы с пагинацией
	History(ctx context.Context, driverUserID string, filter out.OrderListFilter) ([]domain.Order, int, error)

	// Profile — профиль и счетчики доставок
	Profile(ctx context.Context, driverUserID string) (*domain.Driver, error)

	// Order — один заказ, только если назначен этому водителю
	Order(ctx context.Context, driverUserID, orderID string) (*domain.Order, error)
}
