package in

import (
	"context"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
)

// CreateOrderInput — данные нового заказа от диспетчера
type CreateOrderInput struct {
	CustomerName    string
	CustomerPhone   string
	Items           []domain.Item
	DeliveryAddress string
	TotalAmount     float64
	PaymentMode     string
}

// CreateOrderOutput — созданный заказ
type CreateOrderOutput struct {
	Order   *domain.Order
	Message string
}

// CreateOrderUseCase — создание заказа с рассылкой всем водителям
type CreateOrderUseCase interface {
	Execute(ctx context.Context, input CreateOrderInput) (*CreateOrderOutput, error)
}
