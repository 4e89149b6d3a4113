package in

import (
	"context"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
)

// AssignOrderInput — кому назначить заказ
type AssignOrderInput struct {
	OrderID  string
	DriverID string
}

// AssignOrderOutput — заказ после назначения
type AssignOrderOutput struct {
	Order *domain.Order

	// DriverNotified — дошло ли ORDER_ASSIGNED по живому каналу
	DriverNotified bool

	// WakeupSent — сработал ли push fallback
	WakeupSent bool
}

// AssignOrderUseCase — атомарное назначение Pending заказа водителю.
// Из двух конкурентных назначений выигрывает ровно одно,
// проигравший получает ErrAlreadyAssigned.
type AssignOrderUseCase interface {
	Execute(ctx context.Context, input AssignOrderInput) (*AssignOrderOutput, error)
}

// ReassignOrderUseCase — перенацеливание Assigned заказа на другого водителя
type ReassignOrderUseCase interface {
	Execute(ctx context.Context, input AssignOrderInput) (*AssignOrderOutput, error)
}
