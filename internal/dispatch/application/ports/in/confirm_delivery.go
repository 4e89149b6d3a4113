package in

import "context"

// ConfirmDeliveryInput — подтверждение доставки от водителя
type ConfirmDeliveryInput struct {
	OrderID      string
	DriverUserID string // из JWT, не из тела запроса
	Latitude     float64
	Longitude    float64
	Photo        string
	Notes        string
}

// ConfirmDeliveryOutput — итог подтверждения
type ConfirmDeliveryOutput struct {
	OrderID        string
	DeliveryStatus string
	PaymentStatus  string
	DeliveredAt    string
	Message        string
}

// ConfirmDeliveryUseCase — финальный переход Assigned → Delivered:
// заказ, счетчики водителя, транзакция, событие админам — в этом порядке.
type ConfirmDeliveryUseCase interface {
	Execute(ctx context.Context, input ConfirmDeliveryInput) (*ConfirmDeliveryOutput, error)
}
