package domain

import "time"

// Типы событий, уходящих через WebSocket
const (
	EventOrderCreated   = "ORDER_CREATED"
	EventOrderAssigned  = "ORDER_ASSIGNED"
	EventOrderDelivered = "ORDER_DELIVERED"
	EventForceLogout    = "FORCE_LOGOUT"
)

// OrderDeliveredEvent — урезанный payload для админов.
// Полный заказ наружу не уходит, только факт доставки.
type OrderDeliveredEvent struct {
	OrderID        string         `json:"order_id"`
	DeliveryStatus DeliveryStatus `json:"delivery_status"`
	PaymentStatus  PaymentStatus  `json:"payment_status"`
	DeliveredAt    time.Time      `json:"delivered_at"`
	DeliveredBy    string         `json:"delivered_by"`
	Latitude       float64        `json:"latitude"`
	Longitude      float64        `json:"longitude"`
}
