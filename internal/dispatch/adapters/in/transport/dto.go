package transport

import "github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"

// CreateOrderRequest — новый заказ от диспетчера
type CreateOrderRequest struct {
	CustomerName    string        `json:"customer_name"`
	CustomerPhone   string        `json:"customer_phone"`
	Items           []domain.Item `json:"items"`
	DeliveryAddress string        `json:"delivery_address"`
	TotalAmount     float64       `json:"total_amount"`
	PaymentMode     string        `json:"payment_mode"`
}

// CreateOrderResponse — созданный заказ
type CreateOrderResponse struct {
	Message string        `json:"message"`
	Order   *domain.Order `json:"order"`
}

// AssignOrderRequest — назначение заказа водителю
type AssignOrderRequest struct {
	DriverID string `json:"driver_id"`
}

// AssignOrderResponse — заказ после назначения
type AssignOrderResponse struct {
	Message        string        `json:"message"`
	Order          *domain.Order `json:"order"`
	DriverNotified bool          `json:"driver_notified"`
	WakeupSent     bool          `json:"wakeup_sent"`
}

// UpdatePaymentRequest — сверка оплаты админом
type UpdatePaymentRequest struct {
	PaymentStatus string `json:"payment_status"`
	ActualMethod  string `json:"actual_payment_method,omitempty"`
	Notes         string `json:"payment_notes,omitempty"`
}

// ConfirmDeliveryRequest — подтверждение доставки водителем
type ConfirmDeliveryRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Photo     string  `json:"photo,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}

// ConfirmDeliveryResponse — итог подтверждения
type ConfirmDeliveryResponse struct {
	Message        string `json:"message"`
	OrderID        string `json:"order_id"`
	DeliveryStatus string `json:"delivery_status"`
	PaymentStatus  string `json:"payment_status"`
	DeliveredAt    string `json:"delivered_at"`
}

// ValidatePackageRequest — код пакета с этикетки
type ValidatePackageRequest struct {
	PackageCode string `json:"package_code"`
}

// RegisterDeviceTokenRequest — FCM токен устройства
type RegisterDeviceTokenRequest struct {
	Token string `json:"token"`
}

// UpdateProfileRequest — изменение профиля водителя
type UpdateProfileRequest struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// OrderListResponse — список заказов с пагинацией
type OrderListResponse struct {
	Orders []domain.Order `json:"orders"`
	Total  int            `json:"total"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
}

// ErrorResponse — единый формат ошибки
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
