package domain

import "time"

// DeliveryStatus — статус доставки заказа.
// Допустимые переходы: Pending → Assigned → Delivered. Назад — никогда.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "Pending"
	DeliveryAssigned  DeliveryStatus = "Assigned"
	DeliveryDelivered DeliveryStatus = "Delivered"
)

// CanAssign — назначить водителя можно только на Pending заказ
func (s DeliveryStatus) CanAssign() bool { return s == DeliveryPending }

// CanReassign — перенацелить назначение можно только пока заказ Assigned
func (s DeliveryStatus) CanReassign() bool { return s == DeliveryAssigned }

// CanConfirm — подтвердить доставку можно только из Assigned
func (s DeliveryStatus) CanConfirm() bool { return s == DeliveryAssigned }

// PaymentMode — способ оплаты заказа
type PaymentMode string

const (
	PaymentCash PaymentMode = "Cash"
	PaymentUPI  PaymentMode = "UPI"
	PaymentCard PaymentMode = "Card"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentCash, PaymentUPI, PaymentCard:
		return true
	default:
		return false
	}
}

// Prepaid — UPI и Card оплачиваются до доставки, Cash собирается курьером
func (m PaymentMode) Prepaid() bool {
	return m == PaymentUPI || m == PaymentCard
}

// PaymentStatus — статус оплаты
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
)

// Item — позиция заказа
type Item struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Assignment — кому назначен заказ.
// Присутствует тогда и только тогда, когда статус Assigned или Delivered.
type Assignment struct {
	DriverID    string    `json:"driver_id"`
	DriverName  string    `json:"driver_name"`
	DriverPhone string    `json:"driver_phone"`
	AssignedAt  time.Time `json:"assigned_at"`
}

// DeliveryProof — доказательство доставки.
// Присутствует тогда и только тогда, когда статус Delivered.
type DeliveryProof struct {
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Photo       string    `json:"photo,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	DeliveredBy string    `json:"delivered_by"`
	DeliveredAt time.Time `json:"delivered_at"`
}

// PaymentReconciliation — поля сверки оплаты, заполняются админом постфактум
type PaymentReconciliation struct {
	ActualMethod string    `json:"actual_payment_method,omitempty"`
	Notes        string    `json:"payment_notes,omitempty"`
	UpdatedAt    time.Time `json:"payment_updated_at"`
}

// Order — заказ на доставку
type Order struct {
	OrderID         string         `json:"order_id" db:"order_id"`
	CustomerName    string         `json:"customer_name" db:"customer_name"`
	CustomerPhone   string         `json:"customer_phone" db:"customer_phone"`
	Items           []Item         `json:"items" db:"items"`
	DeliveryAddress string         `json:"delivery_address" db:"delivery_address"`
	TotalAmount     float64        `json:"total_amount" db:"total_amount"`
	PaymentMode     PaymentMode    `json:"payment_mode" db:"payment_mode"`
	PaymentStatus   PaymentStatus  `json:"payment_status" db:"payment_status"`
	DeliveryStatus  DeliveryStatus `json:"delivery_status" db:"delivery_status"`

	Assignment     *Assignment            `json:"assignment,omitempty"`
	Proof          *DeliveryProof         `json:"delivery_proof,omitempty"`
	Reconciliation *PaymentReconciliation `json:"payment_reconciliation,omitempty"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
