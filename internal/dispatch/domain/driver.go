package domain

import "time"

// Статусы водителя
const (
	DriverActive   = "active"
	DriverInactive = "inactive"
)

// Driver — профиль водителя со статистикой доставок.
// Инвариант: CompletedDeliveries <= TotalDeliveries, счетчики только растут.
type Driver struct {
	ID                  string    `json:"id" db:"id"`
	UserID              string    `json:"user_id" db:"user_id"`
	Name                string    `json:"name" db:"name"`
	Phone               string    `json:"phone" db:"phone"`
	Status              string    `json:"status" db:"status"`
	TotalDeliveries     int       `json:"total_deliveries" db:"total_deliveries"`
	CompletedDeliveries int       `json:"completed_deliveries" db:"completed_deliveries"`
	AverageRating       float64   `json:"average_rating" db:"average_rating"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// Transaction — финансовая запись о доставленном заказе.
// Создается ровно один раз на заказ, никогда не изменяется.
type Transaction struct {
	ID            string    `json:"id" db:"id"`
	OrderID       string    `json:"order_id" db:"order_id"`
	Amount        float64   `json:"amount" db:"amount"`
	PaymentMode   string    `json:"payment_mode" db:"payment_mode"`
	PaymentStatus string    `json:"payment_status" db:"payment_status"`
	DriverID      string    `json:"driver_id" db:"driver_id"`
	CustomerRef   string    `json:"customer_ref" db:"customer_ref"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
