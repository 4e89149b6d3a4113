package domain

import "time"

// Роли пользователей
const (
	RoleAdmin  = "admin"
	RoleDriver = "driver"
)

// User — учетная запись системы (админ или водитель)
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DashboardStats — сводка для главного экрана админа
type DashboardStats struct {
	TotalOrders       int     `json:"total_orders"`
	PendingOrders     int     `json:"pending_orders"`
	DeliveredOrders   int     `json:"delivered_orders"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalDeliveryBoys int     `json:"total_delivery_boys"`
	OnlineDrivers     int     `json:"online_drivers"`
}

// RevenueReport — выручка с разбивкой по способам оплаты
type RevenueReport struct {
	TotalRevenue float64 `json:"total_revenue"`
	Cash         float64 `json:"cash"`
	UPI          float64 `json:"upi"`
	Card         float64 `json:"card"`
}

// LeaderboardEntry — строка рейтинга водителей
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	DriverID   string `json:"delivery_boy_id"`
	Name       string `json:"name"`
	Deliveries int    `json:"deliveries"`
}
