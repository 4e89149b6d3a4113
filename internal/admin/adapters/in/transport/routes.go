package transport

import (
	"net/http"
)

// RegisterRoutes регистрирует админские маршруты
func RegisterRoutes(
	mux *http.ServeMux,
	h *Handler,
	adminOnly func(http.HandlerFunc) http.HandlerFunc,
) {
	mux.HandleFunc("GET /api/admin/dashboard", adminOnly(h.Dashboard))

	// Учетные записи
	mux.HandleFunc("GET /api/admin/users", adminOnly(h.ListUsers))
	mux.HandleFunc("POST /api/admin/users/admin", adminOnly(h.CreateAdmin))
	mux.HandleFunc("DELETE /api/admin/users/{user_id}", adminOnly(h.DeleteUser))

	// Водители
	mux.HandleFunc("GET /api/admin/delivery-boys", adminOnly(h.ListDeliveryBoys))
	mux.HandleFunc("POST /api/admin/delivery-boys", adminOnly(h.CreateDeliveryBoy))
	mux.HandleFunc("PUT /api/admin/delivery-boys/{driver_id}", adminOnly(h.UpdateDeliveryBoy))

	// Обзоры заказов и финансов
	mux.HandleFunc("GET /api/admin/orders", adminOnly(h.ListOrders))
	mux.HandleFunc("GET /api/admin/orders/{order_id}", adminOnly(h.GetOrder))
	mux.HandleFunc("GET /api/admin/leaderboard", adminOnly(h.Leaderboard))
	mux.HandleFunc("GET /api/admin/revenue", adminOnly(h.Revenue))
	mux.HandleFunc("GET /api/admin/transactions", adminOnly(h.ListTransactions))
	mux.HandleFunc("POST /api/admin/export/transactions", adminOnly(h.ExportTransactions))
}
