package transport

import (
	"net/http"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/auth"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/ws"
)

// RegisterRoutes регистрирует маршруты диспетчеризации
func RegisterRoutes(
	mux *http.ServeMux,
	adminH *AdminOrderHandler,
	driverH *DriverHandler,
	jwtService *auth.JWTService,
	log *logger.Logger,
) {
	adminOnly := RequireRole(jwtService, ws.RoleAdmin, log)
	driverOnly := RequireRole(jwtService, ws.RoleDriver, log)

	// Админ: заказы
	mux.HandleFunc("POST /api/admin/orders", adminOnly(adminH.CreateOrder))
	mux.HandleFunc("POST /api/admin/orders/{order_id}/assign", adminOnly(adminH.AssignOrder))
	mux.HandleFunc("POST /api/admin/orders/{order_id}/reassign", adminOnly(adminH.ReassignOrder))
	mux.HandleFunc("PATCH /api/admin/orders/{order_id}/payment", adminOnly(adminH.UpdatePayment))

	// Водитель: заказы и профиль
	mux.HandleFunc("GET /api/driver/orders", driverOnly(driverH.Orders))
	mux.HandleFunc("GET /api/driver/orders/{order_id}", driverOnly(driverH.Order))
	mux.HandleFunc("POST /api/driver/orders/{order_id}/confirm", driverOnly(driverH.ConfirmDelivery))
	mux.HandleFunc("POST /api/driver/orders/{order_id}/validate-scan", driverOnly(driverH.ValidatePackage))
	mux.HandleFunc("GET /api/driver/history", driverOnly(driverH.History))
	mux.HandleFunc("GET /api/driver/profile", driverOnly(driverH.Profile))
	mux.HandleFunc("PUT /api/driver/profile", driverOnly(driverH.UpdateProfile))
	mux.HandleFunc("POST /api/driver/device-token", driverOnly(driverH.RegisterDeviceToken))
}
