package transport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/in"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/out"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
)

// DriverHandler — операции водителя: свои заказы, подтверждение доставки,
// проверка пакета, профиль, регистрация устройства
type DriverHandler struct {
	confirmUC     in.ConfirmDeliveryUseCase
	validateUC    in.ValidatePackageUseCase
	deviceTokenUC in.RegisterDeviceTokenUseCase
	queries       in.DriverQueries
	drivers       out.DriverRegistry
	log           *logger.Logger
}

// NewDriverHandler создает новый handler
func NewDriverHandler(
	confirmUC in.ConfirmDeliveryUseCase,
	validateUC in.ValidatePackageUseCase,
	deviceTokenUC in.RegisterDeviceTokenUseCase,
	queries in.DriverQueries,
	drivers out.DriverRegistry,
	log *logger.Logger,
) *DriverHandler {
	return &DriverHandler{
		confirmUC:     confirmUC,
		validateUC:    validateUC,
		deviceTokenUC: deviceTokenUC,
		queries:       queries,
		drivers:       drivers,
		log:           log,
	}
}

// Orders — GET /api/driver/orders
func (h *DriverHandler) Orders(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user_id not found in context")
		return
	}

	orders, err := h.queries.ActiveOrders(r.Context(), in.GetDriverOrdersInput{
		DriverUserID: userID,
		Status:       r.URL.Query().Get("status"),
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// Order — GET /api/driver/orders/{order_id}
func (h *DriverHandler) Order(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user_id not found in context")
		return
	}

	order, err := h.queries.Order(r.Context(), userID, r.PathValue("order_id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// ConfirmDelivery — POST /api/driver/orders/{order_id}/confirm
func (h *DriverHandler) ConfirmDelivery(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user_id not found in context")
		return
	}

	var req ConfirmDeliveryRequest
	if err := readJSON(r, &req); err != nil {
		h.log.Warn(logger.Entry{
			Action:  "confirm_delivery_invalid_request",
			Message: err.Error(),
		})
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	output, err := h.confirmUC.Execute(r.Context(), in.ConfirmDeliveryInput{
		OrderID:      r.PathValue("order_id"),
		DriverUserID: userID,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Photo:        req.Photo,
		Notes:        req.Notes,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ConfirmDeliveryResponse{
		Message:        output.Message,
		OrderID:        output.OrderID,
		DeliveryStatus: output.DeliveryStatus,
		PaymentStatus:  output.PaymentStatus,
		DeliveredAt:    output.DeliveredAt,
	})
}

// ValidatePackage — POST /api/driver/orders/{order_id}/validate-scan
func (h *DriverHandler) ValidatePackage(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user_id not found in context")
		return
	}

	var req ValidatePackageRequest
	if err := readJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	output, err := h.validateUC.Execute(r.Context(), in.ValidatePackageInput{
		OrderID:      r.PathValue("order_id"),
		DriverUserID: userID,
		PackageCode:  req.PackageCode,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, output)
}

// History — GET /api/driver/history
func (h *DriverHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user_id not found in context")
		return
	}

	filter := listFilterFromQuery(r)
	orders, total, err := h.queries.History(r.Context(), userID, filter)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, OrderListResponse{
		Orders: orders,
		Total:  total,
		Page:   filter.Page,
		Limit:  filter.PageLimit,
	})
}

// Profile — GET /api/driver/profile
func (h *DriverHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user_id not found in context")
		return
	}

	driver, err := h.queries.Profile(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, driver)
}

// UpdateProfile — PUT /api/driver/profile
func (h *DriverHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user_id not found in context")
		return
	}

	var req UpdateProfileRequest
	if err := readJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	driver, err := h.drivers.FindByUserID(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	updated, err := h.drivers.UpdateProfile(r.Context(), driver.ID, req.Name, req.Phone)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// RegisterDeviceToken — POST /api/driver/device-token
func (h *DriverHandler) RegisterDeviceToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user_id not found in context")
		return
	}

	var req RegisterDeviceTokenRequest
	if err := readJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.deviceTokenUC.Execute(r.Context(), in.RegisterDeviceTokenInput{
		DriverUserID: userID,
		Token:        req.Token,
	}); err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Device token registered"})
}

// listFilterFromQuery читает пагинацию и период из query-параметров
func listFilterFromQuery(r *http.Request) out.OrderListFilter {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := out.OrderListFilter{Page: page, PageLimit: limit}

	if v := q.Get("start_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateFrom = &t
		}
	}
	if v := q.Get("end_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			end := t.Add(24*time.Hour - time.Nanosecond)
			filter.DateTo = &end
		}
	}

	return filter
}
