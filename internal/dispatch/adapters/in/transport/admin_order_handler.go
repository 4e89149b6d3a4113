package transport

import (
	"net/http"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/in"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/out"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
)

// AdminOrderHandler — админские операции над заказами:
// создание, назначение, перенацеливание, сверка оплаты
type AdminOrderHandler struct {
	createOrderUC   in.CreateOrderUseCase
	assignOrderUC   in.AssignOrderUseCase
	reassignOrderUC in.ReassignOrderUseCase
	orderRepo       out.OrderRepository
	log             *logger.Logger
}

// NewAdminOrderHandler создает новый handler
func NewAdminOrderHandler(
	createOrderUC in.CreateOrderUseCase,
	assignOrderUC in.AssignOrderUseCase,
	reassignOrderUC in.ReassignOrderUseCase,
	orderRepo out.OrderRepository,
	log *logger.Logger,
) *AdminOrderHandler {
	return &AdminOrderHandler{
		createOrderUC:   createOrderUC,
		assignOrderUC:   assignOrderUC,
		reassignOrderUC: reassignOrderUC,
		orderRepo:       orderRepo,
		log:             log,
	}
}

// CreateOrder — POST /api/admin/orders
func (h *AdminOrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := readJSON(r, &req); err != nil {
		h.log.Warn(logger.Entry{
			Action:  "create_order_invalid_request",
			Message: err.Error(),
		})
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	output, err := h.createOrderUC.Execute(r.Context(), in.CreateOrderInput{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		Items:           req.Items,
		DeliveryAddress: req.DeliveryAddress,
		TotalAmount:     req.TotalAmount,
		PaymentMode:     req.PaymentMode,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, CreateOrderResponse{
		Message: output.Message,
		Order:   output.Order,
	})
}

// AssignOrder — POST /api/admin/orders/{order_id}/assign
func (h *AdminOrderHandler) AssignOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("order_id")

	var req AssignOrderRequest
	if err := readJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DriverID == "" {
		respondError(w, http.StatusBadRequest, "driver_id is required")
		return
	}

	output, err := h.assignOrderUC.Execute(r.Context(), in.AssignOrderInput{
		OrderID:  orderID,
		DriverID: req.DriverID,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, AssignOrderResponse{
		Message:        "Order assigned successfully",
		Order:          output.Order,
		DriverNotified: output.DriverNotified,
		WakeupSent:     output.WakeupSent,
	})
}

// ReassignOrder — POST /api/admin/orders/{order_id}/reassign
func (h *AdminOrderHandler) ReassignOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("order_id")

	var req AssignOrderRequest
	if err := readJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DriverID == "" {
		respondError(w, http.StatusBadRequest, "driver_id is required")
		return
	}

	output, err := h.reassignOrderUC.Execute(r.Context(), in.AssignOrderInput{
		OrderID:  orderID,
		DriverID: req.DriverID,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, AssignOrderResponse{
		Message:        "Order reassigned successfully",
		Order:          output.Order,
		DriverNotified: output.DriverNotified,
		WakeupSent:     output.WakeupSent,
	})
}

// UpdatePayment — PATCH /api/admin/orders/{order_id}/payment
func (h *AdminOrderHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("order_id")

	var req UpdatePaymentRequest
	if err := readJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status := domain.PaymentStatus(req.PaymentStatus)
	if status != domain.PaymentPending && status != domain.PaymentCompleted {
		respondError(w, http.StatusBadRequest, "payment_status must be Pending or Completed")
		return
	}

	order, err := h.orderRepo.UpdatePaymentStatus(r.Context(), orderID, status, req.ActualMethod, req.Notes)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	h.log.Info(logger.Entry{
		Action:  "payment_reconciled",
		Message: "payment status updated by admin",
		OrderID: orderID,
	})
	respondJSON(w, http.StatusOK, order)
}
