package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/admin/application/ports/in"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/admin/application/ports/out"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/admin/domain"
	dispatchout "github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/out"
	dispatch "github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/ws"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// Handler — админские обзоры и управление учетными записями
type Handler struct {
	createUserUC in.CreateUserUseCase
	deleteUserUC in.DeleteUserUseCase
	users        out.UserRepository
	stats        out.StatsRepository
	orders       dispatchout.OrderRepository
	drivers      dispatchout.DriverRegistry
	ledger       dispatchout.TransactionLedger
	exporter     dispatchout.TransactionExporter
	hub          *ws.Hub
	log          *logger.Logger
}

// NewHandler создает новый handler
func NewHandler(
	createUserUC in.CreateUserUseCase,
	deleteUserUC in.DeleteUserUseCase,
	users out.UserRepository,
	stats out.StatsRepository,
	orders dispatchout.OrderRepository,
	drivers dispatchout.DriverRegistry,
	ledger dispatchout.TransactionLedger,
	exporter dispatchout.TransactionExporter,
	hub *ws.Hub,
	log *logger.Logger,
) *Handler {
	return &Handler{
		createUserUC: createUserUC,
		deleteUserUC: deleteUserUC,
		users:        users,
		stats:        stats,
		orders:       orders,
		drivers:      drivers,
		ledger:       ledger,
		exporter:     exporter,
		hub:          hub,
		log:          log,
	}
}

// Dashboard — GET /api/admin/dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Dashboard(r.Context())
	if err != nil {
		h.log.Error(logger.Entry{
			Action:  "dashboard_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		respondError(w, http.StatusInternalServerError, "failed to get dashboard data")
		return
	}
	stats.OnlineDrivers = len(h.hub.ConnectedByRole(ws.RoleDriver))
	respondJSON(w, http.StatusOK, stats)
}

// ListUsers — GET /api/admin/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pagination(r, 10)

	users, total, err := h.users.List(r.Context(), out.UserListFilter{
		Role:      q.Get("role"),
		Status:    q.Get("status"),
		Page:      page,
		PageLimit: limit,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get users")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// CreateUserRequest — данные новой учетной записи
type CreateUserRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CreateAdmin — POST /api/admin/users/admin
func (h *Handler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	h.createUser(w, r, domain.RoleAdmin)
}

// CreateDeliveryBoy — POST /api/admin/delivery-boys
func (h *Handler) CreateDeliveryBoy(w http.ResponseWriter, r *http.Request) {
	h.createUser(w, r, domain.RoleDriver)
}

// UpdateDeliveryBoyRequest — правка профиля водителя админом
type UpdateDeliveryBoyRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UpdateDeliveryBoy — PUT /api/admin/delivery-boys/{driver_id}
func (h *Handler) UpdateDeliveryBoy(w http.ResponseWriter, r *http.Request) {
	var req UpdateDeliveryBoyRequest
	if err := readJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	driver, err := h.drivers.UpdateProfile(r.Context(), r.PathValue("driver_id"), req.Name, req.Phone)
	if err != nil {
		if errors.Is(err, dispatch.ErrDriverNotFound) {
			respondError(w, http.StatusNotFound, "delivery boy not found")
			return
		}
		h.log.Error(logger.Entry{
			Action:  "update_delivery_boy_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		respondError(w, http.StatusInternalServerError, "failed to update delivery boy")
		return
	}

	respondJSON(w, http.StatusOK, driver)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request, role string) {
	var req CreateUserRequest
	if err := readJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	output, err := h.createUserUC.Execute(r.Context(), in.CreateUserInput{
		Name:  req.Name,
		Phone: req.Phone,
		Role:  role,
	})
	if err != nil {
		respondAdminError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"id":                output.User.ID,
		"driver_profile_id": output.DriverProfileID,
		"name":              output.User.Name,
		"phone":             output.User.Phone,
		"role":              output.User.Role,
		"status":            output.User.Status,
		"default_password":  output.DefaultPassword,
		"message":           output.Message,
	})
}

// DeleteUser — DELETE /api/admin/users/{user_id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	output, err := h.deleteUserUC.Execute(r.Context(), r.PathValue("user_id"))
	if err != nil {
		respondAdminError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": output.Message,
		"user_id": output.UserID,
		"role":    output.Role,
	})
}

// ListDeliveryBoys — GET /api/admin/delivery-boys
func (h *Handler) ListDeliveryBoys(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r, 10)

	drivers, total, err := h.stats.ListDrivers(r.Context(), out.DriverListFilter{
		Status:    r.URL.Query().Get("status"),
		Page:      page,
		PageLimit: limit,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get delivery boys")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"delivery_boys": drivers,
		"total":         total,
		"page":          page,
		"limit":         limit,
	})
}

// ListOrders — GET /api/admin/orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pagination(r, 20)

	filter := dispatchout.OrderListFilter{
		Status:    dispatch.DeliveryStatus(q.Get("status")),
		Page:      page,
		PageLimit: limit,
	}
	if from, ok := parseDate(q.Get("start_date")); ok {
		filter.DateFrom = &from
	}
	if to, ok := parseDate(q.Get("end_date")); ok {
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &end
	}

	orders, total, err := h.orders.List(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get orders")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"orders": orders,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

// GetOrder — GET /api/admin/orders/{order_id}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.FindByID(r.Context(), r.PathValue("order_id"))
	if err != nil {
		if errors.Is(err, dispatch.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "order not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to get order")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// Leaderboard — GET /api/admin/leaderboard
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.stats.Leaderboard(r.Context(), 10)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get leaderboard")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"leaderboard": entries})
}

// Revenue — GET /api/admin/revenue
func (h *Handler) Revenue(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	since := periodStart(period, time.Now().UTC())

	report, err := h.stats.Revenue(r.Context(), since)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get revenue")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"total_revenue": report.TotalRevenue,
		"period":        period,
		"payment_methods": map[string]float64{
			"cash": report.Cash,
			"upi":  report.UPI,
			"card": report.Card,
		},
	})
}

// ListTransactions — GET /api/admin/transactions
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pagination(r, 20)

	filter := dispatchout.TransactionListFilter{Page: page, PageLimit: limit}
	if from, ok := parseDate(q.Get("start_date")); ok {
		filter.DateFrom = &from
	}
	if to, ok := parseDate(q.Get("end_date")); ok {
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &end
	}

	txs, total, err := h.ledger.List(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get transactions")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"transactions": txs,
		"total":        total,
		"page":         page,
		"limit":        limit,
	})
}

// ExportTransactions — POST /api/admin/export/transactions.
// Выгружает транзакции за период в Google-таблицу одной пачкой
func (h *Handler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	if !h.exporter.Enabled() {
		respondError(w, http.StatusServiceUnavailable, "sheets export is not configured")
		return
	}

	q := r.URL.Query()
	filter := dispatchout.TransactionListFilter{}
	if from, ok := parseDate(q.Get("start_date")); ok {
		filter.DateFrom = &from
	}
	if to, ok := parseDate(q.Get("end_date")); ok {
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &end
	}

	txs, _, err := h.ledger.List(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get transactions")
		return
	}

	exported, err := h.exporter.AppendTransactions(r.Context(), txs)
	if err != nil {
		h.log.Error(logger.Entry{
			Action:  "transactions_export_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		respondError(w, http.StatusBadGateway, "failed to export transactions")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"exported": exported})
}

// Helper functions

func pagination(r *http.Request, defaultLimit int) (page, limit int) {
	q := r.URL.Query()
	page, _ = strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(q.Get("limit"))
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// periodStart переводит period из query в нижнюю границу выборки
func periodStart(period string, now time.Time) *time.Time {
	var since time.Time
	switch period {
	case "today":
		since = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	case "week":
		since = now.AddDate(0, 0, -7)
	case "month":
		since = now.AddDate(0, -1, 0)
	default:
		return nil // за все время
	}
	return &since
}

func readJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxRequestBodySize)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return io.ErrUnexpectedEOF
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error":   http.StatusText(status),
		"message": message,
	})
}

// respondAdminError отображает доменные ошибки на HTTP статусы
func respondAdminError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrPhoneExists):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
