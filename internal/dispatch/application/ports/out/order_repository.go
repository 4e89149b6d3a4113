package out

import (
	"context"
	"time"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
)

// OrderListFilter — фильтры листинга заказов
type OrderListFilter struct {
	DriverID  string                // пустой — заказы всех водителей
	Status    domain.DeliveryStatus // пустой — без фильтра
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	PageLimit int
}

// OrderRepository — хранилище заказов.
//
// Условные обновления (AssignDriver, ReassignDriver, MarkDelivered) — это
// единственный механизм сериализации переходов: проверка статуса и запись
// выполняются одним атомарным UPDATE в хранилище, а не read-then-write
// на стороне приложения.
type OrderRepository interface {
	// Create сохраняет новый заказ
	Create(ctx context.Context, order *domain.Order) error

	// FindByID находит заказ по его идентификатору
	FindByID(ctx context.Context, orderID string) (*domain.Order, error)

	// AssignDriver назначает водителя условным обновлением
	// (только если статус все еще Pending). Возвращает ErrAlreadyAssigned,
	// если заказ уже увели.
	AssignDriver(ctx context.Context, orderID string, asg domain.Assignment) error

	// ReassignDriver перенацеливает назначение, пока заказ Assigned.
	// Возвращает ErrInvalidTransition, если заказ уже доставлен или еще Pending.
	ReassignDriver(ctx context.Context, orderID string, asg domain.Assignment) error

	// MarkDelivered переводит заказ в Delivered условным обновлением
	// (только из Assigned) и записывает proof-поля.
	// Возвращает ErrInvalidTransition при проигранной гонке или неверном статусе.
	MarkDelivered(ctx context.Context, orderID string, proof domain.DeliveryProof) error

	// UpdatePaymentStatus — сверка оплаты админом (вне машины состояний доставки)
	UpdatePaymentStatus(ctx context.Context, orderID string, status domain.PaymentStatus, actualMethod, notes string) (*domain.Order, error)

	// List возвращает заказы по фильтру вместе с общим количеством
	List(ctx context.Context, filter OrderListFilter) ([]*domain.Order, int, error)

	// FindForDriver находит заказ, только если он назначен этому водителю
	FindForDriver(ctx context.Context, orderID, driverID string) (*domain.Order, error)

	// DeleteDeliveredBefore удаляет доставленные заказы старше порога.
	// Используется только retention cleanup.
	DeleteDeliveredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
