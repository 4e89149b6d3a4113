package out

import (
	"context"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
)

// EventNotifier — push-доставка событий подключенным клиентам.
// Best-effort: ошибки доставки логируются вызывающими, но никогда не
// откатывают уже сохраненный переход состояния.
type EventNotifier interface {
	// BroadcastOrderCreated рассылает новый заказ всем подключенным водителям
	BroadcastOrderCreated(ctx context.Context, order *domain.Order) error

	// NotifyOrderAssigned отправляет заказ конкретному водителю.
	// delivered == false означает, что водитель не подключен —
	// вызывающий по этому признаку включает Wake-Up fallback.
	NotifyOrderAssigned(ctx context.Context, driverUserID string, order *domain.Order) (delivered bool, err error)

	// BroadcastOrderDelivered рассылает урезанное событие доставки всем админам
	BroadcastOrderDelivered(ctx context.Context, event domain.OrderDeliveredEvent) error
}
