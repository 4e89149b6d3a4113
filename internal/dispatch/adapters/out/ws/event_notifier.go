package ws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/ports/out"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/domain"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
	sharedws "github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/ws"
)

type eventNotifier struct {
	hub *sharedws.Hub
	log *logger.Logger
}

// NewEventNotifier создает WebSocket-нотификатор поверх хаба
func NewEventNotifier(hub *sharedws.Hub, log *logger.Logger) out.EventNotifier {
	return &eventNotifier{hub: hub, log: log}
}

// BroadcastOrderCreated рассылает новый заказ всем подключенным водителям
func (n *eventNotifier) BroadcastOrderCreated(ctx context.Context, order *domain.Order) error {
	body, err := json.Marshal(map[string]any{
		"type":  domain.EventOrderCreated,
		"order": order,
	})
	if err != nil {
		return fmt.Errorf("marshal order created event: %w", err)
	}

	n.hub.BroadcastToRole(sharedws.RoleDriver, body)

	n.log.Info(logger.Entry{
		Action:  "order_created_broadcast",
		Message: "order broadcast to connected drivers",
		OrderID: order.OrderID,
	})
	return nil
}

// NotifyOrderAssigned отправляет заказ конкретному водителю.
// false — водитель не подключен, вызывающий включает push fallback
func (n *eventNotifier) NotifyOrderAssigned(ctx context.Context, driverUserID string, order *domain.Order) (bool, error) {
	body, err := json.Marshal(map[string]any{
		"type":  domain.EventOrderAssigned,
		"order": order,
	})
	if err != nil {
		return false, fmt.Errorf("marshal order assigned event: %w", err)
	}

	delivered := n.hub.SendToUser(driverUserID, body)
	if !delivered {
		n.log.Info(logger.Entry{
			Action:  "order_assigned_driver_offline",
			Message: fmt.Sprintf("driver user %s not connected", driverUserID),
			OrderID: order.OrderID,
		})
	}
	return delivered, nil
}

// BroadcastOrderDelivered рассылает урезанное событие доставки всем админам
func (n *eventNotifier) BroadcastOrderDelivered(ctx context.Context, event domain.OrderDeliveredEvent) error {
	body, err := json.Marshal(map[string]any{
		"type":  domain.EventOrderDelivered,
		"order": event,
	})
	if err != nil {
		return fmt.Errorf("marshal order delivered event: %w", err)
	}

	n.hub.BroadcastToRole(sharedws.RoleAdmin, body)

	n.log.Info(logger.Entry{
		Action:  "order_delivered_broadcast",
		Message: "delivery event broadcast to admins",
		OrderID: event.OrderID,
	})
	return nil
}
