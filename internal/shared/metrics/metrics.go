package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for monitoring dispatch health
var (
	OrdersCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders created",
		},
	)

	OrdersAssignedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_assigned_total",
			Help: "Total number of successful order assignments",
		},
	)

	OrdersAssignLostTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_assign_lost_total",
			Help: "Total number of assignment attempts lost to a concurrent assign",
		},
	)

	OrdersDeliveredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_delivered_total",
			Help: "Total number of confirmed deliveries",
		},
	)

	WakeupPushesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wakeup_pushes_total",
			Help: "Total number of wake-up push notifications attempted",
		},
	)

	WSSessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ws_sessions_active",
			Help: "Number of currently registered websocket sessions",
		},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(OrdersCreatedTotal)
	prometheus.MustRegister(OrdersAssignedTotal)
	prometheus.MustRegister(OrdersAssignLostTotal)
	prometheus.MustRegister(OrdersDeliveredTotal)
	prometheus.MustRegister(WakeupPushesTotal)
	prometheus.MustRegister(WSSessionsActive)
}
