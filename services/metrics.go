package services

import "github.com/prometheus/client_golang/prometheus"

// Shop counters. The health routes register them with the default registry.
var (
	OrdersPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "maroon_shop",
		Subsystem: "checkout",
		Name:      "orders_placed_total",
		Help:      "Baskets converted into orders",
	})

	OrderNotificationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "maroon_shop",
		Subsystem: "checkout",
		Name:      "notification_failures_total",
		Help:      "Order notifications (email, broker) that failed after commit",
	})
)
