// Package metrics defines and registers all custom Prometheus metrics for the
// storefront API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry at
// init time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersPlacedTotal counts successfully placed orders.
var OrdersPlacedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders placed successfully.",
	},
)

// OrdersRejectedTotal counts failed placement attempts.
// Label:
//   - reason: "empty_cart", "insufficient_stock", or "store_error"
var OrdersRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_rejected_total",
		Help:      "Total number of order placements that failed, by reason.",
	},
	[]string{"reason"},
)

// OrderPlacementDuration measures checkout latency end-to-end, including the
// catalog snapshot and the transactional commit.
var OrderPlacementDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_placement_duration_seconds",
		Help:      "Duration of order placement from request to commit.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartAddsTotal counts add-to-cart attempts.
// Label:
//   - result: "added" or "stock_limit"
var CartAddsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_adds_total",
		Help:      "Total number of add-to-cart attempts, by result.",
	},
	[]string{"result"},
)

// ── Feed metrics ──────────────────────────────────────────────────────────────

// FeedEventsTotal counts change-stream events published to the feed hub.
// Label:
//   - collection: source collection ("products" or "orders")
var FeedEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_events_total",
		Help:      "Total number of change events published to the feed, by collection.",
	},
	[]string{"collection"},
)

// FeedEventsDroppedTotal counts events dropped because a subscriber's buffer
// was full. A slow consumer loses events rather than blocking the hub.
var FeedEventsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_events_dropped_total",
		Help:      "Total number of feed events dropped for slow subscribers, by collection.",
	},
	[]string{"collection"},
)

// FeedSubscribers tracks the current number of live feed subscribers.
var FeedSubscribers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "feed_subscribers",
		Help:      "Current number of connected feed subscribers.",
	},
)
