package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created at checkout",
	})

	OrdersDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_deleted_total",
		Help: "Total number of orders deleted from the admin area",
	})

	OrderStatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions_total",
		Help: "Total number of order status transitions",
	}, []string{"status"})

	CheckoutRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_rejected_total",
		Help: "Total number of checkout submissions rejected by validation",
	}, []string{"reason"})

	CouponsRedeemedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coupons_redeemed_total",
		Help: "Total number of successful coupon redemptions",
	})

	CouponRedemptionsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coupon_redemptions_failed_total",
		Help: "Total number of rejected coupon redemptions",
	}, []string{"reason"})

	RemoteWriteFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "remote_write_failures_total",
		Help: "Total number of remote store writes that degraded to fallback-only",
	}, []string{"collection"})

	RemoteLoadFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "remote_load_fallbacks_total",
		Help: "Total number of collection loads served from the fallback store",
	}, []string{"collection"})

	PostalLookupLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "postal_lookup_latency_seconds",
		Help:    "Latency of postal code lookups",
		Buckets: prometheus.DefBuckets,
	})

	PostalLookupsFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postal_lookups_failed_total",
		Help: "Total number of failed postal code lookups",
	})

	DashboardOrdersGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_orders_total",
		Help: "Order count as of the last dashboard refresh",
	})

	DashboardRevenueGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_revenue_total",
		Help: "Revenue as of the last dashboard refresh",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
