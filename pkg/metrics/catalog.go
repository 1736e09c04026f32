package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of every HTTP handler, by route template and status code
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_http_request_duration_seconds",
		Help:    "Latency of catalog HTTP handlers",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	ProductsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_products_created_total",
		Help: "Total number of products created, by product type",
	}, []string{"product_type"})

	PricingUpserts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_pricing_upserts_total",
		Help: "Total number of pricing records created or updated",
	})
)

func Init() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		ProductsCreated,
		PricingUpserts,
	)
}
