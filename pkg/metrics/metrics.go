package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SitemapRenders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitemap_renders_total",
			Help: "Sitemap documents rendered, by handler and outcome.",
		},
		[]string{"handler", "outcome"},
	)

	PingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_engine_pings_total",
			Help: "Search engine sitemap pings, by engine and outcome.",
		},
		[]string{"engine", "outcome"},
	)

	ImageDeletions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_deletions_total",
			Help: "Image asset deletion requests, by outcome.",
		},
		[]string{"outcome"},
	)

	MaintenanceState = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "maintenance_mode_active",
			Help: "1 while the maintenance gate is active.",
		},
	)
)

func init() {
	prometheus.MustRegister(SitemapRenders, PingsTotal, ImageDeletions, MaintenanceState)
}
