package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	airports    prometheus.Gauge
	routes      prometheus.Gauge
	zones       prometheus.Gauge
	rebuilds    prometheus.Counter
	pathQueries *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		airports: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "skyroute",
			Name:      "graph_airports",
			Help:      "Number of airports in the current graph snapshot.",
		}),
		routes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "skyroute",
			Name:      "graph_routes",
			Help:      "Number of admissible routes in the current graph snapshot.",
		}),
		zones: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "skyroute",
			Name:      "graph_restricted_zones",
			Help:      "Number of restricted zones in the current graph snapshot.",
		}),
		rebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "skyroute",
			Name:      "graph_rebuilds_total",
			Help:      "Number of published graph snapshots.",
		}),
		pathQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skyroute",
			Name:      "path_queries_total",
			Help:      "Number of path queries by criterion and outcome.",
		}, []string{"criterion", "outcome"}),
	}
	reg.MustRegister(m.airports, m.routes, m.zones, m.rebuilds, m.pathQueries)
	return m
}
