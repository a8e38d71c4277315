// Package observability déclare les métriques Prometheus de l'API, exposées
// sur /metrics.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sentinelshe"

var (
	// HTTPRequests compte les requêtes par route, méthode et statut
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route template, method and status code",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPDuration durée des requêtes par route
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration by route template",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"route", "method"},
	)

	// VotesCast compte les votes par type d'entité et direction
	VotesCast = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_cast_total",
			Help:      "Votes applied by entity type and direction",
		},
		[]string{"entity", "direction"},
	)

	// ReportsFiled compte les signalements créés par catégorie
	ReportsFiled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_filed_total",
			Help:      "Incident reports filed by category",
		},
		[]string{"category"},
	)
)

// ObserveRequest enregistre une requête terminée
func ObserveRequest(route, method string, status int, d time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(route, method).Observe(d.Seconds())
}
