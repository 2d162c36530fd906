package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// reviewsSubmitted counts reviews accepted into the store.
	reviewsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reviews_submitted_total",
			Help: "Total number of reviews submitted",
		},
	)

	// reviewsModerated counts moderation decisions by resulting status.
	reviewsModerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviews_moderated_total",
			Help: "Total number of review moderation decisions",
		},
		[]string{"status"},
	)
)
