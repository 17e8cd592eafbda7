package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	TodoOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todo_operations_total",
			Help: "Todo store operations by outcome",
		},
		[]string{"op", "result"},
	)
	TodoOpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "todo_operation_duration_seconds",
			Help:    "Latency of todo store operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op", "mode"},
	)
)

func init() {
	prometheus.MustRegister(TodoOps)
	prometheus.MustRegister(TodoOpDuration)
}
