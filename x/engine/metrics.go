package engine

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks engine activity for Prometheus scraping.
type Metrics struct {
	SwapsTotal        *prometheus.CounterVec
	SwapVolume        *prometheus.CounterVec
	SwapErrors        *prometheus.CounterVec
	CurveTradesTotal  *prometheus.CounterVec
	Graduations       prometheus.Counter
	PoolsActive       prometheus.Gauge
	SalesActive       prometheus.Gauge
	OperationDuration *prometheus.HistogramVec
}

var (
	metricsOnce     sync.Once
	metricsInstance *Metrics
)

// NewMetrics returns the process-wide metrics singleton. Collectors can
// only be registered once per process.
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metricsInstance = &Metrics{
			SwapsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "astroshiba",
				Subsystem: "engine",
				Name:      "swaps_total",
				Help:      "Total swaps executed, by pair and outcome",
			}, []string{"pair", "status"}),
			SwapVolume: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "astroshiba",
				Subsystem: "engine",
				Name:      "swap_volume",
				Help:      "Cumulative input volume, by token",
			}, []string{"token"}),
			SwapErrors: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "astroshiba",
				Subsystem: "engine",
				Name:      "swap_errors_total",
				Help:      "Swap failures, by reason",
			}, []string{"reason"}),
			CurveTradesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "astroshiba",
				Subsystem: "launch",
				Name:      "curve_trades_total",
				Help:      "Curve buys and sells, by token and side",
			}, []string{"token", "side"}),
			Graduations: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "astroshiba",
				Subsystem: "launch",
				Name:      "graduations_total",
				Help:      "Token sales that crossed the graduation threshold",
			}),
			PoolsActive: promauto.NewGauge(prometheus.GaugeOpts{
				Namespace: "astroshiba",
				Subsystem: "engine",
				Name:      "pools_active",
				Help:      "Number of live liquidity pools",
			}),
			SalesActive: promauto.NewGauge(prometheus.GaugeOpts{
				Namespace: "astroshiba",
				Subsystem: "launch",
				Name:      "sales_active",
				Help:      "Number of token sales still bonding",
			}),
			OperationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "astroshiba",
				Subsystem: "engine",
				Name:      "operation_duration_seconds",
				Help:      "Latency of engine operations",
				Buckets:   prometheus.DefBuckets,
			}, []string{"operation"}),
		}
	})
	return metricsInstance
}
