package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fuelpump"

// Operation outcome labels.
const (
	ResultOK                   = "ok"
	ResultNotFound             = "not_found"
	ResultInvalidInput         = "invalid_input"
	ResultInvalidState         = "invalid_state"
	ResultInsufficientQuantity = "insufficient_quantity"
	ResultStorageError         = "storage_error"
)

var (
	operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Count of registry operations by operation and outcome.",
		},
		[]string{"op", "result"},
	)
	dispensedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispensed_quantity_total",
			Help:      "Total fuel quantity dispensed, by fuel type.",
		},
		[]string{"fuel_type"},
	)
	pumpsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pumps",
			Help:      "Number of pumps currently registered.",
		},
	)

	// Registry is private to the service so tests and /metrics see only our collectors.
	Registry = prometheus.NewRegistry()
)

var registerMetrics sync.Once

// Register all metrics.
func Register() {
	registerMetrics.Do(func() {
		Registry.MustRegister(operationsTotal)
		Registry.MustRegister(dispensedTotal)
		Registry.MustRegister(pumpsGauge)
		Registry.MustRegister(collectors.NewGoCollector())
	})
}

// RecordOperation counts one registry call.
func RecordOperation(op, result string) {
	operationsTotal.WithLabelValues(op, result).Inc()
}

// RecordDispense adds a successful dispense to the per-fuel total.
func RecordDispense(fuelType string, quantity float64) {
	dispensedTotal.WithLabelValues(fuelType).Add(quantity)
}

func PumpAdded()         { pumpsGauge.Inc() }
func PumpRemoved()       { pumpsGauge.Dec() }
func SetPumpCount(n int) { pumpsGauge.Set(float64(n)) }

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	Register()
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
