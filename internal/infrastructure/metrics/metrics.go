// Package metrics expone contadores Prometheus del flujo de pedidos.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Orders-api/internal/application/orders"
)

var _ orders.MetricsRecorder = (*Recorder)(nil)

// Recorder implementa orders.MetricsRecorder sobre un registry propio.
type Recorder struct {
	registry      *prometheus.Registry
	created       prometheus.Counter
	rejected      *prometheus.CounterVec
	linesPerOrder prometheus.Histogram
}

// New registra los colectores en un registry nuevo (más los de Go y proceso).
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Pedidos creados.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_rejected_total",
			Help: "Pedidos rechazados por validación, por campo con error.",
		}, []string{"field"}),
		linesPerOrder: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "order_lines_per_order",
			Help:    "Cantidad de líneas por pedido creado.",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		}),
	}
	reg.MustRegister(
		r.created, r.rejected, r.linesPerOrder,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// OrderCreated incrementa el contador y observa la cantidad de líneas.
func (r *Recorder) OrderCreated(lines int) {
	r.created.Inc()
	r.linesPerOrder.Observe(float64(lines))
}

// OrderRejected incrementa el contador una vez por campo con error.
func (r *Recorder) OrderRejected(fields []string) {
	for _, f := range fields {
		r.rejected.WithLabelValues(f).Inc()
	}
}

// Handler handler HTTP de /metrics para este registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry devuelve el registry (tests).
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }
