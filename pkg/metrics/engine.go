package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics records cart and checkout activity.
type EngineMetrics struct {
	cartOps     *prometheus.CounterVec
	ordersTotal *prometheus.CounterVec
	orderValue  prometheus.Histogram
}

// NewEngineMetrics registers the engine metrics on the provided registerer.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	if reg == nil {
		return &EngineMetrics{}
	}
	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart mutations processed, by operation.",
	}, []string{"op"})
	ordersTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_finalized_total",
		Help: "Finalized checkout sessions, by delivery method.",
	}, []string{"delivery_method"})
	orderValue := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_total_brl",
		Help:    "Final order totals in BRL.",
		Buckets: []float64{10, 25, 50, 100, 200, 500},
	})
	reg.MustRegister(cartOps, ordersTotal, orderValue)
	return &EngineMetrics{
		cartOps:     cartOps,
		ordersTotal: ordersTotal,
		orderValue:  orderValue,
	}
}

// IncCartOp increments the counter for the named cart operation.
func (m *EngineMetrics) IncCartOp(op string) {
	if m == nil || m.cartOps == nil {
		return
	}
	m.cartOps.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncOrderFinalized counts a finalized order and observes its total.
func (m *EngineMetrics) IncOrderFinalized(deliveryMethod string, totalBRL float64) {
	if m == nil || m.ordersTotal == nil {
		return
	}
	m.ordersTotal.WithLabelValues(normalizeLabel(deliveryMethod)).Inc()
	m.orderValue.Observe(totalBRL)
}

func normalizeLabel(value string) string {
	label := strings.TrimSpace(strings.ToLower(value))
	if label == "" {
		return "unknown"
	}
	return label
}
