package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores del motor de inventario. Se registran en el registry global y se
// exponen por el servidor lateral de /metrics.
var (
	// CommitsTotal cuenta commits de documentos por tipo y resultado (ok | error).
	CommitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_document_commits_total",
		Help: "Commits de documentos de movimiento, por tipo y resultado.",
	}, []string{"type", "result"})

	// StockAdjustmentsTotal cuenta ajustes manuales de stock (increase | decrease).
	StockAdjustmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_stock_adjustments_total",
		Help: "Ajustes manuales de stock, por dirección.",
	}, []string{"direction"})
)
