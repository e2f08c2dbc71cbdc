package assessment

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mind-engage/mindengage-diagnostic/internal/diagnostic"
)

var (
	// reportsComputed counts report computations by source (stored|preview)
	reportsComputed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "diagnostic_reports_computed_total",
		Help: "Reports computed, by source",
	}, []string{"source"})

	// riskFlagsRaised counts raised flags by kind (dimension|entropy|drift)
	riskFlagsRaised = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "diagnostic_risk_flags_total",
		Help: "Risk flags raised, by kind",
	}, []string{"kind"})

	exportsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "diagnostic_exports_written_total",
		Help: "Export artifacts written to blob storage",
	})

	indexValues = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "diagnostic_index_value",
		Help:    "Distribution of computed SSI and OPI values",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	}, []string{"index"})
)

const (
	sourceStored  = "stored"
	sourcePreview = "preview"
)

func flagKind(flag string) string {
	switch flag {
	case diagnostic.EntropyRiskFlag:
		return "entropy"
	case diagnostic.DriftRiskFlag:
		return "drift"
	}
	if strings.HasSuffix(flag, "(gap < -15)") {
		return "dimension"
	}
	return "other"
}

func observeReport(source string, r diagnostic.Report) {
	reportsComputed.WithLabelValues(source).Inc()
	indexValues.WithLabelValues("ssi").Observe(r.SSI)
	indexValues.WithLabelValues("opi").Observe(r.OPI)
	for _, f := range r.Risk.Flags {
		riskFlagsRaised.WithLabelValues(flagKind(f)).Inc()
	}
}
