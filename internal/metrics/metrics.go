// Package metrics exposes Prometheus counters for scenario calculations.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Simplici0/minecalc/internal/mining"
)

// Outcome labels for calculations.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeFault   = "fault"
)

// Recorder counts engine runs, warnings and saved scenarios.
type Recorder struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	warnings     *prometheus.CounterVec
	saved        prometheus.Counter
}

// NewRecorder builds a recorder on its own registry, including the Go
// runtime collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "minecalc",
			Name:      "calculations_total",
			Help:      "Scenario calculations by outcome.",
		}, []string{"outcome"}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "minecalc",
			Name:      "warnings_total",
			Help:      "Capacity and operation warnings by code.",
		}, []string{"code"}),
		saved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minecalc",
			Name:      "scenarios_saved_total",
			Help:      "Scenarios appended to the store.",
		}),
	}
	r.registry.MustRegister(
		r.calculations,
		r.warnings,
		r.saved,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveCompute records the outcome of one engine run.
func (r *Recorder) ObserveCompute(rep mining.Report, err error) {
	if r == nil {
		return
	}
	r.calculations.WithLabelValues(Outcome(err)).Inc()
	for _, w := range rep.Warnings {
		r.warnings.WithLabelValues(string(w.Code)).Inc()
	}
}

// ObserveSaved records one saved scenario.
func (r *Recorder) ObserveSaved() {
	if r == nil {
		return
	}
	r.saved.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Outcome classifies an engine error.
func Outcome(err error) string {
	var verrs mining.ValidationErrors
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &verrs):
		return OutcomeInvalid
	default:
		return OutcomeFault
	}
}
