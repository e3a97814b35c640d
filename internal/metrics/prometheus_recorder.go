package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "apisite"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration      *prom.HistogramVec
	generationDuration prom.Histogram
	outcomes           *prom.CounterVec
	packages           prom.Gauge
	members            prom.Gauge
	documents          prom.Gauge
	resolutions        *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual generation stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		generationDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Total duration of a generation pass",
			Buckets:   prom.DefBuckets,
		}),
		outcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "generation_outcomes_total",
			Help:      "Generation passes by outcome",
		}, []string{"outcome"}),
		packages: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "model_packages",
			Help:      "Packages in the current API model",
		}),
		members: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "model_members",
			Help:      "Members in the current aggregated API data",
		}),
		documents: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "documents",
			Help:      "Long-form documents in the current library",
		}),
		resolutions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "reference_resolutions_total",
			Help:      "Declaration reference resolutions by result",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.stageDuration, pr.generationDuration, pr.outcomes,
		pr.packages, pr.members, pr.documents, pr.resolutions)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveGenerationDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.generationDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncGenerationOutcome(outcome Outcome) {
	if p == nil {
		return
	}
	p.outcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetModelSize(packages, members int) {
	if p == nil {
		return
	}
	p.packages.Set(float64(packages))
	p.members.Set(float64(members))
}

func (p *PrometheusRecorder) SetDocuments(n int) {
	if p == nil {
		return
	}
	p.documents.Set(float64(n))
}

func (p *PrometheusRecorder) IncReferenceResolution(result string) {
	if p == nil {
		return
	}
	p.resolutions.WithLabelValues(result).Inc()
}
