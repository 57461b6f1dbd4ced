// Package telemetry registers the prometheus gauges that mirror the
// optimizer's progress/cancellation atomics against the process's default
// registry. Starting an HTTP /metrics listener is an external
// collaborator's job — this package only registers, never serves.
package telemetry

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the set of gauges kobayashi registers for one optimizer job.
type Metrics struct {
	CandidatesTotal prometheus.Gauge
	CandidatesDone  prometheus.Gauge
	JobState        *prometheus.GaugeVec
}

// NewMetrics constructs and registers the optimizer gauges against reg. Pass
// prometheus.DefaultRegisterer for the process-wide default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CandidatesTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kobayashi_optimizer_candidates_total",
			Help: "Candidates enumerated for the current optimizer job.",
		}),
		CandidatesDone: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kobayashi_optimizer_candidates_done",
			Help: "Candidates scored so far for the current optimizer job.",
		}),
		JobState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kobayashi_optimizer_job_state",
			Help: "1 for the optimizer job's current state, 0 otherwise, labeled by state name.",
		}, []string{"state"}),
	}
	reg.MustRegister(m.CandidatesTotal, m.CandidatesDone, m.JobState)
	return m
}

// ObserveProgress copies an optimizer.Progress snapshot onto the gauges.
// Callers pass the already-loaded int64 values rather than the atomics
// themselves so this package doesn't need to import optimizer.
func (m *Metrics) ObserveProgress(done, total int64) {
	m.CandidatesDone.Set(float64(done))
	m.CandidatesTotal.Set(float64(total))
}

// ObserveState sets the active job-state label to 1 and every other known
// state to 0.
func (m *Metrics) ObserveState(states []string, active string) {
	for _, s := range states {
		v := 0.0
		if s == active {
			v = 1.0
		}
		m.JobState.WithLabelValues(s).Set(v)
	}
}
