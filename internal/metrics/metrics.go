// Package metrics collects Prometheus counters for one provisioning run.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds the per-run counters on an isolated registry so concurrent
// runs (and tests) never collide on the default registry.
// A nil Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	completed   prometheus.Counter
	failed      prometheus.Counter
	dryRun      prometheus.Counter
	parseErrors prometheus.Counter
	apiAttempts prometheus.Counter
}

// NewRecorder creates a Recorder with a fresh registry.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		completed: factory.NewCounter(prometheus.CounterOpts{
			Name: "fleetprov_hosts_completed_total",
			Help: "Hosts provisioned successfully.",
		}),
		failed: factory.NewCounter(prometheus.CounterOpts{
			Name: "fleetprov_hosts_failed_total",
			Help: "Hosts that exhausted their retry budget or failed at the task level.",
		}),
		dryRun: factory.NewCounter(prometheus.CounterOpts{
			Name: "fleetprov_hosts_dry_run_total",
			Help: "Hosts skipped because the run was a dry-run.",
		}),
		parseErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "fleetprov_parse_errors_total",
			Help: "Inventory lines rejected with a diagnostic.",
		}),
		apiAttempts: factory.NewCounter(prometheus.CounterOpts{
			Name: "fleetprov_api_attempts_total",
			Help: "Remote provisioning API attempts, including retries.",
		}),
	}
}

// Completed counts one successfully provisioned host.
func (r *Recorder) Completed() {
	if r != nil {
		r.completed.Inc()
	}
}

// Failed counts one failed host.
func (r *Recorder) Failed() {
	if r != nil {
		r.failed.Inc()
	}
}

// DryRun counts one dry-run outcome.
func (r *Recorder) DryRun() {
	if r != nil {
		r.dryRun.Inc()
	}
}

// ParseErrors counts n rejected inventory lines.
func (r *Recorder) ParseErrors(n int) {
	if r != nil {
		r.parseErrors.Add(float64(n))
	}
}

// APIAttempts counts n remote API attempts.
func (r *Recorder) APIAttempts(n int) {
	if r != nil {
		r.apiAttempts.Add(float64(n))
	}
}

// Handler serves the run's registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
