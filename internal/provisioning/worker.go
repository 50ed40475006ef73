package provisioning

import (
	"context"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/fleetprov/internal/inventory"
	"github.com/imamik/fleetprov/internal/platform/provisioner"
	"github.com/imamik/fleetprov/internal/util/retry"
)

// ProvisionCaller is the remote API collaborator. Implementations signal
// success with a nil error; the worker does not inspect anything else.
type ProvisionCaller interface {
	Provision(ctx context.Context, payload provisioner.Payload) error
}

// Config carries the per-run provisioning settings.
type Config struct {
	DryRun      bool
	MaxRetries  int
	Concurrency int

	// Backoff between attempts. Zero means attempts run back to back.
	BackoffInitial time.Duration
	BackoffMax     time.Duration
}

// Worker provisions single hosts. It holds no mutable state and communicates
// only through return values, so one Worker is shared by all pool slots.
type Worker struct {
	api ProvisionCaller
	log logr.Logger
}

// NewWorker creates a worker backed by the given API collaborator.
func NewWorker(api ProvisionCaller, log logr.Logger) *Worker {
	return &Worker{api: api, log: log}
}

// Provision performs the provisioning action for one record, retrying up to
// cfg.MaxRetries times after the first attempt. The first success ends the
// loop. In dry-run mode no remote call is made.
func (w *Worker) Provision(ctx context.Context, rec inventory.Record, cfg Config) Outcome {
	if cfg.DryRun {
		w.log.Info("dry-run: skipping API call", "host", rec.Hostname, "address", rec.Address)
		return Outcome{Hostname: rec.Hostname, Address: rec.Address, Status: StatusDryRun}
	}

	opts := []retry.Option{retry.WithMaxRetries(cfg.MaxRetries)}
	if cfg.BackoffInitial > 0 {
		opts = append(opts,
			retry.WithInitialDelay(cfg.BackoffInitial),
			retry.WithMaxDelay(cfg.BackoffMax),
		)
	}

	payload := provisioner.Payload{Hostname: rec.Hostname, Address: rec.Address}
	attempts, err := retry.Do(ctx, func() error {
		return w.api.Provision(ctx, payload)
	}, opts...)

	if err != nil {
		w.log.Error(err, "provisioning failed", "host", rec.Hostname, "address", rec.Address, "attempts", attempts)
		return Outcome{
			Hostname: rec.Hostname,
			Address:  rec.Address,
			Status:   StatusFailed,
			Attempts: attempts,
			Err:      err.Error(),
		}
	}

	return Outcome{Hostname: rec.Hostname, Address: rec.Address, Status: StatusCompleted, Attempts: attempts}
}
