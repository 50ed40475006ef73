package provisioning

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-logr/logr"

	"github.com/imamik/fleetprov/internal/inventory"
	"github.com/imamik/fleetprov/internal/metrics"
)

// maxWorkers caps the pool size regardless of the requested concurrency.
const maxWorkers = 256

// Dispatcher fans inventory records out to a bounded pool of worker slots and
// folds the outcomes into a run summary. Outcomes are only aggregated at the
// dispatcher's collection point, so workers need no synchronization.
type Dispatcher struct {
	worker  *Worker
	log     logr.Logger
	metrics *metrics.Recorder
}

// NewDispatcher creates a dispatcher. The metrics recorder may be nil.
func NewDispatcher(worker *Worker, log logr.Logger, rec *metrics.Recorder) *Dispatcher {
	return &Dispatcher{worker: worker, log: log, metrics: rec}
}

// PoolSize reports the effective worker count for the requested concurrency
// and n records: clamp(concurrency, 1, n), capped at maxWorkers.
func PoolSize(concurrency, n int) int {
	workers := concurrency
	if workers > n {
		workers = n
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// Run submits every record exactly once and returns after every submitted
// record has produced an outcome. Records are handed out first come, first
// served; outcomes arrive in completion order, not submission order.
func (d *Dispatcher) Run(ctx context.Context, records []inventory.Record, cfg Config) Summary {
	summary := Summary{Valid: len(records)}
	if len(records) == 0 {
		return summary
	}

	workers := PoolSize(cfg.Concurrency, len(records))
	d.log.Info("begin provisioning", "hosts", len(records), "workers", workers, "dryRun", cfg.DryRun)

	jobs := make(chan inventory.Record)
	outcomes := make(chan Outcome, len(records))

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for rec := range jobs {
				outcomes <- d.provisionOne(ctx, rec, cfg)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, rec := range records {
			jobs <- rec
		}
	}()

	// Single-writer collection point: the summary is only touched here.
	for range records {
		d.collect(&summary, <-outcomes)
	}
	wg.Wait()

	d.log.Info("provisioning complete",
		"completed", summary.Completed, "failed", summary.Failed, "dryRun", summary.DryRun)
	return summary
}

// provisionOne shields the pool from a worker invocation that fails to
// produce a result. A recovered panic becomes a synthetic failed outcome so
// the run still reports one outcome per record.
func (d *Dispatcher) provisionOne(ctx context.Context, rec inventory.Record, cfg Config) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{
				Hostname: rec.Hostname,
				Address:  rec.Address,
				Status:   StatusFailed,
				Err:      fmt.Sprintf("worker failure: %v", r),
			}
		}
	}()
	return d.worker.Provision(ctx, rec, cfg)
}

func (d *Dispatcher) collect(summary *Summary, out Outcome) {
	switch out.Status {
	case StatusCompleted:
		summary.Completed++
		d.metrics.Completed()
	case StatusFailed:
		summary.Failed++
		d.metrics.Failed()
	case StatusDryRun:
		summary.DryRun++
		d.metrics.DryRun()
	}
	d.metrics.APIAttempts(out.Attempts)

	d.log.Info("outcome",
		"host", out.Hostname,
		"address", out.Address,
		"status", string(out.Status),
		"attempts", out.Attempts,
		"error", out.Err,
	)
}
