package provisioning

// Status is the terminal state of one host's provisioning attempt sequence.
type Status string

const (
	// StatusDryRun means the remote call was skipped because the run was a
	// dry-run.
	StatusDryRun Status = "dry-run"
	// StatusCompleted means the remote API signalled success.
	StatusCompleted Status = "completed"
	// StatusFailed means the retry budget was exhausted, or the worker
	// itself failed to produce a result.
	StatusFailed Status = "failed"
)

// Outcome is the result for one inventory record. Exactly one Outcome is
// produced per record submitted to the dispatcher; it is never mutated
// afterwards.
type Outcome struct {
	Hostname string
	Address  string
	Status   Status
	Attempts int
	Err      string
}

// Summary aggregates the outcomes of one run. It is owned by the dispatcher
// and only written at its collection point.
type Summary struct {
	Valid       int
	ParseErrors int
	Completed   int
	Failed      int
	DryRun      int
}
