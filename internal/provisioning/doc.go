// Package provisioning drives the concurrent provisioning of inventory
// records against the remote API.
//
// A [Worker] provisions one host with bounded retries. The [Dispatcher] owns
// a fixed-size pool of worker slots, submits each record exactly once, and
// aggregates outcomes into a [Summary] at a single collection point. A run
// always completes and reports; per-host failures never abort it.
package provisioning
