package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/imamik/fleetprov/cmd/fleetprov/handlers"
	"github.com/imamik/fleetprov/internal/config"
)

// Run returns the command that provisions every host in an inventory file.
//
// Flags:
//
//	--retries:        retries per host on transient failure (default 3)
//	--dry-run:        skip the API call, just show what would be done
//	--concurrency:    number of concurrent workers (default 12)
//	--api-url:        provisioning API base URL
//	--timeout:        per-attempt API timeout (default 10s)
//	--config, -c:     path to fleetprov.yaml (default: auto-detect)
//	--metrics-listen: serve Prometheus metrics on this address for the run
//
// Environment variables:
//
//	FLEETPROV_TOKEN: API credential (name configurable via api.token_env)
func Run() *cobra.Command {
	var (
		configPath    string
		apiURL        string
		retries       int
		concurrency   int
		timeout       time.Duration
		dryRun        bool
		metricsListen string
	)

	cmd := &cobra.Command{
		Use:   "run <inventory>",
		Short: "Provision all hosts listed in the inventory",
		Long: `Provision every host listed in the inventory file.

The inventory is comma-separated text with one "hostname,address" record per
line. Lines starting with '#' are comments, blank lines are skipped, and
malformed lines are reported without aborting the run.

The command exits 0 when the run completes, even if individual hosts failed;
it exits 2 only when the inventory file cannot be read.

Examples:
  # Show what would be provisioned without calling the API
  fleetprov run hosts.csv --dry-run

  # Provision with 24 workers and 5 retries per host
  fleetprov run hosts.csv --concurrency 24 --retries 5

  # Target a different API
  fleetprov run hosts.csv --api-url https://provision.internal`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := handlers.RunOptions{
				InventoryPath: args[0],
				ConfigPath:    configPath,
				DryRun:        dryRun,
				MetricsListen: metricsListen,
			}
			// Only explicitly set flags override the config file.
			flags := cmd.Flags()
			if flags.Changed("api-url") {
				opts.APIURL = &apiURL
			}
			if flags.Changed("retries") {
				opts.Retries = &retries
			}
			if flags.Changed("concurrency") {
				opts.Concurrency = &concurrency
			}
			if flags.Changed("timeout") {
				opts.Timeout = &timeout
			}
			return handlers.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: fleetprov.yaml)")
	cmd.Flags().StringVar(&apiURL, "api-url", config.DefaultAPIURL, "Provisioning API base URL")
	cmd.Flags().IntVar(&retries, "retries", config.DefaultRetries, "Retries per host on transient failure")
	cmd.Flags().IntVar(&concurrency, "concurrency", config.DefaultConcurrency, "Number of concurrent workers")
	cmd.Flags().DurationVar(&timeout, "timeout", config.DefaultTimeout, "Per-attempt API timeout")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Don't call the API; just show what would be done")
	cmd.Flags().StringVar(&metricsListen, "metrics-listen", "", "Serve Prometheus metrics on this address during the run")

	return cmd
}
