// Package main is the entry point for the fleetprov CLI.
//
// fleetprov provisions fleets of hosts from a plain-text inventory through a
// remote provisioning API, with bounded concurrency, per-host retries, and a
// dry-run mode.
//
// Commands: run, validate, version, completion.
//
// For detailed usage information, run:
//
//	fleetprov --help
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/imamik/fleetprov/cmd/fleetprov/commands"
	"github.com/imamik/fleetprov/cmd/fleetprov/handlers"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		// An unreadable inventory is the only condition distinguished on
		// exit; per-host failures still exit 0.
		if errors.Is(err, handlers.ErrUnreadableInventory) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
