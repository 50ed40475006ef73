package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/fleetprov/cmd/fleetprov/handlers"
)

// Validate returns the command that checks an inventory file without
// provisioning anything.
func Validate() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <inventory>",
		Short: "Check an inventory file without provisioning",
		Long: `Parse the inventory file and report every record and diagnostic.

No remote calls are made. The command exits 0 when the inventory is clean,
1 when it contains invalid lines, and 2 when the file cannot be read.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Validate(cmd.OutOrStdout(), args[0])
		},
	}
}
